package internal

import "github.com/rios0rios0/repomirror/internal/domain/entities"

// AppInternal holds every controller exposed as a subcommand.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the application context from the registered controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
