package entities

// RepositoryRef is the minimal tuple needed to clone one repository of an account.
type RepositoryRef struct {
	Name     string // unique within one account's listing
	CloneURL string // browsable URL, accepted by the cloner
}

// EnumerationResult holds every ref of an account in the platform's page order.
type EnumerationResult []RepositoryRef
