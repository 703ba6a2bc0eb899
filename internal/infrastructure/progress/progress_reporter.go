package progress

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repomirror/internal/domain/entities"
)

// BarProgressReporter renders clone progress as a terminal progress bar.
type BarProgressReporter struct {
	writer io.Writer

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// NewBarProgressReporter creates a reporter writing to the given terminal stream.
func NewBarProgressReporter(writer io.Writer) *BarProgressReporter {
	return &BarProgressReporter{writer: writer}
}

func (it *BarProgressReporter) Start(total int) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(it.writer),
		progressbar.OptionSetDescription("cloning"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (it *BarProgressReporter) Advance(_ int64, _ int, outcome entities.CloneOutcome) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.bar == nil {
		return
	}
	if outcome.Status == entities.CloneFailed {
		it.bar.Describe("cloning (failed: " + outcome.Ref.Name + ")")
	}
	_ = it.bar.Add(1)
}

func (it *BarProgressReporter) Finish() {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.bar != nil {
		_ = it.bar.Finish()
	}
}

// LogProgressReporter writes one log line per finished clone, for non-interactive runs.
type LogProgressReporter struct{}

// NewLogProgressReporter creates a reporter backed by the global logger.
func NewLogProgressReporter() *LogProgressReporter {
	return &LogProgressReporter{}
}

func (it *LogProgressReporter) Start(total int) {
	logger.Debugf("Starting %d clone tasks", total)
}

func (it *LogProgressReporter) Advance(done int64, total int, outcome entities.CloneOutcome) {
	if outcome.Status == entities.CloneFailed {
		logger.Warnf("[%d/%d] %s: %s", done, total, outcome.Ref.Name, outcome.Reason())
		return
	}
	logger.Infof("[%d/%d] %s -> %s", done, total, outcome.Ref.Name, outcome.Path)
}

func (it *LogProgressReporter) Finish() {}
