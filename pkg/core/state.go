package core

import "time"

// Store defines the interface for the generation ledger.
type Store interface {
	Open(path string) error
	Close() error
	InitSchema() error

	// Run operations
	CreateRun() (*Run, error)
	GetRun(id string) (*Run, error)
	CompleteRun(id string, status RunStatus, generated, skipped int, errMsg string) error
	GetLatestRun() (*Run, error)
	ListRuns(limit int) ([]*Run, error)

	// Output operations
	RecordOutput(out *ElementOutput) error
	ListOutputs(runID string) ([]*ElementOutput, error)
	GetLatestOutput(element string) (*ElementOutput, error)

	// File hash tracking
	GetContentHash(filePath string) (string, error)
	SetContentHash(filePath, hash, kind string) error
	DeleteContentHash(filePath string) error
	ListContentHashes() (map[string]string, error)
}

// RunStatus represents the status of a generation run.
type RunStatus string

// Run status constants.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// Run represents one invocation of the generator over a project.
type Run struct {
	ID          string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Generated   int
	Skipped     int
	Error       string
}

// Duration returns how long the run took, or zero while it is running.
func (r *Run) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// ElementOutput records the code produced for one element within a run.
type ElementOutput struct {
	RunID   string
	Element string
	// OutputPath is where the code was (or would have been) written
	OutputPath string
	// ContentHash is the hash of the source document at generation time
	ContentHash string
	// CodeHash is the hash of the generated code
	CodeHash  string
	CreatedAt time.Time
}
