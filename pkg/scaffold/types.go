package scaffold

// Status defines the possible states of a single page entry during a run.
type Status string

// Constants representing the defined page statuses.
const (
	StatusPending Status = "pending"
	StatusCreated Status = "created"
	StatusExists  Status = "exists"
	StatusPlanned Status = "planned" // dry run: the page would have been created
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// IsFinal reports whether the status terminates processing of an entry.
func (s Status) IsFinal() bool {
	return s != StatusPending
}

// OnErrorMode defines the behavior when a page cannot be generated.
type OnErrorMode string

const (
	OnErrorContinue OnErrorMode = "continue"
	OnErrorStop     OnErrorMode = "stop"
)

// OutputFormat defines the format of the final report printed on stdout.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)
