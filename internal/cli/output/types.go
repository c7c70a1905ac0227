package output

// JSON document shapes emitted by commands in json mode.

// ElementInfo describes one element for list output.
type ElementInfo struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	BaseType  string   `json:"base_type,omitempty"`
	Runtime   string   `json:"runtime"`
	Class     string   `json:"class"`
	Namespace string   `json:"namespace,omitempty"`
	FilePath  string   `json:"file_path,omitempty"`
	Builtin   bool     `json:"builtin"`
	Generate  bool     `json:"generate"`
	Instances []string `json:"instances"`
	States    []string `json:"states"`
	Derived   []string `json:"derived"`

	LastOutput *LastOutputInfo `json:"last_output,omitempty"`
}

// LastOutputInfo is the most recent ledger entry for an element.
type LastOutputInfo struct {
	RunID      string `json:"run_id"`
	OutputPath string `json:"output_path"`
	CodeHash   string `json:"code_hash"`
	CreatedAt  string `json:"created_at"`
}

// ListOutput is the list command's JSON document.
type ListOutput struct {
	Elements []ElementInfo `json:"elements"`
	Errors   []LoadIssue   `json:"errors"`
	Summary  ListSummary   `json:"summary"`
}

// ListSummary counts elements by kind.
type ListSummary struct {
	Total  int            `json:"total"`
	ByKind map[string]int `json:"by_kind"`
}

// LoadIssue is a document that failed to load.
type LoadIssue struct {
	Path    string `json:"path"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// GenerateOutput is the generate command's JSON document.
type GenerateOutput struct {
	RunID      string           `json:"run_id,omitempty"`
	Status     string           `json:"status"`
	DryRun     bool             `json:"dry_run"`
	Elements   []GeneratedEntry `json:"elements"`
	Generated  int              `json:"generated"`
	Skipped    int              `json:"skipped"`
	DurationMS int64            `json:"duration_ms"`
	Error      string           `json:"error,omitempty"`
}

// GeneratedEntry is one element of a generation run.
type GeneratedEntry struct {
	Element    string `json:"element"`
	Path       string `json:"path"`
	Skipped    bool   `json:"skipped"`
	SkipReason string `json:"skip_reason,omitempty"`
	Code       string `json:"code,omitempty"`
}

// TreeNode is one element in the inheritance tree.
type TreeNode struct {
	Name     string     `json:"name"`
	Kind     string     `json:"kind"`
	Children []TreeNode `json:"children,omitempty"`
}

// SnippetOutput is the state and instance commands' JSON document.
type SnippetOutput struct {
	Element string `json:"element"`
	Target  string `json:"target"`
	Code    string `json:"code"`
}

// RunInfo describes a ledger run.
type RunInfo struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	DurationMS  int64  `json:"duration_ms"`
	Generated   int    `json:"generated"`
	Skipped     int    `json:"skipped"`
	Error       string `json:"error,omitempty"`
}

// VersionOutput is the JSON output of the version command.
type VersionOutput struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	BuildDate string   `json:"build_date"`
	Libraries []string `json:"libraries"`
}
