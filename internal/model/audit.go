package model

// Level classifies the severity of an audit issue.
type Level string

const (
	// LevelError marks defects that break the site (dead links, missing h1).
	LevelError Level = "ERROR"
	// LevelWarn marks style and hygiene findings.
	LevelWarn Level = "WARN"
)

// ContextGlobal is the issue context used when no single source document is
// authoritative, e.g. for deduplicated external link failures.
const ContextGlobal = "GLOBAL"

// DocumentRef identifies one discovered document. RelPath (relative to the
// site root, slash-separated) is the identity key for all graph operations.
type DocumentRef struct {
	AbsPath string
	RelPath string
}

// Issue is a single audit finding. Penalty is zero or negative and has
// already been applied to the running score when the issue was recorded.
type Issue struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
	Context string `json:"context"`
	Penalty int    `json:"penalty"`
}

// AuditResult holds the complete outcome of one audit run.
type AuditResult struct {
	BaseURL           string   `json:"base_url"`
	Keywords          []string `json:"keywords,omitempty"`
	DocumentCount     int      `json:"document_count"`
	ExternalLinkCount int      `json:"external_link_count"`
	Issues            []Issue  `json:"issues"`

	// Score is the floored final score in [0, 100]. RawScore keeps the
	// unfloored running total for diagnostics and may be negative.
	Score    int `json:"score"`
	RawScore int `json:"raw_score"`
}

// ErrorCount returns the number of ERROR-level issues.
func (r *AuditResult) ErrorCount() int {
	var n int
	for _, is := range r.Issues {
		if is.Level == LevelError {
			n++
		}
	}
	return n
}
