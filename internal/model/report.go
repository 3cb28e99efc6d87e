package model

import "time"

// WarningKind classifies a text run the engine refused to rewrite.
type WarningKind string

const (
	// WarningUnbalanced marks text whose guillemets do not pair up.
	WarningUnbalanced WarningKind = "unbalanced"
	// WarningNested marks text holding a quotation inside a quotation.
	WarningNested WarningKind = "nested"
)

// Warning records a text run left untouched.
type Warning struct {
	Kind WarningKind `yaml:"kind"`
	Text string      `yaml:"text"`
}

// RuleHit counts what a single rule did during one pass.
type RuleHit struct {
	Rule    Rule `yaml:"rule"`
	Pass    int  `yaml:"pass"`
	Matched int  `yaml:"matched"`
	Wrapped int  `yaml:"wrapped"`
}

// Tally accumulates the effects of one orchestrator run.
type Tally struct {
	Wrapped           int       `yaml:"wrapped"`
	FormattingToQuote int       `yaml:"formatting_to_quote"`
	CrossTagMerged    int       `yaml:"cross_tag_merged"`
	Rules             []RuleHit `yaml:"rules,omitempty"`
	Warnings          []Warning `yaml:"warnings,omitempty"`
}

// Changes returns the number of quotation elements created.
func (t Tally) Changes() int {
	return t.Wrapped + t.FormattingToQuote + t.CrossTagMerged
}

// Warn appends a warning. Identical warnings are recorded once, since both
// rule passes visit the same text.
func (t *Tally) Warn(kind WarningKind, text string) {
	w := Warning{Kind: kind, Text: text}
	for _, existing := range t.Warnings {
		if existing == w {
			return
		}
	}

	t.Warnings = append(t.Warnings, w)
}

// Merge adds the counters of other into t.
func (t *Tally) Merge(other Tally) {
	t.Wrapped += other.Wrapped
	t.FormattingToQuote += other.FormattingToQuote
	t.CrossTagMerged += other.CrossTagMerged
	t.Rules = append(t.Rules, other.Rules...)
	t.Warnings = append(t.Warnings, other.Warnings...)
}

// DocumentStatus is the outcome of processing one document.
type DocumentStatus int

const (
	// Pending documents have not started yet.
	Pending DocumentStatus = iota
	// Processing documents are being transformed.
	Processing
	// Done documents were transformed (and written unless dry-run).
	Done
	// Unchanged documents went through the engine without any new quotation.
	Unchanged
	// Failed documents stopped on a fatal error.
	Failed
)

func (s DocumentStatus) String() string {
	switch s {
	case Pending:
		return "pending"
	case Processing:
		return "processing"
	case Done:
		return "done"
	case Unchanged:
		return "unchanged"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseDocumentStatus is the inverse of DocumentStatus.String. Unknown
// names map to Pending.
func ParseDocumentStatus(name string) DocumentStatus {
	for _, s := range []DocumentStatus{Processing, Done, Unchanged, Failed} {
		if s.String() == name {
			return s
		}
	}

	return Pending
}

// Report is the result of processing one document.
type Report struct {
	RunID    string         `yaml:"run_id"`
	Source   Source         `yaml:"source"`
	Target   Target         `yaml:"target,omitempty"`
	Status   DocumentStatus `yaml:"-"`
	State    string         `yaml:"status"`
	Tally    Tally          `yaml:"tally"`
	Diff     string         `yaml:"-"`
	Error    error          `yaml:"-"`
	Message  string         `yaml:"error,omitempty"`
	Started  time.Time      `yaml:"started"`
	Duration time.Duration  `yaml:"duration"`
}

// Finalize copies the non-serializable fields into their text forms.
func (r *Report) Finalize() {
	r.State = r.Status.String()
	if r.Error != nil {
		r.Message = r.Error.Error()
	}
}
