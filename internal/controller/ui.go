// Package controller renders run progress and results for the modecitation CLI.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "modecitation.dev/pkg/modecitation/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeRun StartMode = iota
	ModeRules
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithRunMode sets the UI to document processing mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithRulesMode sets the UI to rules listing mode.
func WithRulesMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRules
	}
}

// RunInfo describes a batch about to start.
type RunInfo struct {
	RunID     string
	Rules     int
	Documents int
	Workers   int
	DryRun    bool
}

// UI defines how a run is presented.
// Implementations must accept calls from several goroutines.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayRunInfo(ctx context.Context, info RunInfo)
	DisplayDocumentStart(ctx context.Context, source m.Source)
	DisplayDocumentResult(ctx context.Context, report m.Report)
	DisplaySummary(ctx context.Context, reports []m.Report)
	DisplayRules(ctx context.Context, rules m.RuleSet, problems map[int]error) error
}

// Totals aggregates the reports of a run.
type Totals struct {
	Documents int
	Done      int
	Unchanged int
	Failed    int
	Skipped   int
	// Quotes counts every change; the three fields below split it by kind.
	Quotes     int
	Wrapped    int
	CrossTag   int
	Formatting int
	Warnings   int
}

// Summarize computes the totals of reports.
func Summarize(reports []m.Report) Totals {
	t := Totals{Documents: len(reports)}

	for _, r := range reports {
		switch r.Status {
		case m.Done:
			t.Done++
		case m.Unchanged:
			t.Unchanged++
		case m.Failed:
			t.Failed++
		default:
			t.Skipped++
		}

		t.Quotes += r.Tally.Changes()
		t.Wrapped += r.Tally.Wrapped
		t.CrossTag += r.Tally.CrossTagMerged
		t.Formatting += r.Tally.FormattingToQuote
		t.Warnings += len(r.Tally.Warnings)
	}

	return t
}

// NoQuotationMessage is shown when a run did not create any quotation.
const NoQuotationMessage = "No quotation to modify."

// NewUI returns the interactive TUI when useTTY is set, the SimpleUI otherwise.
func NewUI(cmd *cobra.Command, useTTY bool, opts ...TUIOption) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout(), opts...)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
