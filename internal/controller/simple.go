package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "modecitation.dev/pkg/modecitation/internal/model"
)

// SimpleOption configures a SimpleUI.
type SimpleOption func(*SimpleUI)

// UseStderr makes the SimpleUI write to the command's error stream, leaving
// stdout to transformed documents.
func UseStderr() SimpleOption {
	return func(s *SimpleUI) {
		s.stderr = true
	}
}

// SimpleUI implements UI with plain lines and tables on the command output.
type SimpleUI struct {
	cmd    *cobra.Command
	stderr bool
	mu     sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, opts ...SimpleOption) *SimpleUI {
	s := &SimpleUI{cmd: cmd}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayRunInfo announces the batch.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, info RunInfo) {
	if ctx.Err() != nil {
		return
	}

	mode := ""
	if info.DryRun {
		mode = " (dry run)"
	}

	s.printf("Run %s: %d document(s), %d rule(s), %d worker(s)%s\n",
		shortID(info.RunID), info.Documents, info.Rules, info.Workers, mode)
}

// DisplayDocumentStart shows that a document is being processed.
func (s *SimpleUI) DisplayDocumentStart(ctx context.Context, source m.Source) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Processing %s\n", source)
}

// DisplayDocumentResult shows the outcome of one document, with its diff when present.
func (s *SimpleUI) DisplayDocumentResult(ctx context.Context, report m.Report) {
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.writer()

	if report.Status == m.Failed {
		_, _ = fmt.Fprintf(w, "Failed %s: %v\n", report.Source, report.Error)
		return
	}

	_, _ = fmt.Fprintf(w, "%s %s -> %s: %d quotation(s), %d warning(s)\n",
		capitalize(report.Status.String()), report.Source, targetLabel(report.Target),
		report.Tally.Changes(), len(report.Tally.Warnings))

	for _, warning := range report.Tally.Warnings {
		_, _ = fmt.Fprintf(w, "  warning (%s): %s\n", warning.Kind, warning.Text)
	}

	if report.Diff != "" {
		_, _ = fmt.Fprintf(w, "%s\n", report.Diff)
	}
}

// DisplaySummary prints a table of every document and the run totals.
func (s *SimpleUI) DisplaySummary(ctx context.Context, reports []m.Report) {
	if ctx.Err() != nil {
		return
	}

	totals := Summarize(reports)

	s.printf("\n%s", renderSummaryTable(reports, totals))

	if totals.Quotes == 0 && totals.Failed == 0 {
		s.printf("%s\n", NoQuotationMessage)
	}
}

// DisplayRules prints the rules of a rules file and whether their expression compiles.
func (s *SimpleUI) DisplayRules(ctx context.Context, rules m.RuleSet, problems map[int]error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Rules from %s\n\n%s", rules.Origin, renderRulesTable(rules, problems))

	return nil
}

func renderSummaryTable(reports []m.Report, totals Totals) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Source", "Status", "Quotes", "Cross-tag", "Formatting", "Warnings"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, r := range reports {
		table.Append([]string{
			string(r.Source),
			r.Status.String(),
			fmt.Sprintf("%d", r.Tally.Wrapped),
			fmt.Sprintf("%d", r.Tally.CrossTagMerged),
			fmt.Sprintf("%d", r.Tally.FormattingToQuote),
			fmt.Sprintf("%d", len(r.Tally.Warnings)),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Documents %d", totals.Documents),
		fmt.Sprintf("%d failed", totals.Failed),
		fmt.Sprintf("%d", totals.Wrapped),
		fmt.Sprintf("%d", totals.CrossTag),
		fmt.Sprintf("%d", totals.Formatting),
		fmt.Sprintf("%d", totals.Warnings),
	})

	table.Render()

	return tableBuffer.String()
}

func renderRulesTable(rules m.RuleSet, problems map[int]error) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "Description", "XPath", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for i, rule := range rules.Rules {
		status := "ok"
		if err, ok := problems[i]; ok {
			status = "invalid: " + err.Error()
		}

		table.Append([]string{fmt.Sprintf("%d", i+1), rule.Desc, rule.XPath, status})
	}

	table.SetFooter([]string{"", fmt.Sprintf("Total Rules %d", rules.Len()), "", fmt.Sprintf("%d invalid", len(problems))})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) writer() io.Writer {
	if s.stderr {
		return s.cmd.ErrOrStderr()
	}

	return s.cmd.OutOrStdout()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.writer(), format, args...)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}

	return id
}

func targetLabel(target m.Target) string {
	if target.IsStdout() {
		return "stdout"
	}

	return string(target)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
