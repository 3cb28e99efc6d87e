package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "modecitation.dev/pkg/modecitation/internal/model"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	return cmd, &out, &errOut
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	tests := []struct {
		name            string
		reports         []m.Report
		wantContains    []string
		wantNotContains []string
	}{
		{
			name: "quotations created",
			reports: []m.Report{
				{Source: "a.xml", Status: m.Done, Tally: m.Tally{Wrapped: 3, CrossTagMerged: 1}},
				{Source: "b.xml", Status: m.Unchanged},
			},
			wantContains:    []string{"a.xml", "b.xml", "done", "unchanged", "TOTAL DOCUMENTS 2"},
			wantNotContains: []string{NoQuotationMessage},
		},
		{
			name: "nothing to do",
			reports: []m.Report{
				{Source: "a.xml", Status: m.Unchanged},
			},
			wantContains: []string{"a.xml", NoQuotationMessage},
		},
		{
			name: "failure is not reported as nothing to do",
			reports: []m.Report{
				{Source: "a.xml", Status: m.Failed, Error: errors.New("boom")},
			},
			wantContains:    []string{"failed", "1 FAILED"},
			wantNotContains: []string{NoQuotationMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, out, _ := newTestCommand()

			NewSimpleUI(cmd).DisplaySummary(context.Background(), tt.reports)

			// tablewriter upper-cases headers and footers.
			output := out.String()
			for _, want := range tt.wantContains {
				assert.True(t, strings.Contains(output, want) || strings.Contains(strings.ToUpper(output), want),
					"output %q should contain %q", output, want)
			}

			for _, unwanted := range tt.wantNotContains {
				assert.NotContains(t, output, unwanted)
			}
		})
	}
}

func TestSimpleUI_DisplayDocumentResult(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd)
	ctx := context.Background()

	ui.DisplayDocumentResult(ctx, m.Report{
		Source: "a.xml",
		Target: "out/a.xml",
		Status: m.Done,
		Tally: m.Tally{
			Wrapped:  2,
			Warnings: []m.Warning{{Kind: m.WarningUnbalanced, Text: "« open"}},
		},
		Diff: "--- a.xml\n+++ a.xml (quote mode)",
	})
	ui.DisplayDocumentResult(ctx, m.Report{Source: "b.xml", Status: m.Failed, Error: errors.New("load stage failed: boom")})
	ui.DisplayDocumentResult(ctx, m.Report{Source: "c.xml", Target: "-", Status: m.Unchanged})

	output := out.String()
	assert.Contains(t, output, "Done a.xml -> out/a.xml: 2 quotation(s), 1 warning(s)")
	assert.Contains(t, output, "warning (unbalanced): « open")
	assert.Contains(t, output, "+++ a.xml (quote mode)")
	assert.Contains(t, output, "Failed b.xml: load stage failed: boom")
	assert.Contains(t, output, "Unchanged c.xml -> stdout")
}

func TestSimpleUI_UseStderr(t *testing.T) {
	cmd, out, errOut := newTestCommand()
	ui := NewSimpleUI(cmd, UseStderr())

	ui.DisplayRunInfo(context.Background(), RunInfo{RunID: "0123456789abcdef", Documents: 2, Rules: 3, Workers: 1, DryRun: true})
	ui.DisplayDocumentStart(context.Background(), "a.xml")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Run 01234567: 2 document(s), 3 rule(s), 1 worker(s) (dry run)")
	assert.Contains(t, errOut.String(), "Processing a.xml")
}

func TestSimpleUI_DisplayRules(t *testing.T) {
	cmd, out, _ := newTestCommand()

	err := NewSimpleUI(cmd).DisplayRules(context.Background(), m.RuleSet{
		Origin: "rules.json",
		Rules: []m.Rule{
			{Desc: "paragraphs", XPath: "//p"},
			{XPath: "//p["},
		},
	}, map[int]error{1: errors.New("expression must evaluate to a node-set")})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Rules from rules.json")
	assert.Contains(t, output, "paragraphs")
	assert.Contains(t, output, "invalid: expression must evaluate to a node-set")
	assert.Contains(t, strings.ToUpper(output), "TOTAL RULES 2")
	assert.Contains(t, strings.ToUpper(output), "1 INVALID")
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, ui.Start(ctx))
	ui.DisplayDocumentStart(ctx, "a.xml")
	ui.DisplaySummary(ctx, nil)

	assert.Empty(t, out.String())
}

func TestSummarize(t *testing.T) {
	totals := Summarize([]m.Report{
		{Status: m.Done, Tally: m.Tally{Wrapped: 2, FormattingToQuote: 1, Warnings: []m.Warning{{}}}},
		{Status: m.Unchanged},
		{Status: m.Failed},
		{Status: m.Pending},
	})

	want := Totals{
		Documents: 4, Done: 1, Unchanged: 1, Failed: 1, Skipped: 1,
		Quotes: 3, Wrapped: 2, Formatting: 1, Warnings: 1,
	}
	assert.Equal(t, want, totals)
}

func TestRenderSummaryTable_FooterHasEveryTotal(t *testing.T) {
	reports := []m.Report{
		{Source: "a.xml", Status: m.Done, Tally: m.Tally{Wrapped: 3, CrossTagMerged: 1, Warnings: []m.Warning{{}}}},
		{Source: "b.xml", Status: m.Failed},
		{Source: "c.xml", Status: m.Done, Tally: m.Tally{Wrapped: 1, FormattingToQuote: 2}},
	}

	var footer string

	for _, line := range strings.Split(renderSummaryTable(reports, Summarize(reports)), "\n") {
		if strings.Contains(strings.ToUpper(line), "TOTAL DOCUMENTS") {
			footer = line
		}
	}

	require.NotEmpty(t, footer)
	assert.Equal(t,
		[]string{"TOTAL", "DOCUMENTS", "3", "1", "FAILED", "4", "1", "2", "1"},
		strings.Fields(strings.ReplaceAll(strings.ToUpper(footer), "|", " ")))
}
