package controller

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "modecitation.dev/pkg/modecitation/internal/model"
)

func update(t *testing.T, pm progressModel, msg tea.Msg) (progressModel, tea.Cmd) {
	t.Helper()

	next, cmd := pm.Update(msg)

	updated, ok := next.(progressModel)
	require.True(t, ok)

	return updated, cmd
}

func TestProgressModel_RunMode(t *testing.T) {
	pm := newProgressModel(ModeRun)

	pm, _ = update(t, pm, runInfoMsg(RunInfo{RunID: "abcdef0123456789", Documents: 2, Rules: 1, Workers: 2}))
	pm, _ = update(t, pm, documentStartMsg{source: "a.xml"})
	pm, _ = update(t, pm, documentStartMsg{source: "b.xml"})

	assert.Equal(t, []m.Source{"a.xml", "b.xml"}, pm.active)
	assert.Contains(t, pm.View(), "Run abcdef01: 2 document(s), 1 rule(s), 2 worker(s)")
	assert.Contains(t, pm.View(), "Press q to abort")

	pm, _ = update(t, pm, documentResultMsg{report: m.Report{Source: "a.xml", Status: m.Done, Tally: m.Tally{Wrapped: 2}}})
	pm, _ = update(t, pm, documentResultMsg{report: m.Report{Source: "b.xml", Status: m.Failed, Error: errors.New("boom")}})

	assert.Empty(t, pm.active)
	assert.Len(t, pm.results, 2)

	pm, cmd := update(t, pm, summaryMsg{totals: Totals{Documents: 2, Done: 1, Failed: 1, Quotes: 2}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, pm.finished)

	view := pm.View()
	assert.Contains(t, view, title)
	assert.Contains(t, view, "a.xml 2 quotation(s)")
	assert.Contains(t, view, "b.xml boom")
	assert.Contains(t, view, "2 quotation(s), 0 warning(s)")
	assert.NotContains(t, view, NoQuotationMessage)
	assert.NotContains(t, view, "Press q to abort")
}

func TestProgressModel_NoQuotation(t *testing.T) {
	pm := newProgressModel(ModeRun)

	pm, _ = update(t, pm, summaryMsg{totals: Totals{Documents: 1, Unchanged: 1}})

	assert.Contains(t, pm.View(), NoQuotationMessage)
}

func TestProgressModel_RulesMode(t *testing.T) {
	pm := newProgressModel(ModeRules)

	assert.Contains(t, pm.View(), "Loading rules")

	pm, cmd := update(t, pm, rulesMsg{
		rules: m.RuleSet{
			Origin: "rules.yaml",
			Rules:  []m.Rule{{Desc: "notes", XPath: "//note"}, {XPath: "//p["}},
		},
		problems: map[int]error{1: errors.New("bad expression")},
	})
	require.NotNil(t, cmd)

	view := pm.View()
	assert.Contains(t, view, "Rules from rules.yaml")
	assert.Contains(t, view, "//note")
	assert.Contains(t, view, "notes")
	assert.Contains(t, view, "invalid: bad expression")
	assert.Contains(t, view, "2 rule(s), 1 invalid")
}

func TestProgressModel_Keys(t *testing.T) {
	tests := []struct {
		name            string
		finished        bool
		key             tea.KeyMsg
		wantInterrupted bool
	}{
		{name: "q while running", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, wantInterrupted: true},
		{name: "ctrl+c while running", key: tea.KeyMsg{Type: tea.KeyCtrlC}, wantInterrupted: true},
		{name: "esc once finished", finished: true, key: tea.KeyMsg{Type: tea.KeyEsc}, wantInterrupted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := newProgressModel(ModeRun)
			pm.finished = tt.finished

			pm, cmd := update(t, pm, tt.key)
			require.NotNil(t, cmd)

			assert.Equal(t, tt.wantInterrupted, pm.interrupted)
		})
	}
}

func TestProgressModel_LimitsResultsToWindow(t *testing.T) {
	pm := newProgressModel(ModeRun)
	pm, _ = update(t, pm, tea.WindowSizeMsg{Width: 80, Height: 14})

	for _, source := range []m.Source{"a.xml", "b.xml", "c.xml", "d.xml"} {
		pm, _ = update(t, pm, documentResultMsg{report: m.Report{Source: source, Status: m.Unchanged}})
	}

	view := pm.View()
	assert.Contains(t, view, "2 earlier document(s)")
	assert.NotContains(t, view, "a.xml")
	assert.Contains(t, view, "d.xml")
}

func TestRemoveSource(t *testing.T) {
	sources := []m.Source{"a", "b", "c"}

	assert.Equal(t, []m.Source{"a", "c"}, removeSource(sources, "b"))
	assert.Equal(t, []m.Source{"a", "b", "c"}, sources)
	assert.Equal(t, []m.Source{"a", "b", "c"}, removeSource(sources, "z"))
}

func TestTUI_RunsUntilSummary(t *testing.T) {
	var (
		buf         bytes.Buffer
		interrupted atomic.Bool
	)

	ui := NewTUI(&buf,
		WithInterrupt(func() { interrupted.Store(true) }),
		WithProgramOptions(tea.WithInput(nil)),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, ui.Start(ctx, WithRunMode()))

	ui.DisplayRunInfo(ctx, RunInfo{RunID: "run", Documents: 1, Rules: 1, Workers: 1})
	ui.DisplayDocumentStart(ctx, "a.xml")
	ui.DisplayDocumentResult(ctx, m.Report{Source: "a.xml", Status: m.Unchanged})
	ui.DisplaySummary(ctx, []m.Report{{Source: "a.xml", Status: m.Unchanged}})
	ui.Wait(ctx)

	require.NoError(t, ctx.Err())
	assert.False(t, interrupted.Load())
	assert.Contains(t, buf.String(), NoQuotationMessage)
}

func TestTUI_CloseWithoutStart(t *testing.T) {
	ui := NewTUI(&bytes.Buffer{})

	ui.Close(context.Background())
	ui.Wait(context.Background())
	ui.DisplayDocumentStart(context.Background(), "a.xml")
}

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	assert.IsType(t, &SimpleUI{}, NewUI(cmd, false))
	assert.IsType(t, &TUI{}, NewUI(cmd, true))
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
