package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "modecitation.dev/pkg/modecitation/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skippedStyle = lipgloss.NewStyle().Faint(true)
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

const title = "modecitation - quote mode"

// TUIOption configures a TUI.
type TUIOption func(*TUI)

// WithInterrupt registers a function called when the user aborts the display.
func WithInterrupt(fn func()) TUIOption {
	return func(t *TUI) {
		t.interrupt = fn
	}
}

// WithProgramOptions passes extra options to the underlying Bubble Tea program.
func WithProgramOptions(opts ...tea.ProgramOption) TUIOption {
	return func(t *TUI) {
		t.programOptions = append(t.programOptions, opts...)
	}
}

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output         io.Writer
	interrupt      func()
	programOptions []tea.ProgramOption

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer, opts ...TUIOption) *TUI {
	t := &TUI{output: output}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := &StartConfig{}
	for _, opt := range options {
		opt(cfg)
	}

	model := newProgressModel(cfg.mode)

	// Get initial terminal size
	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	opts := append([]tea.ProgramOption{tea.WithOutput(t.output), tea.WithContext(ctx)}, t.programOptions...)
	program := tea.NewProgram(model, opts...)
	done := make(chan struct{})

	t.mu.Lock()
	t.program = program
	t.done = done
	t.mu.Unlock()

	go func() {
		defer close(done)

		final, err := program.Run()
		if err != nil {
			return
		}

		if pm, ok := final.(progressModel); ok && pm.interrupted && t.interrupt != nil {
			t.interrupt()
		}
	}()

	return nil
}

// Close stops the program and waits for it to restore the terminal.
func (t *TUI) Close(_ context.Context) {
	program, done := t.current()
	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// Wait blocks until the program exits or ctx is done.
func (t *TUI) Wait(ctx context.Context) {
	_, done := t.current()
	if done == nil {
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// DisplayRunInfo shows the batch header.
func (t *TUI) DisplayRunInfo(_ context.Context, info RunInfo) {
	t.send(runInfoMsg(info))
}

// DisplayDocumentStart adds source to the in-progress list.
func (t *TUI) DisplayDocumentStart(_ context.Context, source m.Source) {
	t.send(documentStartMsg{source: source})
}

// DisplayDocumentResult moves a document from in-progress to results.
func (t *TUI) DisplayDocumentResult(_ context.Context, report m.Report) {
	t.send(documentResultMsg{report: report})
}

// DisplaySummary shows the totals and ends the program.
func (t *TUI) DisplaySummary(_ context.Context, reports []m.Report) {
	t.send(summaryMsg{totals: Summarize(reports)})
}

// DisplayRules shows a rules file and ends the program.
func (t *TUI) DisplayRules(_ context.Context, rules m.RuleSet, problems map[int]error) error {
	t.send(rulesMsg{rules: rules, problems: problems})
	return nil
}

func (t *TUI) current() (*tea.Program, chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.program, t.done
}

func (t *TUI) send(msg tea.Msg) {
	if program, _ := t.current(); program != nil {
		program.Send(msg)
	}
}

type (
	runInfoMsg        RunInfo
	documentStartMsg  struct{ source m.Source }
	documentResultMsg struct{ report m.Report }
	summaryMsg        struct{ totals Totals }
	rulesMsg          struct {
		rules    m.RuleSet
		problems map[int]error
	}
)

// progressModel is the Bubble Tea model shared by both modes.
type progressModel struct {
	mode        StartMode
	spinner     spinner.Model
	info        RunInfo
	active      []m.Source
	results     []m.Report
	totals      *Totals
	rules       *rulesMsg
	width       int
	height      int
	interrupted bool
	finished    bool
}

func newProgressModel(mode StartMode) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return progressModel{mode: mode, spinner: s}
}

func (pm progressModel) Init() tea.Cmd {
	return pm.spinner.Tick
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.width = msg.Width
		pm.height = msg.Height

		return pm, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			pm.interrupted = !pm.finished
			return pm, tea.Quit
		}

		return pm, nil
	case runInfoMsg:
		pm.info = RunInfo(msg)
		return pm, nil
	case documentStartMsg:
		pm.active = append(pm.active, msg.source)
		return pm, nil
	case documentResultMsg:
		pm.active = removeSource(pm.active, msg.report.Source)
		pm.results = append(pm.results, msg.report)

		return pm, nil
	case summaryMsg:
		totals := msg.totals
		pm.totals = &totals
		pm.finished = true

		return pm, tea.Quit
	case rulesMsg:
		pm.rules = &msg
		pm.finished = true

		return pm, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		pm.spinner, cmd = pm.spinner.Update(msg)

		return pm, cmd
	}

	return pm, nil
}

func (pm progressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if pm.mode == ModeRules {
		pm.renderRules(&b)
		return b.String()
	}

	if pm.info.RunID != "" {
		fmt.Fprintf(&b, "  Run %s: %d document(s), %d rule(s), %d worker(s)", shortID(pm.info.RunID), pm.info.Documents, pm.info.Rules, pm.info.Workers)

		if pm.info.DryRun {
			b.WriteString(" (dry run)")
		}

		b.WriteString("\n\n")
	}

	pm.renderResults(&b)

	for _, source := range pm.active {
		fmt.Fprintf(&b, "  %s %s\n", pm.spinner.View(), source)
	}

	if pm.totals != nil {
		pm.renderTotals(&b)
	} else if !pm.finished {
		b.WriteString(helpStyle.Render("\n  Press q to abort"))
		b.WriteString("\n")
	}

	return b.String()
}

func (pm progressModel) renderResults(b *strings.Builder) {
	results := pm.results

	// Keep the active list and the totals on screen.
	if limit := pm.visibleResults(); limit > 0 && len(results) > limit {
		fmt.Fprintf(b, "  %s\n", skippedStyle.Render(fmt.Sprintf("… %d earlier document(s)", len(results)-limit)))
		results = results[len(results)-limit:]
	}

	for _, r := range results {
		b.WriteString("  ")
		b.WriteString(renderReportLine(r))
		b.WriteString("\n")
	}
}

func (pm progressModel) visibleResults() int {
	if pm.height == 0 {
		return 0
	}

	// header box, run line, totals and help
	reserved := 12 + len(pm.active)

	available := pm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

func (pm progressModel) renderTotals(b *strings.Builder) {
	t := pm.totals

	fmt.Fprintf(b, "\n  %d document(s): %s, %s, %s",
		t.Documents,
		okStyle.Render(fmt.Sprintf("%d done", t.Done)),
		skippedStyle.Render(fmt.Sprintf("%d unchanged", t.Unchanged)),
		failedStyle.Render(fmt.Sprintf("%d failed", t.Failed)))

	if t.Skipped > 0 {
		fmt.Fprintf(b, ", %d skipped", t.Skipped)
	}

	fmt.Fprintf(b, "\n  %d quotation(s), %d warning(s)\n", t.Quotes, t.Warnings)

	if t.Quotes == 0 && t.Failed == 0 {
		fmt.Fprintf(b, "\n  %s\n", NoQuotationMessage)
	}
}

func (pm progressModel) renderRules(b *strings.Builder) {
	if pm.rules == nil {
		fmt.Fprintf(b, "  %s Loading rules\n", pm.spinner.View())
		return
	}

	fmt.Fprintf(b, "  Rules from %s\n\n", pm.rules.rules.Origin)

	for i, rule := range pm.rules.rules.Rules {
		status := okStyle.Render("ok")
		if err, ok := pm.rules.problems[i]; ok {
			status = failedStyle.Render("invalid: " + err.Error())
		}

		fmt.Fprintf(b, "  %2d. %-40s %s\n", i+1, rule.XPath, status)

		if rule.Desc != "" {
			fmt.Fprintf(b, "      %s\n", helpStyle.Render(rule.Desc))
		}
	}

	fmt.Fprintf(b, "\n  %d rule(s), %d invalid\n", pm.rules.rules.Len(), len(pm.rules.problems))
}

func renderReportLine(r m.Report) string {
	switch r.Status {
	case m.Failed:
		return failedStyle.Render("✗ "+string(r.Source)) + " " + fmt.Sprint(r.Error)
	case m.Unchanged:
		return skippedStyle.Render("· " + string(r.Source) + " unchanged")
	}

	line := okStyle.Render("✓ "+string(r.Source)) + fmt.Sprintf(" %d quotation(s)", r.Tally.Changes())
	if n := len(r.Tally.Warnings); n > 0 {
		line += " " + warningStyle.Render(fmt.Sprintf("%d warning(s)", n))
	}

	return line
}

func removeSource(sources []m.Source, source m.Source) []m.Source {
	for i, s := range sources {
		if s == source {
			return append(sources[:i:i], sources[i+1:]...)
		}
	}

	return sources
}
