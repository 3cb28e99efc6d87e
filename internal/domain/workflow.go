package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"modecitation.dev/pkg/modecitation/internal/adapter"
	"modecitation.dev/pkg/modecitation/internal/controller"
	m "modecitation.dev/pkg/modecitation/internal/model"
)

var (
	// ErrDocumentsFailed is returned by Run in keep-going mode when at least
	// one document failed.
	ErrDocumentsFailed = errors.New("some documents failed")
	// ErrNoSources is returned when Run is called without any source.
	ErrNoSources = errors.New("no source document given")
	// ErrOutputNotDirectory is returned when several sources share a file or stdout output.
	ErrOutputNotDirectory = errors.New("several sources require an output directory")
)

const fallbackDocumentName = "document.xml"

// RunArgs contains the arguments of a quote mode batch.
type RunArgs struct {
	Sources []m.Source
	Rules   m.Path
	// Output is a file (or "-" for stdout) for a single source and a
	// directory when there are several.
	Output    m.Target
	Reports   m.Path
	Parallel  uint
	KeepGoing bool
	DryRun    bool
	Diff      bool
}

// RulesArgs contains the arguments for listing a rules file.
type RulesArgs struct {
	Rules m.Path
}

// Workflow is the entry point used by the CLI commands.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	ListRules(ctx context.Context, args RulesArgs) error
}

type workflow struct {
	adapter.RuleSetLoader
	adapter.DocumentSource
	adapter.DocumentSink
	adapter.TreeAdapter
	adapter.ReportStore
	controller.UI
	Orchestrator
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	rulesLoader adapter.RuleSetLoader,
	source adapter.DocumentSource,
	sink adapter.DocumentSink,
	tree adapter.TreeAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	orchestrator Orchestrator,
) Workflow {
	return &workflow{
		RuleSetLoader:  rulesLoader,
		DocumentSource: source,
		DocumentSink:   sink,
		TreeAdapter:    tree,
		ReportStore:    reportStore,
		UI:             ui,
		Orchestrator:   orchestrator,
	}
}

type job struct {
	index  int
	source m.Source
	target m.Target
}

func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	jobs, err := planJobs(args)
	if err != nil {
		return stageErr(StageConfig, err)
	}

	rules, err := w.Load(ctx, args.Rules)
	if err != nil {
		return stageErr(StageConfig, fmt.Errorf("load rules: %w", err))
	}

	runID := uuid.NewString()
	workers := workerCount(args.Parallel, len(jobs))

	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	slog.Info("quote mode run started", "run_id", runID, "documents", len(jobs), "rules", rules.Len(), "workers", workers)

	w.DisplayRunInfo(ctx, controller.RunInfo{
		RunID:     runID,
		Rules:     rules.Len(),
		Documents: len(jobs),
		Workers:   workers,
		DryRun:    args.DryRun,
	})

	reports, runErr := w.processAll(ctx, runID, rules, jobs, workers, args)

	w.DisplaySummary(ctx, reports)

	if args.Reports != "" {
		path, err := w.SaveReports(args.Reports, reports)
		if err != nil {
			slog.Error("Failed to save reports", "dir", args.Reports, "error", err)
			return errors.Join(runErr, fmt.Errorf("save reports: %w", err))
		}

		slog.Info("reports saved", "path", path)
	}

	w.Wait(ctx)

	return runErr
}

func (w *workflow) processAll(ctx context.Context, runID string, rules m.RuleSet, jobs []job, workers int, args RunArgs) ([]m.Report, error) {
	reports := make([]m.Report, len(jobs))
	for _, j := range jobs {
		reports[j.index] = m.Report{RunID: runID, Source: j.source, Target: j.target, Status: m.Pending}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, j := range jobs {
		current := j

		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}

			report := w.processDocument(groupCtx, runID, rules, current, args)
			// each goroutine owns its slot
			reports[current.index] = report

			if report.Error != nil && !args.KeepGoing {
				return report.Error
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return reports, err
	}

	if err := ctx.Err(); err != nil {
		return reports, err
	}

	return reports, failures(reports)
}

func failures(reports []m.Report) error {
	var (
		failed int
		first  error
	)

	for _, r := range reports {
		if r.Status != m.Failed {
			continue
		}

		failed++

		if first == nil {
			first = r.Error
		}
	}

	if failed == 0 {
		return nil
	}

	return fmt.Errorf("%w: %d of %d: %w", ErrDocumentsFailed, failed, len(reports), first)
}

func (w *workflow) processDocument(ctx context.Context, runID string, rules m.RuleSet, j job, args RunArgs) m.Report {
	report := m.Report{
		RunID:   runID,
		Source:  j.source,
		Target:  j.target,
		Status:  m.Processing,
		Started: time.Now(),
	}

	w.DisplayDocumentStart(ctx, j.source)

	tally, diff, unchanged, err := w.transform(ctx, rules, j, args)

	report.Tally = tally
	report.Diff = diff
	report.Duration = time.Since(report.Started)

	switch {
	case err != nil:
		report.Status = m.Failed
		report.Error = err
		slog.Error("document failed", "source", j.source, "error", err)
	case unchanged:
		report.Status = m.Unchanged
	default:
		report.Status = m.Done
	}

	report.Finalize()

	w.DisplayDocumentResult(ctx, report)

	return report
}

func (w *workflow) transform(ctx context.Context, rules m.RuleSet, j job, args RunArgs) (m.Tally, string, bool, error) {
	data, err := w.Read(ctx, j.source)
	if err != nil {
		return m.Tally{}, "", false, stageErr(StageLoad, err)
	}

	doc, err := w.Parse(data)
	if err != nil {
		return m.Tally{}, "", false, stageErr(StageLoad, fmt.Errorf("parse %s: %w", j.source, err))
	}

	result, tally, err := w.Apply(doc, rules)
	if err != nil {
		return tally, "", false, err
	}

	out, err := w.Serialize(result)
	if err != nil {
		return tally, "", false, stageErr(StageSerialize, err)
	}

	var diff string
	if args.Diff {
		diff = unifiedDiff(string(j.source), data, out)
	}

	if !args.DryRun {
		if err := w.Write(ctx, j.target, out); err != nil {
			return tally, diff, false, stageErr(StageSerialize, err)
		}
	}

	return tally, diff, tally.Changes() == 0, nil
}

func (w *workflow) ListRules(ctx context.Context, args RulesArgs) error {
	rules, err := w.Load(ctx, args.Rules)
	if err != nil {
		return stageErr(StageConfig, fmt.Errorf("load rules: %w", err))
	}

	problems := make(map[int]error)

	for i, rule := range rules.Rules {
		if err := w.Validate(rule.XPath); err != nil {
			problems[i] = err
		}
	}

	if err := w.Start(ctx, controller.WithRulesMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	if err := w.DisplayRules(ctx, rules, problems); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	if len(problems) > 0 {
		first := sortedKeys(problems)[0]
		return ruleErr(rules.Rules[first].XPath, problems[first])
	}

	return nil
}

func planJobs(args RunArgs) ([]job, error) {
	if len(args.Sources) == 0 {
		return nil, ErrNoSources
	}

	if len(args.Sources) == 1 {
		return []job{{index: 0, source: args.Sources[0], target: args.Output}}, nil
	}

	if args.Output.IsStdout() && !args.DryRun {
		return nil, ErrOutputNotDirectory
	}

	jobs := make([]job, len(args.Sources))
	seen := make(map[m.Target]m.Source, len(args.Sources))

	for i, source := range args.Sources {
		target := m.Target("-")
		if !args.Output.IsStdout() {
			target = m.Target(filepath.Join(string(args.Output), documentName(source)))

			if previous, ok := seen[target]; ok {
				return nil, fmt.Errorf("%s and %s both write to %s", previous, source, target)
			}

			seen[target] = source
		}

		jobs[i] = job{index: i, source: source, target: target}
	}

	return jobs, nil
}

func documentName(source m.Source) string {
	if !source.IsRemote() {
		return filepath.Base(string(source))
	}

	u, err := url.Parse(string(source))
	if err != nil {
		return fallbackDocumentName
	}

	name := path.Base(u.Path)
	if name == "/" || name == "." || name == "" {
		return fallbackDocumentName
	}

	return name
}

func workerCount(parallel uint, jobs int) int {
	workers := int(parallel)
	if workers <= 0 {
		workers = 1
	}

	if workers > jobs {
		workers = jobs
	}

	return workers
}

func unifiedDiff(name string, before, after []byte) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: name,
		ToFile:   name + " (quote mode)",
		Context:  3,
	})
	if err != nil {
		slog.Warn("diff failed", "source", name, "error", err)
		return ""
	}

	return strings.TrimRight(diff, "\n")
}

func sortedKeys(problems map[int]error) []int {
	keys := make([]int, 0, len(problems))
	for k := range problems {
		keys = append(keys, k)
	}

	sort.Ints(keys)

	return keys
}
