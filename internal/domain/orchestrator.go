package domain

import (
	"errors"
	"log/slog"

	"github.com/antchfx/xmlquery"

	"modecitation.dev/pkg/modecitation/internal/adapter"
	m "modecitation.dev/pkg/modecitation/internal/model"
)

// DefaultContainerXPath selects the elements checked for formatting used as
// quotation marks.
const DefaultContainerXPath = "//p"

// ErrNoDocument is returned when Apply receives a nil tree.
var ErrNoDocument = errors.New("no document")

// State is a step of the quote mode run on one document.
type State int

// States in execution order.
const (
	StateLoaded State = iota
	StateReconciledFormatting
	StateRulesAppliedPass1
	StateReloaded
	StateRulesAppliedPass2
	StateDone
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateReconciledFormatting:
		return "reconciled-formatting"
	case StateRulesAppliedPass1:
		return "rules-applied-pass-1"
	case StateReloaded:
		return "reloaded"
	case StateRulesAppliedPass2:
		return "rules-applied-pass-2"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Orchestrator runs the quote mode on a parsed document: formatting
// reconciliation, a first rule pass, a serialize/reparse round trip and a
// second rule pass. It returns the final tree, which is a new tree.
type Orchestrator interface {
	Apply(doc *xmlquery.Node, rules m.RuleSet) (*xmlquery.Node, m.Tally, error)
}

// OrchestratorOption configures an orchestrator.
type OrchestratorOption func(*orchestrator)

// WithContainerXPath sets the expression selecting reconciliation containers.
func WithContainerXPath(expr string) OrchestratorOption {
	return func(o *orchestrator) {
		if expr != "" {
			o.containerXPath = expr
		}
	}
}

// WithFormattingTags sets the element names treated as informal quotation markers.
func WithFormattingTags(tags ...string) OrchestratorOption {
	return func(o *orchestrator) {
		if len(tags) > 0 {
			o.formattingTags = tags
		}
	}
}

type orchestrator struct {
	tree           adapter.TreeAdapter
	containerXPath string
	formattingTags []string
}

// NewOrchestrator constructs an Orchestrator using tree for XPath queries and
// reloads.
func NewOrchestrator(tree adapter.TreeAdapter, opts ...OrchestratorOption) Orchestrator {
	o := &orchestrator{
		tree:           tree,
		containerXPath: DefaultContainerXPath,
		formattingTags: DefaultFormattingTags,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

type run struct {
	state      State
	doc        *xmlquery.Node
	rules      m.RuleSet
	tally      m.Tally
	rewriter   *Rewriter
	reconciler *Reconciler
}

func (o *orchestrator) Apply(doc *xmlquery.Node, rules m.RuleSet) (*xmlquery.Node, m.Tally, error) {
	if doc == nil {
		return nil, m.Tally{}, stageErr(StageLoad, ErrNoDocument)
	}

	r := &run{
		state:      StateLoaded,
		doc:        doc,
		rules:      rules,
		reconciler: NewReconciler(o.formattingTags),
	}
	r.rewriter = NewRewriter(&r.tally)

	for r.state != StateDone {
		next, err := o.step(r)
		if err != nil {
			slog.Error("quote mode failed", "state", r.state, "error", err)
			return nil, r.tally, err
		}

		slog.Debug("quote mode transition", "from", r.state, "to", next)
		r.state = next
	}

	return r.doc, r.tally, nil
}

func (o *orchestrator) step(r *run) (State, error) {
	switch r.state {
	case StateLoaded:
		containers, err := o.tree.Query(r.doc, o.containerXPath)
		if err != nil {
			return r.state, ruleErr(o.containerXPath, err)
		}

		if err := r.reconciler.Reconcile(containers, &r.tally); err != nil {
			return r.state, stageErr(StageStructure, err)
		}

		return StateReconciledFormatting, nil
	case StateReconciledFormatting:
		return StateRulesAppliedPass1, o.applyRules(r, 1)
	case StateRulesAppliedPass1:
		doc, err := o.tree.Canonicalize(r.doc)
		if err != nil {
			return r.state, stageErr(StageSerialize, err)
		}

		r.doc = doc

		return StateReloaded, nil
	case StateReloaded:
		return StateRulesAppliedPass2, o.applyRules(r, 2)
	default:
		return StateDone, nil
	}
}

func (o *orchestrator) applyRules(r *run, pass int) error {
	for _, rule := range r.rules.Rules {
		nodes, err := o.tree.Query(r.doc, rule.XPath)
		if err != nil {
			return ruleErr(rule.XPath, err)
		}

		before := r.tally.Wrapped

		for _, node := range nodes {
			if err := r.rewriter.Rewrite(node); err != nil {
				return stageErr(StageStructure, err)
			}
		}

		r.tally.Rules = append(r.tally.Rules, m.RuleHit{
			Rule:    rule,
			Pass:    pass,
			Matched: len(nodes),
			Wrapped: r.tally.Wrapped - before,
		})

		slog.Debug("rule applied", "rule", rule.Label(), "pass", pass, "matched", len(nodes), "wrapped", r.tally.Wrapped-before)
	}

	return nil
}
