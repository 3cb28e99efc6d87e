package domain_test

import (
	"errors"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"modecitation.dev/pkg/modecitation/internal/adapter"
	adaptermocks "modecitation.dev/pkg/modecitation/internal/adapter/mocks"
	"modecitation.dev/pkg/modecitation/internal/domain"
	m "modecitation.dev/pkg/modecitation/internal/model"
	"modecitation.dev/pkg/modecitation/pkg/xmltree"
)

func newOrchestrator(opts ...domain.OrchestratorOption) domain.Orchestrator {
	return domain.NewOrchestrator(adapter.NewXMLAdapter(nil, xmltree.Options{}), opts...)
}

func rules(xpaths ...string) m.RuleSet {
	rs := m.RuleSet{}
	for _, x := range xpaths {
		rs.Rules = append(rs.Rules, m.Rule{XPath: x})
	}

	return rs
}

func TestOrchestrator_Apply(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rules m.RuleSet
		want  string
	}{
		{
			name:  "text quotation",
			input: `<doc><p>Some text with «quotes».</p></doc>`,
			rules: rules("//p"),
			want:  `<doc><p>Some text with <q class="containsQuotes">«quotes»</q>.</p></doc>`,
		},
		{
			name:  "quotation across formatting",
			input: `<doc><p>Text before «<b>bold text</b>» text after</p></doc>`,
			rules: rules("//p"),
			want:  `<doc><p>Text before <q class="containsQuotes">«bold text»</q> text after</p></doc>`,
		},
		{
			name:  "formatting used as quotation",
			input: `<doc><p><b>« quoted »</b> <b>not a quote</b> «x»</p></doc>`,
			rules: rules("//p"),
			want:  `<doc><p><q class="containsQuotes">« quoted »</q> <b>not a quote</b> <q class="containsQuotes">«x»</q></p></doc>`,
		},
		{
			name:  "processing instructions survive",
			input: `<doc><p>x<?pi data?>«a»</p></doc>`,
			rules: rules("//p"),
			want:  `<doc><p>x<?pi data?><q class="containsQuotes">«a»</q></p></doc>`,
		},
		{
			name:  "internal entities are expanded",
			input: `<!DOCTYPE doc [<!ENTITY nbsp "&#160;">]><doc><p>«a&nbsp;»</p></doc>`,
			rules: rules("//p"),
			want:  `<!DOCTYPE doc [<!ENTITY nbsp "&#160;">]>` + "\n" + "<doc><p><q class=\"containsQuotes\">«a\u00a0»</q></p></doc>",
		},
		{
			name:  "only selected zones are rewritten",
			input: `<doc><note>«n»</note><p>«p»</p></doc>`,
			rules: rules("//note"),
			want:  `<doc><note><q class="containsQuotes">«n»</q></note><p>«p»</p></doc>`,
		},
		{
			name:  "text node selection",
			input: `<doc><p>«a»<i>«b»</i></p></doc>`,
			rules: rules("//p/text()"),
			want:  `<doc><p><q class="containsQuotes">«a»</q><i>«b»</i></p></doc>`,
		},
		{
			name:  "overlapping rules",
			input: `<doc><div><p>«a» and «b»</p></div></doc>`,
			rules: rules("//div", "//p", "//*"),
			want:  `<doc><div><p><q class="containsQuotes">«a»</q> and <q class="containsQuotes">«b»</q></p></div></doc>`,
		},
		{
			name:  "unbalanced and nested text untouched",
			input: `<doc><p>« never closed</p><p>« a « b » c »</p></doc>`,
			rules: rules("//p"),
			want:  `<doc><p>« never closed</p><p>« a « b » c »</p></doc>`,
		},
		{
			name:  "no rules still reconciles formatting",
			input: `<doc><p>x «<i>y</i>» «z»</p></doc>`,
			rules: m.RuleSet{},
			want:  `<doc><p>x <q class="containsQuotes">«y»</q> «z»</p></doc>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.input)

			out, _, err := newOrchestrator().Apply(doc, tt.rules)
			require.NoError(t, err)

			assert.Equal(t, tt.want, render(t, out))
		})
	}
}

func TestOrchestrator_Idempotent(t *testing.T) {
	inputs := []string{
		`<doc><p>Some text with «quotes». And «more».</p></doc>`,
		`<doc><p>Text before «<b>bold text</b>» text after</p><p><i>«whole»</i></p></doc>`,
		`<doc><p>« never closed</p><p>« a « b » c »</p></doc>`,
		`<doc><div><p>«a»<span>«b» c</span></p></div></doc>`,
	}

	for _, input := range inputs {
		o := newOrchestrator()

		first, _, err := o.Apply(parseDoc(t, input), rules("//p"))
		require.NoError(t, err)

		once := render(t, first)

		second, tally, err := o.Apply(parseDoc(t, once), rules("//p"))
		require.NoError(t, err)

		assert.Equal(t, once, render(t, second), input)
		assert.Zero(t, tally.Changes(), input)
	}
}

func TestOrchestrator_Tally(t *testing.T) {
	doc := parseDoc(t, `<doc><p>«a» «<b>b</b>»</p><p><i>«c»</i></p><p>« open</p><note>«n»</note></doc>`)

	_, tally, err := newOrchestrator().Apply(doc, m.RuleSet{Rules: []m.Rule{
		{Desc: "paragraphs", XPath: "//p"},
		{XPath: "//note"},
	}})
	require.NoError(t, err)

	assert.Equal(t, 2, tally.Wrapped)
	assert.Equal(t, 1, tally.CrossTagMerged)
	assert.Equal(t, 1, tally.FormattingToQuote)
	assert.Equal(t, 4, tally.Changes())

	require.Len(t, tally.Rules, 4)
	assert.Equal(t, m.RuleHit{Rule: m.Rule{Desc: "paragraphs", XPath: "//p"}, Pass: 1, Matched: 3, Wrapped: 1}, tally.Rules[0])
	assert.Equal(t, m.RuleHit{Rule: m.Rule{XPath: "//note"}, Pass: 1, Matched: 1, Wrapped: 1}, tally.Rules[1])
	assert.Equal(t, 2, tally.Rules[2].Pass)
	assert.Zero(t, tally.Rules[2].Wrapped)
	assert.Zero(t, tally.Rules[3].Wrapped)

	require.Len(t, tally.Warnings, 1)
	assert.Equal(t, m.Warning{Kind: m.WarningUnbalanced, Text: "« open"}, tally.Warnings[0])
}

func TestOrchestrator_ContainerOptions(t *testing.T) {
	doc := parseDoc(t, `<doc><p>«<b>a</b>»</p><li>«<em>b</em>»</li></doc>`)

	out, _, err := newOrchestrator(
		domain.WithContainerXPath("//li"),
		domain.WithFormattingTags("em"),
	).Apply(doc, m.RuleSet{})
	require.NoError(t, err)

	assert.Equal(t, `<doc><p>«<b>a</b>»</p><li><q class="containsQuotes">«b»</q></li></doc>`, render(t, out))
}

func TestOrchestrator_Errors(t *testing.T) {
	t.Run("nil document", func(t *testing.T) {
		_, _, err := newOrchestrator().Apply(nil, rules("//p"))
		assert.ErrorIs(t, err, domain.ErrLoad)
		assert.ErrorIs(t, err, domain.ErrNoDocument)
	})

	t.Run("invalid rule expression", func(t *testing.T) {
		_, _, err := newOrchestrator().Apply(parseDoc(t, `<doc/>`), rules("//p", "//p["))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrRule)

		var se *domain.StageError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, domain.StageRule, se.Stage)
		assert.Equal(t, "//p[", se.Expr)
	})

	t.Run("invalid container expression", func(t *testing.T) {
		_, _, err := newOrchestrator(domain.WithContainerXPath("//[")).Apply(parseDoc(t, `<doc/>`), rules("//p"))

		var se *domain.StageError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "//[", se.Expr)
	})

	t.Run("reload failure", func(t *testing.T) {
		tree := adaptermocks.NewMockTreeAdapter(t)
		tree.EXPECT().Query(mock.Anything, "//p").Return(nil, nil)
		tree.EXPECT().Canonicalize(mock.Anything).Return(nil, errors.New("boom"))

		_, _, err := domain.NewOrchestrator(tree).Apply(parseDoc(t, `<doc/>`), rules("//p"))
		assert.ErrorIs(t, err, domain.ErrSerialize)
		assert.NotErrorIs(t, err, domain.ErrRule)
	})

	t.Run("second pass runs on the reloaded tree", func(t *testing.T) {
		reloaded := parseDoc(t, `<doc><p>«r»</p></doc>`)

		tree := adaptermocks.NewMockTreeAdapter(t)
		tree.EXPECT().Query(mock.Anything, "//p").Return(nil, nil).Once()
		tree.EXPECT().Query(mock.Anything, "//x").Return(nil, nil).Once()
		tree.EXPECT().Canonicalize(mock.Anything).Return(reloaded, nil).Once()
		tree.EXPECT().Query(mock.Anything, "//x").Return([]*xmlquery.Node{xmltree.Root(reloaded).FirstChild}, nil).Once()

		out, tally, err := domain.NewOrchestrator(tree).Apply(parseDoc(t, `<doc/>`), rules("//x"))
		require.NoError(t, err)
		assert.Same(t, reloaded, out)
		assert.Equal(t, 1, tally.Wrapped)
	})
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "loaded", domain.StateLoaded.String())
	assert.Equal(t, "reloaded", domain.StateReloaded.String())
	assert.Equal(t, "rules-applied-pass-2", domain.StateRulesAppliedPass2.String())
	assert.Equal(t, "done", domain.StateDone.String())
	assert.Equal(t, "unknown", domain.State(42).String())
}
