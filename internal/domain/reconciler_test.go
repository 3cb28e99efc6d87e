package domain_test

import (
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modecitation.dev/pkg/modecitation/internal/domain"
	m "modecitation.dev/pkg/modecitation/internal/model"
	"modecitation.dev/pkg/modecitation/pkg/xmltree"
)

func reconcile(t *testing.T, r *domain.Reconciler, input string) (string, m.Tally) {
	t.Helper()

	doc := parseDoc(t, input)

	var tally m.Tally
	require.NoError(t, r.Reconcile([]*xmlquery.Node{xmltree.Root(doc)}, &tally))

	return render(t, doc), tally
}

func TestReconciler_Reconcile(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		merged    int
		converted int
	}{
		{
			name:   "quotation across a bold run",
			input:  `<p>Text before «<b>bold text</b>» text after</p>`,
			want:   `<p>Text before <q class="containsQuotes">«bold text»</q> text after</p>`,
			merged: 1,
		},
		{
			name:   "several runs in one container",
			input:  `<p>«<i>one</i>» and «<u>two</u> more» end</p>`,
			want:   `<p><q class="containsQuotes">«one»</q> and <q class="containsQuotes">«two more»</q> end</p>`,
			merged: 2,
		},
		{
			name:   "plain text between formatting runs",
			input:  `<p>a «<b>x</b> y <i>z</i>»</p>`,
			want:   `<p>a <q class="containsQuotes">«x y z»</q></p>`,
			merged: 1,
		},
		{
			name:      "formatting holding a whole quotation",
			input:     `<p>He said <b>« quoted »</b> and <b>not a quote</b>.</p>`,
			want:      `<p>He said <q class="containsQuotes">« quoted »</q> and <b>not a quote</b>.</p>`,
			converted: 1,
		},
		{
			name:      "surrounding blanks are ignored",
			input:     `<p><i> «a» </i></p>`,
			want:      `<p><q class="containsQuotes"> «a» </q></p>`,
			converted: 1,
		},
		{
			name:      "children are kept when converting",
			input:     `<p><b>«a <sup>1</sup>»</b></p>`,
			want:      `<p><q class="containsQuotes">«a <sup>1</sup>»</q></p>`,
			converted: 1,
		},
		{
			name:  "two quotations in one formatting run",
			input: `<p><b>«a» and «b»</b></p>`,
			want:  `<p><b>«a» and «b»</b></p>`,
		},
		{
			name:  "nested quotations leave the container alone",
			input: `<p>« a <b>« b »</b> c »</p>`,
			want:  `<p>« a <b>« b »</b> c »</p>`,
		},
		{
			name:  "other elements are not formatting",
			input: `<p>«<span>x</span>»</p>`,
			want:  `<p>«<span>x</span>»</p>`,
		},
		{
			name:  "formatting with nested markup is not merged",
			input: `<p>«<b>x <i>y</i></b>» z</p>`,
			want:  `<p>«<b>x <i>y</i></b>» z</p>`,
		},
		{
			name:  "no guillemets",
			input: `<p><b>bold</b> text</p>`,
			want:  `<p><b>bold</b> text</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, tally := reconcile(t, domain.NewReconciler(nil), tt.input)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.merged, tally.CrossTagMerged)
			assert.Equal(t, tt.converted, tally.FormattingToQuote)
		})
	}
}

func TestReconciler_NestedWarning(t *testing.T) {
	_, tally := reconcile(t, domain.NewReconciler(nil), `<p>« a <b>« b »</b> c »</p>`)

	require.Len(t, tally.Warnings, 1)
	assert.Equal(t, m.WarningNested, tally.Warnings[0].Kind)
}

func TestReconciler_CustomTags(t *testing.T) {
	r := domain.NewReconciler([]string{"em"})

	got, tally := reconcile(t, r, `<p>«<em>x</em>» <b>«y»</b></p>`)

	assert.Equal(t, `<p><q class="containsQuotes">«x»</q> <b>«y»</b></p>`, got)
	assert.Equal(t, 1, tally.CrossTagMerged)
	assert.Zero(t, tally.FormattingToQuote)
}

func TestReconciler_PrefixedFormatting(t *testing.T) {
	got, tally := reconcile(t, domain.NewReconciler(nil), `<p xmlns:x="urn:x">«<x:b>a</x:b>» end</p>`)

	assert.Contains(t, got, `><q class="containsQuotes">«a»</q> end</p>`)
	assert.Equal(t, 1, tally.CrossTagMerged)

	got, tally = reconcile(t, domain.NewReconciler(nil), `<p xmlns:x="urn:x">«<x:span>a</x:span>» end</p>`)

	assert.Contains(t, got, `<x:span>a</x:span>`)
	assert.Zero(t, tally.Changes())
}

func TestReconciler_SkipsQuotationContainers(t *testing.T) {
	doc := parseDoc(t, `<q class="containsQuotes"><b>«a»</b></q>`)

	var tally m.Tally
	require.NoError(t, domain.NewReconciler(nil).Reconcile([]*xmlquery.Node{xmltree.Root(doc)}, &tally))

	assert.Zero(t, tally.Changes())
}
