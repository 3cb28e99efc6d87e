package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCmd_Article(t *testing.T) {
	outDir := t.TempDir()
	target := filepath.Join(outDir, "article.xml")
	reportsDir := filepath.Join(outDir, "reports")

	output, err := executeCommand(t, newRunCmd(),
		"run",
		"--rules", filepath.Join("..", "examples", "article", "rules.json"),
		"--output", target,
		"--reports", reportsDir,
		filepath.Join("..", "examples", "article", "article.xml"),
	)
	require.NoError(t, err)

	assert.Contains(t, output, "Done ")
	assert.Contains(t, output, "3 quotation(s)")

	contents, err := os.ReadFile(target)
	require.NoError(t, err)

	doc := string(contents)
	assert.Contains(t, doc, `<q class="containsQuotes">« Un lieu ouvert à tous »</q>, a déclaré`)
	assert.Contains(t, doc, `<q class="containsQuotes">« Nous attendions ce jour depuis dix ans »</q>, confie`)
	assert.NotContains(t, doc, "<i>")
	assert.NotContains(t, doc, "<b>")
	assert.Contains(t, doc, "<p>Les travaux ont duré deux ans.</p>")

	entries, err := os.ReadDir(reportsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".yaml", filepath.Ext(entries[0].Name()))
}

func TestRunCmd_ArticleDryRun(t *testing.T) {
	outDir := t.TempDir()
	target := filepath.Join(outDir, "article.xml")

	output, err := executeCommand(t, newRunCmd(),
		"run",
		"-r", filepath.Join("..", "examples", "article", "rules.json"),
		"-o", target,
		"--dry-run", "--diff",
		filepath.Join("..", "examples", "article", "article.xml"),
	)
	require.NoError(t, err)

	assert.Contains(t, output, "(dry run)")
	assert.Contains(t, output, "(quote mode)")
	assert.NoFileExists(t, target)
}

func TestRulesCmd_Article(t *testing.T) {
	output, err := executeCommand(t, newRulesCmd(), "rules", "-r", filepath.Join("..", "examples", "article", "rules.json"))
	require.NoError(t, err)

	assert.Contains(t, output, "article paragraphs")
	assert.Contains(t, output, "//body/p")
}
