package identify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRemovesEmphasisMarkers(t *testing.T) {
	inputs := []string{
		"**Aphids** are *small* insects",
		"*",
		"***",
		"leading *text* and trailing**",
	}
	for _, in := range inputs {
		out := Sanitize(in)
		assert.NotContains(t, out, "*", "input %q", in)
	}
}

func TestSanitizeRemovesHeaderLines(t *testing.T) {
	in := "# Treatment\nSpray neem oil.\n## Notes on timing\nApply weekly."
	out := Sanitize(in)
	assert.Equal(t, "Spray neem oil.\nApply weekly.", out)
}

func TestSanitizeKeepsHashWithoutWhitespace(t *testing.T) {
	out := Sanitize("#1 pest in maize is armyworm")
	assert.Equal(t, "#1 pest in maize is armyworm", out)
}

func TestSanitizeRemovesEmphasisWrappedHeader(t *testing.T) {
	// The marker strip uncovers the header; a single pass must still drop it.
	out := Sanitize("**# Header**\nbody")
	assert.Equal(t, "body", out)
}

func TestSanitizeCollapsesNewlineRuns(t *testing.T) {
	out := Sanitize("first\n\n\n\n\nsecond")
	assert.Equal(t, "first\n\nsecond", out)
}

func TestSanitizeDropsTrailingNoteBlock(t *testing.T) {
	in := "Use copper fungicide.\nNote: this is general guidance\nand not professional advice."
	assert.Equal(t, "Use copper fungicide.", Sanitize(in))

	in = "Rotate crops yearly.\nDisclaimer: consult an agronomist.\nMore lines after."
	assert.Equal(t, "Rotate crops yearly.", Sanitize(in))
}

func TestSanitizeEmptyInput(t *testing.T) {
	assert.Equal(t, "", Sanitize(""))
	assert.Equal(t, "", Sanitize("   \n\t  "))
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"# Header\n**bold** text\n\n\n\ntail\nNote: ignore this",
		"**# Header**\nbody",
		"  \n Note: starts after blank line",
		strings.Repeat("*#\n", 20),
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}
