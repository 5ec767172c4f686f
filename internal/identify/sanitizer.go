// sanitizer.go - Strips markdown artifacts from free-text model output.

package identify

import (
	"regexp"
	"strings"
)

var (
	headerLineRe   = regexp.MustCompile(`(?m)^#+\s.*$\n?`)
	newlineRunRe   = regexp.MustCompile(`\n{3,}`)
	trailingNoteRe = regexp.MustCompile(`(?ms)^(Note:|Disclaimer:).*\z`)
)

// Sanitize removes markdown emphasis markers, header lines, excess blank
// lines and trailing disclaimer blocks from model output. Total over all
// inputs and idempotent.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	// Emphasis markers go first: stripping them can uncover a header line
	// ("**# Header**" becomes "# Header"), so the header pass must run after.
	text = strings.ReplaceAll(text, "*", "")

	// Header lines, anywhere in the text.
	text = headerLineRe.ReplaceAllString(text, "")

	// Trim before the note pass so a disclaimer that becomes the first line
	// is still caught on the first run (keeps the function idempotent).
	text = strings.TrimSpace(text)

	// Trailing Note:/Disclaimer: block through end of text.
	text = trailingNoteRe.ReplaceAllString(text, "")

	// Collapse runs of 3+ newlines to exactly 2.
	text = newlineRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// StripEmphasis removes only the emphasis-marker characters. The normalizer
// applies this to every string leaf of a record; the renderer re-applies it
// before display.
func StripEmphasis(text string) string {
	return strings.ReplaceAll(text, "*", "")
}
