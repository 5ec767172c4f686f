// renderer.go - Turns serialized records into a displayable report tree.

package identify

import (
	"fmt"
	"strings"
)

// Card kinds in render order.
const (
	CardAffirmation = "affirmation"
	CardIdentity    = "identity"
	CardDescription = "description"
	CardCauses      = "causes"
	CardControls    = "controls"
	CardPlants      = "affected_plants"
	CardError       = "error"
)

const errorCardMessage = "Something went wrong while reading the identification result. Please try again."

// Report is the displayable tree the web client renders. Cards appear in a
// fixed order; empty sections are omitted entirely, never rendered empty.
type Report struct {
	Status string `json:"status"`
	Cards  []Card `json:"cards"`
}

// Card is one visual block of the report.
type Card struct {
	Kind     string    `json:"kind"`
	Title    string    `json:"title,omitempty"`
	Tone     string    `json:"tone,omitempty"` // green, yellow, red
	Lines    []string  `json:"lines,omitempty"`
	Badges   []string  `json:"badges,omitempty"`
	Sections []Section `json:"sections,omitempty"`
}

// Section is a titled sub-list inside a card (chemical/organic/cultural).
type Section struct {
	Title string   `json:"title"`
	Lines []string `json:"lines,omitempty"`
}

// Render consumes serialized record text and always produces a report.
// Malformed input and error records both yield the error card; this function
// never fails regardless of what text it is given.
func Render(text string) Report {
	rec, err := ParseRecord(text)
	if err != nil || rec == nil || rec.Status == "" {
		return errorReport("")
	}

	switch rec.Status {
	case StatusHealthy:
		return Report{
			Status: StatusHealthy,
			Cards: []Card{{
				Kind:  CardAffirmation,
				Title: "All Clear",
				Tone:  "green",
				Lines: []string{clean(rec.Message)},
			}},
		}
	case StatusIdentified:
		return renderIdentified(rec)
	default:
		return errorReport(rec.Message)
	}
}

func renderIdentified(rec *IdentificationRecord) Report {
	report := Report{Status: StatusIdentified}

	// (a) name + confidence bar, (b) type badge.
	identity := Card{
		Kind:   CardIdentity,
		Title:  clean(rec.Name),
		Tone:   ConfidenceColor(rec.Confidence),
		Lines:  []string{fmt.Sprintf("Confidence: %d%%", ClampConfidence(rec.Confidence))},
		Badges: []string{kindBadge(rec.Kind)},
	}
	report.Cards = append(report.Cards, identity)

	// (c) free-text description.
	if desc := clean(rec.Description); desc != "" {
		report.Cards = append(report.Cards, Card{
			Kind:  CardDescription,
			Title: "About",
			Lines: []string{desc},
		})
	}

	// (d) causes bullet list, omitted entirely if empty.
	if causes := cleanList(rec.Causes); len(causes) > 0 {
		report.Cards = append(report.Cards, Card{
			Kind:  CardCauses,
			Title: "Possible Causes",
			Lines: causes,
		})
	}

	// (e) control methods in three fixed subsections.
	if rec.Controls != nil {
		var sections []Section
		if s := controlSection("Chemical Control", rec.Controls.Chemical); s != nil {
			sections = append(sections, *s)
		}
		if s := controlSection("Organic Control", rec.Controls.Organic); s != nil {
			sections = append(sections, *s)
		}
		if cultural := cleanList(rec.Controls.Cultural); len(cultural) > 0 {
			sections = append(sections, Section{Title: "Cultural Practices", Lines: cultural})
		}
		if len(sections) > 0 {
			report.Cards = append(report.Cards, Card{
				Kind:     CardControls,
				Title:    "Control Methods",
				Sections: sections,
			})
		}
	}

	// (f) affected-plants badge row.
	if plants := cleanList(rec.AffectedPlants); len(plants) > 0 {
		report.Cards = append(report.Cards, Card{
			Kind:   CardPlants,
			Title:  "Affected Plants",
			Badges: plants,
		})
	}

	return report
}

func controlSection(title string, entries []ControlEntry) *Section {
	if len(entries) == 0 {
		return nil
	}
	section := Section{Title: title}
	for _, e := range entries {
		section.Lines = append(section.Lines,
			clean(e.Name),
			"Active ingredient: "+clean(e.ActiveIngredient),
			"Application rate: "+clean(e.ApplicationRate),
			"Method: "+clean(e.Method),
			fmt.Sprintf("Safe re-entry: %d days", e.SafeDays),
			"⚠ "+clean(e.Safety),
		)
	}
	return &section
}

func kindBadge(kind string) string {
	switch kind {
	case KindPest:
		return "🐛 Pest"
	case KindPlant:
		return "🌿 Plant"
	default:
		return "🦠 Disease"
	}
}

func errorReport(message string) Report {
	msg := clean(message)
	if msg == "" {
		msg = errorCardMessage
	}
	return Report{
		Status: StatusError,
		Cards: []Card{{
			Kind:  CardError,
			Title: "Identification Failed",
			Tone:  "red",
			Lines: []string{msg, "Please retry with a clear, well-lit photo."},
		}},
	}
}

// Text flattens the report to plain text for logs and chat history display.
func (r Report) Text() string {
	var b strings.Builder
	for i, card := range r.Cards {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if card.Title != "" {
			b.WriteString(card.Title)
			b.WriteString("\n")
		}
		for _, line := range card.Lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
		if len(card.Badges) > 0 {
			b.WriteString(strings.Join(card.Badges, " · "))
			b.WriteString("\n")
		}
		for _, section := range card.Sections {
			b.WriteString("\n")
			b.WriteString(section.Title)
			b.WriteString("\n")
			for _, line := range section.Lines {
				b.WriteString("- ")
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// clean re-applies emphasis stripping before display. The normalizer's
// contract already guarantees marker-free strings; this is the second line
// of defense for records that arrived from older clients or storage.
func clean(s string) string {
	return strings.TrimSpace(StripEmphasis(s))
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if c := clean(item); c != "" {
			out = append(out, c)
		}
	}
	return out
}
