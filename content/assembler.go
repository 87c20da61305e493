package content

import (
	"fmt"
	"strings"
)

// Section headings of the priming context.
const (
	GuidelinesHeading  = "EDITORIAL GUIDELINES"
	BriefingHeading    = "BRIEFING"
	NewslettersHeading = "PAST NEWSLETTERS"
)

const noNewsletters = "[No past newsletters found]"

// LoadGuidelines reads the editorial guidelines document.
func (p *Paths) LoadGuidelines() (string, error) {
	return ReadDocument(p.Guidelines)
}

// LoadBriefing reads the briefing document.
func (p *Paths) LoadBriefing() (string, error) {
	return ReadDocument(p.Briefing)
}

// LoadNewsletters reads the past newsletters collection.
func (p *Paths) LoadNewsletters() ([]Block, error) {
	return ReadCollection(p.Newsletters)
}

// AssembleContext loads every document and joins them under fixed headings.
// It never fails: a section that cannot be loaded is replaced by a bracketed
// message.
func AssembleContext(p *Paths) string {
	var sections []string

	guidelines, err := p.LoadGuidelines()
	if err != nil {
		guidelines = fmt.Sprintf("[Error loading editorial guidelines: %v]", err)
	}
	sections = append(sections, section(GuidelinesHeading, guidelines))

	briefing, err := p.LoadBriefing()
	if err != nil {
		briefing = fmt.Sprintf("[Error loading briefing: %v]", err)
	}
	sections = append(sections, section(BriefingHeading, briefing))

	var newsletters string
	blocks, err := p.LoadNewsletters()
	switch {
	case err != nil:
		newsletters = fmt.Sprintf("[Error loading past newsletters: %v]", err)
	case len(blocks) == 0:
		newsletters = noNewsletters
	default:
		newsletters = RenderCollection(blocks)
	}
	sections = append(sections, section(NewslettersHeading, newsletters))

	return strings.Join(sections, "\n\n")
}

func section(heading, body string) string {
	return "=== " + heading + " ===\n" + strings.TrimRight(body, "\n")
}
