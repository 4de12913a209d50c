package parser

import (
	"strings"

	"resumeparse/internal/errors"
	"resumeparse/internal/types"
)

// Options are the tunable pipeline thresholds. Zero values fall back to
// the defaults, so config structs can embed Options directly.
type Options struct {
	// MinWords is the readability threshold: a document must contain
	// strictly more words than this to count as readable.
	MinWords int
	// NameScanLines bounds how deep the name extractor looks.
	NameScanLines int
}

// DefaultOptions returns the thresholds the service ships with.
func DefaultOptions() Options {
	return Options{
		MinWords:      50,
		NameScanLines: 5,
	}
}

// Pipeline runs extraction and compliance checking over normalized resume
// text. It holds no per-request state: every method allocates fresh
// structures, so one Pipeline is safe for concurrent use.
type Pipeline struct {
	opts Options
}

// New creates a pipeline, filling unset options with defaults.
func New(opts Options) *Pipeline {
	defaults := DefaultOptions()
	if opts.MinWords <= 0 {
		opts.MinWords = defaults.MinWords
	}
	if opts.NameScanLines <= 0 {
		opts.NameScanLines = defaults.NameScanLines
	}
	return &Pipeline{opts: opts}
}

// ExtractPages joins per-page texts and runs extraction.
func (p *Pipeline) ExtractPages(pages []string) (types.ResumeRecord, error) {
	return p.Extract(JoinPages(pages))
}

// Extract parses normalized resume text into a structured record. Field
// and section misses degrade to empty values; only an empty document is
// an error.
func (p *Pipeline) Extract(text string) (types.ResumeRecord, error) {
	doc, err := NewDocument(text)
	if err != nil {
		return types.ResumeRecord{}, errors.NewDocumentError(
			errors.ErrCodeEmptyDocument,
			"no text could be extracted from the document",
			err,
		)
	}

	record := types.ResumeRecord{
		Contact: types.ContactInfo{
			FullName: ExtractName(doc.Lines, p.opts.NameScanLines),
			Email:    ExtractEmail(doc.Text),
			Phone:    ExtractPhone(doc.Text),
			Location: ExtractLocation(doc.Lines),
			Links:    ExtractLinks(doc.Text),
		},
	}

	sections := SegmentSections(doc.Lines)
	record.Experience = ParseExperience(sections[SectionExperience])
	record.Education = ParseEducation(sections[SectionEducation])
	record.Skills = ParseTokenList(sections[SectionSkills])
	record.Interests = ParseTokenList(sections[SectionInterests])
	record.Volunteer = ParseVolunteer(sections[SectionVolunteer])
	MergeAdditionalInfo(sections[SectionAdditional], &record)

	// Empty lists marshal as [] rather than null.
	if record.Experience == nil {
		record.Experience = []types.ExperienceEntry{}
	}
	if record.Education == nil {
		record.Education = []types.EducationEntry{}
	}
	if record.Skills == nil {
		record.Skills = []string{}
	}
	if record.Interests == nil {
		record.Interests = []string{}
	}
	if record.Volunteer == nil {
		record.Volunteer = []string{}
	}

	return record, nil
}

// CheckPages joins per-page texts and runs the readability and compliance
// pass.
func (p *Pipeline) CheckPages(pages []string) types.DocumentCheck {
	return p.Check(JoinPages(pages))
}

// Check runs the readability and compliance pass. An unreadable document
// is a negative result, not an error: compliance short-circuits to
// non-compliant with an empty fields map.
func (p *Pipeline) Check(text string) types.DocumentCheck {
	doc := &Document{Text: text, Lines: strings.Split(text, "\n")}
	words := doc.WordCount()
	if words <= p.opts.MinWords {
		return types.DocumentCheck{
			IsReadable: false,
			WordCount:  words,
			Compliance: types.ComplianceReport{
				Compliant: false,
				Fields:    map[string]bool{},
			},
		}
	}

	return types.DocumentCheck{
		IsReadable: true,
		WordCount:  words,
		Compliance: CheckCompliance(doc),
	}
}

// Stats summarizes a page set for observability reporting.
func Stats(pages []string) types.DocumentStats {
	return types.DocumentStats{
		Pages: len(pages),
		Words: len(strings.Fields(JoinPages(pages))),
	}
}
