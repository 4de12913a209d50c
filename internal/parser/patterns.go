package parser

import "regexp"

// SectionKind identifies a recognized resume section.
type SectionKind string

const (
	SectionExperience SectionKind = "experience"
	SectionEducation  SectionKind = "education"
	SectionSkills     SectionKind = "skills"
	SectionInterests  SectionKind = "interests"
	SectionVolunteer  SectionKind = "volunteer"
	SectionAdditional SectionKind = "additional_info"
)

// SectionTrigger maps a section kind to the header phrases that open it.
// The table is an ordered slice: when a line matches phrases from more than
// one kind, the first kind in the table wins.
type SectionTrigger struct {
	Kind    SectionKind
	Phrases []string
}

// SectionTriggers is the header phrase table used by the segmenter.
// Phrases are matched case-insensitively as substrings of the line.
var SectionTriggers = []SectionTrigger{
	{SectionExperience, []string{"work experience", "professional experience", "employment history", "employment", "experience"}},
	{SectionEducation, []string{"education", "academic background", "academics"}},
	{SectionSkills, []string{"technical skills", "core competencies", "technologies", "skills"}},
	{SectionInterests, []string{"interests", "hobbies"}},
	{SectionVolunteer, []string{"volunteering", "volunteer", "community service"}},
	{SectionAdditional, []string{"additional information", "additional info", "miscellaneous"}},
}

// headerBoundaryWords mark all-caps headers of sections the segmenter does
// not model. Hitting one inside a section closes it without opening another.
var headerBoundaryWords = []string{
	"projects",
	"certifications",
	"awards",
	"languages",
	"references",
	"publications",
	"summary",
	"objective",
	"courses",
}

var (
	// emailPattern matches a standard local-part@domain address.
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)

	// phonePatterns is a fixed priority list: the first pattern that matches
	// anywhere in the text wins, even if a later pattern would match a more
	// tightly formatted number.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+\d[\d\s\-().]{7,}\d`),          // international prefix
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),  // (xxx) xxx-xxxx
		regexp.MustCompile(`\b\d{3}[-.]\d{3}[-.]\d{4}\b`),    // xxx-xxx-xxxx
		regexp.MustCompile(`\b\d{10,}\b`),                    // bare digit run
	}

	// namePattern matches a line that is nothing but two or more
	// capitalized words.
	namePattern = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+$`)

	urlPattern       = regexp.MustCompile(`https?://\S+|www\.\S+`)
	githubPattern    = regexp.MustCompile(`https?://(?:www\.)?github\.com/[A-Za-z0-9_.-]+`)
	linkedinPattern  = regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/in/[A-Za-z0-9_-]+`)
	portfolioPattern = regexp.MustCompile(`https?://\S*(?:portfolio|website|site)\S*`)

	// dateTokenPattern matches MM/YYYY first so a slashed date is consumed
	// as one token instead of two bare years.
	dateTokenPattern = regexp.MustCompile(`\d{2}/\d{4}|(?:19|20)\d{2}`)
	yearPattern      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	// capitalizedWordPattern supports the loose full-name presence check
	// used by the compliance pass.
	capitalizedWordPattern = regexp.MustCompile(`[A-Z][a-z]+`)

	contactTokenSplit    = regexp.MustCompile(`[|,\s]+`)
	tokenPunctuation     = regexp.MustCompile(`[^\w\s]`)
	skillTokenSplit      = regexp.MustCompile(`[,\s]+`)
	volunteerLabelPrefix = regexp.MustCompile(`(?i)^volunteer\s*:\s*`)
	skillsLabelPrefix    = regexp.MustCompile(`(?i)^skills\s*:\s*`)
)

// Section titles recognized by the compliance header check. A line must be,
// after trimming, exactly one of these all-caps titles.
var (
	educationTitles  = []string{"EDUCATION", "ACADEMIC BACKGROUND", "ACADEMICS"}
	experienceTitles = []string{"EXPERIENCE", "WORK EXPERIENCE", "PROFESSIONAL EXPERIENCE", "EMPLOYMENT", "EMPLOYMENT HISTORY"}
	skillsTitles     = []string{"SKILLS", "TECHNICAL SKILLS", "CORE COMPETENCIES"}
)

// Keyword sets used by the compliance body-text checks.
var (
	educationKeywords  = []string{"education", "bachelor", "master", "university", "college", "degree"}
	experienceKeywords = []string{"experience", "employment", "work history", "career"}
	skillsKeywords     = []string{"skills", "technologies", "competencies"}
	locationKeywords   = []string{"location", "address", "city", "based in"}
	interestsKeywords  = []string{"interests", "hobbies", "activities", "passions"}
	volunteerKeywords  = []string{"volunteer", "volunteering", "community service", "charity", "non-profit", "social work"}
)
