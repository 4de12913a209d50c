package types

// ContactLinks holds the profile and portfolio URLs found in a resume
type ContactLinks struct {
	GitHub    string `json:"github,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// ContactInfo represents the contact block extracted from a resume.
// Absent fields are empty strings.
type ContactInfo struct {
	FullName string       `json:"fullName"`
	Email    string       `json:"email"`
	Phone    string       `json:"phone"`
	Location string       `json:"location"`
	Links    ContactLinks `json:"links"`
}

// ExperienceEntry represents one position in the work experience section
type ExperienceEntry struct {
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`         // date token as written, e.g. "01/2020" or "2020"
	EndDate     string `json:"endDate,omitempty"` // empty when the position is current
	Location    string `json:"location,omitempty"`
	Projects    string `json:"projects,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry represents one entry in the education section
type EducationEntry struct {
	Institution    string `json:"institution"`
	Location       string `json:"location,omitempty"`
	GraduationDate string `json:"graduationDate,omitempty"`
	GPA            string `json:"gpa,omitempty"` // reserved; never populated by the current parsers
}

// ResumeRecord is the structured output of resume extraction
type ResumeRecord struct {
	Contact    ContactInfo       `json:"contact"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Skills     []string          `json:"skills"`
	Interests  []string          `json:"interests"`
	Volunteer  []string          `json:"volunteer"`
}

// ComplianceReport represents the per-category ATS compliance result.
// Compliant is true only when every category in Fields is true.
type ComplianceReport struct {
	Compliant bool            `json:"ats_compliant"`
	Fields    map[string]bool `json:"fields"`
}

// DocumentCheck represents the readability and compliance verdict for a document
type DocumentCheck struct {
	IsReadable bool             `json:"is_readable"`
	WordCount  int              `json:"word_count"`
	Compliance ComplianceReport `json:"compliance"`
}

// DocumentStats carries size information about a processed document
type DocumentStats struct {
	Pages int `json:"pages"`
	Words int `json:"words"`
}
