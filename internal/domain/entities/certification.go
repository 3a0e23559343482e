package entities

// Difficulty describes the tier of a certification exam.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
	DifficultyExpert       Difficulty = "Expert"
)

// Certification describes a single certification exam together with its
// weighted subject-matter domains. The catalog is loaded once at startup
// and never mutated afterwards.
type Certification struct {
	ID            string       `json:"id" validate:"required"`
	Name          string       `json:"name" validate:"required"`
	ExamCode      string       `json:"examCode" validate:"required"`
	Description   string       `json:"description"`
	PassingScore  string       `json:"passingScore"`
	QuestionCount string       `json:"questionCount"`
	Duration      string       `json:"duration"`
	Difficulty    Difficulty   `json:"difficulty" validate:"required,oneof=Beginner Intermediate Advanced Expert"`
	Prerequisites string       `json:"prerequisites"`
	Domains       []CertDomain `json:"domains" validate:"dive"`
}

// CertDomain is one weighted section of a certification exam. A domain
// belongs to exactly one certification and is never shared.
type CertDomain struct {
	Name       string   `json:"name" validate:"required"`
	Weight     string   `json:"weight" validate:"required"` // display string, e.g. "25%"
	Objectives []string `json:"objectives"`
	KeyTerms   []string `json:"keyTerms"`
	Acronyms   []string `json:"acronyms,omitempty"` // "ABBR - Expansion" pairs
	Ports      []string `json:"ports,omitempty"`    // "number service" pairs
	Commands   []string `json:"commands,omitempty"`
	Protocols  []string `json:"protocols,omitempty"`
	StudyNotes string   `json:"studyNotes"`
}

// DomainByName returns the domain with the given name, or nil.
func (c *Certification) DomainByName(name string) *CertDomain {
	for i := range c.Domains {
		if c.Domains[i].Name == name {
			return &c.Domains[i]
		}
	}
	return nil
}
