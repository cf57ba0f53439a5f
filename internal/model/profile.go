package model

import (
	"slices"
	"strings"
	"time"
)

// Go models that match the profiles table of the hosted data store and the
// profile.schema.json used to validate incoming profile payloads.

type EducationLevel string

const (
	LevelSchool     EducationLevel = "school"
	LevelCollege    EducationLevel = "college"
	LevelUniversity EducationLevel = "university"
)

// Present is the literal end marker for ongoing studies and positions.
const Present = "Present"

// Education is a tagged variant: Level selects which field group is active.
// Fields of the inactive groups may be populated by the UI and are ignored.
type Education struct {
	ID              string         `json:"id,omitempty"`
	Level           EducationLevel `json:"level" validate:"required,oneof=school college university"`
	InstitutionName string         `json:"institutionName" validate:"max=200"`
	StartYear       string         `json:"startYear" validate:"max=20"`
	EndYear         string         `json:"endYear" validate:"max=20"`

	SchoolType  string `json:"schoolType,omitempty"`
	SchoolMarks string `json:"schoolMarks,omitempty" validate:"max=50"`

	CollegeProgram string `json:"collegeProgram,omitempty"`
	CollegeMarks   string `json:"collegeMarks,omitempty" validate:"max=50"`

	Degree            string `json:"degree,omitempty" validate:"max=200"`
	DegreeType        string `json:"degreeType,omitempty"`
	CGPA              string `json:"cgpa,omitempty" validate:"max=20"`
	CurrentlyStudying bool   `json:"currentlyStudying,omitempty"`
}

// Years returns the start and end years, with "Present" standing in for a
// missing end year while still studying.
func (e Education) Years() (string, string) {
	end := e.EndYear
	if end == "" && e.CurrentlyStudying {
		end = Present
	}
	return e.StartYear, end
}

type Experience struct {
	ID          string  `json:"id,omitempty"`
	Company     string  `json:"company" validate:"max=200"`
	Position    string  `json:"position" validate:"max=200"`
	StartDate   string  `json:"startDate" validate:"max=20"`
	EndDate     *string `json:"endDate"`
	Current     bool    `json:"current"`
	Description string  `json:"description" validate:"max=2000"`
	// Responsibilities is persisted but not rendered by any template.
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// End returns "Present" for a current position regardless of the stored end date.
func (e Experience) End() string {
	if e.Current {
		return Present
	}
	return Str(e.EndDate)
}

type Profile struct {
	ID          string       `json:"id"`
	Name        *string      `json:"name"`
	Email       *string      `json:"email"`
	Phone       *string      `json:"phone"`
	Address     *string      `json:"address"`
	Bio         *string      `json:"bio"`
	Education   []Education  `json:"education"`
	Experience  []Experience `json:"experience"`
	Skills      []string     `json:"skills"`
	Hobbies     []string     `json:"hobbies"`
	Preferences *string      `json:"preferences"`
	CVLink      *string      `json:"cv_link"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewProfile returns the empty profile created alongside a new account.
func NewProfile(id string, email string, now time.Time) *Profile {
	p := &Profile{
		ID:         id,
		Education:  []Education{},
		Experience: []Experience{},
		Skills:     []string{},
		Hobbies:    []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if email != "" {
		p.Email = StrPtr(email)
	}
	return p
}

// Clone returns a deep copy so a generation works on a snapshot rather than
// a live reference.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Name = clonePtr(p.Name)
	c.Email = clonePtr(p.Email)
	c.Phone = clonePtr(p.Phone)
	c.Address = clonePtr(p.Address)
	c.Bio = clonePtr(p.Bio)
	c.Preferences = clonePtr(p.Preferences)
	c.CVLink = clonePtr(p.CVLink)
	c.Education = slices.Clone(p.Education)
	c.Experience = slices.Clone(p.Experience)
	for i := range c.Experience {
		c.Experience[i].EndDate = clonePtr(c.Experience[i].EndDate)
		c.Experience[i].Responsibilities = slices.Clone(c.Experience[i].Responsibilities)
	}
	c.Skills = slices.Clone(p.Skills)
	c.Hobbies = slices.Clone(p.Hobbies)
	return &c
}

// Str dereferences a nullable column, treating NULL and blank alike.
func Str(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func StrPtr(s string) *string { return &s }

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
