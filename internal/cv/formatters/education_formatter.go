package formatters

import (
	"strings"

	"applica-cv/internal/model"
)

// EducationLines is the display triple for one education entry.
type EducationLines struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Details  string `json:"details"`
}

// Style holds the per-template wording and punctuation for education entries.
type Style struct {
	Name string

	MatricLabel  string
	OLevelsLabel string

	// ProgramLabels maps college program codes to labels. When nil the code
	// is upper-cased instead.
	ProgramLabels   map[string]string
	CollegeFallback string

	DegreeLabels   map[string]string
	DegreeFallback string
	DegreeJoin     string

	MarksPrefix   string
	CGPAPrefix    string
	// KeepEmptyCGPA prints the bare CGPA label for a finished degree with
	// nothing stored. Otherwise the detail is left out.
	KeepEmptyCGPA bool

	// DetailOpen/DetailClose wrap the details when composing a headline.
	DetailOpen  string
	DetailClose string

	// RangeSeparator joins start and end of a date range.
	RangeSeparator string
	// YearsInDetails appends "| start - end" to the details line.
	YearsInDetails bool
}

const InProgress = "In Progress"

var programLabels = map[string]string{
	"alevels":        "A-Levels",
	"premedical":     "Pre-Medical",
	"ics":            "ICS",
	"preengineering": "Pre-Engineering",
	"other":          "Other",
}

var degreeLabels = map[string]string{
	"bachelors": "Bachelor's",
	"masters":   "Master's",
	"phd":       "PhD",
	"diploma":   "Diploma",
	"other":     "Other",
}

var (
	Modern = Style{
		Name:            "modern",
		MatricLabel:     "Matriculation",
		OLevelsLabel:    "O-Levels",
		CollegeFallback: "College",
		DegreeLabels:    degreeLabels,
		DegreeFallback:  "Degree",
		DegreeJoin:      " in ",
		MarksPrefix:     "Marks: ",
		CGPAPrefix:      "CGPA: ",
		DetailOpen:      " - ",
		RangeSeparator:  " - ",
	}

	Classic = Style{
		Name:            "classic",
		MatricLabel:     "Matriculation",
		OLevelsLabel:    "O-Levels",
		CollegeFallback: "Intermediate",
		DegreeLabels:    degreeLabels,
		DegreeFallback:  "Degree",
		DegreeJoin:      ", ",
		CGPAPrefix:      "CGPA: ",
		DetailOpen:      " (",
		DetailClose:     ")",
		RangeSeparator:  " - ",
	}

	Minimal = Style{
		Name:            "minimal",
		MatricLabel:     "Matriculation",
		OLevelsLabel:    "O-Levels",
		CollegeFallback: "College",
		DegreeLabels:    degreeLabels,
		DegreeFallback:  "Degree",
		DegreeJoin:      " in ",
		CGPAPrefix:      "CGPA ",
		DetailOpen:      " - ",
		RangeSeparator:  " — ",
	}

	// Card is the profile page summary card.
	Card = Style{
		Name:            "card",
		MatricLabel:     "Matric",
		OLevelsLabel:    "O-Levels",
		ProgramLabels:   programLabels,
		CollegeFallback: "College",
		DegreeLabels:    degreeLabels,
		DegreeFallback:  "Degree",
		DegreeJoin:      " - ",
		CGPAPrefix:      "CGPA: ",
		DetailOpen:      " - ",
		RangeSeparator:  " - ",
		KeepEmptyCGPA:   true,
		YearsInDetails:  true,
	}
)

// FormatEducation maps one entry to its display triple. Only the field group
// selected by the level is read; an unknown level yields empty lines.
func FormatEducation(e model.Education, s Style) EducationLines {
	var subtitle, details string
	switch e.Level {
	case model.LevelSchool:
		subtitle = s.OLevelsLabel
		if e.SchoolType == "matric" {
			subtitle = s.MatricLabel
		}
		details = prefixed(s.MarksPrefix, e.SchoolMarks)
	case model.LevelCollege:
		subtitle = s.program(e.CollegeProgram)
		details = prefixed(s.MarksPrefix, e.CollegeMarks)
	case model.LevelUniversity:
		subtitle = s.degree(e.DegreeType, e.Degree)
		details = s.cgpa(e.CGPA, e.CurrentlyStudying)
	default:
		return EducationLines{}
	}

	if s.YearsInDetails {
		years := Period(e.StartYear, endYear(e), s.RangeSeparator)
		if details == "" {
			details = years
		} else {
			details += " | " + years
		}
	}

	return EducationLines{
		Title:    strings.TrimSpace(e.InstitutionName),
		Subtitle: subtitle,
		Details:  details,
	}
}

// Headline joins subtitle and details the way the style prints a degree line.
func (l EducationLines) Headline(s Style) string {
	if l.Details == "" {
		return l.Subtitle
	}
	if l.Subtitle == "" {
		return l.Details
	}
	return l.Subtitle + s.DetailOpen + l.Details + s.DetailClose
}

func (s Style) program(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return s.CollegeFallback
	}
	if s.ProgramLabels == nil {
		return strings.ToUpper(code)
	}
	if label, ok := s.ProgramLabels[code]; ok {
		return label
	}
	return s.CollegeFallback
}

func (s Style) degree(degreeType, degree string) string {
	label := s.DegreeFallback
	if dt := strings.TrimSpace(degreeType); dt != "" {
		label = dt
		if l, ok := s.DegreeLabels[dt]; ok {
			label = l
		}
	}
	degree = strings.TrimSpace(degree)
	if degree == "" {
		return label
	}
	return label + s.DegreeJoin + degree
}

func (s Style) cgpa(cgpa string, studying bool) string {
	cgpa = strings.TrimSpace(cgpa)
	switch {
	case cgpa != "":
		return s.CGPAPrefix + cgpa
	case studying:
		return s.CGPAPrefix + InProgress
	case s.KeepEmptyCGPA:
		return strings.TrimSpace(s.CGPAPrefix)
	default:
		return ""
	}
}

func prefixed(prefix, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	return prefix + v
}

func endYear(e model.Education) string {
	_, end := e.Years()
	return end
}
