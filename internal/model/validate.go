package model

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"applica-cv/internal/domain"
)

//go:embed schema/profile.schema.json
var profileSchema []byte

var (
	schemaOnce   sync.Once
	schemaLoaded *gojsonschema.Schema
	schemaErr    error

	validate = validator.New()
)

func init() {
	validate.RegisterStructValidation(educationStructValidation, Education{})
	validate.RegisterStructValidation(experienceStructValidation, Experience{})
}

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schemaLoaded, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(profileSchema))
	})
	return schemaLoaded, schemaErr
}

// ValidateProfileJSON validates a raw profile payload (or a partial one, as
// every property is optional) against the embedded profile schema.
func ValidateProfileJSON(raw []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return &domain.ValidationError{Problems: []string{err.Error()}}
	}
	if res.Valid() {
		return nil
	}
	problems := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}
	return &domain.ValidationError{Problems: problems}
}

// ValidateEducation checks each entry's active field group.
func ValidateEducation(entries []Education) error {
	var problems []string
	for i, e := range entries {
		if err := validate.Struct(e); err != nil {
			problems = append(problems, describe(fmt.Sprintf("education[%d]", i), err)...)
		}
	}
	if len(problems) > 0 {
		return &domain.ValidationError{Problems: problems}
	}
	return nil
}

// ValidateExperience checks required fields and the current/end date pairing.
func ValidateExperience(entries []Experience) error {
	var problems []string
	for i, e := range entries {
		if err := validate.Struct(e); err != nil {
			problems = append(problems, describe(fmt.Sprintf("experience[%d]", i), err)...)
		}
	}
	if len(problems) > 0 {
		return &domain.ValidationError{Problems: problems}
	}
	return nil
}

func educationStructValidation(sl validator.StructLevel) {
	e := sl.Current().Interface().(Education)

	switch e.Level {
	case LevelSchool:
		if e.SchoolType != "" && e.SchoolType != "matric" && e.SchoolType != "olevels" {
			sl.ReportError(e.SchoolType, "schoolType", "SchoolType", "oneof", "matric olevels")
		}
	case LevelCollege:
		switch e.CollegeProgram {
		case "", "alevels", "premedical", "ics", "preengineering", "other":
		default:
			sl.ReportError(e.CollegeProgram, "collegeProgram", "CollegeProgram", "oneof", "alevels premedical ics preengineering other")
		}
	case LevelUniversity:
		switch e.DegreeType {
		case "", "bachelors", "masters", "phd", "diploma", "other":
		default:
			sl.ReportError(e.DegreeType, "degreeType", "DegreeType", "oneof", "bachelors masters phd diploma other")
		}
		if e.CurrentlyStudying && e.EndYear != "" && e.EndYear != Present {
			sl.ReportError(e.EndYear, "endYear", "EndYear", "present", "")
		}
	}
}

func experienceStructValidation(sl validator.StructLevel) {
	e := sl.Current().Interface().(Experience)

	if e.Company == "" {
		sl.ReportError(e.Company, "company", "Company", "required", "")
	}
	if e.Position == "" {
		sl.ReportError(e.Position, "position", "Position", "required", "")
	}
	if e.StartDate == "" {
		sl.ReportError(e.StartDate, "startDate", "StartDate", "required", "")
	}
}

func describe(prefix string, err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{prefix + ": " + err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s.%s failed %s", prefix, fe.Field(), fe.Tag())
		if fe.Param() != "" {
			msg += " (" + fe.Param() + ")"
		}
		out = append(out, msg)
	}
	return out
}
