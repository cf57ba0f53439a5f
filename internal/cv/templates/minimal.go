package templates

import (
	"strings"

	"applica-cv/internal/cv/document"
	"applica-cv/internal/cv/formatters"
	"applica-cv/internal/model"
)

// minimal is a left-aligned grayscale column with hairline separators and
// skills laid out as a wrapped grid.
type minimal struct{}

func (minimal) ID() string { return MinimalID }

func (minimal) Render(p *model.Profile) (*document.Document, error) {
	if p == nil {
		return nil, errNilProfile
	}
	style := formatters.Minimal
	name := model.Str(p.Name)
	if name == "" {
		name = "Your Name"
	}
	contact := nonEmpty(model.Str(p.Email), model.Str(p.Phone), model.Str(p.Address))

	var experience []*document.Node
	for _, exp := range p.Experience {
		experience = append(experience, document.Group("experience-item",
			document.Row("flex-row",
				document.Text("job-title", exp.Position),
				document.Text("date-range", formatters.ExperiencePeriod(exp, style)),
			),
			document.Text("company", exp.Company),
			document.Text("description", exp.Description),
		))
	}

	var education []*document.Node
	for _, edu := range p.Education {
		lines := formatters.FormatEducation(edu, style)
		education = append(education, document.Group("education-item",
			document.Text("degree", lines.Headline(style)),
			document.Text("institution", strings.TrimSpace(edu.InstitutionName)),
			document.Text("education-details", formatters.EducationPeriod(edu, style)),
		))
	}

	return newDocument(MinimalID, "Helvetica, Arial, sans-serif", name, document.LayoutSingle,
		document.Header("header",
			document.Text("name", name),
			document.Text("contact-info", strings.Join(contact, " • ")),
		),
		document.Rule("separator"),
		document.Section("section",
			document.Heading("section-title", "About"),
			document.Text("bio", model.Str(p.Bio)),
		),
		document.Section("section",
			document.Heading("section-title", "Experience"),
			experience...,
		),
		document.Section("section",
			document.Heading("section-title", "Education"),
			education...,
		),
		document.Section("section",
			document.Heading("section-title", "Skills"),
			document.Grid("skills-grid", items("skill-item", "• ", p.Skills)...),
		),
		document.Section("section",
			document.Heading("section-title", "Interests"),
			document.Text("hobbies-text", strings.Join(nonEmpty(p.Hobbies...), " • ")),
		),
	), nil
}
