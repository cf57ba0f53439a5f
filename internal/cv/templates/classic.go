package templates

import (
	"strings"

	"applica-cv/internal/cv/document"
	"applica-cv/internal/cv/formatters"
	"applica-cv/internal/model"
)

// classic is a centered, monochrome, serif single column.
type classic struct{}

func (classic) ID() string { return ClassicID }

func (classic) Render(p *model.Profile) (*document.Document, error) {
	if p == nil {
		return nil, errNilProfile
	}
	style := formatters.Classic
	name := strings.ToUpper(model.Str(p.Name))
	if name == "" {
		name = "YOUR NAME"
	}

	header := document.Header("header",
		document.Text("name", name),
		document.Group("contact-info",
			document.Text("contact-line", model.Str(p.Email)),
			document.Text("contact-line", model.Str(p.Phone)),
			document.Text("contact-line", model.Str(p.Address)),
		),
	)

	var experience []*document.Node
	for _, exp := range p.Experience {
		experience = append(experience, document.Group("experience-item",
			document.Row("row",
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
			document.Row("row",
				document.Text("degree", lines.Headline(style)),
				document.Text("date-range", formatters.EducationPeriod(edu, style)),
			),
			document.Text("institution", strings.TrimSpace(edu.InstitutionName)),
		))
	}

	return newDocument(ClassicID, "Times, serif", name, document.LayoutSingle,
		header,
		document.Rule("header-rule"),
		document.Section("section",
			document.Heading("section-title", "Objective"),
			document.Text("bio", model.Str(p.Bio)),
		),
		document.Section("section",
			document.Heading("section-title", "Professional Experience"),
			experience...,
		),
		document.Section("section",
			document.Heading("section-title", "Education"),
			education...,
		),
		document.Section("section",
			document.Heading("section-title", "Skills"),
			document.Text("skills-list", strings.Join(nonEmpty(p.Skills...), " • ")),
		),
		document.Section("section",
			document.Heading("section-title", "Interests & Hobbies"),
			document.Text("skills-list", strings.Join(nonEmpty(p.Hobbies...), ", ")),
		),
	), nil
}
