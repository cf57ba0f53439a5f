package templates

import (
	"strings"

	"applica-cv/internal/cv/document"
	"applica-cv/internal/cv/formatters"
	"applica-cv/internal/model"
)

// modern is the two-column layout: a fixed-width colored sidebar with
// contact, skills and interests next to the main content column.
type modern struct{}

func (modern) ID() string { return ModernID }

func (modern) Render(p *model.Profile) (*document.Document, error) {
	if p == nil {
		return nil, errNilProfile
	}
	style := formatters.Modern
	name := model.Str(p.Name)
	if name == "" {
		name = "Your Name"
	}

	var contact []*document.Node
	for _, f := range []struct{ label, value string }{
		{"Email", model.Str(p.Email)},
		{"Phone", model.Str(p.Phone)},
		{"Address", model.Str(p.Address)},
	} {
		if f.value == "" {
			continue
		}
		contact = append(contact, document.Group("contact-entry",
			document.Label("contact-label", f.label),
			document.Text("contact-item", f.value),
		))
	}

	sidebar := document.Column("sidebar",
		document.Header("profile", document.Text("name", name)),
		document.Section("sidebar-section",
			document.Heading("sidebar-title", "Contact"),
			contact...,
		),
		document.Section("sidebar-section",
			document.Heading("sidebar-title", "Skills"),
			document.List("skills", items("skill-item", "• ", p.Skills)...),
		),
		document.Section("sidebar-section",
			document.Heading("sidebar-title", "Interests"),
			document.List("hobbies", items("hobby-item", "• ", p.Hobbies)...),
		),
	)

	var experience []*document.Node
	for _, exp := range p.Experience {
		experience = append(experience, document.Group("experience-item",
			document.Row("job-title-row",
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
			document.Row("degree-row",
				document.Text("degree", lines.Headline(style)),
				document.Text("date-range", formatters.EducationPeriod(edu, style)),
			),
			document.Text("institution", strings.TrimSpace(edu.InstitutionName)),
		))
	}

	content := document.Column("content",
		document.Ruled(document.Section("main-section",
			document.Heading("main-section-title", "Professional Summary"),
			document.Text("bio", model.Str(p.Bio)),
		), "accent-rule"),
		document.Ruled(document.Section("main-section",
			document.Heading("main-section-title", "Work Experience"),
			experience...,
		), "accent-rule"),
		document.Ruled(document.Section("main-section",
			document.Heading("main-section-title", "Education"),
			education...,
		), "accent-rule"),
	)

	return newDocument(ModernID, "Helvetica, Arial, sans-serif", name, document.LayoutSidebar, sidebar, content), nil
}
