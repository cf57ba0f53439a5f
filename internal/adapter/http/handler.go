package http

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"applica-cv/internal/adapter/auth"
	"applica-cv/internal/cv/formatters"
	"applica-cv/internal/cv/templates"
	"applica-cv/internal/domain"
	"applica-cv/internal/model"
	"applica-cv/internal/usecase"
)

type Handler struct {
	cvs      *usecase.CVService
	profiles *usecase.ProfileService
	validate *validator.Validate
}

func NewHandler(cvs *usecase.CVService, profiles *usecase.ProfileService) *Handler {
	return &Handler{cvs: cvs, profiles: profiles, validate: validator.New()}
}

type cvReq struct {
	Template string `json:"template" validate:"required,oneof=modern classic minimal"`
	FileName string `json:"fileName,omitempty" validate:"omitempty,max=200"`
}

type createProfileReq struct {
	Email string `json:"email" validate:"omitempty,email"`
}

type educationReq struct {
	Education []model.Education `json:"education" validate:"required"`
}

type experienceReq struct {
	Experience []model.Experience `json:"experience" validate:"required"`
}

type skillsReq struct {
	Skills []string `json:"skills" validate:"required"`
}

type hobbiesReq struct {
	Hobbies []string `json:"hobbies" validate:"required"`
}

func (h *Handler) Templates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": templates.Available()})
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	u, err := user(c)
	if err != nil {
		return err
	}
	p, err := h.profiles.Get(c.UserContext(), u.ID)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// CreateProfile is idempotent: an existing profile is returned as is.
func (h *Handler) CreateProfile(c *fiber.Ctx) error {
	u, err := user(c)
	if err != nil {
		return err
	}
	var req createProfileReq
	if len(c.Body()) > 0 {
		if err := h.bind(c, &req); err != nil {
			return err
		}
	}
	if req.Email == "" {
		req.Email = u.Email
	}

	ctx := c.UserContext()
	if p, err := h.profiles.Get(ctx, u.ID); err == nil {
		return c.JSON(p)
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return err
	}
	p, err := h.profiles.Create(ctx, u.ID, req.Email)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	u, err := user(c)
	if err != nil {
		return err
	}
	var req usecase.BasicInfo
	if err := h.bindProfile(c, &req); err != nil {
		return err
	}
	p, err := h.profiles.UpdateBasic(c.UserContext(), u.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *Handler) ReplaceEducation(c *fiber.Ctx) error {
	u, err := user(c)
	if err != nil {
		return err
	}
	var req educationReq
	if err := h.bindProfile(c, &req); err != nil {
		return err
	}
	p, err := h.profiles.ReplaceEducation(c.UserContext(), u.ID, req.Education)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *Handler) ReplaceExperience(c *fiber.Ctx) error {
	u, err := user(c)
	if err != nil {
		return err
	}
	var req experienceReq
	if err := h.bindProfile(c, &req); err != nil {
		return err
	}
	p, err := h.profiles.ReplaceExperience(c.UserContext(), u.ID, req.Experience)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *Handler) ReplaceSkills(c *fiber.Ctx) error {
	u, err := user(c)
	if err != nil {
		return err
	}
	var req skillsReq
	if err := h.bindProfile(c, &req); err != nil {
		return err
	}
	p, err := h.profiles.ReplaceSkills(c.UserContext(), u.ID, req.Skills)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *Handler) ReplaceHobbies(c *fiber.Ctx) error {
	u, err := user(c)
	if err != nil {
		return err
	}
	var req hobbiesReq
	if err := h.bindProfile(c, &req); err != nil {
		return err
	}
	p, err := h.profiles.ReplaceHobbies(c.UserContext(), u.ID, req.Hobbies)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// EducationCards returns the caller's education formatted for the profile page.
func (h *Handler) EducationCards(c *fiber.Ctx) error {
	u, err := user(c)
	if err != nil {
		return err
	}
	p, err := h.profiles.Get(c.UserContext(), u.ID)
	if err != nil {
		return err
	}
	cards := make([]formatters.EducationLines, 0, len(p.Education))
	for _, e := range p.Education {
		cards = append(cards, formatters.FormatEducation(e, formatters.Card))
	}
	return c.JSON(fiber.Map{"education": cards})
}

// Download streams the PDF back as an attachment.
func (h *Handler) Download(c *fiber.Ctx) error {
	u, err := user(c)
	if err != nil {
		return err
	}
	var req cvReq
	if err := h.bind(c, &req); err != nil {
		return err
	}
	p, err := h.profiles.Get(c.UserContext(), u.ID)
	if err != nil {
		return err
	}
	return h.cvs.Download(c.UserContext(), p, req.Template, req.FileName, responseSaver{c: c})
}

// Upload stores the PDF and records it in the caller's history.
func (h *Handler) Upload(c *fiber.Ctx) error {
	u, err := user(c)
	if err != nil {
		return err
	}
	var req cvReq
	if err := h.bind(c, &req); err != nil {
		return err
	}
	ctx := c.UserContext()
	p, err := h.profiles.Get(ctx, u.ID)
	if err != nil {
		return err
	}
	url, err := h.cvs.Upload(ctx, u.ID, p, req.Template)
	if err != nil {
		return err
	}
	doc, err := h.cvs.RecordCV(ctx, u.ID, req.Template, url)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url, "document": doc})
}

func (h *Handler) History(c *fiber.Ctx) error {
	u, err := user(c)
	if err != nil {
		return err
	}
	docs, err := h.cvs.History(c.UserContext(), u.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"documents": docs})
}

func (h *Handler) bind(c *fiber.Ctx, out interface{}) error {
	if err := json.Unmarshal(c.Body(), out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.validate.Struct(out); err != nil {
		return &domain.ValidationError{Problems: fieldProblems(err)}
	}
	return nil
}

// bindProfile checks the body against the profile schema before binding.
func (h *Handler) bindProfile(c *fiber.Ctx, out interface{}) error {
	if !json.Valid(c.Body()) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := model.ValidateProfileJSON(c.Body()); err != nil {
		return err
	}
	return h.bind(c, out)
}

func fieldProblems(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field()+" failed "+fe.Tag())
	}
	return out
}

func user(c *fiber.Ctx) (auth.User, error) {
	u, ok := auth.CurrentUser(c)
	if !ok {
		return auth.User{}, fiber.NewError(fiber.StatusUnauthorized, "unauthenticated")
	}
	return u, nil
}

type responseSaver struct {
	c *fiber.Ctx
}

func (s responseSaver) Save(_ context.Context, fileName string, data []byte) error {
	s.c.Attachment(fileName)
	s.c.Set(fiber.HeaderContentType, "application/pdf")
	return s.c.Send(data)
}
