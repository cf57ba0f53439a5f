package http

import (
	"github.com/gofiber/fiber/v2"
)

// Register mounts the API. Everything except the template catalogue needs
// the auth middleware.
func Register(app *fiber.App, h *Handler, requireAuth fiber.Handler) {
	app.Get("/templates", h.Templates)

	profile := app.Group("/profile", requireAuth)
	profile.Get("/", h.GetProfile)
	profile.Post("/", h.CreateProfile)
	profile.Put("/", h.UpdateProfile)
	profile.Get("/education", h.EducationCards)
	profile.Put("/education", h.ReplaceEducation)
	profile.Put("/experience", h.ReplaceExperience)
	profile.Put("/skills", h.ReplaceSkills)
	profile.Put("/hobbies", h.ReplaceHobbies)

	cv := app.Group("/cv", requireAuth)
	cv.Post("/download", h.Download)
	cv.Post("/upload", h.Upload)
	cv.Get("/history", h.History)
}

// NewApp builds a fiber app with the API error handler installed.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
		BodyLimit:             1 << 20,
	})
}
