package domain

import (
	"time"

	"github.com/google/uuid"
)

// CVDocument is an append-only history entry pointing at a stored PDF.
type CVDocument struct {
	ID           uuid.UUID `json:"id"`
	UserID       string    `json:"user_id"`
	TemplateUsed string    `json:"template_used"`
	FileURL      string    `json:"file_url"`
	CreatedAt    time.Time `json:"created_at"`
}
