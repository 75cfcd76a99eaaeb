package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateRequest is the body of POST /api/generate.
// Intensity is a pointer so a missing value can be told apart from zero.
type GenerateRequest struct {
	OpponentText string   `json:"opponentText"`
	Intensity    *float64 `json:"intensity"`
}

// GenerateResponse is returned by POST /api/generate.
// Error is set together with fallback Responses on failure.
type GenerateResponse struct {
	Responses []string `json:"responses,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// GenerationRecord is one row of the generation audit log
type GenerationRecord struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
	RequestID        string    `gorm:"index" json:"request_id"`
	OpponentText     string    `gorm:"type:text" json:"opponent_text"`
	Intensity        int       `json:"intensity"`
	Provider         string    `json:"provider"`
	Model            string    `json:"model"`
	Responses        []string  `gorm:"serializer:json;type:text" json:"responses"`
	Fallback         bool      `gorm:"index" json:"fallback"`
	Error            string    `json:"error,omitempty"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	DurationMS       int64     `json:"duration_ms"`
}

// BeforeCreate assigns an ID when none is set
func (r *GenerationRecord) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
