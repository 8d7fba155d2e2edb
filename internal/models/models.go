package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrialSignup is the row created when a visitor submits the trial-start form.
// It is created exactly once per successful submission and never updated or
// deleted; ID is the sole join key for all quiz responses.
type TrialSignup struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	FullName string `gorm:"size:100;not null" json:"full_name"`
	Email    string `gorm:"size:255;not null" json:"email"`
	// BirthDate is stored in yyyy-mm-dd form, as the gateway receives it.
	BirthDate string `gorm:"size:10;not null" json:"birth_date"`
	Whatsapp  string `gorm:"size:20;not null" json:"whatsapp"`

	// 'omitempty' keeps signup payloads small when responses aren't preloaded
	Responses []QuizResponse `json:"responses,omitempty"`
}

func (t *TrialSignup) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// QuizResponse is one question/answer pair tied to a trial signup. Rows are
// append-only: there is no uniqueness on (signup, span), so repeated
// submissions produce duplicate rows.
type QuizResponse struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Foreign Key
	TrialSignupID string `gorm:"type:uuid;index;not null" json:"trial_signup_id"`

	// Span holds the literal question text, or a fixed tag such as
	// "bonus_send" / "suggestions" for the completion-page extras.
	Span   string `gorm:"not null" json:"span"`
	Answer string `gorm:"type:text;not null" json:"answer"`
}

func (q *QuizResponse) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
