package services

import (
	"context"
	"errors"

	"github.com/trolliama/copivaga-landing/internal/models"
	"gorm.io/gorm"
)

type QuizService struct {
	DB *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{
		DB: db,
	}
}

// AppendAnswer inserts one response row. It is a blind append: duplicates
// for the same (signup, span) pair are allowed.
func (s *QuizService) AppendAnswer(ctx context.Context, signupID, span, answer string) error {
	response := &models.QuizResponse{
		TrialSignupID: signupID,
		Span:          span,
		Answer:        answer,
	}
	return s.DB.WithContext(ctx).Create(response).Error
}

// SignupExists checks the foreign reference before an append issued from
// outside the wizard.
func (s *QuizService) SignupExists(ctx context.Context, id string) (bool, error) {
	var signup models.TrialSignup
	err := s.DB.WithContext(ctx).Select("id").First(&signup, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
