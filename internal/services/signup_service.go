package services

import (
	"github.com/trolliama/copivaga-landing/internal/dtos"
	"github.com/trolliama/copivaga-landing/internal/models"
	"gorm.io/gorm"
)

type SignupService struct {
	DB *gorm.DB
}

func NewSignupService(db *gorm.DB) *SignupService {
	return &SignupService{
		DB: db,
	}
}

// Create inserts the canonical signup row and returns it, id included.
// There is no deduplication: identical input produces an independent row
// with a new identifier.
func (s *SignupService) Create(req *dtos.TrialSignupRequest) (*models.TrialSignup, error) {
	signup := &models.TrialSignup{
		FullName:  req.FullName,
		Email:     req.Email,
		BirthDate: req.BirthDate,
		Whatsapp:  req.Whatsapp,
	}
	if err := s.DB.Create(signup).Error; err != nil {
		return nil, err
	}
	return signup, nil
}
