package database

import (
	"log"

	"github.com/trolliama/copivaga-landing/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the Postgres connection and runs migrations. The DSN comes
// from configuration so the hosted database can be swapped per environment.
func Connect(dsn string) *gorm.DB {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	// Migration: this creates the tables in Postgres automatically
	log.Println("Running Migrations...")
	DB.AutoMigrate(&models.TrialSignup{}, &models.QuizResponse{})
	return DB
}
