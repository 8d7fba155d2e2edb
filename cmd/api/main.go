package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/trolliama/copivaga-landing/internal/config"
	"github.com/trolliama/copivaga-landing/internal/database"
	"github.com/trolliama/copivaga-landing/internal/handlers"
	"github.com/trolliama/copivaga-landing/internal/quiz"
	"github.com/trolliama/copivaga-landing/internal/services"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}
	cfg := config.Load()

	// 2. Database Connection
	db := database.Connect(cfg.DatabaseDSN)

	// 3. Initialize Core Services (Dependencies)
	signupService := services.NewSignupService(db)
	quizService := services.NewQuizService(db)

	// 4. Quiz flow manager: one wizard per visitor session
	flows := quiz.NewManager(quizService)

	// 5. Initialize Handlers
	signupHandler := handlers.NewSignupHandler(signupService, flows)
	quizHandler := handlers.NewQuizHandler(quizService)
	flowHandler := handlers.NewFlowHandler(flows)

	// 6. Setup Router & CORS
	// Permissive by default, matching the hosted gateway the page called;
	// preflight OPTIONS gets an empty success response from the middleware.
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Client-Info", "Apikey"}
	r.Use(cors.New(corsConfig))

	// 7. Define Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		// Submission gateway
		api.POST("/trial-signups", signupHandler.Create)

		// Raw answer append
		api.POST("/quiz-responses", quizHandler.CreateResponse)

		// Quiz flow
		api.POST("/quiz/start", flowHandler.Start)
		api.GET("/quiz/state", flowHandler.State)
		api.POST("/quiz/steps/1", flowHandler.Step1)
		api.POST("/quiz/steps/2", flowHandler.Step2)
		api.POST("/quiz/steps/3", flowHandler.Step3)
		api.POST("/quiz/bonus", flowHandler.Bonus)
		api.POST("/quiz/suggestion", flowHandler.Suggestion)
	}

	log.Println("Support contacts:", cfg.SupportWhatsappURL(), "/", cfg.EmailSupport)
	log.Println("🚀 Server starting on", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
