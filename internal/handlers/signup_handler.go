package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trolliama/copivaga-landing/internal/dtos"
	"github.com/trolliama/copivaga-landing/internal/format"
	"github.com/trolliama/copivaga-landing/internal/models"
	"github.com/trolliama/copivaga-landing/internal/quiz"
	"github.com/trolliama/copivaga-landing/internal/validation"
)

// FlowCookie carries the quiz-session token between the signup and the quiz
// pages.
const FlowCookie = "quiz_session"

// SignupCreator persists a validated signup.
type SignupCreator interface {
	Create(req *dtos.TrialSignupRequest) (*models.TrialSignup, error)
}

// SignupHandler is the submission gateway: it re-validates the payload with
// authoritative server-side rules and performs the canonical insert.
type SignupHandler struct {
	Signups SignupCreator
	Flows   *quiz.Manager
}

func NewSignupHandler(signups SignupCreator, flows *quiz.Manager) *SignupHandler {
	return &SignupHandler{
		Signups: signups,
		Flows:   flows,
	}
}

// Create is the POST /trial-signups endpoint.
func (h *SignupHandler) Create(c *gin.Context) {
	var req dtos.TrialSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao processar solicitação"})
		return
	}

	log.Println("Processing trial signup request")

	// The client's validation is advisory; this check is the trust boundary.
	if res := validation.ValidateGateway(req); !res.Ok() {
		log.Println("Invalid trial signup:", res.First())
		c.JSON(http.StatusBadRequest, gin.H{"error": res.First()})
		return
	}

	req.Normalize()
	signup, err := h.Signups.Create(&req)
	if err != nil {
		// Internal detail stays in the server log.
		log.Println("Database error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar dados. Tente novamente."})
		return
	}

	log.Println("Trial signup saved successfully:", signup.ID)

	// Open the quiz session so later stages resume without re-sending the id.
	if h.Flows != nil {
		token, w := h.Flows.Create()
		w.Begin(signup.ID, format.FormatPhone(signup.Whatsapp))
		c.SetCookie(FlowCookie, token, 0, "/", "", false, true)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    signup,
	})
}
