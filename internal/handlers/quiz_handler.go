package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trolliama/copivaga-landing/internal/dtos"
)

// AnswerAppender is the persisted-answer append interface plus the existence
// check for its foreign reference.
type AnswerAppender interface {
	AppendAnswer(ctx context.Context, signupID, span, answer string) error
	SignupExists(ctx context.Context, id string) (bool, error)
}

// QuizHandler exposes the raw append endpoint the quiz pages use for
// one-off response rows.
type QuizHandler struct {
	Responses AnswerAppender
}

func NewQuizHandler(responses AnswerAppender) *QuizHandler {
	return &QuizHandler{Responses: responses}
}

// CreateResponse is the POST /quiz-responses endpoint.
func (h *QuizHandler) CreateResponse(c *gin.Context) {
	var req dtos.QuizResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao processar solicitação"})
		return
	}

	exists, err := h.Responses.SignupExists(c.Request.Context(), req.TrialSignupID)
	if err != nil {
		log.Println("Database error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar dados. Tente novamente."})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cadastro não encontrado"})
		return
	}

	if err := h.Responses.AppendAnswer(c.Request.Context(), req.TrialSignupID, req.Span, req.Answer); err != nil {
		log.Println("Database error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar dados. Tente novamente."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
