package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trolliama/copivaga-landing/internal/dtos"
	"github.com/trolliama/copivaga-landing/internal/quiz"
	"github.com/trolliama/copivaga-landing/internal/validation"
)

const (
	msgNoSession   = "Sessão não encontrada. Por favor, faça o cadastro novamente."
	msgNoSignup    = "Não foi possível identificar seu cadastro."
	msgSaveFailed  = "Não foi possível salvar suas respostas. Tente novamente."
	msgStepSaved   = "Respostas salvas!"
	msgQuizDone    = "Quiz completo!"
	msgBonusSent   = "Você receberá o ebook no seu WhatsApp em até 24h!"
	msgSuggested   = "Sua sugestão foi registrada com sucesso!"
	msgBonusAgain  = "Você já solicitou o bônus."
	msgSuggestedAg = "Você já enviou uma sugestão."
)

// FlowHandler drives the quiz wizard over HTTP, one wizard per session
// cookie.
type FlowHandler struct {
	Flows *quiz.Manager
}

func NewFlowHandler(flows *quiz.Manager) *FlowHandler {
	return &FlowHandler{Flows: flows}
}

// wizard resolves the caller's flow from the session cookie, opening a fresh
// one (and setting the cookie) when none exists yet.
func (h *FlowHandler) wizard(c *gin.Context) *quiz.Wizard {
	token, _ := c.Cookie(FlowCookie)
	newToken, w := h.Flows.GetOrCreate(token)
	if newToken != token {
		c.SetCookie(FlowCookie, newToken, 0, "/", "", false, true)
	}
	return w
}

// bindOptional binds a JSON body, tolerating an empty one.
func bindOptional(c *gin.Context, out any) error {
	err := c.ShouldBindJSON(out)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Start is POST /quiz/start: the guard on entering the flow. The signup id
// must come from the request ("navigation state") or the cached session.
func (h *FlowHandler) Start(c *gin.Context) {
	var req dtos.QuizStartRequest
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao processar solicitação"})
		return
	}

	w := h.wizard(c)
	if err := w.Resume(req.TrialSignupID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoSession, "redirect": "/"})
		return
	}
	w.Start()

	state := w.State()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"state":    state.String(),
		"progress": state.Progress(),
	})
}

// State is GET /quiz/state: current stage, progress, and the phone pre-fill
// for the completion page.
func (h *FlowHandler) State(c *gin.Context) {
	token, _ := c.Cookie(FlowCookie)
	w, ok := h.Flows.Get(token)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoSession, "redirect": "/"})
		return
	}

	state := w.State()
	c.JSON(http.StatusOK, gin.H{
		"state":            state.String(),
		"progress":         state.Progress(),
		"whatsapp_prefill": w.PrefillBonusContact(),
	})
}

// Step1 is POST /quiz/steps/1.
func (h *FlowHandler) Step1(c *gin.Context) {
	var req dtos.QuizStep1Request
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao processar solicitação"})
		return
	}

	w := h.wizard(c)
	state, err := w.SubmitStep1(c.Request.Context(), quiz.Step1Answers{
		Situation:  req.Situation,
		Area:       req.Area,
		AreaOther:  req.AreaOther,
		Experience: req.Experience,
	})
	h.respondStep(c, state, err, msgStepSaved)
}

// Step2 is POST /quiz/steps/2.
func (h *FlowHandler) Step2(c *gin.Context) {
	var req dtos.QuizStep2Request
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao processar solicitação"})
		return
	}

	w := h.wizard(c)
	state, err := w.SubmitStep2(c.Request.Context(), quiz.Step2Answers{
		Frustration:  req.Frustration,
		SearchTime:   req.SearchTime,
		HoursPerWeek: req.HoursPerWeek,
		WorkModel:    req.WorkModel,
	})
	h.respondStep(c, state, err, msgStepSaved)
}

// Step3 is POST /quiz/steps/3.
func (h *FlowHandler) Step3(c *gin.Context) {
	var req dtos.QuizStep3Request
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao processar solicitação"})
		return
	}

	w := h.wizard(c)
	state, err := w.SubmitStep3(c.Request.Context(), quiz.Step3Answers{
		Expectations: req.Expectations,
		Features:     req.Features,
		Result:       req.Result,
	})
	h.respondStep(c, state, err, msgQuizDone)
}

// Bonus is POST /quiz/bonus: the completion page's optional ebook contact.
func (h *FlowHandler) Bonus(c *gin.Context) {
	var req dtos.QuizBonusRequest
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao processar solicitação"})
		return
	}

	w := h.wizard(c)
	if err := w.SubmitBonusContact(c.Request.Context(), req.Whatsapp); err != nil {
		h.respondExtraError(c, err, msgBonusAgain)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msgBonusSent})
}

// Suggestion is POST /quiz/suggestion: the completion page's optional
// free-text feedback.
func (h *FlowHandler) Suggestion(c *gin.Context) {
	var req dtos.QuizSuggestionRequest
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao processar solicitação"})
		return
	}

	w := h.wizard(c)
	if err := w.SubmitSuggestion(c.Request.Context(), req.Suggestion); err != nil {
		h.respondExtraError(c, err, msgSuggestedAg)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msgSuggested})
}

func (h *FlowHandler) respondStep(c *gin.Context, state quiz.State, err error, successMsg string) {
	var vErr *validation.Error
	var pErr *quiz.PersistError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"state":    state.String(),
			"progress": state.Progress(),
			"message":  successMsg,
		})
	case errors.Is(err, quiz.ErrNoSession):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoSession, "redirect": "/"})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "fields": vErr.Fields})
	case errors.As(err, &pErr):
		log.Println("Error saving quiz responses:", pErr.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgSaveFailed})
	default:
		log.Println("Quiz step error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgSaveFailed})
	}
}

func (h *FlowHandler) respondExtraError(c *gin.Context, err error, alreadyMsg string) {
	var vErr *validation.Error
	var pErr *quiz.PersistError
	switch {
	case errors.Is(err, quiz.ErrBonusAlreadySent), errors.Is(err, quiz.ErrSuggestionAlreadySent):
		c.JSON(http.StatusBadRequest, gin.H{"error": alreadyMsg})
	case errors.Is(err, quiz.ErrNoSession):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoSignup, "redirect": "/"})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "fields": vErr.Fields})
	case errors.As(err, &pErr):
		log.Println("Error saving quiz response:", pErr.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ocorreu um erro. Tente novamente."})
	default:
		log.Println("Quiz completion error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ocorreu um erro. Tente novamente."})
	}
}
