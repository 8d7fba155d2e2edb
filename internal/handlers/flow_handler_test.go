package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/trolliama/copivaga-landing/internal/quiz"
)

func flowRouter(answers *stubAnswers) (*gin.Engine, *quiz.Manager) {
	gin.SetMode(gin.TestMode)
	flows := quiz.NewManager(answers)
	h := NewFlowHandler(flows)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/quiz/start", h.Start)
	v1.GET("/quiz/state", h.State)
	v1.POST("/quiz/steps/1", h.Step1)
	v1.POST("/quiz/steps/2", h.Step2)
	v1.POST("/quiz/steps/3", h.Step3)
	v1.POST("/quiz/bonus", h.Bonus)
	v1.POST("/quiz/suggestion", h.Suggestion)
	return r, flows
}

// flowClient keeps the session cookie across requests, like a browser would.
type flowClient struct {
	t      *testing.T
	r      http.Handler
	cookie *http.Cookie
}

func (c *flowClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(c.t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == FlowCookie {
			c.cookie = ck
		}
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func step1Body() map[string]any {
	return map[string]any{
		"situation":  "Empregado buscando mudança",
		"area":       "Tech (Desenvolvimento, Produto, Design, Infra)",
		"experience": "1-3 anos",
	}
}

func step2Body() map[string]any {
	return map[string]any{
		"frustration":    "Gasto muito tempo procurando vagas",
		"search_time":    "1-3 meses",
		"hours_per_week": "5-10h",
		"work_model":     "100% Remoto",
	}
}

func step3Body() map[string]any {
	return map[string]any{
		"expectations": []string{"Economizar tempo na busca de vagas"},
		"features":     []string{"Personalização de CV por vaga"},
		"result":       "Conseguir mais entrevistas em menos tempo",
	}
}

func TestFlowStartWithoutSignup(t *testing.T) {
	r, _ := flowRouter(&stubAnswers{})
	c := &flowClient{t: t, r: r}

	w := c.do(http.MethodPost, "/api/v1/quiz/start", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode(t, w)
	assert.Equal(t, "Sessão não encontrada. Por favor, faça o cadastro novamente.", resp["error"])
	assert.Equal(t, "/", resp["redirect"])
}

func TestFlowFullRun(t *testing.T) {
	answers := &stubAnswers{}
	r, _ := flowRouter(answers)
	c := &flowClient{t: t, r: r}

	w := c.do(http.MethodPost, "/api/v1/quiz/start", map[string]any{"trial_signup_id": "signup-1"})
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "step1", resp["state"])
	assert.Equal(t, float64(0), resp["progress"])

	w = c.do(http.MethodPost, "/api/v1/quiz/steps/1", step1Body())
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decode(t, w)
	assert.Equal(t, "step2", resp["state"])
	assert.Equal(t, float64(33), resp["progress"])
	assert.Equal(t, "Respostas salvas!", resp["message"])

	w = c.do(http.MethodPost, "/api/v1/quiz/steps/2", step2Body())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "step3", decode(t, w)["state"])

	w = c.do(http.MethodPost, "/api/v1/quiz/steps/3", step3Body())
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decode(t, w)
	assert.Equal(t, "complete", resp["state"])
	assert.Equal(t, float64(100), resp["progress"])
	assert.Equal(t, "Quiz completo!", resp["message"])

	// 3 + 4 + 3 rows, all under the same signup.
	assert.Len(t, answers.rows, 10)
	for _, row := range answers.rows {
		assert.Equal(t, "signup-1", row.SignupID)
	}

	w = c.do(http.MethodGet, "/api/v1/quiz/state", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "complete", decode(t, w)["state"])
}

func TestFlowStepValidationError(t *testing.T) {
	answers := &stubAnswers{}
	r, _ := flowRouter(answers)
	c := &flowClient{t: t, r: r}

	c.do(http.MethodPost, "/api/v1/quiz/start", map[string]any{"trial_signup_id": "signup-1"})

	body := step1Body()
	delete(body, "situation")
	w := c.do(http.MethodPost, "/api/v1/quiz/steps/1", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode(t, w)
	fields, ok := resp["fields"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Selecione uma opção", fields["situation"])
	assert.Empty(t, answers.rows)
}

func TestFlowStepWithoutSession(t *testing.T) {
	r, _ := flowRouter(&stubAnswers{})
	c := &flowClient{t: t, r: r}

	w := c.do(http.MethodPost, "/api/v1/quiz/steps/1", step1Body())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "/", decode(t, w)["redirect"])
}

func TestFlowStateWithoutCookie(t *testing.T) {
	r, _ := flowRouter(&stubAnswers{})
	c := &flowClient{t: t, r: r}

	w := c.do(http.MethodGet, "/api/v1/quiz/state", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlowBonusAndSuggestion(t *testing.T) {
	answers := &stubAnswers{}
	r, _ := flowRouter(answers)
	c := &flowClient{t: t, r: r}

	c.do(http.MethodPost, "/api/v1/quiz/start", map[string]any{"trial_signup_id": "signup-1"})

	w := c.do(http.MethodPost, "/api/v1/quiz/bonus", map[string]any{"whatsapp": "11987654321"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Formato inválido. Use (XX) XXXXX-XXXX")

	w = c.do(http.MethodPost, "/api/v1/quiz/bonus", map[string]any{"whatsapp": "(11) 98765-4321"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Você receberá o ebook no seu WhatsApp em até 24h!")

	w = c.do(http.MethodPost, "/api/v1/quiz/bonus", map[string]any{"whatsapp": "(11) 98765-4321"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Você já solicitou o bônus.")

	w = c.do(http.MethodPost, "/api/v1/quiz/suggestion", map[string]any{"suggestion": "Integração com LinkedIn"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sua sugestão foi registrada com sucesso!")

	w = c.do(http.MethodPost, "/api/v1/quiz/suggestion", map[string]any{"suggestion": "outra"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Você já enviou uma sugestão.")

	assert.Equal(t, recordedAnswer{"signup-1", "bonus_send", "(11) 98765-4321"}, answers.rows[0])
	assert.Equal(t, recordedAnswer{"signup-1", "suggestions", "Integração com LinkedIn"}, answers.rows[1])
}
