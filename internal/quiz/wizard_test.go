package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trolliama/copivaga-landing/internal/session"
	"github.com/trolliama/copivaga-landing/internal/validation"
)

type recordedAnswer struct {
	SignupID string
	Span     string
	Answer   string
}

// stubAnswers records every append and can be told to fail after n writes.
type stubAnswers struct {
	rows    []recordedAnswer
	failAt  int
	failErr error
}

func (s *stubAnswers) AppendAnswer(ctx context.Context, signupID, span, answer string) error {
	if s.failErr != nil && len(s.rows) >= s.failAt {
		return s.failErr
	}
	s.rows = append(s.rows, recordedAnswer{signupID, span, answer})
	return nil
}

func newTestWizard() (*Wizard, *stubAnswers) {
	answers := &stubAnswers{}
	w := New(answers, session.NewMemoryStore())
	return w, answers
}

func step1Answers() Step1Answers {
	return Step1Answers{
		Situation:  "Empregado buscando mudança",
		Area:       "Tech (Desenvolvimento, Produto, Design, Infra)",
		Experience: "1-3 anos",
	}
}

func step2Answers() Step2Answers {
	return Step2Answers{
		Frustration:  "Gasto muito tempo procurando vagas",
		SearchTime:   "1-3 meses",
		HoursPerWeek: "5-10h",
		WorkModel:    "100% Remoto",
	}
}

func step3Answers() Step3Answers {
	return Step3Answers{
		Expectations: []string{"Economizar tempo na busca de vagas", "Aumentar o número de entrevistas"},
		Features:     []string{"Personalização de CV por vaga"},
		Result:       "Conseguir mais entrevistas em menos tempo",
	}
}

func TestWizardFullFlow(t *testing.T) {
	w, answers := newTestWizard()
	w.Begin("signup-1", "(11) 98765-4321")
	assert.Equal(t, StateWelcome, w.State())
	assert.Equal(t, 0, StateWelcome.Progress())

	w.Start()
	assert.Equal(t, StateStep1, w.State())

	ctx := context.Background()

	state, err := w.SubmitStep1(ctx, step1Answers())
	assert.NoError(t, err)
	assert.Equal(t, StateStep2, state)
	assert.Equal(t, 33, state.Progress())

	state, err = w.SubmitStep2(ctx, step2Answers())
	assert.NoError(t, err)
	assert.Equal(t, StateStep3, state)
	assert.Equal(t, 66, state.Progress())

	state, err = w.SubmitStep3(ctx, step3Answers())
	assert.NoError(t, err)
	assert.Equal(t, StateComplete, state)
	assert.Equal(t, 100, state.Progress())

	want := []recordedAnswer{
		{"signup-1", "Qual sua situação atual?", "Empregado buscando mudança"},
		{"signup-1", "Qual sua área de atuação?", "Tech (Desenvolvimento, Produto, Design, Infra)"},
		{"signup-1", "Quanto tempo de experiência na sua área?", "1-3 anos"},
		{"signup-1", "Principal frustração na busca atual", "Gasto muito tempo procurando vagas"},
		{"signup-1", "Há quanto tempo está procurando emprego?", "1-3 meses"},
		{"signup-1", "Quantas horas/semana você gasta procurando vagas atualmente?", "5-10h"},
		{"signup-1", "Qual modelo de trabalho você procura?", "100% Remoto"},
		{"signup-1", "O que você espera com o CopiVaga?", "Economizar tempo na busca de vagas, Aumentar o número de entrevistas"},
		{"signup-1", "Quais funcionalidades mais te interessam?", "Personalização de CV por vaga"},
		{"signup-1", "Que resultado você espera alcançar?", "Conseguir mais entrevistas em menos tempo"},
	}
	assert.Equal(t, want, answers.rows)
}

func TestWizardAreaOtherPersisted(t *testing.T) {
	w, answers := newTestWizard()
	w.Begin("signup-1", "")
	w.Start()

	a := step1Answers()
	a.Area = "Outra"
	a.AreaOther = "Saúde"
	_, err := w.SubmitStep1(context.Background(), a)
	assert.NoError(t, err)
	assert.Equal(t, "Saúde", answers.rows[1].Answer)
}

func TestWizardValidationFailureWritesNothing(t *testing.T) {
	w, answers := newTestWizard()
	w.Begin("signup-1", "")
	w.Start()

	a := step1Answers()
	a.Situation = ""
	state, err := w.SubmitStep1(context.Background(), a)
	assert.Equal(t, StateStep1, state)

	var verr *validation.Error
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Selecione uma opção", verr.Fields["situation"])
	assert.Empty(t, answers.rows)
}

func TestWizardPartialWriteKeepsEarlierRows(t *testing.T) {
	w, answers := newTestWizard()
	w.Begin("signup-1", "")
	w.Start()

	answers.failAt = 2
	answers.failErr = errors.New("insert failed")

	state, err := w.SubmitStep1(context.Background(), step1Answers())
	assert.Equal(t, StateStep1, state)

	var perr *PersistError
	assert.ErrorAs(t, err, &perr)
	// The first two rows stay; the state does not advance.
	assert.Len(t, answers.rows, 2)

	// A retry after the store recovers appends the step again in full.
	answers.failErr = nil
	state, err = w.SubmitStep1(context.Background(), step1Answers())
	assert.NoError(t, err)
	assert.Equal(t, StateStep2, state)
	assert.Len(t, answers.rows, 5)
}

func TestWizardSubmitWithoutSession(t *testing.T) {
	w, answers := newTestWizard()

	state, err := w.SubmitStep1(context.Background(), step1Answers())
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, StateWelcome, state)
	assert.Empty(t, answers.rows)
}

func TestWizardResume(t *testing.T) {
	w, _ := newTestWizard()
	assert.ErrorIs(t, w.Resume(""), ErrNoSession)

	assert.NoError(t, w.Resume("signup-9"))

	// Once cached, a later resume without an explicit id succeeds.
	assert.NoError(t, w.Resume(""))
}

func TestWizardResumeFromSessionCache(t *testing.T) {
	sess := session.NewMemoryStore()
	sess.Set(session.KeyTrialSignupID, "signup-7")
	w := New(&stubAnswers{}, sess)

	assert.NoError(t, w.Resume(""))
	_, err := w.SubmitStep1(context.Background(), step1Answers())
	assert.NoError(t, err)
}

func TestWizardBonusContact(t *testing.T) {
	w, answers := newTestWizard()
	w.Begin("signup-1", "(11) 98765-4321")

	assert.Equal(t, "(11) 98765-4321", w.PrefillBonusContact())

	ctx := context.Background()

	err := w.SubmitBonusContact(ctx, "11987654321")
	var verr *validation.Error
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Formato inválido. Use (XX) XXXXX-XXXX", verr.Message)

	assert.NoError(t, w.SubmitBonusContact(ctx, "(11) 98765-4321"))
	assert.Equal(t, recordedAnswer{"signup-1", "bonus_send", "(11) 98765-4321"}, answers.rows[0])

	assert.ErrorIs(t, w.SubmitBonusContact(ctx, "(11) 98765-4321"), ErrBonusAlreadySent)
	assert.Len(t, answers.rows, 1)
}

func TestWizardSuggestion(t *testing.T) {
	w, answers := newTestWizard()
	w.Begin("signup-1", "")

	ctx := context.Background()

	err := w.SubmitSuggestion(ctx, "   ")
	var verr *validation.Error
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Por favor, escreva uma sugestão antes de enviar.", verr.Message)

	assert.NoError(t, w.SubmitSuggestion(ctx, "Quero integração com LinkedIn"))
	assert.Equal(t, recordedAnswer{"signup-1", "suggestions", "Quero integração com LinkedIn"}, answers.rows[0])

	assert.ErrorIs(t, w.SubmitSuggestion(ctx, "outra"), ErrSuggestionAlreadySent)
}

func TestToggleFeature(t *testing.T) {
	sel, err := ToggleFeature(nil, "Personalização de CV por vaga")
	assert.NoError(t, err)
	sel, err = ToggleFeature(sel, "Análise e correção de ATS")
	assert.NoError(t, err)
	assert.Len(t, sel, 2)

	// A third pick is rejected and the selection stays as it was.
	same, err := ToggleFeature(sel, "Tracking visual de candidaturas")
	assert.ErrorIs(t, err, ErrFeatureLimit)
	assert.Equal(t, sel, same)

	// Toggling an existing pick removes it.
	sel, err = ToggleFeature(sel, "Personalização de CV por vaga")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Análise e correção de ATS"}, sel)
}

func TestManagerFlows(t *testing.T) {
	m := NewManager(&stubAnswers{})

	token, w := m.Create()
	assert.NotEmpty(t, token)
	assert.NotNil(t, w)

	got, ok := m.Get(token)
	assert.True(t, ok)
	assert.Same(t, w, got)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	tok2, w2 := m.GetOrCreate("")
	assert.NotEqual(t, token, tok2)
	assert.NotSame(t, w, w2)

	tok3, w3 := m.GetOrCreate(token)
	assert.Equal(t, token, tok3)
	assert.Same(t, w, w3)
}
