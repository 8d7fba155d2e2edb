// Package quiz drives the onboarding flow: a forward-only sequence of states
// gated on a trial-signup id, where each step validates its own schema and
// appends one response row per question before advancing.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/trolliama/copivaga-landing/internal/session"
	"github.com/trolliama/copivaga-landing/internal/validation"
)

// State is the wizard's position in the flow. There is no backward
// transition.
type State int

const (
	StateWelcome State = iota
	StateStep1
	StateStep2
	StateStep3
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateWelcome:
		return "welcome"
	case StateStep1:
		return "step1"
	case StateStep2:
		return "step2"
	case StateStep3:
		return "step3"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Progress is the indicator value across the three data-entry steps.
func (s State) Progress() int {
	switch s {
	case StateStep2:
		return 33
	case StateStep3:
		return 66
	case StateComplete:
		return 100
	default:
		return 0
	}
}

// AnswerStore appends one response row tied to a signup.
type AnswerStore interface {
	AppendAnswer(ctx context.Context, signupID, span, answer string) error
}

// ErrNoSession means a stage was reached without a resolvable signup id; the
// caller redirects to the flow's entry point.
var ErrNoSession = errors.New("quiz: trial signup id not resolvable")

// ErrFeatureLimit rejects a third feature selection before it reaches the
// schema.
var ErrFeatureLimit = errors.New("Você pode selecionar no máximo 2 funcionalidades.")

// Guards against repeating the completion page's one-shot sub-actions within
// a session. The write path itself enforces no uniqueness.
var (
	ErrBonusAlreadySent      = errors.New("quiz: bonus contact already submitted")
	ErrSuggestionAlreadySent = errors.New("quiz: suggestion already submitted")
)

// PersistError wraps an insert failure. Rows appended earlier in the same
// step stay in place; the caller stays in state and may retry.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("saving quiz responses: %v", e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Wizard is one visitor's pass through the flow. Session state (signup id,
// last phone) lives in the injected store; answers go to the AnswerStore.
type Wizard struct {
	mu       sync.Mutex
	answers  AnswerStore
	session  session.Store
	state    State
	signupID string

	bonusSent      bool
	suggestionSent bool
}

func New(answers AnswerStore, sess session.Store) *Wizard {
	return &Wizard{answers: answers, session: sess, state: StateWelcome}
}

// Begin enters the welcome stage after a successful signup, caching the id
// and the formatted phone for later stages.
func (w *Wizard) Begin(signupID, formattedPhone string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.signupID = signupID
	w.state = StateWelcome
	w.session.Set(session.KeyTrialSignupID, signupID)
	w.session.Set(session.KeyLastWhatsappNumber, formattedPhone)
}

// Resume guards direct navigation into the flow: the signup id must come
// from the caller's navigation context or from the session cache.
func (w *Wizard) Resume(explicitID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if explicitID != "" {
		w.signupID = explicitID
		w.session.Set(session.KeyTrialSignupID, explicitID)
		return nil
	}
	if w.signupID != "" {
		return nil
	}
	if id, ok := w.session.Get(session.KeyTrialSignupID); ok && id != "" {
		w.signupID = id
		return nil
	}
	return ErrNoSession
}

// Start moves from the welcome stage to the first question page.
func (w *Wizard) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateWelcome {
		w.state = StateStep1
	}
}

func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// PrefillBonusContact returns the phone cached at signup, for the completion
// page's bonus form.
func (w *Wizard) PrefillBonusContact() string {
	v, _ := w.session.Get(session.KeyLastWhatsappNumber)
	return v
}

// Step1Answers: situation, area (with the "Outra" free-text escape) and
// experience.
type Step1Answers struct {
	Situation  string
	Area       string
	AreaOther  string
	Experience string
}

func (a Step1Answers) input() validation.StepInput {
	return validation.StepInput{Values: map[string]string{
		"situation":  a.Situation,
		"area":       a.Area,
		"area_other": a.AreaOther,
		"experience": a.Experience,
	}}
}

type Step2Answers struct {
	Frustration  string
	SearchTime   string
	HoursPerWeek string
	WorkModel    string
}

func (a Step2Answers) input() validation.StepInput {
	return validation.StepInput{Values: map[string]string{
		"frustration":    a.Frustration,
		"search_time":    a.SearchTime,
		"hours_per_week": a.HoursPerWeek,
		"work_model":     a.WorkModel,
	}}
}

type Step3Answers struct {
	Expectations []string
	Features     []string
	Result       string
}

func (a Step3Answers) input() validation.StepInput {
	return validation.StepInput{
		Values: map[string]string{"result": a.Result},
		Lists: map[string][]string{
			"expectations": a.Expectations,
			"features":     a.Features,
		},
	}
}

func (w *Wizard) SubmitStep1(ctx context.Context, a Step1Answers) (State, error) {
	return w.submitStep(ctx, validation.Step1Schema, a.input(), StateStep2)
}

func (w *Wizard) SubmitStep2(ctx context.Context, a Step2Answers) (State, error) {
	return w.submitStep(ctx, validation.Step2Schema, a.input(), StateStep3)
}

func (w *Wizard) SubmitStep3(ctx context.Context, a Step3Answers) (State, error) {
	return w.submitStep(ctx, validation.Step3Schema, a.input(), StateComplete)
}

// submitStep validates the step's schema, then persists one row per question
// sequentially, each insert awaited before the next. A failure partway
// leaves the earlier rows in place and the state unchanged; there is no
// transactional rollback.
func (w *Wizard) submitStep(ctx context.Context, schema validation.Schema, in validation.StepInput, next State) (State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.signupID == "" {
		return w.state, ErrNoSession
	}

	if res := schema.Validate(in); !res.Ok() {
		return w.state, res.Err()
	}

	for _, f := range schema.Fields {
		if err := w.answers.AppendAnswer(ctx, w.signupID, f.Question, f.Answer(in)); err != nil {
			return w.state, &PersistError{Err: err}
		}
	}

	w.state = next
	return w.state, nil
}

// SubmitBonusContact records the bonus-ebook number under the fixed
// "bonus_send" span. Disabled after its first success within the session.
func (w *Wizard) SubmitBonusContact(ctx context.Context, whatsapp string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.bonusSent {
		return ErrBonusAlreadySent
	}
	if w.signupID == "" {
		return ErrNoSession
	}
	if res := validation.ValidateBonusContact(whatsapp); !res.Ok() {
		return res.Err()
	}
	if err := w.answers.AppendAnswer(ctx, w.signupID, "bonus_send", whatsapp); err != nil {
		return &PersistError{Err: err}
	}
	w.bonusSent = true
	return nil
}

// SubmitSuggestion records free-text feedback under the fixed "suggestions"
// span. Disabled after its first success within the session.
func (w *Wizard) SubmitSuggestion(ctx context.Context, suggestion string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.suggestionSent {
		return ErrSuggestionAlreadySent
	}
	if w.signupID == "" {
		return ErrNoSession
	}
	if strings.TrimSpace(suggestion) == "" {
		return &validation.Error{
			Message: "Por favor, escreva uma sugestão antes de enviar.",
			Fields:  map[string]string{"suggestion": "Por favor, escreva uma sugestão antes de enviar."},
		}
	}
	if err := w.answers.AppendAnswer(ctx, w.signupID, "suggestions", suggestion); err != nil {
		return &PersistError{Err: err}
	}
	w.suggestionSent = true
	return nil
}

// ToggleFeature adds or removes a feature selection, rejecting a third pick
// with ErrFeatureLimit so the caller can surface the limit notification.
func ToggleFeature(selected []string, option string) ([]string, error) {
	for i, s := range selected {
		if s == option {
			return append(append([]string(nil), selected[:i]...), selected[i+1:]...), nil
		}
	}
	if len(selected) >= validation.FeatureSelectionLimit {
		return selected, ErrFeatureLimit
	}
	return append(append([]string(nil), selected...), option), nil
}
