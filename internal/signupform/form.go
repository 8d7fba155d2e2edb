// Package signupform models the trial-start capture: live input masks,
// client-side schema validation, and on success the handoff into the quiz
// flow. Its validation is advisory; the gateway re-checks everything.
package signupform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/trolliama/copivaga-landing/internal/dtos"
	"github.com/trolliama/copivaga-landing/internal/format"
	"github.com/trolliama/copivaga-landing/internal/models"
	"github.com/trolliama/copivaga-landing/internal/quiz"
	"github.com/trolliama/copivaga-landing/internal/validation"
)

// Gateway submits a validated signup and returns the created row.
type Gateway interface {
	SubmitTrialSignup(ctx context.Context, req dtos.TrialSignupRequest) (*models.TrialSignup, error)
}

// Form holds the entered values between attempts: a failed submission
// preserves them so the user can retry without re-entry.
type Form struct {
	FullName string
	Email    string

	phoneDisplay string
	birthDisplay string

	// Errors maps field name → inline message after a failed validation.
	Errors map[string]string

	gateway Gateway
	wizard  *quiz.Wizard
}

func New(gateway Gateway, wizard *quiz.Wizard) *Form {
	return &Form{
		Errors:  make(map[string]string),
		gateway: gateway,
		wizard:  wizard,
	}
}

// SetPhone applies the phone mask so the display value always matches the
// live input.
func (f *Form) SetPhone(raw string) {
	f.phoneDisplay = format.FormatPhone(raw)
}

// SetBirthDate applies the dd/mm/aaaa mask.
func (f *Form) SetBirthDate(raw string) {
	f.birthDisplay = format.FormatBirthDate(raw)
}

func (f *Form) PhoneDisplay() string     { return f.phoneDisplay }
func (f *Form) BirthDateDisplay() string { return f.birthDisplay }

// Submit validates the form and, only when every rule passes, invokes the
// gateway. On success the signup id and formatted phone are cached for the
// quiz and the form resets; on gateway failure the entered values survive
// for resubmission.
func (f *Form) Submit(ctx context.Context) (string, error) {
	form, res := validation.ValidateSignup(validation.SignupForm{
		FullName:  f.FullName,
		Email:     f.Email,
		BirthDate: f.birthDisplay,
		Whatsapp:  f.phoneDisplay,
	})
	if !res.Ok() {
		f.Errors = res.Fields()
		return "", res.Err()
	}
	f.Errors = make(map[string]string)

	signup, err := f.gateway.SubmitTrialSignup(ctx, dtos.TrialSignupRequest{
		FullName:  form.FullName,
		Email:     form.Email,
		BirthDate: format.ToISODate(form.BirthDate),
		Whatsapp:  form.Whatsapp,
	})
	if err != nil {
		return "", fmt.Errorf("submitting trial signup: %w", err)
	}

	f.wizard.Begin(signup.ID, f.phoneDisplay)

	f.FullName = ""
	f.Email = ""
	f.phoneDisplay = ""
	f.birthDisplay = ""
	return signup.ID, nil
}

// HTTPGateway calls the submission gateway over HTTP, the way the page
// invoked the hosted function.
type HTTPGateway struct {
	BaseURL string
	Client  *http.Client
}

func (g *HTTPGateway) SubmitTrialSignup(ctx context.Context, req dtos.TrialSignupRequest) (*models.TrialSignup, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/api/v1/trial-signups", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Success bool                `json:"success"`
		Data    *models.TrialSignup `json:"data"`
		Error   string              `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding gateway response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !payload.Success || payload.Data == nil {
		if payload.Error != "" {
			return nil, fmt.Errorf("gateway: %s", payload.Error)
		}
		return nil, fmt.Errorf("gateway: unexpected status %d", resp.StatusCode)
	}
	return payload.Data, nil
}
