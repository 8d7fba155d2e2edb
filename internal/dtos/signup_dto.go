package dtos

import "strings"

// TrialSignupRequest is the payload the submission gateway receives. The
// client sends birthDate already converted to yyyy-mm-dd and whatsapp as a
// digits-only string, but neither is trusted: the gateway re-validates.
// Fields deliberately carry no binding rules: missing values fall through to
// the gateway schema so the client sees the field's own message.
type TrialSignupRequest struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	BirthDate string `json:"birthDate"`
	Whatsapp  string `json:"whatsapp"`
}

// Normalize trims and lowercases fields where appropriate to ensure
// consistent storage.
func (r *TrialSignupRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Whatsapp = strings.TrimSpace(r.Whatsapp)
}
