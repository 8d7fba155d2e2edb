package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/trolliama/copivaga-landing/internal/dtos"
	"github.com/trolliama/copivaga-landing/internal/format"
)

// SignupForm is the trial-signup schema as the browser form validates it:
// BirthDate in dd/mm/aaaa display form, Whatsapp in whatever the user typed
// (ValidateSignup strips it to digits first).
type SignupForm struct {
	FullName  string `validate:"min=3,max=100,namechars,fulltokens"`
	Email     string `validate:"required,email,max=255"`
	BirthDate string `validate:"required,datemask,realdate,agebr"`
	Whatsapp  string `validate:"required,brphone,mobile9"`
}

var signupMessages = map[string]string{
	"FullName.min":        "Nome muito curto",
	"FullName.max":        "Nome muito longo",
	"FullName.namechars":  "Nome deve conter apenas letras",
	"FullName.fulltokens": "Digite nome e sobrenome completos",
	"Email.required":      "Email é obrigatório",
	"Email.email":         "Digite um email válido",
	"Email.max":           "Email muito longo",
	"BirthDate.required":  "Data de nascimento é obrigatória",
	"BirthDate.datemask":  "Use o formato dd/mm/aaaa",
	"BirthDate.realdate":  "Data inválida",
	"BirthDate.agebr":     "Você deve ter entre 16 e 100 anos",
	"Whatsapp.required":   "WhatsApp é obrigatório",
	"Whatsapp.brphone":    "Número inválido. Use DDD + 8 ou 9 dígitos",
	"Whatsapp.mobile9":    "Celular deve começar com 9",
}

// ValidateSignup normalizes the form the way the browser schema did (trim
// name, trim+lowercase email, strip phone to digits) and evaluates every
// field. The normalized form is returned alongside the result so the caller
// submits exactly what was validated.
func ValidateSignup(form SignupForm) (SignupForm, *Result) {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	form.BirthDate = strings.TrimSpace(form.BirthDate)
	form.Whatsapp = format.NormalizePhone(form.Whatsapp)

	return form, collect(validate.Struct(form), signupMessages)
}

// gatewayPayload re-checks the signup server-side. The whatsapp rule is the
// length range only: the client's "3rd digit must be 9" refinement is
// deliberately absent here, matching the deployed gateway. See DESIGN.md.
type gatewayPayload struct {
	FullName  string `validate:"min=3,max=100"`
	Email     string `validate:"emailshape"`
	BirthDate string `validate:"required,isodate,ageiso"`
	Whatsapp  string `validate:"min=10,max=20"`
}

var gatewayMessages = map[string]string{
	"FullName.min":       "Nome deve ter entre 3 e 100 caracteres",
	"FullName.max":       "Nome deve ter entre 3 e 100 caracteres",
	"Email.emailshape":   "Email inválido",
	"BirthDate.required": "Data de nascimento é obrigatória",
	"BirthDate.isodate":  "Data de nascimento inválida",
	"BirthDate.ageiso":   "Você deve ter entre 16 e 100 anos",
	"Whatsapp.min":       "WhatsApp deve ter entre 10 e 20 caracteres",
	"Whatsapp.max":       "WhatsApp deve ter entre 10 e 20 caracteres",
}

// ValidateGateway runs the authoritative server-side checks on a submission.
func ValidateGateway(req dtos.TrialSignupRequest) *Result {
	payload := gatewayPayload{
		FullName:  strings.TrimSpace(req.FullName),
		Email:     strings.TrimSpace(req.Email),
		BirthDate: strings.TrimSpace(req.BirthDate),
		Whatsapp:  strings.TrimSpace(req.Whatsapp),
	}
	return collect(validate.Struct(payload), gatewayMessages)
}

// ValidateBonusContact checks the completion page's bonus number, which is
// submitted in display format.
func ValidateBonusContact(whatsapp string) *Result {
	result := newResult()
	switch {
	case strings.TrimSpace(whatsapp) == "":
		result.add("Whatsapp", "WhatsApp é obrigatório")
	case !bonusMaskPattern.MatchString(whatsapp):
		result.add("Whatsapp", "Formato inválido. Use (XX) XXXXX-XXXX")
	}
	return result
}

func collect(err error, messages map[string]string) *Result {
	result := newResult()
	if err == nil {
		return result
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		result.add("", "Dados inválidos")
		return result
	}

	for _, fe := range errs {
		key := fe.StructField() + "." + fe.Tag()
		msg, found := messages[key]
		if !found {
			msg = "Dados inválidos"
		}
		result.add(fe.StructField(), msg)
	}
	return result
}
