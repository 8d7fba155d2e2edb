package validation

import (
	"fmt"
	"strings"
)

// FieldKind discriminates how a quiz question is answered.
type FieldKind int

const (
	SingleChoice FieldKind = iota
	MultiChoice
	FreeText
)

// Field is one quiz question plus its constraints. Question is the literal
// text persisted as the answer's span.
type Field struct {
	Name     string
	Question string
	Kind     FieldKind
	Options  []string

	// Sentinel marks the choice that redirects the answer to the free-text
	// companion field ("Outra" → area_other).
	Sentinel   string
	OtherField string

	MinSelect int
	MaxSelect int

	// Free-text fields: minimum trimmed length and the message shown when
	// the answer falls short.
	MinLength  int
	LengthHint string
}

// Schema is an ordered constraint set for one quiz step.
type Schema struct {
	Name   string
	Fields []Field
}

// StepInput carries a step's raw answers: single-choice and free-text values
// by field name, multi-select lists by field name.
type StepInput struct {
	Values map[string]string
	Lists  map[string][]string
}

const (
	msgSelectOne     = "Selecione uma opção"
	msgSelectAtLeast = "Selecione pelo menos uma opção"
)

// Validate evaluates every field of the schema against the input.
func (s Schema) Validate(in StepInput) *Result {
	result := newResult()

	for _, f := range s.Fields {
		switch f.Kind {
		case SingleChoice:
			value := in.Values[f.Name]
			if f.Sentinel != "" && value == f.Sentinel {
				if strings.TrimSpace(in.Values[f.OtherField]) == "" {
					result.add(f.Name, msgSelectOne)
				}
				continue
			}
			if value == "" || !contains(f.Options, value) {
				result.add(f.Name, msgSelectOne)
			}

		case MultiChoice:
			list := in.Lists[f.Name]
			if len(list) < f.MinSelect {
				result.add(f.Name, msgSelectAtLeast)
				continue
			}
			if f.MaxSelect > 0 && len(list) > f.MaxSelect {
				result.add(f.Name, fmt.Sprintf("Selecione no máximo %d opções", f.MaxSelect))
				continue
			}
			for _, v := range list {
				if !contains(f.Options, v) {
					result.add(f.Name, msgSelectOne)
					break
				}
			}

		case FreeText:
			if len(strings.TrimSpace(in.Values[f.Name])) < f.MinLength {
				result.add(f.Name, f.LengthHint)
			}
		}
	}

	return result
}

// Answer extracts the persisted answer for one field: sentinel choices give
// way to the companion free text, multi-selects are comma-joined.
func (f Field) Answer(in StepInput) string {
	switch f.Kind {
	case MultiChoice:
		return strings.Join(in.Lists[f.Name], ", ")
	case SingleChoice:
		if f.Sentinel != "" && in.Values[f.Name] == f.Sentinel {
			return in.Values[f.OtherField]
		}
		return in.Values[f.Name]
	default:
		return in.Values[f.Name]
	}
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

// Option sets, verbatim from the quiz pages.
var (
	SituationOptions = []string{
		"Empregado buscando mudança",
		"Desempregado procurando ativamente",
		"Freelancer/PJ buscando CLT",
		"Estudante buscando primeiro emprego",
	}

	AreaOptions = []string{
		"Tech (Desenvolvimento, Produto, Design, Infra)",
		"Marketing, Vendas ou Customer Success",
		"Gestão, RH ou Finanças",
		"Jurídico ou Contábil",
		"Outra",
	}

	ExperienceOptions = []string{
		"menos de 1 ano",
		"1-3 anos",
		"3-5 anos",
		"5+ anos",
	}

	FrustrationOptions = []string{
		"Gasto muito tempo procurando vagas",
		"Baixa taxa de resposta das empresas",
		"Não sei se meu currículo passa no ATS",
		"Desorganização total das candidaturas",
		"Não encontro vagas compatíveis",
	}

	SearchTimeOptions = []string{
		"Menos de 1 mês",
		"1-3 meses",
		"3-6 meses",
		"Mais de 6 meses",
	}

	HoursPerWeekOptions = []string{
		"Menos de 5h",
		"5-10h",
		"10-15h",
		"Mais de 15h",
	}

	WorkModelOptions = []string{
		"100% Remoto",
		"Híbrido",
		"Presencial",
		"Qualquer um",
	}

	ExpectationOptions = []string{
		"Economizar tempo na busca de vagas",
		"Aumentar o número de entrevistas",
		"Passar nos filtros ATS (robôs)",
		"Organizar minhas candidaturas",
		"Encontrar vagas mais compatíveis",
		"Automatizar aplicações repetitivas",
		"Melhorar meu perfil no LinkedIn",
		"Reduzir o estresse da busca",
	}

	FeatureOptions = []string{
		"Busca automática multi-plataforma",
		"Aplicação automática (piloto automático)",
		"Personalização de CV por vaga",
		"Análise e otimização de LinkedIn",
		"Análise e correção de ATS",
		"Tracking visual de candidaturas",
	}
)

// FeatureSelectionLimit caps the "funcionalidades" multi-select.
const FeatureSelectionLimit = 2

// Step1Schema: "Conte mais sobre você".
var Step1Schema = Schema{
	Name: "quiz_step1",
	Fields: []Field{
		{
			Name:     "situation",
			Question: "Qual sua situação atual?",
			Kind:     SingleChoice,
			Options:  SituationOptions,
		},
		{
			Name:       "area",
			Question:   "Qual sua área de atuação?",
			Kind:       SingleChoice,
			Options:    AreaOptions,
			Sentinel:   "Outra",
			OtherField: "area_other",
		},
		{
			Name:     "experience",
			Question: "Quanto tempo de experiência na sua área?",
			Kind:     SingleChoice,
			Options:  ExperienceOptions,
		},
	},
}

// Step2Schema: "Entenda seus desafios".
var Step2Schema = Schema{
	Name: "quiz_step2",
	Fields: []Field{
		{
			Name:     "frustration",
			Question: "Principal frustração na busca atual",
			Kind:     SingleChoice,
			Options:  FrustrationOptions,
		},
		{
			Name:     "search_time",
			Question: "Há quanto tempo está procurando emprego?",
			Kind:     SingleChoice,
			Options:  SearchTimeOptions,
		},
		{
			Name:     "hours_per_week",
			Question: "Quantas horas/semana você gasta procurando vagas atualmente?",
			Kind:     SingleChoice,
			Options:  HoursPerWeekOptions,
		},
		{
			Name:     "work_model",
			Question: "Qual modelo de trabalho você procura?",
			Kind:     SingleChoice,
			Options:  WorkModelOptions,
		},
	},
}

// Step3Schema: expectations, features (max 2) and the free-text result.
var Step3Schema = Schema{
	Name: "quiz_step3",
	Fields: []Field{
		{
			Name:      "expectations",
			Question:  "O que você espera com o CopiVaga?",
			Kind:      MultiChoice,
			Options:   ExpectationOptions,
			MinSelect: 1,
		},
		{
			Name:      "features",
			Question:  "Quais funcionalidades mais te interessam?",
			Kind:      MultiChoice,
			Options:   FeatureOptions,
			MinSelect: 1,
			MaxSelect: FeatureSelectionLimit,
		},
		{
			Name:       "result",
			Question:   "Que resultado você espera alcançar?",
			Kind:       FreeText,
			MinLength:  10,
			LengthHint: "Por favor, descreva o resultado esperado (mínimo 10 caracteres)",
		},
	},
}
