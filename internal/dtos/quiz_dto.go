package dtos

// QuizResponseRequest appends one question/answer pair tied to a signup.
type QuizResponseRequest struct {
	TrialSignupID string `json:"trial_signup_id" binding:"required"`
	Span          string `json:"span" binding:"required"`
	Answer        string `json:"answer" binding:"required"`
}

// QuizStartRequest resumes or opens a quiz flow. TrialSignupID is the
// "navigation state" fallback: when absent, the id must already be cached in
// the flow session.
type QuizStartRequest struct {
	TrialSignupID string `json:"trial_signup_id"`
}

// QuizStep1Request carries the answers for "Conte mais sobre você".
type QuizStep1Request struct {
	Situation  string `json:"situation"`
	Area       string `json:"area"`
	AreaOther  string `json:"area_other"`
	Experience string `json:"experience"`
}

// QuizStep2Request carries the answers for "Entenda seus desafios".
type QuizStep2Request struct {
	Frustration  string `json:"frustration"`
	SearchTime   string `json:"search_time"`
	HoursPerWeek string `json:"hours_per_week"`
	WorkModel    string `json:"work_model"`
}

// QuizStep3Request carries the expectation answers, with the two
// multi-select questions as lists.
type QuizStep3Request struct {
	Expectations []string `json:"expectations"`
	Features     []string `json:"features"`
	Result       string   `json:"result"`
}

// QuizBonusRequest submits the bonus-ebook contact number in display format.
type QuizBonusRequest struct {
	Whatsapp string `json:"whatsapp"`
}

// QuizSuggestionRequest submits free-text feedback.
type QuizSuggestionRequest struct {
	Suggestion string `json:"suggestion"`
}
