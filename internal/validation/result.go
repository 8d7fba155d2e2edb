// Package validation holds the declarative constraint sets for the signup
// form, the quiz steps, and the gateway's authoritative server-side checks.
// Each form has a named schema; validation runs against the whole schema and
// reports the first failing rule's message plus per-field errors for inline
// display.
package validation

// Result collects per-field validation errors in schema order.
type Result struct {
	fields map[string]string
	order  []string
}

func newResult() *Result {
	return &Result{fields: make(map[string]string)}
}

func (r *Result) add(field, message string) {
	if _, seen := r.fields[field]; seen {
		return
	}
	r.fields[field] = message
	r.order = append(r.order, field)
}

// Ok reports whether every rule passed.
func (r *Result) Ok() bool {
	return len(r.order) == 0
}

// First returns the first failing rule's message, or "" when valid.
func (r *Result) First() string {
	if len(r.order) == 0 {
		return ""
	}
	return r.fields[r.order[0]]
}

// Field returns the message for one field, or "" when the field passed.
func (r *Result) Field(name string) string {
	return r.fields[name]
}

// Fields returns the field → message map for inline display.
func (r *Result) Fields() map[string]string {
	return r.fields
}

// Error is a failed validation surfaced to the user: the first failing
// rule's message plus the per-field map.
type Error struct {
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string { return e.Message }

// Err converts a failed Result into an Error. Only call on invalid results.
func (r *Result) Err() *Error {
	return &Error{Message: r.First(), Fields: r.Fields()}
}
