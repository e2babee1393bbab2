package domain

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationResult holds at most one error per field, in form order.
type ValidationResult struct {
	Errors []FieldError `json:"errors"`
}

func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Get returns the error reported for field, if any.
func (r ValidationResult) Get(field string) (FieldError, bool) {
	for _, e := range r.Errors {
		if e.Field == field {
			return e, true
		}
	}
	return FieldError{}, false
}

// Map returns field name to message.
func (r ValidationResult) Map() map[string]string {
	m := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		m[e.Field] = e.Message
	}
	return m
}
