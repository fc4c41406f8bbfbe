package learnhub

import (
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a ValidationError.
type Kind int

const (
	MissingField Kind = iota + 1
	WrongType
	NotTrimmed
	TooShort
	TooLong
	Conflict
)

func (k Kind) String() string {
	switch k {
	case MissingField:
		return "MissingField"
	case WrongType:
		return "WrongType"
	case NotTrimmed:
		return "NotTrimmed"
	case TooShort:
		return "TooShort"
	case TooLong:
		return "TooLong"
	case Conflict:
		return "Conflict"
	}
	return "Unknown"
}

const validationReason = "ValidationError"

// ValidationError is a client facing error. It is rendered as is.
type ValidationError struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location"`
	Kind     Kind   `json:"-"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

func newValidationError(kind Kind, location, message string) *ValidationError {
	return &ValidationError{
		Code:     http.StatusUnprocessableEntity,
		Reason:   validationReason,
		Message:  message,
		Location: location,
		Kind:     kind,
	}
}

func conflictError() *ValidationError {
	return newValidationError(Conflict, "username", "Username already taken")
}

// Fields is a validated and normalized registration request.
type Fields struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type sizeBounds struct {
	field    string
	min, max int
}

var (
	requiredFields = []string{"username", "email", "password"}
	stringFields   = []string{"username", "password", "firstName", "lastName", "email"}
	trimmedFields  = []string{"username", "password"}

	// min counts characters. max counts bytes: bcrypt ignores everything
	// past 72 bytes, so longer passwords are refused.
	sizedFields = []sizeBounds{
		{field: "username", min: 1},
		{field: "password", min: 6, max: 72},
	}
)

// Validate runs the registration rules over a decoded request body in order
// and reports the first rule that fails.
func Validate(input map[string]interface{}) (Fields, error) {
	for _, f := range requiredFields {
		if _, ok := input[f]; !ok {
			return Fields{}, newValidationError(MissingField, f, "Missing field")
		}
	}

	for _, f := range stringFields {
		v, ok := input[f]
		if !ok {
			continue
		}
		if _, isString := v.(string); !isString {
			return Fields{}, newValidationError(WrongType, f, "Incorrect field type: expected string")
		}
	}

	for _, f := range trimmedFields {
		v := input[f].(string)
		if trim(v) != v {
			return Fields{}, newValidationError(NotTrimmed, f, "Cannot start or end with whitespace")
		}
	}

	for _, s := range sizedFields {
		if utf8.RuneCountInString(trim(input[s.field].(string))) < s.min {
			return Fields{}, newValidationError(TooShort, s.field,
				fmt.Sprintf("Must be at least %d characters long", s.min))
		}
	}
	for _, s := range sizedFields {
		if s.max > 0 && len(trim(input[s.field].(string))) > s.max {
			return Fields{}, newValidationError(TooLong, s.field,
				fmt.Sprintf("Must be at most %d characters long", s.max))
		}
	}

	return Fields{
		Username:  input["username"].(string),
		Email:     input["email"].(string),
		Password:  input["password"].(string),
		FirstName: optionalString(input, "firstName"),
		LastName:  optionalString(input, "lastName"),
	}, nil
}

func optionalString(input map[string]interface{}, field string) string {
	v, ok := input[field].(string)
	if !ok {
		return ""
	}
	return trim(v)
}

// trim strips Unicode white space and the byte order mark, but not NEL.
func trim(s string) string {
	return strings.TrimFunc(s, isTrimmable)
}

func isTrimmable(r rune) bool {
	return r == '\uFEFF' || (unicode.IsSpace(r) && r != '\u0085')
}
