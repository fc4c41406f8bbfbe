package learnhub

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() map[string]interface{} {
	return map[string]interface{}{"username": "alice", "email": "a@x.com", "password": "secret1"}
}

func with(kv ...interface{}) map[string]interface{} {
	in := validInput()
	for i := 0; i < len(kv); i += 2 {
		in[kv[i].(string)] = kv[i+1]
	}
	return in
}

func without(fields ...string) map[string]interface{} {
	in := validInput()
	for _, f := range fields {
		delete(in, f)
	}
	return in
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name         string
		input        map[string]interface{}
		wantKind     Kind
		wantLocation string
		wantMessage  string
	}{
		{"empty body", map[string]interface{}{}, MissingField, "username", "Missing field"},
		{"nil body", nil, MissingField, "username", "Missing field"},
		{"missing username", without("username"), MissingField, "username", "Missing field"},
		{"missing email", without("email"), MissingField, "email", "Missing field"},
		{"missing password", without("password"), MissingField, "password", "Missing field"},
		{"missing email and password", without("email", "password"), MissingField, "email", "Missing field"},
		{"missing beats wrong type", map[string]interface{}{"username": 12, "email": "a@x.com"}, MissingField, "password", "Missing field"},
		{"numeric username", with("username", 12.0), WrongType, "username", "Incorrect field type: expected string"},
		{"null password", with("password", nil), WrongType, "password", "Incorrect field type: expected string"},
		{"bool first name", with("firstName", true), WrongType, "firstName", "Incorrect field type: expected string"},
		{"object last name", with("lastName", map[string]interface{}{}), WrongType, "lastName", "Incorrect field type: expected string"},
		{"array email", with("email", []interface{}{"a@x.com"}), WrongType, "email", "Incorrect field type: expected string"},
		{"type order follows field list", with("email", 1.0, "firstName", 1.0), WrongType, "firstName", "Incorrect field type: expected string"},
		{"leading space username", with("username", " alice"), NotTrimmed, "username", "Cannot start or end with whitespace"},
		{"trailing tab password", with("password", "secret12\t"), NotTrimmed, "password", "Cannot start or end with whitespace"},
		{"whitespace username", with("username", "   "), NotTrimmed, "username", "Cannot start or end with whitespace"},
		{"empty username", with("username", ""), TooShort, "username", "Must be at least 1 characters long"},
		{"short password", with("password", "12345"), TooShort, "password", "Must be at least 6 characters long"},
		{"long password", with("password", strings.Repeat("p", 73)), TooLong, "password", "Must be at most 72 characters long"},
		{"three accented characters", with("password", "ééé"), TooShort, "password", "Must be at least 6 characters long"},
		{"five cyrillic characters", with("password", "парол"), TooShort, "password", "Must be at least 6 characters long"},
		{"37 two byte characters", with("password", strings.Repeat("é", 37)), TooLong, "password", "Must be at most 72 characters long"},
		{"byte order mark prefix", with("username", "\uFEFFalice"), NotTrimmed, "username", "Cannot start or end with whitespace"},
		{"no-break space suffix", with("password", "secret1\u00A0"), NotTrimmed, "password", "Cannot start or end with whitespace"},
		{"ideographic space prefix", with("username", "\u3000alice"), NotTrimmed, "username", "Cannot start or end with whitespace"},
		{"line separator suffix", with("username", "alice\u2028"), NotTrimmed, "username", "Cannot start or end with whitespace"},
		{"too short wins over too long", with("username", "", "password", strings.Repeat("p", 80)), TooShort, "username", "Must be at least 1 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.input)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantKind, verr.Kind)
			assert.Equal(t, tt.wantLocation, verr.Location)
			assert.Equal(t, tt.wantMessage, verr.Message)
			assert.Equal(t, 422, verr.Code)
			assert.Equal(t, "ValidationError", verr.Reason)
		})
	}
}

func TestValidate_PasswordBounds(t *testing.T) {
	for n := 1; n <= 80; n++ {
		_, err := Validate(with("password", strings.Repeat("x", n)))

		switch {
		case n < 6:
			assert.Equal(t, TooShort, kindOf(err), "length %d", n)
		case n > 72:
			assert.Equal(t, TooLong, kindOf(err), "length %d", n)
		default:
			assert.NoError(t, err, "length %d", n)
		}
	}
}

func TestValidate_MultibytePasswordBounds(t *testing.T) {
	tests := []struct {
		password string
		wantKind Kind
	}{
		{strings.Repeat("é", 5), TooShort},
		{strings.Repeat("é", 6), 0},
		{"пароль", 0},
		{strings.Repeat("é", 36), 0},
		{strings.Repeat("é", 37), TooLong},
		{strings.Repeat("€", 24), 0},
		{strings.Repeat("€", 25), TooLong},
	}

	for _, tt := range tests {
		_, err := Validate(with("password", tt.password))
		assert.Equal(t, tt.wantKind, kindOf(err), "%q", tt.password)
	}
}

func TestValidate_NextLineIsNotTrimmed(t *testing.T) {
	f, err := Validate(with("username", "alice\u0085", "firstName", "\u0085Alice\uFEFF"))

	require.NoError(t, err)
	assert.Equal(t, "alice\u0085", f.Username)
	assert.Equal(t, "\u0085Alice", f.FirstName)
}

func TestValidate_SurroundingWhitespaceAlwaysRejected(t *testing.T) {
	for _, field := range []string{"username", "password"} {
		for _, pad := range []string{" ", "\t", "\n", "\r\n", "\u00A0", "\uFEFF", "\u2003"} {
			in := validInput()
			v := in[field].(string)

			in[field] = pad + v
			assert.Equal(t, NotTrimmed, kindOf(mustFail(t, in)), "%s %q prefix", field, pad)

			in[field] = v + pad
			assert.Equal(t, NotTrimmed, kindOf(mustFail(t, in)), "%s %q suffix", field, pad)
		}
	}
}

func TestValidate_Normalizes(t *testing.T) {
	f, err := Validate(validInput())
	require.NoError(t, err)
	assert.Equal(t, Fields{Username: "alice", Email: "a@x.com", Password: "secret1"}, f)

	f, err = Validate(with("firstName", "  Alice ", "lastName", "\tLiddell\n", "email", " a@x.com "))
	require.NoError(t, err)
	assert.Equal(t, "Alice", f.FirstName)
	assert.Equal(t, "Liddell", f.LastName)
	assert.Equal(t, " a@x.com ", f.Email)
}

func TestValidationError_Error(t *testing.T) {
	err := conflictError()

	assert.Equal(t, "username: Username already taken", err.Error())
	assert.Equal(t, "Conflict", err.Kind.String())
}

func mustFail(t *testing.T, in map[string]interface{}) error {
	t.Helper()
	_, err := Validate(in)
	require.Error(t, err)
	return err
}

func kindOf(err error) Kind {
	if verr, ok := err.(*ValidationError); ok {
		return verr.Kind
	}
	return 0
}
