package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/lead-import-api/internal/models"
)

// MaxUserNameLength bounds the username accepted at registration
const MaxUserNameLength = 64

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateLeadRow checks that a parsed CSV row carries every lead column.
// Empty values are accepted; only absent columns are errors.
func ValidateLeadRow(row map[string]string) []ValidationError {
	var errors []ValidationError
	for _, column := range models.LeadColumns {
		if _, ok := row[column]; !ok {
			errors = append(errors, ValidationError{Field: column, Message: "missing column " + column})
		}
	}
	return errors
}

// ValidateRegistration validates the fields of a registration request
func ValidateRegistration(req *models.RegisterRequest) []ValidationError {
	var errors []ValidationError

	// Validate user name
	name := req.UserName
	if strings.TrimSpace(name) == "" {
		errors = append(errors, ValidationError{Field: "user_name", Message: "user_name is required"})
	} else if utf8.RuneCountInString(name) > MaxUserNameLength {
		errors = append(errors, ValidationError{Field: "user_name", Message: "user_name is too long", Value: name})
	} else if strings.ContainsAny(name, "/?#") {
		// Names are used as a URL path segment
		errors = append(errors, ValidationError{Field: "user_name", Message: "user_name must not contain '/', '?' or '#'", Value: name})
	}

	// Validate password
	if req.Password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	}

	return errors
}

// ValidateLogin checks that both login fields are present
func ValidateLogin(req *models.LoginRequest) []ValidationError {
	var errors []ValidationError
	if req.UserName == "" {
		errors = append(errors, ValidationError{Field: "user_name", Message: "user_name is required"})
	}
	if req.Password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	}
	return errors
}

// Messages joins the messages of errs for a single client-facing error
func Messages(errs []ValidationError) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}
