package soap

import (
	"fmt"
	"strings"
)

// ValidationStatus summarizes a ValidationResult.
type ValidationStatus string

const (
	ValidationSuccess ValidationStatus = "Success"
	ValidationWarning ValidationStatus = "Warning"
	ValidationError   ValidationStatus = "Error"
)

// ValidationResult collects the problems found while checking a response against the shape the
// protocol's schema requires.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// Validator is implemented by response types that can check constraints the XML decoder does not
// enforce, such as required attributes and enumerations.
type Validator interface {
	ValidateSchema(v *ValidationResult)
}

// Status returns Error if there were any errors, Warning if there were only warnings, or
// Success otherwise.
func (r ValidationResult) Status() ValidationStatus {
	switch {
	case len(r.Errors) > 0:
		return ValidationError
	case len(r.Warnings) > 0:
		return ValidationWarning
	default:
		return ValidationSuccess
	}
}

// OK returns true if there were no errors. Warnings do not count.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

func (r ValidationResult) String() string {
	if r.Status() == ValidationSuccess {
		return string(ValidationSuccess)
	}
	var lines []string
	for _, e := range r.Errors {
		lines = append(lines, "error: "+e)
	}
	for _, w := range r.Warnings {
		lines = append(lines, "warning: "+w)
	}
	return string(r.Status()) + "\n" + strings.Join(lines, "\n")
}

func (r *ValidationResult) Errorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) Warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Require records an error if a required attribute or element value is empty.
func (r *ValidationResult) Require(path, value string) {
	if value == "" {
		r.Errorf("%s is required", path)
	}
}

// RequireOneOf records an error if a value is not in an enumeration. An empty value is an
// error only if required is true.
func (r *ValidationResult) RequireOneOf(path, value string, required bool, allowed ...string) {
	if value == "" {
		if required {
			r.Errorf("%s is required", path)
		}
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	r.Errorf("%s has value %q, which is not one of [%s]", path, value, strings.Join(allowed, ", "))
}

// Validate runs a Validator if the value implements it.
func (r *ValidationResult) Validate(value interface{}) {
	if v, ok := value.(Validator); ok {
		v.ValidateSchema(r)
	}
}

// SchemaValidationError is returned by Client.Call when a response does not pass validation.
type SchemaValidationError struct {
	Result ValidationResult
}

func (e *SchemaValidationError) Error() string {
	return "response failed schema validation: " + strings.Join(e.Result.Errors, "; ")
}
