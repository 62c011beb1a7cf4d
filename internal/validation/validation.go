// Package validation checks booking and contact payloads and normalises them
// into typed values. A failed check is an ordinary result carrying per-field
// messages, not an exceptional condition.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	// MinPhoneDigits is the number of digits a phone number must contain once
	// punctuation and spaces are stripped.
	MinPhoneDigits = 10

	MaxBookingMessageLength = 1500
	MinContactMessageLength = 10
	MaxContactMessageLength = 5000
)

// Error is returned when a payload fails validation. FieldErrors is keyed by
// the JSON field name.
type Error struct {
	FieldErrors map[string][]string
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Has reports whether field has at least one message.
func (e *Error) Has(field string) bool {
	return len(e.FieldErrors[field]) > 0
}

func (e *Error) add(field, msg string) {
	if e.FieldErrors == nil {
		e.FieldErrors = make(map[string][]string)
	}
	e.FieldErrors[field] = append(e.FieldErrors[field], msg)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return PhoneDigits(fl.Field().String()) >= MinPhoneDigits
	})
	_ = v.RegisterValidation("eventdate", func(fl validator.FieldLevel) bool {
		_, err := ParseEventDate(fl.Field().String())
		return err == nil
	})
	return v
}

// PhoneDigits counts the decimal digits in s.
func PhoneDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// ParseEventDate accepts a calendar date (2006-01-02) or a full RFC 3339
// timestamp and returns it in UTC.
func ParseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid event date %q", s)
}

// check runs the struct validator and maps each failure to a human message
// via messages, keyed "field.tag" with a "field" catch-all.
func check(in any, messages map[string]string) *Error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out := &Error{}
		out.add("_form", err.Error())
		return out
	}
	out := &Error{}
	for _, fe := range verrs {
		field := fe.Field()
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg, ok = messages[field]
		}
		if !ok {
			msg = "Invalid value."
		}
		out.add(field, msg)
	}
	return out
}

// trimFields trims surrounding whitespace from every string in ss and drops
// the ones left empty.
func trimFields(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.TrimFunc(s, unicode.IsSpace); s != "" {
			out = append(out, s)
		}
	}
	return out
}
