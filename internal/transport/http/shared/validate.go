package shared

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/asaskevich/govalidator"

	dErrors "storefront/pkg/domain-errors"
)

var phonePattern = regexp.MustCompile(`^\d{11}$`)

// Fields collects per-field validation failures. The first failure for a
// field wins.
type Fields map[string]string

func (f Fields) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

// Check records msg against field when ok is false.
func (f Fields) Check(ok bool, field, msg string) {
	if !ok {
		f.add(field, msg)
	}
}

func (f Fields) Email(field, value string) {
	f.Check(govalidator.IsEmail(value), field, "Invalid email address")
}

// Length checks a rune length within [lo, hi]; hi <= 0 means unbounded.
func (f Fields) Length(field, value, label string, lo, hi int) {
	n := len([]rune(value))
	if n < lo {
		f.add(field, label+" must be at least "+strconv.Itoa(lo)+" characters")
		return
	}
	if hi > 0 && n > hi {
		f.add(field, label+" must be at most "+strconv.Itoa(hi)+" characters")
	}
}

func (f Fields) Phone(field, value string) {
	f.Check(phonePattern.MatchString(value), field, "Phone number must be exactly 11 digits")
}

// StrongPassword requires an upper-case letter, a lower-case letter and a digit.
func (f Fields) StrongPassword(field, value string) {
	var upper, lower, digit bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	f.Check(upper && lower && digit, field,
		"Password must contain at least one uppercase letter, one lowercase letter, and one number")
}

func (f Fields) Required(field, value, label string) {
	f.Check(strings.TrimSpace(value) != "", field, label+" is required")
}

// Err returns a validation error when any field failed.
func (f Fields) Err() error {
	if len(f) == 0 {
		return nil
	}
	return dErrors.Validation(f)
}

// Trim trims surrounding whitespace in place.
func Trim(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}

// IsObjectID reports whether s looks like an upstream document id.
func IsObjectID(s string) bool {
	return len(s) == 24 && govalidator.IsHexadecimal(s)
}

// Shipping checks an address block. prefix namespaces the field keys, as in
// "address." for a nested object.
func (f Fields) Shipping(prefix, details, phone, city string) {
	f.Length(prefix+"details", details, "Details", 5, 100)
	f.Phone(prefix+"phone", phone)
	f.Length(prefix+"city", city, "City", 2, 50)
}
