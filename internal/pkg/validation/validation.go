// Package validation checks user-entered resident data before it is sent
// to the backend.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	phonePattern    = regexp.MustCompile(`^05[69]\d{7}$`)
	digitsPattern   = regexp.MustCompile(`^\d+$`)
	validIDPattern  = regexp.MustCompile(`^\d{9}$`)
	minIDNumberSize = 9
)

// Error is a field-level validation failure
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects every failure of one record
type Errors []*Error

func (es Errors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Phone checks a local mobile number (059/056 followed by seven digits)
func Phone(field, v string) *Error {
	if !phonePattern.MatchString(v) {
		return &Error{Field: field, Message: "must be a mobile number like 059xxxxxxx or 056xxxxxxx"}
	}
	return nil
}

// IDNumber checks an identity number has at least nine digits
func IDNumber(field, v string) *Error {
	if len(v) < minIDNumberSize || !digitsPattern.MatchString(v) {
		return &Error{Field: field, Message: "identity number must have at least 9 digits"}
	}
	return nil
}

// FamilySize checks a household has at least one member
func FamilySize(field string, n int) *Error {
	if n < 1 {
		return &Error{Field: field, Message: "family size must be 1 or more"}
	}
	return nil
}

// IsValidIDNumber reports whether v is exactly nine digits
func IsValidIDNumber(v string) bool {
	return validIDPattern.MatchString(strings.TrimSpace(v))
}

// Resident holds the resident fields that are validated locally
type Resident struct {
	HusbandIDNumber  string
	WifeIDNumber     string
	PhoneNumber      string
	NumFamilyMembers int
}

// ValidateResident returns every failure for r, or nil
func ValidateResident(r Resident) error {
	var errs Errors
	if e := FamilySize("num_family_members", r.NumFamilyMembers); e != nil {
		errs = append(errs, e)
	}
	if e := IDNumber("husband_id_number", r.HusbandIDNumber); e != nil {
		errs = append(errs, e)
	}
	if e := IDNumber("wife_id_number", r.WifeIDNumber); e != nil {
		errs = append(errs, e)
	}
	if e := Phone("phone_number", r.PhoneNumber); e != nil {
		errs = append(errs, e)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
