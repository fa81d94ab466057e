// Package records defines the typed domain entities returned by the aid
// management backend and the field schemas used to filter them.
package records

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Record type identifiers
const (
	TypeResident     = "resident"
	TypeAid          = "aid"
	TypeChild        = "child"
	TypeIncome       = "income"
	TypeExpense      = "expense"
	TypeNotification = "notification"
)

// FlexString decodes a JSON string or number into a string.
// The backend stores some identity numbers as integers and others as text.
type FlexString string

// UnmarshalJSON accepts "123", 123 and null.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = FlexString(num.String())
	return nil
}

// String returns the plain string value
func (s FlexString) String() string {
	return string(s)
}

// Resident is a registered household
type Resident struct {
	ID               int    `json:"id"`
	HusbandName      string `json:"husband_name"`
	HusbandIDNumber  string `json:"husband_id_number"`
	WifeName         string `json:"wife_name"`
	WifeIDNumber     string `json:"wife_id_number"`
	PhoneNumber      string `json:"phone_number"`
	NumFamilyMembers *int   `json:"num_family_members"`
	Injuries         string `json:"injuries"`
	Diseases         string `json:"diseases"`
	DamageLevel      string `json:"damage_level"`
	Neighborhood     string `json:"neighborhood"`
	Notes            string `json:"notes"`
	HasReceivedAid   bool   `json:"has_received_aid"`
	ResidenceStatus  string `json:"residence_status"`
	TenantID         int    `json:"tenant_id,omitempty"`
}

// RecordID returns the backend identifier
func (r Resident) RecordID() int { return r.ID }

// DisplayName returns the primary name used for ordering
func (r Resident) DisplayName() string { return r.HusbandName }

// GetStringField returns a field value by name, empty when absent
func (r Resident) GetStringField(name string) string {
	switch name {
	case "id":
		return strconv.Itoa(r.ID)
	case "husband_name", "name":
		return r.HusbandName
	case "husband_id_number", "id_number":
		return r.HusbandIDNumber
	case "wife_name":
		return r.WifeName
	case "wife_id_number":
		return r.WifeIDNumber
	case "phone_number":
		return r.PhoneNumber
	case "num_family_members":
		if r.NumFamilyMembers == nil {
			return ""
		}
		return strconv.Itoa(*r.NumFamilyMembers)
	case "injuries":
		return r.Injuries
	case "diseases":
		return r.Diseases
	case "damage_level":
		return r.DamageLevel
	case "neighborhood":
		return r.Neighborhood
	case "notes":
		return r.Notes
	case "has_received_aid":
		return strconv.FormatBool(r.HasReceivedAid)
	case "residence_status":
		return r.ResidenceStatus
	default:
		return ""
	}
}

// HasField reports whether the named field carries a value
func (r Resident) HasField(name string) bool {
	switch name {
	case "has_received_aid", "id":
		return true
	case "num_family_members":
		return r.NumFamilyMembers != nil
	default:
		return r.GetStringField(name) != ""
	}
}

// RecordType returns "resident"
func (r Resident) RecordType() string { return TypeResident }

// AidResident is the resident summary embedded in an aid record
type AidResident struct {
	HusbandName     string `json:"husband_name"`
	HusbandIDNumber string `json:"husband_id_number"`
}

// Aid is a single aid disbursement
type Aid struct {
	ID         int         `json:"id"`
	ResidentID int         `json:"resident_id"`
	AidType    string      `json:"aid_type"`
	Date       string      `json:"date"`
	TenantID   int         `json:"tenant_id,omitempty"`
	Resident   AidResident `json:"resident"`
}

// RecordID returns the backend identifier
func (a Aid) RecordID() int { return a.ID }

// DisplayName returns the recipient name used for ordering
func (a Aid) DisplayName() string { return a.Resident.HusbandName }

// GetStringField returns a field value by name, empty when absent
func (a Aid) GetStringField(name string) string {
	switch name {
	case "id":
		return strconv.Itoa(a.ID)
	case "resident_id":
		return strconv.Itoa(a.ResidentID)
	case "name":
		return a.Resident.HusbandName
	case "id_number":
		return a.Resident.HusbandIDNumber
	case "aid_type":
		return a.AidType
	case "date":
		return a.Date
	default:
		return ""
	}
}

// HasField reports whether the named field carries a value
func (a Aid) HasField(name string) bool {
	return a.GetStringField(name) != ""
}

// RecordType returns "aid"
func (a Aid) RecordType() string { return TypeAid }

// Child is a child benefit registration
type Child struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	IDNumber     FlexString `json:"id_number"`
	BirthDate    string     `json:"birth_date"`
	Age          int        `json:"age"`
	Phone        string     `json:"phone"`
	Gender       string     `json:"gender"`
	BenefitType  string     `json:"benefit_type"`
	BenefitCount int        `json:"benefit_count"`
	TenantID     int        `json:"tenant_id,omitempty"`
}

// RecordID returns the backend identifier
func (c Child) RecordID() int { return c.ID }

// DisplayName returns the child's name used for ordering
func (c Child) DisplayName() string { return c.Name }

// GetStringField returns a field value by name, empty when absent
func (c Child) GetStringField(name string) string {
	switch name {
	case "id":
		return strconv.Itoa(c.ID)
	case "name":
		return c.Name
	case "id_number":
		return c.IDNumber.String()
	case "birth_date":
		return c.BirthDate
	case "age":
		return strconv.Itoa(c.Age)
	case "phone":
		return c.Phone
	case "gender":
		return c.Gender
	case "benefit_type":
		return c.BenefitType
	case "benefit_count":
		return strconv.Itoa(c.BenefitCount)
	default:
		return ""
	}
}

// HasField reports whether the named field carries a value
func (c Child) HasField(name string) bool {
	switch name {
	case "age", "benefit_count", "id":
		return true
	default:
		return c.GetStringField(name) != ""
	}
}

// RecordType returns "child"
func (c Child) RecordType() string { return TypeChild }

// Income is a ledger entry for received funds
type Income struct {
	ID       int     `json:"id"`
	Source   string  `json:"source"`
	Name     string  `json:"name"`
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
	TenantID int     `json:"tenant_id,omitempty"`
}

// RecordID returns the backend identifier
func (i Income) RecordID() int { return i.ID }

// DisplayName returns the donor name used for ordering
func (i Income) DisplayName() string { return i.Name }

// GetStringField returns a field value by name, empty when absent
func (i Income) GetStringField(name string) string {
	switch name {
	case "id":
		return strconv.Itoa(i.ID)
	case "source":
		return i.Source
	case "name":
		return i.Name
	case "date":
		return i.Date
	case "type":
		return i.Type
	case "amount":
		return strconv.FormatFloat(i.Amount, 'f', -1, 64)
	default:
		return ""
	}
}

// HasField reports whether the named field carries a value
func (i Income) HasField(name string) bool {
	if name == "amount" || name == "id" {
		return true
	}
	return i.GetStringField(name) != ""
}

// RecordType returns "income"
func (i Income) RecordType() string { return TypeIncome }

// Expense is a ledger entry for spent funds
type Expense struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	TenantID    int     `json:"tenant_id,omitempty"`
}

// RecordID returns the backend identifier
func (e Expense) RecordID() int { return e.ID }

// DisplayName returns the description used for ordering
func (e Expense) DisplayName() string { return e.Description }

// GetStringField returns a field value by name, empty when absent
func (e Expense) GetStringField(name string) string {
	switch name {
	case "id":
		return strconv.Itoa(e.ID)
	case "description":
		return e.Description
	case "amount":
		return strconv.FormatFloat(e.Amount, 'f', -1, 64)
	case "date":
		return e.Date
	default:
		return ""
	}
}

// HasField reports whether the named field carries a value
func (e Expense) HasField(name string) bool {
	if name == "amount" || name == "id" {
		return true
	}
	return e.GetStringField(name) != ""
}

// RecordType returns "expense"
func (e Expense) RecordType() string { return TypeExpense }

// Notification is an audit entry produced by the backend for every mutation
type Notification struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	Username   string `json:"username"`
	Action     string `json:"action"`
	TargetName string `json:"target_name"`
	Timestamp  string `json:"timestamp"`
	IsNew      bool   `json:"is_new"`
	TenantID   int    `json:"tenant_id,omitempty"`
}

// User is a backend account
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	Permissions string `json:"permissions,omitempty"`
}

// ResidentStats mirrors the backend resident statistics endpoint
type ResidentStats struct {
	TotalResidents           int `json:"total_residents"`
	TotalAids                int `json:"total_aids"`
	TotalBeneficiaries       int `json:"total_beneficiaries"`
	TotalNonBeneficiaries    int `json:"total_non_beneficiaries"`
	TotalFullDamage          int `json:"total_full_damage"`
	TotalSeverePartialDamage int `json:"total_severe_partial_damage"`
	TotalPartialDamage       int `json:"total_partial_damage"`
	TotalNoDamage            int `json:"total_no_damage"`
}

// LastAssistance is the most recent assistance given to a child
type LastAssistance struct {
	ChildID        int    `json:"child_id"`
	ChildName      string `json:"child_name"`
	LastAssistance struct {
		HelpType  string `json:"help_type"`
		OtherHelp string `json:"other_help"`
		DateAdded string `json:"date_added"`
	} `json:"last_assistance"`
}

// CountNew returns the number of unread notifications
func CountNew(notifications []Notification) int {
	n := 0
	for _, item := range notifications {
		if item.IsNew {
			n++
		}
	}
	return n
}
