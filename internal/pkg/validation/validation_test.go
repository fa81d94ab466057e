package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"0591234567", true},
		{"0561234567", true},
		{"0571234567", false},
		{"059123456", false},
		{"05912345678", false},
		{"+970591234567", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, Phone("phone", tt.phone) == nil)
		})
	}
}

func TestIDNumber(t *testing.T) {
	assert.Nil(t, IDNumber("id", "123456789"))
	assert.Nil(t, IDNumber("id", "1234567890"))
	assert.NotNil(t, IDNumber("id", "12345678"))
	assert.NotNil(t, IDNumber("id", "12345678a"))
}

func TestIsValidIDNumber(t *testing.T) {
	assert.True(t, IsValidIDNumber("123456789"))
	assert.True(t, IsValidIDNumber(" 123456789 "))
	assert.False(t, IsValidIDNumber("1234567890"))
	assert.False(t, IsValidIDNumber("12345678"))
	assert.False(t, IsValidIDNumber(""))
}

func TestValidateResident(t *testing.T) {
	ok := Resident{HusbandIDNumber: "123456789", WifeIDNumber: "987654321", PhoneNumber: "0591234567", NumFamilyMembers: 4}
	assert.NoError(t, ValidateResident(ok))

	bad := Resident{HusbandIDNumber: "12", WifeIDNumber: "987654321", PhoneNumber: "0123", NumFamilyMembers: 0}
	err := ValidateResident(bad)
	require.Error(t, err)

	var errs Errors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 3)
	assert.Equal(t, "num_family_members", errs[0].Field)
	assert.Equal(t, "husband_id_number", errs[1].Field)
	assert.Equal(t, "phone_number", errs[2].Field)
	assert.Contains(t, err.Error(), "at least 9 digits")
}
