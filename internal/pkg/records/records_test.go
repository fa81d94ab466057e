package records

import (
	"encoding/json"
	"testing"

	"github.com/alfurqan/aidctl/internal/pkg/filters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString_Decode(t *testing.T) {
	var c Child
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Lina","id_number":401234567}`), &c))
	assert.Equal(t, "401234567", c.IDNumber.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"id_number":"0401"}`), &c))
	assert.Equal(t, "0401", c.IDNumber.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"id_number":null}`), &c))
	assert.Equal(t, "", c.IDNumber.String())
}

func TestResident_MissingFamilySize(t *testing.T) {
	var r Resident
	require.NoError(t, json.Unmarshal([]byte(`{"id":4,"husband_name":"Omar","num_family_members":null}`), &r))

	assert.False(t, r.HasField("num_family_members"))
	assert.True(t, r.HasField("has_received_aid"))
	assert.Equal(t, "false", r.GetStringField("has_received_aid"))
}

func TestAid_EmbeddedResidentFields(t *testing.T) {
	var a Aid
	data := `{"id":9,"resident_id":4,"aid_type":"طرد غذائي","date":"2024-02-10","resident":{"husband_name":"Omar","husband_id_number":"123456789"}}`
	require.NoError(t, json.Unmarshal([]byte(data), &a))

	assert.Equal(t, "Omar", a.GetStringField("name"))
	assert.Equal(t, "123456789", a.GetStringField("id_number"))
	assert.Equal(t, "Omar", a.DisplayName())
}

func TestSchemas_FieldsResolve(t *testing.T) {
	cases := []struct {
		schema filters.Schema
		rec    filters.Filterable
	}{
		{ResidentSchema, Resident{}},
		{AidSchema, Aid{}},
		{ChildSchema, Child{}},
		{IncomeSchema, Income{}},
		{ExpenseSchema, Expense{}},
	}
	for _, tc := range cases {
		t.Run(tc.schema.RecordType, func(t *testing.T) {
			assert.Equal(t, tc.schema.RecordType, tc.rec.RecordType())
			s, ok := SchemaFor(tc.schema.RecordType)
			require.True(t, ok)
			assert.Equal(t, tc.schema.SortField, s.SortField)
			for _, field := range tc.schema.SearchFields {
				_, declared := tc.schema.FieldType(field)
				assert.True(t, declared, "search field %s must be declared", field)
			}
		})
	}
}

func TestResidentFiltering(t *testing.T) {
	six, five := 6, 5
	residents := []Resident{
		{ID: 1, HusbandName: "ahmad", HusbandIDNumber: "111", NumFamilyMembers: &six, Neighborhood: " الشمال "},
		{ID: 2, HusbandName: "zahra", HusbandIDNumber: "222", NumFamilyMembers: &five, Neighborhood: "الجنوب"},
		{ID: 3, HusbandName: "ahlam", HusbandIDNumber: "333", Neighborhood: "الشمال"},
	}

	reg := filters.NewRegistry(ResidentSchema)
	require.NoError(t, filters.ApplyExpressions(reg, []string{"num_family_members:>5", "neighborhood:in:الشمال"}))

	got := filters.Apply(residents, reg, "ah")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestCountNew(t *testing.T) {
	assert.Equal(t, 2, CountNew([]Notification{{IsNew: true}, {IsNew: false}, {IsNew: true}}))
	assert.Equal(t, 0, CountNew(nil))
}
