package records

import "github.com/alfurqan/aidctl/internal/pkg/filters"

// ResidentSchema declares the filterable resident fields
var ResidentSchema = filters.Schema{
	RecordType: TypeResident,
	Fields: map[string]filters.FieldType{
		"num_family_members": filters.FieldNumeric,
		"damage_level":       filters.FieldEnum,
		"residence_status":   filters.FieldEnum,
		"neighborhood":       filters.FieldMulti,
		"husband_name":       filters.FieldText,
		"husband_id_number":  filters.FieldText,
		"wife_name":          filters.FieldText,
		"wife_id_number":     filters.FieldText,
		"phone_number":       filters.FieldText,
		"has_received_aid":   filters.FieldBool,
	},
	SearchFields: []string{"husband_name", "husband_id_number"},
	SortField:    "husband_name",
}

// AidSchema declares the filterable aid fields
var AidSchema = filters.Schema{
	RecordType: TypeAid,
	Fields: map[string]filters.FieldType{
		"date":      filters.FieldDate,
		"aid_type":  filters.FieldEnum,
		"name":      filters.FieldText,
		"id_number": filters.FieldText,
	},
	SearchFields: []string{"name", "id_number"},
	SortField:    "name",
}

// ChildSchema declares the filterable child fields
var ChildSchema = filters.Schema{
	RecordType: TypeChild,
	Fields: map[string]filters.FieldType{
		"age":           filters.FieldNumeric,
		"benefit_count": filters.FieldNumeric,
		"birth_date":    filters.FieldDate,
		"benefit_type":  filters.FieldEnum,
		"gender":        filters.FieldEnum,
		"name":          filters.FieldText,
		"id_number":     filters.FieldText,
		"phone":         filters.FieldText,
	},
	SearchFields: []string{"name", "id_number"},
	SortField:    "name",
}

// IncomeSchema declares the filterable income fields
var IncomeSchema = filters.Schema{
	RecordType: TypeIncome,
	Fields: map[string]filters.FieldType{
		"amount": filters.FieldNumeric,
		"date":   filters.FieldDate,
		"type":   filters.FieldEnum,
		"source": filters.FieldEnum,
		"name":   filters.FieldText,
	},
	SearchFields: []string{"name"},
	SortField:    "name",
}

// ExpenseSchema declares the filterable expense fields
var ExpenseSchema = filters.Schema{
	RecordType: TypeExpense,
	Fields: map[string]filters.FieldType{
		"amount":      filters.FieldNumeric,
		"date":        filters.FieldDate,
		"description": filters.FieldText,
	},
	SearchFields: []string{"description"},
	SortField:    "description",
}

// SchemaFor returns the schema for a record type
func SchemaFor(recordType string) (filters.Schema, bool) {
	switch recordType {
	case TypeResident:
		return ResidentSchema, true
	case TypeAid:
		return AidSchema, true
	case TypeChild:
		return ChildSchema, true
	case TypeIncome:
		return IncomeSchema, true
	case TypeExpense:
		return ExpenseSchema, true
	}
	return filters.Schema{}, false
}
