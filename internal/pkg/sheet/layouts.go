package sheet

import (
	"strconv"

	"github.com/alfurqan/aidctl/internal/pkg/records"
)

// Column headers shared by import and export
const (
	ColName         = "الاسم"
	ColIDNumber     = "الهوية"
	ColAidType      = "نوع_المساعدة"
	ColAidDate      = "تاريخ_المساعدة"
	ColDate         = "التاريخ"
	ColBirthDate    = "تاريخ_الميلاد"
	ColAge          = "العمر"
	ColPhone        = "الجوال"
	ColGender       = "الجنس"
	ColBenefitType  = "نوع_الاستفادة"
	ColBenefitCount = "عدد_مرات_الاستفادة"
)

// AidColumns is the aid history export header
var AidColumns = []string{ColName, ColIDNumber, ColAidType, ColDate}

// ChildColumns is the child registry header, used for import and export
var ChildColumns = []string{
	ColName, ColIDNumber, ColBirthDate, ColAge, ColPhone, ColGender, ColBenefitType, ColBenefitCount,
}

// ResidentColumns is the resident export header (backend field names)
var ResidentColumns = []string{
	"id", "husband_name", "husband_id_number", "wife_name", "wife_id_number",
	"phone_number", "num_family_members", "injuries", "diseases", "damage_level",
	"neighborhood", "notes", "has_received_aid", "residence_status",
}

// LedgerColumns is the ledger export header
var LedgerColumns = []string{"الحركة", "البيان", "المصدر", "النوع", "المبلغ", ColDate}

// AidRows lays out aids for export
func AidRows(aids []records.Aid) [][]string {
	rows := make([][]string, 0, len(aids))
	for _, a := range aids {
		rows = append(rows, []string{a.Resident.HusbandName, a.Resident.HusbandIDNumber, a.AidType, a.Date})
	}
	return rows
}

// ChildRows lays out children for export
func ChildRows(children []records.Child) [][]string {
	rows := make([][]string, 0, len(children))
	for _, c := range children {
		rows = append(rows, []string{
			c.Name, c.IDNumber.String(), c.BirthDate, strconv.Itoa(c.Age),
			c.Phone, c.Gender, c.BenefitType, strconv.Itoa(c.BenefitCount),
		})
	}
	return rows
}

// ResidentRows lays out residents for export
func ResidentRows(residents []records.Resident) [][]string {
	rows := make([][]string, 0, len(residents))
	for _, r := range residents {
		row := make([]string, 0, len(ResidentColumns))
		for _, col := range ResidentColumns {
			row = append(row, r.GetStringField(col))
		}
		rows = append(rows, row)
	}
	return rows
}

// LedgerRows lays out income followed by expenses for export
func LedgerRows(income []records.Income, expenses []records.Expense) [][]string {
	rows := make([][]string, 0, len(income)+len(expenses))
	for _, i := range income {
		rows = append(rows, []string{"وارد", i.Name, i.Source, i.Type, i.GetStringField("amount"), i.Date})
	}
	for _, e := range expenses {
		rows = append(rows, []string{"صادر", e.Description, "", "", e.GetStringField("amount"), e.Date})
	}
	return rows
}
