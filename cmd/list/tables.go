package list

import (
	"encoding/json"
	"strconv"

	"github.com/alfurqan/aidctl/internal/pkg/records"
	"github.com/alfurqan/aidctl/internal/pkg/session"
	"github.com/alfurqan/aidctl/internal/pkg/validation"
)

const missing = "-"

func orMissing(s string) string {
	if s == "" {
		return missing
	}
	return s
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

type residentTable []records.Resident

func (t residentTable) Headers() []string {
	return []string{"ID", "Husband", "Husband ID", "Wife", "Family", "Damage", "Neighborhood", "Status", "Aided", "Valid ID"}
}

func (t residentTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, r := range t {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			orMissing(r.HusbandName),
			orMissing(r.HusbandIDNumber),
			orMissing(r.WifeName),
			orMissing(r.GetStringField("num_family_members")),
			orMissing(r.DamageLevel),
			orMissing(r.Neighborhood),
			orMissing(r.ResidenceStatus),
			mark(r.HasReceivedAid),
			mark(validation.IsValidIDNumber(r.HusbandIDNumber)),
		})
	}
	return rows
}

type aidTable []records.Aid

func (t aidTable) Headers() []string {
	return []string{"ID", "Name", "Identity", "Type", "Date"}
}

func (t aidTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, a := range t {
		rows = append(rows, []string{
			strconv.Itoa(a.ID),
			orMissing(a.Resident.HusbandName),
			orMissing(a.Resident.HusbandIDNumber),
			a.AidType,
			a.Date,
		})
	}
	return rows
}

type childTable []records.Child

func (t childTable) Headers() []string {
	return []string{"ID", "Name", "Identity", "Birth date", "Age", "Phone", "Gender", "Benefit", "Count"}
}

func (t childTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, c := range t {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			c.Name,
			orMissing(c.IDNumber.String()),
			orMissing(c.BirthDate),
			strconv.Itoa(c.Age),
			orMissing(c.Phone),
			orMissing(c.Gender),
			orMissing(c.BenefitType),
			strconv.Itoa(c.BenefitCount),
		})
	}
	return rows
}

type incomeTable []records.Income

func (t incomeTable) Headers() []string {
	return []string{"ID", "Name", "Source", "Type", "Amount", "Date"}
}

func (t incomeTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, i := range t {
		rows = append(rows, []string{
			strconv.Itoa(i.ID), orMissing(i.Name), orMissing(i.Source), orMissing(i.Type),
			i.GetStringField("amount"), orMissing(i.Date),
		})
	}
	return rows
}

type expenseTable []records.Expense

func (t expenseTable) Headers() []string {
	return []string{"ID", "Description", "Amount", "Date"}
}

func (t expenseTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, e := range t {
		rows = append(rows, []string{
			strconv.Itoa(e.ID), orMissing(e.Description), e.GetStringField("amount"), orMissing(e.Date),
		})
	}
	return rows
}

type notificationTable []records.Notification

func (t notificationTable) Headers() []string {
	return []string{"", "User", "Action", "Target", "Time"}
}

func (t notificationTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, n := range t {
		flag := ""
		if n.IsNew {
			flag = "•"
		}
		rows = append(rows, []string{flag, n.Username, n.Action, n.TargetName, n.Timestamp})
	}
	return rows
}

type userTable []records.User

func (t userTable) Headers() []string {
	return []string{"ID", "Username", "Role"}
}

func (t userTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, u := range t {
		rows = append(rows, []string{strconv.Itoa(u.ID), u.Username, u.Role})
	}
	return rows
}

type queueTable []session.QueuedItem

func (t queueTable) Headers() []string {
	return []string{"ID", "Kind", "Name", "Queued", "Last error"}
}

func (t queueTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, q := range t {
		var payload struct {
			HusbandName string `json:"husband_name"`
		}
		_ = json.Unmarshal(q.Payload, &payload)
		rows = append(rows, []string{
			strconv.FormatInt(q.ID, 10), q.Kind, orMissing(payload.HusbandName),
			q.CreatedAt.Format("2006-01-02 15:04"), orMissing(q.LastError),
		})
	}
	return rows
}
