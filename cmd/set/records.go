package set

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfurqan/aidctl/internal/pkg/apiclient"
	"github.com/alfurqan/aidctl/internal/pkg/cmdutil"
	"github.com/alfurqan/aidctl/internal/pkg/filters"
	"github.com/alfurqan/aidctl/internal/pkg/ledger"
	"github.com/alfurqan/aidctl/internal/pkg/logger"
)

var (
	aidID int
	aid   apiclient.AidInput

	childID int
	child   apiclient.ChildInput

	assistance apiclient.AssistanceInput

	income  apiclient.IncomeInput
	expense apiclient.ExpenseInput
)

var aidCmd = &cobra.Command{
	Use:   "aid",
	Short: "Record or update an aid disbursement",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		ctx := cmd.Context()
		if aidID > 0 {
			c := newChanged(cmd)
			c.add("resident-id", "resident_id", aid.ResidentID)
			c.add("type", "aid_type", aid.AidType)
			c.add("date", "date", aid.Date)
			if len(c.fields) == 0 {
				return cmdutil.Usagef("nothing to update")
			}
			if err := checkDate(c.fields["date"]); err != nil {
				return err
			}
			if err := rt.RequireLogin(ctx); err != nil {
				return err
			}
			msg, err := rt.Client.UpdateAid(ctx, aidID, c.fields)
			if err != nil {
				return err
			}
			return rt.Printer.Print(msg)
		}

		if aid.ResidentID <= 0 {
			return cmdutil.Usagef("--resident-id is required")
		}
		if strings.TrimSpace(aid.AidType) == "" {
			return cmdutil.Usagef("--type is required")
		}
		in := aid
		if in.Date == "" {
			in.Date = today()
		}
		if err := checkDate(in.Date); err != nil {
			return err
		}
		if err := rt.RequireLogin(ctx); err != nil {
			return err
		}
		created, err := rt.Client.CreateAid(ctx, in)
		if err != nil {
			return err
		}
		logger.Info("Aid recorded", "resident_id", in.ResidentID, "type", in.AidType)
		return rt.Printer.Print(created)
	}),
}

var childCmd = &cobra.Command{
	Use:   "child",
	Short: "Register or update a child",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		ctx := cmd.Context()
		if childID > 0 {
			c := newChanged(cmd)
			c.add("name", "name", child.Name)
			c.add("id-number", "id_number", child.IDNumber)
			c.add("birth-date", "birth_date", child.BirthDate)
			c.add("age", "age", child.Age)
			c.add("phone", "phone", child.Phone)
			c.add("gender", "gender", child.Gender)
			c.add("benefit-type", "benefit_type", child.BenefitType)
			c.add("benefit-count", "benefit_count", child.BenefitCount)
			if len(c.fields) == 0 {
				return cmdutil.Usagef("nothing to update")
			}
			if err := checkDate(c.fields["birth_date"]); err != nil {
				return err
			}
			if err := rt.RequireLogin(ctx); err != nil {
				return err
			}
			updated, err := rt.Client.UpdateChild(ctx, childID, c.fields)
			if err != nil {
				return err
			}
			return rt.Printer.Print(updated)
		}

		if strings.TrimSpace(child.Name) == "" {
			return cmdutil.Usagef("--name is required")
		}
		if child.Age < 0 || child.BenefitCount < 0 {
			return cmdutil.Usagef("--age and --benefit-count must not be negative")
		}
		if err := checkDate(child.BirthDate); err != nil {
			return err
		}
		if err := rt.RequireLogin(ctx); err != nil {
			return err
		}
		created, err := rt.Client.CreateChild(ctx, child)
		if err != nil {
			return err
		}
		logger.Info("Child registered", "name", child.Name)
		return rt.Printer.Print(created)
	}),
}

var assistanceCmd = &cobra.Command{
	Use:   "assistance",
	Short: "Record assistance given to a child",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		if assistance.ChildID <= 0 {
			return cmdutil.Usagef("--child is required")
		}
		if strings.TrimSpace(assistance.HelpType) == "" {
			return cmdutil.Usagef("--type is required")
		}
		ctx := cmd.Context()
		if err := rt.RequireLogin(ctx); err != nil {
			return err
		}
		msg, err := rt.Client.AddAssistance(ctx, assistance)
		if err != nil {
			return err
		}
		return rt.Printer.Print(msg)
	}),
}

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Record received funds",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		in := income
		if strings.TrimSpace(in.Name) == "" {
			return cmdutil.Usagef("--name is required")
		}
		if in.Amount <= 0 {
			return cmdutil.Usagef("--amount must be positive")
		}
		if in.Type == "" {
			in.Type = ledger.DefaultIncomeType
		}
		if in.Date == "" {
			in.Date = today()
		}
		if err := checkDate(in.Date); err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := rt.RequireLogin(ctx); err != nil {
			return err
		}
		created, err := rt.Client.CreateIncome(ctx, in)
		if err != nil {
			return err
		}
		return rt.Printer.Print(created)
	}),
}

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Record spent funds",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		in := expense
		if strings.TrimSpace(in.Description) == "" {
			return cmdutil.Usagef("--description is required")
		}
		if in.Amount <= 0 {
			return cmdutil.Usagef("--amount must be positive")
		}
		if in.Date == "" {
			in.Date = today()
		}
		if err := checkDate(in.Date); err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := rt.RequireLogin(ctx); err != nil {
			return err
		}
		created, err := rt.Client.CreateExpense(ctx, in)
		if err != nil {
			return err
		}
		return rt.Printer.Print(created)
	}),
}

func init() {
	f := aidCmd.Flags()
	f.IntVar(&aidID, "id", 0, "update the aid with this ID")
	f.IntVar(&aid.ResidentID, "resident-id", 0, "recipient resident ID")
	f.StringVar(&aid.AidType, "type", "", "aid type")
	f.StringVar(&aid.Date, "date", "", "disbursement date yyyy-mm-dd (default today)")

	f = childCmd.Flags()
	f.IntVar(&childID, "id", 0, "update the child with this ID")
	f.StringVar(&child.Name, "name", "", "child name")
	f.StringVar(&child.IDNumber, "id-number", "", "identity number")
	f.StringVar(&child.BirthDate, "birth-date", "", "birth date yyyy-mm-dd")
	f.IntVar(&child.Age, "age", 0, "age in years")
	f.StringVar(&child.Phone, "phone", "", "guardian phone")
	f.StringVar(&child.Gender, "gender", "", "gender")
	f.StringVar(&child.BenefitType, "benefit-type", "", "benefit type")
	f.IntVar(&child.BenefitCount, "benefit-count", 0, "times the benefit was received")

	f = assistanceCmd.Flags()
	f.IntVar(&assistance.ChildID, "child", 0, "child ID")
	f.StringVar(&assistance.HelpType, "type", "", "help type")
	f.StringVar(&assistance.OtherHelp, "other", "", "description when the type is other")

	f = incomeCmd.Flags()
	f.StringVar(&income.Name, "name", "", "donor name")
	f.StringVar(&income.Source, "source", "", "funding source")
	f.StringVar(&income.Type, "type", "", "income type (default "+ledger.DefaultIncomeType+")")
	f.Float64Var(&income.Amount, "amount", 0, "amount")
	f.StringVar(&income.Date, "date", "", "date yyyy-mm-dd (default today)")

	f = expenseCmd.Flags()
	f.StringVar(&expense.Description, "description", "", "what the funds were spent on")
	f.Float64Var(&expense.Amount, "amount", 0, "amount")
	f.StringVar(&expense.Date, "date", "", "date yyyy-mm-dd (default today)")
}

// checkDate rejects a non-empty value that is not a calendar date
func checkDate(v any) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if _, ok := filters.ParseDate(s); !ok {
		return cmdutil.Usagef("invalid date %q (want yyyy-mm-dd)", s)
	}
	return nil
}
