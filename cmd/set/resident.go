package set

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfurqan/aidctl/internal/pkg/apiclient"
	"github.com/alfurqan/aidctl/internal/pkg/cmdutil"
	"github.com/alfurqan/aidctl/internal/pkg/logger"
	"github.com/alfurqan/aidctl/internal/pkg/records"
	"github.com/alfurqan/aidctl/internal/pkg/validation"
)

// ErrDuplicateResident is returned when the pre-flight check finds the household
var ErrDuplicateResident = errors.New("resident already registered with this identity or phone number")

var (
	residentID int
	resident   apiclient.ResidentInput
	offline    bool
)

var residentCmd = &cobra.Command{
	Use:   "resident",
	Short: "Register or update a household",
	Long: `Register a household, or update one with --id.

New households are validated locally (phone 059/056 plus seven digits,
identity numbers of at least nine digits, family size of at least one)
and checked against existing registrations before they are sent. With
--offline the household is validated and queued locally instead; send
the queue later with 'aidctl sync residents'.`,
	Args: cobra.NoArgs,
	Run:  cmdutil.WithRuntime(runSetResident),
}

func init() {
	f := residentCmd.Flags()
	f.IntVar(&residentID, "id", 0, "update the resident with this ID")
	f.StringVar(&resident.HusbandName, "husband-name", "", "husband name")
	f.StringVar(&resident.HusbandIDNumber, "husband-id", "", "husband identity number")
	f.StringVar(&resident.WifeName, "wife-name", "", "wife name")
	f.StringVar(&resident.WifeIDNumber, "wife-id", "", "wife identity number")
	f.StringVar(&resident.PhoneNumber, "phone", "", "mobile number")
	f.IntVar(&resident.NumFamilyMembers, "family-size", 0, "number of family members")
	f.StringVar(&resident.Injuries, "injuries", "", "injuries in the household")
	f.StringVar(&resident.Diseases, "diseases", "", "chronic diseases in the household")
	f.StringVar(&resident.DamageLevel, "damage", "", "housing damage level")
	f.StringVar(&resident.Neighborhood, "neighborhood", "", "neighborhood")
	f.StringVar(&resident.Notes, "notes", "", "free-form notes")
	f.StringVar(&resident.ResidenceStatus, "status", "", "residence status")
	f.BoolVar(&offline, "offline", false, "queue locally instead of sending")
}

func runSetResident(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
	if residentID > 0 {
		return updateResident(cmd, rt)
	}
	return createResident(cmd, rt, resident)
}

func validateNew(in apiclient.ResidentInput) error {
	if strings.TrimSpace(in.HusbandName) == "" {
		return &validation.Error{Field: "husband_name", Message: "is required"}
	}
	return validation.ValidateResident(validation.Resident{
		HusbandIDNumber:  in.HusbandIDNumber,
		WifeIDNumber:     in.WifeIDNumber,
		PhoneNumber:      in.PhoneNumber,
		NumFamilyMembers: in.NumFamilyMembers,
	})
}

func createResident(cmd *cobra.Command, rt *cmdutil.Runtime, in apiclient.ResidentInput) error {
	if err := validateNew(in); err != nil {
		return err
	}
	ctx := cmd.Context()

	if offline {
		id, err := rt.Store.Enqueue(ctx, rt.Origin, records.TypeResident, in)
		if err != nil {
			return err
		}
		logger.Info("Queued resident for sync", "queue_id", id, "name", in.HusbandName)
		return rt.Printer.Print(map[string]any{"queued": true, "queue_id": id})
	}

	if err := rt.RequireLogin(ctx); err != nil {
		return err
	}
	exists, err := rt.Client.CheckResident(ctx, in.HusbandIDNumber, in.WifeIDNumber, in.PhoneNumber)
	if err != nil {
		return fmt.Errorf("duplicate check failed: %w", err)
	}
	if exists {
		return &cmdutil.UsageError{Err: ErrDuplicateResident}
	}

	msg, err := rt.Client.CreateResident(ctx, in)
	if err != nil {
		return err
	}
	logger.Info("Resident registered", "name", in.HusbandName)
	return rt.Printer.Print(msg)
}

func updateResident(cmd *cobra.Command, rt *cmdutil.Runtime) error {
	if offline {
		return cmdutil.Usagef("--offline only applies to new residents")
	}
	c := newChanged(cmd)
	c.add("husband-name", "husband_name", resident.HusbandName)
	c.add("husband-id", "husband_id_number", resident.HusbandIDNumber)
	c.add("wife-name", "wife_name", resident.WifeName)
	c.add("wife-id", "wife_id_number", resident.WifeIDNumber)
	c.add("phone", "phone_number", resident.PhoneNumber)
	c.add("family-size", "num_family_members", resident.NumFamilyMembers)
	c.add("injuries", "injuries", resident.Injuries)
	c.add("diseases", "diseases", resident.Diseases)
	c.add("damage", "damage_level", resident.DamageLevel)
	c.add("neighborhood", "neighborhood", resident.Neighborhood)
	c.add("notes", "notes", resident.Notes)
	c.add("status", "residence_status", resident.ResidenceStatus)
	if len(c.fields) == 0 {
		return cmdutil.Usagef("nothing to update")
	}
	if err := validateChanged(c.fields); err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := rt.RequireLogin(ctx); err != nil {
		return err
	}
	msg, err := rt.Client.UpdateResident(ctx, residentID, c.fields)
	if err != nil {
		return err
	}
	logger.Info("Resident updated", "id", residentID, "fields", len(c.fields))
	return rt.Printer.Print(msg)
}

// validateChanged applies the creation rules to the fields being updated
func validateChanged(fields map[string]any) error {
	var errs validation.Errors
	for _, key := range []string{"husband_id_number", "wife_id_number"} {
		if v, ok := fields[key].(string); ok {
			if e := validation.IDNumber(key, v); e != nil {
				errs = append(errs, e)
			}
		}
	}
	if v, ok := fields["phone_number"].(string); ok {
		if e := validation.Phone("phone_number", v); e != nil {
			errs = append(errs, e)
		}
	}
	if v, ok := fields["num_family_members"].(int); ok {
		if e := validation.FamilySize("num_family_members", v); e != nil {
			errs = append(errs, e)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
