package importer

import (
	"context"
	"errors"

	"github.com/alfurqan/aidctl/internal/pkg/apiclient"
	"github.com/alfurqan/aidctl/internal/pkg/records"
	"github.com/alfurqan/aidctl/internal/pkg/sheet"
	"github.com/alfurqan/aidctl/internal/pkg/store"
)

// AidBackend is the subset of the API client the aid import needs
type AidBackend interface {
	ListAids(ctx context.Context) ([]records.Aid, error)
	SearchResident(ctx context.Context, name, idNumber string) (*apiclient.ResidentMatch, error)
	CreateAid(ctx context.Context, in apiclient.AidInput) (*records.Aid, error)
}

type aidKey struct {
	name, idNumber, aidType string
}

// AidTarget imports aid history rows
type AidTarget struct {
	backend AidBackend
	store   *store.Store[records.Aid]
	seen    map[aidKey]struct{}
}

// NewAidTarget creates an aid import target. st may be nil.
func NewAidTarget(backend AidBackend, st *store.Store[records.Aid]) *AidTarget {
	return &AidTarget{backend: backend, store: st}
}

func (t *AidTarget) Entity() string { return records.TypeAid }

func (t *AidTarget) Required() []string {
	return []string{sheet.ColName, sheet.ColIDNumber, sheet.ColAidType, sheet.ColAidDate}
}

func (t *AidTarget) DateColumns() []string {
	return []string{sheet.ColAidDate}
}

// Prepare loads existing aids for duplicate detection
func (t *AidTarget) Prepare(ctx context.Context) error {
	var existing []records.Aid
	if t.store != nil && t.store.Len() > 0 {
		existing = t.store.All()
	} else {
		aids, err := t.backend.ListAids(ctx)
		if err != nil {
			return err
		}
		existing = aids
	}
	t.seen = make(map[aidKey]struct{}, len(existing))
	for _, a := range existing {
		t.seen[aidKey{a.Resident.HusbandName, a.Resident.HusbandIDNumber, a.AidType}] = struct{}{}
	}
	return nil
}

// Reconcile looks the resident up, skips duplicates and records the aid
func (t *AidTarget) Reconcile(ctx context.Context, row sheet.Row) (Outcome, string) {
	name, idNumber := row[sheet.ColName], row[sheet.ColIDNumber]
	key := aidKey{name, idNumber, row[sheet.ColAidType]}

	if name == "" || idNumber == "" || key.aidType == "" {
		return OutcomeInvalid, "name, identity number and aid type are required"
	}

	match, err := t.backend.SearchResident(ctx, name, idNumber)
	if errors.Is(err, apiclient.ErrNotFound) {
		return OutcomeNotFound, "resident not found: " + name
	}
	if err != nil {
		return OutcomeFailed, err.Error()
	}

	if _, dup := t.seen[key]; dup {
		return OutcomeDuplicate, "aid already recorded for " + name
	}

	_, err = t.backend.CreateAid(ctx, apiclient.AidInput{
		ResidentID: match.ID,
		AidType:    key.aidType,
		Date:       row[sheet.ColAidDate],
	})
	if err != nil {
		return OutcomeFailed, err.Error()
	}
	t.seen[key] = struct{}{}
	return OutcomeCreated, ""
}

// Refresh reloads the aid store from the backend
func (t *AidTarget) Refresh(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	aids, err := t.backend.ListAids(ctx)
	if err != nil {
		return err
	}
	t.store.Replace(aids)
	return nil
}
