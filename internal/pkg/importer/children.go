package importer

import (
	"context"
	"strconv"

	"github.com/alfurqan/aidctl/internal/pkg/apiclient"
	"github.com/alfurqan/aidctl/internal/pkg/records"
	"github.com/alfurqan/aidctl/internal/pkg/sheet"
	"github.com/alfurqan/aidctl/internal/pkg/store"
)

// ChildBackend is the subset of the API client the child import needs
type ChildBackend interface {
	ListChildren(ctx context.Context) ([]records.Child, error)
	CreateChild(ctx context.Context, in apiclient.ChildInput) (*records.Child, error)
}

type childKey struct {
	name, idNumber, benefitType string
}

// placeholder replaces empty text cells
const placeholder = "-"

// ChildTarget imports child registry rows
type ChildTarget struct {
	backend ChildBackend
	store   *store.Store[records.Child]
	seen    map[childKey]struct{}
}

// NewChildTarget creates a child import target. st may be nil.
func NewChildTarget(backend ChildBackend, st *store.Store[records.Child]) *ChildTarget {
	return &ChildTarget{backend: backend, store: st}
}

func (t *ChildTarget) Entity() string { return records.TypeChild }

func (t *ChildTarget) Required() []string {
	return sheet.ChildColumns
}

func (t *ChildTarget) DateColumns() []string {
	return []string{sheet.ColBirthDate}
}

// Prepare loads existing children for duplicate detection
func (t *ChildTarget) Prepare(ctx context.Context) error {
	var existing []records.Child
	if t.store != nil && t.store.Len() > 0 {
		existing = t.store.All()
	} else {
		children, err := t.backend.ListChildren(ctx)
		if err != nil {
			return err
		}
		existing = children
	}
	t.seen = make(map[childKey]struct{}, len(existing))
	for _, c := range existing {
		t.seen[childKey{c.Name, c.IDNumber.String(), c.BenefitType}] = struct{}{}
	}
	return nil
}

func orPlaceholder(v string) string {
	if v == "" {
		return placeholder
	}
	return v
}

// Reconcile validates the row, skips duplicates and registers the child
func (t *ChildTarget) Reconcile(ctx context.Context, row sheet.Row) (Outcome, string) {
	in := apiclient.ChildInput{
		Name:        orPlaceholder(row[sheet.ColName]),
		IDNumber:    orPlaceholder(row[sheet.ColIDNumber]),
		BirthDate:   orPlaceholder(row[sheet.ColBirthDate]),
		Phone:       orPlaceholder(row[sheet.ColPhone]),
		Gender:      orPlaceholder(row[sheet.ColGender]),
		BenefitType: orPlaceholder(row[sheet.ColBenefitType]),
	}

	age, err := strconv.Atoi(row[sheet.ColAge])
	if err != nil || age < 0 {
		return OutcomeInvalid, "age must be a whole number: " + orPlaceholder(row[sheet.ColAge])
	}
	in.Age = age

	if v := row[sheet.ColBenefitCount]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return OutcomeInvalid, "benefit count must be a whole number: " + v
		}
		in.BenefitCount = n
	}

	key := childKey{in.Name, in.IDNumber, in.BenefitType}
	if _, dup := t.seen[key]; dup {
		return OutcomeDuplicate, "child already registered: " + in.Name
	}

	if _, err := t.backend.CreateChild(ctx, in); err != nil {
		return OutcomeFailed, err.Error()
	}
	t.seen[key] = struct{}{}
	return OutcomeCreated, ""
}

// Refresh reloads the child store from the backend
func (t *ChildTarget) Refresh(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	children, err := t.backend.ListChildren(ctx)
	if err != nil {
		return err
	}
	t.store.Replace(children)
	return nil
}
