package sync

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/aidctl/internal/pkg/apiclient"
	"github.com/alfurqan/aidctl/internal/pkg/records"
	"github.com/alfurqan/aidctl/internal/pkg/session"
)

const origin = "https://aid.example.org"

type fakeCreator struct {
	sent   []string
	reject map[string]bool
}

func (f *fakeCreator) CreateResident(_ context.Context, in apiclient.ResidentInput) (*apiclient.Message, error) {
	if f.reject[in.HusbandName] {
		return nil, errors.New("backend rejected resident")
	}
	f.sent = append(f.sent, in.HusbandName)
	return &apiclient.Message{Message: "ok"}, nil
}

func openQueue(t *testing.T) *session.SQLiteStore {
	t.Helper()
	st, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestResidents_SendsInOrderAndKeepsFailures(t *testing.T) {
	ctx := context.Background()
	st := openQueue(t)
	for _, name := range []string{"أحمد", "خالد", "سعيد"} {
		_, err := st.Enqueue(ctx, origin, records.TypeResident, apiclient.ResidentInput{HusbandName: name})
		require.NoError(t, err)
	}

	api := &fakeCreator{reject: map[string]bool{"خالد": true}}
	result, err := Residents(ctx, st, api, origin)
	require.NoError(t, err)

	assert.Equal(t, []string{"أحمد", "سعيد"}, api.sent)
	assert.Len(t, result.Succeeded, 2)
	require.Len(t, result.Failed, 1)

	left, err := st.Pending(ctx, origin, records.TypeResident)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Contains(t, string(left[0].Payload), "خالد")
	assert.Equal(t, "backend rejected resident", left[0].LastError)
}

func TestResidents_EmptyQueue(t *testing.T) {
	st := openQueue(t)
	result, err := Residents(context.Background(), st, &fakeCreator{}, origin)
	require.NoError(t, err)
	assert.Empty(t, result.Succeeded)
	assert.False(t, result.HasErrors())
}

func TestResidents_OtherOriginUntouched(t *testing.T) {
	ctx := context.Background()
	st := openQueue(t)
	_, err := st.Enqueue(ctx, "https://other.example.org", records.TypeResident, apiclient.ResidentInput{HusbandName: "x"})
	require.NoError(t, err)

	api := &fakeCreator{}
	_, err = Residents(ctx, st, api, origin)
	require.NoError(t, err)
	assert.Empty(t, api.sent)
}
