package list

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/aidctl/internal/pkg/cmdutil"
	"github.com/alfurqan/aidctl/internal/pkg/filters"
	"github.com/alfurqan/aidctl/internal/pkg/records"
)

func newViewCmd(t *testing.T, args ...string) (*cobra.Command, *viewFlags) {
	t.Helper()
	var f viewFlags
	cmd := &cobra.Command{Use: "test"}
	addViewFlags(cmd, &f)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, &f
}

func TestViewFlags_Registry(t *testing.T) {
	cmd, f := newViewCmd(t,
		"-f", "num_family_members:>5",
		"-f", "neighborhood:in:الشرقي,الغربي",
		"--search", "أح",
		"--search-mode", "contains",
	)
	reg, search, err := f.registry(cmd, records.ResidentSchema)
	require.NoError(t, err)
	assert.Equal(t, "أح", search)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, filters.MatchContains, reg.SearchMode())
}

func TestViewFlags_RegistryErrorsAreValidation(t *testing.T) {
	tests := [][]string{
		{"-f", "shoe_size:>5"},
		{"-f", "num_family_members:>many"},
		{"--search-mode", "fuzzy"},
		{"--export", "out.pdf"},
		{"--preset", filepath.Join(t.TempDir(), "missing.yaml")},
	}
	for _, args := range tests {
		cmd, f := newViewCmd(t, args...)
		_, _, err := f.registry(cmd, records.ResidentSchema)
		require.Error(t, err, args)
		assert.Equal(t, cmdutil.ExitValidationError, cmdutil.ExitCodeFor(err), args)
	}
}

func TestViewFlags_PresetSuppliesSearch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	reg := filters.NewRegistry(records.AidSchema)
	require.NoError(t, filters.ApplyExpressions(reg, []string{"aid_type:=طرد غذائي"}))
	require.NoError(t, filters.SavePreset(path, reg, "سعيد"))

	cmd, f := newViewCmd(t, "--preset", path, "-f", "date:after:2024-01-01")
	got, search, err := f.registry(cmd, records.AidSchema)
	require.NoError(t, err)
	assert.Equal(t, "سعيد", search)
	assert.Equal(t, 2, got.Len())
}

func TestViewFlags_SearchModeOverridesPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	saved := filters.NewRegistry(records.ResidentSchema)
	require.NoError(t, filters.ApplyExpressions(saved, []string{"wife_name:~فاط"}))
	require.NoError(t, filters.SavePreset(path, saved, ""))

	cmd, f := newViewCmd(t, "--preset", path, "--search-mode", "contains")
	reg, _, err := f.registry(cmd, records.ResidentSchema)
	require.NoError(t, err)

	cond, ok := reg.Get("wife_name")
	require.True(t, ok)
	assert.Equal(t, filters.MatchContains, cond.(*filters.TextCondition).Mode)
	assert.Equal(t, filters.MatchContains, reg.SearchMode())
}

func TestInvalidIDs(t *testing.T) {
	residents := []records.Resident{
		{ID: 1, HusbandIDNumber: "123456789"},
		{ID: 2, HusbandIDNumber: "12345"},
		{ID: 3, HusbandIDNumber: ""},
		{ID: 4, HusbandIDNumber: "12345678a"},
	}
	got := InvalidIDs(residents)
	ids := make([]int, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{2, 3, 4}, ids)
}

func TestResidentTable(t *testing.T) {
	size := 6
	table := residentTable{
		{ID: 7, HusbandName: "أحمد", HusbandIDNumber: "123456789", NumFamilyMembers: &size, HasReceivedAid: true},
		{ID: 8, HusbandIDNumber: "99"},
	}
	rows := table.Rows()
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Len(t, row, len(table.Headers()))
	}
	assert.Equal(t, []string{"7", "أحمد", "123456789", missing, "6", missing, missing, missing, "✓", "✓"}, rows[0])
	assert.Equal(t, missing, rows[1][1])
	assert.Equal(t, "✗", rows[1][9])
}
