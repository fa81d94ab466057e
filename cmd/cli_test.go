package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/aidctl/internal/pkg/records"
	"github.com/alfurqan/aidctl/internal/pkg/session"
	"github.com/alfurqan/aidctl/internal/pkg/sheet"
)

func TestCommandStructure(t *testing.T) {
	assert.Equal(t, "aidctl", rootCmd.Use)

	want := []string{"login", "logout", "list", "import", "set", "rm", "show", "sync", "watch"}
	var got []string
	for _, c := range rootCmd.Commands() {
		got = append(got, c.Name())
	}
	for _, name := range want {
		assert.Contains(t, got, name)
	}
}

func TestFlagConfiguration(t *testing.T) {
	for _, name := range []string{"config", "api", "output", "log-level", "log-format", "state-dir"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestInitConfig_CustomFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	configFile := filepath.Join(t.TempDir(), "aidctl.yaml")
	content := "api:\n  url: https://config.example.org\nlog:\n  level: warn\n"
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o600))

	orig := cfgFile
	cfgFile = configFile
	t.Cleanup(func() { cfgFile = orig })

	initConfig()
	assert.Equal(t, configFile, viper.ConfigFileUsed())
	assert.Equal(t, "https://config.example.org", viper.GetString("api.url"))
}

func TestInitConfig_EnvDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AIDCTL_API_URL", "http://localhost:5000")
	t.Setenv("AIDCTL_TIMEOUT", "7s")

	orig := cfgFile
	cfgFile = ""
	t.Cleanup(func() { cfgFile = orig })

	initConfig()
	assert.Equal(t, "http://localhost:5000", viper.GetString("api.url"))
	assert.Equal(t, 7*time.Second, viper.GetDuration("api.timeout"))
}

func resetPersistentFlags() {
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func signedToken(t *testing.T) string {
	t.Helper()
	claims := session.Claims{
		UserID:   1,
		Username: "admin",
		Role:     "admin",
		TenantID: 3,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestLoginThenListResidents(t *testing.T) {
	token := signedToken(t)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "token": token, "role": "admin"})
	})
	mux.HandleFunc("GET /api/residents", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[
			{"id": 1, "husband_name": "Zahra", "husband_id_number": "111111111"},
			{"id": 2, "husband_name": "Ahmad", "husband_id_number": "222222222"},
			{"id": 3, "husband_name": "Ahlam", "husband_id_number": "3333"}
		]`))
	})
	mux.HandleFunc("GET /api/imports", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 1, "source": "جمعية", "name": "دعم", "date": "2024-03-01", "type": "تبرعات", "amount": 250}]`))
	})
	mux.HandleFunc("GET /api/exports", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 1, "description": "طرود", "amount": 100, "date": "2024-03-02"}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())
	stateDir := t.TempDir()
	common := []string{"--api", srv.URL, "--state-dir", stateDir, "-o", "json"}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader("secret\n"))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		resetPersistentFlags()
	})

	rootCmd.SetArgs(append([]string{"login", "-u", "admin", "--password-stdin"}, common...))
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), `"username":"admin"`)

	out.Reset()
	rootCmd.SetArgs(append([]string{"list", "residents", "-s", "ah"}, common...))
	require.NoError(t, rootCmd.Execute())

	var listed []records.Resident
	require.NoError(t, json.Unmarshal(out.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "Ahlam", listed[0].HusbandName)
	assert.Equal(t, "Ahmad", listed[1].HusbandName)

	out.Reset()
	rootCmd.SetArgs(append([]string{"list", "residents", "--invalid-ids", "-s", ""}, common...))
	require.NoError(t, rootCmd.Execute())
	listed = nil
	require.NoError(t, json.Unmarshal(out.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, 3, listed[0].ID)

	out.Reset()
	exportPath := filepath.Join(t.TempDir(), "ledger.csv")
	rootCmd.SetArgs(append([]string{"show", "ledger", "--export", exportPath}, common...))
	require.NoError(t, rootCmd.Execute())

	var totals struct {
		Income   float64 `json:"income"`
		Expenses float64 `json:"expenses"`
		Balance  float64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &totals))
	assert.Equal(t, 150.0, totals.Balance)

	table, err := sheet.Read(exportPath)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "دعم", table.Rows[0]["البيان"])
	assert.Equal(t, "طرود", table.Rows[1]["البيان"])
}
