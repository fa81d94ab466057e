package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/aidctl/internal/pkg/apiclient"
	"github.com/alfurqan/aidctl/internal/pkg/config"
	"github.com/alfurqan/aidctl/internal/pkg/filters"
	"github.com/alfurqan/aidctl/internal/pkg/importer"
	"github.com/alfurqan/aidctl/internal/pkg/session"
	"github.com/alfurqan/aidctl/internal/pkg/validation"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", Usagef("bad flag %s", "x"), ExitValidationError},
		{"field", fmt.Errorf("set resident: %w", validation.Phone("phone_number", "123")), ExitValidationError},
		{"fields", validation.ValidateResident(validation.Resident{}), ExitValidationError},
		{"filter", &filters.ParseError{Expr: "x", Reason: "y"}, ExitValidationError},
		{"columns", &importer.MissingColumnsError{Missing: []string{"الاسم"}}, ExitValidationError},
		{"empty file", importer.ErrEmptyFile, ExitValidationError},
		{"not logged in", fmt.Errorf("token: %w", session.ErrNotLoggedIn), ExitAuthError},
		{"expired", session.ErrExpired, ExitAuthError},
		{"401", &apiclient.APIError{Status: http.StatusUnauthorized}, ExitAuthError},
		{"404", &apiclient.APIError{Status: http.StatusNotFound}, ExitNotFoundError},
		{"400", &apiclient.APIError{Status: http.StatusBadRequest}, ExitValidationError},
		{"502", &apiclient.APIError{Status: http.StatusBadGateway}, ExitConnectionError},
		{"deadline", fmt.Errorf("GET /api/aids: %w", context.DeadlineExceeded), ExitConnectionError},
		{"other", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFor(tt.err))
		})
	}
}

func TestExitCodeFor_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := apiclient.NewClient(apiclient.ClientConfig{BaseURL: url, Timeout: time.Second})
	require.NoError(t, err)
	_, err = client.Login(context.Background(), "u", "p")
	require.Error(t, err)
	assert.Equal(t, ExitConnectionError, ExitCodeFor(err))
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	WriteError(&buf, errors.New("resident not found"), ExitNotFoundError)
	assert.JSONEq(t, `{"error":"resident not found","code":"NOT_FOUND"}`, buf.String())
}

func TestFail_Exits(t *testing.T) {
	var code int
	orig := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = orig })

	Fail(session.ErrNotLoggedIn)
	assert.Equal(t, ExitAuthError, code)
}

func TestGetConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("x.name", "from-config")
	viper.Set("x.count", 7)
	viper.Set("x.wait", "3s")

	assert.Equal(t, "flag", GetStringConfig("x.name", "flag"))
	assert.Equal(t, "from-config", GetStringConfig("x.name", ""))
	assert.Equal(t, 7, GetIntConfig("x.count", 1))
	assert.Equal(t, 1, GetIntConfig("x.missing", 1))
	assert.True(t, GetBoolConfig("x.missing", true))
	assert.Equal(t, 3*time.Second, GetDurationConfig("x.wait", 0))
	assert.Equal(t, time.Second, GetDurationConfig("x.wait", time.Second))
}

func TestSetDefaults_ConfigWins(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults(config.Env{APIURL: "https://env.example.org", Timeout: 5 * time.Second})
	assert.Equal(t, "https://env.example.org", viper.GetString(KeyAPIURL))

	viper.Set(KeyAPIURL, "https://config.example.org")
	assert.Equal(t, "https://config.example.org", viper.GetString(KeyAPIURL))
	assert.Equal(t, 5*time.Second, viper.GetDuration(KeyTimeout))
}

func TestSetup(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	viper.Set(KeyAPIURL, "https://aid.example.org/")
	viper.Set(KeyStateDir, dir)
	viper.Set(KeyOutput, "json")
	viper.Set(KeyMetricsFile, filepath.Join(dir, "aidctl.prom"))

	ctx := context.Background()
	rt, err := Setup(ctx)
	require.NoError(t, err)

	assert.Equal(t, "https://aid.example.org", rt.Origin)
	assert.False(t, rt.Session.LoggedIn)
	assert.ErrorIs(t, rt.RequireLogin(ctx), session.ErrNotLoggedIn)

	rt.Session.LoggedIn = true
	rt.Session.Username = "admin"
	rt.Session.AccessToken = "tok"
	require.NoError(t, rt.SaveSession(ctx))
	rt.Close()
	assert.FileExists(t, filepath.Join(dir, "aidctl.prom"))

	rt, err = Setup(ctx)
	require.NoError(t, err)
	defer rt.Close()
	assert.Equal(t, "admin", rt.Session.Username)
	assert.NoError(t, rt.RequireLogin(ctx))
}

func TestSetup_RejectsBadSettings(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(KeyStateDir, t.TempDir())
	viper.Set(KeyAPIURL, "https://aid.example.org")
	viper.Set(KeyOutput, "xml")
	_, err := Setup(context.Background())
	assert.Equal(t, ExitValidationError, ExitCodeFor(err))

	viper.Set(KeyOutput, "json")
	viper.Set(KeyTokenBackend, "vault")
	_, err = Setup(context.Background())
	assert.Equal(t, ExitValidationError, ExitCodeFor(err))
}
