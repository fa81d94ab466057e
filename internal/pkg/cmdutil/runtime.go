package cmdutil

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alfurqan/aidctl/internal/pkg/apiclient"
	"github.com/alfurqan/aidctl/internal/pkg/config"
	"github.com/alfurqan/aidctl/internal/pkg/logger"
	"github.com/alfurqan/aidctl/internal/pkg/metrics"
	"github.com/alfurqan/aidctl/internal/pkg/output"
	"github.com/alfurqan/aidctl/internal/pkg/session"
)

// Runtime bundles what a command needs to talk to the backend
type Runtime struct {
	Origin  string
	Client  *apiclient.Client
	Session *session.Session
	Store   *session.SQLiteStore
	Metrics *metrics.Metrics
	Printer *output.Printer

	metricsFile string
}

// Setup opens the session store for the configured origin, loads its
// session and builds an API client that authenticates with it.
func Setup(ctx context.Context) (*Runtime, error) {
	origin := strings.TrimRight(viper.GetString(KeyAPIURL), "/")
	if origin == "" {
		return nil, Usagef("backend URL is required (use --api or set api.url in config)")
	}

	format, err := output.ResolveFormat(viper.GetString(KeyOutput), output.Terminal())
	if err != nil {
		return nil, &UsageError{Err: err}
	}

	var opts []session.Option
	switch backend := viper.GetString(KeyTokenBackend); backend {
	case "", "sqlite":
	case "keyring":
		opts = append(opts, session.WithVault(session.NewKeyringVault(session.DefaultKeyringService)))
	default:
		return nil, Usagef("unknown token backend %q (want sqlite or keyring)", backend)
	}

	stateDir := viper.GetString(KeyStateDir)
	if stateDir == "" {
		stateDir = config.DefaultStateDir()
	}
	st, err := session.Open(config.SessionDB(stateDir), opts...)
	if err != nil {
		return nil, err
	}

	sess, err := st.Load(ctx, origin)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	m := metrics.New()
	client, err := apiclient.NewClient(apiclient.ClientConfig{
		BaseURL:  origin,
		Tokens:   sess,
		Observer: m,
		Timeout:  viper.GetDuration(KeyTimeout),
	})
	if err != nil {
		_ = st.Close()
		return nil, &UsageError{Err: err}
	}

	logger.Debug("Runtime ready", "origin", origin, "state_dir", stateDir, "logged_in", sess.LoggedIn)

	return &Runtime{
		Origin:      origin,
		Client:      client,
		Session:     sess,
		Store:       st,
		Metrics:     m,
		Printer:     &output.Printer{W: os.Stdout, Format: format, Pretty: output.Terminal()},
		metricsFile: viper.GetString(KeyMetricsFile),
	}, nil
}

// RequireLogin fails unless the loaded session holds a usable token
func (r *Runtime) RequireLogin(ctx context.Context) error {
	if _, err := r.Session.Token(ctx); err != nil {
		return fmt.Errorf("%w: run 'aidctl login' first", err)
	}
	return nil
}

// SaveSession persists the in-memory session
func (r *Runtime) SaveSession(ctx context.Context) error {
	return r.Store.Save(ctx, r.Session)
}

// Close writes the metrics textfile (when configured) and closes the store
func (r *Runtime) Close() {
	if r.metricsFile != "" {
		if err := r.Metrics.WriteTextfile(r.metricsFile); err != nil {
			logger.Warn("Failed to write metrics textfile", "path", r.metricsFile, "error", err)
		}
	}
	if err := r.Store.Close(); err != nil {
		logger.Warn("Failed to close session store", "error", err)
	}
}

// WithRuntime adapts fn into a cobra Run function: it sets up the runtime,
// runs fn, closes the runtime and reports any error with its exit code.
func WithRuntime(fn func(cmd *cobra.Command, args []string, rt *Runtime) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		rt, err := Setup(cmd.Context())
		if err != nil {
			Fail(err)
			return
		}
		rt.Printer.W = cmd.OutOrStdout()
		err = fn(cmd, args, rt)
		rt.Close()
		if err != nil {
			Fail(err)
		}
	}
}
