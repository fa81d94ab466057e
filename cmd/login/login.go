// Package login provides the login and logout commands.
package login

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alfurqan/aidctl/internal/pkg/cmdutil"
	"github.com/alfurqan/aidctl/internal/pkg/logger"
	"github.com/alfurqan/aidctl/internal/pkg/session"
)

var (
	username      string
	passwordStdin bool
)

// LoginCmd exchanges credentials for a session token
var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend",
	Long: `Log in to the backend and store the session locally.

The password is read from the terminal without echo, or from stdin
with --password-stdin.

Examples:
  aidctl login -u admin
  echo "$PASS" | aidctl login -u admin --password-stdin`,
	Args: cobra.NoArgs,
	Run:  cmdutil.WithRuntime(runLogin),
}

// LogoutCmd removes the stored session
var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session",
	Args:  cobra.NoArgs,
	Run:   cmdutil.WithRuntime(runLogout),
}

func init() {
	LoginCmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	LoginCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
}

// LoginResult is printed after a successful login
type LoginResult struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	TenantID int    `json:"tenant_id,omitempty"`
	Expires  string `json:"expires_at,omitempty"`
}

func runLogin(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
	if strings.TrimSpace(username) == "" {
		return cmdutil.Usagef("username is required (use --username)")
	}
	password, err := readPassword(cmd.InOrStdin(), passwordStdin)
	if err != nil {
		return err
	}
	if password == "" {
		return cmdutil.Usagef("password is required")
	}

	ctx := cmd.Context()
	res, err := rt.Client.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	sess, err := session.FromLogin(rt.Origin, res.Token, res.Role)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	*rt.Session = *sess
	if err := rt.SaveSession(ctx); err != nil {
		return err
	}
	logger.Info("Logged in", "username", sess.Username, "role", sess.Role)

	out := LoginResult{Username: sess.Username, Role: sess.Role, TenantID: sess.TenantID}
	if !sess.ExpiresAt.IsZero() {
		out.Expires = sess.ExpiresAt.Format("2006-01-02 15:04")
	}
	return rt.Printer.Print(out)
}

func runLogout(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
	if err := rt.Store.Clear(cmd.Context(), rt.Origin); err != nil {
		return err
	}
	return rt.Printer.Print(map[string]bool{"logged_out": true})
}

// readPassword reads one line from in, or prompts without echo on a terminal
func readPassword(in io.Reader, fromStdin bool) (string, error) {
	if !fromStdin && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "Password: ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
