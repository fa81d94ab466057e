package show

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfurqan/aidctl/internal/pkg/cmdutil"
	"github.com/alfurqan/aidctl/internal/pkg/output"
	"github.com/alfurqan/aidctl/internal/pkg/session"
	"github.com/alfurqan/aidctl/internal/pkg/version"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the stored session for the current backend",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		return rt.Printer.Print(sessionTable{rt.Session})
	}),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p := &output.Printer{W: cmd.OutOrStdout(), Format: output.FormatJSON, Pretty: output.Terminal()}
		if err := p.Print(version.Get()); err != nil {
			cmdutil.Fail(err)
		}
	},
}

type sessionTable struct {
	*session.Session
}

func (t sessionTable) Headers() []string { return []string{"Key", "Value"} }

func (t sessionTable) Rows() [][]string {
	s := t.Session
	expires := "-"
	if !s.ExpiresAt.IsZero() {
		expires = s.ExpiresAt.Local().Format("2006-01-02 15:04")
		if s.Expired(time.Now()) {
			expires += " (expired)"
		}
	}
	return [][]string{
		{"Backend", s.Origin},
		{"Logged in", fmt.Sprint(s.LoggedIn)},
		{"Username", s.Username},
		{"Role", s.Role},
		{"Tenant", fmt.Sprint(s.TenantID)},
		{"Expires", expires},
		{"Unread notifications", fmt.Sprint(s.NotificationCount)},
	}
}
