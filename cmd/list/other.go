package list

import (
	"github.com/spf13/cobra"

	"github.com/alfurqan/aidctl/internal/pkg/cmdutil"
	"github.com/alfurqan/aidctl/internal/pkg/records"
)

var unreadOnly bool

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List audit notifications",
	Long: `List the audit notifications of the current tenant and cache them in the
session. Use 'aidctl watch notifications' to follow them live.`,
	Args: cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		ctx := cmd.Context()
		if err := rt.RequireLogin(ctx); err != nil {
			return err
		}
		items, err := rt.Client.ListNotifications(ctx)
		if err != nil {
			return err
		}
		rt.Session.SetNotifications(items)
		if err := rt.SaveSession(ctx); err != nil {
			return err
		}
		if unreadOnly {
			var fresh []records.Notification
			for _, n := range items {
				if n.IsNew {
					fresh = append(fresh, n)
				}
			}
			items = fresh
		}
		rt.Metrics.SetListed(records.TypeNotification, len(items))
		return rt.Printer.Print(notificationTable(items))
	}),
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List accounts of the current tenant",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		ctx := cmd.Context()
		if err := rt.RequireLogin(ctx); err != nil {
			return err
		}
		users, err := rt.Client.ListUsers(ctx)
		if err != nil {
			return err
		}
		return rt.Printer.Print(userTable(users))
	}),
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "List households waiting in the offline queue",
	Long: `List households saved with 'aidctl set resident --offline' that have not
been sent yet. Send them with 'aidctl sync residents'.`,
	Args: cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		items, err := rt.Store.Pending(cmd.Context(), rt.Origin, records.TypeResident)
		if err != nil {
			return err
		}
		return rt.Printer.Print(queueTable(items))
	}),
}

func init() {
	notificationsCmd.Flags().BoolVar(&unreadOnly, "unread", false, "only show unread notifications")
}
