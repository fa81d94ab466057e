// Package sync sends records queued while offline.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alfurqan/aidctl/internal/pkg/apiclient"
	"github.com/alfurqan/aidctl/internal/pkg/cmdutil"
	"github.com/alfurqan/aidctl/internal/pkg/logger"
	"github.com/alfurqan/aidctl/internal/pkg/records"
	"github.com/alfurqan/aidctl/internal/pkg/session"
)

// SyncCmd is the base sync command.
var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Send records queued while offline",
	// No Run function - requires a subcommand
}

var residentsCmd = &cobra.Command{
	Use:   "residents",
	Short: "Send queued households",
	Long: `Send every household queued with 'aidctl set resident --offline', oldest
first. Sent households leave the queue; failed ones stay queued with
their last error and are retried on the next sync.`,
	Args: cobra.NoArgs,
	Run:  cmdutil.WithRuntime(runSyncResidents),
}

func init() {
	SyncCmd.AddCommand(residentsCmd)
}

// Queue is the part of the session store the sync uses
type Queue interface {
	Pending(ctx context.Context, origin, kind string) ([]session.QueuedItem, error)
	Dequeue(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, msg string) error
}

// ResidentCreator posts one household
type ResidentCreator interface {
	CreateResident(ctx context.Context, in apiclient.ResidentInput) (*apiclient.Message, error)
}

func runSyncResidents(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
	ctx := cmd.Context()
	if err := rt.RequireLogin(ctx); err != nil {
		return err
	}
	result, err := Residents(ctx, rt.Store, rt.Client, rt.Origin)
	if err != nil {
		return err
	}
	return rt.Printer.Print(result)
}

// Residents posts every queued household of origin in insertion order
func Residents(ctx context.Context, q Queue, api ResidentCreator, origin string) (*apiclient.BatchResult, error) {
	items, err := q.Pending(ctx, origin, records.TypeResident)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]session.QueuedItem, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		id := strconv.FormatInt(item.ID, 10)
		byID[id] = item
		ids = append(ids, id)
	}

	result := apiclient.RunBatch(ctx, ids, func(ctx context.Context, id string) error {
		item := byID[id]
		var in apiclient.ResidentInput
		if err := json.Unmarshal(item.Payload, &in); err != nil {
			return fmt.Errorf("decode queued resident: %w", err)
		}
		if _, err := api.CreateResident(ctx, in); err != nil {
			return err
		}
		return q.Dequeue(ctx, item.ID)
	})

	for _, failed := range result.Failed {
		item, ok := byID[failed.ID]
		if !ok {
			continue
		}
		if err := q.MarkFailed(context.WithoutCancel(ctx), item.ID, failed.Error); err != nil {
			logger.Warn("Failed to record sync error", "queue_id", item.ID, "error", err)
		}
	}
	logger.Info("Sync finished", "queued", len(items), "summary", result.Summary())
	return result, nil
}
