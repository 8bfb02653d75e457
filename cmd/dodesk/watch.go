package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/shilendra-dev/dodesk/internal/client"
	"github.com/shilendra-dev/dodesk/internal/events"
	"github.com/shilendra-dev/dodesk/internal/filter"
	"github.com/shilendra-dev/dodesk/internal/model"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch [<name-or-id>]",
	Short:   "Watch for issues matching a saved view",
	GroupID: "views",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := requireWorkspace()
		if err != nil {
			return err
		}
		interval, _ := cmd.Flags().GetDuration("interval")
		once, _ := cmd.Flags().GetBool("once")
		limit, _ := cmd.Flags().GetInt("limit")

		// 1. Resolve the view config to watch through.
		cfg := model.NeutralConfig()
		if len(args) == 1 {
			store := newFilterStore(ws)
			filters, err := store.List(context.Background())
			if err != nil {
				return fmt.Errorf("loading saved filters: %w", err)
			}
			id, err := resolveFilter(filters, args[0])
			if err != nil {
				return err
			}
			if f, ok := store.FilterByID(id); ok {
				cfg = f.Config.Normalized()
			}
		}

		req := &client.ListIssuesRequest{Limit: limit}

		// 2. Setup signal handling.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		seen := make(map[string]time.Time)

		// 3. Initial query.
		if err := queryAndPrint(ctx, ws, req, cfg, seen); err != nil {
			return err
		}
		if once {
			return nil
		}

		// 4. Choose event-driven or polling mode.
		natsURL := os.Getenv("DODESK_NATS_URL")
		if natsURL == "" {
			natsURL = activeRemoteNATSURL()
		}
		if natsURL != "" {
			return watchNATS(ctx, natsURL, ws, req, cfg, seen)
		}
		return watchPoll(ctx, interval, ws, req, cfg, seen)
	},
}

// watchNATS subscribes to NATS events and re-queries on changes with debounce.
func watchNATS(ctx context.Context, natsURL, ws string, req *client.ListIssuesRequest, cfg model.FilterConfig, seen map[string]time.Time) error {
	// reconnectCh receives a signal when the NATS client reconnects after
	// a disconnect, so we can immediately re-query for missed events.
	reconnectCh := make(chan struct{}, 1)

	sub, err := events.NewNATSSubscriber(natsURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats: disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats: reconnected")
			select {
			case reconnectCh <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	defer sub.Close()

	// Saved-filter events never change issue rows, so only issue
	// mutations trigger a refresh.
	ch, cancel, err := sub.Subscribe(events.TopicIssuesAll)
	if err != nil {
		return fmt.Errorf("subscribing to events: %w", err)
	}
	defer cancel()

	debounce := time.NewTimer(0)
	debounce.Stop()
	// Drain the timer channel in case it fired between NewTimer and Stop.
	select {
	case <-debounce.C:
	default:
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			debounce.Reset(200 * time.Millisecond)
		case <-reconnectCh:
			debounce.Reset(0) // immediate re-query
		case <-debounce.C:
			if err := queryAndPrint(ctx, ws, req, cfg, seen); err != nil {
				return err
			}
		}
	}
}

// watchPoll polls for changes at the given interval.
func watchPoll(ctx context.Context, interval time.Duration, ws string, req *client.ListIssuesRequest, cfg model.FilterConfig, seen map[string]time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
		if err := queryAndPrint(ctx, ws, req, cfg, seen); err != nil {
			return err
		}
	}
}

// queryAndPrint lists issues, applies the view config, diffs against the
// seen map, and prints any changes.
func queryAndPrint(ctx context.Context, ws string, req *client.ListIssuesRequest, cfg model.FilterConfig, seen map[string]time.Time) error {
	resp, err := deskClient.ListIssues(ctx, ws, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	visible := filter.Apply(resp.Issues, cfg)
	changed := diffIssues(visible, seen)
	if len(changed) > 0 {
		if jsonOutput {
			printJSON(changed)
		} else {
			printIssueListTable(changed, len(visible))
		}
	}
	return nil
}

// diffIssues compares issues against the seen map and returns those that are
// new or have a different updated_at timestamp. It updates seen in place.
func diffIssues(issues []*model.Issue, seen map[string]time.Time) []*model.Issue {
	var changed []*model.Issue
	for _, iss := range issues {
		prev, ok := seen[iss.ID]
		if !ok || !iss.UpdatedAt.Equal(prev) {
			changed = append(changed, iss)
		}
		seen[iss.ID] = iss.UpdatedAt
	}
	return changed
}

func init() {
	watchCmd.Flags().Duration("interval", 5*time.Second, "polling interval")
	watchCmd.Flags().Bool("once", false, "exit after first poll")
	watchCmd.Flags().Int("limit", 200, "maximum number of issues to fetch")
}
