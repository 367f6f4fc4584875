package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/jobly/internal/events"
	"github.com/alfredjeanlab/jobly/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:               "watch",
	Short:             "Stream company and job changes as they happen",
	GroupID:           "views",
	Args:              cobra.NoArgs,
	PersistentPreRunE: noClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		natsURL, _ := cmd.Flags().GetString("nats-url")
		if natsURL == "" {
			natsURL = os.Getenv("JOBLY_NATS_URL")
		}
		if natsURL == "" {
			natsURL = activeRemoteNATSURL()
		}
		if natsURL == "" {
			return fmt.Errorf("no NATS URL: pass --nats-url, set JOBLY_NATS_URL, or add one to the active remote")
		}

		sub, err := events.NewNATSSubscriber(natsURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				slog.Warn("nats disconnected", "err", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				slog.Info("nats reconnected")
			}),
		)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer sub.Close()

		topic, _ := cmd.Flags().GetString("topic")
		key, _ := cmd.Flags().GetString("key")
		ch, cancel, err := sub.Subscribe(topic)
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer cancel()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-ch:
				if !ok {
					return nil
				}
				if !keyMatches(msg, key) {
					continue
				}
				printEvent(out, msg, jsonOutput)
			}
		}
	},
}

// keyMatches reports whether msg describes the record named by key. An empty
// key matches everything.
func keyMatches(msg events.Message, key string) bool {
	return key == "" || msg.Key == key
}

// printEvent writes one change notification. In JSON mode the raw payload is
// passed through as one line per event.
func printEvent(w io.Writer, msg events.Message, raw bool) {
	if raw {
		fmt.Fprintf(w, "%s\n", msg.Data)
		return
	}
	ev, err := msg.Decode()
	if err != nil {
		slog.Warn("skipping undecodable event", "topic", msg.Topic, "err", err)
		return
	}
	action, kind, key := describeEvent(ev)
	fmt.Fprintf(w, "%s %s %s %s\n", ui.RenderMuted(time.Now().Format(time.TimeOnly)), ui.RenderChange(action), kind, key)
}

// describeEvent returns the action, entity kind and natural key of a decoded
// event.
func describeEvent(ev any) (action, kind, key string) {
	if k, ok := ev.(events.Keyed); ok {
		key = k.Key()
	}
	switch ev.(type) {
	case *events.CompanyCreated:
		return "created", "company", key
	case *events.CompanyUpdated:
		return "updated", "company", key
	case *events.CompanyDeleted:
		return "deleted", "company", key
	case *events.JobCreated:
		return "created", "job", key
	case *events.JobUpdated:
		return "updated", "job", key
	case *events.JobDeleted:
		return "deleted", "job", key
	}
	return "changed", "unknown", key
}

func init() {
	watchCmd.Flags().String("nats-url", "", "NATS server URL (default JOBLY_NATS_URL or the active remote)")
	watchCmd.Flags().String("topic", events.AllTopics, "subject pattern to follow, e.g. jobly.job.*")
	watchCmd.Flags().String("key", "", "only show changes to this company handle or job title")
}
