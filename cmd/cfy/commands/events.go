package commands

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/cfy/internal/errors"
	"github.com/thoreinstein/cfy/internal/events"
	"github.com/thoreinstein/cfy/internal/logging"
	"github.com/thoreinstein/cfy/pkg/fileutil"
)

// maxEventsInput bounds the size of an events file or stdin.
const maxEventsInput = 64 << 20

var eventsInteractive bool

func init() {
	eventsRenderCmd.Flags().BoolVarP(&eventsInteractive, "interactive", "i", false,
		"pick one event with a fuzzy finder and print it in full")
	eventsCmd.AddCommand(eventsRenderCmd)
	rootCmd.AddCommand(eventsCmd)
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Work with deployment events",
	Long:  `Print deployment events and logs produced by workflow executions.`,
}

var eventsRenderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Print events from a file or stdin",
	Long: `Print events from a JSON file, or stdin when no file (or "-") is given.

The input is either a JSON array of events or one JSON event per line.
By default each event is printed as a one-line message:

  <timestamp> <CFY|LOG> <deployment> [<node>.<operation>] <message>

With -v every event is printed in full as indented JSON. With -i a fuzzy
finder lists the messages, previews each event, and the chosen one is
printed in full.`,
	Example: `  # Print short messages
  cfy events render events.json

  # Print full events
  cfy events render -v events.json

  # Read from a pipe
  cat events.jsonl | cfy events render

  # Browse events and print the one picked
  cfy events render -i events.json

  See Also: cfy loggers`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEventsRender,
}

func runEventsRender(cmd *cobra.Command, args []string) error {
	reg, err := registryFrom(cmd)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening events file"), "Check the events file path")
		}
		defer f.Close()
		in = f
	}

	data, err := fileutil.ReadLimited(in, maxEventsInput)
	if err != nil {
		return errors.NewUserError(err, "Split the input into smaller files")
	}
	evs, err := events.Decode(bytes.NewReader(data))
	if err != nil {
		return errors.NewUserError(err, "Events must be a JSON array or one JSON object per line")
	}

	if eventsInteractive {
		return renderPicked(logging.MainFromContext(cmd.Context()), evs)
	}

	formatter := events.FormatterFor(reg.UseColors())
	selector := events.NewSelector(logging.MainFromContext(cmd.Context()), events.Flags{Verbose: verbosity > 0}, formatter.Format)
	selector.EventsRenderer()(evs)
	return nil
}

// findEvent lets the user pick one event and returns its index. Tests
// replace it, the fuzzy finder needs a terminal.
var findEvent = func(evs []events.Event) (int, error) {
	return fuzzyfinder.Find(
		evs,
		func(i int) string {
			return events.MessagePrefix(evs[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			out, err := evs[i].JSON()
			if err != nil {
				return err.Error()
			}
			return out
		}),
	)
}

// renderPicked prints the event chosen with findEvent in full. Aborting the
// finder is not an error.
func renderPicked(logger *slog.Logger, evs []events.Event) error {
	if len(evs) == 0 {
		logger.Warn("no events to pick from")
		return nil
	}

	idx, err := findEvent(evs)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive event selection failed")
	}

	selector := events.NewSelector(logger, events.Flags{Verbose: true}, nil)
	selector.EventsRenderer()(evs[idx : idx+1])
	return nil
}
