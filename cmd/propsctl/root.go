package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	props "github.com/goliatone/go-props"
	"github.com/goliatone/go-props/pkg/activity"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	logLevel string
	color    string
	label    string
	from     string
}

type app struct {
	flags  globalFlags
	logger *log.Logger
	// extraOptions are appended to every list a subcommand loads.
	extraOptions []props.Option
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "propsctl",
		Short:         "Inspect and convert ordered header lists",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.flags.color, "color", "auto", "colorize output (auto, always, never)")
	root.PersistentFlags().StringVar(&a.flags.label, "label", "", "label attached to loaded lists")
	root.PersistentFlags().StringVar(&a.flags.from, "from", "", "input format (fits, yaml, json); detected from the extension when empty")

	root.AddCommand(
		newDumpCmd(a),
		newConvertCmd(a),
		newEvalCmd(a),
		newDiffCmd(a),
		newSchemaCmd(a),
		newMergeCmd(a),
	)
	return root
}

func (a *app) setup(stdout, stderr io.Writer) error {
	level, err := log.ParseLevel(a.flags.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", a.flags.logLevel, err)
	}
	a.logger = log.NewWithOptions(stderr, log.Options{
		Prefix: "propsctl",
		Level:  level,
	})

	switch strings.ToLower(a.flags.color) {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto", "":
		color.NoColor = !terminal(stdout)
	default:
		return fmt.Errorf("invalid --color %q", a.flags.color)
	}
	return nil
}

func terminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// listOptions returns the options every loaded list is built with: the
// label flag and an activity hook that logs mutations at debug level.
func (a *app) listOptions(label string) []props.Option {
	if a.flags.label != "" {
		label = a.flags.label
	}
	opts := []props.Option{props.WithLabel(label)}
	if a.logger != nil && a.logger.GetLevel() <= log.DebugLevel {
		opts = append(opts, props.WithActivityHooks(activity.Hooks{
			activity.HookFunc(func(_ context.Context, event activity.Event) error {
				a.logger.Debug("mutation", "verb", event.Verb, "object", event.ObjectID, "type", event.ObjectType)
				return nil
			}),
		}))
	}
	return append(opts, a.extraOptions...)
}
