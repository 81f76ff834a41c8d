package main

import (
	"fmt"
	"path/filepath"

	"github.com/goliatone/go-props/layering"
	"github.com/spf13/cobra"
)

func newMergeCmd(a *app) *cobra.Command {
	var (
		to    string
		trace string
	)
	cmd := &cobra.Command{
		Use:   "merge <header>...",
		Short: "Layer headers into one effective header",
		Long: `Layer headers into one effective header. Later files are stronger: each
keeps its own entries and inherits the names no stronger file defines,
the way an extension inherits its primary header. With --trace NAME the
provenance of NAME is printed as JSON instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layers := make([]layering.Layer, 0, len(args))
			for i, path := range args {
				list, err := a.load(path)
				if err != nil {
					return err
				}
				name := fmt.Sprintf("%d:%s", i, filepath.Base(path))
				layers = append(layers, layering.NewLayer(name, i, list))
			}
			stack, err := layering.NewStack(layers...)
			if err != nil {
				return err
			}

			if trace != "" {
				payload, err := stack.Trace(trace).ToJSON()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return err
			}

			merged, err := stack.Merge(a.listOptions("merged")...)
			if err != nil {
				return err
			}
			if to == "" {
				return render(cmd.OutOrStdout(), merged)
			}
			f, err := parseFormat(to)
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), f, merged)
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "write the merged header in this format instead of printing it")
	cmd.Flags().StringVar(&trace, "trace", "", "print the provenance of one name")
	return cmd
}
