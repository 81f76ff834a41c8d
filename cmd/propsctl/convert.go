package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a header between FITS, YAML and JSON",
		Long: `Convert a header between FITS cards, YAML card lists and JSON documents.
Formats are detected from the file extensions unless --from or --to is set.
Use "-" as output to write to stdout.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.load(args[0])
			if err != nil {
				return err
			}
			out := args[1]
			f, err := detectFormat(out, to)
			if err != nil {
				return err
			}
			if out == "-" {
				return encode(cmd.OutOrStdout(), f, list)
			}
			file, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := encode(file, f, list); err != nil {
				file.Close()
				return err
			}
			a.logger.Info("wrote header", "path", out, "format", f, "entries", list.Len())
			return file.Close()
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "output format (fits, yaml, json)")
	return cmd
}
