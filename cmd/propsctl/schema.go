package main

import (
	"encoding/json"

	"github.com/goliatone/go-props/schema/openapi"
	"github.com/spf13/cobra"
)

func newSchemaCmd(a *app) *cobra.Command {
	var (
		asOpenAPI bool
		title     string
		version   string
		component string
	)
	cmd := &cobra.Command{
		Use:   "schema <file>",
		Short: "Describe the entries of a header",
		Long: `Print a JSON description of a header: one descriptor per entry by
default, or an OpenAPI document with --openapi.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asOpenAPI {
				a.extraOptions = append(a.extraOptions, openapi.Option(
					openapi.WithInfo(openapi.Info{Title: title, Version: version}),
					openapi.WithComponentName(component),
				))
			}
			list, err := a.load(args[0])
			if err != nil {
				return err
			}
			doc, err := list.Schema()
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(doc.Document)
		},
	}
	cmd.Flags().BoolVar(&asOpenAPI, "openapi", false, "emit an OpenAPI document")
	cmd.Flags().StringVar(&title, "title", "Header Schema", "OpenAPI info title")
	cmd.Flags().StringVar(&version, "version", "1.0.0", "OpenAPI info version")
	cmd.Flags().StringVar(&component, "component", "Header", "OpenAPI component name")
	return cmd
}
