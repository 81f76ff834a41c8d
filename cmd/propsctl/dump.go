package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	props "github.com/goliatone/go-props"
	"github.com/spf13/cobra"
)

func newDumpCmd(a *app) *cobra.Command {
	var (
		topLevel bool
		tree     bool
	)
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a header in list order",
		Long: `Print every entry of a header in list order, one per line, with its
comment. Use --tree to print the nested view of dotted names instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.load(args[0])
			if err != nil {
				return err
			}
			if tree {
				_, err = io.WriteString(cmd.OutOrStdout(), list.Format(topLevel, ""))
				return err
			}
			return render(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "print the nested view")
	cmd.Flags().BoolVar(&topLevel, "top-level", false, "collapse nested sets when printing the tree")
	return cmd
}

func render(w io.Writer, list *props.List) error {
	name := color.New(color.FgCyan, color.Bold).SprintFunc()
	comment := color.New(color.FgBlue).SprintFunc()
	for key, value := range list.All() {
		line := fmt.Sprintf("%s = %s", name(key), value.String())
		if list.HasComment(key) {
			c, _ := list.Comment(key)
			line += comment(" / " + c)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
