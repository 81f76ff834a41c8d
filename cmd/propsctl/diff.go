package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	props "github.com/goliatone/go-props"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

var errHeadersDiffer = errors.New("headers differ")

func newDiffCmd(a *app) *cobra.Command {
	var exitCode bool
	cmd := &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Compare two headers entry by entry",
		Long: `Compare two headers line by line in list order. The inputs may use
different formats. With --exit-code a difference is reported as an error.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := a.load(args[0])
			if err != nil {
				return err
			}
			right, err := a.load(args[1])
			if err != nil {
				return err
			}
			changed, err := writeDiff(cmd.OutOrStdout(), lines(left), lines(right))
			if err != nil {
				return err
			}
			if changed && exitCode {
				return errHeadersDiffer
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "fail when the headers differ")
	return cmd
}

// lines renders list as one "NAME = value / comment" line per entry.
func lines(list *props.List) string {
	var b strings.Builder
	for name, value := range list.All() {
		b.WriteString(name)
		b.WriteString(" = ")
		b.WriteString(value.String())
		if list.HasComment(name) {
			c, _ := list.Comment(name)
			b.WriteString(" / ")
			b.WriteString(c)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func writeDiff(w io.Writer, left, right string) (bool, error) {
	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(left, right)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	added := color.New(color.FgGreen).SprintFunc()
	removed := color.New(color.FgRed).SprintFunc()
	changed := false
	for _, d := range diffs {
		prefix, paint := "  ", fmt.Sprint
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, paint, changed = "+ ", added, true
		case diffmatchpatch.DiffDelete:
			prefix, paint, changed = "- ", removed, true
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if _, err := io.WriteString(w, paint(prefix+strings.TrimSuffix(line, "\n"))+"\n"); err != nil {
				return changed, err
			}
		}
	}
	return changed, nil
}
