package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pricingexcellence/pricing/internal/recommend"
	"github.com/spf13/cobra"
)

func newQuestionsCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List the engagement questions and their allowed answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat(format, formatTable, formatTable, formatJSON)
			if err != nil {
				return err
			}
			qs := recommend.Questions()
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), qs)
			}
			printQuestions(cmd.OutOrStdout(), qs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table or json")
	return cmd
}

func printQuestions(w io.Writer, qs []recommend.Question) {
	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)
	for i, q := range qs {
		if i > 0 {
			fmt.Fprintln(w) //nolint:errcheck
		}
		bold.Fprintf(w, "%d. %s\n", i+1, q.Text)               //nolint:errcheck
		dim.Fprintf(w, "   --%s\n", flagName(string(q.Field))) //nolint:errcheck
		t := &table{header: []string{"   VALUE", "ANSWER"}}
		for _, o := range q.Options {
			t.add("   "+o.Value, o.Label)
		}
		t.write(w)
	}
}
