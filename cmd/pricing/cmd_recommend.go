package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pricingexcellence/pricing/internal/models"
	"github.com/pricingexcellence/pricing/internal/recommend"
	"github.com/pricingexcellence/pricing/internal/render"
	"github.com/pricingexcellence/pricing/internal/webapi"
	"github.com/pricingexcellence/pricing/internal/wizard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

func newRecommendCommand(a *app) *cobra.Command {
	var (
		answersFile string
		format      string
		interactive bool
		explain     bool
	)
	values := make(map[recommend.Field]*string)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend pricing models for an engagement",
		Long: `Recommend up to three pricing models for an engagement, ranked by confidence.

Answers come from an --answers file (YAML or JSON, keyed by field name) and
from per-question flags, which override the file. When answers are missing
and the input is a terminal, the remaining questions are asked interactively.

Run "pricing questions" to see every question and its allowed values.`,
		Example: `  pricing recommend
  pricing recommend --answers engagement.yaml --format markdown
  pricing recommend --outcome-measurability high --client-risk-tolerance high \
    --relationship-maturity new --budget-visibility fixed --scope-certainty clear \
    --value-clarity high --timeline medium --client-sophistication high`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat(format, formatTable, formatTable, formatJSON, formatMarkdown)
			if err != nil {
				return err
			}

			answers, err := collectAnswers(cmd, answersFile, values)
			if err != nil {
				return err
			}
			if !answers.Complete() {
				if !interactive && !isTerminal(cmd.InOrStdin()) {
					return fmt.Errorf("incomplete answers: %w", answers.Validate())
				}
				answers, err = wizard.Complete(cmd.InOrStdin(), cmd.ErrOrStderr(), answers)
				if err != nil {
					return err
				}
			}

			engine, err := a.Engine()
			if err != nil {
				return err
			}
			recs, err := engine.Recommend(answers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatJSON:
				return writeJSON(out, webapi.RecommendationsResponse{Answers: answers, Recommendations: recs})
			case formatMarkdown:
				md, err := render.RecommendationsMarkdown(recs)
				if err != nil {
					return err
				}
				_, err = io.WriteString(out, md)
				return err
			default:
				printRecommendations(out, recs)
				if !explain {
					return nil
				}
				matches, err := engine.Explain(answers)
				if err != nil {
					return err
				}
				fmt.Fprintln(out) //nolint:errcheck
				printExplain(out, matches)
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&answersFile, "answers", "", "YAML or JSON file with answers keyed by field name")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json or markdown")
	cmd.Flags().BoolVar(&explain, "explain", false, "Also show which rules matched (table format)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Ask missing questions even when the input is not a terminal")
	for _, f := range recommend.Fields() {
		q, _ := recommend.QuestionFor(f)
		values[f] = cmd.Flags().String(flagName(string(f)), "", fmt.Sprintf("%s (%s)", q.Text, strings.Join(f.Allowed(), "|")))
	}

	return cmd
}

// collectAnswers merges the answers file with explicitly set flags. Values
// are checked as they are set; missing fields are left unanswered.
func collectAnswers(cmd *cobra.Command, path string, flags map[recommend.Field]*string) (recommend.AnswerSet, error) {
	var (
		a    recommend.AnswerSet
		errs []error
	)

	if path != "" {
		fileValues, err := readAnswersFile(path)
		if err != nil {
			return a, err
		}
		for _, f := range recommend.Fields() {
			if v, ok := fileValues[string(f)]; ok {
				errs = append(errs, a.Set(f, v))
				delete(fileValues, string(f))
			}
		}
		for k, v := range fileValues {
			errs = append(errs, a.Set(recommend.Field(k), v))
		}
	}

	for _, f := range recommend.Fields() {
		if cmd.Flags().Changed(flagName(string(f))) {
			errs = append(errs, a.Set(f, *flags[f]))
		}
	}
	return a, errors.Join(errs...)
}

func readAnswersFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers: %w", err)
	}
	// JSON is valid YAML, so one decoder serves both.
	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing answers %s: %w", path, err)
	}
	return values, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printRecommendations(w io.Writer, recs []models.Recommendation) {
	t := &table{
		header: []string{"#", "MODEL", "CONFIDENCE", "RATIONALE"},
		style: func(row, col int, _ string) *color.Color {
			if col == 2 {
				return confidenceColor(recs[row].Confidence)
			}
			return nil
		},
	}
	for _, r := range recs {
		name := r.Title
		if name == "" {
			name = r.ModelID
		}
		t.add(strconv.Itoa(r.Rank), name, strconv.Itoa(r.Confidence)+"%", truncate(r.Rationale, 80))
	}
	t.write(w)

	if len(recs) > 0 && recs[0].Link != "" {
		dim := color.New(color.FgHiBlack)
		dim.Fprintf(w, "\nDetails: pricing models show %s\n", recs[0].ModelID) //nolint:errcheck
	}
}

func printExplain(w io.Writer, matches []recommend.RuleMatch) {
	t := &table{
		header: []string{"RULE", "MODEL", "CONFIDENCE", "MATCHED", "WHEN"},
		style: func(row, col int, _ string) *color.Color {
			if col == 3 && matches[row].Matched {
				return color.New(color.FgGreen)
			}
			if col == 3 {
				return color.New(color.FgHiBlack)
			}
			return nil
		},
	}
	for _, m := range matches {
		matched := "no"
		if m.Matched {
			matched = "yes"
		}
		t.add(m.RuleID, m.ModelID, strconv.Itoa(m.Confidence)+"%", matched, m.Predicate)
	}
	t.write(w)
}
