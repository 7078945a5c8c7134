// Package wizard collects a recommendation answer set interactively, one
// question per step.
package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pricingexcellence/pricing/internal/recommend"
	"golang.org/x/term"
)

// Run asks all eight questions and returns the validated answer set.
func Run(in io.Reader, out io.Writer) (recommend.AnswerSet, error) {
	return Complete(in, out, recommend.AnswerSet{})
}

// Complete asks only the questions partial leaves unanswered and returns
// the merged, validated answer set.
//
// On a terminal the questions are a huh form. Any other input is read one
// line per question; a line holds the option number or its value. Input
// that ends early fails with io.ErrUnexpectedEOF and never fills in an
// answer.
func Complete(in io.Reader, out io.Writer, partial recommend.AnswerSet) (recommend.AnswerSet, error) {
	questions := pending(partial)
	if len(questions) == 0 {
		return partial, partial.Validate()
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		values, err := runForm(in, out, questions)
		if err != nil {
			return recommend.AnswerSet{}, err
		}
		return merge(partial, questions, values)
	}
	return prompt(bufio.NewReader(in), out, partial, questions)
}

func runForm(in io.Reader, out io.Writer, questions []recommend.Question) ([]string, error) {
	values := make([]string, len(questions))
	groups := make([]*huh.Group, len(questions))
	for i, q := range questions {
		groups[i] = huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("%d/%d  %s", i+1, len(questions), q.Text)).
				Options(options(q)...).
				Value(&values[i]),
		)
	}

	form := huh.NewForm(groups...).
		WithInput(in).
		WithOutput(out)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}
	return values, nil
}

// prompt asks each question as a numbered list and reads exactly one line
// per answer from r.
func prompt(r *bufio.Reader, w io.Writer, a recommend.AnswerSet, questions []recommend.Question) (recommend.AnswerSet, error) {
	for i, q := range questions {
		fmt.Fprintf(w, "%d/%d  %s\n", i+1, len(questions), q.Text) //nolint:errcheck
		for j, o := range q.Options {
			fmt.Fprintf(w, "  %d. %s: %s\n", j+1, o.Label, o.Description) //nolint:errcheck
		}
		fmt.Fprint(w, "Choose: ") //nolint:errcheck

		line, err := r.ReadString('\n')
		line = strings.TrimSpace(line)
		switch {
		case errors.Is(err, io.EOF) && line == "":
			unanswered := &recommend.InvalidInputError{Field: string(q.Field), Allowed: q.Field.Allowed(), Reason: "unanswered"}
			return recommend.AnswerSet{}, fmt.Errorf("wizard failed: unexpected end of input (%w): %w", io.ErrUnexpectedEOF, unanswered)
		case err != nil && !errors.Is(err, io.EOF):
			return recommend.AnswerSet{}, fmt.Errorf("wizard failed: %w", err)
		}
		fmt.Fprintln(w) //nolint:errcheck

		if err := a.Set(q.Field, choice(q, line)); err != nil {
			return recommend.AnswerSet{}, fmt.Errorf("wizard failed: %w", err)
		}
	}
	return a, a.Validate()
}

// choice maps an option number to its value. Anything else is returned
// as typed and checked by AnswerSet.Set.
func choice(q recommend.Question, line string) string {
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1].Value
	}
	return line
}

// pending returns the questions whose field is still unanswered, in order.
func pending(a recommend.AnswerSet) []recommend.Question {
	var out []recommend.Question
	for _, q := range recommend.Questions() {
		if a.Get(q.Field) == "" {
			out = append(out, q)
		}
	}
	return out
}

func options(q recommend.Question) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(q.Options))
	for _, o := range q.Options {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s: %s", o.Label, o.Description), o.Value))
	}
	return opts
}

func merge(a recommend.AnswerSet, questions []recommend.Question, values []string) (recommend.AnswerSet, error) {
	for i, q := range questions {
		if err := a.Set(q.Field, values[i]); err != nil {
			return recommend.AnswerSet{}, err
		}
	}
	return a, a.Validate()
}
