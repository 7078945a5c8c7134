package wizard

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pricingexcellence/pricing/internal/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeAnswers() recommend.AnswerSet {
	return recommend.AnswerSet{
		OutcomeMeasurability: recommend.LevelHigh,
		ClientRiskTolerance:  recommend.LevelHigh,
		RelationshipMaturity: recommend.MaturityNew,
		BudgetVisibility:     recommend.BudgetFixed,
		ScopeCertainty:       recommend.ScopeClear,
		ValueClarity:         recommend.LevelHigh,
		Timeline:             recommend.TimelineMedium,
		ClientSophistication: recommend.LevelHigh,
	}
}

func TestPending(t *testing.T) {
	assert.Len(t, pending(recommend.AnswerSet{}), 8)
	assert.Empty(t, pending(completeAnswers()))

	partial := recommend.AnswerSet{Timeline: recommend.TimelineLong, OutcomeMeasurability: recommend.LevelLow}
	qs := pending(partial)
	require.Len(t, qs, 6)
	assert.Equal(t, recommend.FieldClientRiskTolerance, qs[0].Field)
	assert.Equal(t, recommend.FieldClientSophistication, qs[5].Field)
}

func TestOptions(t *testing.T) {
	q, ok := recommend.QuestionFor(recommend.FieldOutcomeMeasurability)
	require.True(t, ok)

	opts := options(q)
	require.Len(t, opts, 3)
	assert.Equal(t, "high", opts[0].Value)
	assert.Equal(t, "Yes, very clear metrics: We can measure specific improvements and attribute them to our work", opts[0].Key)
	assert.Equal(t, "low", opts[2].Value)
}

func TestMerge(t *testing.T) {
	partial := completeAnswers()
	partial.Timeline = ""
	partial.ScopeCertainty = ""
	qs := pending(partial)
	require.Len(t, qs, 2)

	got, err := merge(partial, qs, []string{"uncertain", "long"})
	require.NoError(t, err)
	assert.Equal(t, recommend.ScopeUncertain, got.ScopeCertainty)
	assert.Equal(t, recommend.TimelineLong, got.Timeline)
	assert.True(t, got.Complete())

	_, err = merge(partial, qs, []string{"uncertain", "forever"})
	assert.ErrorIs(t, err, recommend.ErrInvalidInput)
}

func TestComplete_NothingToAsk(t *testing.T) {
	var out bytes.Buffer
	got, err := Complete(strings.NewReader(""), &out, completeAnswers())
	require.NoError(t, err)
	assert.Equal(t, completeAnswers(), got)
	assert.Empty(t, out.String())
}

func TestRun_PipedInput(t *testing.T) {
	// Numbers and values mix; no answer is the first option.
	input := "2\n3\nmature\n2\n3\nlow\n3\n2\n"
	var out bytes.Buffer

	got, err := Run(strings.NewReader(input), &out)
	require.NoError(t, err)
	assert.Equal(t, recommend.AnswerSet{
		OutcomeMeasurability: recommend.LevelMedium,
		ClientRiskTolerance:  recommend.LevelLow,
		RelationshipMaturity: recommend.MaturityMature,
		BudgetVisibility:     recommend.BudgetFlexible,
		ScopeCertainty:       recommend.ScopeUncertain,
		ValueClarity:         recommend.LevelLow,
		Timeline:             recommend.TimelineLong,
		ClientSophistication: recommend.LevelMedium,
	}, got)

	assert.Contains(t, out.String(), "1/8  Can you clearly measure and attribute outcomes to your work?")
	assert.Contains(t, out.String(), "  3. Difficult to measure: Outcomes are fuzzy or multi-causal")
	assert.Contains(t, out.String(), "8/8  ")
}

func TestRun_LastLineWithoutNewline(t *testing.T) {
	got, err := Run(strings.NewReader("1\n1\n1\n1\n1\n1\n1\n3"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, recommend.LevelLow, got.ClientSophistication)
}

func TestComplete_AsksOnlyPending(t *testing.T) {
	partial := completeAnswers()
	partial.RelationshipMaturity = ""
	partial.Timeline = ""
	var out bytes.Buffer

	got, err := Complete(strings.NewReader("developing\n3\n"), &out, partial)
	require.NoError(t, err)
	assert.Equal(t, recommend.MaturityDeveloping, got.RelationshipMaturity)
	assert.Equal(t, recommend.TimelineLong, got.Timeline)
	assert.Equal(t, recommend.LevelHigh, got.OutcomeMeasurability)

	assert.Contains(t, out.String(), "1/2  What's your relationship maturity with this client?")
	assert.Contains(t, out.String(), "2/2  ")
	assert.NotContains(t, out.String(), "Can you clearly measure")
}

func TestRun_UnexpectedEOF(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field recommend.Field
	}{
		{"empty input", "", recommend.FieldOutcomeMeasurability},
		{"three answers", "1\n2\n3\n", recommend.FieldBudgetVisibility},
		{"seven answers", "1\n1\n1\n1\n1\n1\n1\n", recommend.FieldClientSophistication},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(strings.NewReader(tt.input), &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unexpected end of input")
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
			assert.ErrorIs(t, err, recommend.ErrInvalidInput)
			assert.Equal(t, recommend.AnswerSet{}, got)

			fields := recommend.InvalidFields(err)
			require.Len(t, fields, 1)
			assert.Equal(t, string(tt.field), fields[0].Field)
		})
	}
}

func TestComplete_UnexpectedEOF(t *testing.T) {
	partial := completeAnswers()
	partial.ScopeCertainty = ""
	partial.Timeline = ""

	_, err := Complete(strings.NewReader("clear\n"), &bytes.Buffer{}, partial)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "timeline: unanswered")
}

func TestRun_InvalidAnswer(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"out of range number", "4\n"},
		{"unknown value", "sometimes\n"},
		{"blank line", "\n1\n1\n1\n1\n1\n1\n1\n1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(strings.NewReader(tt.input), &bytes.Buffer{})
			require.Error(t, err)
			assert.ErrorIs(t, err, recommend.ErrInvalidInput)
			assert.NotErrorIs(t, err, io.ErrUnexpectedEOF)
			assert.Contains(t, err.Error(), "outcomeMeasurability: invalid value")
		})
	}
}
