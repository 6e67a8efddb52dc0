package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/presenter"
	"github.com/Veraticus/biblio/internal/testutil"
	"github.com/Veraticus/biblio/internal/workflow"
)

type fixedClassifier struct {
	result model.ClassificationResult
}

func (f fixedClassifier) Classify(context.Context, string, string) (model.ClassificationResult, error) {
	return f.result, nil
}

type unusedSuggester struct{}

func (unusedSuggester) Suggest(context.Context, string) (model.SuggestionResult, error) {
	return model.SuggestionResult{}, nil
}

func newSessionController(t *testing.T, out *bytes.Buffer, category model.Category) *workflow.Controller {
	t.Helper()

	opts := workflow.DefaultOptions()
	opts.Classifier = fixedClassifier{result: model.ClassificationResult{Category: category, ConfidenceScore: 0.7}}
	opts.Suggester = unusedSuggester{}
	opts.Renderer = NewRenderer(out)
	opts.Clock = testutil.NewFakeClock()

	c, err := workflow.NewController(opts)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestSession_Run(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		displayed model.Category
		want      []string
	}{
		{
			name:      "confirm",
			input:     "oui\n",
			displayed: model.CategoryRomance,
		},
		{
			name:      "invalid answers then confirm",
			input:     "peut-être\n\nY\n",
			displayed: model.CategoryRomance,
			want:      []string{`Veuillez répondre par "Oui" ou "Non".`},
		},
		{
			name:      "correct by number",
			input:     "non\n5\n",
			displayed: model.CategoryHistoire,
			want:      []string{"Merci ! La catégorie a été corrigée à Histoire."},
		},
		{
			name:      "empty selection then name",
			input:     "n\n\nThriller\n",
			displayed: model.CategoryThriller,
			want:      []string{"Veuillez choisir une catégorie.", "corrigée à Thriller"},
		},
		{
			name:      "out of range number is a name",
			input:     "non\n42\n",
			displayed: "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := newSessionController(t, &out, model.CategoryRomance)
			ctx := context.Background()

			require.NoError(t, c.Predict(ctx, "Orgueil et Préjugés", "Une histoire d'amour."))

			session := NewSession(NewNonBlockingReader(strings.NewReader(tt.input)), &out)
			require.NoError(t, session.Run(ctx, c))

			_, open := c.Correction()
			assert.False(t, open)
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
			if tt.displayed != model.CategoryRomance {
				assert.Contains(t, out.String(), "Catégorie : "+presenter.Icon(tt.displayed)+" "+string(tt.displayed))
			}
		})
	}
}

func TestSession_InputEnds(t *testing.T) {
	var out bytes.Buffer
	c := newSessionController(t, &out, model.CategoryFantasy)
	ctx := context.Background()

	require.NoError(t, c.Predict(ctx, "Le Hobbit", "Un dragon garde un trésor."))

	session := NewSession(NewNonBlockingReader(strings.NewReader("peut-être\n")), &out)
	err := session.Run(ctx, c)
	assert.ErrorIs(t, err, ErrInputTerminated)

	snap, open := c.Correction()
	require.True(t, open)
	assert.Equal(t, 1, snap.Reprompts)
}

func TestSession_NothingToConfirm(t *testing.T) {
	var out bytes.Buffer
	c := newSessionController(t, &out, model.CategoryFantasy)

	session := NewSession(NewNonBlockingReader(strings.NewReader("")), &out)
	assert.NoError(t, session.Run(context.Background(), c))
}
