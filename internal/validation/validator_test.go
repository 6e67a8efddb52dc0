package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		wantErr     error
		name        string
		title       string
		description string
	}{
		{name: "both empty", wantErr: ErrMissingInput},
		{name: "both whitespace", title: "   ", description: "\t\n ", wantErr: ErrMissingInput},
		{name: "short title only", title: "Dune", wantErr: ErrTooShort},
		{name: "short description only", description: "space", wantErr: ErrTooShort},
		{name: "short title and description", title: "Abc", description: "short", wantErr: ErrTooShort},
		{name: "title at minimum", title: "Sapiens"},
		{name: "title exactly five", title: "Abcde"},
		{name: "description exactly ten", description: "0123456789"},
		{name: "long description short title", title: "X", description: "A long enough description"},
		{name: "padded short description", description: "   court    ", wantErr: ErrTooShort},
		{name: "accented characters count once", title: "Étéçà"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.title, tt.description)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.NotEmpty(t, vErr.Message)
		})
	}
}

func TestValidate_Properties(t *testing.T) {
	descriptions := []string{"", "a", "short", strings.Repeat("d", 9), strings.Repeat("d", 10), strings.Repeat("d", 200)}
	titles := []string{"", "a", "abcd", "abcde", strings.Repeat("t", 60)}

	for _, title := range titles {
		for _, description := range descriptions {
			err := Validate(title, description)

			if title == "" && description == "" {
				assert.ErrorIs(t, err, ErrMissingInput)
			}
			if len(description) >= MinDescriptionLength {
				assert.NoError(t, err, "description %q must be enough on its own", description)
			}
			if len(title) >= MinTitleLength {
				assert.NoError(t, err, "title %q must be enough on its own", title)
			}
		}
	}
}

func TestValidateDescription(t *testing.T) {
	assert.ErrorIs(t, ValidateDescription("  "), ErrMissingInput)
	assert.ErrorIs(t, ValidateDescription("trop court"[:5]), ErrTooShort)
	assert.NoError(t, ValidateDescription("un dragon dans un royaume"))
}
