package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Category
	}{
		{name: "canonical", input: "Romance", want: CategoryRomance},
		{name: "surrounding spaces", input: "  Thriller \n", want: CategoryThriller},
		{name: "decomposed accents", input: "Littérature Générale", want: CategoryLitterature},
		{name: "unknown kept verbatim", input: "Poésie", want: Category("Poésie")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.input))
		})
	}
}

func TestCategory_IsKnown(t *testing.T) {
	for _, c := range KnownCategories() {
		assert.True(t, c.IsKnown(), c)
	}
	assert.False(t, Category("Cuisine").IsKnown())
	assert.False(t, Category("").IsKnown())
}

func TestKnownCategories_ReturnsCopy(t *testing.T) {
	cats := KnownCategories()
	cats[0] = "mutated"
	assert.Equal(t, CategoryScienceFiction, KnownCategories()[0])
}
