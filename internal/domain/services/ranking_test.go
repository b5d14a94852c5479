package services

import (
	"testing"

	"github.com/ak/larder/internal/domain/models"
	apperrors "github.com/ak/larder/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipeNeeding(name string, amounts map[string]int, order ...string) *models.Recipe {
	r := &models.Recipe{Name: name}
	for _, ing := range order {
		r.Ingredients = append(r.Ingredients, models.IngredientEntry{Amount: amounts[ing], Name: ing})
	}
	return r
}

func TestRankByMakableOrdersByMissingThenFraction(t *testing.T) {
	ev := NewEvaluator(newInventory(t, stocked("a", 1), stocked("b", 4)))

	// missing 2, fraction 1/3
	r1 := recipeNeeding("r1", map[string]int{"a": 3}, "a")
	// missing 0, fraction 1
	r2 := recipeNeeding("r2", map[string]int{"a": 1}, "a")
	// missing 2, fraction 4/6
	r3 := recipeNeeding("r3", map[string]int{"b": 4, "c": 2}, "b", "c")
	// missing 1, fraction 0
	r4 := recipeNeeding("r4", map[string]int{"c": 1}, "c")

	got := RankByMakable([]*models.Recipe{r1, r2, r3, r4}, ev)
	assert.Equal(t, []string{"r2", "r4", "r3", "r1"}, names(got))
}

func TestRankByMakableIsStable(t *testing.T) {
	ev := NewEvaluator(newInventory(t))
	in := []*models.Recipe{
		recipeNeeding("first", map[string]int{"x": 1}, "x"),
		recipeNeeding("second", map[string]int{"y": 1}, "y"),
		recipeNeeding("third", map[string]int{"z": 1}, "z"),
	}

	got := RankByMakable(in, ev)
	assert.Equal(t, []string{"first", "second", "third"}, names(got))
	// input untouched
	assert.Equal(t, []string{"first", "second", "third"}, names(in))
}

func TestRankByMakableEmptyRecipeSortsBelowFullyMakable(t *testing.T) {
	ev := NewEvaluator(newInventory(t, stocked("a", 1)))
	empty := &models.Recipe{Name: "empty"}
	full := recipeNeeding("full", map[string]int{"a": 1}, "a")

	got := RankByMakable([]*models.Recipe{empty, full}, ev)
	assert.Equal(t, []string{"full", "empty"}, names(got))
}

func TestSortRecipesByNameAndTime(t *testing.T) {
	ev := NewEvaluator(newInventory(t))
	in := []*models.Recipe{
		{Name: "b", PrepTime: 5, CookTime: 5},
		{Name: "a", PrepTime: 20},
		{Name: "c", CookTime: 10},
	}

	assert.Equal(t, []string{"a", "b", "c"}, names(SortRecipes(in, SortByName, ev)))
	assert.Equal(t, []string{"b", "c", "a"}, names(SortRecipes(in, SortByTotalTime, ev)))
}

func TestParseSortCriteria(t *testing.T) {
	tests := []struct {
		in   string
		want SortCriteria
	}{
		{"", SortByMakable},
		{"makable", SortByMakable},
		{"Name", SortByName},
		{" total_time ", SortByTotalTime},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortCriteria(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSortCriteria("calories")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidInput))
}
