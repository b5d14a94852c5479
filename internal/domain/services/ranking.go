package services

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ak/larder/internal/domain/models"
	apperrors "github.com/ak/larder/internal/pkg/errors"
)

// SortCriteria selects a catalog ordering
type SortCriteria string

const (
	SortByMakable   SortCriteria = "makable"
	SortByName      SortCriteria = "name"
	SortByTotalTime SortCriteria = "total_time"
)

// ParseSortCriteria accepts the criteria names used by the CLI and API.
// An empty string selects the makable ordering.
func ParseSortCriteria(s string) (SortCriteria, error) {
	switch c := SortCriteria(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return SortByMakable, nil
	case SortByMakable, SortByName, SortByTotalTime:
		return c, nil
	default:
		return "", apperrors.InvalidInput("unknown sort criteria " + s + " (want makable, name or total_time)")
	}
}

// SortRecipes returns a reordered copy of recipes. Every ordering is stable.
func SortRecipes(recipes []*models.Recipe, by SortCriteria, ev *Evaluator) []*models.Recipe {
	switch by {
	case SortByName:
		return sortStable(recipes, func(a, b *models.Recipe) int {
			return strings.Compare(a.Name, b.Name)
		})
	case SortByTotalTime:
		return sortStable(recipes, func(a, b *models.Recipe) int {
			return cmp.Compare(a.TotalTime(), b.TotalTime())
		})
	default:
		return RankByMakable(recipes, ev)
	}
}

// RankByMakable orders recipes by ascending total missing, then descending
// makable fraction; remaining ties keep their input order.
func RankByMakable(recipes []*models.Recipe, ev *Evaluator) []*models.Recipe {
	type ranked struct {
		recipe *models.Recipe
		result models.AvailabilityResult
	}

	rows := make([]ranked, len(recipes))
	for i, r := range recipes {
		rows[i] = ranked{recipe: r, result: ev.Evaluate(r)}
	}

	slices.SortStableFunc(rows, func(a, b ranked) int {
		if c := cmp.Compare(a.result.MissingCount, b.result.MissingCount); c != 0 {
			return c
		}
		return cmp.Compare(b.result.MakableFraction, a.result.MakableFraction)
	})

	out := make([]*models.Recipe, len(rows))
	for i, row := range rows {
		out[i] = row.recipe
	}
	return out
}

func sortStable(recipes []*models.Recipe, cmpFn func(a, b *models.Recipe) int) []*models.Recipe {
	out := slices.Clone(recipes)
	slices.SortStableFunc(out, cmpFn)
	return out
}
