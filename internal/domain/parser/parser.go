// Package parser turns the comma-delimited ingredient and direction fields of
// a recipe record into structured entries, and renders them back.
package parser

import (
	"strconv"
	"strings"

	"github.com/ak/larder/internal/domain/models"
	apperrors "github.com/ak/larder/internal/pkg/errors"
)

const (
	itemSeparator = ","
	joinSeparator = ", "
)

// ParseIngredients parses a field such as " 2 carrot, 1 sea salt".
// Each item loses at most one leading space, then splits at its first space
// into an amount (digits only, at most models.MaxAmount) and a name kept
// verbatim.
func ParseIngredients(recipe, field string) ([]models.IngredientEntry, error) {
	if strings.TrimSpace(field) == "" {
		return []models.IngredientEntry{}, nil
	}

	items := strings.Split(field, itemSeparator)
	entries := make([]models.IngredientEntry, 0, len(items))
	for _, raw := range items {
		item := strings.TrimPrefix(raw, " ")

		amountText, name, ok := strings.Cut(item, " ")
		if !ok || name == "" {
			return nil, apperrors.MalformedIngredient(recipe, raw)
		}
		amount, ok := parseAmount(amountText, models.MaxAmount)
		if !ok {
			return nil, apperrors.MalformedIngredient(recipe, raw)
		}

		entries = append(entries, models.IngredientEntry{Amount: amount, Name: name})
	}
	return entries, nil
}

// ParseDirections parses a field such as "chop, boil" into numbered steps
func ParseDirections(recipe, field string) ([]models.Direction, error) {
	if strings.TrimSpace(field) == "" {
		return []models.Direction{}, nil
	}

	items := strings.Split(field, itemSeparator)
	steps := make([]models.Direction, 0, len(items))
	for i, raw := range items {
		text := strings.TrimPrefix(raw, " ")
		if text == "" {
			return nil, apperrors.MalformedDirection(recipe, raw)
		}
		steps = append(steps, models.Direction{Step: i + 1, Text: text})
	}
	return steps, nil
}

// FormatIngredients renders entries in the form ParseIngredients reads
func FormatIngredients(entries []models.IngredientEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = strconv.Itoa(e.Amount) + " " + e.Name
	}
	return strings.Join(parts, joinSeparator)
}

// FormatDirections renders steps in the form ParseDirections reads
func FormatDirections(steps []models.Direction) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.Text
	}
	return strings.Join(parts, joinSeparator)
}

// ParseQuantity validates user-entered batch counts
func ParseQuantity(raw string) (int, error) {
	n, ok := parseAmount(strings.TrimSpace(raw), models.MaxPendingQuantity)
	if !ok {
		return 0, apperrors.InvalidQuantity(raw)
	}
	return n, nil
}

// parseAmount accepts unsigned decimal integers no larger than limit;
// strconv.Atoi alone would let "+2" and "-0" through.
func parseAmount(s string, limit int) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > limit {
		return 0, false
	}
	return n, true
}
