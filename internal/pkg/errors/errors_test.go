package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("load recipes: %w", MalformedIngredient("Soup", "two carrot"))

	assert.True(t, HasCode(err, ErrMalformedIngredient))
	assert.False(t, HasCode(err, ErrMalformedDirection))
	assert.False(t, HasCode(stderrors.New("plain"), ErrMalformedIngredient))
}

func TestIsMatchesOnCode(t *testing.T) {
	err := fmt.Errorf("set pending: %w", InvalidQuantity("-1"))

	assert.ErrorIs(t, err, InvalidQuantity("anything"))
	assert.NotErrorIs(t, err, UnknownRecipe("Soup"))
}

func TestFromError(t *testing.T) {
	apiErr := FromError(fmt.Errorf("wrapped: %w", UnknownRecipe("Soup")))
	assert.Equal(t, ErrUnknownRecipe, apiErr.Code)
	assert.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)

	apiErr = FromError(stderrors.New("disk on fire"))
	assert.Equal(t, ErrInternal, apiErr.Code)
	assert.Equal(t, http.StatusInternalServerError, apiErr.HTTPStatus)
}

func TestMalformedCarriesDetails(t *testing.T) {
	err := MalformedDirection("Soup", "")
	details, ok := err.Details.(MalformedDetails)
	assert.True(t, ok)
	assert.Equal(t, "Soup", details.Recipe)
	assert.Equal(t, "", details.Item)
}
