package app

import (
	"encoding/json"

	"github.com/ak/larder/internal/domain/services"
	"github.com/gin-gonic/gin"
)

// ==================== Recipe handlers ====================

// PendingRequest sets a recipe's pending quantity. Quantity may be a JSON
// number or a string; either way it must read as a non-negative integer.
type PendingRequest struct {
	Quantity json.RawMessage `json:"quantity" binding:"required"`
}

// text returns the quantity as the user wrote it
func (r PendingRequest) text() string {
	var s string
	if err := json.Unmarshal(r.Quantity, &s); err == nil {
		return s
	}
	return string(r.Quantity)
}

func (a *Application) listRecipes(c *gin.Context) {
	by, err := services.ParseSortCriteria(c.Query("sort"))
	if err != nil {
		a.handleError(c, err)
		return
	}

	entries := a.kitchen.ListView(by)
	listResponse(c, entries, len(entries))
}

func (a *Application) createRecipe(c *gin.Context) {
	var req services.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	recipe, err := a.kitchen.CreateRecipe(c.Request.Context(), req)
	if err != nil {
		a.handleError(c, err)
		return
	}

	createdResponse(c, recipe)
}

func (a *Application) listMakeable(c *gin.Context) {
	names := a.kitchen.FindMakeable()
	listResponse(c, names, len(names))
}

func (a *Application) getRecipe(c *gin.Context) {
	detail, err := a.kitchen.DetailView(c.Param("name"))
	if err != nil {
		a.handleError(c, err)
		return
	}

	successResponse(c, detail)
}

func (a *Application) getAvailability(c *gin.Context) {
	successResponse(c, a.kitchen.Availability(c.Param("name")))
}

func (a *Application) setPending(c *gin.Context) {
	var req PendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	name := c.Param("name")
	if err := a.kitchen.SetPendingQuantityText(name, req.text()); err != nil {
		a.handleError(c, err)
		return
	}

	a.pendingResponse(c, name)
}

func (a *Application) clearPending(c *gin.Context) {
	name := c.Param("name")
	if err := a.kitchen.ClearPending(name); err != nil {
		a.handleError(c, err)
		return
	}

	a.pendingResponse(c, name)
}

func (a *Application) pendingResponse(c *gin.Context, name string) {
	detail, err := a.kitchen.DetailView(name)
	if err != nil {
		a.handleError(c, err)
		return
	}
	successResponse(c, gin.H{
		"name":             detail.Name,
		"pending_quantity": detail.PendingQuantity,
	})
}
