package app

import (
	"github.com/gin-gonic/gin"
)

// ==================== Grocery and inventory handlers ====================

// ReleaseRequest takes batches of a recipe back off the grocery list
type ReleaseRequest struct {
	Recipe  string `json:"recipe" binding:"required"`
	Batches int    `json:"batches"`
}

func (a *Application) commitGroceries(c *gin.Context) {
	result, err := a.kitchen.Commit(c.Request.Context())
	if err != nil {
		a.handleError(c, err)
		return
	}

	successResponse(c, result)
}

func (a *Application) shoppingList(c *gin.Context) {
	items := a.kitchen.ShoppingList()
	listResponse(c, items, len(items))
}

func (a *Application) releaseGroceries(c *gin.Context) {
	var req ReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Batches == 0 {
		req.Batches = 1
	}

	updates, err := a.kitchen.Release(c.Request.Context(), req.Recipe, req.Batches)
	if err != nil {
		a.handleError(c, err)
		return
	}

	successResponse(c, gin.H{
		"recipe":  req.Recipe,
		"batches": req.Batches,
		"updates": updates,
	})
}

func (a *Application) listInventory(c *gin.Context) {
	items := a.kitchen.InventoryItems()
	listResponse(c, items, len(items))
}

func (a *Application) getInventoryItem(c *gin.Context) {
	item, err := a.kitchen.InventoryItem(c.Param("food"))
	if err != nil {
		a.handleError(c, err)
		return
	}

	successResponse(c, item)
}
