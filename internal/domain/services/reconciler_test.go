package services

import (
	"testing"

	"github.com/ak/larder/internal/domain/models"
	"github.com/ak/larder/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReconciler() *Reconciler {
	return NewReconciler("uncategorized", logger.NewNop())
}

func demandOf(entries ...models.DemandEntry) *models.ConsolidatedDemand {
	d := models.NewConsolidatedDemand()
	for _, e := range entries {
		d.Add(e.Name, e.Amount)
	}
	return d
}

func TestReconcileSoupCommit(t *testing.T) {
	inv := newInventory(t, stocked("carrot", 1))
	soup := soupRecipe()
	demand := Consolidate([]Selection{{Recipe: soup, Multiplier: 2}})

	updates := newTestReconciler().Reconcile(demand, inv)
	require.Len(t, updates, 2)

	assert.Equal(t, GroceryUpdate{FoodName: "carrot", Rule: RuleStockedShortfall, Demand: 4, BuyIncrement: 3, BuyNum: 3}, updates[0])
	assert.Equal(t, GroceryUpdate{FoodName: "salt", Rule: RuleCreated, Demand: 2, BuyIncrement: 2, Created: true, BuyNum: 2}, updates[1])

	carrot := inv.Get("carrot")
	assert.True(t, carrot.NeedToBuy)
	assert.Equal(t, 3, carrot.BuyNum)
	assert.True(t, carrot.IsStocked)
	assert.Equal(t, 1, carrot.StockedNum)

	salt := inv.Get("salt")
	require.NotNil(t, salt)
	assert.Equal(t, models.InventoryItem{FoodName: "salt", FoodType: "uncategorized", NeedToBuy: true, BuyNum: 2}, *salt)
	assert.Equal(t, 2, inv.Len())
}

func TestReconcileStockedSufficientIsNoop(t *testing.T) {
	inv := newInventory(t, stocked("carrot", 5))
	before := *inv.Get("carrot")

	updates := newTestReconciler().Reconcile(demandOf(models.DemandEntry{Name: "carrot", Amount: 5}), inv)

	require.Len(t, updates, 1)
	assert.Equal(t, RuleStockedSufficient, updates[0].Rule)
	assert.Zero(t, updates[0].BuyIncrement)
	assert.Equal(t, before, *inv.Get("carrot"))
}

func TestReconcileAlreadyQueuedOverwritesIncrement(t *testing.T) {
	queued := &models.InventoryItem{FoodName: "milk", NeedToBuy: true, BuyNum: 4}
	inv := newInventory(t, queued)

	updates := newTestReconciler().Reconcile(demandOf(models.DemandEntry{Name: "milk", Amount: 2}), inv)

	require.Len(t, updates, 1)
	assert.Equal(t, RuleAlreadyQueued, updates[0].Rule)
	assert.Equal(t, 2, updates[0].BuyIncrement)
	assert.Equal(t, 6, inv.Get("milk").BuyNum)
}

func TestReconcileRequeuesUnstockedItem(t *testing.T) {
	item := &models.InventoryItem{FoodName: "flour", FoodType: "baking"}
	inv := newInventory(t, item)

	updates := newTestReconciler().Reconcile(demandOf(models.DemandEntry{Name: "flour", Amount: 3}), inv)

	require.Len(t, updates, 1)
	assert.Equal(t, RuleRequeued, updates[0].Rule)
	assert.True(t, inv.Get("flour").NeedToBuy)
	assert.Equal(t, 3, inv.Get("flour").BuyNum)
	assert.Equal(t, "baking", inv.Get("flour").FoodType)
}

func TestReconcileAccumulatesAcrossPasses(t *testing.T) {
	inv := newInventory(t)
	r := newTestReconciler()

	r.Reconcile(demandOf(models.DemandEntry{Name: "egg", Amount: 2}), inv)
	updates := r.Reconcile(demandOf(models.DemandEntry{Name: "egg", Amount: 3}), inv)

	assert.Equal(t, RuleAlreadyQueued, updates[0].Rule)
	assert.Equal(t, 5, inv.Get("egg").BuyNum)
	assert.Equal(t, 1, inv.Len())
}

func TestReleaseReducesQueuedItems(t *testing.T) {
	inv := newInventory(t,
		&models.InventoryItem{FoodName: "carrot", NeedToBuy: true, BuyNum: 5},
		&models.InventoryItem{FoodName: "salt", NeedToBuy: true, BuyNum: 1},
	)
	updates := newTestReconciler().Release(Consolidate([]Selection{{Recipe: soupRecipe(), Multiplier: 2}}), inv)

	require.Len(t, updates, 2)
	assert.Equal(t, RuleReleased, updates[0].Rule)
	assert.Equal(t, -4, updates[0].BuyIncrement)
	assert.Equal(t, 1, inv.Get("carrot").BuyNum)
	assert.True(t, inv.Get("carrot").NeedToBuy)

	assert.Equal(t, RuleReleased, updates[1].Rule)
	assert.Equal(t, 2, updates[1].Demand)
	assert.Equal(t, -1, updates[1].BuyIncrement, "only the queued unit is released")
	assert.Zero(t, updates[1].BuyNum)
	assert.Zero(t, inv.Get("salt").BuyNum)
	assert.False(t, inv.Get("salt").NeedToBuy)
}

func TestReleaseSkipsStockedAndAbsentItems(t *testing.T) {
	carrot := stocked("carrot", 1)
	carrot.NeedToBuy = true
	carrot.BuyNum = 3
	inv := newInventory(t, carrot)

	updates := newTestReconciler().Release(Consolidate([]Selection{{Recipe: soupRecipe(), Multiplier: 1}}), inv)

	require.Len(t, updates, 2)
	assert.Equal(t, RuleSkipped, updates[0].Rule)
	assert.Equal(t, 3, inv.Get("carrot").BuyNum)
	assert.Equal(t, RuleSkipped, updates[1].Rule)
	assert.Nil(t, inv.Get("salt"))
}
