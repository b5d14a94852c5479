package services

import (
	"github.com/ak/larder/internal/domain/models"
	"github.com/ak/larder/internal/pkg/logger"
	"go.uber.org/zap"
)

// ReconcileRule names the branch a demand entry took
type ReconcileRule string

const (
	RuleStockedShortfall  ReconcileRule = "stocked_shortfall"  // stocked, but not enough
	RuleStockedSufficient ReconcileRule = "stocked_sufficient" // stocked and enough; nothing queued
	RuleAlreadyQueued     ReconcileRule = "already_queued"     // not stocked, already on the list
	RuleRequeued          ReconcileRule = "requeued"           // not stocked, not on the list
	RuleCreated           ReconcileRule = "created"            // not in the ledger at all

	RuleReleased ReconcileRule = "released" // queued amount reduced by Release
	RuleSkipped  ReconcileRule = "skipped"  // Release found nothing queued to reduce
)

// GroceryUpdate records what reconciliation did to one ingredient
type GroceryUpdate struct {
	FoodName     string        `json:"food"`
	Rule         ReconcileRule `json:"rule"`
	Demand       int           `json:"demand"`
	BuyIncrement int           `json:"buy_increment"`
	Created      bool          `json:"created"`
	BuyNum       int           `json:"buy_num"` // after the pass
}

// Reconciler applies ingredient demand to the grocery ledger
type Reconciler struct {
	defaultFoodType string
	logger          *logger.Logger
}

// NewReconciler creates a reconciler. New ledger items get defaultFoodType.
func NewReconciler(defaultFoodType string, log *logger.Logger) *Reconciler {
	return &Reconciler{
		defaultFoodType: defaultFoodType,
		logger:          log.WithComponent("reconciler"),
	}
}

// Reconcile walks demand in order, applying exactly one rule per ingredient,
// then adds each recorded increment to the item's buy_num. Increments recorded
// within a pass overwrite each other; buy_num accumulates across passes.
func (r *Reconciler) Reconcile(demand *models.ConsolidatedDemand, inv *models.Inventory) []GroceryUpdate {
	entries := demand.Entries()
	updates := make([]GroceryUpdate, 0, len(entries))
	increments := make(map[string]int, len(entries))

	for _, entry := range entries {
		update := GroceryUpdate{FoodName: entry.Name, Demand: entry.Amount}
		item := inv.Get(entry.Name)

		switch {
		case item != nil && item.IsStocked:
			if stock := item.OnHand(); entry.Amount > stock {
				item.NeedToBuy = true
				increments[entry.Name] = entry.Amount - stock
				update.Rule = RuleStockedShortfall
			} else {
				update.Rule = RuleStockedSufficient
			}
		case item != nil && item.NeedToBuy:
			increments[entry.Name] = entry.Amount
			update.Rule = RuleAlreadyQueued
		case item != nil:
			item.NeedToBuy = true
			increments[entry.Name] = entry.Amount
			update.Rule = RuleRequeued
		default:
			item = &models.InventoryItem{
				FoodName:   entry.Name,
				FoodType:   r.defaultFoodType,
				IsStocked:  false,
				NeedToBuy:  true,
				InCart:     false,
				StockedNum: 0,
			}
			// entry names are unique within a consolidated demand
			_ = inv.Add(item)
			increments[entry.Name] = entry.Amount
			update.Rule = RuleCreated
			update.Created = true
		}

		updates = append(updates, update)
	}

	for i := range updates {
		u := &updates[i]
		item := inv.Get(u.FoodName)
		u.BuyIncrement = increments[u.FoodName]
		item.BuyNum = models.AddQuantity(max(item.BuyNum, 0), u.BuyIncrement)
		u.BuyNum = item.BuyNum

		r.logger.Debug("Reconciled ingredient",
			zap.String("food", u.FoodName),
			zap.String("rule", string(u.Rule)),
			zap.Int("demand", u.Demand),
			zap.Int("buy_increment", u.BuyIncrement),
			zap.Int("buy_num", u.BuyNum),
		)
	}

	return updates
}

// Release takes demand back off the grocery list. Only items that exist, are
// not stocked and are queued are touched; their buy_num drops by the demand
// and they leave the list once it reaches zero.
func (r *Reconciler) Release(demand *models.ConsolidatedDemand, inv *models.Inventory) []GroceryUpdate {
	entries := demand.Entries()
	updates := make([]GroceryUpdate, 0, len(entries))

	for _, entry := range entries {
		update := GroceryUpdate{FoodName: entry.Name, Demand: entry.Amount, Rule: RuleSkipped}
		item := inv.Get(entry.Name)

		if item != nil && !item.IsStocked && item.NeedToBuy {
			before := max(item.BuyNum, 0)
			item.BuyNum = max(before-entry.Amount, 0)
			if item.BuyNum == 0 {
				item.NeedToBuy = false
			}
			update.Rule = RuleReleased
			update.BuyIncrement = item.BuyNum - before
		}
		if item != nil {
			update.BuyNum = item.BuyNum
		}

		r.logger.Debug("Released ingredient",
			zap.String("food", update.FoodName),
			zap.String("rule", string(update.Rule)),
			zap.Int("buy_num", update.BuyNum),
		)
		updates = append(updates, update)
	}

	return updates
}
