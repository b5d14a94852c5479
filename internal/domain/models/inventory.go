package models

import "fmt"

// InventoryItem represents one food in the grocery/inventory ledger
type InventoryItem struct {
	FoodName   string `bson:"food" json:"food"`
	FoodType   string `bson:"food_type" json:"food_type"`
	IsStocked  bool   `bson:"is_stocked" json:"is_stocked"`
	IsLow      bool   `bson:"is_low" json:"is_low"`
	NeedToBuy  bool   `bson:"need_to_buy" json:"need_to_buy"`
	StockedNum int    `bson:"stocked_num" json:"stocked_num"` // meaningful only when IsStocked
	BuyNum     int    `bson:"buy_num" json:"buy_num"`         // meaningful only when NeedToBuy
	InCart     bool   `bson:"in_cart" json:"in_cart"`
}

// OnHand returns the usable stocked quantity
func (i *InventoryItem) OnHand() int {
	if !i.IsStocked {
		return 0
	}
	return max(i.StockedNum, 0)
}

// Inventory is the ordered, name-keyed ledger of a session
type Inventory struct {
	items []*InventoryItem
	index map[string]int
}

// NewInventory builds an inventory preserving the given order. Food names must be unique.
func NewInventory(items []*InventoryItem) (*Inventory, error) {
	inv := &Inventory{
		items: make([]*InventoryItem, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, item := range items {
		if err := inv.Add(item); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

// Add appends an item; duplicate food names are rejected
func (inv *Inventory) Add(item *InventoryItem) error {
	if _, ok := inv.index[item.FoodName]; ok {
		return &DuplicateKeyError{Collection: "inventory item", Key: item.FoodName}
	}
	inv.index[item.FoodName] = len(inv.items)
	inv.items = append(inv.items, item)
	return nil
}

// Get returns the item for food, or nil
func (inv *Inventory) Get(food string) *InventoryItem {
	i, ok := inv.index[food]
	if !ok {
		return nil
	}
	return inv.items[i]
}

// Items returns the items in ledger order. The slice is a copy; the items are shared.
func (inv *Inventory) Items() []*InventoryItem {
	return append([]*InventoryItem(nil), inv.items...)
}

// Len returns the number of items
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// DuplicateKeyError is returned when a collection receives a second record with the same key
type DuplicateKeyError struct {
	Collection string
	Key        string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s %q", e.Collection, e.Key)
}
