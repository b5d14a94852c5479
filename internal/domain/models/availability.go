package models

// AvailabilityResult summarizes how much of a recipe the inventory covers
type AvailabilityResult struct {
	RecipeName      string  `json:"recipe_name"`
	MissingCount    int     `json:"missing_count"`
	TotalCount      int     `json:"total_count"`
	MakableFraction float64 `json:"makable_fraction"`
}

// IsMakable reports whether every required unit is on hand
func (a AvailabilityResult) IsMakable() bool {
	return a.MakableFraction == 1.0
}

// IngredientStatus describes one recipe entry against the inventory
type IngredientStatus struct {
	Amount  int    `json:"amount"`
	Name    string `json:"name"`
	InStock bool   `json:"in_stock"` // a stocked item with this name exists
	Enough  bool   `json:"enough"`   // stock covers the amount
	Missing int    `json:"missing"`
}

// DemandEntry is one line of a consolidated demand
type DemandEntry struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// ConsolidatedDemand maps ingredient names to summed amounts, iterating in
// first-seen order
type ConsolidatedDemand struct {
	order   []string
	amounts map[string]int
}

// NewConsolidatedDemand returns an empty demand
func NewConsolidatedDemand() *ConsolidatedDemand {
	return &ConsolidatedDemand{amounts: make(map[string]int)}
}

// Add sums amount into name, appending name if unseen. Totals saturate at
// math.MaxInt.
func (d *ConsolidatedDemand) Add(name string, amount int) {
	if _, ok := d.amounts[name]; !ok {
		d.order = append(d.order, name)
	}
	d.amounts[name] = AddQuantity(d.amounts[name], amount)
}

// Amount returns the summed amount for name
func (d *ConsolidatedDemand) Amount(name string) (int, bool) {
	a, ok := d.amounts[name]
	return a, ok
}

// Entries returns the demand in iteration order
func (d *ConsolidatedDemand) Entries() []DemandEntry {
	out := make([]DemandEntry, len(d.order))
	for i, name := range d.order {
		out[i] = DemandEntry{Name: name, Amount: d.amounts[name]}
	}
	return out
}

// Len returns the number of distinct ingredients
func (d *ConsolidatedDemand) Len() int {
	return len(d.order)
}
