package models

// Recipe represents a cooking recipe in the catalog
type Recipe struct {
	Name            string            `bson:"name" json:"name"`
	Ingredients     []IngredientEntry `bson:"ingredients" json:"ingredients"`
	PrepTime        int               `bson:"prep_time" json:"prep_time"` // in minutes
	CookTime        int               `bson:"cook_time" json:"cook_time"` // in minutes
	Directions      []Direction       `bson:"directions" json:"directions"`
	PendingQuantity int               `bson:"pending_quantity" json:"pending_quantity"` // batches queued for groceries
}

// IngredientEntry represents an ingredient requirement in a recipe.
// Entries keep their written order and are never merged by name.
type IngredientEntry struct {
	Amount int    `bson:"amount" json:"amount"`
	Name   string `bson:"name" json:"name"`
}

// Direction represents a numbered step of a recipe
type Direction struct {
	Step int    `bson:"step" json:"step"` // 1-based
	Text string `bson:"text" json:"text"`
}

// TotalTime returns prep plus cook time in minutes
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// Amount returns the amount of the first entry named ingredient
func (r *Recipe) Amount(ingredient string) (int, bool) {
	for _, ing := range r.Ingredients {
		if ing.Name == ingredient {
			return ing.Amount, true
		}
	}
	return 0, false
}

// Clone returns a deep copy
func (r *Recipe) Clone() *Recipe {
	c := *r
	c.Ingredients = append([]IngredientEntry(nil), r.Ingredients...)
	c.Directions = append([]Direction(nil), r.Directions...)
	return &c
}

// Catalog is the ordered, name-keyed recipe collection of a session
type Catalog struct {
	recipes []*Recipe
	index   map[string]int
}

// NewCatalog builds a catalog preserving the given order. Names must be unique.
func NewCatalog(recipes []*Recipe) (*Catalog, error) {
	c := &Catalog{
		recipes: make([]*Recipe, 0, len(recipes)),
		index:   make(map[string]int, len(recipes)),
	}
	for _, r := range recipes {
		if err := c.Add(r); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends a recipe; duplicate names are rejected
func (c *Catalog) Add(r *Recipe) error {
	if _, ok := c.index[r.Name]; ok {
		return &DuplicateKeyError{Collection: "recipe", Key: r.Name}
	}
	c.index[r.Name] = len(c.recipes)
	c.recipes = append(c.recipes, r)
	return nil
}

// Get returns the recipe with name, or nil
func (c *Catalog) Get(name string) *Recipe {
	i, ok := c.index[name]
	if !ok {
		return nil
	}
	return c.recipes[i]
}

// Recipes returns the recipes in catalog order. The slice is a copy; the
// recipes are shared.
func (c *Catalog) Recipes() []*Recipe {
	return append([]*Recipe(nil), c.recipes...)
}

// Len returns the number of recipes
func (c *Catalog) Len() int {
	return len(c.recipes)
}
