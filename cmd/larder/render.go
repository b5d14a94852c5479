package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/ak/larder/internal/domain/models"
	"github.com/ak/larder/internal/domain/services"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// percent truncates, so only a fully makable recipe shows 100%
func percent(f float64) string {
	return strconv.Itoa(int(math.Floor(f*100+1e-9))) + "%"
}

func renderRecipeList(w io.Writer, entries []services.RecipeListEntry) {
	t := newTable("Recipe", "Pending", "Makable", "Missing", "Have", "Time")
	for _, e := range entries {
		t.Row(e.Name, strconv.Itoa(e.PendingQuantity), yesNo(e.IsMakable),
			strconv.Itoa(e.MissingCount), percent(e.MakableFraction), fmt.Sprintf("%d min", e.TotalTime))
	}
	fmt.Fprintln(w, t)
}

func renderNames(w io.Writer, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(w, "nothing can be made from stock")
		return
	}
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

func renderRecipeDetail(w io.Writer, d *services.RecipeDetail) {
	fmt.Fprintln(w, titleStyle.Render(d.Name))
	fmt.Fprintf(w, "prep %d min, cook %d min, pending %d, have %s\n\n",
		d.PrepTime, d.CookTime, d.PendingQuantity, percent(d.Availability.MakableFraction))

	t := newTable("Amount", "Ingredient", "In stock", "Enough", "Missing")
	for _, s := range d.Ingredients {
		t.Row(strconv.Itoa(s.Amount), s.Name, yesNo(s.InStock), yesNo(s.Enough), strconv.Itoa(s.Missing))
	}
	fmt.Fprintln(w, t)

	for _, step := range d.Directions {
		fmt.Fprintf(w, "%d. %s\n", step.Step, step.Text)
	}
}

func renderCommit(w io.Writer, result *services.CommitResult) {
	if len(result.Recipes) == 0 {
		fmt.Fprintln(w, "no recipes pending")
		return
	}
	fmt.Fprintf(w, "committed %d recipe(s)\n", len(result.Recipes))
	renderUpdates(w, result.Updates)
}

func renderUpdates(w io.Writer, updates []services.GroceryUpdate) {
	t := newTable("Food", "Rule", "Demand", "Change", "To buy")
	for _, u := range updates {
		t.Row(u.FoodName, string(u.Rule), strconv.Itoa(u.Demand),
			fmt.Sprintf("%+d", u.BuyIncrement), strconv.Itoa(u.BuyNum))
	}
	fmt.Fprintln(w, t)
}

func renderShoppingList(w io.Writer, items []models.InventoryItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "grocery list is empty")
		return
	}
	t := newTable("Food", "Type", "Buy", "In cart")
	for _, item := range items {
		t.Row(item.FoodName, item.FoodType, strconv.Itoa(item.BuyNum), yesNo(item.InCart))
	}
	fmt.Fprintln(w, t)
}

func renderInventory(w io.Writer, items []models.InventoryItem) {
	t := newTable("Food", "Type", "Stocked", "Low", "Have", "Need to buy", "Buy", "In cart")
	for _, item := range items {
		t.Row(item.FoodName, item.FoodType, yesNo(item.IsStocked), yesNo(item.IsLow),
			strconv.Itoa(item.StockedNum), yesNo(item.NeedToBuy), strconv.Itoa(item.BuyNum), yesNo(item.InCart))
	}
	fmt.Fprintln(w, t)
}
