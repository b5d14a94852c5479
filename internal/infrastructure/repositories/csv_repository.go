package repositories

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ak/larder/internal/domain/models"
	"github.com/ak/larder/internal/domain/parser"
	"github.com/ak/larder/internal/domain/repositories"
)

var (
	recipeColumns    = []string{"name", "ingredients", "prep_time", "cook_time", "directions", "pending_quantity"}
	groceriesColumns = []string{"food", "food_type", "is_stocked", "is_low", "need_to_buy", "stocked_num", "buy_num", "in_cart"}
)

type csvRecipeRepository struct {
	path string
}

// NewCSVRecipeRepository stores recipes in a CSV file with the columns
// name,ingredients,prep_time,cook_time,directions,pending_quantity.
// pending_quantity may be absent when reading.
func NewCSVRecipeRepository(path string) repositories.RecipeRepository {
	return &csvRecipeRepository{path: path}
}

func (r *csvRecipeRepository) LoadAll(ctx context.Context) ([]*models.Recipe, error) {
	rows, err := readCSV(r.path, recipeColumns[:5])
	if err != nil {
		return nil, err
	}

	recipes := make([]*models.Recipe, 0, len(rows))
	for _, row := range rows {
		name := row.get("name")
		ingredients, err := parser.ParseIngredients(name, row.get("ingredients"))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", r.path, row.line, err)
		}
		directions, err := parser.ParseDirections(name, row.get("directions"))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", r.path, row.line, err)
		}

		recipe := &models.Recipe{Name: name, Ingredients: ingredients, Directions: directions}
		if recipe.PrepTime, err = row.int("prep_time"); err != nil {
			return nil, err
		}
		if recipe.CookTime, err = row.int("cook_time"); err != nil {
			return nil, err
		}
		if recipe.PendingQuantity, err = row.int("pending_quantity"); err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func (r *csvRecipeRepository) SaveAll(ctx context.Context, recipes []*models.Recipe) error {
	records := make([][]string, 0, len(recipes))
	for _, recipe := range recipes {
		records = append(records, []string{
			recipe.Name,
			parser.FormatIngredients(recipe.Ingredients),
			strconv.Itoa(recipe.PrepTime),
			strconv.Itoa(recipe.CookTime),
			parser.FormatDirections(recipe.Directions),
			strconv.Itoa(recipe.PendingQuantity),
		})
	}
	return writeCSV(r.path, recipeColumns, records)
}

type csvInventoryRepository struct {
	path string
}

// NewCSVInventoryRepository stores the grocery ledger in a CSV file with the
// columns food,food_type,is_stocked,is_low,need_to_buy,stocked_num,buy_num,in_cart
func NewCSVInventoryRepository(path string) repositories.InventoryRepository {
	return &csvInventoryRepository{path: path}
}

func (r *csvInventoryRepository) LoadAll(ctx context.Context) ([]*models.InventoryItem, error) {
	rows, err := readCSV(r.path, groceriesColumns[:1])
	if err != nil {
		return nil, err
	}

	items := make([]*models.InventoryItem, 0, len(rows))
	for _, row := range rows {
		item := &models.InventoryItem{
			FoodName: row.get("food"),
			FoodType: row.get("food_type"),
		}
		if item.IsStocked, err = row.bool("is_stocked"); err != nil {
			return nil, err
		}
		if item.IsLow, err = row.bool("is_low"); err != nil {
			return nil, err
		}
		if item.NeedToBuy, err = row.bool("need_to_buy"); err != nil {
			return nil, err
		}
		if item.StockedNum, err = row.int("stocked_num"); err != nil {
			return nil, err
		}
		if item.BuyNum, err = row.int("buy_num"); err != nil {
			return nil, err
		}
		if item.InCart, err = row.bool("in_cart"); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *csvInventoryRepository) SaveAll(ctx context.Context, items []*models.InventoryItem) error {
	records := make([][]string, 0, len(items))
	for _, item := range items {
		records = append(records, []string{
			item.FoodName,
			item.FoodType,
			strconv.FormatBool(item.IsStocked),
			strconv.FormatBool(item.IsLow),
			strconv.FormatBool(item.NeedToBuy),
			strconv.Itoa(item.StockedNum),
			strconv.Itoa(item.BuyNum),
			strconv.FormatBool(item.InCart),
		})
	}
	return writeCSV(r.path, groceriesColumns, records)
}

// csvRow is a record addressed by header name
type csvRow struct {
	path   string
	line   int
	fields []string
	header map[string]int
}

func (row csvRow) get(column string) string {
	i, ok := row.header[column]
	if !ok || i >= len(row.fields) {
		return ""
	}
	return row.fields[i]
}

func (row csvRow) int(column string) (int, error) {
	v := strings.TrimSpace(row.get(column))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s line %d: column %s: %q is not a non-negative integer", row.path, row.line, column, v)
	}
	return n, nil
}

func (row csvRow) bool(column string) (bool, error) {
	v := strings.TrimSpace(row.get(column))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s line %d: column %s: %q is not a boolean", row.path, row.line, column, v)
	}
	return b, nil
}

// readCSV reads path, requiring the given header columns. A missing file is
// an empty collection.
func readCSV(path string, required []string) ([]csvRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headerRecord, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s header: %w", path, err)
	}

	header := make(map[string]int, len(headerRecord))
	for i, col := range headerRecord {
		header[strings.TrimSpace(col)] = i
	}
	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, col)
		}
	}

	var rows []csvRow
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, csvRow{path: path, line: line, fields: fields, header: header})
	}
	return rows, nil
}

// writeCSV replaces path with header and records, via a temp file and rename
// so readers never see a partial snapshot
func writeCSV(path string, header []string, records [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.WriteAll(records); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// csvHealth checks that the directories holding the CSV files are reachable
func csvHealth(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(filepath.Dir(p)); err != nil {
			return fmt.Errorf("csv store unavailable: %w", err)
		}
	}
	return nil
}
