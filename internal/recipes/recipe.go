package recipes

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/2beens/fitxp/internal/docstore"
)

const (
	Collection = "recipes"

	DefaultListLimit = 200
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrInvalidRecipe  = errors.New("invalid recipe")
)

// RecipeItem is one ingredient line. Amounts are for the whole recipe.
type RecipeItem struct {
	Name     string   `json:"name"`
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
}

// Recipe holds per serving nutrition, already rounded.
type Recipe struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	Name      string       `json:"name"`
	Servings  int          `json:"servings"`
	Calories  int          `json:"calories"`
	Protein   *float64     `json:"protein,omitempty"`
	Carbs     *float64     `json:"carbs,omitempty"`
	Fat       *float64     `json:"fat,omitempty"`
	Items     []RecipeItem `json:"items"`
	CreatedAt time.Time    `json:"createdAt"`
}

type CreateParams struct {
	Name     string       `json:"name"`
	Servings int          `json:"servings"`
	Items    []RecipeItem `json:"items"`
}

// Nutrition is a calories + optional macros tuple, either for the whole
// recipe or for one serving.
type Nutrition struct {
	Calories float64
	Protein  *float64
	Carbs    *float64
	Fat      *float64
}

func (it RecipeItem) valid() bool {
	if strings.TrimSpace(it.Name) == "" {
		return false
	}
	for _, v := range []*float64{it.Calories, it.Protein, it.Carbs, it.Fat, it.Quantity} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0) {
			return false
		}
	}
	return true
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name empty", ErrInvalidRecipe)
	}
	if p.Servings < 1 {
		return fmt.Errorf("%w: servings must be at least 1", ErrInvalidRecipe)
	}
	if len(p.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidRecipe)
	}
	for i, it := range p.Items {
		if !it.valid() {
			return fmt.Errorf("%w: item %d needs a name and non-negative amounts", ErrInvalidRecipe, i)
		}
	}
	return nil
}

// EncodeItems stores every item as its own JSON string.
func EncodeItems(items []RecipeItem) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, it := range items {
		b, err := json.Marshal(it)
		if err != nil {
			return nil, fmt.Errorf("marshal recipe item: %w", err)
		}
		out = append(out, string(b))
	}
	return out, nil
}

// DecodeItems parses stored items and drops the ones that are not valid.
func DecodeItems(raw []string) []RecipeItem {
	items := make([]RecipeItem, 0, len(raw))
	for _, s := range raw {
		var it RecipeItem
		if err := json.Unmarshal([]byte(s), &it); err != nil {
			continue
		}
		if !it.valid() {
			continue
		}
		items = append(items, it)
	}
	return items
}

// ComputeTotals sums the items. A macro stays nil unless at least one item has it.
func ComputeTotals(items []RecipeItem) Nutrition {
	var n Nutrition
	for _, it := range items {
		if it.Calories != nil {
			n.Calories += *it.Calories
		}
		n.Protein = addOptional(n.Protein, it.Protein)
		n.Carbs = addOptional(n.Carbs, it.Carbs)
		n.Fat = addOptional(n.Fat, it.Fat)
	}
	return n
}

// PerServing divides totals by servings (at least 1) and rounds calories to
// a whole number and macros to one decimal.
func PerServing(total Nutrition, servings int) Nutrition {
	s := float64(max(1, servings))
	div := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		r := math.Round(*v/s*10) / 10
		return &r
	}
	return Nutrition{
		Calories: math.Round(total.Calories / s),
		Protein:  div(total.Protein),
		Carbs:    div(total.Carbs),
		Fat:      div(total.Fat),
	}
}

func addOptional(sum, v *float64) *float64 {
	if v == nil {
		return sum
	}
	out := *v
	if sum != nil {
		out += *sum
	}
	return &out
}

func (p CreateParams) toFields(userID string) (docstore.Fields, error) {
	items, err := EncodeItems(p.Items)
	if err != nil {
		return nil, err
	}
	per := PerServing(ComputeTotals(p.Items), p.Servings)

	f := docstore.Fields{
		"userId":   userID,
		"name":     strings.TrimSpace(p.Name),
		"servings": p.Servings,
		"calories": int(per.Calories),
		"items":    items,
	}
	if per.Protein != nil {
		f["protein"] = *per.Protein
	}
	if per.Carbs != nil {
		f["carbs"] = *per.Carbs
	}
	if per.Fat != nil {
		f["fat"] = *per.Fat
	}
	return f, nil
}

func fromDocument(doc *docstore.Document) *Recipe {
	f := doc.Fields
	return &Recipe{
		ID:        doc.ID,
		UserID:    f.String("userId"),
		Name:      f.String("name"),
		Servings:  max(1, f.Int("servings", 1)),
		Calories:  f.Int("calories", 0),
		Protein:   f.FloatPtr("protein"),
		Carbs:     f.FloatPtr("carbs"),
		Fat:       f.FloatPtr("fat"),
		Items:     DecodeItems(f.Strings("items")),
		CreatedAt: doc.CreatedAt,
	}
}
