package entries

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/2beens/fitxp/internal/calendar"
	"github.com/2beens/fitxp/internal/docstore"
)

const Collection = "entries"

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrInvalidEntry  = errors.New("invalid entry")
)

// Entry is one logged food item on a calendar day.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	FoodName  string    `json:"foodName"`
	Calories  float64   `json:"calories"`
	Protein   *float64  `json:"protein,omitempty"`
	Carbs     *float64  `json:"carbs,omitempty"`
	Fat       *float64  `json:"fat,omitempty"`
	Quantity  *float64  `json:"quantity,omitempty"`
	Unit      string    `json:"unit,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type AddParams struct {
	Date     string   `json:"date"`
	FoodName string   `json:"foodName"`
	Calories float64  `json:"calories"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
}

// Patch edits an entry. User and date are fixed once logged.
type Patch struct {
	FoodName *string  `json:"foodName,omitempty"`
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
}

// Totals sums a day of entries.
type Totals struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Count    int     `json:"count"`
}

func (p AddParams) validate() error {
	if !calendar.IsValid(p.Date) {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidEntry, p.Date)
	}
	if strings.TrimSpace(p.FoodName) == "" {
		return fmt.Errorf("%w: food name empty", ErrInvalidEntry)
	}
	if !validAmount(&p.Calories) {
		return fmt.Errorf("%w: calories must be a non-negative number", ErrInvalidEntry)
	}
	for _, v := range []*float64{p.Protein, p.Carbs, p.Fat, p.Quantity} {
		if !validAmount(v) {
			return fmt.Errorf("%w: macros and quantity must be non-negative numbers", ErrInvalidEntry)
		}
	}
	return nil
}

func (p Patch) IsEmpty() bool {
	return p.FoodName == nil && p.Calories == nil && p.Protein == nil &&
		p.Carbs == nil && p.Fat == nil && p.Quantity == nil && p.Unit == nil
}

func (p Patch) validate() error {
	if p.FoodName != nil && strings.TrimSpace(*p.FoodName) == "" {
		return fmt.Errorf("%w: food name empty", ErrInvalidEntry)
	}
	for _, v := range []*float64{p.Calories, p.Protein, p.Carbs, p.Fat, p.Quantity} {
		if !validAmount(v) {
			return fmt.Errorf("%w: amounts must be non-negative numbers", ErrInvalidEntry)
		}
	}
	return nil
}

// validAmount accepts a missing value or a finite non-negative number.
func validAmount(v *float64) bool {
	if v == nil {
		return true
	}
	return !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v >= 0
}

func (p AddParams) toFields(userID string) docstore.Fields {
	f := docstore.Fields{
		"userId":   userID,
		"date":     p.Date,
		"foodName": strings.TrimSpace(p.FoodName),
		"calories": p.Calories,
	}
	setOptional(f, "protein", p.Protein)
	setOptional(f, "carbs", p.Carbs)
	setOptional(f, "fat", p.Fat)
	setOptional(f, "quantity", p.Quantity)
	if p.Unit != "" {
		f["unit"] = p.Unit
	}
	return f
}

func (p Patch) toFields() docstore.Fields {
	f := docstore.Fields{}
	if p.FoodName != nil {
		f["foodName"] = strings.TrimSpace(*p.FoodName)
	}
	setOptional(f, "calories", p.Calories)
	setOptional(f, "protein", p.Protein)
	setOptional(f, "carbs", p.Carbs)
	setOptional(f, "fat", p.Fat)
	setOptional(f, "quantity", p.Quantity)
	if p.Unit != nil {
		f["unit"] = *p.Unit
	}
	return f
}

func setOptional(f docstore.Fields, key string, v *float64) {
	if v != nil {
		f[key] = *v
	}
}

func fromDocument(doc *docstore.Document) *Entry {
	f := doc.Fields
	calories, _ := f.Float("calories")
	return &Entry{
		ID:        doc.ID,
		UserID:    f.String("userId"),
		Date:      calendar.DatePart(f.String("date")),
		FoodName:  f.String("foodName"),
		Calories:  calories,
		Protein:   f.FloatPtr("protein"),
		Carbs:     f.FloatPtr("carbs"),
		Fat:       f.FloatPtr("fat"),
		Quantity:  f.FloatPtr("quantity"),
		Unit:      f.String("unit"),
		CreatedAt: doc.CreatedAt,
	}
}

// SumTotals adds up calories and macros; a missing macro counts as zero.
func SumTotals(date string, entries []*Entry) Totals {
	t := Totals{Date: date}
	for _, e := range entries {
		t.Calories += e.Calories
		t.Protein += deref(e.Protein)
		t.Carbs += deref(e.Carbs)
		t.Fat += deref(e.Fat)
		t.Count++
	}
	return t
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
