package weights

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/2beens/fitxp/internal/calendar"
	"github.com/2beens/fitxp/internal/docstore"
)

const (
	Collection = "weights"

	DefaultListLimit = 60
)

var (
	ErrWeightNotFound = errors.New("weight not found")
	ErrInvalidWeight  = errors.New("invalid weight")
)

type Weight struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
}

type AddParams struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

func validateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return fmt.Errorf("%w: weight must be a positive number", ErrInvalidWeight)
	}
	return nil
}

func (p AddParams) validate() error {
	if !calendar.IsValid(p.Date) {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidWeight, p.Date)
	}
	return validateWeight(p.Weight)
}

func fromDocument(doc *docstore.Document) *Weight {
	w, _ := doc.Fields.Float("weight")
	return &Weight{
		ID:        doc.ID,
		UserID:    doc.Fields.String("userId"),
		Date:      calendar.DatePart(doc.Fields.String("date")),
		Weight:    w,
		CreatedAt: doc.CreatedAt,
	}
}
