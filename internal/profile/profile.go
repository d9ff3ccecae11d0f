package profile

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitxp/internal/docstore"
)

const (
	Collection = "profiles"

	DefaultCalorieGoal = 2000
)

var (
	ErrInvalidPhase       = errors.New("phase must be cut or bulk")
	ErrInvalidCalorieGoal = errors.New("calorie goal must be a non-negative number")
)

type Phase string

const (
	PhaseCut  Phase = "cut"
	PhaseBulk Phase = "bulk"
)

func ParsePhase(s string) (Phase, error) {
	switch Phase(s) {
	case PhaseCut, PhaseBulk:
		return Phase(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPhase, s)
	}
}

// Profile holds the per-user progression state. XP is the progress inside
// the current level, not a lifetime total.
type Profile struct {
	UserID      string    `json:"userId"`
	Level       int       `json:"level"`
	XP          int       `json:"xp"`
	Prestige    int       `json:"prestige"`
	CalorieGoal int       `json:"calorieGoal"`
	Phase       Phase     `json:"phase"`
	Streak      int       `json:"streak"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newDefault(userID string) *Profile {
	return &Profile{
		UserID:      userID,
		Level:       1,
		XP:          0,
		Prestige:    0,
		CalorieGoal: DefaultCalorieGoal,
		Phase:       PhaseCut,
		Streak:      0,
	}
}

// Patch lists the fields to change; nil means "leave as is".
type Patch struct {
	Level       *int
	XP          *int
	Prestige    *int
	CalorieGoal *int
	Phase       *Phase
	Streak      *int
}

func (p Patch) IsEmpty() bool {
	return p.Level == nil && p.XP == nil && p.Prestige == nil &&
		p.CalorieGoal == nil && p.Phase == nil && p.Streak == nil
}

func (p Patch) validate() error {
	if p.CalorieGoal != nil && *p.CalorieGoal < 0 {
		return ErrInvalidCalorieGoal
	}
	if p.Phase != nil {
		if _, err := ParsePhase(string(*p.Phase)); err != nil {
			return err
		}
	}
	return nil
}

func (p Patch) toFields() docstore.Fields {
	f := docstore.Fields{}
	if p.Level != nil {
		f["level"] = *p.Level
	}
	if p.XP != nil {
		f["xp"] = *p.XP
	}
	if p.Prestige != nil {
		f["prestige"] = *p.Prestige
	}
	if p.CalorieGoal != nil {
		f["calorieGoal"] = *p.CalorieGoal
	}
	if p.Phase != nil {
		f["phase"] = string(*p.Phase)
	}
	if p.Streak != nil {
		f["streak"] = *p.Streak
	}
	return f
}

func (p *Profile) toFields() docstore.Fields {
	return docstore.Fields{
		"userId":      p.UserID,
		"level":       p.Level,
		"xp":          p.XP,
		"prestige":    p.Prestige,
		"calorieGoal": p.CalorieGoal,
		"phase":       string(p.Phase),
		"streak":      p.Streak,
	}
}

// fromDocument tolerates missing or odd values by falling back to defaults.
func fromDocument(doc *docstore.Document) *Profile {
	f := doc.Fields
	userID := f.String("userId")
	if userID == "" {
		userID = doc.ID
	}
	phase, err := ParsePhase(f.String("phase"))
	if err != nil {
		phase = PhaseCut
	}
	return &Profile{
		UserID:      userID,
		Level:       max(1, f.Int("level", 1)),
		XP:          max(0, f.Int("xp", 0)),
		Prestige:    max(0, f.Int("prestige", 0)),
		CalorieGoal: max(0, f.Int("calorieGoal", DefaultCalorieGoal)),
		Phase:       phase,
		Streak:      max(0, f.Int("streak", 0)),
		UpdatedAt:   doc.UpdatedAt,
	}
}
