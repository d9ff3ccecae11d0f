package xp

const (
	// MaxPrestige is the highest reachable prestige tier.
	MaxPrestige = 3

	baseCap = 20
	capStep = 5

	baseLevelXp = 100
	levelXpStep = 20
)

// Progress is a normalized (level, xp-within-level) pair.
type Progress struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
}

type LevelProgress struct {
	Current int     `json:"current"`
	Needed  int     `json:"needed"`
	Pct     float64 `json:"pct"`
}

// XpNeededFor returns the xp required to go from level to level+1,
// e.g. L1->2 = 100, L2->3 = 120, L3->4 = 140.
func XpNeededFor(level int) int {
	return baseLevelXp + (level-1)*levelXpStep
}

// LevelCapFor returns the max level at the given prestige: 20, 25, 30, 35.
func LevelCapFor(prestige int) int {
	return baseCap + max(0, prestige)*capStep
}

// ApplyXpDelta adds delta to xp and normalizes the pair, leveling up and down
// as needed. Level ups are not capped here.
func ApplyXpDelta(level, xp, delta int) Progress {
	l := max(1, level)
	x := max(0, xp) + delta

	for x >= XpNeededFor(l) {
		x -= XpNeededFor(l)
		l++
	}

	// borrow from previous levels
	for x < 0 && l > 1 {
		l--
		x += XpNeededFor(l)
	}

	return Progress{
		Level: max(1, l),
		XP:    max(0, x),
	}
}

func XpProgress(level, xp int) LevelProgress {
	needed := XpNeededFor(level)
	current := max(0, min(xp, needed))

	pct := 0.0
	if needed > 0 {
		pct = float64(current) / float64(needed)
	}

	return LevelProgress{
		Current: current,
		Needed:  needed,
		Pct:     pct,
	}
}

// CapProgress clamps p to the level cap of the given prestige. Overflowing
// the cap leaves a full bar: xp one short of the next level.
func CapProgress(p Progress, prestige int) Progress {
	levelCap := LevelCapFor(prestige)
	if p.Level <= levelCap {
		return p
	}
	return Progress{
		Level: levelCap,
		XP:    XpNeededFor(levelCap) - 1,
	}
}
