package domain

import "math"

// Unbounded is the MaxXP of the terminal tier.
const Unbounded = math.MaxInt

type Tier struct {
	ID    string
	Name  string
	Icon  string
	MinXP int
	MaxXP int
}

func (t Tier) Contains(xp int) bool {
	return xp >= t.MinXP && xp < t.MaxXP
}

var tiers = []Tier{
	{ID: "baby", Name: "Baby Steps", Icon: "👶", MinXP: 0, MaxXP: 100},
	{ID: "warrior", Name: "Week Warrior", Icon: "⚔️", MinXP: 100, MaxXP: 200},
	{ID: "zen", Name: "Zen Master", Icon: "🧘", MinXP: 200, MaxXP: 400},
	{ID: "guru", Name: "Mindful Guru", Icon: "🕉️", MinXP: 400, MaxXP: 700},
	{ID: "sage", Name: "Focus Sage", Icon: "🌟", MinXP: 700, MaxXP: 1000},
	{ID: "legend", Name: "Legend", Icon: "👑", MinXP: 1000, MaxXP: 1500},
	{ID: "enlightened", Name: "Enlightened", Icon: "✨", MinXP: 1500, MaxXP: Unbounded},
}

// Tiers returns the achievement table ordered by MinXP. The ranges are
// contiguous and cover [0, ∞).
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// LevelFor returns the tier containing xp and the one after it. For the
// terminal tier next equals current. Negative xp is treated as 0.
func LevelFor(xp int) (current, next Tier) {
	if xp < 0 {
		xp = 0
	}
	for i, t := range tiers {
		if t.Contains(xp) {
			if i+1 < len(tiers) {
				return t, tiers[i+1]
			}
			return t, t
		}
	}
	last := tiers[len(tiers)-1]
	return last, last
}

// ProgressFraction is how far xp has moved from current.MinXP toward
// next.MinXP, clamped to [0, 1].
func ProgressFraction(xp int, current, next Tier) float64 {
	span := next.MinXP - current.MinXP
	if span <= 0 || xp >= next.MinXP {
		return 1
	}
	f := float64(xp-current.MinXP) / float64(span)
	if f < 0 {
		return 0
	}
	return f
}

func XPForMinutes(minutes int) int {
	if minutes < 0 {
		return 0
	}
	return minutes * 10
}
