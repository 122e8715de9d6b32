package model

type Badge string

const (
	BadgeNewbie       Badge = "Newbie"
	BadgeGettingThere Badge = "Getting There"
	BadgeStreakMaster Badge = "Streak Master"
	BadgePro          Badge = "Pro"
	BadgeLegend       Badge = "Legend"
)

type badgeTier struct {
	MinStreak int
	Badge     Badge
}

// Tiers are ordered highest first; the first matching threshold wins.
var badgeTiers = []badgeTier{
	{MinStreak: 30, Badge: BadgeLegend},
	{MinStreak: 15, Badge: BadgePro},
	{MinStreak: 7, Badge: BadgeStreakMaster},
	{MinStreak: 3, Badge: BadgeGettingThere},
}

// BadgeForStreak maps a streak count to its display badge.
func BadgeForStreak(streak int) Badge {
	for _, tier := range badgeTiers {
		if streak >= tier.MinStreak {
			return tier.Badge
		}
	}
	return BadgeNewbie
}
