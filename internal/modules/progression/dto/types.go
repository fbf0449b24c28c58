package dto

type TierOutput struct {
	ID    string
	Name  string
	Icon  string
	MinXP int
	// MaxXP is -1 for the terminal tier.
	MaxXP int
}

type AchievementOutput struct {
	Tier     TierOutput
	Unlocked bool
}

type LevelOutput struct {
	TotalXP         int
	Current         TierOutput
	Next            TierOutput
	ProgressPercent float64
}

type StatsOutput struct {
	Streak        int
	LongestStreak int
	WeeklyMinutes int
	TotalSessions int
	TotalMinutes  int
	Level         LevelOutput
	Achievements  []AchievementOutput
}
