package progress

import "github.com/fitquest-health/fitquest/internal/domain"

// Levels returns the static level table, ordered by ascending XP threshold.
// Ten named tiers from Beginner (0 XP) to Titan (5500 XP).
func Levels() []domain.LevelDefinition {
	return []domain.LevelDefinition{
		{Level: 1, Name: "Beginner", XPThreshold: 0},
		{Level: 2, Name: "Apprentice", XPThreshold: 100},
		{Level: 3, Name: "Disciplined", XPThreshold: 300},
		{Level: 4, Name: "Athlete", XPThreshold: 600},
		{Level: 5, Name: "Warrior", XPThreshold: 1000},
		{Level: 6, Name: "Champion", XPThreshold: 1500},
		{Level: 7, Name: "Legend", XPThreshold: 2200},
		{Level: 8, Name: "Master", XPThreshold: 3000},
		{Level: 9, Name: "Elite", XPThreshold: 4000},
		{Level: 10, Name: "Titan", XPThreshold: 5500},
	}
}

// LevelFor returns the highest level whose threshold is at or below the
// given XP, plus the XP remaining to the next level. Past the top threshold
// the last level is returned and the remainder is 0 — never negative.
func LevelFor(levels []domain.LevelDefinition, totalPoints int) (domain.LevelDefinition, int) {
	if len(levels) == 0 {
		return domain.LevelDefinition{Level: 1}, 0
	}
	for i := len(levels) - 1; i >= 0; i-- {
		if totalPoints >= levels[i].XPThreshold {
			if i == len(levels)-1 {
				return levels[i], 0 // Max level — capped
			}
			return levels[i], levels[i+1].XPThreshold - totalPoints
		}
	}
	// Thresholds start at 0, so only reachable with an empty-prefix table.
	return levels[0], levels[0].XPThreshold - totalPoints
}
