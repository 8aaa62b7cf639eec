package domain

// Occurrence is an engine-emitted fact: something celebration-worthy that
// happened during a single state transition. Occurrences flow strictly
// downstream of the transition — the notification layer consumes them in
// emission order and decides how (or whether) to surface each one.
type Occurrence interface {
	Kind() OccurrenceKind
}

// OccurrenceKind tags the concrete occurrence type.
type OccurrenceKind string

const (
	OccLeveledUp        OccurrenceKind = "leveled_up"
	OccMissionCompleted OccurrenceKind = "mission_completed"
	OccBadgeUnlocked    OccurrenceKind = "badge_unlocked"
	OccStreakMilestone  OccurrenceKind = "streak_milestone"
	OccDailyGoalReached OccurrenceKind = "daily_goal_reached"
)

// LeveledUp fires when a transition moves the level upward.
type LeveledUp struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// MissionCompleted fires exactly once per mission instance per cycle.
type MissionCompleted struct {
	MissionID    string `json:"mission_id"`
	RewardPoints int    `json:"reward_points"`
}

// BadgeUnlocked fires only on the first insertion of a badge id.
type BadgeUnlocked struct {
	BadgeID string `json:"badge_id"`
}

// StreakMilestone fires when the streak reaches a positive multiple of 7.
type StreakMilestone struct {
	Days int `json:"days"`
}

// DailyGoalReached fires on the strict crossing of the daily completed-count
// threshold — once per day, not on later completions, not on re-reads.
type DailyGoalReached struct {
	Completed int `json:"completed"`
	Threshold int `json:"threshold"`
}

func (LeveledUp) Kind() OccurrenceKind        { return OccLeveledUp }
func (MissionCompleted) Kind() OccurrenceKind { return OccMissionCompleted }
func (BadgeUnlocked) Kind() OccurrenceKind    { return OccBadgeUnlocked }
func (StreakMilestone) Kind() OccurrenceKind  { return OccStreakMilestone }
func (DailyGoalReached) Kind() OccurrenceKind { return OccDailyGoalReached }
