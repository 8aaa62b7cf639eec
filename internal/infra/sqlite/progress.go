package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/fitquest-health/fitquest/internal/domain"
)

// DB implements domain.ProgressStore: the whole ProgressRecord is saved in
// one transaction and reloaded verbatim, so a restored snapshot behaves
// identically to the record it was taken from.

// Scalar keys in the progress table.
const (
	keyTotalPoints       = "total_points"
	keyLevel             = "level"
	keyXPToNextLevel     = "xp_to_next_level"
	keyStreakDays        = "streak_days"
	keyLongestStreak     = "longest_streak"
	keyMissionsCompleted = "missions_completed"
	keyDailySeenDone     = "daily_seen_done"
	keyWeeklyWorkouts    = "weekly_workouts"
	keyWeeklyMeals       = "weekly_meals_logged"
	keyWeeklyWater       = "weekly_water_intake"
	keyWeeklyHabits      = "weekly_habits_completed"
)

// Save persists the full record atomically. Badge rows are append-only:
// once unlocked a badge row is never deleted, matching the record invariant.
func (d *DB) Save(rec domain.ProgressRecord) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	scalars := map[string]string{
		keyTotalPoints:       strconv.Itoa(rec.TotalPoints),
		keyLevel:             strconv.Itoa(rec.Level),
		keyXPToNextLevel:     strconv.Itoa(rec.XPToNextLevel),
		keyStreakDays:        strconv.Itoa(rec.StreakDays),
		keyLongestStreak:     strconv.Itoa(rec.LongestStreak),
		keyMissionsCompleted: strconv.Itoa(rec.MissionsCompleted),
		keyDailySeenDone:     strconv.Itoa(rec.DailySeenDone),
		keyWeeklyWorkouts:    strconv.Itoa(rec.Weekly.Workouts),
		keyWeeklyMeals:       strconv.Itoa(rec.Weekly.MealsLogged),
		keyWeeklyWater:       strconv.Itoa(rec.Weekly.WaterIntake),
		keyWeeklyHabits:      strconv.Itoa(rec.Weekly.HabitsCompleted),
	}
	for k, v := range scalars {
		if _, err := tx.Exec(
			`INSERT INTO progress (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value=excluded.value`, k, v,
		); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM missions`); err != nil {
		return fmt.Errorf("clear missions: %w", err)
	}
	for _, m := range rec.Missions {
		if _, err := tx.Exec(
			`INSERT INTO missions (id, title, kind, category, target, current, reward_points, completed)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.Title, string(m.Kind), string(m.Category),
			m.Target, m.Current, m.RewardPoints, m.Completed,
		); err != nil {
			return fmt.Errorf("save mission %s: %w", m.ID, err)
		}
	}

	for _, b := range rec.Badges {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO badges (id, unlocked_at) VALUES (?, ?)`,
			b.ID, b.UnlockedAt.Unix(),
		); err != nil {
			return fmt.Errorf("save badge %s: %w", b.ID, err)
		}
	}

	return tx.Commit()
}

// Load reconstructs the record. found is false for a fresh database.
func (d *DB) Load() (domain.ProgressRecord, bool, error) {
	rec := domain.ProgressRecord{
		Badges:   make(map[string]domain.UnlockedBadge),
		Missions: make(map[string]domain.Mission),
	}

	scalars, err := d.loadScalars()
	if err != nil {
		return rec, false, err
	}
	if len(scalars) == 0 {
		return rec, false, nil
	}

	rec.TotalPoints = scalars[keyTotalPoints]
	rec.Level = scalars[keyLevel]
	rec.XPToNextLevel = scalars[keyXPToNextLevel]
	rec.StreakDays = scalars[keyStreakDays]
	rec.LongestStreak = scalars[keyLongestStreak]
	rec.MissionsCompleted = scalars[keyMissionsCompleted]
	rec.DailySeenDone = scalars[keyDailySeenDone]
	rec.Weekly = domain.WeeklyCounters{
		Workouts:        scalars[keyWeeklyWorkouts],
		MealsLogged:     scalars[keyWeeklyMeals],
		WaterIntake:     scalars[keyWeeklyWater],
		HabitsCompleted: scalars[keyWeeklyHabits],
	}

	rows, err := d.db.Query(
		`SELECT id, title, kind, category, target, current, reward_points, completed FROM missions`,
	)
	if err != nil {
		return rec, false, err
	}
	defer rows.Close()
	for rows.Next() {
		var m domain.Mission
		var kind, category string
		if err := rows.Scan(&m.ID, &m.Title, &kind, &category,
			&m.Target, &m.Current, &m.RewardPoints, &m.Completed); err != nil {
			return rec, false, err
		}
		m.Kind = domain.MissionKind(kind)
		m.Category = domain.MissionCategory(category)
		rec.Missions[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return rec, false, err
	}

	badgeRows, err := d.db.Query(`SELECT id, unlocked_at FROM badges`)
	if err != nil {
		return rec, false, err
	}
	defer badgeRows.Close()
	for badgeRows.Next() {
		var b domain.UnlockedBadge
		var unlockedAt int64
		if err := badgeRows.Scan(&b.ID, &unlockedAt); err != nil {
			return rec, false, err
		}
		b.UnlockedAt = time.Unix(unlockedAt, 0)
		rec.Badges[b.ID] = b
	}
	if err := badgeRows.Err(); err != nil {
		return rec, false, err
	}

	return rec, true, nil
}

func (d *DB) loadScalars() (map[string]int, error) {
	rows, err := d.db.Query(`SELECT key, value FROM progress`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("corrupt progress value %s=%q: %w", key, value, err)
		}
		out[key] = n
	}
	return out, rows.Err()
}

// ─── Notifications ──────────────────────────────────────────────────────────

// Notification is a persisted user-facing message.
type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Shown     bool      `json:"shown"`
}

// InsertNotification stores a new notification.
func (d *DB) InsertNotification(n Notification) error {
	_, err := d.db.Exec(
		`INSERT INTO notifications (id, kind, title, body, created_at, shown)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.Kind, n.Title, n.Body, n.CreatedAt.Unix(), n.Shown,
	)
	return err
}

// NotificationCountSince counts notifications created at or after t.
func (d *DB) NotificationCountSince(t time.Time) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE created_at >= ?`, t.Unix(),
	).Scan(&count)
	return count, err
}

// ListPendingNotifications returns unshown notifications, newest first.
func (d *DB) ListPendingNotifications(limit int) ([]Notification, error) {
	rows, err := d.db.Query(
		`SELECT id, kind, title, body, created_at, shown
		 FROM notifications WHERE shown = 0 ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifs []Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifs = append(notifs, *n)
	}
	return notifs, rows.Err()
}

// MarkNotificationShown marks a notification as shown.
func (d *DB) MarkNotificationShown(id string) error {
	res, err := d.db.Exec(`UPDATE notifications SET shown = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanNotification(s scanner) (*Notification, error) {
	var n Notification
	var createdAt int64
	if err := s.Scan(&n.ID, &n.Kind, &n.Title, &n.Body, &createdAt, &n.Shown); err != nil {
		return nil, err
	}
	n.CreatedAt = time.Unix(createdAt, 0)
	return &n, nil
}
