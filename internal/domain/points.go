// internal/domain/points.go
package domain

import (
	"time"

	"kumbara-api/internal/util"
)

// PointsAccount is the per-account gamification state. TotalPoints and
// SpentPoints are monotonically non-decreasing; available points are
// the difference.
type PointsAccount struct {
	UserID            int64      `db:"user_id" json:"user_id"`
	TotalPoints       int        `db:"total_points" json:"total_points"`
	SpentPoints       int        `db:"spent_points" json:"spent_points"`
	CurrentStreakDays int        `db:"current_streak_days" json:"current_streak_days"`
	LastActivityDate  *time.Time `db:"last_activity_date" json:"last_activity_date"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// Available returns the points still spendable.
func (p PointsAccount) Available() int {
	return p.TotalPoints - p.SpentPoints
}

// Award grants points and advances the streak for activity on the given
// day. Callers must have already checked the activity's idempotency
// record; a duplicate award is a no-op at the caller, not here.
func (p *PointsAccount) Award(points int, today time.Time) {
	day := truncateToDay(today)
	p.TotalPoints += points
	p.CurrentStreakDays = NextStreak(p.LastActivityDate, p.CurrentStreakDays, day)
	p.LastActivityDate = &day
	p.UpdatedAt = time.Now().UTC()
}

// Redeem spends points on a reward. Fails without mutation when the
// cost exceeds the available points.
func (p *PointsAccount) Redeem(cost int) error {
	if p.Available() < cost {
		return util.ErrInsufficientPoints
	}
	p.SpentPoints += cost
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// NextStreak applies the streak continuation policy: activity yesterday
// extends the streak, activity already counted today keeps it, and any
// longer gap (or no prior activity) resets it to 1.
func NextStreak(lastActivity *time.Time, current int, today time.Time) int {
	if lastActivity == nil {
		return 1
	}
	last := truncateToDay(*lastActivity)
	day := truncateToDay(today)
	switch {
	case last.Equal(day.AddDate(0, 0, -1)):
		return current + 1
	case last.Equal(day):
		return current
	default:
		return 1
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
