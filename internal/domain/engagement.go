// internal/domain/engagement.go
package domain

import "time"

// Reel is a short educational video that rewards points the first time
// an account finishes watching it.
type Reel struct {
	ID              int64     `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Description     *string   `db:"description" json:"description"`
	VideoURL        string    `db:"video_url" json:"video_url"`
	ThumbnailURL    *string   `db:"thumbnail_url" json:"thumbnail_url"`
	DurationSeconds int       `db:"duration_seconds" json:"duration_seconds"`
	PointsReward    int       `db:"points_reward" json:"points_reward"`
	Category        *string   `db:"category" json:"category"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// ReelView is the idempotency record for a (account, reel) watch. The
// first view carries the point grant; later views only raise the
// watched-seconds high-water mark.
type ReelView struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	ReelID         int64     `db:"reel_id" json:"reel_id"`
	WatchedSeconds int       `db:"watched_seconds" json:"watched_seconds"`
	PointsEarned   int       `db:"points_earned" json:"points_earned"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Task is a one-time activity worth points.
type Task struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  *string   `db:"description" json:"description"`
	PointsReward int       `db:"points_reward" json:"points_reward"`
	Type         string    `db:"type" json:"type"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`

	Completed bool `db:"completed" json:"completed"`
}

// TaskCompletion is the idempotency record for a (account, task) award.
type TaskCompletion struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	TaskID       int64     `db:"task_id" json:"task_id"`
	PointsEarned int       `db:"points_earned" json:"points_earned"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
