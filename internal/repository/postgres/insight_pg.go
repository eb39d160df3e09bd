// internal/repository/postgres/insight_pg.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
	"kumbara-api/internal/util"
)

// InsightRepository implements repository.InsightRepository for PostgreSQL.
// The free-form Data map is stored as a JSONB column.
type InsightRepository struct{}

// NewInsightRepository creates a new InsightRepository.
func NewInsightRepository(db *sqlx.DB) repository.InsightRepository {
	return &InsightRepository{}
}

// insightRow carries the raw JSONB payload between the table and the domain type.
type insightRow struct {
	domain.Insight
	RawData []byte `db:"data"`
}

func (row *insightRow) toDomain() (*domain.Insight, error) {
	insight := row.Insight
	insight.Data = map[string]any{}
	if len(row.RawData) > 0 {
		if err := json.Unmarshal(row.RawData, &insight.Data); err != nil {
			return nil, fmt.Errorf("failed to decode insight %d data: %w", row.ID, err)
		}
	}
	return &insight, nil
}

// ReplaceInsights drops the account's cached insights and stores the given batch.
func (r *InsightRepository) ReplaceInsights(ctx context.Context, q repository.DBExecutor, userID int64, insights []domain.Insight) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM ai_insights WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear insights for user %d: %w", userID, err)
	}
	query := `INSERT INTO ai_insights (user_id, insight_type, message, data)
              VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	for i := range insights {
		data, err := json.Marshal(insights[i].Data)
		if err != nil {
			return fmt.Errorf("failed to encode insight data: %w", err)
		}
		insights[i].UserID = userID
		err = q.QueryRowContext(ctx, query, userID, insights[i].InsightType, insights[i].Message, data).
			Scan(&insights[i].ID, &insights[i].CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create insight: %w", err)
		}
	}
	return nil
}

// ListInsights lists the account's cached insights, newest first.
func (r *InsightRepository) ListInsights(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Insight, error) {
	rows := []insightRow{}
	query := `SELECT id, user_id, insight_type, message, data, created_at
              FROM ai_insights WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	if err := q.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list insights for user %d: %w", userID, err)
	}
	insights := make([]domain.Insight, 0, len(rows))
	for i := range rows {
		insight, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		insights = append(insights, *insight)
	}
	return insights, nil
}

// GetLatestInsight returns the most recent cached insight.
func (r *InsightRepository) GetLatestInsight(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Insight, error) {
	var row insightRow
	query := `SELECT id, user_id, insight_type, message, data, created_at
              FROM ai_insights WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`
	if err := q.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest insight for user %d: %w", userID, err)
	}
	return row.toDomain()
}
