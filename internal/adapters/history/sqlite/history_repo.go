package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/ports"
	"github.com/google/uuid"
)

// Timestamps are stored as fixed-width UTC text so they sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var _ ports.HistoryRepository = (*HistoryRepo)(nil)

type HistoryRepo struct {
	db *DB
}

func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Append stores the record, assigning an ID when it has none.
func (r *HistoryRepo) Append(ctx context.Context, record domain.SwitchRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	const query = `
		INSERT INTO switch_history
			(id, account_id, display_name, outcome, backed_up_as, success, message, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Writer.ExecContext(ctx, query,
		record.ID,
		string(record.AccountID),
		record.DisplayName,
		string(record.Outcome),
		record.BackedUpAs,
		record.Success,
		record.Message,
		formatTime(record.StartedAt),
		formatTime(record.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("append switch record: %w", err)
	}

	return nil
}

// List returns the newest records first; limit <= 0 means no limit.
func (r *HistoryRepo) List(ctx context.Context, limit int) ([]domain.SwitchRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	const query = `
		SELECT id, account_id, display_name, outcome, backed_up_as, success, message, started_at, finished_at
		FROM switch_history
		ORDER BY finished_at DESC, rowid DESC
		LIMIT ?
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list switch history: %w", err)
	}
	defer rows.Close()

	var records []domain.SwitchRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan switch record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate switch history: %w", err)
	}

	return records, nil
}

func (r *HistoryRepo) LastSuccessful(ctx context.Context) (domain.SwitchRecord, error) {
	const query = `
		SELECT id, account_id, display_name, outcome, backed_up_as, success, message, started_at, finished_at
		FROM switch_history
		WHERE success = 1
		ORDER BY finished_at DESC, rowid DESC
		LIMIT 1
	`

	record, err := scanRecord(r.db.Reader.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SwitchRecord{}, domain.ErrAccountNotFound
	}
	if err != nil {
		return domain.SwitchRecord{}, fmt.Errorf("last successful switch: %w", err)
	}

	return record, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (domain.SwitchRecord, error) {
	var (
		record     domain.SwitchRecord
		accountID  string
		outcome    string
		startedAt  string
		finishedAt string
	)

	if err := row.Scan(
		&record.ID, &accountID, &record.DisplayName, &outcome, &record.BackedUpAs,
		&record.Success, &record.Message, &startedAt, &finishedAt,
	); err != nil {
		return domain.SwitchRecord{}, err
	}

	record.AccountID = domain.AccountID(accountID)
	record.Outcome = domain.SwitchOutcome(outcome)
	record.StartedAt = parseTime(startedAt)
	record.FinishedAt = parseTime(finishedAt)

	return record, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) time.Time {
	parsed, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
