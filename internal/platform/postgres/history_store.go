package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskmaster/taskmaster-api/internal/domain"
	"github.com/taskmaster/taskmaster-api/internal/platform/logger"
	"github.com/taskmaster/taskmaster-api/internal/store"
)

// PostgresTaskHistoryStore implements the store.TaskHistoryStore interface
// using a PostgreSQL database as the storage backend. The ledger is
// append-only: there are no update or delete operations.
type PostgresTaskHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskHistoryStore creates a new PostgreSQL implementation of
// the TaskHistoryStore interface. If logger is nil, a default logger will
// be used.
func NewPostgresTaskHistoryStore(db store.DBTX, logger *slog.Logger) *PostgresTaskHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_history_store")),
	}
}

// Ensure PostgresTaskHistoryStore implements store.TaskHistoryStore interface
var _ store.TaskHistoryStore = (*PostgresTaskHistoryStore)(nil)

// WithTx implements store.TaskHistoryStore.WithTx
func (s *PostgresTaskHistoryStore) WithTx(tx *sql.Tx) store.TaskHistoryStore {
	return &PostgresTaskHistoryStore{db: tx, logger: s.logger}
}

// Append implements store.TaskHistoryStore.Append
// Returns store.ErrInvalidEntity if the referenced task does not exist.
func (s *PostgresTaskHistoryStore) Append(ctx context.Context, history *domain.TaskHistory) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := history.Validate(); err != nil {
		log.Warn("task history validation failed during append",
			slog.String("error", err.Error()),
			slog.String("history_id", history.ID.String()))
		return err
	}

	query := `
		INSERT INTO task_history (id, task_id, old_status, new_status, changed_at, changed_by)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		history.ID,
		history.TaskID,
		history.OldStatus,
		history.NewStatus,
		history.ChangedAt,
		history.ChangedBy,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during history append",
				slog.String("history_id", history.ID.String()),
				slog.String("task_id", history.TaskID.String()))
			return MapForeignKeyViolation(err,
				fmt.Sprintf("task with ID %s not found", history.TaskID))
		}

		log.Error("failed to append task history",
			slog.String("error", err.Error()),
			slog.String("history_id", history.ID.String()))
		return MapError(err)
	}

	log.Debug("task history appended",
		slog.String("history_id", history.ID.String()),
		slog.String("task_id", history.TaskID.String()),
		slog.String("old_status", string(history.OldStatus)),
		slog.String("new_status", string(history.NewStatus)))
	return nil
}

// ListByTask implements store.TaskHistoryStore.ListByTask
// Records are returned newest first.
func (s *PostgresTaskHistoryStore) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskHistory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, task_id, old_status, new_status, changed_at, changed_by
		FROM task_history
		WHERE task_id = $1
		ORDER BY changed_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, taskID)
	if err != nil {
		log.Error("failed to list task history",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := []*domain.TaskHistory{}
	for rows.Next() {
		var history domain.TaskHistory
		if err := rows.Scan(
			&history.ID,
			&history.TaskID,
			&history.OldStatus,
			&history.NewStatus,
			&history.ChangedAt,
			&history.ChangedBy,
		); err != nil {
			log.Error("failed to scan task history row", slog.String("error", err.Error()))
			return nil, err
		}
		records = append(records, &history)
	}

	return records, rows.Err()
}
