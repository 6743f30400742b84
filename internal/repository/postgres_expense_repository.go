package repository

import (
	"context"
	"time"

	"finance-assistant/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS expenses (
	id          UUID PRIMARY KEY,
	user_id     TEXT NOT NULL,
	amount      DOUBLE PRECISION NOT NULL DEFAULT 0,
	category    TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	date        TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses (user_id, date);`

var expenseColumns = []string{"user_id", "amount", "category", "description", "date"}

type PostgresExpenseRepository struct {
	db     *pgxpool.Pool
	now    Clock
	logger *zap.Logger
}

func NewPostgresExpenseRepository(db *pgxpool.Pool, now Clock, logger *zap.Logger) *PostgresExpenseRepository {
	if now == nil {
		now = time.Now
	}
	return &PostgresExpenseRepository{
		db:     db,
		now:    now,
		logger: logger,
	}
}

// EnsureSchema creates the expenses table and index if they are missing.
func (r *PostgresExpenseRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, postgresSchema); err != nil {
		return unavailable("create schema", err)
	}
	return nil
}

func (r *PostgresExpenseRepository) Insert(ctx context.Context, expense *models.Expense) error {
	query := squirrel.Insert("expenses").
		Columns(append([]string{"id"}, expenseColumns...)...).
		Values(uuid.New(), expense.UserID, expense.Amount, expense.Category, expense.Description, expense.Date).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		return unavailable("insert expense", err)
	}
	return nil
}

func (r *PostgresExpenseRepository) Query(ctx context.Context, userID string, windowDays int) ([]*models.Expense, error) {
	query := selectExpenses(userID, windowDays, r.now()).PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, unavailable("select expenses", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date); err != nil {
			return nil, unavailable("scan expense", err)
		}
		expenses = append(expenses, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("select expenses", err)
	}

	return expenses, nil
}

func (r *PostgresExpenseRepository) DeleteAll(ctx context.Context, userID string) (int64, error) {
	query := squirrel.Delete("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, unavailable("delete expenses", err)
	}

	r.logger.Info("Expenses deleted",
		zap.String("user_id", userID),
		zap.Int64("count", tag.RowsAffected()),
	)
	return tag.RowsAffected(), nil
}

// selectExpenses builds the shared SELECT used by the SQL backends.
func selectExpenses(userID string, windowDays int, now time.Time) squirrel.SelectBuilder {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"user_id": userID})

	if windowDays > 0 {
		query = query.Where(squirrel.GtOrEq{"date": windowCutoff(now, windowDays)})
	}
	return query
}
