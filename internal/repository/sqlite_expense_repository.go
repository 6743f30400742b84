package repository

import (
	"context"
	"database/sql"
	"time"

	"finance-assistant/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS expenses (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	amount      REAL NOT NULL DEFAULT 0,
	category    TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	date        TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses (user_id, date);`

type SQLiteExpenseRepository struct {
	db     *sql.DB
	now    Clock
	logger *zap.Logger
}

func NewSQLiteExpenseRepository(db *sql.DB, now Clock, logger *zap.Logger) *SQLiteExpenseRepository {
	if now == nil {
		now = time.Now
	}
	return &SQLiteExpenseRepository{
		db:     db,
		now:    now,
		logger: logger,
	}
}

func (r *SQLiteExpenseRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSchema); err != nil {
		return unavailable("create schema", err)
	}
	return nil
}

func (r *SQLiteExpenseRepository) Insert(ctx context.Context, expense *models.Expense) error {
	query := squirrel.Insert("expenses").
		Columns(append([]string{"id"}, expenseColumns...)...).
		Values(uuid.NewString(), expense.UserID, expense.Amount, expense.Category, expense.Description, expense.Date)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, sql, args...); err != nil {
		return unavailable("insert expense", err)
	}
	return nil
}

func (r *SQLiteExpenseRepository) Query(ctx context.Context, userID string, windowDays int) ([]*models.Expense, error) {
	sql, args, err := selectExpenses(userID, windowDays, r.now()).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
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

func (r *SQLiteExpenseRepository) DeleteAll(ctx context.Context, userID string) (int64, error) {
	sql, args, err := squirrel.Delete("expenses").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		return 0, unavailable("delete expenses", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, unavailable("delete expenses", err)
	}

	r.logger.Info("Expenses deleted",
		zap.String("user_id", userID),
		zap.Int64("count", deleted),
	)
	return deleted, nil
}
