package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// subscriptionColumns — полный набор колонок подписки в порядке сканирования.
const subscriptionColumns = `id, user_id, name, company, price, currency, details, frequency,
	category, payment_method, status, start_date, renewal_date, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*models.Subscription, error) {
	var (
		item        models.Subscription
		details     sql.NullString
		frequency   sql.NullString
		startDate   sql.NullTime
		renewalDate sql.NullTime
	)
	if err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.Company, &item.Price,
		&item.Currency, &details, &frequency, &item.Category, &item.PaymentMethod,
		&item.Status, &startDate, &renewalDate, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	if details.Valid {
		item.Details = &details.String
	}
	if frequency.Valid {
		item.Frequency = &frequency.String
	}
	if startDate.Valid {
		d := startDate.Time
		item.StartDate = &d
	}
	if renewalDate.Valid {
		d := renewalDate.Time
		item.RenewalDate = &d
	}
	return &item, nil
}

// CreateSubscription вставляет новую запись подписки и возвращает её в полном виде.
func (s *Storage) CreateSubscription(ctx context.Context, entry models.Subscription) (*models.Subscription, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_id, name, company, price, currency, details,
			      frequency, category, payment_method, status, start_date, renewal_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING ` + subscriptionColumns
	row := s.DB.QueryRowContext(ctx, query,
		entry.UserID, entry.Name, entry.Company, entry.Price, entry.Currency, entry.Details,
		entry.Frequency, entry.Category, entry.PaymentMethod, entry.Status,
		entry.StartDate, entry.RenewalDate)
	result, err := scanSubscription(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, constraintErr(err))
	}
	return result, nil
}

// ReadSubscription возвращает подписку по её ID. Возвращает (nil, nil),
// если записи не существует.
func (s *Storage) ReadSubscription(ctx context.Context, id string) (*models.Subscription, error) {
	const op = "storage.ReadSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)
	result, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListSubscriptions возвращает все подписки пользователя, отсортированные
// по дате продления по возрастанию; записи без даты продления — в конце.
func (s *Storage) ListSubscriptions(ctx context.Context, userID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE user_id = $1
			  ORDER BY renewal_date ASC NULLS LAST`
	return s.querySubscriptions(ctx, op, query, userID)
}

// ListReminders возвращает активные подписки пользователя с датой продления
// в окне [CURRENT_DATE, CURRENT_DATE + 5 дней] включительно, по возрастанию
// даты продления. Выборка опирается на сохранённую колонку status.
func (s *Storage) ListReminders(ctx context.Context, userID string) ([]*models.Subscription, error) {
	const op = "storage.ListReminders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE user_id = $1
			    AND status = 'active'
			    AND renewal_date IS NOT NULL
			    AND renewal_date >= CURRENT_DATE
			    AND renewal_date <= CURRENT_DATE + INTERVAL '5 days'
			  ORDER BY renewal_date ASC`
	return s.querySubscriptions(ctx, op, query, userID)
}

func (s *Storage) querySubscriptions(ctx context.Context, op, query string, args ...any) ([]*models.Subscription, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		item, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSubscription применяет частичное обновление к подписке одной командой
// и возвращает обновлённую запись. Ключи fields — имена snake_case колонок.
func (s *Storage) UpdateSubscription(ctx context.Context, id string, fields map[string]any) (*models.Subscription, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query, args, err := sq.Update("subscriptions").
		SetMap(fields).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + subscriptionColumns).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.DB.QueryRowContext(ctx, query, args...)
	result, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, constraintErr(err))
	}
	return result, nil
}

// RemoveSubscription удаляет подписку по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveSubscription(ctx context.Context, id string) (int64, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
