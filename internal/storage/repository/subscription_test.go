package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &Storage{DB: db}, mock
}

var subscriptionCols = []string{
	"id", "user_id", "name", "company", "price", "currency", "details", "frequency",
	"category", "payment_method", "status", "start_date", "renewal_date", "created_at", "updated_at",
}

func subscriptionRow(rows *sqlmock.Rows, id, name string, renewalDate any) *sqlmock.Rows {
	now := time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "user-1", name, "Acme", 9.99, "USD", nil, "monthly",
		"entertainment", "credit card", "active", nil, renewalDate, now, now)
}

func TestListSubscriptions_OrderedByRenewalDateNullsLast(t *testing.T) {
	st, mock := newTestStorage(t)

	rows := sqlmock.NewRows(subscriptionCols)
	rows = subscriptionRow(rows, "sub-1", "Netflix", time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC))
	rows = subscriptionRow(rows, "sub-2", "Spotify", time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC))
	rows = subscriptionRow(rows, "sub-3", "Gym", nil)

	mock.ExpectQuery(`ORDER BY renewal_date ASC NULLS LAST`).
		WithArgs("user-1").
		WillReturnRows(rows)

	got, err := st.ListSubscriptions(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "sub-1", got[0].ID)
	assert.Equal(t, "sub-2", got[1].ID)
	assert.Equal(t, "sub-3", got[2].ID)
	require.NotNil(t, got[0].RenewalDate)
	require.NotNil(t, got[1].RenewalDate)
	assert.True(t, got[0].RenewalDate.Before(*got[1].RenewalDate))
	assert.Nil(t, got[2].RenewalDate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReminders_WindowIsInclusiveFiveDays(t *testing.T) {
	st, mock := newTestStorage(t)

	today := time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(subscriptionCols)
	rows = subscriptionRow(rows, "sub-1", "Netflix", today)
	rows = subscriptionRow(rows, "sub-2", "Spotify", today.AddDate(0, 0, 5))

	mock.ExpectQuery(`(?s)status = 'active'.*renewal_date IS NOT NULL.*renewal_date >= CURRENT_DATE.*renewal_date <= CURRENT_DATE \+ INTERVAL '5 days'.*ORDER BY renewal_date ASC`).
		WithArgs("user-1").
		WillReturnRows(rows)

	got, err := st.ListReminders(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "sub-1", got[0].ID)
	assert.Equal(t, "sub-2", got[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadSubscription_NoRowsReturnsNil(t *testing.T) {
	st, mock := newTestStorage(t)

	mock.ExpectQuery(`FROM subscriptions WHERE id = \$1`).
		WithArgs("sub-404").
		WillReturnRows(sqlmock.NewRows(subscriptionCols))

	got, err := st.ReadSubscription(context.Background(), "sub-404")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveSubscription_ReturnsAffectedRows(t *testing.T) {
	st, mock := newTestStorage(t)

	mock.ExpectExec(`DELETE FROM subscriptions WHERE id = \$1`).
		WithArgs("sub-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	count, err := st.RemoveSubscription(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
