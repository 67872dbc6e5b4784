package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"mealhub/internal/domain"
)

func setupTestDB(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return NewPostgresRepository(mockDB), mock
}

func settlementFixture() domain.Transfer {
	return domain.Transfer{
		OrderID: "o-1",
		Debits:  []domain.TransferLeg{{AccountID: 7, Amount: 2128}},
		Credits: []domain.TransferLeg{{AccountID: 9, Amount: 1850}, {AccountID: 1, Amount: 278}},
	}
}

func TestTransfer_LocksAccountsInAscendingOrder(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(0))
	mock.ExpectQuery("SELECT balance FROM accounts").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(5000))
	mock.ExpectQuery("SELECT balance FROM accounts").WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(100))

	// Balance writes iterate a map, so the remaining statements are not
	// order-checked.
	mock.MatchExpectationsInOrder(false)
	mock.ExpectExec("UPDATE accounts SET balance").WithArgs(278, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE accounts SET balance").WithArgs(2872, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE accounts SET balance").WithArgs(1950, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO ledger_entries").WithArgs(7, -2128, 2872, "o-1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO ledger_entries").WithArgs(9, 1850, 1950, "o-1").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO ledger_entries").WithArgs(1, 278, 278, "o-1").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	err := repo.Transfer(context.Background(), settlementFixture())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransfer_InsufficientFundsRollsBack(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(0))
	mock.ExpectQuery("SELECT balance FROM accounts").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(100))
	mock.ExpectQuery("SELECT balance FROM accounts").WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(0))
	mock.ExpectRollback()

	err := repo.Transfer(context.Background(), settlementFixture())

	var insufficient *domain.InsufficientFundsError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 7, insufficient.AccountID)
	assert.Equal(t, domain.Cents(2028), insufficient.Shortfall)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransfer_UnknownAccount(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts").WithArgs(1).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Transfer(context.Background(), settlementFixture())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderSettled_SingleTransaction(t *testing.T) {
	repo, mock := setupTestDB(t)

	order := &domain.Order{
		ID: "o-1", CustomerID: 5, RestaurantID: 10,
		Subtotal: 1850, Fee: 278, Total: 2128,
		Status:              domain.OrderStatusPending,
		CreatedAt:           time.Now(),
		EstimatedDeliveryAt: time.Now().Add(45 * time.Minute),
		Items: []domain.OrderItem{
			{MenuItemID: 3, Name: "Ramen", Quantity: 2, UnitPrice: 925},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(0))
	mock.ExpectQuery("SELECT balance FROM accounts").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(3000))
	mock.ExpectQuery("SELECT balance FROM accounts").WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(0))

	mock.MatchExpectationsInOrder(false)
	mock.ExpectExec("UPDATE accounts SET balance").WithArgs(278, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE accounts SET balance").WithArgs(872, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE accounts SET balance").WithArgs(1850, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO ledger_entries").WithArgs(7, -2128, 872, "o-1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO ledger_entries").WithArgs(9, 1850, 1850, "o-1").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO ledger_entries").WithArgs(1, 278, 278, "o-1").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec("INSERT INTO orders").
		WithArgs("o-1", 5, 10, 1850, 278, 2128, "PENDING", order.CreatedAt, order.EstimatedDeliveryAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").WithArgs("o-1", 3, "Ramen", 2, 925).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateOrderSettled(context.Background(), order, settlementFixture())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatus_CompareAndSwap(t *testing.T) {
	repo, mock := setupTestDB(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("CONFIRMED", "o-1", "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 1))
	applied, err := repo.UpdateOrderStatus(ctx, "o-1", domain.OrderStatusPending, domain.OrderStatusConfirmed)
	assert.NoError(t, err)
	assert.True(t, applied)

	// A second identical swap finds the guard status gone.
	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("CONFIRMED", "o-1", "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 0))
	applied, err = repo.UpdateOrderStatus(ctx, "o-1", domain.OrderStatusPending, domain.OrderStatusConfirmed)
	assert.NoError(t, err)
	assert.False(t, applied)
}

func TestGetMenuItem_NotFound(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectQuery("SELECT id, restaurant_id, name, price FROM menu_items").
		WithArgs(77, 10).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetMenuItem(context.Background(), 10, 77)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertReviewAndRecompute_Success(t *testing.T) {
	repo, mock := setupTestDB(t)

	review := &domain.Review{ID: "r-1", OrderID: "o-1", RestaurantID: 10, Rating: 5, Comment: "tasty"}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM restaurants").WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs("r-1", "o-1", 10, 5, "tasty").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectQuery("SELECT rating FROM reviews").WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"rating"}).AddRow(5).AddRow(4).AddRow(5))
	mock.ExpectExec("UPDATE restaurants SET rating").WithArgs(4.7, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	average, err := repo.InsertReviewAndRecompute(context.Background(), review)
	assert.NoError(t, err)
	assert.Equal(t, 4.7, average)
	assert.False(t, review.CreatedAt.IsZero())
}

func TestInsertReviewAndRecompute_DuplicateOrder(t *testing.T) {
	repo, mock := setupTestDB(t)

	review := &domain.Review{ID: "r-2", OrderID: "o-1", RestaurantID: 10, Rating: 4}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM restaurants").WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs("r-2", "o-1", 10, 4, "").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.InsertReviewAndRecompute(context.Background(), review)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestInsertReviewAndRecompute_UnknownRestaurant(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM restaurants").WithArgs(99).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.InsertReviewAndRecompute(context.Background(),
		&domain.Review{ID: "r-3", OrderID: "o-9", RestaurantID: 99, Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetOrder_NotFound(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectQuery("SELECT id, customer_id, restaurant_id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetOrder(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, errors.Is(err, ErrDuplicate))
}
