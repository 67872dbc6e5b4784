package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"mealhub/internal/domain"
	"mealhub/internal/geo"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			balance BIGINT NOT NULL CHECK (balance >= 0)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			account_id INTEGER NOT NULL,
			city TEXT, street TEXT, house_number TEXT, postal_code TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			account_id INTEGER NOT NULL,
			city TEXT, street TEXT, house_number TEXT, postal_code TEXT,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			courier_type VARCHAR(20) NOT NULL DEFAULT 'BICYCLE',
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			restaurant_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			price BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id VARCHAR(36) PRIMARY KEY,
			customer_id INTEGER NOT NULL,
			restaurant_id INTEGER NOT NULL,
			subtotal BIGINT NOT NULL,
			fee BIGINT NOT NULL,
			total BIGINT NOT NULL,
			status VARCHAR(20) NOT NULL,
			created_at TIMESTAMP NOT NULL,
			estimated_delivery_at TIMESTAMP NOT NULL,
			qr_code BYTEA
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id VARCHAR(36) NOT NULL,
			menu_item_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ledger_entries (
			id SERIAL PRIMARY KEY,
			account_id INTEGER NOT NULL,
			delta BIGINT NOT NULL,
			balance BIGINT NOT NULL,
			order_id VARCHAR(36),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id VARCHAR(36) PRIMARY KEY,
			order_id VARCHAR(36) NOT NULL UNIQUE,
			restaurant_id INTEGER NOT NULL,
			rating INTEGER NOT NULL,
			comment TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Transfer applies a standalone balance movement in its own transaction.
func (r *PostgresRepository) Transfer(ctx context.Context, transfer domain.Transfer) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := applyTransfer(ctx, tx, transfer); err != nil {
		return err
	}
	return tx.Commit()
}

// applyTransfer moves balances inside tx: all account rows are locked in
// ascending id order, every debit is checked against the running balance,
// and each leg leaves an audit row in ledger_entries.
func applyTransfer(ctx context.Context, tx *sql.Tx, transfer domain.Transfer) error {
	balances := make(map[int]domain.Cents)
	for _, accountID := range transfer.AccountIDs() {
		var balance domain.Cents
		err := tx.QueryRowContext(ctx,
			"SELECT balance FROM accounts WHERE id = $1 FOR UPDATE",
			accountID).Scan(&balance)
		if err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("account %d: %w", accountID, ErrNotFound)
			}
			return err
		}
		balances[accountID] = balance
	}

	type legEntry struct {
		accountID int
		delta     domain.Cents
		balance   domain.Cents
	}
	var entries []legEntry

	for _, leg := range transfer.Debits {
		if balances[leg.AccountID] < leg.Amount {
			return &domain.InsufficientFundsError{
				AccountID: leg.AccountID,
				Shortfall: leg.Amount - balances[leg.AccountID],
			}
		}
		balances[leg.AccountID] -= leg.Amount
		entries = append(entries, legEntry{leg.AccountID, -leg.Amount, balances[leg.AccountID]})
	}
	for _, leg := range transfer.Credits {
		balances[leg.AccountID] += leg.Amount
		entries = append(entries, legEntry{leg.AccountID, leg.Amount, balances[leg.AccountID]})
	}

	for accountID, balance := range balances {
		if _, err := tx.ExecContext(ctx,
			"UPDATE accounts SET balance = $1 WHERE id = $2",
			balance, accountID); err != nil {
			return err
		}
	}
	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ledger_entries (account_id, delta, balance, order_id)
			 VALUES ($1, $2, $3, $4)`,
			entry.accountID, entry.delta, entry.balance, nullString(transfer.OrderID)); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateOrderSettled persists the order, its item snapshot and the
// three-way settlement as one transaction. Either the PENDING order exists
// with funds moved, or nothing does.
func (r *PostgresRepository) CreateOrderSettled(ctx context.Context, order *domain.Order, transfer domain.Transfer) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := applyTransfer(ctx, tx, transfer); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, restaurant_id, subtotal, fee, total, status, created_at, estimated_delivery_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, order.ID, order.CustomerID, order.RestaurantID, order.Subtotal, order.Fee,
		order.Total, order.Status, order.CreatedAt, order.EstimatedDeliveryAt); err != nil {
		return err
	}

	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
		`, order.ID, item.MenuItemID, item.Name, item.Quantity, item.UnitPrice); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, customer_id, restaurant_id, subtotal, fee, total, status, created_at, estimated_delivery_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&order.ID, &order.CustomerID, &order.RestaurantID, &order.Subtotal,
		&order.Fee, &order.Total, &order.Status, &order.CreatedAt, &order.EstimatedDeliveryAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT menu_item_id, name, quantity, unit_price
		FROM order_items WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	return &order, rows.Err()
}

// UpdateOrderStatus is a compare-and-swap on (id, status). A false return
// with no error means a concurrent writer moved the order first.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2 AND status = $3",
		to, orderID, from)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID string, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE orders SET qr_code = $1 WHERE id = $2", qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID string) ([]byte, error) {
	var qr []byte
	err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return qr, nil
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, restaurantID, itemID int) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, restaurant_id, name, price FROM menu_items WHERE id = $1 AND restaurant_id = $2",
		itemID, restaurantID).
		Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Price)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, account_id, COALESCE(city, ''), COALESCE(street, ''),
		       COALESCE(house_number, ''), COALESCE(postal_code, ''),
		       latitude, longitude, courier_type, rating, created_at
		FROM restaurants WHERE id = $1
	`, id).Scan(&rest.ID, &rest.Name, &rest.AccountID,
		&rest.Address.City, &rest.Address.Street, &rest.Address.HouseNumber, &rest.Address.PostalCode,
		&rest.Latitude, &rest.Longitude, &rest.CourierType, &rest.Rating, &rest.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, account_id, COALESCE(city, ''), COALESCE(street, ''),
		       COALESCE(house_number, ''), COALESCE(postal_code, ''),
		       latitude, longitude, courier_type, rating, created_at
		FROM restaurants
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.AccountID,
			&rest.Address.City, &rest.Address.Street, &rest.Address.HouseNumber, &rest.Address.PostalCode,
			&rest.Latitude, &rest.Longitude, &rest.CourierType, &rest.Rating, &rest.CreatedAt); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

// UpdateRestaurantCoordinates is the write-through promotion: once stored,
// the coordinate is authoritative and resolution is skipped for good.
func (r *PostgresRepository) UpdateRestaurantCoordinates(ctx context.Context, id int, point geo.Point) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE restaurants SET latitude = $1, longitude = $2 WHERE id = $3",
		point.Latitude, point.Longitude, id)
	return err
}

func (r *PostgresRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, account_id, COALESCE(city, ''), COALESCE(street, ''),
		       COALESCE(house_number, ''), COALESCE(postal_code, '')
		FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Name, &user.AccountID,
		&user.Address.City, &user.Address.Street, &user.Address.HouseNumber, &user.Address.PostalCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// MostCommonCityPostal returns the most frequent city+postal pair across
// registered users, the population-weighted guess for a customer whose
// address cannot be resolved.
func (r *PostgresRepository) MostCommonCityPostal(ctx context.Context) (string, string, error) {
	var city, postal string
	err := r.DB.QueryRowContext(ctx, `
		SELECT city, postal_code FROM users
		WHERE city IS NOT NULL AND city <> '' AND postal_code IS NOT NULL AND postal_code <> ''
		GROUP BY city, postal_code
		ORDER BY COUNT(*) DESC, city, postal_code
		LIMIT 1
	`).Scan(&city, &postal)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", "", ErrNotFound
		}
		return "", "", err
	}
	return city, postal, nil
}

// InsertReviewAndRecompute inserts the review and rewrites the
// restaurant's displayed rating in one transaction. The restaurant row
// lock serializes concurrent submissions so the full post-insert review
// set is what gets averaged.
func (r *PostgresRepository) InsertReviewAndRecompute(ctx context.Context, review *domain.Review) (float64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var restaurantID int
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM restaurants WHERE id = $1 FOR UPDATE",
		review.RestaurantID).Scan(&restaurantID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("restaurant %d: %w", review.RestaurantID, ErrNotFound)
		}
		return 0, err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO reviews (id, order_id, restaurant_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, review.ID, review.OrderID, review.RestaurantID, review.Rating, review.Comment).
		Scan(&review.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrDuplicate
		}
		return 0, err
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT rating FROM reviews WHERE restaurant_id = $1", review.RestaurantID)
	if err != nil {
		return 0, err
	}
	var sum, count int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			rows.Close()
			return 0, err
		}
		sum += rating
		count++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	average := domain.RoundRating(float64(sum) / float64(count))
	if _, err := tx.ExecContext(ctx,
		"UPDATE restaurants SET rating = $1 WHERE id = $2",
		average, review.RestaurantID); err != nil {
		return 0, err
	}

	return average, tx.Commit()
}

func (r *PostgresRepository) ListReviews(ctx context.Context, restaurantID int) ([]domain.Review, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_id, restaurant_id, rating, COALESCE(comment, ''), created_at
		FROM reviews
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(&review.ID, &review.OrderID, &review.RestaurantID,
			&review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
