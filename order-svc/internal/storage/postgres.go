package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"food-delivery/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Errorf(domain.ErrNotFound, "%s not found", what)
	}
	return err
}

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO restaurants (name, address, cuisine, rating, image_url, is_active) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		rest.Name, rest.Address, rest.Cuisine, rest.Rating, rest.ImageURL, rest.IsActive,
	).Scan(&rest.ID)
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context, activeOnly bool) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(address, ''), COALESCE(cuisine, ''), COALESCE(rating, 0), COALESCE(image_url, ''), is_active
		FROM restaurants
		WHERE is_active OR NOT $1
		ORDER BY id`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Cuisine, &rest.Rating, &rest.ImageURL, &rest.IsActive); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(address, ''), COALESCE(cuisine, ''), COALESCE(rating, 0), COALESCE(image_url, ''), is_active
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Cuisine, &rest.Rating, &rest.ImageURL, &rest.IsActive)
	if err != nil {
		return nil, notFound(err, "Restaurant")
	}
	return &rest, nil
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO menu_items (restaurant_id, name, description, price, category, image_url) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		item.RestaurantID, item.Name, item.Description, item.Price, item.Category, item.ImageURL).
		Scan(&item.ID)
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, COALESCE(category, ''), COALESCE(image_url, '')
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY id`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price, &item.Category, &item.ImageURL); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, COALESCE(category, ''), COALESCE(image_url, '')
		FROM menu_items
		WHERE id = $1`, id).
		Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price, &item.Category, &item.ImageURL)
	if err != nil {
		return nil, notFound(err, "Menu item")
	}
	return &item, nil
}

// UpdateMenuItemPrice changes the catalog price only; order_items keep the
// price they were created with.
func (r *PostgresRepository) UpdateMenuItemPrice(ctx context.Context, id int, price decimal.Decimal) error {
	result, err := r.DB.ExecContext(ctx, "UPDATE menu_items SET price = $1 WHERE id = $2", price, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.Errorf(domain.ErrNotFound, "Menu item not found")
	}
	return nil
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, restaurant_id, total, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, order.UserID, order.RestaurantID, order.Total, order.Status).Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, order.ID, item.MenuItemID, item.Quantity, item.Price).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanOrder reads the order columns. restaurant_id becomes NULL when the
// restaurant is deleted and is then left as 0.
func scanOrder(row rowScanner, order *domain.Order) error {
	var restaurantID sql.NullInt64
	if err := row.Scan(&order.ID, &order.UserID, &restaurantID, &order.Total, &order.Status, &order.CreatedAt); err != nil {
		return err
	}
	order.RestaurantID = int(restaurantID.Int64)
	return nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	if err := scanOrder(r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, restaurant_id, total, status, created_at
		FROM orders WHERE id = $1
	`, id), &order); err != nil {
		return nil, notFound(err, "Order")
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.menu_item_id, COALESCE(m.name, 'Unknown Item'), oi.quantity, oi.price
		FROM order_items oi
		LEFT JOIN menu_items m ON oi.menu_item_id = m.id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var menuItemID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.OrderID, &menuItemID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		item.MenuItemID = int(menuItemID.Int64)
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PostgresRepository) GetOrderDetails(ctx context.Context, id int) (*domain.OrderDetails, error) {
	order, err := r.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	details := &domain.OrderDetails{Order: *order, RestaurantName: "Unknown Restaurant"}

	var name string
	err = r.DB.QueryRowContext(ctx, "SELECT name FROM restaurants WHERE id = $1", order.RestaurantID).Scan(&name)
	switch {
	case err == nil:
		details.RestaurantName = name
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	payment, err := r.GetPaymentByOrder(ctx, id)
	switch {
	case err == nil:
		details.Payment = payment
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	var delivery domain.Delivery
	err = r.DB.QueryRowContext(ctx, `
		SELECT id, order_id, address, delivery_date, status
		FROM deliveries WHERE order_id = $1
	`, id).Scan(&delivery.ID, &delivery.OrderID, &delivery.Address, &delivery.Date, &delivery.Status)
	switch {
	case err == nil:
		details.Delivery = &delivery
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	return details, nil
}

// CancelOrder marks the order cancelled and refunds a completed payment in a
// single transaction. Orders outside pending/confirmed yield ErrConflict.
func (r *PostgresRepository) CancelOrder(ctx context.Context, id int) (*domain.Cancellation, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var order domain.Order
	if err := scanOrder(tx.QueryRowContext(ctx, `
		SELECT id, user_id, restaurant_id, total, status, created_at
		FROM orders WHERE id = $1
		FOR UPDATE
	`, id), &order); err != nil {
		return nil, notFound(err, "Order")
	}

	if !order.Status.Cancellable() {
		return nil, domain.Errorf(domain.ErrConflict, "Order cannot be cancelled in its current status: %s", order.Status)
	}

	if _, err := tx.ExecContext(ctx, "UPDATE orders SET status = $1 WHERE id = $2", domain.OrderCancelled, id); err != nil {
		return nil, err
	}
	order.Status = domain.OrderCancelled
	result := &domain.Cancellation{Order: order}

	var payment domain.Payment
	err = tx.QueryRowContext(ctx, `
		SELECT id, order_id, amount, method, status, COALESCE(transaction_id, ''), created_at
		FROM payments WHERE order_id = $1
		FOR UPDATE
	`, id).Scan(&payment.ID, &payment.OrderID, &payment.Amount, &payment.Method, &payment.Status, &payment.TransactionID, &payment.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, err
	default:
		if payment.Status == domain.PaymentCompleted {
			if _, err := tx.ExecContext(ctx, "UPDATE payments SET status = $1 WHERE id = $2", domain.PaymentRefunded, payment.ID); err != nil {
				return nil, err
			}
			payment.Status = domain.PaymentRefunded
			result.Refunded = true
		}
		result.Payment = &payment
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetPaymentByOrder(ctx context.Context, orderID int) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, order_id, amount, method, status, COALESCE(transaction_id, ''), created_at
		FROM payments WHERE order_id = $1
	`, orderID).Scan(&payment.ID, &payment.OrderID, &payment.Amount, &payment.Method, &payment.Status, &payment.TransactionID, &payment.CreatedAt)
	if err != nil {
		return nil, notFound(err, "Payment")
	}
	return &payment, nil
}

// SavePayment records the payment for an order. An existing pending payment
// is updated in place; a completed or refunded one, or a cancelled order,
// yields ErrConflict.
func (r *PostgresRepository) SavePayment(ctx context.Context, payment *domain.Payment) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status domain.OrderStatus
	if err := tx.QueryRowContext(ctx, "SELECT status FROM orders WHERE id = $1 FOR UPDATE", payment.OrderID).Scan(&status); err != nil {
		return notFound(err, "Order")
	}
	if status == domain.OrderCancelled {
		return domain.Errorf(domain.ErrConflict, "Order #%d has been cancelled", payment.OrderID)
	}

	var existingID int
	var existingStatus domain.PaymentStatus
	err = tx.QueryRowContext(ctx, "SELECT id, status FROM payments WHERE order_id = $1 FOR UPDATE", payment.OrderID).
		Scan(&existingID, &existingStatus)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO payments (order_id, amount, method, status, transaction_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`, payment.OrderID, payment.Amount, payment.Method, payment.Status, payment.TransactionID).
			Scan(&payment.ID, &payment.CreatedAt); err != nil {
			return err
		}
	case err != nil:
		return err
	case existingStatus != domain.PaymentPending:
		return domain.Errorf(domain.ErrConflict, "Order #%d already has a %s payment", payment.OrderID, existingStatus)
	default:
		if err := tx.QueryRowContext(ctx, `
			UPDATE payments SET amount = $1, method = $2
			WHERE id = $3
			RETURNING id, status, COALESCE(transaction_id, ''), created_at
		`, payment.Amount, payment.Method, existingID).
			Scan(&payment.ID, &payment.Status, &payment.TransactionID, &payment.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// UpdatePaymentStatus moves a pending payment to the given status, which
// must be pending or completed. Refunds only happen through CancelOrder.
// Completing an online payment also confirms its still-pending order.
func (r *PostgresRepository) UpdatePaymentStatus(ctx context.Context, paymentID int, status domain.PaymentStatus) (*domain.Payment, error) {
	if status == domain.PaymentRefunded {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Payments are refunded by cancelling the order")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var payment domain.Payment
	if err := tx.QueryRowContext(ctx, `
		SELECT id, order_id, amount, method, status, COALESCE(transaction_id, ''), created_at
		FROM payments WHERE id = $1
		FOR UPDATE
	`, paymentID).Scan(&payment.ID, &payment.OrderID, &payment.Amount, &payment.Method, &payment.Status, &payment.TransactionID, &payment.CreatedAt); err != nil {
		return nil, notFound(err, "Payment")
	}

	var orderStatus domain.OrderStatus
	if err := tx.QueryRowContext(ctx, "SELECT status FROM orders WHERE id = $1 FOR UPDATE", payment.OrderID).Scan(&orderStatus); err != nil {
		return nil, notFound(err, "Order")
	}
	if orderStatus == domain.OrderCancelled {
		return nil, domain.Errorf(domain.ErrConflict, "Order #%d has been cancelled", payment.OrderID)
	}
	if payment.Status != domain.PaymentPending {
		return nil, domain.Errorf(domain.ErrConflict, "Payment #%d is already %s", paymentID, payment.Status)
	}

	if _, err := tx.ExecContext(ctx, "UPDATE payments SET status = $1 WHERE id = $2", status, paymentID); err != nil {
		return nil, err
	}
	payment.Status = status

	if status == domain.PaymentCompleted && payment.Method == domain.PaymentOnline && orderStatus == domain.OrderPending {
		if _, err := tx.ExecContext(ctx, "UPDATE orders SET status = $1 WHERE id = $2", domain.OrderConfirmed, payment.OrderID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdateOrderStatus moves an order forward along pending, confirmed,
// preparing. Cancellation goes through CancelOrder.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var order domain.Order
	if err := scanOrder(tx.QueryRowContext(ctx, `
		SELECT id, user_id, restaurant_id, total, status, created_at
		FROM orders WHERE id = $1
		FOR UPDATE
	`, id), &order); err != nil {
		return nil, notFound(err, "Order")
	}
	if !order.Status.CanAdvanceTo(status) {
		return nil, domain.Errorf(domain.ErrConflict, "Order #%d cannot move from %s to %s", id, order.Status, status)
	}

	if _, err := tx.ExecContext(ctx, "UPDATE orders SET status = $1 WHERE id = $2", status, id); err != nil {
		return nil, err
	}
	order.Status = status

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &order, nil
}

// SetDeliveryAddress creates or replaces the delivery record of an order that
// can still be changed.
func (r *PostgresRepository) SetDeliveryAddress(ctx context.Context, orderID int, address string) (*domain.Delivery, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var status domain.OrderStatus
	if err := tx.QueryRowContext(ctx, "SELECT status FROM orders WHERE id = $1 FOR UPDATE", orderID).Scan(&status); err != nil {
		return nil, notFound(err, "Order")
	}
	if !status.Cancellable() {
		return nil, domain.Errorf(domain.ErrConflict, "Order #%d cannot be modified in its current status: %s", orderID, status)
	}

	var delivery domain.Delivery
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO deliveries (order_id, address)
		VALUES ($1, $2)
		ON CONFLICT (order_id) DO UPDATE SET address = EXCLUDED.address
		RETURNING id, order_id, address, delivery_date, status
	`, orderID, address).Scan(&delivery.ID, &delivery.OrderID, &delivery.Address, &delivery.Date, &delivery.Status); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT,
			cuisine TEXT,
			rating NUMERIC(3, 2) DEFAULT 0,
			image_url TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC(10, 2) NOT NULL CHECK (price >= 0),
			category TEXT DEFAULT 'Other',
			image_url TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			restaurant_id INTEGER REFERENCES restaurants(id) ON DELETE SET NULL,
			total NUMERIC(10, 2) NOT NULL CHECK (total >= 0),
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id INTEGER REFERENCES menu_items(id) ON DELETE SET NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			price NUMERIC(10, 2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL UNIQUE REFERENCES orders(id) ON DELETE CASCADE,
			amount NUMERIC(10, 2) NOT NULL,
			method TEXT NOT NULL DEFAULT 'online',
			status TEXT NOT NULL DEFAULT 'pending',
			transaction_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS deliveries (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL UNIQUE REFERENCES orders(id) ON DELETE CASCADE,
			address TEXT NOT NULL,
			delivery_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			status TEXT NOT NULL DEFAULT 'pending'
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
