package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/cart"
)

var ErrOrderNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

// Create inserts the order and all its line items in one transaction.
func (r *postgresRepository) Create(ctx context.Context, o *Order) (err error) {
	if o.ID == uuid.Nil {
		id, genErr := uuid.NewV4()
		if genErr != nil {
			return fmt.Errorf("repository: failed to generate order id: %w", genErr)
		}
		o.ID = id
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Stringer("order_id", o.ID).Msg("repository: failed to rollback transaction")
			}
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
		}
	}()

	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	orderQuery := `
		INSERT INTO orders (
			id, first_name, last_name, email, phone,
			billing_address, billing_city, billing_zip, billing_country,
			shipping_address, shipping_city, shipping_zip, shipping_country,
			shipping_method, payment_method, notes,
			subtotal, tax, shipping_cost, total,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`
	_, err = tx.Exec(ctx, orderQuery,
		o.ID,
		o.Customer.FirstName, o.Customer.LastName, o.Customer.Email, o.Customer.Phone,
		o.BillingAddress.Address, o.BillingAddress.City, o.BillingAddress.Zip, o.BillingAddress.Country,
		o.ShippingAddress.Address, o.ShippingAddress.City, o.ShippingAddress.Zip, o.ShippingAddress.Country,
		o.ShippingMethod, o.PaymentMethod, o.Notes,
		o.Totals.Subtotal, o.Totals.Tax, o.Totals.Shipping, o.Totals.Total,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, title, price, quantity, buy_unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, item := range o.Items {
		itemID, genErr := uuid.NewV4()
		if genErr != nil {
			return fmt.Errorf("repository: failed to generate order item id: %w", genErr)
		}

		_, err = tx.Exec(ctx, itemQuery,
			itemID,
			o.ID,
			item.ProductID,
			item.Title,
			item.Price,
			item.Quantity,
			item.BuyUnit.String(),
			now,
		)
		if err != nil {
			return fmt.Errorf("repository: failed to insert order item for order %s: %w", o.ID, err)
		}
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	orderQuery := `
		SELECT id, first_name, last_name, email, phone,
			billing_address, billing_city, billing_zip, billing_country,
			shipping_address, shipping_city, shipping_zip, shipping_country,
			shipping_method, payment_method, notes,
			subtotal, tax, shipping_cost, total,
			created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var o Order
	err := r.db.QueryRow(ctx, orderQuery, id).Scan(
		&o.ID,
		&o.Customer.FirstName, &o.Customer.LastName, &o.Customer.Email, &o.Customer.Phone,
		&o.BillingAddress.Address, &o.BillingAddress.City, &o.BillingAddress.Zip, &o.BillingAddress.Country,
		&o.ShippingAddress.Address, &o.ShippingAddress.City, &o.ShippingAddress.Zip, &o.ShippingAddress.Country,
		&o.ShippingMethod, &o.PaymentMethod, &o.Notes,
		&o.Totals.Subtotal, &o.Totals.Tax, &o.Totals.Shipping, &o.Totals.Total,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order by id %s: %w", id, err)
	}

	itemsQuery := `
		SELECT product_id, title, price, quantity, buy_unit
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items for order %s: %w", id, err)
	}
	defer rows.Close()

	items := make([]cart.LineItem, 0)
	for rows.Next() {
		var item cart.LineItem
		var unit string
		if err := rows.Scan(&item.ProductID, &item.Title, &item.Price, &item.Quantity, &unit); err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item for order %s: %w", id, err)
		}
		item.BuyUnit = cart.BuyUnit(unit)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items for order %s: %w", id, err)
	}

	o.Items = items
	return &o, nil
}
