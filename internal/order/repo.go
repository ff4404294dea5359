package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("order not found")

// InsufficientStockError names the product that ran out between validation
// and commit (concurrent depletion).
type InsufficientStockError struct {
	ProductID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

type ListQuery struct {
	UserID string // empty = all users (admin)
	Status Status // empty = any
	Page   int
	Limit  int
}

type Repository interface {
	// Create atomically decrements stock for every item and inserts the
	// order plus its items. Any failure rolls back the whole batch.
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, q ListQuery) ([]Order, int, error)
	// UpdateStatusFrom transitions id from 'from' to 'to'. Returns false
	// when the order exists but is no longer in 'from'.
	UpdateStatusFrom(ctx context.Context, id string, from, to Status) (bool, error)
	SetPaymentInfo(ctx context.Context, id, paymentLinkID, paymentReference string) error
	// MarkPaidByReference sets PAID on the PENDING order holding the
	// reference. Returns the order id and whether a row changed; repeated
	// delivery and cancelled orders are a clean no-op.
	MarkPaidByReference(ctx context.Context, paymentReference string) (string, bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Conditional decrement: correctness must not depend on the ambient
	// isolation level. Zero rows affected means the stock moved under us.
	for _, it := range o.Items {
		tag, err := tx.Exec(ctx, `
			UPDATE products
			SET quantity = quantity - $2, updated_at = NOW()
			WHERE id = $1 AND quantity >= $2 AND status = 'ACTIVE'
		`, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return &InsufficientStockError{ProductID: it.ProductID}
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, total_amount, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NOW(),NOW())
	`, o.ID, o.UserID, o.TotalAmount, o.Status); err != nil {
		return err
	}

	for i := range o.Items {
		it := &o.Items[i]
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, price, quantity)
			VALUES ($1,$2,$3,$4,$5)
		`, it.ID, o.ID, it.ProductID, it.Price, it.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

const orderCols = `
	o.id, o.user_id, u.name, u.email, o.total_amount::text, o.status,
	COALESCE(o.payment_link_id,''), COALESCE(o.payment_reference,''),
	o.created_at, o.updated_at`

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	err := r.db.QueryRow(ctx, `
		SELECT `+orderCols+`
		FROM orders o JOIN users u ON u.id = o.user_id
		WHERE o.id=$1
	`, id).Scan(&o.ID, &o.UserID, &o.UserName, &o.UserEmail, &o.TotalAmount, &o.Status,
		&o.PaymentLinkID, &o.PaymentReference, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *PGRepo) getItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.order_id, COALESCE(i.product_id::text,''),
		       COALESCE(p.name,'Deleted Product'), COALESCE(p.image_url,''),
		       i.price::text, i.quantity
		FROM order_items i LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id=$1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID,
			&it.ProductName, &it.ProductImage, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List returns one page of orders (newest first) plus the total count; the
// count runs concurrently since the reads are independent.
func (r *PGRepo) List(ctx context.Context, q ListQuery) ([]Order, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 50 {
		q.Limit = 10
	}

	where := `WHERE ($1 = '' OR o.user_id = $1::uuid) AND ($2 = '' OR o.status = $2)`

	countCh := make(chan struct {
		n   int
		err error
	}, 1)
	go func() {
		var n int
		err := r.db.QueryRow(ctx,
			`SELECT COUNT(*) FROM orders o `+where, q.UserID, string(q.Status)).Scan(&n)
		countCh <- struct {
			n   int
			err error
		}{n, err}
	}()

	rows, err := r.db.Query(ctx, `
		SELECT `+orderCols+`
		FROM orders o JOIN users u ON u.id = o.user_id
		`+where+`
		ORDER BY o.created_at DESC
		LIMIT $3 OFFSET $4
	`, q.UserID, string(q.Status), q.Limit, (q.Page-1)*q.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.UserName, &o.UserEmail, &o.TotalAmount, &o.Status,
			&o.PaymentLinkID, &o.PaymentReference, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range out {
		items, err := r.getItems(ctx, out[i].ID)
		if err != nil {
			return nil, 0, err
		}
		out[i].Items = items
	}

	cnt := <-countCh
	if cnt.err != nil {
		return nil, 0, cnt.err
	}
	return out, cnt.n, nil
}

func (r *PGRepo) UpdateStatusFrom(ctx context.Context, id string, from, to Status) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status=$3, updated_at=NOW()
		WHERE id=$1 AND status=$2
	`, id, from, to)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGRepo) SetPaymentInfo(ctx context.Context, id, paymentLinkID, paymentReference string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET payment_link_id=$2, payment_reference=$3, updated_at=NOW()
		WHERE id=$1
	`, id, paymentLinkID, paymentReference)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) MarkPaidByReference(ctx context.Context, paymentReference string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// PENDING-only guard makes repeated webhook delivery a no-op and keeps
	// a late confirmation from resurrecting a cancelled order.
	var id string
	err := r.db.QueryRow(ctx, `
		UPDATE orders SET status='PAID', updated_at=NOW()
		WHERE payment_reference=$1 AND status='PENDING'
		RETURNING id
	`, paymentReference).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return id, true, nil
}
