// Package product provides the repository interface and PostgreSQL
// implementation for the ceramics catalog.
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("product not found")

type Query struct {
	Search     string
	CategoryID string
	Status     string // empty = any; public listing forces ACTIVE
	MinPrice   string
	MaxPrice   string
	SortBy     string // created_at | price | name
	SortDesc   bool
	Page       int
	Limit      int
}

func (q *Query) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 50 {
		q.Limit = 10
	}
	switch q.SortBy {
	case "price", "name", "created_at":
	default:
		q.SortBy = "created_at"
		q.SortDesc = true
	}
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	GetManyByIDs(ctx context.Context, ids []string) ([]Product, error)
	List(ctx context.Context, q Query) ([]Product, int, error)
	Update(ctx context.Context, id string, req UpdateProductRequest) error
	SoftDelete(ctx context.Context, id string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const selectCols = `
	p.id, p.name, COALESCE(p.description,''), p.price::text, p.quantity, p.status,
	COALESCE(p.image_url,''), COALESCE(p.thumbnail_image,''),
	COALESCE(p.category_id::text,''), COALESCE(c.name,''),
	p.created_at, p.updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Status,
		&p.ImageURL, &p.ThumbnailImage, &p.CategoryID, &p.CategoryName,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, description, price, quantity, status,
		                      image_url, thumbnail_image, category_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NULLIF($9,'')::uuid,NOW(),NOW())
	`, p.ID, p.Name, p.Description, p.Price, p.Quantity, p.Status,
		p.ImageURL, p.ThumbnailImage, p.CategoryID)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT `+selectCols+`
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id=$1
	`, id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (r *PGRepo) GetManyByIDs(ctx context.Context, ids []string) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+selectCols+`
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// List returns one page plus the total count. The two reads are independent,
// so the count runs concurrently with the page query.
func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q.normalize()
	where, args := buildWhere(q)

	countCh := make(chan struct {
		n   int
		err error
	}, 1)
	go func() {
		var n int
		err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products p `+where, args...).Scan(&n)
		countCh <- struct {
			n   int
			err error
		}{n, err}
	}()

	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}
	offset := (q.Page - 1) * q.Limit
	sql := fmt.Sprintf(`
		SELECT %s
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		%s
		ORDER BY p.%s %s
		LIMIT %d OFFSET %d
	`, selectCols, where, q.SortBy, dir, q.Limit, offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	cnt := <-countCh
	if cnt.err != nil {
		return nil, 0, cnt.err
	}
	return out, cnt.n, nil
}

func buildWhere(q Query) (string, []any) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Status != "" {
		conds = append(conds, "p.status = "+arg(q.Status))
	} else {
		conds = append(conds, "p.status <> 'DELETED'")
	}
	if q.CategoryID != "" {
		conds = append(conds, "p.category_id = "+arg(q.CategoryID)+"::uuid")
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		conds = append(conds, "p.name ILIKE '%'||"+arg(s)+"||'%'")
	}
	if q.MinPrice != "" {
		conds = append(conds, "p.price >= "+arg(q.MinPrice)+"::numeric")
	}
	if q.MaxPrice != "" {
		conds = append(conds, "p.price <= "+arg(q.MaxPrice)+"::numeric")
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *PGRepo) Update(ctx context.Context, id string, req UpdateProductRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sets []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	args = append(args, id)

	if req.Name != nil {
		sets = append(sets, "name = "+arg(*req.Name))
	}
	if req.Description != nil {
		sets = append(sets, "description = "+arg(*req.Description))
	}
	if req.Price != nil {
		sets = append(sets, "price = "+arg(*req.Price)+"::numeric")
	}
	if req.Quantity != nil {
		sets = append(sets, "quantity = "+arg(*req.Quantity))
	}
	if req.Status != nil {
		sets = append(sets, "status = "+arg(*req.Status))
	}
	if req.ImageURL != nil {
		sets = append(sets, "image_url = "+arg(*req.ImageURL))
	}
	if req.ThumbnailImage != nil {
		sets = append(sets, "thumbnail_image = "+arg(*req.ThumbnailImage))
	}
	if req.CategoryID != nil {
		sets = append(sets, "category_id = NULLIF("+arg(*req.CategoryID)+",'')::uuid")
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	tag, err := r.db.Exec(ctx,
		"UPDATE products SET "+strings.Join(sets, ", ")+" WHERE id = $1", args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete flips the product to DELETED. Rows are never removed once an
// order item may reference them.
func (r *PGRepo) SoftDelete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products SET status='DELETED', updated_at=NOW() WHERE id=$1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
