// Package category provides the repository for product categories.
package category

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("category not found")

type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCategoryRequest payload.
// swagger:model CreateCategoryRequest
type CreateCategoryRequest struct {
	Name        string `json:"name" example:"Vases"`
	Description string `json:"description" example:"Hand-thrown vases"`
}

type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO categories (id, name, description, created_at, updated_at)
		VALUES ($1,$2,$3,NOW(),NOW())
	`, c.ID, c.Name, c.Description)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Category
	err := r.db.QueryRow(ctx, `
		SELECT c.id, c.name, COALESCE(c.description,''),
		       (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id),
		       c.created_at, c.updated_at
		FROM categories c WHERE c.id=$1
	`, id).Scan(&c.ID, &c.Name, &c.Description, &c.ProductCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name, COALESCE(c.description,''),
		       (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id),
		       c.created_at, c.updated_at
		FROM categories c
		ORDER BY c.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ProductCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE categories
		SET name = COALESCE(NULLIF($2,''), name),
		    description = COALESCE(NULLIF($3,''), description),
		    updated_at = NOW()
		WHERE id = $1
	`, c.ID, c.Name, c.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
