package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrAlreadyExist = errors.New("user already exists")
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, u *User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, avatar, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Avatar)
	if err != nil {
		// email carries a UNIQUE constraint
		return ErrAlreadyExist
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, COALESCE(avatar,''), created_at, updated_at
		FROM users WHERE id=$1
	`, id)
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Avatar, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, COALESCE(avatar,''), created_at, updated_at
		FROM users WHERE email=$1
	`, email)
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Avatar, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *PGRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash=$2, updated_at=NOW() WHERE id=$1
	`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
