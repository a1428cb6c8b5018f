package users

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Insert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, username, full_name, hashed_password, is_active, is_admin, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		nullableString(user.FullName),
		user.HashedPassword,
		user.IsActive,
		user.IsAdmin,
	)
	return err
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	const query = `
SELECT id, email, username, full_name, hashed_password, is_active, is_admin, created_at, updated_at
FROM users
WHERE username = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, username))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, email, username, full_name, hashed_password, is_active, is_admin, created_at, updated_at
FROM users
WHERE lower(email) = lower($1)
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) Update(ctx context.Context, user User) error {
	const query = `
UPDATE users
SET email = $2,
    full_name = $3,
    hashed_password = $4,
    is_active = $5,
    updated_at = now()
WHERE username = $1`
	result, err := r.DB.ExecContext(ctx, query,
		user.Username,
		user.Email,
		nullableString(user.FullName),
		user.HashedPassword,
		user.IsActive,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, username string) error {
	const query = `DELETE FROM users WHERE username = $1`
	result, err := r.DB.ExecContext(ctx, query, username)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	var fullName sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&fullName,
		&user.HashedPassword,
		&user.IsActive,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if fullName.Valid {
		user.FullName = fullName.String
	}
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
