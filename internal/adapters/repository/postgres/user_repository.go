package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
	"github.com/vncsmyrnk/eventos/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, login, name, COALESCE(phone, ''), role, status, password_hash, password_change_required, created_at`

func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, login))
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		if err := r.scanFields(rows, user); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, login, name, phone, role, status, password_hash, password_change_required)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Login, user.Name, user.Phone, user.Role, user.Status,
		user.PasswordHash, user.PasswordChangeRequired,
	).Scan(&user.CreatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET name = $2, phone = $3, role = $4, status = $5
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Phone, user.Role, user.Status)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, changeRequired bool) error {
	query := `UPDATE users SET password_hash = $2, password_change_required = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, passwordHash, changeRequired)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID, &user.Login, &user.Name, &user.Phone, &user.Role,
		&user.Status, &user.PasswordHash, &user.PasswordChangeRequired, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) scanFields(rows *sql.Rows, user *domain.User) error {
	return rows.Scan(
		&user.ID, &user.Login, &user.Name, &user.Phone, &user.Role,
		&user.Status, &user.PasswordHash, &user.PasswordChangeRequired, &user.CreatedAt,
	)
}
