package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lettertrail/platform/internal/domain"
)

type adminUserRepo struct{}

// NewAdminUserRepository returns a pgx-backed AdminUserRepository.
func NewAdminUserRepository() AdminUserRepository {
	return &adminUserRepo{}
}

func (r *adminUserRepo) FindByEmail(ctx context.Context, db DBTX, email string) (*domain.AdminUser, error) {
	row := db.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM admin_users WHERE email = $1`, email)

	var u domain.AdminUser
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan admin user: %w", err)
	}
	return &u, nil
}

func (r *adminUserRepo) Create(ctx context.Context, db DBTX, user *domain.AdminUser) error {
	row := db.QueryRow(ctx, `
		INSERT INTO admin_users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		user.ID, user.Email, user.PasswordHash)
	if err := row.Scan(&user.CreatedAt); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	return nil
}
