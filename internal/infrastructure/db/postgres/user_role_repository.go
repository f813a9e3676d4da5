package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/99minutos/user-accounts/internal/core/domain"
	"github.com/99minutos/user-accounts/internal/core/ports"
)

var _ ports.UserRoleRepository = (*UserRoleRepository)(nil)

type UserRoleRepository struct {
	pool *pgxpool.Pool
}

func NewUserRoleRepository(pool *pgxpool.Pool) *UserRoleRepository {
	return &UserRoleRepository{pool: pool}
}

func (r *UserRoleRepository) FindByUsers(ctx context.Context, userIDs []uuid.UUID) ([]domain.UserRole, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id.String()
	}
	return r.query(ctx, `SELECT user_id, role_name FROM user_roles WHERE user_id = ANY($1) ORDER BY role_name`, ids)
}

func (r *UserRoleRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserRole, error) {
	return r.query(ctx, `SELECT user_id, role_name FROM user_roles WHERE user_id = $1 ORDER BY role_name`, userID.String())
}

func (r *UserRoleRepository) query(ctx context.Context, sql string, args ...any) ([]domain.UserRole, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query user roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.UserRole
	for rows.Next() {
		var userID, roleName string
		if err := rows.Scan(&userID, &roleName); err != nil {
			return nil, fmt.Errorf("scan user role: %w", err)
		}
		id, err := uuid.Parse(userID)
		if err != nil {
			return nil, fmt.Errorf("decode user role %q: %w", userID, err)
		}
		roles = append(roles, domain.UserRole{UserRef: domain.UserRef{ID: id}, RoleName: roleName})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query user roles: %w", err)
	}
	return roles, nil
}

func (r *UserRoleRepository) Add(ctx context.Context, role domain.UserRole) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_name) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		role.ID.String(), role.RoleName,
	)
	if err != nil {
		return fmt.Errorf("add user role: %w", err)
	}
	return nil
}

func (r *UserRoleRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.pool.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID.String()); err != nil {
		return fmt.Errorf("delete user roles: %w", err)
	}
	return nil
}
