package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, adminID uuid.UUID) (domain.AdminProfile, error) {
	const q = `select admin_id, email, full_name, role from admin_profiles where admin_id = $1`

	var p domain.AdminProfile
	err := r.pool.QueryRow(ctx, q, adminID).Scan(&p.AdminID, &p.Email, &p.FullName, &p.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AdminProfile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.AdminProfile{}, fmt.Errorf("failed to get admin profile %s: %w", adminID, err)
	}
	return p, nil
}
