package repository

import (
	"context"

	"github.com/movebid/moving-auction-service/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CompetitorRepository reads the administratively maintained competitor
// pricing profiles. Read-only from the core's perspective.
type CompetitorRepository interface {
	GetActiveProfiles(ctx context.Context) ([]models.CompetitorProfile, error)
}

// PostgresCompetitorRepository implements CompetitorRepository on pgx.
type PostgresCompetitorRepository struct {
	DB *pgxpool.Pool
}

func NewPostgresCompetitorRepository(db *pgxpool.Pool) *PostgresCompetitorRepository {
	return &PostgresCompetitorRepository{DB: db}
}

// GetActiveProfiles returns the profiles that participate in comparisons.
func (r *PostgresCompetitorRepository) GetActiveProfiles(ctx context.Context) ([]models.CompetitorProfile, error) {
	rows, err := r.DB.Query(ctx, `
       SELECT name, base_multiplier, distance_multiplier, floor_multiplier, active
       FROM competitor_profile
       WHERE active = TRUE
       ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.CompetitorProfile
	for rows.Next() {
		var p models.CompetitorProfile
		if err := rows.Scan(
			&p.Name,
			&p.BaseMultiplier,
			&p.DistanceMultiplier,
			&p.FloorMultiplier,
			&p.Active); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
