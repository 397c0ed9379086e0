package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
)

type CabinRepository struct {
	db *sql.DB
}

func NewCabinRepository(db *sql.DB) *CabinRepository {
	return &CabinRepository{db: db}
}

func (r *CabinRepository) CabinOptions(ctx context.Context) ([]domain.CabinOption, error) {
	query := `
	SELECT label, capacity, price, features
	FROM cabin_options
	WHERE available = TRUE
	ORDER BY sort_order, label
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	cabins := []domain.CabinOption{}
	for rows.Next() {
		var cabin domain.CabinOption
		var features []string
		if err := rows.Scan(
			&cabin.Label,
			&cabin.Capacity,
			&cabin.Price,
			pq.Array(&features),
		); err != nil {
			return nil, err
		}

		cabin.Features = features
		cabins = append(cabins, cabin)
	}

	return cabins, rows.Err()
}
