package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
)

// FeeRepository reads the active price list. Columns left NULL, or a missing
// row altogether, take the default price list.
type FeeRepository struct {
	db *sql.DB
}

func NewFeeRepository(db *sql.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

func (r *FeeRepository) Fees(ctx context.Context) (domain.FeeSchedule, error) {
	query := `
	SELECT id, adult, child, infant, pet, vehicle, seat, insurance, currency
	FROM fee_schedules
	WHERE active = TRUE
	ORDER BY effective_from DESC
	LIMIT 1
	`

	fees := domain.DefaultFees()

	var id int64
	var adult, child, infant, pet, vehicle, seat, insurance sql.NullFloat64
	var currency sql.NullString

	err := r.db.QueryRowContext(ctx, query).Scan(
		&id,
		&adult,
		&child,
		&infant,
		&pet,
		&vehicle,
		&seat,
		&insurance,
		&currency,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fees, nil
		}

		return domain.FeeSchedule{}, fmt.Errorf("failed to load fee schedule: %w", err)
	}

	for _, col := range []struct {
		dst *float64
		src sql.NullFloat64
	}{
		{&fees.Adult, adult},
		{&fees.Child, child},
		{&fees.Infant, infant},
		{&fees.Pet, pet},
		{&fees.Vehicle, vehicle},
		{&fees.Seat, seat},
		{&fees.Insurance, insurance},
	} {
		if col.src.Valid {
			*col.dst = col.src.Float64
		}
	}

	if currency.Valid && currency.String != "" {
		fees.Currency = currency.String
	}

	rows, err := r.db.QueryContext(ctx, `
	SELECT method_code, amount
	FROM method_surcharges
	WHERE fee_schedule_id = $1
	`, id)
	if err != nil {
		return domain.FeeSchedule{}, fmt.Errorf("failed to load method surcharges: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var code string
		var amount float64
		if err := rows.Scan(&code, &amount); err != nil {
			return domain.FeeSchedule{}, err
		}

		fees.MethodSurcharges[code] = amount
	}

	if err := rows.Err(); err != nil {
		return domain.FeeSchedule{}, err
	}

	return fees, nil
}
