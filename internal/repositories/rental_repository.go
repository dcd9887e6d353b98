package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"sharedesk/internal/models"
)

type RentalRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

const rentalColumns = `id, space_id, user_id, email, start_date, end_date, custom_price, rental_approval, created_at`

func scanRental(row rowScanner) (models.Rental, error) {
	var rt models.Rental
	var email sql.NullString
	var status string
	err := row.Scan(&rt.ID, &rt.SpaceID, &rt.UserID, &email, &rt.StartDate, &rt.EndDate,
		&rt.CustomPrice, &status, timestamp{&rt.CreatedAt})
	if err != nil {
		return models.Rental{}, err
	}
	rt.Email = email.String
	rt.RentalApproval = models.RentalStatus(status)
	return rt, nil
}

func (r *RentalRepository) CreateRental(ctx context.Context, rental models.Rental) (models.Rental, error) {
	query := `
    INSERT INTO rentals (space_id, user_id, email, start_date, end_date, custom_price, rental_approval, created_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	if rental.CreatedAt.IsZero() {
		rental.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	if rental.RentalApproval == "" {
		rental.RentalApproval = models.RentalPending
	}

	id, err := r.Dialect.insertID(ctx, r.DB, query,
		rental.SpaceID,
		rental.UserID,
		rental.Email,
		rental.StartDate,
		rental.EndDate,
		rental.CustomPrice,
		string(rental.RentalApproval),
		rental.CreatedAt,
	)
	if err != nil {
		return models.Rental{}, fmt.Errorf("insert rental: %w", err)
	}
	rental.ID = id
	return rental, nil
}

func (r *RentalRepository) GetRentalByID(ctx context.Context, id int) (models.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = ?`
	rt, err := scanRental(r.DB.QueryRowContext(ctx, r.Dialect.Rebind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Rental{}, models.ErrRentalNotFound
	}
	if err != nil {
		return models.Rental{}, fmt.Errorf("get rental %d: %w", id, err)
	}
	return rt, nil
}

func (r *RentalRepository) GetRentals(ctx context.Context, filter models.RentalFilter) ([]models.Rental, error) {
	var (
		conditions []string
		params     []interface{}
	)
	if filter.SpaceID != 0 {
		conditions = append(conditions, "space_id = ?")
		params = append(params, filter.SpaceID)
	}
	if filter.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		params = append(params, filter.UserID)
	}
	if filter.Status != "" {
		conditions = append(conditions, "rental_approval = ?")
		params = append(params, string(filter.Status))
	}

	query := `SELECT ` + rentalColumns + ` FROM rentals`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, r.Dialect.Rebind(query), params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rentals := []models.Rental{}
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rentals rows error: %w", err)
	}
	return rentals, nil
}

func (r *RentalRepository) UpdateStatus(ctx context.Context, id int, status models.RentalStatus) error {
	if !status.Valid() {
		return models.ErrInvalidStatus
	}
	rows, err := r.Dialect.exec(ctx, r.DB, `UPDATE rentals SET rental_approval = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update rental %d status: %w", id, err)
	}
	if rows == 0 {
		_, err := r.GetRentalByID(ctx, id)
		return err
	}
	return nil
}

func (r *RentalRepository) DeleteRental(ctx context.Context, id int) error {
	rows, err := r.Dialect.exec(ctx, r.DB, `DELETE FROM rentals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete rental %d: %w", id, err)
	}
	if rows == 0 {
		return models.ErrRentalNotFound
	}
	return nil
}
