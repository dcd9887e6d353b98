package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sharedesk/internal/models"
)

type SpaceRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

const spaceColumns = `id, name, city, price, max_capacity, available_capacity, description, address, renter_user_id, contact_number, benefits`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSpace(row rowScanner) (models.Space, error) {
	var s models.Space
	var description, benefits sql.NullString
	err := row.Scan(&s.ID, &s.Name, &s.City, &s.Price, &s.MaxCapacity, &s.AvailableCapacity,
		&description, &s.Address, &s.RenterUserID, &s.ContactNumber, &benefits)
	if err != nil {
		return models.Space{}, err
	}
	s.Description = description.String
	s.Benefits = benefits.String
	return s, nil
}

func (r *SpaceRepository) CreateSpace(ctx context.Context, space models.Space) (models.Space, error) {
	query := `
    INSERT INTO spaces (name, city, price, max_capacity, available_capacity, description, address, renter_user_id, contact_number, benefits)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := r.Dialect.insertID(ctx, r.DB, query,
		space.Name,
		space.City,
		space.Price,
		space.MaxCapacity,
		space.AvailableCapacity,
		space.Description,
		space.Address,
		space.RenterUserID,
		space.ContactNumber,
		space.Benefits,
	)
	if err != nil {
		return models.Space{}, fmt.Errorf("insert space: %w", err)
	}
	space.ID = id
	return space, nil
}

func (r *SpaceRepository) GetSpaceByID(ctx context.Context, id int) (models.Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces WHERE id = ?`
	s, err := scanSpace(r.DB.QueryRowContext(ctx, r.Dialect.Rebind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Space{}, models.ErrSpaceNotFound
	}
	if err != nil {
		return models.Space{}, fmt.Errorf("get space %d: %w", id, err)
	}
	return s, nil
}

func (r *SpaceRepository) GetSpaces(ctx context.Context) ([]models.Space, error) {
	return r.list(ctx, `SELECT `+spaceColumns+` FROM spaces ORDER BY id`)
}

func (r *SpaceRepository) GetSpacesByOwner(ctx context.Context, ownerID int) ([]models.Space, error) {
	return r.list(ctx, `SELECT `+spaceColumns+` FROM spaces WHERE renter_user_id = ? ORDER BY id`, ownerID)
}

func (r *SpaceRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Space, error) {
	rows, err := r.DB.QueryContext(ctx, r.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spaces := []models.Space{}
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			return nil, err
		}
		spaces = append(spaces, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("spaces rows error: %w", err)
	}
	return spaces, nil
}

func (r *SpaceRepository) UpdateSpace(ctx context.Context, space models.Space) (models.Space, error) {
	query := `
UPDATE spaces
SET name = ?, city = ?, price = ?, max_capacity = ?, available_capacity = ?, description = ?,
    address = ?, renter_user_id = ?, contact_number = ?, benefits = ?
WHERE id = ?`

	rows, err := r.Dialect.exec(ctx, r.DB, query,
		space.Name, space.City, space.Price, space.MaxCapacity, space.AvailableCapacity, space.Description,
		space.Address, space.RenterUserID, space.ContactNumber, space.Benefits, space.ID,
	)
	if err != nil {
		return models.Space{}, fmt.Errorf("update space %d: %w", space.ID, err)
	}
	// MySQL reports 0 affected rows when nothing changed, so confirm the row exists.
	if rows == 0 {
		if _, err := r.GetSpaceByID(ctx, space.ID); err != nil {
			return models.Space{}, err
		}
	}
	return space, nil
}

func (r *SpaceRepository) UpdateAvailableCapacity(ctx context.Context, id, capacity int) error {
	rows, err := r.Dialect.exec(ctx, r.DB, `UPDATE spaces SET available_capacity = ? WHERE id = ?`, capacity, id)
	if err != nil {
		return fmt.Errorf("update capacity of space %d: %w", id, err)
	}
	if rows == 0 {
		_, err := r.GetSpaceByID(ctx, id)
		return err
	}
	return nil
}

// DeleteSpace removes the space together with its rentals, images and preferences.
func (r *SpaceRepository) DeleteSpace(ctx context.Context, id int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM notification_preferences WHERE space_id = ?`,
		`DELETE FROM space_images WHERE space_id = ?`,
		`DELETE FROM rentals WHERE space_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, r.Dialect.Rebind(q), id); err != nil {
			return fmt.Errorf("delete space %d dependents: %w", id, err)
		}
	}

	res, err := tx.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM spaces WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrSpaceNotFound
	}
	return tx.Commit()
}
