package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sharedesk/internal/models"
)

type NotificationRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func (r *NotificationRepository) GetPreference(ctx context.Context, spaceID int, userID string) (models.NotificationPreference, error) {
	query := `SELECT id, space_id, user_id, email FROM notification_preferences WHERE space_id = ? AND user_id = ?`
	var p models.NotificationPreference
	err := r.DB.QueryRowContext(ctx, r.Dialect.Rebind(query), spaceID, userID).Scan(&p.ID, &p.SpaceID, &p.UserID, &p.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotificationPreference{}, models.ErrPreferenceNotFound
	}
	if err != nil {
		return models.NotificationPreference{}, fmt.Errorf("get preference: %w", err)
	}
	return p, nil
}

// UpsertPreference keeps one row per (space, user); a repeated opt-in only refreshes the email.
func (r *NotificationRepository) UpsertPreference(ctx context.Context, pref models.NotificationPreference) (models.NotificationPreference, error) {
	existing, err := r.GetPreference(ctx, pref.SpaceID, pref.UserID)
	switch {
	case err == nil:
		return r.updateEmail(ctx, existing, pref.Email)
	case !errors.Is(err, models.ErrPreferenceNotFound):
		return models.NotificationPreference{}, err
	}

	id, err := r.Dialect.insertID(ctx, r.DB,
		`INSERT INTO notification_preferences (space_id, user_id, email) VALUES (?, ?, ?)`,
		pref.SpaceID, pref.UserID, pref.Email)
	if IsUniqueViolation(err) {
		// Lost a race against a concurrent opt-in of the same user.
		existing, err := r.GetPreference(ctx, pref.SpaceID, pref.UserID)
		if err != nil {
			return models.NotificationPreference{}, err
		}
		return r.updateEmail(ctx, existing, pref.Email)
	}
	if err != nil {
		return models.NotificationPreference{}, fmt.Errorf("insert preference: %w", err)
	}
	pref.ID = id
	return pref, nil
}

func (r *NotificationRepository) updateEmail(ctx context.Context, existing models.NotificationPreference, email string) (models.NotificationPreference, error) {
	if existing.Email == email {
		return existing, nil
	}
	if _, err := r.Dialect.exec(ctx, r.DB, `UPDATE notification_preferences SET email = ? WHERE id = ?`, email, existing.ID); err != nil {
		return models.NotificationPreference{}, fmt.Errorf("update preference %d: %w", existing.ID, err)
	}
	existing.Email = email
	return existing, nil
}

func (r *NotificationRepository) DeletePreference(ctx context.Context, spaceID int, userID string) error {
	rows, err := r.Dialect.exec(ctx, r.DB,
		`DELETE FROM notification_preferences WHERE space_id = ? AND user_id = ?`, spaceID, userID)
	if err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	if rows == 0 {
		return models.ErrPreferenceNotFound
	}
	return nil
}

func (r *NotificationRepository) DeletePreferenceByID(ctx context.Context, id int) error {
	_, err := r.Dialect.exec(ctx, r.DB, `DELETE FROM notification_preferences WHERE id = ?`, id)
	return err
}

func (r *NotificationRepository) GetPreferencesBySpace(ctx context.Context, spaceID int) ([]models.NotificationPreference, error) {
	query := `SELECT id, space_id, user_id, email FROM notification_preferences WHERE space_id = ? ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, r.Dialect.Rebind(query), spaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prefs []models.NotificationPreference
	for rows.Next() {
		var p models.NotificationPreference
		if err := rows.Scan(&p.ID, &p.SpaceID, &p.UserID, &p.Email); err != nil {
			return nil, err
		}
		prefs = append(prefs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("preferences rows error: %w", err)
	}
	return prefs, nil
}

func (r *NotificationRepository) CountPreferences(ctx context.Context, spaceID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, r.Dialect.Rebind(`SELECT COUNT(*) FROM notification_preferences WHERE space_id = ?`), spaceID).Scan(&count)
	return count, err
}
