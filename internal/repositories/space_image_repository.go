package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sharedesk/internal/models"
)

type SpaceImageRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func (r *SpaceImageRepository) AddImage(ctx context.Context, img models.SpaceImage) (models.SpaceImage, error) {
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	id, err := r.Dialect.insertID(ctx, r.DB,
		`INSERT INTO space_images (space_id, path, content_type, created_at) VALUES (?, ?, ?, ?)`,
		img.SpaceID, img.Path, img.ContentType, img.CreatedAt)
	if err != nil {
		return models.SpaceImage{}, fmt.Errorf("insert space image: %w", err)
	}
	img.ID = id
	return img, nil
}

func (r *SpaceImageRepository) GetImagesBySpace(ctx context.Context, spaceID int) ([]models.SpaceImage, error) {
	query := `SELECT id, space_id, path, content_type, created_at FROM space_images WHERE space_id = ? ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, r.Dialect.Rebind(query), spaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []models.SpaceImage{}
	for rows.Next() {
		var img models.SpaceImage
		if err := rows.Scan(&img.ID, &img.SpaceID, &img.Path, &img.ContentType, timestamp{&img.CreatedAt}); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("space images rows error: %w", err)
	}
	return images, nil
}
