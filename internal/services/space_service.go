package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"sharedesk/internal/browse"
	"sharedesk/internal/models"
	"sharedesk/internal/repositories"
	"sharedesk/internal/storage"
)

// MaxImageSize bounds a single uploaded space image.
const MaxImageSize = 10 << 20

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type SpaceService struct {
	SpaceRepo *repositories.SpaceRepository
	ImageRepo *repositories.SpaceImageRepository
	Images    storage.ImageStore
	Logger    Logger
}

func (s *SpaceService) CreateSpace(ctx context.Context, space models.Space) (models.Space, error) {
	if err := space.Validate(); err != nil {
		return models.Space{}, err
	}
	return s.SpaceRepo.CreateSpace(ctx, space)
}

func (s *SpaceService) GetSpaceByID(ctx context.Context, id int) (models.Space, error) {
	return s.SpaceRepo.GetSpaceByID(ctx, id)
}

func (s *SpaceService) GetSpaces(ctx context.Context) ([]models.Space, error) {
	return s.SpaceRepo.GetSpaces(ctx)
}

func (s *SpaceService) GetSpacesByOwner(ctx context.Context, ownerID int) ([]models.Space, error) {
	return s.SpaceRepo.GetSpacesByOwner(ctx, ownerID)
}

// UpdateSpace replaces the editable fields of a space. callerID is 0 when
// the request is anonymous, which only happens with authentication disabled.
func (s *SpaceService) UpdateSpace(ctx context.Context, space models.Space, callerID int) (models.Space, error) {
	existing, err := s.SpaceRepo.GetSpaceByID(ctx, space.ID)
	if err != nil {
		return models.Space{}, err
	}
	if err := checkOwner(existing, callerID); err != nil {
		return models.Space{}, err
	}
	if space.RenterUserID == 0 {
		space.RenterUserID = existing.RenterUserID
	}
	if err := space.Validate(); err != nil {
		return models.Space{}, err
	}
	return s.SpaceRepo.UpdateSpace(ctx, space)
}

func (s *SpaceService) DeleteSpace(ctx context.Context, id, callerID int) error {
	existing, err := s.SpaceRepo.GetSpaceByID(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwner(existing, callerID); err != nil {
		return err
	}
	images, err := s.ImageRepo.GetImagesBySpace(ctx, id)
	if err != nil {
		return err
	}
	if err := s.SpaceRepo.DeleteSpace(ctx, id); err != nil {
		return err
	}
	for _, img := range images {
		if err := s.Images.Delete(ctx, img.Path); err != nil {
			s.Logger.Errorf("delete image %s of space %d: %v", img.Path, id, err)
		}
	}
	return nil
}

// Browse runs the catalogue search, sort and pagination over all spaces.
func (s *SpaceService) Browse(ctx context.Context, q browse.Query) (models.SpacePage, error) {
	spaces, err := s.SpaceRepo.GetSpaces(ctx)
	if err != nil {
		return models.SpacePage{}, err
	}
	return browse.Run(spaces, q), nil
}

// AddImage stores an uploaded JPEG or PNG and records it against the space.
func (s *SpaceService) AddImage(ctx context.Context, spaceID int, data []byte) (models.SpaceImage, error) {
	if len(data) == 0 {
		return models.SpaceImage{}, fmt.Errorf("%w: image", models.ErrMissingField)
	}
	if len(data) > MaxImageSize {
		return models.SpaceImage{}, fmt.Errorf("%w: larger than %d bytes", models.ErrUnsupportedImage, MaxImageSize)
	}
	contentType := http.DetectContentType(data)
	if contentType != "image/jpeg" && contentType != "image/png" {
		return models.SpaceImage{}, fmt.Errorf("%w: %s", models.ErrUnsupportedImage, contentType)
	}
	if _, err := s.SpaceRepo.GetSpaceByID(ctx, spaceID); err != nil {
		return models.SpaceImage{}, err
	}

	key, err := s.Images.Save(ctx, contentType, data)
	if err != nil {
		return models.SpaceImage{}, err
	}
	img, err := s.ImageRepo.AddImage(ctx, models.SpaceImage{SpaceID: spaceID, Path: key, ContentType: contentType})
	if err != nil {
		if derr := s.Images.Delete(ctx, key); derr != nil {
			s.Logger.Errorf("remove orphaned image %s: %v", key, derr)
		}
		return models.SpaceImage{}, err
	}
	return img, nil
}

// GetImages returns the images of a space as base64 strings, oldest first.
// Blobs missing from storage are skipped.
func (s *SpaceService) GetImages(ctx context.Context, spaceID int) ([]string, error) {
	if _, err := s.SpaceRepo.GetSpaceByID(ctx, spaceID); err != nil {
		return nil, err
	}
	images, err := s.ImageRepo.GetImagesBySpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	encoded := make([]string, 0, len(images))
	for _, img := range images {
		data, err := s.Images.Load(ctx, img.Path)
		if errors.Is(err, storage.ErrNotFound) {
			s.Logger.Errorf("image %s of space %d missing from storage", img.Path, spaceID)
			continue
		}
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, base64.StdEncoding.EncodeToString(data))
	}
	return encoded, nil
}

func checkOwner(space models.Space, callerID int) error {
	if callerID != 0 && space.RenterUserID != callerID {
		return models.ErrForbidden
	}
	return nil
}
