package services

import (
	"context"

	"github.com/dmitrijs2005/tabz/internal/client/client"
	"github.com/dmitrijs2005/tabz/internal/client/models"
	"github.com/dmitrijs2005/tabz/internal/common"
)

type ProfileService interface {
	// Me returns the active profile out of whatever shape the backend sent.
	Me(ctx context.Context) (*models.Profile, error)
	UploadAvatar(ctx context.Context, up client.Upload) error
	UploadCover(ctx context.Context, up client.Upload) error
}

type profileService struct {
	client client.Client
}

func NewProfileService(c client.Client) ProfileService {
	return &profileService{client: c}
}

func (s *profileService) Me(ctx context.Context) (*models.Profile, error) {
	resp, err := s.client.Profile(ctx)
	if err != nil {
		return nil, err
	}
	p := resp.Resolve()
	if p == nil {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (s *profileService) UploadAvatar(ctx context.Context, up client.Upload) error {
	return s.client.UploadAvatar(ctx, up)
}

func (s *profileService) UploadCover(ctx context.Context, up client.Upload) error {
	return s.client.UploadCover(ctx, up)
}
