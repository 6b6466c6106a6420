package services

import (
	"context"

	"github.com/dmitrijs2005/tabz/internal/client/client"
	"github.com/dmitrijs2005/tabz/internal/client/models"
)

type IdentityService interface {
	Status(ctx context.Context) (*models.Identity, error)
	// Start begins verification. SessionURL is empty when the backend
	// reports the owner as already verified.
	Start(ctx context.Context) (*models.Identity, error)
}

type identityService struct {
	client client.Client
}

func NewIdentityService(c client.Client) IdentityService {
	return &identityService{client: c}
}

func (s *identityService) Status(ctx context.Context) (*models.Identity, error) {
	return s.client.IdentityStatus(ctx)
}

func (s *identityService) Start(ctx context.Context) (*models.Identity, error) {
	return s.client.IdentityStart(ctx)
}
