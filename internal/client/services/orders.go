package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tabz/internal/client/client"
	"github.com/dmitrijs2005/tabz/internal/client/models"
	"github.com/dmitrijs2005/tabz/internal/common"
)

// OrderService covers the three order views: buyer, staff and venue.
type OrderService interface {
	Catalogue(ctx context.Context) ([]models.StoreItem, error)
	MyOrders(ctx context.Context) ([]models.BuyerOrder, error)
	PlaceOrder(ctx context.Context, itemID int64, quantity int) error

	StaffQueue(ctx context.Context) ([]models.StaffOrder, error)
	StaffMark(ctx context.Context, orderID int64, status string) error

	VenueQueue(ctx context.Context) ([]models.VenueOrder, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) error

	OwnerDashboard(ctx context.Context) (models.OwnerDashboard, error)
}

type orderService struct {
	client client.Client
	tokens TokenStore
}

func NewOrderService(c client.Client, tokens TokenStore) OrderService {
	return &orderService{client: c, tokens: tokens}
}

func (s *orderService) Catalogue(ctx context.Context) ([]models.StoreItem, error) {
	return s.client.StoreItems(ctx)
}

func (s *orderService) MyOrders(ctx context.Context) ([]models.BuyerOrder, error) {
	if _, err := s.tokens.RequireRole(models.RoleBuyer); err != nil {
		return nil, err
	}
	return s.client.MyOrders(ctx)
}

func (s *orderService) PlaceOrder(ctx context.Context, itemID int64, quantity int) error {
	if itemID <= 0 || quantity <= 0 {
		return fmt.Errorf("%w: item and quantity must be positive", common.ErrorValidation)
	}
	if _, err := s.tokens.RequireRole(models.RoleBuyer); err != nil {
		return err
	}
	return s.client.PlaceOrder(ctx, itemID, quantity)
}

// StaffQueue returns the staff venue's orders, newest first.
func (s *orderService) StaffQueue(ctx context.Context) ([]models.StaffOrder, error) {
	rows, err := s.client.StaffOrders(ctx)
	if err != nil {
		return nil, err
	}
	models.SortStaffOrdersNewestFirst(rows)
	return rows, nil
}

func (s *orderService) StaffMark(ctx context.Context, orderID int64, status string) error {
	status, err := normalizeStatus(status)
	if err != nil {
		return err
	}
	return s.client.StaffMarkOrder(ctx, orderID, status)
}

func (s *orderService) VenueQueue(ctx context.Context) ([]models.VenueOrder, error) {
	return s.client.VenueOrders(ctx)
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	status, err := normalizeStatus(status)
	if err != nil {
		return err
	}
	return s.client.UpdateOrderStatus(ctx, orderID, status)
}

// OwnerDashboard returns the owner dashboard payload as sent by the backend.
func (s *orderService) OwnerDashboard(ctx context.Context) (models.OwnerDashboard, error) {
	if _, err := s.tokens.RequireRole(models.RoleOwner); err != nil {
		return nil, err
	}
	return s.client.OwnerDashboard(ctx)
}

func normalizeStatus(status string) (string, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return "", fmt.Errorf("%w: status is required", common.ErrorValidation)
	}
	return status, nil
}
