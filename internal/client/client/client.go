package client

import (
	"context"

	"github.com/dmitrijs2005/tabz/internal/client/models"
)

// Client is the TABZ backend contract. Every method except Login and Ping
// sends the session's bearer token.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (*models.Me, error)
	Ping(ctx context.Context) error

	StoreItems(ctx context.Context) ([]models.StoreItem, error)
	MyOrders(ctx context.Context) ([]models.BuyerOrder, error)
	PlaceOrder(ctx context.Context, itemID int64, quantity int) error
	VenueOrders(ctx context.Context) ([]models.VenueOrder, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
	StaffOrders(ctx context.Context) ([]models.StaffOrder, error)
	StaffMarkOrder(ctx context.Context, orderID int64, status string) error
	OwnerDashboard(ctx context.Context) (models.OwnerDashboard, error)

	WalletSummary(ctx context.Context) (*models.WalletSummary, error)
	WalletMetrics(ctx context.Context) (*models.WalletMetrics, error)
	Cashouts(ctx context.Context) ([]models.Cashout, error)
	CreateCashout(ctx context.Context, amountCents int64) (*models.Cashout, error)
	RetryCashout(ctx context.Context, id int64) error
	CancelCashout(ctx context.Context, id int64) error
	BankInfo(ctx context.Context) (*models.BankInfo, error)
	SetBankInfo(ctx context.Context, info models.BankInfo) error

	IdentityStart(ctx context.Context) (*models.Identity, error)
	IdentityStatus(ctx context.Context) (*models.Identity, error)

	Profile(ctx context.Context) (*models.ProfileResponse, error)
	UploadAvatar(ctx context.Context, up Upload) error
	UploadCover(ctx context.Context, up Upload) error
}
