package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/tabz/internal/client/client"
	"github.com/dmitrijs2005/tabz/internal/client/models"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	mu sync.Mutex

	LoginRet string
	LoginErr error
	MeRet    *models.Me
	MeErr    error
	PingErr  error

	ItemsRet       []models.StoreItem
	MyOrdersRet    []models.BuyerOrder
	PlaceOrderErr  error
	VenueOrdersRet []models.VenueOrder
	StaffOrdersRet []models.StaffOrder
	StaffOrdersErr error

	SummaryRet  *models.WalletSummary
	SummaryErr  error
	MetricsRet  *models.WalletMetrics
	MetricsErr  error
	CashoutsRet []models.Cashout
	CashoutsErr error
	CashoutRet  *models.Cashout
	CashoutErr  error
	BankRet     *models.BankInfo
	SetBankErr  error
	IdentityRet *models.Identity
	ProfileRet  *models.ProfileResponse
	UploadErr   error

	// captured arguments
	Calls            []string
	LastLoginEmail   string
	LastPlaceItem    int64
	LastPlaceQty     int
	LastStatusOrder  int64
	LastStatus       string
	LastCashoutCents int64
	LastCashoutID    int64
	LastBankInfo     models.BankInfo
	LastUpload       client.Upload
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) call(name string) {
	f.mu.Lock()
	f.Calls = append(f.Calls, name)
	f.mu.Unlock()
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.call("Login")
	f.LastLoginEmail = email
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.Me, error) {
	f.call("Me")
	return f.MeRet, f.MeErr
}

func (f *fakeClient) Ping(ctx context.Context) error {
	f.call("Ping")
	return f.PingErr
}

func (f *fakeClient) StoreItems(ctx context.Context) ([]models.StoreItem, error) {
	f.call("StoreItems")
	return f.ItemsRet, nil
}

func (f *fakeClient) MyOrders(ctx context.Context) ([]models.BuyerOrder, error) {
	f.call("MyOrders")
	return f.MyOrdersRet, nil
}

func (f *fakeClient) PlaceOrder(ctx context.Context, itemID int64, quantity int) error {
	f.call("PlaceOrder")
	f.LastPlaceItem, f.LastPlaceQty = itemID, quantity
	return f.PlaceOrderErr
}

func (f *fakeClient) VenueOrders(ctx context.Context) ([]models.VenueOrder, error) {
	f.call("VenueOrders")
	return f.VenueOrdersRet, nil
}

func (f *fakeClient) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	f.call("UpdateOrderStatus")
	f.LastStatusOrder, f.LastStatus = orderID, status
	return nil
}

func (f *fakeClient) StaffOrders(ctx context.Context) ([]models.StaffOrder, error) {
	f.call("StaffOrders")
	return f.StaffOrdersRet, f.StaffOrdersErr
}

func (f *fakeClient) StaffMarkOrder(ctx context.Context, orderID int64, status string) error {
	f.call("StaffMarkOrder")
	f.LastStatusOrder, f.LastStatus = orderID, status
	return nil
}

func (f *fakeClient) OwnerDashboard(ctx context.Context) (models.OwnerDashboard, error) {
	f.call("OwnerDashboard")
	return nil, nil
}

func (f *fakeClient) WalletSummary(ctx context.Context) (*models.WalletSummary, error) {
	f.call("WalletSummary")
	return f.SummaryRet, f.SummaryErr
}

func (f *fakeClient) WalletMetrics(ctx context.Context) (*models.WalletMetrics, error) {
	f.call("WalletMetrics")
	return f.MetricsRet, f.MetricsErr
}

func (f *fakeClient) Cashouts(ctx context.Context) ([]models.Cashout, error) {
	f.call("Cashouts")
	return f.CashoutsRet, f.CashoutsErr
}

func (f *fakeClient) CreateCashout(ctx context.Context, amountCents int64) (*models.Cashout, error) {
	f.call("CreateCashout")
	f.LastCashoutCents = amountCents
	return f.CashoutRet, f.CashoutErr
}

func (f *fakeClient) RetryCashout(ctx context.Context, id int64) error {
	f.call("RetryCashout")
	f.LastCashoutID = id
	return nil
}

func (f *fakeClient) CancelCashout(ctx context.Context, id int64) error {
	f.call("CancelCashout")
	f.LastCashoutID = id
	return nil
}

func (f *fakeClient) BankInfo(ctx context.Context) (*models.BankInfo, error) {
	f.call("BankInfo")
	return f.BankRet, nil
}

func (f *fakeClient) SetBankInfo(ctx context.Context, info models.BankInfo) error {
	f.call("SetBankInfo")
	f.LastBankInfo = info
	return f.SetBankErr
}

func (f *fakeClient) IdentityStart(ctx context.Context) (*models.Identity, error) {
	f.call("IdentityStart")
	return f.IdentityRet, nil
}

func (f *fakeClient) IdentityStatus(ctx context.Context) (*models.Identity, error) {
	f.call("IdentityStatus")
	return f.IdentityRet, nil
}

func (f *fakeClient) Profile(ctx context.Context) (*models.ProfileResponse, error) {
	f.call("Profile")
	return f.ProfileRet, nil
}

func (f *fakeClient) UploadAvatar(ctx context.Context, up client.Upload) error {
	f.call("UploadAvatar")
	f.LastUpload = up
	return f.UploadErr
}

func (f *fakeClient) UploadCover(ctx context.Context, up client.Upload) error {
	f.call("UploadCover")
	f.LastUpload = up
	return f.UploadErr
}

func (f *fakeClient) called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Calls {
		if c == name {
			return true
		}
	}
	return false
}
