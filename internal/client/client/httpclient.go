package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/tabz/internal/client/models"
)

// ErrNoToken is returned by Login when the backend accepted the credentials
// but the response carried no recognisable token field.
var ErrNoToken = errors.New("login response has no token")

// HTTPClient implements Client over an Executor.
type HTTPClient struct {
	exec *Executor
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(exec *Executor) *HTTPClient {
	return &HTTPClient{exec: exec}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	const path = "/auth/login"
	raw, err := c.exec.PostAnonymous(ctx, path, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	var resp models.LoginResponse
	if err := decodeInto(http.MethodPost, path, raw, &resp); err != nil {
		return "", err
	}
	token := resp.BearerToken()
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Me, error) {
	return getObject[models.Me](ctx, c.exec, "/auth/me")
}

// Ping reports whether the backend answers at all. Any HTTP response counts
// as reachable; only transport failures are returned.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.exec.GetAnonymous(ctx, "/")
	var herr *HTTPError
	if errors.As(err, &herr) {
		return nil
	}
	return err
}

func (c *HTTPClient) StoreItems(ctx context.Context) ([]models.StoreItem, error) {
	return getList[models.StoreItem](ctx, c.exec, "/store-items")
}

func (c *HTTPClient) MyOrders(ctx context.Context) ([]models.BuyerOrder, error) {
	return getList[models.BuyerOrder](ctx, c.exec, "/store-items/my-orders")
}

func (c *HTTPClient) PlaceOrder(ctx context.Context, itemID int64, quantity int) error {
	_, err := c.exec.Post(ctx, "/store-items/order", models.PlaceOrderRequest{ItemID: itemID, Quantity: quantity})
	return err
}

func (c *HTTPClient) VenueOrders(ctx context.Context) ([]models.VenueOrder, error) {
	return getList[models.VenueOrder](ctx, c.exec, "/store-items/venue-orders")
}

func (c *HTTPClient) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	path := fmt.Sprintf("/store-items/order/%d/status", orderID)
	_, err := c.exec.Patch(ctx, path, models.OrderStatusRequest{Status: status})
	return err
}

func (c *HTTPClient) StaffOrders(ctx context.Context) ([]models.StaffOrder, error) {
	return getList[models.StaffOrder](ctx, c.exec, "/store-items/staff/orders")
}

func (c *HTTPClient) StaffMarkOrder(ctx context.Context, orderID int64, status string) error {
	path := fmt.Sprintf("/store-items/staff/orders/%d/mark", orderID)
	_, err := c.exec.Post(ctx, path, models.OrderStatusRequest{Status: status})
	return err
}

func (c *HTTPClient) OwnerDashboard(ctx context.Context) (models.OwnerDashboard, error) {
	return c.exec.Get(ctx, "/store-items/owner/dashboard")
}

func (c *HTTPClient) WalletSummary(ctx context.Context) (*models.WalletSummary, error) {
	return getObject[models.WalletSummary](ctx, c.exec, "/wallet/summary")
}

func (c *HTTPClient) WalletMetrics(ctx context.Context) (*models.WalletMetrics, error) {
	return getObject[models.WalletMetrics](ctx, c.exec, "/wallet/metrics")
}

func (c *HTTPClient) Cashouts(ctx context.Context) ([]models.Cashout, error) {
	return getList[models.Cashout](ctx, c.exec, "/wallet/cashouts")
}

func (c *HTTPClient) CreateCashout(ctx context.Context, amountCents int64) (*models.Cashout, error) {
	const path = "/wallet/cashout"
	raw, err := c.exec.Post(ctx, path, models.CashoutRequest{AmountCents: amountCents})
	if err != nil {
		return nil, err
	}
	var out models.Cashout
	if err := decodeInto(http.MethodPost, path, raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RetryCashout(ctx context.Context, id int64) error {
	_, err := c.exec.Post(ctx, fmt.Sprintf("/wallet/cashouts/%d/retry", id), nil)
	return err
}

func (c *HTTPClient) CancelCashout(ctx context.Context, id int64) error {
	_, err := c.exec.Post(ctx, fmt.Sprintf("/wallet/cashouts/%d/cancel", id), nil)
	return err
}

func (c *HTTPClient) BankInfo(ctx context.Context) (*models.BankInfo, error) {
	return getObject[models.BankInfo](ctx, c.exec, "/wallet/bank-info")
}

func (c *HTTPClient) SetBankInfo(ctx context.Context, info models.BankInfo) error {
	_, err := c.exec.Post(ctx, "/wallet/bank-info", info)
	return err
}

func (c *HTTPClient) IdentityStart(ctx context.Context) (*models.Identity, error) {
	const path = "/identity/start"
	raw, err := c.exec.Post(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeIdentity(http.MethodPost, path, raw)
}

func (c *HTTPClient) IdentityStatus(ctx context.Context) (*models.Identity, error) {
	const path = "/identity/status"
	raw, err := c.exec.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeIdentity(http.MethodGet, path, raw)
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.ProfileResponse, error) {
	return getObject[models.ProfileResponse](ctx, c.exec, "/profiles/me")
}

func (c *HTTPClient) UploadAvatar(ctx context.Context, up Upload) error {
	_, err := c.exec.PostMultipart(ctx, "/profiles/me/avatar", "file", up)
	return err
}

func (c *HTTPClient) UploadCover(ctx context.Context, up Upload) error {
	_, err := c.exec.PostMultipart(ctx, "/profiles/me/cover", "file", up)
	return err
}

func decodeIdentity(method, path string, raw []byte) (*models.Identity, error) {
	var wire struct {
		Status     string `json:"status"`
		SessionURL string `json:"sessionUrl"`
	}
	if err := decodeInto(method, path, raw, &wire); err != nil {
		return nil, err
	}
	return &models.Identity{
		Status:     models.NormalizeIdentityStatus(wire.Status),
		SessionURL: wire.SessionURL,
	}, nil
}

func getObject[T any](ctx context.Context, exec *Executor, path string) (*T, error) {
	raw, err := exec.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	var out T
	if err := decodeInto(http.MethodGet, path, raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func getList[T any](ctx context.Context, exec *Executor, path string) ([]T, error) {
	raw, err := exec.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[T](http.MethodGet, path, raw)
}
