package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/tabz/internal/client/client"
	"github.com/dmitrijs2005/tabz/internal/client/models"
	"github.com/dmitrijs2005/tabz/internal/common"
	"github.com/dmitrijs2005/tabz/internal/logging"
)

var ErrExceedsAvailable = errors.New("amount is higher than the cashout-ready balance")

// WalletOverview is everything the owner wallet screen shows. Each part is
// fetched on its own; a failed part leaves its value nil and its error set.
type WalletOverview struct {
	Summary     *models.WalletSummary
	Metrics     *models.WalletMetrics
	Cashouts    []models.Cashout
	SummaryErr  error
	MetricsErr  error
	CashoutsErr error
}

// Err joins the per-part errors.
func (o *WalletOverview) Err() error {
	return errors.Join(o.SummaryErr, o.MetricsErr, o.CashoutsErr)
}

// Reconciliation compares the cashouts the client can see with the
// backend's completed payout counter.
type Reconciliation struct {
	CompletedCount      int
	CompletedCents      int64
	ReportedPayoutCents int64
	DifferenceCents     int64
	Matches             bool
}

type WalletService interface {
	Overview(ctx context.Context) *WalletOverview
	CreateCashout(ctx context.Context, usd string) (*models.Cashout, error)
	Retry(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64) error
	BankInfo(ctx context.Context) (*models.BankInfo, error)
	SaveBankInfo(ctx context.Context, info models.BankInfo) error
	Reconcile(ctx context.Context) (*Reconciliation, error)
}

type walletService struct {
	client client.Client
	log    logging.Logger
}

func NewWalletService(c client.Client, log logging.Logger) WalletService {
	if log == nil {
		log = logging.Nop()
	}
	return &walletService{client: c, log: log.With("service", "wallet")}
}

func (w *walletService) Overview(ctx context.Context) *WalletOverview {
	var (
		out WalletOverview
		g   errgroup.Group
	)
	g.Go(func() error {
		out.Summary, out.SummaryErr = w.client.WalletSummary(ctx)
		return nil
	})
	g.Go(func() error {
		out.Metrics, out.MetricsErr = w.client.WalletMetrics(ctx)
		return nil
	})
	g.Go(func() error {
		out.Cashouts, out.CashoutsErr = w.client.Cashouts(ctx)
		return nil
	})
	_ = g.Wait()

	if err := out.Err(); err != nil {
		w.log.Debug(ctx, "wallet overview partially loaded", logging.Err(err))
	}
	return &out
}

// CreateCashout parses usd, checks it against the cashout-ready balance
// when that is known, and requests the payout.
func (w *walletService) CreateCashout(ctx context.Context, usd string) (*models.Cashout, error) {
	cents, err := ParseUSDToCents(usd)
	if err != nil {
		return nil, err
	}

	if sum, err := w.client.WalletSummary(ctx); err != nil {
		w.log.Debug(ctx, "summary unavailable; skipping balance check", logging.Err(err))
	} else if cents > sum.CashoutAvailableCents {
		return nil, fmt.Errorf("%w: requested %s, available %s",
			ErrExceedsAvailable, FormatCents(cents), FormatCents(sum.CashoutAvailableCents))
	}

	co, err := w.client.CreateCashout(ctx, cents)
	if err != nil {
		return nil, err
	}
	w.log.Info(ctx, "cashout requested", "amount_cents", cents)
	return co, nil
}

func (w *walletService) Retry(ctx context.Context, id int64) error {
	return w.client.RetryCashout(ctx, id)
}

func (w *walletService) Cancel(ctx context.Context, id int64) error {
	return w.client.CancelCashout(ctx, id)
}

func (w *walletService) BankInfo(ctx context.Context) (*models.BankInfo, error) {
	return w.client.BankInfo(ctx)
}

// SaveBankInfo trims every field and requires all four before sending.
func (w *walletService) SaveBankInfo(ctx context.Context, info models.BankInfo) error {
	if !info.Complete() {
		return common.ErrMissingBankInfo
	}
	return w.client.SetBankInfo(ctx, info.Trimmed())
}

// Reconcile sums completed cashouts and compares the total with the
// backend's completedPayoutCents. Both inputs are required.
func (w *walletService) Reconcile(ctx context.Context) (*Reconciliation, error) {
	var (
		metrics  *models.WalletMetrics
		cashouts []models.Cashout
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := w.client.WalletMetrics(gctx)
		metrics = m
		return err
	})
	g.Go(func() error {
		c, err := w.client.Cashouts(gctx)
		cashouts = c
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &Reconciliation{ReportedPayoutCents: metrics.CompletedPayoutCents}
	for _, c := range cashouts {
		if c.Completed() {
			r.CompletedCount++
			r.CompletedCents += c.AmountCents
		}
	}
	r.DifferenceCents = r.ReportedPayoutCents - r.CompletedCents
	r.Matches = r.DifferenceCents == 0
	return r, nil
}
