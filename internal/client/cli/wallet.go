package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tabz/internal/client/models"
	"github.com/dmitrijs2005/tabz/internal/client/services"
)

// Wallet prints the owner wallet. Parts that failed to load are reported
// inline and do not hide the rest.
func (a *App) Wallet(ctx context.Context, _ []string) error {
	o := a.wallet.Overview(ctx)

	if o.SummaryErr != nil {
		fmt.Fprintln(a.out, "Balance: unavailable:", describeError(o.SummaryErr))
	} else {
		fmt.Fprintf(a.out, "Balance: %s  spendable %s  ready to cash out %s\n",
			services.FormatCents(o.Summary.BalanceCents),
			services.FormatCents(o.Summary.SpendableBalanceCents),
			services.FormatCents(o.Summary.CashoutAvailableCents))
	}

	if o.MetricsErr != nil {
		fmt.Fprintln(a.out, "Payouts: unavailable:", describeError(o.MetricsErr))
	} else {
		fmt.Fprintf(a.out, "Payouts: %s completed, %s pending, %d of %d failed\n",
			services.FormatCents(o.Metrics.CompletedPayoutCents),
			services.FormatCents(o.Metrics.PendingPayoutCents),
			o.Metrics.FailedPayoutCount, o.Metrics.TotalPayoutCount)
	}

	if o.CashoutsErr != nil {
		fmt.Fprintln(a.out, "Cashouts: unavailable:", describeError(o.CashoutsErr))
		return nil
	}
	if len(o.Cashouts) == 0 {
		fmt.Fprintln(a.out, "Cashouts: none")
		return nil
	}
	tw := newTable(a.out, "ID", "AMOUNT", "STATUS", "TO", "CREATED", "NOTE")
	for _, c := range o.Cashouts {
		row(tw, c.ID, services.FormatCents(c.AmountCents), c.Status, orDash(c.DestinationLast4), c.CreatedAt, orDash(c.FailureReason))
	}
	return tw.Flush()
}

// Cashout requests a payout: cashout <usd>.
func (a *App) Cashout(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	co, err := a.wallet.CreateCashout(ctx, strings.Join(args, ""))
	if err != nil {
		return err
	}
	if co != nil && co.ID != 0 {
		fmt.Fprintf(a.out, "Cashout %d requested: %s (%s)\n", co.ID, services.FormatCents(co.AmountCents), co.Status)
		return nil
	}
	fmt.Fprintln(a.out, "Cashout requested")
	return nil
}

func (a *App) Retry(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.wallet.Retry(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Cashout %d resubmitted\n", id)
	return nil
}

func (a *App) Cancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	ok, err := GetConfirmation(a.reader, fmt.Sprintf("Cancel cashout %d?", id), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.wallet.Cancel(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Cashout %d cancelled\n", id)
	return nil
}

// Reconcile compares visible completed cashouts with the payout counter.
func (a *App) Reconcile(ctx context.Context, _ []string) error {
	r, err := a.wallet.Reconcile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d completed cashouts totalling %s; backend reports %s\n",
		r.CompletedCount, services.FormatCents(r.CompletedCents), services.FormatCents(r.ReportedPayoutCents))
	if r.Matches {
		fmt.Fprintln(a.out, "Payouts reconcile")
	} else {
		fmt.Fprintf(a.out, "Mismatch of %s\n", services.FormatCents(r.DifferenceCents))
	}
	return nil
}

// Bank shows the payout account with the account number masked.
func (a *App) Bank(ctx context.Context, _ []string) error {
	info, err := a.wallet.BankInfo(ctx)
	if err != nil {
		return err
	}
	if !info.Complete() {
		fmt.Fprintln(a.out, "No bank account on file (use setbank)")
		return nil
	}
	fmt.Fprintf(a.out, "%s, %s, routing %s, account ending %s\n",
		info.BankName, info.AccountHolderName, info.RoutingNumber, info.Last4())
	return nil
}

// SetBank prompts for the four payout account fields.
func (a *App) SetBank(ctx context.Context, _ []string) error {
	var info models.BankInfo
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Bank name", &info.BankName},
		{"Account holder name", &info.AccountHolderName},
		{"Routing number", &info.RoutingNumber},
		{"Account number", &info.AccountNumber},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if err := a.wallet.SaveBankInfo(ctx, info); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Bank account ending %s saved\n", info.Trimmed().Last4())
	return nil
}
