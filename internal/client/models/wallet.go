package models

import "strings"

type WalletSummary struct {
	ID                    int64 `json:"id"`
	UserID                int64 `json:"userId"`
	BalanceCents          int64 `json:"balanceCents"`
	SpendableBalanceCents int64 `json:"spendableBalanceCents"`
	CashoutAvailableCents int64 `json:"cashoutAvailableCents"`
}

// WalletMetrics are the backend's aggregate payout counters. Only the
// fields the client reconciles against are typed.
type WalletMetrics struct {
	CompletedPayoutCents int64 `json:"completedPayoutCents"`
	PendingPayoutCents   int64 `json:"pendingPayoutCents"`
	FailedPayoutCount    int64 `json:"failedPayoutCount"`
	TotalPayoutCount     int64 `json:"totalPayoutCount"`
}

type Cashout struct {
	ID               int64  `json:"id"`
	WalletID         int64  `json:"walletId"`
	AmountCents      int64  `json:"amountCents"`
	Status           string `json:"status"`
	FailureReason    string `json:"failureReason,omitempty"`
	DestinationLast4 string `json:"destinationLast4,omitempty"`
	CreatedAt        string `json:"createdAt"`
}

// Completed reports whether the backend considers the cashout paid out.
func (c Cashout) Completed() bool {
	s := strings.ToLower(c.Status)
	return strings.Contains(s, "paid") || strings.Contains(s, "complete")
}

type CashoutRequest struct {
	AmountCents int64 `json:"amountCents"`
}

type BankInfo struct {
	BankName          string `json:"bankName"`
	AccountHolderName string `json:"accountHolderName"`
	RoutingNumber     string `json:"routingNumber"`
	AccountNumber     string `json:"accountNumber"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (b BankInfo) Trimmed() BankInfo {
	return BankInfo{
		BankName:          strings.TrimSpace(b.BankName),
		AccountHolderName: strings.TrimSpace(b.AccountHolderName),
		RoutingNumber:     strings.TrimSpace(b.RoutingNumber),
		AccountNumber:     strings.TrimSpace(b.AccountNumber),
	}
}

// Complete reports whether every field is non-blank.
func (b BankInfo) Complete() bool {
	t := b.Trimmed()
	return t.BankName != "" && t.AccountHolderName != "" && t.RoutingNumber != "" && t.AccountNumber != ""
}

// Last4 returns the last four digits of the account number, or the whole
// number when shorter.
func (b BankInfo) Last4() string {
	n := strings.TrimSpace(b.AccountNumber)
	if len(n) <= 4 {
		return n
	}
	return n[len(n)-4:]
}
