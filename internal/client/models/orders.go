package models

import (
	"encoding/json"
	"sort"
)

type StoreItem struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	PriceCents int64           `json:"priceCents"`
	VenueID    *int64          `json:"venueId,omitempty"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
}

type PlaceOrderRequest struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

// BuyerOrder is a row of /store-items/my-orders.
type BuyerOrder struct {
	OrderID     int64  `json:"orderId"`
	CreatedAt   string `json:"createdAt"`
	Status      string `json:"status"`
	ItemName    string `json:"itemName"`
	Quantity    int    `json:"quantity"`
	AmountCents int64  `json:"amountCents"`
	VenueName   string `json:"venueName,omitempty"`
	PayoutCents *int64 `json:"payoutCents,omitempty"`
}

// VenueOrder is a row of the venue's drink queue.
type VenueOrder struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	ItemID       int64      `json:"itemId"`
	Quantity     int        `json:"quantity"`
	Status       string     `json:"status"`
	VenueID      *int64     `json:"venueId,omitempty"`
	ItemSnapshot *StoreItem `json:"itemSnapshot,omitempty"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt"`
}

// StaffOrder is a row of /store-items/staff/orders.
type StaffOrder struct {
	OrderID   int64  `json:"orderId"`
	Status    string `json:"status"`
	ItemName  string `json:"itemName"`
	Quantity  int    `json:"quantity"`
	VenueID   int64  `json:"venueId"`
	VenueName string `json:"venueName"`
	BuyerID   int64  `json:"buyerId"`
	CreatedAt string `json:"createdAt"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

// SortStaffOrdersNewestFirst orders rows by createdAt descending. The
// timestamps are ISO-8601 strings, so lexical order is chronological.
func SortStaffOrdersNewestFirst(rows []StaffOrder) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt > rows[j].CreatedAt
	})
}

// OwnerDashboard is kept raw; its shape varies between backend versions.
type OwnerDashboard = json.RawMessage
