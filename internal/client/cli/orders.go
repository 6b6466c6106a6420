package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tabz/internal/client/models"
	"github.com/dmitrijs2005/tabz/internal/client/poller"
	"github.com/dmitrijs2005/tabz/internal/client/services"
	"github.com/dmitrijs2005/tabz/internal/logging"
)

func (a *App) Items(ctx context.Context, _ []string) error {
	items, err := a.orders.Catalogue(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No items")
		return nil
	}

	tw := newTable(a.out, "ID", "NAME", "PRICE")
	for _, it := range items {
		row(tw, it.ID, it.Name, services.FormatCents(it.PriceCents))
	}
	return tw.Flush()
}

// Buy places an order: buy <item-id> [quantity].
func (a *App) Buy(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return errUsage
	}
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	qty := 1
	if len(args) == 2 {
		qty, err = strconv.Atoi(args[1])
		if err != nil || qty <= 0 {
			return errUsage
		}
	}

	if err := a.orders.PlaceOrder(ctx, itemID, qty); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Ordered %d x item %d\n", qty, itemID)
	return nil
}

func (a *App) Orders(ctx context.Context, _ []string) error {
	orders, err := a.orders.MyOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet")
		return nil
	}

	tw := newTable(a.out, "ORDER", "ITEM", "QTY", "AMOUNT", "VENUE", "STATUS", "CREATED")
	for _, o := range orders {
		row(tw, o.OrderID, o.ItemName, o.Quantity, services.FormatCents(o.AmountCents), orDash(o.VenueName), o.Status, o.CreatedAt)
	}
	return tw.Flush()
}

func (a *App) Staff(ctx context.Context, _ []string) error {
	rows, err := a.orders.StaffQueue(ctx)
	if err != nil {
		return err
	}
	for _, line := range staffLines(rows) {
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Mark sets a staff order's status: mark <order-id> <status>.
func (a *App) Mark(ctx context.Context, args []string) error {
	id, status, err := idAndStatus(args)
	if err != nil {
		return err
	}
	if err := a.orders.StaffMark(ctx, id, status); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order %d marked %s\n", id, strings.ToLower(status))
	a.triggerWatch()
	return nil
}

func (a *App) Venue(ctx context.Context, _ []string) error {
	rows, err := a.orders.VenueQueue(ctx)
	if err != nil {
		return err
	}
	for _, line := range venueLines(rows) {
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Status sets a venue order's status: status <order-id> <status>.
func (a *App) Status(ctx context.Context, args []string) error {
	id, status, err := idAndStatus(args)
	if err != nil {
		return err
	}
	if err := a.orders.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order %d is now %s\n", id, strings.ToLower(status))
	a.triggerWatch()
	return nil
}

// Dashboard pretty-prints the owner dashboard payload.
func (a *App) Dashboard(ctx context.Context, _ []string) error {
	raw, err := a.orders.OwnerDashboard(ctx)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		fmt.Fprintln(a.out, "Dashboard is empty")
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	fmt.Fprintln(a.out, buf.String())
	return nil
}

func idAndStatus(args []string) (int64, string, error) {
	if len(args) != 2 {
		return 0, "", errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return 0, "", err
	}
	return id, args[1], nil
}

func staffLines(rows []models.StaffOrder) []string {
	if len(rows) == 0 {
		return []string{"Queue is empty"}
	}
	out := make([]string, 0, len(rows))
	for _, o := range rows {
		out = append(out, fmt.Sprintf("#%d  %dx %s  %s  %s  %s", o.OrderID, o.Quantity, o.ItemName, orDash(o.VenueName), o.Status, o.CreatedAt))
	}
	return out
}

func venueLines(rows []models.VenueOrder) []string {
	if len(rows) == 0 {
		return []string{"Queue is empty"}
	}
	out := make([]string, 0, len(rows))
	for _, o := range rows {
		name := fmt.Sprintf("item %d", o.ItemID)
		if o.ItemSnapshot != nil && o.ItemSnapshot.Name != "" {
			name = o.ItemSnapshot.Name
		}
		out = append(out, fmt.Sprintf("#%d  %dx %s  user %d  %s  %s", o.ID, o.Quantity, name, o.UserID, o.Status, o.CreatedAt))
	}
	return out
}

// Watch keeps printing a queue until stopped: watch staff|venue|stop.
// The queue refetches every poll interval and whenever the realtime feed
// reports an order change. Overlapping refreshes are skipped.
func (a *App) Watch(ctx context.Context, args []string) error {
	target := "staff"
	if len(args) > 0 {
		target = strings.ToLower(args[0])
	}

	var fetch func(ctx context.Context) (string, error)
	switch target {
	case "stop":
		if a.stopWatching() {
			fmt.Fprintln(a.out, "Watch stopped")
		}
		return nil
	case "staff":
		fetch = func(ctx context.Context) (string, error) {
			rows, err := a.orders.StaffQueue(ctx)
			return strings.Join(staffLines(rows), "\n"), err
		}
	case "venue":
		fetch = func(ctx context.Context) (string, error) {
			rows, err := a.orders.VenueQueue(ctx)
			return strings.Join(venueLines(rows), "\n"), err
		}
	default:
		return errUsage
	}

	a.stopWatching()

	p := poller.New(a.config.PollInterval, fetch, a.printQueue(target), a.log)
	wctx, cancel := context.WithCancel(ctx)

	a.watchMu.Lock()
	a.watcher = p
	a.watchCtx = wctx
	a.stopWatch = cancel
	a.watchMu.Unlock()

	go p.Run(wctx)

	if err := a.feed.Sync(wctx); err != nil {
		a.log.Warn(ctx, "realtime feed unavailable; polling only", logging.Err(err))
	}
	fmt.Fprintf(a.out, "Watching %s queue every %s (watch stop to end)\n", target, a.config.PollInterval)
	return nil
}

func (a *App) printQueue(target string) func(string, error) {
	return func(text string, err error) {
		if err != nil {
			printlnFn(fmt.Sprintf("[%s] refresh failed: %s", target, describeError(err)))
			return
		}
		printlnFn(fmt.Sprintf("[%s]\n%s", target, text))
	}
}

// triggerWatch refreshes the active watch, if any.
func (a *App) triggerWatch() {
	a.watchMu.Lock()
	p, ctx := a.watcher, a.watchCtx
	a.watchMu.Unlock()

	if p != nil {
		go p.Trigger(ctx)
	}
}

// stopWatching ends the active watch and reports whether there was one.
func (a *App) stopWatching() bool {
	a.watchMu.Lock()
	p, cancel := a.watcher, a.stopWatch
	a.watcher, a.watchCtx, a.stopWatch = nil, nil, nil
	a.watchMu.Unlock()

	if p == nil {
		return false
	}
	p.Stop()
	cancel()
	return true
}
