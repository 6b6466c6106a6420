package cli

func (a *App) commands() []command {
	return []command{
		{name: "login", usage: "login", public: true, run: a.Login},
		{name: "baseurl", usage: "baseurl [url]", public: true, run: a.BaseURL},
		{name: "logout", usage: "logout", run: a.Logout},
		{name: "whoami", usage: "whoami", run: a.WhoAmI},

		{name: "items", usage: "items", run: a.Items},
		{name: "buy", usage: "buy <item-id> [quantity]", run: a.Buy},
		{name: "orders", usage: "orders", run: a.Orders},

		{name: "staff", usage: "staff", run: a.Staff},
		{name: "mark", usage: "mark <order-id> <status>", run: a.Mark},
		{name: "venue", usage: "venue", run: a.Venue},
		{name: "status", usage: "status <order-id> <status>", run: a.Status},
		{name: "watch", usage: "watch staff|venue|stop", run: a.Watch},
		{name: "dashboard", usage: "dashboard", run: a.Dashboard},

		{name: "wallet", usage: "wallet", run: a.Wallet},
		{name: "cashout", usage: "cashout <usd>", run: a.Cashout},
		{name: "retry", usage: "retry <cashout-id>", run: a.Retry},
		{name: "cancel", usage: "cancel <cashout-id>", run: a.Cancel},
		{name: "reconcile", usage: "reconcile", run: a.Reconcile},
		{name: "bank", usage: "bank", run: a.Bank},
		{name: "setbank", usage: "setbank", run: a.SetBank},

		{name: "identity", usage: "identity", run: a.Identity},
		{name: "verify", usage: "verify", run: a.Verify},
		{name: "profile", usage: "profile", run: a.Profile},
		{name: "avatar", usage: "avatar <file>", run: a.Avatar},
		{name: "cover", usage: "cover <file>", run: a.Cover},
	}
}
