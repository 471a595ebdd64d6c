package helium

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Sternrassler/helium-api-client/pkg/client"
	"github.com/Sternrassler/helium-api-client/pkg/models"
	"github.com/Sternrassler/helium-api-client/pkg/pagination"
)

// MaxRichest is the largest limit the rich-list endpoint accepts.
const MaxRichest = 1000

// Accounts accesses /accounts.
type Accounts struct {
	c *client.Client
}

// All streams every known account.
func (a *Accounts) All() *pagination.Stream[models.Account] {
	return client.Stream[models.Account](a.c, "/accounts", nil)
}

// Get fetches one account by address.
func (a *Accounts) Get(ctx context.Context, address string) (models.Account, error) {
	return client.Fetch[models.Account](ctx, a.c, "/accounts/"+segment(address), nil)
}

// Hotspots streams the hotspots owned by address.
func (a *Accounts) Hotspots(address string) *pagination.Stream[models.Hotspot] {
	return client.Stream[models.Hotspot](a.c, "/accounts/"+segment(address)+"/hotspots", nil)
}

// OUIs streams the OUIs owned by address.
func (a *Accounts) OUIs(address string) *pagination.Stream[models.Oui] {
	return client.Stream[models.Oui](a.c, "/accounts/"+segment(address)+"/ouis", nil)
}

// Validators streams the validators owned by address.
func (a *Accounts) Validators(address string) *pagination.Stream[models.Validator] {
	return client.Stream[models.Validator](a.c, "/accounts/"+segment(address)+"/validators", nil)
}

// PendingTransactions streams the submitted, not yet cleared transactions
// of address.
func (a *Accounts) PendingTransactions(address string) *pagination.Stream[models.PendingTransaction] {
	return client.Stream[models.PendingTransaction](a.c, "/accounts/"+segment(address)+"/pending_transactions", nil)
}

// Richest returns up to limit accounts ordered by balance, descending.
// A limit of 0 requests the maximum.
func (a *Accounts) Richest(ctx context.Context, limit int) ([]models.Account, error) {
	if limit == 0 {
		limit = MaxRichest
	}
	if limit < 0 || limit > MaxRichest {
		return nil, fmt.Errorf("richest limit must be between 1 and %d (got %d)", MaxRichest, limit)
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	return client.Fetch[[]models.Account](ctx, a.c, "/accounts/rich", query)
}

// Activity streams the transactions involving address, usually as payer,
// payee or owner.
func (a *Accounts) Activity(address string, q models.QueryTimeRange) *pagination.Stream[models.Transaction] {
	return streamWith[models.Transaction](a.c, "/accounts/"+segment(address)+"/activity", q)
}

// Roles streams the roles address played in transactions.
func (a *Accounts) Roles(address string, q models.QueryFilterWithTimeRange) *pagination.Stream[models.Role] {
	return streamWith[models.Role](a.c, "/accounts/"+segment(address)+"/roles", q)
}

// RolesCount counts the roles of address per transaction kind.
func (a *Accounts) RolesCount(ctx context.Context, address string, q models.QueryFilter) (models.RoleCount, error) {
	values, err := encodeQuery(q)
	if err != nil {
		return models.RoleCount{}, err
	}
	return client.Fetch[models.RoleCount](ctx, a.c, "/accounts/"+segment(address)+"/roles/count", values)
}
