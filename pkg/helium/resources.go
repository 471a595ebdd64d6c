package helium

import (
	"context"
	"encoding/base64"
	"strconv"

	"github.com/Sternrassler/helium-api-client/pkg/client"
	"github.com/Sternrassler/helium-api-client/pkg/models"
	"github.com/Sternrassler/helium-api-client/pkg/pagination"
	"github.com/tidwall/gjson"
)

// Blocks accesses /blocks.
type Blocks struct {
	c *client.Client
}

// Height returns the current chain height.
func (b *Blocks) Height(ctx context.Context) (uint64, error) {
	h, err := client.Fetch[models.Height](ctx, b.c, "/blocks/height", nil)
	if err != nil {
		return 0, err
	}
	return h.Height, nil
}

// Stats returns block time statistics.
func (b *Blocks) Stats(ctx context.Context) (models.BlockStats, error) {
	return client.Fetch[models.BlockStats](ctx, b.c, "/blocks/stats", nil)
}

// Transactions streams the transactions in the block at height.
func (b *Blocks) Transactions(height uint64) *pagination.Stream[models.Transaction] {
	return client.Stream[models.Transaction](b.c, "/blocks/"+strconv.FormatUint(height, 10)+"/transactions", nil)
}

// Hotspots accesses /hotspots.
type Hotspots struct {
	c *client.Client
}

// All streams every hotspot.
func (h *Hotspots) All() *pagination.Stream[models.Hotspot] {
	return client.Stream[models.Hotspot](h.c, "/hotspots", nil)
}

// Get fetches one hotspot by address.
func (h *Hotspots) Get(ctx context.Context, address string) (models.Hotspot, error) {
	return client.Fetch[models.Hotspot](ctx, h.c, "/hotspots/"+segment(address), nil)
}

// Activity streams the transactions involving the hotspot.
func (h *Hotspots) Activity(address string, q models.QueryTimeRange) *pagination.Stream[models.Transaction] {
	return streamWith[models.Transaction](h.c, "/hotspots/"+segment(address)+"/activity", q)
}

// Challenges streams the proof-of-coverage receipts the hotspot took part in.
func (h *Hotspots) Challenges(address string, q models.QueryTimeRange) *pagination.Stream[models.Transaction] {
	return streamWith[models.Transaction](h.c, "/hotspots/"+segment(address)+"/challenges", q)
}

// Validators accesses /validators.
type Validators struct {
	c *client.Client
}

// All streams every validator.
func (v *Validators) All() *pagination.Stream[models.Validator] {
	return client.Stream[models.Validator](v.c, "/validators", nil)
}

// Get fetches one validator by address.
func (v *Validators) Get(ctx context.Context, address string) (models.Validator, error) {
	return client.Fetch[models.Validator](ctx, v.c, "/validators/"+segment(address), nil)
}

// Stats returns validator counts and stake totals by status.
func (v *Validators) Stats(ctx context.Context) (models.ValidatorStats, error) {
	return client.Fetch[models.ValidatorStats](ctx, v.c, "/validators/stats", nil)
}

// Rewards streams the rewards paid to the validator.
func (v *Validators) Rewards(address string, q models.QueryTimeRange) *pagination.Stream[models.ValidatorReward] {
	return streamWith[models.ValidatorReward](v.c, "/validators/"+segment(address)+"/rewards", q)
}

// Oracle accesses /oracle.
type Oracle struct {
	c *client.Client
}

// Prices streams every inferred oracle price, newest first.
func (o *Oracle) Prices() *pagination.Stream[models.OraclePrice] {
	return client.Stream[models.OraclePrice](o.c, "/oracle/prices", nil)
}

// CurrentPrice returns the price in effect now.
func (o *Oracle) CurrentPrice(ctx context.Context) (models.OraclePrice, error) {
	return client.Fetch[models.OraclePrice](ctx, o.c, "/oracle/prices/current", nil)
}

// PriceAtBlock returns the price that was in effect at block.
func (o *Oracle) PriceAtBlock(ctx context.Context, block uint64) (models.OraclePrice, error) {
	return client.Fetch[models.OraclePrice](ctx, o.c, "/oracle/prices/"+strconv.FormatUint(block, 10), nil)
}

// Predictions returns the prices expected to take effect soon.
func (o *Oracle) Predictions(ctx context.Context) ([]models.OraclePrediction, error) {
	return client.Fetch[[]models.OraclePrediction](ctx, o.c, "/oracle/predictions", nil)
}

// OUIs accesses /ouis.
type OUIs struct {
	c *client.Client
}

// All streams every OUI.
func (o *OUIs) All() *pagination.Stream[models.Oui] {
	return client.Stream[models.Oui](o.c, "/ouis", nil)
}

// Get fetches one OUI.
func (o *OUIs) Get(ctx context.Context, oui uint64) (models.Oui, error) {
	return client.Fetch[models.Oui](ctx, o.c, "/ouis/"+strconv.FormatUint(oui, 10), nil)
}

// Last fetches the most recently assigned OUI.
func (o *OUIs) Last(ctx context.Context) (models.Oui, error) {
	return client.Fetch[models.Oui](ctx, o.c, "/ouis/last", nil)
}

// LastValue returns only the number of the most recently assigned OUI.
func (o *OUIs) LastValue(ctx context.Context) (uint64, error) {
	data, err := client.FetchValue(ctx, o.c, "/ouis/last", nil)
	if err != nil {
		return 0, err
	}
	oui := data.Get("oui")
	if oui.Type != gjson.Number || oui.Num < 0 {
		return 0, &client.ValueError{Value: data.Raw, Reason: `expected a numeric "oui" field`}
	}
	return oui.Uint(), nil
}

// Stats returns OUI counts.
func (o *OUIs) Stats(ctx context.Context) (models.OuiStats, error) {
	return client.Fetch[models.OuiStats](ctx, o.c, "/ouis/stats", nil)
}

// Transactions accesses /transactions.
type Transactions struct {
	c *client.Client
}

// Get fetches one transaction by hash.
func (t *Transactions) Get(ctx context.Context, hash string) (models.Transaction, error) {
	return client.Fetch[models.Transaction](ctx, t.c, "/transactions/"+segment(hash), nil)
}

// PendingTransactions accesses /pending_transactions.
type PendingTransactions struct {
	c *client.Client
}

type submitRequest struct {
	Txn string `json:"txn"`
}

// Submit posts an encoded transaction. The payload is sent as standard
// base64 and is not inspected. Submissions are never retried.
func (p *PendingTransactions) Submit(ctx context.Context, payload []byte) (models.PendingTxnStatus, error) {
	req := submitRequest{Txn: base64.StdEncoding.EncodeToString(payload)}
	return client.Post[models.PendingTxnStatus](ctx, p.c, "/pending_transactions", req)
}

// Get fetches the status of a submitted transaction.
func (p *PendingTransactions) Get(ctx context.Context, hash string) (models.PendingTxnStatus, error) {
	return client.Fetch[models.PendingTxnStatus](ctx, p.c, "/pending_transactions/"+segment(hash), nil)
}

// StatsService accesses /stats.
type StatsService struct {
	c *client.Client
}

// Get returns the chain-wide statistics.
func (s *StatsService) Get(ctx context.Context) (models.Stats, error) {
	return client.Fetch[models.Stats](ctx, s.c, "/stats", nil)
}

// TokenSupply returns the circulating HNT supply.
func (s *StatsService) TokenSupply(ctx context.Context) (float64, error) {
	data, err := client.FetchValue(ctx, s.c, "/stats/token_supply", nil)
	if err != nil {
		return 0, err
	}
	supply := data.Get("token_supply")
	if supply.Type != gjson.Number {
		return 0, &client.ValueError{Value: data.Raw, Reason: `expected a numeric "token_supply" field`}
	}
	return supply.Float(), nil
}

// Vars accesses /vars.
type Vars struct {
	c *client.Client
}

// Get returns the active chain variables keyed by name.
func (v *Vars) Get(ctx context.Context) (map[string]gjson.Result, error) {
	data, err := client.FetchValue(ctx, v.c, "/vars", nil)
	if err != nil {
		return nil, err
	}
	if !data.IsObject() {
		return nil, &client.ValueError{Value: data.Raw, Reason: "expected a chain variable object"}
	}
	return data.Map(), nil
}
