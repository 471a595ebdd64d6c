package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Sternrassler/helium-api-client/pkg/client"
)

// TransactionData is the kind-specific body of a Transaction. Each kind
// struct in this package implements it; unmodelled kinds decode to Unknown.
type TransactionData interface {
	TxnType() string
}

// Transaction is a chain transaction. The wire form is a flat JSON object
// whose "type" field selects the kind; the envelope fields are lifted out
// and the remaining fields decode into Data.
type Transaction struct {
	Type   string
	Hash   string
	Time   uint64
	Height *uint64
	Data   TransactionData
}

type txnEnvelope struct {
	Type   string  `json:"type"`
	Hash   string  `json:"hash"`
	Time   uint64  `json:"time,omitempty"`
	Height *uint64 `json:"height,omitempty"`
}

var txnKinds = map[string]func() TransactionData{
	"add_gateway_v1":              func() TransactionData { return &AddGatewayV1{} },
	"assert_location_v1":          func() TransactionData { return &AssertLocationV1{} },
	"assert_location_v2":          func() TransactionData { return &AssertLocationV2{} },
	"coinbase_v1":                 func() TransactionData { return &CoinbaseV1{} },
	"consensus_group_failure_v1":  func() TransactionData { return &ConsensusGroupFailureV1{} },
	"consensus_group_v1":          func() TransactionData { return &ConsensusGroupV1{} },
	"create_htlc_v1":              func() TransactionData { return &CreateHtlcV1{} },
	"dc_coinbase_v1":              func() TransactionData { return &DCCoinbaseV1{} },
	"gen_gateway_v1":              func() TransactionData { return &GenGatewayV1{} },
	"gen_price_oracle_v1":         func() TransactionData { return &GenPriceOracleV1{} },
	"oui_v1":                      func() TransactionData { return &OuiV1{} },
	"payment_v1":                  func() TransactionData { return &PaymentV1{} },
	"payment_v2":                  func() TransactionData { return &PaymentV2{} },
	"poc_receipts_v1":             func() TransactionData { return &PocReceiptsV1{} },
	"poc_receipts_v2":             func() TransactionData { return &PocReceiptsV2{} },
	"poc_request_v1":              func() TransactionData { return &PocRequestV1{} },
	"price_oracle_v1":             func() TransactionData { return &PriceOracleV1{} },
	"redeem_htlc_v1":              func() TransactionData { return &RedeemHtlcV1{} },
	"rewards_v1":                  func() TransactionData { return &RewardsV1{} },
	"rewards_v2":                  func() TransactionData { return &RewardsV2{} },
	"routing_v1":                  func() TransactionData { return &RoutingV1{} },
	"security_coinbase_v1":        func() TransactionData { return &SecurityCoinbaseV1{} },
	"security_exchange_v1":        func() TransactionData { return &SecurityExchangeV1{} },
	"stake_validator_v1":          func() TransactionData { return &StakeValidatorV1{} },
	"state_channel_close_v1":      func() TransactionData { return &StateChannelCloseV1{} },
	"state_channel_open_v1":       func() TransactionData { return &StateChannelOpenV1{} },
	"token_burn_exchange_rate_v1": func() TransactionData { return &TokenBurnExchangeRateV1{} },
	"token_burn_v1":               func() TransactionData { return &TokenBurnV1{} },
	"transfer_hotspot_v1":         func() TransactionData { return &TransferHotspotV1{} },
	"transfer_validator_stake_v1": func() TransactionData { return &TransferValidatorStakeV1{} },
	"unstake_validator_v1":        func() TransactionData { return &UnstakeValidatorV1{} },
	"update_gateway_oui_v1":       func() TransactionData { return &UpdateGatewayOuiV1{} },
	"validator_heartbeat_v1":      func() TransactionData { return &ValidatorHeartbeatV1{} },
	"vars_v1":                     func() TransactionData { return &VarsV1{} },
}

// KnownTransactionTypes returns the number of modelled transaction kinds.
func KnownTransactionTypes() int {
	return len(txnKinds)
}

// IsKnown reports whether the transaction decoded into a modelled kind.
func (t Transaction) IsKnown() bool {
	_, unknown := t.Data.(*Unknown)
	return t.Data != nil && !unknown
}

// UnmarshalJSON decodes the envelope, then the body selected by "type".
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var env txnEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.Type == "" {
		return &client.ValueError{Value: string(data), Reason: `transaction has no "type" field`}
	}

	var body TransactionData
	if newKind, ok := txnKinds[env.Type]; ok {
		body = newKind()
		if err := json.Unmarshal(data, body); err != nil {
			return fmt.Errorf("decode %s transaction: %w", env.Type, err)
		}
	} else {
		body = &Unknown{Type: env.Type, Raw: append(json.RawMessage(nil), data...)}
	}

	*t = Transaction{
		Type:   env.Type,
		Hash:   env.Hash,
		Time:   env.Time,
		Height: env.Height,
		Data:   body,
	}
	return nil
}

// MarshalJSON writes the flat wire form: envelope fields merged with the
// kind body.
func (t Transaction) MarshalJSON() ([]byte, error) {
	head, err := json.Marshal(txnEnvelope{Type: t.Type, Hash: t.Hash, Time: t.Time, Height: t.Height})
	if err != nil {
		return nil, err
	}
	if u, ok := t.Data.(*Unknown); ok {
		if len(u.Raw) > 0 {
			return u.Raw, nil
		}
		return head, nil
	}
	if t.Data == nil {
		return head, nil
	}

	body, err := json.Marshal(t.Data)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if bytes.Equal(body, []byte("{}")) {
		return head, nil
	}

	// Splice: {envelope...,body...}
	out := make([]byte, 0, len(head)+len(body))
	out = append(out, head[:len(head)-1]...)
	out = append(out, ',')
	out = append(out, body[1:]...)
	return out, nil
}

// Unknown holds a transaction of a kind this package does not model.
type Unknown struct {
	Type string
	Raw  json.RawMessage
}

func (u *Unknown) TxnType() string { return u.Type }
