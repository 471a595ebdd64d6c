package models

import "github.com/Sternrassler/helium-api-client/pkg/values"

// Account is a wallet on the chain with its balances and nonces.
type Account struct {
	Address       string        `json:"address"`
	Block         *uint64       `json:"block"`
	Balance       values.HNT    `json:"balance"`
	StakedBalance values.HNT    `json:"staked_balance"`
	DCBalance     uint64        `json:"dc_balance"`
	SecBalance    values.HST    `json:"sec_balance"`
	Nonce         uint64        `json:"nonce"`
	IOTBalance    values.IOT    `json:"iot_balance"`
	MobileBalance values.Mobile `json:"mobile_balance"`
	SecNonce      uint64        `json:"sec_nonce"`
	DCNonce       uint64        `json:"dc_nonce"`

	SpeculativeNonce    uint64 `json:"speculative_nonce"`
	SpeculativeSecNonce uint64 `json:"speculative_sec_nonce"`
}

// Role is one transaction an account took part in, with the part it played.
type Role struct {
	Type   string `json:"type"`
	Time   uint64 `json:"time"`
	Role   string `json:"role"`
	Height uint64 `json:"height"`
	Hash   string `json:"hash"`
}

// RoleCount counts an account's roles per transaction kind. Kinds excluded
// by the query filter are nil.
type RoleCount struct {
	VarsV1                   *uint64 `json:"vars_v1"`
	GenValidatorV1           *uint64 `json:"gen_validator_v1"`
	PriceOracleV1            *uint64 `json:"price_oracle_v1"`
	SecurityExchangeV1       *uint64 `json:"security_exchange_v1"`
	GenGatewayV1             *uint64 `json:"gen_gateway_v1"`
	ConsensusGroupV1         *uint64 `json:"consensus_group_v1"`
	TokenBurnExchangeRateV1  *uint64 `json:"token_burn_exchange_rate_v1"`
	TransferHotspotV2        *uint64 `json:"transfer_hotspot_v2"`
	PocReceiptsV1            *uint64 `json:"poc_receipts_v1"`
	ValidatorHeartbeatV1     *uint64 `json:"validator_heartbeat_v1"`
	CreateHtlcV1             *uint64 `json:"create_htlc_v1"`
	TransferValidatorStakeV1 *uint64 `json:"transfer_validator_stake_v1"`
	StakeValidatorV1         *uint64 `json:"stake_validator_v1"`
	RoutingV1                *uint64 `json:"routing_v1"`
	PocRequestV1             *uint64 `json:"poc_request_v1"`
	PaymentV1                *uint64 `json:"payment_v1"`
	AssertLocationV2         *uint64 `json:"assert_location_v2"`
	SecurityCoinbaseV1       *uint64 `json:"security_coinbase_v1"`
	AssertLocationV1         *uint64 `json:"assert_location_v1"`
	TokenBurnV1              *uint64 `json:"token_burn_v1"`
	RewardsV1                *uint64 `json:"rewards_v1"`
	UnstakeValidatorV1       *uint64 `json:"unstake_validator_v1"`
	OuiV1                    *uint64 `json:"oui_v1"`
	StateChannelOpenV1       *uint64 `json:"state_channel_open_v1"`
	RewardsV2                *uint64 `json:"rewards_v2"`
	CoinbaseV1               *uint64 `json:"coinbase_v1"`
	AddGatewayV1             *uint64 `json:"add_gateway_v1"`
	PocReceiptsV2            *uint64 `json:"poc_receipts_v2"`
	ConsensusGroupFailureV1  *uint64 `json:"consensus_group_failure_v1"`
	PaymentV2                *uint64 `json:"payment_v2"`
	TransferHotspotV1        *uint64 `json:"transfer_hotspot_v1"`
	DCCoinbaseV1             *uint64 `json:"dc_coinbase_v1"`
	StateChannelCloseV1      *uint64 `json:"state_channel_close_v1"`
	RedeemHtlcV1             *uint64 `json:"redeem_htlc_v1"`
}
