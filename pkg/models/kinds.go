package models

import (
	"encoding/json"

	"github.com/Sternrassler/helium-api-client/pkg/values"
)

// Kind bodies omit type, hash, time and height; Transaction carries them.

type AddGatewayV1 struct {
	Fee        uint64     `json:"fee"`
	Owner      string     `json:"owner"`
	Payer      string     `json:"payer"`
	Gateway    string     `json:"gateway"`
	StakingFee values.HNT `json:"staking_fee"`
}

type AssertLocationV1 struct {
	Fee        uint64     `json:"fee"`
	Nonce      uint64     `json:"nonce"`
	Owner      string     `json:"owner"`
	Payer      *string    `json:"payer"`
	Gateway    string     `json:"gateway"`
	Location   string     `json:"location"`
	StakingFee values.HNT `json:"staking_fee"`
}

type AssertLocationV2 struct {
	Fee        uint64     `json:"fee"`
	Gain       int64      `json:"gain"`
	Nonce      uint64     `json:"nonce"`
	Owner      string     `json:"owner"`
	Payer      *string    `json:"payer"`
	Gateway    string     `json:"gateway"`
	Location   string     `json:"location"`
	Elevation  int64      `json:"elevation"`
	StakingFee values.HNT `json:"staking_fee"`
}

type CoinbaseV1 struct {
	Payee  string     `json:"payee"`
	Amount values.HNT `json:"amount"`
}

type ConsensusGroupFailureV1 struct {
	Delay         uint64   `json:"delay"`
	Block         uint64   `json:"block"`
	Members       []string `json:"members"`
	FailedMembers []string `json:"failed_members"`
	Signatures    []string `json:"signatures"`
}

type ConsensusGroupV1 struct {
	Delay   uint64   `json:"delay"`
	Members []string `json:"members"`
	Proof   string   `json:"proof"`
}

type CreateHtlcV1 struct {
	Fee      uint64     `json:"fee"`
	Nonce    uint64     `json:"nonce"`
	Payee    string     `json:"payee"`
	Payer    string     `json:"payer"`
	Amount   values.HNT `json:"amount"`
	Address  string     `json:"address"`
	Hashlock string     `json:"hashlock"`
	Timelock uint64     `json:"timelock"`
}

type DCCoinbaseV1 struct {
	Payee  string     `json:"payee"`
	Amount values.HNT `json:"amount"`
}

type GenGatewayV1 struct {
	Nonce    uint64 `json:"nonce"`
	Owner    string `json:"owner"`
	Gateway  string `json:"gateway"`
	Location string `json:"location"`
}

type GenPriceOracleV1 struct {
	Price values.USD `json:"price"`
}

type OuiV1 struct {
	Fee                 uint64     `json:"fee"`
	Oui                 uint64     `json:"oui"`
	Owner               string     `json:"owner"`
	Payer               string     `json:"payer"`
	Filter              string     `json:"filter"`
	Addresses           []string   `json:"addresses"`
	StakingFee          values.HNT `json:"staking_fee"`
	RequestedSubnetSize uint64     `json:"requested_subnet_size"`
}

type PaymentV1 struct {
	Amount values.HNT `json:"amount"`
	Fee    uint64     `json:"fee"`
	Nonce  uint64     `json:"nonce"`
	Payer  string     `json:"payer"`
	Payee  string     `json:"payee"`
}

type PaymentV2 struct {
	Fee      uint64             `json:"fee"`
	Nonce    uint64             `json:"nonce"`
	Payer    string             `json:"payer"`
	Payments []PaymentV2Payment `json:"payments"`
}

// PaymentV2Payment is one payee of a multi-payment.
type PaymentV2Payment struct {
	Amount values.HNT `json:"amount"`
	Memo   *string    `json:"memo"`
	Payee  string     `json:"payee"`
}

// Total sums the payment amounts.
func (p *PaymentV2) Total() values.HNT {
	var total values.HNT
	for _, payment := range p.Payments {
		total = total.Add(payment.Amount)
	}
	return total
}

type PocReceiptsV1 struct {
	Challenger       string        `json:"challenger"`
	Fee              uint64        `json:"fee"`
	OnionKeyHash     string        `json:"onion_key_hash"`
	Path             []PathElement `json:"path"`
	RequestBlockHash string        `json:"request_block_hash"`
	Secret           string        `json:"secret"`
}

type PocReceiptsV2 struct {
	Challenger      string        `json:"challenger"`
	ChallengerOwner string        `json:"challenger_owner"`
	Fee             uint64        `json:"fee"`
	OnionKeyHash    string        `json:"onion_key_hash"`
	Path            []PathElement `json:"path"`
	Secret          string        `json:"secret"`
	BlockHash       string        `json:"block_hash"`
}

// PathElement is one hop of a proof-of-coverage challenge. The challengee
// location fields are only present in v2 receipts.
type PathElement struct {
	Challengee            string    `json:"challengee"`
	ChallengeeOwner       string    `json:"challengee_owner,omitempty"`
	ChallengeeLat         float64   `json:"challengee_lat,omitempty"`
	ChallengeeLon         float64   `json:"challengee_lon,omitempty"`
	ChallengeeLocationHex string    `json:"challengee_location_hex,omitempty"`
	ChallengeeLocation    string    `json:"challengee_location,omitempty"`
	Receipt               *Receipt  `json:"receipt"`
	Geocode               *Geocode  `json:"geocode,omitempty"`
	Witnesses             []Witness `json:"witnesses"`
}

// Receipt is the challengee's own receipt of a challenge packet.
type Receipt struct {
	Channel   uint8   `json:"channel"`
	Data      string  `json:"data"`
	Datarate  *string `json:"datarate"`
	Frequency float64 `json:"frequency"`
	Gateway   string  `json:"gateway"`
	Origin    string  `json:"origin"`
	Signal    int64   `json:"signal"`
	SNR       float64 `json:"snr"`
	Timestamp uint64  `json:"timestamp"`
}

// Witness is a hotspot that overheard a challenge packet.
type Witness struct {
	Channel    uint8   `json:"channel"`
	Datarate   string  `json:"datarate"`
	Frequency  float64 `json:"frequency"`
	Gateway    string  `json:"gateway"`
	IsValid    *bool   `json:"is_valid"`
	PacketHash string  `json:"packet_hash"`
	Signal     int64   `json:"signal"`
	SNR        float64 `json:"snr"`
	Timestamp  uint64  `json:"timestamp"`
}

type PocRequestV1 struct {
	BlockHash    string `json:"block_hash"`
	Challenger   string `json:"challenger"`
	Fee          uint64 `json:"fee"`
	OnionKeyHash string `json:"onion_key_hash"`
	SecretHash   string `json:"secret_hash"`
	Version      uint64 `json:"version"`
}

type PriceOracleV1 struct {
	Fee         uint64     `json:"fee"`
	Price       values.USD `json:"price"`
	PublicKey   string     `json:"public_key"`
	BlockHeight uint64     `json:"block_height"`
}

type RedeemHtlcV1 struct {
	Fee      uint64 `json:"fee"`
	Payee    string `json:"payee"`
	Address  string `json:"address"`
	Preimage string `json:"preimage"`
}

// Reward is one entry of a rewards transaction.
type Reward struct {
	Account *string    `json:"account"`
	Amount  values.HNT `json:"amount"`
	Gateway *string    `json:"gateway"`
	Type    string     `json:"type"`
}

type RewardsV1 struct {
	StartEpoch uint64   `json:"start_epoch"`
	EndEpoch   uint64   `json:"end_epoch"`
	Rewards    []Reward `json:"rewards"`
}

type RewardsV2 struct {
	StartEpoch uint64   `json:"start_epoch"`
	EndEpoch   uint64   `json:"end_epoch"`
	Rewards    []Reward `json:"rewards"`
}

type RoutingV1 struct {
	Fee    uint64        `json:"fee"`
	Oui    uint64        `json:"oui"`
	Nonce  uint64        `json:"nonce"`
	Owner  string        `json:"owner"`
	Action RoutingAction `json:"action"`
}

type SecurityCoinbaseV1 struct {
	Payee  string     `json:"payee"`
	Amount values.HNT `json:"amount"`
}

type SecurityExchangeV1 struct {
	Fee    uint64     `json:"fee"`
	Nonce  uint64     `json:"nonce"`
	Payee  string     `json:"payee"`
	Payer  string     `json:"payer"`
	Amount values.HNT `json:"amount"`
}

type StakeValidatorV1 struct {
	Address        string     `json:"address"`
	Fee            uint64     `json:"fee"`
	Owner          string     `json:"owner"`
	Stake          values.HNT `json:"stake"`
	OwnerSignature string     `json:"owner_signature"`
}

type StateChannelCloseV1 struct {
	StateChannel  StateChannel  `json:"state_channel"`
	ConflictsWith *StateChannel `json:"conflicts_with"`
	Closer        string        `json:"closer"`
}

// StateChannel is the closing state of a data-credit channel.
type StateChannel struct {
	Summaries     []StateChannelSummary `json:"summaries"`
	State         string                `json:"state"`
	RootHash      string                `json:"root_hash"`
	Owner         string                `json:"owner"`
	Nonce         uint64                `json:"nonce"`
	ID            string                `json:"id"`
	ExpireAtBlock uint64                `json:"expire_at_block"`
}

// StateChannelSummary is the per-client usage in a state channel.
type StateChannelSummary struct {
	NumPackets uint64 `json:"num_packets"`
	NumDCs     uint64 `json:"num_dcs"`
	Client     string `json:"client"`
}

type StateChannelOpenV1 struct {
	ID           string     `json:"id"`
	Fee          uint64     `json:"fee"`
	Oui          uint64     `json:"oui"`
	Nonce        uint64     `json:"nonce"`
	Owner        string     `json:"owner"`
	Amount       values.HNT `json:"amount"`
	ExpireWithin uint64     `json:"expire_within"`
}

type TokenBurnExchangeRateV1 struct {
	Rate uint64 `json:"rate"`
}

type TokenBurnV1 struct {
	Fee    uint64     `json:"fee"`
	Memo   string     `json:"memo"`
	Nonce  uint64     `json:"nonce"`
	Payee  string     `json:"payee"`
	Payer  string     `json:"payer"`
	Amount values.HNT `json:"amount"`
}

type TransferHotspotV1 struct {
	Fee            uint64     `json:"fee"`
	Buyer          string     `json:"buyer"`
	Seller         string     `json:"seller"`
	Gateway        string     `json:"gateway"`
	BuyerNonce     uint64     `json:"buyer_nonce"`
	AmountToSeller values.HNT `json:"amount_to_seller"`
}

type TransferValidatorStakeV1 struct {
	Block             uint64     `json:"block"`
	Fee               uint64     `json:"fee"`
	NewAddress        string     `json:"new_address"`
	NewOwner          string     `json:"new_owner"`
	NewOwnerSignature *string    `json:"new_owner_signature"`
	OldAddress        string     `json:"old_address"`
	OldOwner          string     `json:"old_owner"`
	OldOwnerSignature string     `json:"old_owner_signature"`
	PaymentAmount     values.HNT `json:"payment_amount"`
	StakeAmount       values.HNT `json:"stake_amount"`
}

type UnstakeValidatorV1 struct {
	Address            string     `json:"address"`
	Owner              string     `json:"owner"`
	OwnerSignature     string     `json:"owner_signature"`
	Fee                uint64     `json:"fee"`
	StakeAmount        values.HNT `json:"stake_amount"`
	StakeReleaseHeight uint64     `json:"stake_release_height"`
}

type UpdateGatewayOuiV1 struct {
	Gateway               string `json:"gateway"`
	Oui                   uint64 `json:"oui"`
	Nonce                 uint64 `json:"nonce"`
	Fee                   uint64 `json:"fee"`
	GatewayOwnerSignature string `json:"gateway_owner_signature"`
	OuiOwnerSignature     string `json:"oui_owner_signature"`
}

type ValidatorHeartbeatV1 struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
	Version   uint64 `json:"version"`
}

type VarsV1 struct {
	Vars             json.RawMessage   `json:"vars"`
	Unsets           []json.RawMessage `json:"unsets"`
	Cancels          []json.RawMessage `json:"cancels"`
	Nonce            uint64            `json:"nonce"`
	Proof            string            `json:"proof"`
	VersionPredicate uint64            `json:"version_predicate"`
	MasterKey        *string           `json:"master_key"`
	KeyProof         string            `json:"key_proof"`
}

func (*AddGatewayV1) TxnType() string             { return "add_gateway_v1" }
func (*AssertLocationV1) TxnType() string         { return "assert_location_v1" }
func (*AssertLocationV2) TxnType() string         { return "assert_location_v2" }
func (*CoinbaseV1) TxnType() string               { return "coinbase_v1" }
func (*ConsensusGroupFailureV1) TxnType() string  { return "consensus_group_failure_v1" }
func (*ConsensusGroupV1) TxnType() string         { return "consensus_group_v1" }
func (*CreateHtlcV1) TxnType() string             { return "create_htlc_v1" }
func (*DCCoinbaseV1) TxnType() string             { return "dc_coinbase_v1" }
func (*GenGatewayV1) TxnType() string             { return "gen_gateway_v1" }
func (*GenPriceOracleV1) TxnType() string         { return "gen_price_oracle_v1" }
func (*OuiV1) TxnType() string                    { return "oui_v1" }
func (*PaymentV1) TxnType() string                { return "payment_v1" }
func (*PaymentV2) TxnType() string                { return "payment_v2" }
func (*PocReceiptsV1) TxnType() string            { return "poc_receipts_v1" }
func (*PocReceiptsV2) TxnType() string            { return "poc_receipts_v2" }
func (*PocRequestV1) TxnType() string             { return "poc_request_v1" }
func (*PriceOracleV1) TxnType() string            { return "price_oracle_v1" }
func (*RedeemHtlcV1) TxnType() string             { return "redeem_htlc_v1" }
func (*RewardsV1) TxnType() string                { return "rewards_v1" }
func (*RewardsV2) TxnType() string                { return "rewards_v2" }
func (*RoutingV1) TxnType() string                { return "routing_v1" }
func (*SecurityCoinbaseV1) TxnType() string       { return "security_coinbase_v1" }
func (*SecurityExchangeV1) TxnType() string       { return "security_exchange_v1" }
func (*StakeValidatorV1) TxnType() string         { return "stake_validator_v1" }
func (*StateChannelCloseV1) TxnType() string      { return "state_channel_close_v1" }
func (*StateChannelOpenV1) TxnType() string       { return "state_channel_open_v1" }
func (*TokenBurnExchangeRateV1) TxnType() string  { return "token_burn_exchange_rate_v1" }
func (*TokenBurnV1) TxnType() string              { return "token_burn_v1" }
func (*TransferHotspotV1) TxnType() string        { return "transfer_hotspot_v1" }
func (*TransferValidatorStakeV1) TxnType() string { return "transfer_validator_stake_v1" }
func (*UnstakeValidatorV1) TxnType() string       { return "unstake_validator_v1" }
func (*UpdateGatewayOuiV1) TxnType() string       { return "update_gateway_oui_v1" }
func (*ValidatorHeartbeatV1) TxnType() string     { return "validator_heartbeat_v1" }
func (*VarsV1) TxnType() string                   { return "vars_v1" }
