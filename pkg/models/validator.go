package models

import (
	"time"

	"github.com/Sternrassler/helium-api-client/pkg/values"
)

// Validator is a consensus node and its stake.
type Validator struct {
	Address          string     `json:"address"`
	Owner            string     `json:"owner"`
	Stake            values.HNT `json:"stake"`
	LastHeartbeat    uint64     `json:"last_heartbeat"`
	VersionHeartbeat uint64     `json:"version_heartbeat"`
	StakeStatus      string     `json:"stake_status"`
	Penalty          float64    `json:"penalty"`
	Penalties        []Penalty  `json:"penalties"`
	BlockAdded       uint64     `json:"block_added"`
	Block            uint64     `json:"block"`
}

// PenaltyType names the reason for a validator penalty.
type PenaltyType string

const (
	PenaltyPerformance PenaltyType = "performance"
	PenaltyTenure      PenaltyType = "tenure"
	PenaltyDKG         PenaltyType = "dkg"
)

// Penalty is one penalty applied to a validator.
type Penalty struct {
	Type   PenaltyType `json:"type"`
	Height uint64      `json:"height"`
	Amount float64     `json:"amount"`
}

// ValidatorStats summarizes validators by stake status.
type ValidatorStats struct {
	Active   *uint64    `json:"active"`
	Staked   StakeStats `json:"staked"`
	Unstaked StakeStats `json:"unstaked"`
	Cooldown StakeStats `json:"cooldown"`
}

// StakeStats is the total stake and validator count for one status.
type StakeStats struct {
	Amount float64 `json:"amount"`
	Count  uint64  `json:"count"`
}

// ValidatorReward is one consensus reward paid to a validator.
type ValidatorReward struct {
	Account   string     `json:"account"`
	Amount    values.HNT `json:"amount"`
	Block     int64      `json:"block"`
	Gateway   string     `json:"gateway"`
	Hash      string     `json:"hash"`
	Timestamp time.Time  `json:"timestamp"`
}
