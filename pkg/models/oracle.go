package models

import "github.com/Sternrassler/helium-api-client/pkg/values"

// OraclePrice is the HNT oracle price in effect from Block.
type OraclePrice struct {
	Price values.USD `json:"price"`
	Block uint64     `json:"block"`
}

// OraclePrediction is a price expected to take effect at Time (unix seconds).
type OraclePrediction struct {
	Price values.USD `json:"price"`
	Time  uint64     `json:"time"`
}
