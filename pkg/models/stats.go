package models

// Height is the current chain height.
type Height struct {
	Height uint64 `json:"height"`
}

// BlockStats holds timing measures over several windows.
type BlockStats struct {
	LastDay   Measures `json:"last_day"`
	LastHour  Measures `json:"last_hour"`
	LastMonth Measures `json:"last_month"`
	LastWeek  Measures `json:"last_week"`
}

// Measures is an average with its standard deviation, in seconds.
type Measures struct {
	Avg    float64 `json:"avg"`
	Stddev float64 `json:"stddev"`
}

// Stats are the chain-wide statistics.
type Stats struct {
	BlockTimes      BlockStats      `json:"block_times"`
	ChallengeCounts ChallengeCounts `json:"challenge_counts"`
	Counts          Counts          `json:"counts"`
	ElectionTimes   BlockStats      `json:"election_times"`
	TokenSupply     float64         `json:"token_supply"`
}

// ChallengeCounts counts proof-of-coverage challenges.
type ChallengeCounts struct {
	Active  uint64 `json:"active"`
	LastDay uint64 `json:"last_day"`
}

// Counts are totals of chain entities.
type Counts struct {
	Validators       uint64 `json:"validators"`
	Ouis             uint64 `json:"ouis"`
	HotspotsDataOnly uint64 `json:"hotspots_dataonly"`
	Blocks           uint64 `json:"blocks"`
	Challenges       uint64 `json:"challenges"`
	Cities           uint64 `json:"cities"`
	ConsensusGroups  uint64 `json:"consensus_groups"`
	Countries        uint64 `json:"countries"`
	Hotspots         uint64 `json:"hotspots"`
	Transactions     uint64 `json:"transactions"`
}

// TokenSupply is the circulating HNT supply.
type TokenSupply struct {
	TokenSupply float64 `json:"token_supply"`
}
