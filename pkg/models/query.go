package models

// QueryTimeRange limits a listing to a time window. Both bounds accept
// ISO 8601 timestamps or relative values such as "-1 day".
type QueryTimeRange struct {
	MinTime string `url:"min_time,omitempty"`
	MaxTime string `url:"max_time,omitempty"`
}

// QueryFilter limits a listing to transaction kinds, given as a comma
// separated list such as "payment_v2,rewards_v2".
type QueryFilter struct {
	FilterTypes string `url:"filter_types,omitempty"`
}

// QueryFilterWithTimeRange combines a kind filter, a time window and a page
// size limit.
type QueryFilterWithTimeRange struct {
	FilterTypes string `url:"filter_types,omitempty"`
	MinTime     string `url:"min_time,omitempty"`
	MaxTime     string `url:"max_time,omitempty"`
	Limit       uint32 `url:"limit,omitempty"`
}
