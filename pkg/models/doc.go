// Package models holds the Helium blockchain API data types: accounts,
// hotspots, validators, oracle prices, OUIs, chain stats, pending
// transactions and the Transaction union keyed by its "type" field.
//
// Token amounts use the fixed-point types from pkg/values and decode from
// their wire integer (bones) form. Query structs carry go-querystring tags
// and are encoded by the helium façade.
package models
