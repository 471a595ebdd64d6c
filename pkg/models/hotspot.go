package models

import (
	"encoding/json"
	"strings"

	"github.com/Sternrassler/helium-api-client/pkg/client"
	"github.com/Sternrassler/helium-api-client/pkg/values"
)

// Hotspot is a network gateway.
type Hotspot struct {
	Address     string      `json:"address"`
	Owner       string      `json:"owner"`
	Name        *string     `json:"name"`
	AddedHeight *uint64     `json:"added_height"`
	Lat         *float64    `json:"lat"`
	Lng         *float64    `json:"lng"`
	Location    *string     `json:"location"` // h3 index
	Mode        HotspotMode `json:"mode"`
	Elevation   *int32      `json:"elevation"`
	Gain        *values.Dbi `json:"gain"`
	Geocode     Geocode     `json:"geocode"`
	Nonce       uint64      `json:"nonce"`
	RewardScale *float64    `json:"reward_scale"`

	SpeculativeNonce uint64 `json:"speculative_nonce"`
}

// Geocode is the reverse-geocoded address of an asserted location.
type Geocode struct {
	LongCity     *string `json:"long_city"`
	LongCountry  *string `json:"long_country"`
	LongState    *string `json:"long_state"`
	LongStreet   *string `json:"long_street"`
	ShortCity    *string `json:"short_city"`
	ShortCountry *string `json:"short_country"`
	ShortState   *string `json:"short_state"`
	ShortStreet  *string `json:"short_street"`
	CityID       *string `json:"city_id"`
}

// HotspotMode is the staking mode a hotspot was added with.
type HotspotMode string

const (
	HotspotModeFull     HotspotMode = "full"
	HotspotModeLight    HotspotMode = "light"
	HotspotModeDataOnly HotspotMode = "dataonly"
)

// ParseHotspotMode parses a mode name case-insensitively.
func ParseHotspotMode(s string) (HotspotMode, error) {
	switch mode := HotspotMode(strings.ToLower(s)); mode {
	case HotspotModeFull, HotspotModeLight, HotspotModeDataOnly:
		return mode, nil
	default:
		return "", &client.ValueError{Value: s, Reason: "hotspot mode must be full, light or dataonly"}
	}
}

// String implements fmt.Stringer.
func (m HotspotMode) String() string {
	return string(m)
}

// UnmarshalJSON accepts any casing of a known mode. A JSON null leaves the
// mode unchanged.
func (m *HotspotMode) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &client.ValueError{Value: string(data), Reason: "hotspot mode must be a string"}
	}
	mode, err := ParseHotspotMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
