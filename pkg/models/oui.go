package models

import "fmt"

// Oui is an organizationally unique identifier and its routing data.
type Oui struct {
	Oui       uint64   `json:"oui"`
	Owner     string   `json:"owner"`
	Nonce     uint64   `json:"nonce"`
	Addresses []string `json:"addresses"`
	Subnets   []Subnet `json:"subnets"`
}

// OuiStats counts registered OUIs.
type OuiStats struct {
	Count uint64 `json:"count"`
}

// Subnet is a devaddr range owned by an OUI.
type Subnet struct {
	Base uint32 `json:"base"`
	Mask uint32 `json:"mask"`
}

// String formats the subnet as base/mask.
func (s Subnet) String() string {
	return fmt.Sprintf("%d/%d", s.Base, s.Mask)
}
