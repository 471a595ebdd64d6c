package models

import (
	"encoding/json"

	"github.com/Sternrassler/helium-api-client/pkg/client"
)

// RoutingActionKind names the change a routing_v1 transaction makes.
type RoutingActionKind string

const (
	RoutingNewXor        RoutingActionKind = "new_xor"
	RoutingUpdateXor     RoutingActionKind = "update_xor"
	RoutingUpdateRouters RoutingActionKind = "update_routers"
	RoutingRequestSubnet RoutingActionKind = "request_subnet"
)

// RoutingAction is the "action" object of a routing_v1 transaction. Only
// the fields of its Kind are populated.
type RoutingAction struct {
	Kind RoutingActionKind

	// new_xor, update_xor
	Filter string
	// update_xor
	Index uint64
	// update_routers
	Addresses []string
	// request_subnet
	RequestedSubnetSize uint64
}

type routingActionWire struct {
	Action              RoutingActionKind `json:"action"`
	Filter              string            `json:"filter,omitempty"`
	Index               *uint64           `json:"index,omitempty"`
	Addresses           []string          `json:"addresses,omitempty"`
	RequestedSubnetSize *uint64           `json:"requested_subnet_size,omitempty"`
}

// UnmarshalJSON decodes an action tagged by its "action" field.
func (a *RoutingAction) UnmarshalJSON(data []byte) error {
	var wire routingActionWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	action := RoutingAction{Kind: wire.Action}
	switch wire.Action {
	case RoutingNewXor:
		action.Filter = wire.Filter
	case RoutingUpdateXor:
		action.Filter = wire.Filter
		if wire.Index != nil {
			action.Index = *wire.Index
		}
	case RoutingUpdateRouters:
		action.Addresses = wire.Addresses
	case RoutingRequestSubnet:
		if wire.RequestedSubnetSize != nil {
			action.RequestedSubnetSize = *wire.RequestedSubnetSize
		}
	default:
		return &client.ValueError{Value: string(data), Reason: "unknown routing action"}
	}

	*a = action
	return nil
}

// MarshalJSON writes only the fields belonging to the action kind.
func (a RoutingAction) MarshalJSON() ([]byte, error) {
	wire := routingActionWire{Action: a.Kind}
	switch a.Kind {
	case RoutingNewXor:
		wire.Filter = a.Filter
	case RoutingUpdateXor:
		wire.Filter = a.Filter
		wire.Index = &a.Index
	case RoutingUpdateRouters:
		wire.Addresses = a.Addresses
	case RoutingRequestSubnet:
		wire.RequestedSubnetSize = &a.RequestedSubnetSize
	}
	return json.Marshal(wire)
}
