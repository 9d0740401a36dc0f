package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
)

var (
	ErrUnknownAction     = errors.New("unknown action")
	ErrUnsupportedFilter = errors.New("unsupported filter field")
)

// Envelope is the wire form of a client-issued action, e.g.
// {"type":"threats/setFilters","payload":{"severity":"high"}}.
// Fetch and login lifecycle actions are server-side only and never decode.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Decode turns an envelope into a typed action.
func Decode(env Envelope) (Action, error) {
	switch env.Type {
	case "threats/setFilters":
		return decodeFilters[domain.Threat](env.Payload)
	case "network/setFilters":
		return decodeFilters[domain.NetworkDevice](env.Payload)
	case "siem/setFilters":
		return decodeFilters[domain.SIEMEvent](env.Payload)
	case "reports/setFilters":
		return decodeFilters[domain.Report](env.Payload)
	case "threatMap/setFilters":
		return decodeFilters[domain.ThreatLocation](env.Payload)

	case "threats/clearFilters":
		return SetFilters[domain.Threat]{Patch: domain.ClearPatch()}, nil
	case "network/clearFilters":
		return SetFilters[domain.NetworkDevice]{Patch: domain.ClearPatch()}, nil
	case "siem/clearFilters":
		return SetFilters[domain.SIEMEvent]{Patch: domain.ClearPatch()}, nil
	case "reports/clearFilters":
		return SetFilters[domain.Report]{Patch: domain.ClearPatch()}, nil
	case "threatMap/clearFilters":
		return SetFilters[domain.ThreatLocation]{Patch: domain.ClearPatch()}, nil

	case "threats/clearError":
		return ClearError[domain.Threat]{}, nil
	case "network/clearError":
		return ClearError[domain.NetworkDevice]{}, nil
	case "siem/clearError":
		return ClearError[domain.SIEMEvent]{}, nil
	case "reports/clearError":
		return ClearError[domain.Report]{}, nil
	case "threatMap/clearError":
		return ClearError[domain.ThreatLocation]{}, nil
	case "auth/clearError":
		return ClearAuthError{}, nil

	case "ui/toggleTheme":
		return ToggleTheme{}, nil
	case "ui/toggleSidebar":
		return ToggleSidebar{}, nil
	case "ui/setLoading":
		var p struct {
			Loading bool `json:"loading"`
		}
		if err := decodePayload(env.Payload, &p); err != nil {
			return nil, err
		}
		return SetLoading{Loading: p.Loading}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
}

func decodeFilters[T Entity](raw json.RawMessage) (Action, error) {
	var patch domain.FilterPatch
	if err := decodePayload(raw, &patch); err != nil {
		return nil, err
	}
	for _, f := range patch.Fields() {
		if !domain.Supports[T](f) {
			return nil, fmt.Errorf("%w: %s has no %s", ErrUnsupportedFilter, SliceOf[T](), f)
		}
	}
	return SetFilters[T]{Patch: patch}, nil
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode action payload: %w", err)
	}
	return nil
}
