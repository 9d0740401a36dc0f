package domain

import (
	"errors"
	"fmt"
	"time"
)

// DeviceType classifies a network device.
type DeviceType string

const (
	DeviceServer      DeviceType = "server"
	DeviceWorkstation DeviceType = "workstation"
	DeviceRouter      DeviceType = "router"
	DeviceFirewall    DeviceType = "firewall"
	DeviceComputer    DeviceType = "computer"
	DeviceMobile      DeviceType = "mobile"
)

// DeviceStatus is the reachability state of a device.
type DeviceStatus string

const (
	StatusOnline  DeviceStatus = "online"
	StatusOffline DeviceStatus = "offline"
	StatusWarning DeviceStatus = "warning"
)

var (
	ErrInvalidDeviceType   = errors.New("invalid device type")
	ErrInvalidDeviceStatus = errors.New("invalid device status")
)

func (t DeviceType) IsValid() bool {
	switch t {
	case DeviceServer, DeviceWorkstation, DeviceRouter, DeviceFirewall, DeviceComputer, DeviceMobile:
		return true
	}
	return false
}

func (s DeviceStatus) IsValid() bool {
	switch s {
	case StatusOnline, StatusOffline, StatusWarning:
		return true
	}
	return false
}

// NetworkDevice is an inventory entry for a host on the monitored network.
// Connections hold identifiers of other devices; they are not checked for
// existence or cycles.
type NetworkDevice struct {
	ID          string       `json:"id"`
	IP          string       `json:"ip"`
	Name        string       `json:"name"`
	MAC         string       `json:"mac"`
	Vendor      string       `json:"vendor,omitempty"` // Resolved from OUI
	Type        DeviceType   `json:"type"`
	Status      DeviceStatus `json:"status"`
	Risk        Severity     `json:"risk"`
	LastSeen    time.Time    `json:"lastSeen"`
	Connections []string     `json:"connections"`
}

// Validate checks that the enumerated fields hold known values.
func (d NetworkDevice) Validate() error {
	if d.ID == "" {
		return ErrEmptyID
	}
	if !d.Type.IsValid() {
		return fmt.Errorf("device %s: %w: %q", d.ID, ErrInvalidDeviceType, d.Type)
	}
	if !d.Status.IsValid() {
		return fmt.Errorf("device %s: %w: %q", d.ID, ErrInvalidDeviceStatus, d.Status)
	}
	if !d.Risk.IsValid() {
		return fmt.Errorf("device %s: %w: %q", d.ID, ErrInvalidSeverity, d.Risk)
	}
	return nil
}

// FilterFields implements Filterable.
func (NetworkDevice) FilterFields() []FilterField {
	return []FilterField{FieldSeverity, FieldType, FieldStatus}
}

// FilterValue implements Filterable. Risk is matched through the severity field.
func (d NetworkDevice) FilterValue(f FilterField) string {
	switch f {
	case FieldSeverity:
		return string(d.Risk)
	case FieldType:
		return string(d.Type)
	case FieldStatus:
		return string(d.Status)
	}
	return ""
}
