package fingerprint

import (
	"context"
	"errors"

	"github.com/google/gopacket/macs"
)

// Unknown is reported when no repository knows the prefix.
const Unknown = "Unknown"

// Randomized is reported for locally administered addresses.
const Randomized = "Randomized"

// VendorRepository defines the interface for looking up device vendors by MAC address
type VendorRepository interface {
	// LookupVendor returns the vendor name for a given MAC address
	LookupVendor(ctx context.Context, mac MACAddress) (string, error)

	// Close releases any resources held by the repository
	Close() error
}

// CompositeVendorRepository tries multiple repositories in order.
type CompositeVendorRepository struct {
	repositories []VendorRepository
}

// NewCompositeVendorRepository creates a new composite repository
// that tries each repository in order until one succeeds
func NewCompositeVendorRepository(repos ...VendorRepository) *CompositeVendorRepository {
	return &CompositeVendorRepository{
		repositories: repos,
	}
}

// LookupVendor tries each repository in order until one returns a result
func (c *CompositeVendorRepository) LookupVendor(ctx context.Context, mac MACAddress) (string, error) {
	if !mac.IsValid() {
		return "", ErrInvalidMAC
	}

	var lastErr error
	for _, repo := range c.repositories {
		vendor, err := repo.LookupVendor(ctx, mac)
		if err == nil && vendor != "" && vendor != Unknown {
			return vendor, nil
		}
		if err != nil && !errors.Is(err, ErrVendorNotFound) {
			lastErr = err
		}
	}

	if lastErr != nil {
		return Unknown, lastErr
	}
	return Unknown, ErrVendorNotFound
}

// Close closes all repositories
func (c *CompositeVendorRepository) Close() error {
	var firstErr error
	for _, repo := range c.repositories {
		if err := repo.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// StaticVendorRepository provides vendor lookups from an in-memory map keyed
// by "XX:XX:XX" prefixes.
type StaticVendorRepository struct {
	vendors map[string]string
}

// NewStaticVendorRepository creates a new static repository
func NewStaticVendorRepository(vendors map[string]string) *StaticVendorRepository {
	return &StaticVendorRepository{
		vendors: vendors,
	}
}

// LookupVendor looks up a vendor in the static map
func (s *StaticVendorRepository) LookupVendor(ctx context.Context, mac MACAddress) (string, error) {
	if vendor, ok := s.vendors[mac.OUI()]; ok {
		return vendor, nil
	}
	return "", ErrVendorNotFound
}

// Close is a no-op for static repository
func (s *StaticVendorRepository) Close() error {
	return nil
}

// RegistryVendorRepository serves the IEEE registry compiled into gopacket.
type RegistryVendorRepository struct{}

// LookupVendor looks up the prefix in macs.ValidMACPrefixMap.
func (RegistryVendorRepository) LookupVendor(ctx context.Context, mac MACAddress) (string, error) {
	if vendor, ok := macs.ValidMACPrefixMap[mac.Prefix()]; ok {
		return vendor, nil
	}
	return "", ErrVendorNotFound
}

func (RegistryVendorRepository) Close() error { return nil }

// RegistryEntries returns the gopacket registry as seed entries.
func RegistryEntries() []OUIEntry {
	entries := make([]OUIEntry, 0, len(macs.ValidMACPrefixMap))
	for p, vendor := range macs.ValidMACPrefixMap {
		entries = append(entries, OUIEntry{
			Prefix: MACAddress{address: p[:]}.OUI(),
			Vendor: vendor,
		})
	}
	return entries
}
