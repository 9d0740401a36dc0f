package fingerprint

import (
	"context"
	"log/slog"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
)

var _ ports.Source[domain.NetworkDevice] = (*VendorSource)(nil)

// VendorSource decorates a device source, filling Vendor from the MAC OUI.
// Lookups never fail the fetch; unresolved devices get Unknown.
type VendorSource struct {
	inner  ports.Source[domain.NetworkDevice]
	repo   VendorRepository
	logger *slog.Logger
}

func NewVendorSource(inner ports.Source[domain.NetworkDevice], repo VendorRepository, logger *slog.Logger) *VendorSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &VendorSource{inner: inner, repo: repo, logger: logger.With("component", "fingerprint")}
}

func (s *VendorSource) Name() string { return s.inner.Name() }

func (s *VendorSource) Fetch(ctx context.Context) ([]domain.NetworkDevice, error) {
	devices, err := s.inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.NetworkDevice, len(devices))
	for i, d := range devices {
		if d.Vendor == "" {
			d.Vendor = s.vendorOf(ctx, d.MAC)
		}
		out[i] = d
	}
	return out, nil
}

func (s *VendorSource) vendorOf(ctx context.Context, raw string) string {
	mac, err := ParseMAC(raw)
	if err != nil {
		return Unknown
	}
	if mac.IsRandomized() {
		return Randomized
	}
	vendor, err := s.repo.LookupVendor(ctx, mac)
	if err != nil {
		if vendor == "" {
			vendor = Unknown
		}
		s.logger.Debug("Vendor lookup failed", "mac", mac.String(), "error", err)
	}
	return vendor
}
