package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/screens"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
)

// Formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrNotExportable     = errors.New("resource cannot be exported")
)

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// Export writes the visible (filtered) items of resource in format.
func Export(w io.Writer, st store.State, resource, format string) error {
	if format != FormatJSON && format != FormatCSV {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	switch resource {
	case screens.ResourceThreats:
		return write(w, format, store.Visible(st.Threats), ThreatsCSV)
	case screens.ResourceNetwork:
		return write(w, format, store.Visible(st.Network), DevicesCSV)
	case screens.ResourceSIEM:
		return write(w, format, store.Visible(st.SIEM), EventsCSV)
	}
	return fmt.Errorf("%w: %q", ErrNotExportable, resource)
}

func write[T any](w io.Writer, format string, items []T, csvFn func(io.Writer, []T) error) error {
	if format == FormatCSV {
		return csvFn(w, items)
	}
	return ExportJSON(w, items)
}

// ExportJSON writes items as an indented JSON array
func ExportJSON[T any](w io.Writer, items []T) error {
	if items == nil {
		items = []T{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(items)
}

// ThreatsCSV writes threats as CSV with headers
func ThreatsCSV(w io.Writer, threats []domain.Threat) error {
	headers := []string{"ID", "IP", "Type", "Severity", "Source", "Country", "Confidence", "Timestamp", "Description"}
	return writeCSV(w, headers, threats, func(t domain.Threat) []string {
		return []string{
			t.ID,
			t.IP,
			t.Type,
			string(t.Severity),
			t.Source,
			t.Country,
			strconv.Itoa(t.Confidence),
			t.Timestamp.Format(time.RFC3339),
			t.Description,
		}
	})
}

// DevicesCSV writes devices as CSV with headers
func DevicesCSV(w io.Writer, devices []domain.NetworkDevice) error {
	headers := []string{"ID", "Name", "IP", "MAC", "Vendor", "Type", "Status", "Risk", "LastSeen", "Connections"}
	return writeCSV(w, headers, devices, func(d domain.NetworkDevice) []string {
		return []string{
			d.ID,
			d.Name,
			d.IP,
			d.MAC,
			d.Vendor,
			string(d.Type),
			string(d.Status),
			string(d.Risk),
			d.LastSeen.Format(time.RFC3339),
			strings.Join(d.Connections, ";"),
		}
	})
}

// EventsCSV writes SIEM events as CSV with headers
func EventsCSV(w io.Writer, events []domain.SIEMEvent) error {
	headers := []string{"ID", "Timestamp", "Severity", "Source", "Event", "SourceIP", "DestinationIP", "Description"}
	return writeCSV(w, headers, events, func(e domain.SIEMEvent) []string {
		return []string{
			e.ID,
			e.Timestamp.Format(time.RFC3339),
			string(e.Severity),
			e.Source,
			e.Event,
			e.SourceIP,
			e.DestinationIP,
			e.Description,
		}
	})
}

func writeCSV[T any](w io.Writer, headers []string, items []T, row func(T) []string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write(row(item)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
