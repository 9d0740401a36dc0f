package domain

import (
	"net"
	"regexp"
	"strings"
)

// Validation Helpers

var (
	macRegex   = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`)
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// IsValidMAC checks if the string is a valid MAC address
func IsValidMAC(mac string) bool {
	return macRegex.MatchString(mac)
}

// IsValidIP checks if the string parses as an IPv4 or IPv6 address
func IsValidIP(ip string) bool {
	return net.ParseIP(strings.TrimSpace(ip)) != nil
}

// IsValidEmail performs a shallow shape check; the auth provider has the final say.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
