package domain

import "testing"

func TestIsValidMAC(t *testing.T) {
	tests := []struct {
		mac   string
		valid bool
	}{
		{"AA:BB:CC:DD:EE:FF", true},
		{"aa:bb:cc:dd:ee:ff", true},
		{"00:1B:44:11:3A:B7", true},
		{"invalid", false},
		{"AA:BB:CC:DD:EE", false},
		{"AA:BB:CC:DD:EE:FF:GG", false},
		{"", false},
	}

	for _, tt := range tests {
		if IsValidMAC(tt.mac) != tt.valid {
			t.Errorf("IsValidMAC(%s) = %v; want %v", tt.mac, IsValidMAC(tt.mac), tt.valid)
		}
	}
}

func TestIsValidIP(t *testing.T) {
	tests := []struct {
		ip    string
		valid bool
	}{
		{"192.168.1.100", true},
		{"10.0.0.50", true},
		{"::1", true},
		{"300.1.1.1", false},
		{"host.local", false},
		{"", false},
	}

	for _, tt := range tests {
		if IsValidIP(tt.ip) != tt.valid {
			t.Errorf("IsValidIP(%s) = %v; want %v", tt.ip, IsValidIP(tt.ip), tt.valid)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"admin@cybersec.com", true},
		{"a@b.com", true},
		{"no-at-sign", false},
		{"two@@signs.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if IsValidEmail(tt.email) != tt.valid {
			t.Errorf("IsValidEmail(%s) = %v; want %v", tt.email, IsValidEmail(tt.email), tt.valid)
		}
	}
}
