package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/health", "/health"},
		{"/api/v1/accounts/", "/api/v1/accounts/"},
		{"/api/v1/accounts/ACC-0a1b2c3d", "/api/v1/accounts/:number"},
		{"/api/v1/accounts/ACC-0a1b2c3d/transactions", "/api/v1/accounts/:number/transactions"},
		{"/api/v1/accounts/ACC-0a1b2c3d/transfer", "/api/v1/accounts/:number/transfer"},
	}

	for _, tc := range cases {
		if got := normalizePath(tc.in); got != tc.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
