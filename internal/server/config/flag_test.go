package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-i", "issuer",
			"-t", "90", "-o", "http://a,http://b", "-l", "debug",
		}, expected: &Config{
			HTTPAddr:           "127.0.0.1:9090",
			DatabaseDSN:        "db",
			JWTSecret:          "secret",
			JWTIssuer:          "issuer",
			TokenTTL:           90 * time.Minute,
			CORSAllowedOrigins: []string{"http://a", "http://b"},
			LogLevel:           "debug",
		}},
		{name: "unset ttl keeps sub-minute value", args: []string{"cmd", "-s", "x"},
			expected: &Config{
				JWTSecret: "x",
				TokenTTL:  90 * time.Second,
			}},
		{name: "config and env flags are ignored", args: []string{"cmd", "-c", "conf.json", "-env", "prod.env", "-a", ":1"},
			expected: &Config{
				HTTPAddr: ":1",
				TokenTTL: 90 * time.Second,
			}},
		{name: "non-numeric ttl panics", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{TokenTTL: 90 * time.Second}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
