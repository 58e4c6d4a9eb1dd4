package server_test

import (
	"testing"
	"time"

	"payment-relay/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_BodyLimit(t *testing.T) {
	tests := []struct {
		name string
		kb   int
		want int
	}{
		{"Default", 0, 512 * 1024},
		{"Negative", -1, 512 * 1024},
		{"Custom", 64, 64 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{BodyLimitKB: tt.kb}
			assert.Equal(t, tt.want, c.BodyLimit())
		})
	}
}

func TestConfig_ShutdownTimeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, server.Config{}.ShutdownTimeout())
	assert.Equal(t, 3*time.Second, server.Config{ShutdownTimeoutSeconds: 3}.ShutdownTimeout())
}
