package server_test

import (
	"testing"

	"pantry-tracker/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_BodyLimitBytes(t *testing.T) {
	tests := []struct {
		name    string
		limitMB int
		want    int
	}{
		{"Default", 16, 16 * 1024 * 1024},
		{"Custom", 4, 4 * 1024 * 1024},
		{"Zero falls back", 0, 16 * 1024 * 1024},
		{"Negative falls back", -1, 16 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{BodyLimitMB: tt.limitMB}
			assert.Equal(t, tt.want, c.BodyLimitBytes())
		})
	}
}
