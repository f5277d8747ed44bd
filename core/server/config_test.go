package server_test

import (
	"testing"
	"time"

	"catalog-export/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		port string
		want string
	}{
		{"PortOnly", "8080", ":8080"},
		{"HostAndPort", "127.0.0.1:9000", "127.0.0.1:9000"},
		{"Padded", " 3000 ", ":3000"},
		{"Empty", "", ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Port: tt.port}
			assert.Equal(t, tt.want, c.Address())
		})
	}
}

func TestConfig_ReadTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, server.Config{}.ReadTimeout())
	assert.Equal(t, 5*time.Second, server.Config{ReadTimeoutSeconds: 5}.ReadTimeout())
}
