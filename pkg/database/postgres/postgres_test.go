package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDSN(t *testing.T) {
	cfg := &Config{
		Host:     "db",
		Port:     "5432",
		User:     "seller",
		Password: "secret",
		DBName:   "inventory",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=seller password=secret dbname=inventory sslmode=disable", cfg.DSN())
}
