package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 2025, cfg.InvoiceNumberYear)
	assert.True(t, cfg.RunMigrations)
	assert.Empty(t, cfg.DatabaseURL)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("INVOICE_NUMBER_YEAR", "2026")
	t.Setenv("TIMEZONE", "Europe/Madrid")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 2026, cfg.InvoiceNumberYear)
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Madrid", loc.String())
}

func TestLoad_RejectsBadYear(t *testing.T) {
	t.Setenv("INVOICE_NUMBER_YEAR", "25")

	_, err := Load()
	assert.Error(t, err)
}
