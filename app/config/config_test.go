package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Server.Address)
	assert.Equal(t, "localhost", c.Database.Host)
	assert.Equal(t, 5432, c.Database.Port)
	assert.Equal(t, 25, c.Database.MaxOpenConns)
	assert.Equal(t, 24, c.JWT.ExpireHours)
	assert.True(t, c.Scheduler.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SM_DATABASE_HOST", "db.internal")
	t.Setenv("SM_SERVER_ADDRESS", ":9090")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", c.Database.Host)
	assert.Equal(t, ":9090", c.Server.Address)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "secret", Name: "student_management", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=student_management sslmode=disable",
		d.DSN())
}
