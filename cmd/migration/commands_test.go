package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvBool(t *testing.T) {
	t.Setenv("DB_DISABLE_PREPARED_BINARY", "")
	v, err := envBool("DB_DISABLE_PREPARED_BINARY", true)
	require.NoError(t, err)
	assert.True(t, v)

	t.Setenv("DB_DISABLE_PREPARED_BINARY", "false")
	v, err = envBool("DB_DISABLE_PREPARED_BINARY", true)
	require.NoError(t, err)
	assert.False(t, v)

	t.Setenv("DB_DISABLE_PREPARED_BINARY", "sometimes")
	_, err = envBool("DB_DISABLE_PREPARED_BINARY", true)
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	assert.NoError(t, report(nil, "migrations applied"))
	assert.NoError(t, report(migrate.ErrNoChange, "migrations applied"))

	boom := errors.New("boom")
	assert.ErrorIs(t, report(boom, "migrations applied"), boom)
}

func TestCommands_RequireDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")
	rootCmd.SetArgs([]string{"up"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_URL is required")
}

func TestDownCmd_RejectsExtraArgs(t *testing.T) {
	assert.Error(t, downCmd.Args(downCmd, []string{"1", "2"}))
	assert.NoError(t, downCmd.Args(downCmd, []string{"2"}))
}
