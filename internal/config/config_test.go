package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("EXPENSE_TEST_FROM_ENV", "")
	require.NoError(t, os.Unsetenv("EXPENSE_TEST_FROM_ENV"))
	t.Setenv("EXPENSE_TEST_PRESET", "kept")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("EXPENSE_TEST_FROM_ENV=loaded\nEXPENSE_TEST_PRESET=overridden\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("EXPENSE_TEST_FROM_ENV") })

	used := loadEnvFile(logrus.New(), filepath.Join(dir, "missing.env"), envFile)
	assert.Equal(t, envFile, used)
	assert.Equal(t, "loaded", os.Getenv("EXPENSE_TEST_FROM_ENV"))
	assert.Equal(t, "kept", os.Getenv("EXPENSE_TEST_PRESET"))
}

func TestLoadEnvFile_NoneFound(t *testing.T) {
	used := loadEnvFile(nil, filepath.Join(t.TempDir(), ".env"))
	assert.Equal(t, "", used)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("EXPENSE_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("EXPENSE_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("EXPENSE_TEST_DOES_NOT_EXIST", "fallback"))
}
