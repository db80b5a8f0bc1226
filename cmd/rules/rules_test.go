package rules_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/expense-report/cmd/root"
	"fjacquet/expense-report/cmd/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	root.Init()
	root.Cmd.AddCommand(rules.Cmd)
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetErr(&out)
	root.Cmd.SetArgs(args)
	t.Cleanup(func() { root.Cmd.SetArgs(nil) })
	err := root.Cmd.Execute()
	return out.String(), err
}

func TestRulesInitAndList(t *testing.T) {
	dir := t.TempDir()
	rulesFile := filepath.Join(dir, "rules", "categories.yaml")
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("classification:\n  backend: keyword\n  rules_file: "+rulesFile+"\nsource:\n  type: memory\n"), 0600))
	t.Setenv("GEMINI_API_KEY", "")

	out, err := execute(t, "rules", "init", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+rulesFile)
	assert.FileExists(t, rulesFile)

	_, err = execute(t, "rules", "init", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err = execute(t, "rules", "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "EATING_OUT: restaurant, coffee")
	assert.Contains(t, out, "ENTERTAINMENT: cinema")
}
