package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# bot credentials\nMC_TEST_TOKEN=\"abc123\"\n\nMC_TEST_KEEP=fromfile\nnot a pair\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("MC_TEST_TOKEN", "")
	t.Setenv("MC_TEST_KEEP", "fromenv")

	loadDotEnv(path)

	assert.Equal(t, "abc123", os.Getenv("MC_TEST_TOKEN"))
	assert.Equal(t, "fromenv", os.Getenv("MC_TEST_KEEP"))
}

func TestLoadDotEnv_Missing(t *testing.T) {
	loadDotEnv(filepath.Join(t.TempDir(), "nope.env"))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { layoutInitForce = false })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLayoutInitAndCheck(t *testing.T) {
	for _, name := range []string{"layout.yaml", "layout.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			out, err := execute(t, "layout", "init", path)
			require.NoError(t, err)
			assert.Contains(t, out, "Wrote default layout")

			_, err = execute(t, "layout", "init", path)
			assert.ErrorContains(t, err, "already exists")

			_, err = execute(t, "layout", "init", "--force", path)
			require.NoError(t, err)

			out, err = execute(t, "layout", "check", path)
			require.NoError(t, err)
			assert.Contains(t, out, "valid")
			assert.Contains(t, out, "491275273598402561")
		})
	}
}

func TestLayoutCheck_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("guild_id: \"1\"\n"), 0644))

	_, err := execute(t, "layout", "check", path)

	assert.ErrorContains(t, err, "memberships")
}
