package appinfo

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setConfigHome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("config dir override relies on XDG_CONFIG_HOME")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestNewDefaults(t *testing.T) {
	home := setConfigHome(t)
	wd, err := os.Getwd()
	require.NoError(t, err)

	info, err := New()
	require.NoError(t, err)

	assert.Equal(t, DefaultName, info.Name)
	assert.Equal(t, DefaultCompany, info.Company)
	assert.Equal(t, DefaultCopyright, info.Copyright)
	assert.Equal(t, DefaultPluginExtension, info.PluginExtension)
	assert.Equal(t, wd, info.ApplicationFolder)
	assert.Equal(t, filepath.Join(home, DefaultCompany, DefaultName), info.SettingsFolder)
	assert.Equal(t, info.SettingsFolder, info.DataFolder)
	assert.NotEqual(t, uuid.Nil, info.InstanceID)
	assert.False(t, info.Pocket())
}

func TestNewWithOptions(t *testing.T) {
	home := setConfigHome(t)

	args := []string{"prog", "--flag"}
	info, err := New(
		WithArguments(args),
		WithName("Editor"),
		WithCompany("Acme"),
		WithVersion(Version{Major: 1, Minor: 2}),
		WithCopyright("(c) Acme"),
		WithApplicationFolder("/opt/editor"),
		WithPluginExtension(".so"),
	)
	require.NoError(t, err)

	args[1] = "changed"
	assert.Equal(t, []string{"prog", "--flag"}, info.Arguments)
	assert.Equal(t, "Editor", info.Name)
	assert.Equal(t, "1.2.0.0", info.Version.String())
	assert.Equal(t, "/opt/editor", info.ApplicationFolder)
	assert.Equal(t, filepath.Join(home, "Acme", "Editor"), info.SettingsFolder)
	assert.Equal(t, filepath.Join("plugins", "spell.so"), info.PluginPath("plugins", "spell"))
}

func TestEmptyOptionsKeepDefaults(t *testing.T) {
	setConfigHome(t)
	info, err := New(WithName(""), WithCompany(""), WithCopyright(""), WithPluginExtension(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultName, info.Name)
	assert.Equal(t, DefaultCompany, info.Company)
	assert.Equal(t, DefaultCopyright, info.Copyright)
	assert.Equal(t, DefaultPluginExtension, info.PluginExtension)
}

func TestExplicitFolders(t *testing.T) {
	info, err := New(
		WithApplicationFolder("/app"),
		WithSettingsFolder("/settings"),
		WithDataFolder("/data"),
	)
	require.NoError(t, err)
	assert.Equal(t, "/settings", info.SettingsFolder)
	assert.Equal(t, "/data", info.DataFolder)
}

func TestPocketMode(t *testing.T) {
	for _, arg := range []string{"-pocket", "/pocket", "-POCKET", "/Pocket"} {
		t.Run(arg, func(t *testing.T) {
			info, err := New(
				WithArguments([]string{"prog", arg}),
				WithApplicationFolder("/portable"),
				WithSettingsFolder("/ignored"),
			)
			require.NoError(t, err)
			assert.True(t, info.Pocket())
			assert.Equal(t, "/portable", info.SettingsFolder)
			assert.Equal(t, "/portable", info.DataFolder)
		})
	}

	info, err := New(WithArguments([]string{"--pocket"}), WithSettingsFolder("/s"))
	require.NoError(t, err)
	assert.False(t, info.Pocket())
	assert.Equal(t, "/s", info.SettingsFolder)
}

func TestWithPocket(t *testing.T) {
	info, err := New(
		WithPocket(true),
		WithApplicationFolder("/portable"),
		WithSettingsFolder("/ignored"),
	)
	require.NoError(t, err)
	assert.True(t, info.Pocket())
	assert.Equal(t, "/portable", info.SettingsFolder)

	info, err = New(
		WithArguments([]string{"prog", "-pocket"}),
		WithPocket(false),
		WithApplicationFolder("/portable"),
	)
	require.NoError(t, err)
	assert.True(t, info.Pocket(), "a false flag must not cancel the argument")
}

func TestInstanceIDsDiffer(t *testing.T) {
	a, err := New(WithSettingsFolder("/s"))
	require.NoError(t, err)
	b, err := New(WithSettingsFolder("/s"))
	require.NoError(t, err)
	assert.NotEqual(t, a.InstanceID, b.InstanceID)
}
