package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewServiceAtPath(filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	svc := NewServiceAtPath(filepath.Join(t.TempDir(), "nested", "config.toml"))

	cfg := Default()
	cfg.RecentFiles = []string{"/tmp/a.srt", "/tmp/b.srt"}
	cfg.UISettings.ShowLineNumbers = false
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := NewServiceAtPath(path)

	require.NoError(t, os.WriteFile(path, []byte("version = [broken"), 0644))
	_, err := svc.Load()
	require.Error(t, err)
}

func TestAddRecentFile(t *testing.T) {
	cfg := Default()

	cfg.AddRecentFile("/a.srt")
	cfg.AddRecentFile("/b.srt")
	cfg.AddRecentFile("/a.srt")
	require.Equal(t, []string{"/a.srt", "/b.srt"}, cfg.RecentFiles, "re-adding moves to front without duplicating")

	for i := 0; i < 20; i++ {
		cfg.AddRecentFile(filepath.Join("/many", string(rune('a'+i))))
	}
	require.Len(t, cfg.RecentFiles, maxRecentFiles)
}
