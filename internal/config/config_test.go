package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return &Store{Root: filepath.Join(t.TempDir(), "komikd")}
}

func TestDefaultStoreFollowsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "komikd"), DefaultStore().Root)
}

func TestLoadMergedWithoutConfig(t *testing.T) {
	cfg, used, err := LoadMerged(Options{Store: tempStore(t), Output: "out", Source: "gudangkomik-legacy"})
	require.NoError(t, err)
	assert.Contains(t, used, "default config in memory")
	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, "gudangkomik-legacy", cfg.Source)
	assert.Equal(t, "Asia/Jakarta", cfg.Timezone)
	assert.Equal(t, 5, cfg.ImageWorkers)
	assert.True(t, cfg.Cloudflare)
}

func TestProfiles(t *testing.T) {
	s := tempStore(t)

	path, err := s.InitDefault(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Root, "configs", "Default.yaml"), path)

	_, err = s.InitDefault(DefaultConfig())
	assert.ErrorIs(t, err, os.ErrExist)

	label, err := s.Active()
	require.NoError(t, err)
	assert.Equal(t, DefaultLabel, label)

	legacy := DefaultConfig()
	legacy.Source = "gudangkomik-legacy"
	legacy.Timezone = "UTC"
	legacy.ChapterWorkers = 4
	p, err := s.Create("legacy", legacy)
	require.NoError(t, err)

	_, err = s.Create("legacy", legacy)
	assert.Error(t, err)

	require.NoError(t, s.Switch("legacy"))
	loaded, used, err := LoadMerged(Options{Store: s})
	require.NoError(t, err)
	assert.Equal(t, p, used)
	assert.Equal(t, "gudangkomik-legacy", loaded.Source)
	assert.Equal(t, 4, loaded.ChapterWorkers)

	require.NoError(t, s.Rename("legacy", "old-site"))
	label, _ = s.Active()
	assert.Equal(t, "old-site", label)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, DefaultLabel, list[0].Label)
	assert.Equal(t, "gudangkomik", list[0].Source)
	assert.Equal(t, "gudangkomik-legacy", list[1].Source)
	assert.Equal(t, "UTC", list[1].Timezone)
	assert.True(t, list[1].Active)

	switched, err := s.Remove("old-site")
	require.NoError(t, err)
	assert.True(t, switched)
	label, _ = s.Active()
	assert.Equal(t, DefaultLabel, label)

	_, err = s.Remove(DefaultLabel)
	assert.Error(t, err)
	assert.Error(t, s.Switch("missing"))
}

func TestImportAndLabels(t *testing.T) {
	s := tempStore(t)

	src := filepath.Join(t.TempDir(), "mirror.yaml")
	require.NoError(t, os.WriteFile(src, []byte("source: gudangkomik\nbase_url: https://mirror.example\n"), 0644))

	require.NoError(t, s.Import("mirror", src))
	assert.Error(t, s.Import("mirror", src))

	cfg, err := s.Load("mirror")
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example", cfg.BaseURL)

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("source: [\n"), 0644))
	assert.Error(t, s.Import("broken", broken))

	for _, bad := range []string{"", " ", "../escape", `a\b`, ".."} {
		_, err := s.Create(bad, DefaultConfig())
		assert.Error(t, err, bad)
	}
}

func TestListReportsBrokenProfiles(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0755))
	require.NoError(t, os.WriteFile(s.Path("bad"), []byte("output: [\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), nil, 0644))

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Error(t, list[0].Err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KOMIKD_OUTPUT", "/tmp/komik")
	t.Setenv("KOMIKD_IMAGE_WORKERS", "9")
	t.Setenv("KOMIKD_CLOUDFLARE", "false")
	t.Setenv("KOMIKD_RATE_LIMIT", "0.5")

	cfg, _, err := LoadMerged(Options{Store: tempStore(t)})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/komik", cfg.Output)
	assert.Equal(t, 9, cfg.ImageWorkers)
	assert.False(t, cfg.Cloudflare)
	assert.Equal(t, 0.5, cfg.RateLimit)

	// flags win over the environment
	cfg, _, err = LoadMerged(Options{Store: tempStore(t), Output: "flag"})
	require.NoError(t, err)
	assert.Equal(t, "flag", cfg.Output)
}

func TestEnvAppliesWithIgnoredConfig(t *testing.T) {
	s := tempStore(t)
	profile := DefaultConfig()
	profile.Output = "from-profile"
	_, err := s.InitDefault(profile)
	require.NoError(t, err)

	t.Setenv("KOMIKD_TIMEZONE", "UTC")

	cfg, used, err := LoadMerged(Options{Store: s, IgnoreConfig: true})
	require.NoError(t, err)
	assert.Equal(t, "(ignored config)", used)
	assert.Equal(t, ".", cfg.Output)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestCloudflareFlag(t *testing.T) {
	off, on := false, true

	cfg, _, err := LoadMerged(Options{Store: tempStore(t), Cloudflare: &off})
	require.NoError(t, err)
	assert.False(t, cfg.Cloudflare)

	t.Setenv("KOMIKD_CLOUDFLARE", "false")

	cfg, _, err = LoadMerged(Options{Store: tempStore(t)})
	require.NoError(t, err)
	assert.False(t, cfg.Cloudflare)

	cfg, _, err = LoadMerged(Options{Store: tempStore(t), Cloudflare: &on})
	require.NoError(t, err)
	assert.True(t, cfg.Cloudflare)
}

func TestLoadBrokenYAML(t *testing.T) {
	s := tempStore(t)
	_, err := s.InitDefault(DefaultConfig())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(s.Path(DefaultLabel), []byte("output: [\n"), 0644))
	_, _, err = LoadMerged(Options{Store: s})
	assert.Error(t, err)
}
