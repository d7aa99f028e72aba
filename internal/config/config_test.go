package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"halil/internal/date"
	"halil/internal/todo"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.toml")

	cfg, err := LoadOrCreate(path)
	is.NoErr(err)
	_, err = os.Stat(path)
	is.NoErr(err) // file was created
	is.Equal(cfg.Backend, "sqlite")
	is.Equal(cfg.DBPath, filepath.Join(dir, "sub", DefaultDBName))
	is.Equal(cfg.Keys.Quit, "q")
	is.Equal(cfg.Category(), date.Today)

	again, err := LoadOrCreate(path)
	is.NoErr(err)
	is.Equal(again, cfg)
}

func TestLoadOrCreate_ReadsFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
backend = "json"
data_dir = "/tmp/halil-data"
default_category = "week"

[keys]
quit = "Q"
`
	is.NoErr(os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadOrCreate(path)
	is.NoErr(err)
	is.Equal(cfg.Backend, "json")
	is.Equal(cfg.DataDir, "/tmp/halil-data")
	is.Equal(cfg.DBPath, filepath.Join(dir, DefaultDBName))
	is.Equal(cfg.Category(), date.ThisWeek)
	is.Equal(cfg.Keys.Quit, "Q")
	is.Equal(cfg.Keys.Add, "a") // unspecified keys keep their defaults
	is.Equal(len(cfg.Palette), 8)
}

func TestLoadOrCreate_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad toml":     `backend = `,
		"bad backend":  `backend = "postgres"`,
		"bad category": `default_category = "someday"`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			path := filepath.Join(t.TempDir(), "config.toml")
			is.NoErr(os.WriteFile(path, []byte(content), 0o644))
			_, err := LoadOrCreate(path)
			is.True(err != nil)
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	is := is.New(t)
	t.Setenv(EnvConfig, "/etc/halil.toml")
	is.Equal(ResolveConfigPath(), "/etc/halil.toml")
}

func TestDefault_Palette(t *testing.T) {
	is := is.New(t)
	cfg := Default()
	is.Equal(cfg.Palette, todo.Palette)
	cfg.Palette[0] = "#000000"
	is.True(todo.Palette[0] != "#000000") // a copy, not the shared slice
}
