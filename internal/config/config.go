package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	toml "github.com/pelletier/go-toml/v2"

	"halil/internal/date"
	"halil/internal/storage"
	"halil/internal/todo"
)

const (
	AppName               = "halil"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "halil.db"
	DefaultLogName        = "halil.log"
	DefaultDataDirName    = "data"

	// EnvConfig overrides the config file location.
	EnvConfig = "HALIL_CONFIG"
)

type Keymap struct {
	Quit         string `toml:"quit"`
	Add          string `toml:"add"`
	Up           string `toml:"up"`
	Down         string `toml:"down"`
	Toggle       string `toml:"toggle"`
	Delete       string `toml:"delete"`
	Edit         string `toml:"edit"`
	Confirm      string `toml:"confirm"`
	Cancel       string `toml:"cancel"`
	Today        string `toml:"today"`
	Week         string `toml:"week"`
	Later        string `toml:"later"`
	NextFolder   string `toml:"next_folder"`
	PrevFolder   string `toml:"prev_folder"`
	AddFolder    string `toml:"add_folder"`
	RenameFolder string `toml:"rename_folder"`
	DeleteFolder string `toml:"delete_folder"`
	PrevMonth    string `toml:"prev_month"`
	NextMonth    string `toml:"next_month"`
	ThisMonth    string `toml:"this_month"`
}

type Config struct {
	Backend         string   `toml:"backend"`
	DBPath          string   `toml:"db_path"`
	DataDir         string   `toml:"data_dir"`
	LogPath         string   `toml:"log_path"`
	LogLevel        string   `toml:"log_level"`
	DefaultCategory string   `toml:"default_category"`
	Palette         []string `toml:"palette"`
	Keys            Keymap   `toml:"keys"`
}

// ResolveConfigPath returns $HALIL_CONFIG or the per-user config file.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first
// if the file does not exist. Relative data paths resolve against the
// config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDirName
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = Default().Palette
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case "", storage.KindSQLite, storage.KindJSON, storage.KindMemory:
	default:
		return fmt.Errorf("backend %q: want sqlite, json or memory", c.Backend)
	}
	if c.DefaultCategory != "" {
		if _, err := date.ParseCategory(c.DefaultCategory); err != nil {
			return fmt.Errorf("default_category: %w", err)
		}
	}
	return nil
}

// Category is the parsed default_category, today when unset.
func (c Config) Category() date.Category {
	cat, err := date.ParseCategory(c.DefaultCategory)
	if err != nil {
		return date.Today
	}
	return cat
}

func (c Config) resolve(base string) Config {
	abs := func(p string) string {
		if p == "" || p == "-" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.DBPath = abs(c.DBPath)
	c.DataDir = abs(c.DataDir)
	c.LogPath = abs(c.LogPath)
	return c
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default is the configuration written on first run.
func Default() Config {
	return Config{
		Backend:         storage.KindSQLite,
		DBPath:          DefaultDBName,
		DataDir:         DefaultDataDirName,
		LogPath:         DefaultLogName,
		LogLevel:        "info",
		DefaultCategory: string(date.Today),
		Palette:         slices.Clone(todo.Palette),
		Keys: Keymap{
			Quit:         "q",
			Add:          "a",
			Up:           "k",
			Down:         "j",
			Toggle:       " ",
			Delete:       "d",
			Edit:         "e",
			Confirm:      "enter",
			Cancel:       "esc",
			Today:        "1",
			Week:         "2",
			Later:        "3",
			NextFolder:   "]",
			PrevFolder:   "[",
			AddFolder:    "F",
			RenameFolder: "R",
			DeleteFolder: "X",
			PrevMonth:    "h",
			NextMonth:    "l",
			ThisMonth:    "t",
		},
	}
}
