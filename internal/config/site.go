// ABOUTME: Site configuration: roster, PIN, task catalogs, contacts, and storage location
// ABOUTME: Loads TOML over built-in defaults and finds the nearest .notemma file
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/notemma/notemma/internal/session"
	"github.com/notemma/notemma/internal/worklog"
)

// SiteFile is the per-directory configuration file name.
const SiteFile = ".notemma"

// Contact is a support number shown to engineers.
type Contact struct {
	Name   string `toml:"name" json:"name" yaml:"name"`
	Number string `toml:"number" json:"number" yaml:"number"`
}

// Tasks holds the two job catalogs.
type Tasks struct {
	PPM      []string `toml:"ppm"`
	Reactive []string `toml:"reactive"`
}

// ShiftLog controls the optional daily log files written after each entry.
type ShiftLog struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
	Format  string `toml:"format"`
}

// Backup configures the Charm KV mirror.
type Backup struct {
	CharmHost string `toml:"charm_host"`
	AutoSync  bool   `toml:"auto_sync"`
}

// Config is the site configuration.
type Config struct {
	DBPath      string    `toml:"db_path"`
	PIN         string    `toml:"pin"`
	Placeholder string    `toml:"placeholder"`
	Engineers   []string  `toml:"engineers"`
	Tasks       Tasks     `toml:"tasks"`
	Contacts    []Contact `toml:"contacts"`
	ShiftLog    ShiftLog  `toml:"shift_log"`
	Backup      Backup    `toml:"backup"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// Default returns the built-in site configuration.
func Default() *Config {
	return &Config{
		DBPath:      DefaultDBPath(),
		PIN:         "1234",
		Placeholder: session.DefaultPlaceholder,
		Engineers:   []string{"Smiler", "Twig", "Gaz", "2 Hotty", "Iron Man", "Long hair", "Jackie Boy", "KP AP"},
		Tasks: Tasks{
			PPM:      []string{"DRUPS testing", "Flushing", "Fire Door Inspection", "Sprinkler testing"},
			Reactive: []string{"Change light fitting", "Change lock", "Change flush plate"},
		},
		Contacts: []Contact{
			{Name: "Helpdesk", Number: "0123 456 789"},
			{Name: "TOMS", Number: "0987 654 321"},
			{Name: "Emergency", Number: "Extension 999"},
		},
		ShiftLog: ShiftLog{Dir: "logs", Format: "markdown"},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path loads the defaults alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg.Path = path

		// Relative locations are taken from the config file's directory.
		base := filepath.Dir(path)
		if cfg.DBPath != "" && !filepath.IsAbs(cfg.DBPath) {
			cfg.DBPath = filepath.Join(base, cfg.DBPath)
		}
		if cfg.ShiftLog.Dir != "" && !filepath.IsAbs(cfg.ShiftLog.Dir) {
			cfg.ShiftLog.Dir = filepath.Join(base, cfg.ShiftLog.Dir)
		}
	}

	if v := os.Getenv("NOTEMMA_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("NOTEMMA_PIN"); v != "" {
		cfg.PIN = v
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the roster and catalogs are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.PIN == "" {
		errs = append(errs, errors.New("pin must not be empty"))
	}
	if len(c.Engineers) == 0 {
		errs = append(errs, errors.New("engineers must list at least one name"))
	}
	if slices.Contains(c.Engineers, c.Placeholder) {
		errs = append(errs, fmt.Errorf("engineers must not include the placeholder %q", c.Placeholder))
	}
	if len(c.Tasks.PPM) == 0 || len(c.Tasks.Reactive) == 0 {
		errs = append(errs, errors.New("tasks.ppm and tasks.reactive must both be non-empty"))
	}
	for _, task := range c.Tasks.PPM {
		if slices.Contains(c.Tasks.Reactive, task) {
			errs = append(errs, fmt.Errorf("task %q is in both catalogs", task))
		}
	}
	switch c.ShiftLog.Format {
	case "", "markdown", "json":
	default:
		errs = append(errs, fmt.Errorf("shift_log.format %q is not markdown or json", c.ShiftLog.Format))
	}
	return errors.Join(errs...)
}

// Roster returns the sign-in roster.
func (c *Config) Roster() session.Roster {
	return session.Roster{
		Engineers:   c.Engineers,
		Placeholder: c.Placeholder,
		PIN:         c.PIN,
	}
}

// Catalog returns the job catalogs.
func (c *Config) Catalog() worklog.Catalog {
	return worklog.Catalog{PPM: c.Tasks.PPM, Reactive: c.Tasks.Reactive}
}

// FindSiteFile walks up from dir looking for a .notemma file.
// Returns empty string if not found
func FindSiteFile(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	current := absDir
	for {
		candidate := filepath.Join(current, SiteFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(current)

		// Stop at filesystem root or home directory
		if parent == current || current == homeDir {
			return "", nil
		}

		current = parent
	}
}

// Resolve picks the config file to load: an explicit path, then
// NOTEMMA_CONFIG, then the nearest .notemma above cwd, then the user config
// file if it exists. Returns "" when only defaults apply.
func Resolve(explicit, cwd string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv("NOTEMMA_CONFIG"); env != "" {
		return env, nil
	}

	site, err := FindSiteFile(cwd)
	if err != nil {
		return "", err
	}
	if site != "" {
		return site, nil
	}

	user := DefaultConfigPath()
	if _, err := os.Stat(user); err == nil {
		return user, nil
	}
	return "", nil
}
