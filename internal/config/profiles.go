package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoConfig = errors.New("no config selected")

// DefaultLabel is the profile created by `komikd config init`; it cannot be removed.
const DefaultLabel = "Default"

// Store keeps labelled profiles as <Root>/configs/<label>.yaml and names the
// active one in <Root>/current_config.
type Store struct {
	Root string
}

// DefaultStore is rooted at %APPDATA%/komikd, $XDG_CONFIG_HOME/komikd or
// ~/.config/komikd, in that order.
func DefaultStore() *Store {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return &Store{Root: filepath.Join(appdata, "komikd")}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return &Store{Root: filepath.Join(xdg, "komikd")}
	}

	home, _ := os.UserHomeDir()
	return &Store{Root: filepath.Join(home, ".config", "komikd")}
}

func (s *Store) Dir() string {
	return filepath.Join(s.Root, "configs")
}

func (s *Store) Path(label string) string {
	return filepath.Join(s.Dir(), label+".yaml")
}

func (s *Store) activeFile() string {
	return filepath.Join(s.Root, "current_config")
}

func checkLabel(label string) error {
	switch {
	case strings.TrimSpace(label) == "":
		return errors.New("label cannot be empty")
	case strings.ContainsAny(label, `/\`), label == ".", label == "..":
		return fmt.Errorf("label %q must not contain path separators", label)
	}

	return nil
}

func (s *Store) exists(label string) bool {
	_, err := os.Stat(s.Path(label))
	return err == nil
}

// Active returns the label of the active profile, or ErrNoConfig.
func (s *Store) Active() (string, error) {
	b, err := os.ReadFile(s.activeFile())
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	label := strings.TrimSpace(string(b))
	if label == "" {
		return "", ErrNoConfig
	}

	return label, nil
}

func (s *Store) ActivePath() (string, error) {
	label, err := s.Active()
	if err != nil {
		return "", err
	}

	return s.Path(label), nil
}

// Lookup returns the file of an existing profile.
func (s *Store) Lookup(label string) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}
	if !s.exists(label) {
		return "", fmt.Errorf("config %q does not exist", label)
	}

	return s.Path(label), nil
}

func (s *Store) Load(label string) (*Config, error) {
	path, err := s.Lookup(label)
	if err != nil {
		return nil, err
	}

	return loadYAML(path)
}

// Profile summarises one stored config for listings.
type Profile struct {
	Label    string
	Path     string
	Active   bool
	Source   string
	Timezone string
	Err      error // set when the file does not parse
}

func (s *Store) List() ([]Profile, error) {
	entries, err := os.ReadDir(s.Dir())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	active, _ := s.Active()

	var out []Profile
	for _, e := range entries {
		label, ok := strings.CutSuffix(e.Name(), ".yaml")
		if e.IsDir() || !ok {
			continue
		}

		p := Profile{Label: label, Path: s.Path(label), Active: label == active}
		if cfg, err := loadYAML(p.Path); err != nil {
			p.Err = err
		} else {
			normalizeDefaults(cfg)
			p.Source, p.Timezone = cfg.Source, cfg.Timezone
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

// Create writes cfg as a new profile and fails if the label is taken.
func (s *Store) Create(label string, cfg *Config) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}
	if s.exists(label) {
		return "", fmt.Errorf("config %q already exists", label)
	}

	return s.Path(label), s.Save(label, cfg)
}

// Save overwrites the profile file.
func (s *Store) Save(label string, cfg *Config) error {
	if err := os.MkdirAll(s.Dir(), 0755); err != nil {
		return err
	}

	return SaveYAML(cfg, s.Path(label))
}

// Import copies a YAML file in as a new profile after checking it parses.
func (s *Store) Import(label, src string) error {
	if _, err := loadYAML(src); err != nil {
		return fmt.Errorf("%s is not a komikd config: %w", src, err)
	}

	raw, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	if err := checkLabel(label); err != nil {
		return err
	}
	if s.exists(label) {
		return fmt.Errorf("config %q already exists", label)
	}
	if err := os.MkdirAll(s.Dir(), 0755); err != nil {
		return err
	}

	return os.WriteFile(s.Path(label), raw, 0644)
}

func (s *Store) Switch(label string) error {
	if _, err := s.Lookup(label); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Root, 0755); err != nil {
		return err
	}

	return os.WriteFile(s.activeFile(), []byte(label), 0644)
}

// Rename moves a profile and keeps it active if it was.
func (s *Store) Rename(from, to string) error {
	if _, err := s.Lookup(from); err != nil {
		return err
	}
	if err := checkLabel(to); err != nil {
		return err
	}
	if s.exists(to) {
		return fmt.Errorf("config %q already exists", to)
	}

	if err := os.Rename(s.Path(from), s.Path(to)); err != nil {
		return err
	}

	if active, _ := s.Active(); active == from {
		return s.Switch(to)
	}

	return nil
}

// Remove deletes a profile. Removing the active one makes Default active
// again; the returned bool reports that switch.
func (s *Store) Remove(label string) (bool, error) {
	if label == DefaultLabel {
		return false, errors.New("cannot remove the Default config")
	}
	if _, err := s.Lookup(label); err != nil {
		return false, err
	}

	switched := false
	if active, _ := s.Active(); active == label {
		if err := s.Switch(DefaultLabel); err != nil {
			return false, fmt.Errorf("failed switching to Default: %w", err)
		}
		switched = true
	}

	return switched, os.Remove(s.Path(label))
}

// InitDefault writes cfg as the Default profile and activates it. An
// existing Default file is kept and os.ErrExist returned.
func (s *Store) InitDefault(cfg *Config) (string, error) {
	path, err := s.Create(DefaultLabel, cfg)
	if err != nil {
		if !s.exists(DefaultLabel) {
			return "", err
		}
		path, err = s.Path(DefaultLabel), os.ErrExist
	}

	if serr := s.Switch(DefaultLabel); serr != nil {
		return "", serr
	}

	return path, err
}
