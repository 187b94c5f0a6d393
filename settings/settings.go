package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"gopkg.in/ini.v1"
)

// DefaultFile is the settings file name used when none is configured
const DefaultFile = "conf.ini"

// General is the section holding controller-wide settings
const General = "General"

const (
	KeyCurrentEffect = "current_effect"
	KeyBrightness    = "brightness"
)

// Source is the keyed section/key-value view effects persist into.
type Source interface {
	Value(section, key string) (string, bool)
	SetValue(section, key, value string)
}

// Store is an INI backed Source. Reads are best-effort; Save merges the keys
// written through SetValue into whatever is on disk at save time.
type Store struct {
	mu    sync.Mutex
	path  string
	file  *ini.File
	dirty map[[2]string]string
}

// Load opens the settings file at path. A missing file yields an empty store.
// A file that cannot be parsed also yields an empty store, along with the
// parse error so the caller can report it.
func Load(path string) (*Store, error) {
	s := &Store{
		path:  path,
		file:  ini.Empty(),
		dirty: make(map[[2]string]string),
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return s, fmt.Errorf("settings %s: %w", path, err)
	}
	s.file = f
	return s, nil
}

// NewMemory returns a store that never touches disk until Save is called
// with a path set.
func NewMemory() *Store {
	return &Store{file: ini.Empty(), dirty: make(map[[2]string]string)}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Value(section, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, err := s.file.GetSection(section)
	if err != nil || !sec.HasKey(key) {
		return "", false
	}
	return sec.Key(key).String(), true
}

func (s *Store) SetValue(section, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.file.Section(section).Key(key).SetValue(value)
	s.dirty[[2]string{section, key}] = value
}

// Save writes the store back to its file, keeping sections and keys that
// other writers added since Load.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return nil
	}

	base, err := ini.LooseLoad(s.path)
	if err != nil {
		// unreadable file on disk: overwrite it with what we have
		base = s.file
	}
	for k, v := range s.dirty {
		base.Section(k[0]).Key(k[1]).SetValue(v)
	}

	if err := base.SaveTo(s.path); err != nil {
		return fmt.Errorf("settings %s: %w", s.path, err)
	}
	s.file = base
	return nil
}
