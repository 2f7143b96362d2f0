package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/zalando/go-keyring"
)

// Storage is a minimal key-value contract for persisting the credential
// and the cached user info. Get returns "" for a missing key.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// ConfigDir returns the config directory (~/.config/clubctl/ or platform
// equivalent).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Preferences", "clubctl"), nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "clubctl"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "clubctl"), nil
	default:
		return filepath.Join(home, ".config", "clubctl"), nil
	}
}

// FileStorage persists values as a JSON object in a 0600 file.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage at the given path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultFileStorage stores credentials under the config directory.
func DefaultFileStorage() (*FileStorage, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return NewFileStorage(filepath.Join(dir, "credentials.json")), nil
}

func (f *FileStorage) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	return values, nil
}

func (f *FileStorage) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

func (f *FileStorage) Get(key string) (string, error) {
	values, err := f.load()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

func (f *FileStorage) Set(key, value string) error {
	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *FileStorage) Delete(key string) error {
	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}

// KeyringStorage persists values in the OS keyring.
type KeyringStorage struct {
	service string
}

// NewKeyringStorage creates keyring-backed storage under a service name.
func NewKeyringStorage(service string) *KeyringStorage {
	return &KeyringStorage{service: service}
}

func (k *KeyringStorage) Get(key string) (string, error) {
	value, err := keyring.Get(k.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading from keyring: %w", err)
	}
	return value, nil
}

func (k *KeyringStorage) Set(key, value string) error {
	if err := keyring.Set(k.service, key, value); err != nil {
		return fmt.Errorf("writing to keyring: %w", err)
	}
	return nil
}

func (k *KeyringStorage) Delete(key string) error {
	if err := keyring.Delete(k.service, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("deleting from keyring: %w", err)
	}
	return nil
}
