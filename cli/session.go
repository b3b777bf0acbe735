package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"otconsole/client"
)

type savedSession struct {
	Server  string          `json:"server"`
	Session *client.Session `json:"session"`
}

var errNotLoggedIn = errors.New("not logged in, run: otctl login")

// sessionPath returns ~/.otctl/session.json, or OTCTL_HOME/session.json when
// OTCTL_HOME is set.
func sessionPath() (string, error) {
	if dir := os.Getenv("OTCTL_HOME"); dir != "" {
		return filepath.Join(dir, "session.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".otctl", "session.json"), nil
}

func loadSession() (*savedSession, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errNotLoggedIn
	}
	if err != nil {
		return nil, err
	}
	var s savedSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", path, err)
	}
	if s.Session == nil || s.Session.Token == "" {
		return nil, errNotLoggedIn
	}
	return &s, nil
}

func saveSession(s *savedSession) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func removeSession() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolveServer picks the --server flag, then the saved server, then the default.
func resolveServer(saved *savedSession) string {
	if serverURL != "" {
		return serverURL
	}
	if saved != nil && saved.Server != "" {
		return saved.Server
	}
	return defaultServer
}

// connect returns a client and the saved session for commands that need one.
func connect() (*client.Client, *client.Session, error) {
	saved, err := loadSession()
	if err != nil {
		return nil, nil, err
	}
	return client.New(resolveServer(saved), nil), saved.Session, nil
}
