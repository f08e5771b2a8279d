package github

import (
	"fmt"
	"strings"
)

// ConfigError reports that sync was attempted without the settings it needs.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "sync is not configured: " + e.Reason
}

// EnvironmentError reports that the app is not hosted where a sync target
// can be derived from.
type EnvironmentError struct {
	Location string
}

func (e *EnvironmentError) Error() string {
	if strings.TrimSpace(e.Location) == "" {
		return "no pages location configured; cannot derive sync target"
	}
	return fmt.Sprintf("%s is not a GitHub Pages location; cannot derive sync target", e.Location)
}

// RemoteError is a rejected or failed call to the contents API.
type RemoteError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	if e.Err != nil {
		return "GitHub API error: " + e.Err.Error()
	}
	return fmt.Sprintf("GitHub API error: %d", e.StatusCode)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
