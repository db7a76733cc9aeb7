// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves API credentials from the environment or
// from a directory of plain-text files. Each file in the directory
// represents one secret: the filename is the key name and the file
// contents (trimmed) are the value.
//
// Supported key files: google-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvAPIKey is the environment variable checked first for the Gemini
// API key.
const EnvAPIKey = "GOOGLE_API_KEY"

// apiKeyFile is the secrets-directory fallback for the Gemini API key.
const apiKeyFile = "google-api-key"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory or missing files are not errors; Load
// returns an empty map. Unreadable files produce a warning on stderr
// but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// APIKey resolves the Gemini API key: the GOOGLE_API_KEY environment
// variable when set, otherwise the google-api-key file under dir.
// Absence of both is a hard failure; no pipeline starts without a
// credential.
func APIKey(dir string) (string, error) {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key, nil
	}

	loaded, err := Load(dir)
	if err != nil {
		return "", err
	}
	if key, ok := loaded[apiKeyFile]; ok {
		return key, nil
	}

	return "", fmt.Errorf("%s is not set and no %s secret found in %s", EnvAPIKey, apiKeyFile, dir)
}
