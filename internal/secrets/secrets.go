// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials for fetching pages behind a login from a
// directory of plain-text files. Each file is one secret: the filename is the
// key and the trimmed file contents are the value.
//
// Recognised keys: http-cookie, http-authorization. Other files are loaded
// but not sent.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/getids/internal/logger"
)

// DefaultDir is where secrets are read from when no directory is configured.
const DefaultDir = ".secrets"

// headerKeys maps secret filenames to the request header they populate.
var headerKeys = map[string]string{
	"http-cookie":        "Cookie",
	"http-authorization": "Authorization",
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files produce a warning but do not abort.
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
			logger.Warn("could not read secret %s: %v", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Headers returns the HTTP request headers carried by secrets.
func Headers(secrets map[string]string) map[string]string {
	headers := make(map[string]string)
	for key, header := range headerKeys {
		if v, ok := secrets[key]; ok {
			headers[header] = v
		}
	}
	return headers
}
