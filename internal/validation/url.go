// Package validation holds the input checks shared by configuration loading
// and the CLI: endpoint URLs, base paths and output directories.
package validation

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ValidateURL validates an absolute http(s) URL such as the relay endpoint
// or the public site URL.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	// Only allow http/https schemes
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %q (only http/https allowed)", parsed.Scheme)
	}

	dangerous := []string{"`", "<", ">", "\"", "'", "\\", "\n", "\r", " "}
	for _, char := range dangerous {
		if strings.Contains(rawURL, char) {
			return fmt.Errorf("URL contains invalid character: %q", char)
		}
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a valid hostname")
	}

	return nil
}

// ValidateBasePath checks a hosting path prefix. Empty means the site is
// served from the root; otherwise it must look like "/Repo".
func ValidateBasePath(basePath string) error {
	if basePath == "" {
		return nil
	}
	if !strings.HasPrefix(basePath, "/") {
		return fmt.Errorf("base path %q must start with /", basePath)
	}
	if strings.HasSuffix(basePath, "/") {
		return fmt.Errorf("base path %q must not end with /", basePath)
	}
	if strings.ContainsAny(basePath, " \"'<>?#\\") {
		return fmt.Errorf("base path %q contains invalid characters", basePath)
	}
	if strings.Contains(basePath, "..") {
		return fmt.Errorf("base path %q contains traversal", basePath)
	}
	return nil
}

// ValidateDir validates a project-relative directory such as the public or
// output directory.
func ValidateDir(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}
	if filepath.IsAbs(cleanPath) {
		return fmt.Errorf("path should be relative: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
