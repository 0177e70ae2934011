// Package env loads environment variables from .env files (via godotenv)
// and provides typed getters.
//
// Usage:
//
//	env.Load()                            // Load .env from current directory
//	env.Load(env.WithFile(".env.local"))  // Load specific file
//	env.Load(env.WithOverride())          // Override existing env vars
package env

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Options holds configuration for loading environment variables.
type Options struct {
	filename string
	dir      string
	override bool
	required bool
}

// Option is a functional option for configuring the loader.
type Option func(*Options)

// WithFile specifies the filename to load (default: ".env").
func WithFile(filename string) Option {
	return func(o *Options) { o.filename = filename }
}

// WithDir specifies the directory to load the file from.
func WithDir(dir string) Option {
	return func(o *Options) { o.dir = dir }
}

// WithOverride enables overriding existing environment variables.
func WithOverride() Option {
	return func(o *Options) { o.override = true }
}

// WithRequired makes it an error if the file doesn't exist.
func WithRequired() Option {
	return func(o *Options) { o.required = true }
}

// Load loads environment variables from a .env file. A missing file is not
// an error unless WithRequired is set.
func Load(opts ...Option) error {
	options := &Options{filename: ".env"}
	for _, opt := range opts {
		opt(options)
	}

	path := options.filename
	if options.dir != "" {
		path = filepath.Join(options.dir, options.filename)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if options.required {
			return fmt.Errorf("env: file %q not found", path)
		}
		return nil
	}

	if options.override {
		return godotenv.Overload(path)
	}
	return godotenv.Load(path)
}

// Get returns the value of an environment variable, or empty string if not set.
func Get(key string) string {
	return os.Getenv(key)
}

// GetDefault returns the value of an environment variable, or the default value if not set.
func GetDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetRequired returns the value of an environment variable, or an error if not set.
func GetRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("env: required variable %q is not set", key)
	}
	return value, nil
}
