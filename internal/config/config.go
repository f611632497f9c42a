package config

import "os"

// Get returns the value of an environment variable, falling back to a
// default when unset or empty. Callers load .env via godotenv before use.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
