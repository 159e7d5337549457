package env

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Prefix namespaces the variables the game reads.
const Prefix = "ROLLCAGE_"

// Load reads KEY=VALUE lines from path (e.g. ".env") into the process environment without
// overriding variables that are already set. Empty lines and lines starting with # are
// skipped; values may be quoted. A missing file is not an error.
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("%s:%d: expected KEY=VALUE", path, n)
		}
		value = unquote(strings.TrimSpace(value))
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' && v[len(v)-1] == '"' || v[0] == '\'' && v[len(v)-1] == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

// Get returns the value of Prefix+name, or fallback when it is unset or empty.
func Get(name, fallback string) string {
	if v := os.Getenv(Prefix + name); v != "" {
		return v
	}
	return fallback
}
