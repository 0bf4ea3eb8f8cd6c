package envfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMalformedEnvFile is returned when an overlay file exists but cannot be parsed.
var ErrMalformedEnvFile = errors.New("malformed env file")

// Overlay describes what a .env file contributed to the process environment.
type Overlay struct {
	Path     string
	Found    bool
	Applied  []string
	Shadowed []string
}

// Load merges the KEY=VALUE pairs of the file at path into the process
// environment. Variables already set in the process are never overwritten.
// A missing file is not an error. Values are taken literally: "$NAME" and
// "${NAME}" are not expanded.
func Load(path string) (*Overlay, error) {
	overlay := &Overlay{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return overlay, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedEnvFile, path, err)
	}

	values, err := parseLiteral(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedEnvFile, path, err)
	}
	overlay.Found = true

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pending := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := os.LookupEnv(k); ok {
			overlay.Shadowed = append(overlay.Shadowed, k)
			continue
		}
		if err := checkEntry(k, values[k]); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedEnvFile, path, err)
		}
		pending = append(pending, k)
	}

	for _, k := range pending {
		if err := os.Setenv(k, values[k]); err != nil {
			for _, applied := range overlay.Applied {
				os.Unsetenv(applied)
			}
			return nil, fmt.Errorf("set %s from %s: %w", k, path, err)
		}
		overlay.Applied = append(overlay.Applied, k)
	}

	return overlay, nil
}

// parseLiteral parses data with godotenv without variable expansion.
// godotenv expands $NAME in unquoted and double-quoted values, so the file is
// parsed a second time with every $ escaped; wherever the two results
// disagree the expansion was undone by the escape and the second value is the
// literal one. Single-quoted values come out identical in both passes.
func parseLiteral(data []byte) (map[string]string, error) {
	expanded, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	escaped, err := godotenv.Parse(bytes.NewReader(bytes.ReplaceAll(data, []byte("$"), []byte(`\$`))))
	if err != nil {
		return nil, err
	}

	for k, v := range expanded {
		lit, ok := escaped[k]
		if !ok {
			continue
		}
		if strings.ReplaceAll(lit, `\$`, "$") != v {
			expanded[k] = lit
		}
	}
	return expanded, nil
}

func checkEntry(key, value string) error {
	if key == "" || strings.ContainsAny(key, "=\x00") {
		return fmt.Errorf("invalid variable name %q", key)
	}
	if strings.ContainsRune(value, 0) {
		return fmt.Errorf("variable %s contains a NUL byte", key)
	}
	return nil
}
