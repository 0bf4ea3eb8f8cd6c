package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/wichananm65/wp-envconfig/internal/wpconfig"
)

const (
	FormatPHP    = "php"
	FormatJSON   = "json"
	FormatDotenv = "dotenv"

	redactedValue = "***"
)

// Document is the JSON shape served to consumers of the constants.
type Document struct {
	LoadID      string         `json:"loadId"`
	LoadedAt    time.Time      `json:"loadedAt"`
	Environment string         `json:"environment"`
	Keys        []string       `json:"keys"`
	Constants   map[string]any `json:"constants"`
}

// Sensitive reports whether key holds a credential or a salt.
func Sensitive(key string) bool {
	if key == wpconfig.KeyDBPassword {
		return true
	}
	for _, k := range wpconfig.SecretKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Redacted returns the constants with every sensitive value masked.
func Redacted(set *wpconfig.Set) map[string]any {
	m := set.Map()
	for k := range m {
		if Sensitive(k) {
			m[k] = redactedValue
		}
	}
	return m
}

func NewDocument(set *wpconfig.Set, redact bool) Document {
	constants := set.Map()
	if redact {
		constants = Redacted(set)
	}
	return Document{
		LoadID:      set.LoadID().String(),
		LoadedAt:    set.LoadedAt(),
		Environment: set.Environment(),
		Keys:        set.Keys(),
		Constants:   constants,
	}
}

func JSON(set *wpconfig.Set, redact bool) ([]byte, error) {
	return json.MarshalIndent(NewDocument(set, redact), "", "  ")
}

// PHP renders the constants as define() calls. TABLE_PREFIX is emitted as
// the $table_prefix global the host platform reads instead of a constant.
func PHP(set *wpconfig.Set, redact bool) string {
	var b strings.Builder
	b.WriteString("<?php\n")
	fmt.Fprintf(&b, "// load %s (%s)\n", set.LoadID(), set.Environment())
	for _, key := range set.Keys() {
		v, _ := set.Get(key)
		lit := phpLiteral(v)
		if redact && Sensitive(key) {
			lit = phpString(redactedValue)
		}
		if key == wpconfig.KeyTablePrefix {
			fmt.Fprintf(&b, "$table_prefix = %s;\n", lit)
			continue
		}
		fmt.Fprintf(&b, "define(%s, %s);\n", phpString(key), lit)
	}
	return b.String()
}

func phpLiteral(v wpconfig.Value) string {
	switch v.Kind() {
	case wpconfig.KindBool, wpconfig.KindInt:
		return v.String()
	default:
		return phpString(v.String())
	}
}

var phpEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func phpString(s string) string {
	return "'" + phpEscaper.Replace(s) + "'"
}

// Dotenv renders the constants as a .env document in resolution order.
// Only integers are written bare; strings are always quoted so values such as
// "007" survive a round trip.
func Dotenv(set *wpconfig.Set, redact bool) (string, error) {
	lines := make([]string, 0, set.Len())
	for _, key := range set.Keys() {
		v, _ := set.Get(key)
		lit := dotenvLiteral(v)
		if redact && Sensitive(key) {
			lit = dotenvString(redactedValue)
		}
		lines = append(lines, key+"="+lit)
	}
	return strings.Join(lines, "\n"), nil
}

func dotenvLiteral(v wpconfig.Value) string {
	switch v.Kind() {
	case wpconfig.KindBool, wpconfig.KindInt:
		return v.String()
	default:
		return dotenvString(v.String())
	}
}

var dotenvEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
	`"`, `\"`,
	`!`, `\!`,
	`$`, `\$`,
	"`", "\\`",
)

// dotenvString single-quotes s when it can be taken literally and falls back
// to an escaped double-quoted string otherwise.
func dotenvString(s string) string {
	if !strings.ContainsAny(s, "'\n\r") && !strings.HasSuffix(s, `\`) {
		return "'" + s + "'"
	}
	return `"` + dotenvEscaper.Replace(s) + `"`
}

// Format renders set in the named format.
func Format(set *wpconfig.Set, format string, redact bool) (string, error) {
	switch format {
	case FormatPHP:
		return PHP(set, redact), nil
	case FormatJSON:
		b, err := JSON(set, redact)
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	case FormatDotenv:
		out, err := Dotenv(set, redact)
		if err != nil {
			return "", err
		}
		return out + "\n", nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}
