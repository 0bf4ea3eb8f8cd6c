package wpconfig

import (
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
)

// Lookup reports the value of an environment variable and whether it is set.
type Lookup func(key string) (string, bool)

// OSLookup reads the process environment.
func OSLookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapLookup serves variables from m.
func MapLookup(m map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

type Options struct {
	// Root is the install directory; WP_CONTENT_DIR and ABSPATH hang off it.
	Root string
	// RedisAvailable reports whether the object cache backend can be used.
	RedisAvailable bool
	// Strict rejects boolean and integer values the lenient parsers would coerce.
	Strict bool
}

type Loader struct {
	lookup Lookup
	opts   Options
	now    func() time.Time
}

func NewLoader(lookup Lookup, opts Options) *Loader {
	if lookup == nil {
		lookup = OSLookup
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	return &Loader{lookup: lookup, opts: opts, now: time.Now}
}

func (l *Loader) GetRequired(key string) (string, error) {
	v, ok := l.lookup(key)
	if !ok || v == "" {
		return "", &MissingRequiredVariableError{Key: key}
	}
	return v, nil
}

func (l *Loader) GetOptional(key, def string) string {
	if v, ok := l.lookup(key); ok {
		return v
	}
	return def
}

func (l *Loader) GetBool(key string, def bool) bool {
	if v, ok := l.lookup(key); ok {
		return ParseBool(v)
	}
	return def
}

func (l *Loader) GetInt(key string, def int) int {
	if v, ok := l.lookup(key); ok {
		return ParseInt(v)
	}
	return def
}

// Build resolves every setting of the policy. Either all required variables
// are present and a complete Set is returned, or no Set is returned at all.
func (l *Loader) Build() (*Set, error) {
	b := &builder{loader: l, set: newSet()}
	var (
		missing []*MissingRequiredVariableError
		invalid []error
		seen    = make(map[string]bool)
	)

	for _, s := range policy {
		v, ok, err := b.apply(s)
		if err != nil {
			var m *MissingRequiredVariableError
			if errors.As(err, &m) {
				missing = append(missing, m)
				continue
			}
			if !seen[err.Error()] {
				seen[err.Error()] = true
				invalid = append(invalid, err)
			}
			continue
		}
		if ok {
			b.set.define(s.Key, v)
		}
	}

	switch {
	case len(missing) == 1:
		return nil, missing[0]
	case len(missing) > 1:
		return nil, &MissingVariablesError{Missing: missing}
	case len(invalid) > 0:
		return nil, errors.Join(invalid...)
	}

	b.set.id = uuid.New()
	b.set.loadedAt = l.now()
	return b.set, nil
}

type builder struct {
	loader *Loader
	set    *Set
}

func (b *builder) apply(s Setting) (Value, bool, error) {
	if s.when != nil {
		applies, err := s.when(b)
		if err != nil || !applies {
			return Value{}, false, err
		}
	}
	return b.resolve(s)
}

func (b *builder) resolve(s Setting) (Value, bool, error) {
	if s.resolve != nil {
		return s.resolve(b)
	}

	env := s.source()
	if s.Required {
		v, err := b.loader.GetRequired(env)
		if err != nil {
			return Value{}, false, err
		}
		return StringValue(v), true, nil
	}

	raw, ok := b.loader.lookup(env)
	if !ok {
		if s.fallback != nil {
			return s.fallback(b), true, nil
		}
		return s.Default, true, nil
	}

	switch s.Kind {
	case KindBool:
		v, err := b.parseBool(env, raw)
		return BoolValue(v), err == nil, err
	case KindInt:
		v, err := b.parseInt(env, raw)
		return IntValue(v), err == nil, err
	default:
		return StringValue(raw), true, nil
	}
}

// flag reads a boolean that gates other settings without being defined itself.
func (b *builder) flag(env string, def bool) (bool, error) {
	raw, ok := b.loader.lookup(env)
	if !ok {
		return def, nil
	}
	return b.parseBool(env, raw)
}

func (b *builder) parseBool(env, raw string) (bool, error) {
	if !b.loader.opts.Strict {
		return ParseBool(raw), nil
	}
	v, ok := parseBoolStrict(raw)
	if !ok {
		return false, &InvalidValueError{Key: env, Kind: KindBool, Raw: raw}
	}
	return v, nil
}

func (b *builder) parseInt(env, raw string) (int, error) {
	if !b.loader.opts.Strict {
		return ParseInt(raw), nil
	}
	v, ok := parseIntStrict(raw)
	if !ok {
		return 0, &InvalidValueError{Key: env, Kind: KindInt, Raw: raw}
	}
	return v, nil
}

// present reports whether env is set to a non-empty value.
func (b *builder) present(env string) bool {
	v, ok := b.loader.lookup(env)
	return ok && v != ""
}
