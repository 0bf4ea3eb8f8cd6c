package wpconfig

import (
	"time"

	"github.com/google/uuid"
)

// Set is the resolved configuration. It is built once by Loader.Build and
// never changes afterwards; accessors hand out copies.
type Set struct {
	id       uuid.UUID
	loadedAt time.Time
	keys     []string
	values   map[string]Value
}

func newSet() *Set {
	return &Set{values: make(map[string]Value)}
}

func (s *Set) define(key string, v Value) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

func (s *Set) LoadID() uuid.UUID    { return s.id }
func (s *Set) LoadedAt() time.Time { return s.loadedAt }

func (s *Set) Get(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Set) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

func (s *Set) String(key string) string {
	return s.values[key].String()
}

func (s *Set) Bool(key string) bool {
	v, ok := s.values[key]
	return ok && v.Bool()
}

func (s *Set) Int(key string) int {
	return s.values[key].Int()
}

// Keys returns the defined constant names in resolution order.
func (s *Set) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *Set) Len() int { return len(s.keys) }

// Map returns a copy of the set as plain Go values.
func (s *Set) Map() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v.Interface()
	}
	return out
}

// Environment is the resolved WP_ENVIRONMENT_TYPE.
func (s *Set) Environment() string {
	return s.String(KeyEnvironmentType)
}
