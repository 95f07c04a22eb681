package env

import "os"

// Lookup abstracts os.LookupEnv so callers can be handed a fixed environment.
type Lookup interface {
	LookupEnv(key string) (string, bool)
}

// OSLookup reads the real process environment.
type OSLookup struct{}

func (OSLookup) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapLookup serves variables from a map. A key present with an empty value
// is reported as set.
type MapLookup map[string]string

func (m MapLookup) LookupEnv(key string) (string, bool) {
	value, ok := m[key]
	return value, ok
}
