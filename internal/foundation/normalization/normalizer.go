// Package normalization maps loosely formatted user input onto typed enum values.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer provides type-safe string-to-enum normalization.
type Normalizer[T comparable] struct {
	name         string
	validValues  map[string]T
	defaultValue T
	validKeys    []string // canonical keys only, aliases excluded
}

// NewNormalizer creates a normalizer for the enum called name.
// Keys of values are the canonical spellings; defaultValue is returned for empty input.
func NewNormalizer[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))
	for k, v := range values {
		key := clean(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)
	return &Normalizer[T]{
		name:         name,
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// WithAliases registers alternative spellings that resolve to existing values.
func (n *Normalizer[T]) WithAliases(aliases map[string]T) *Normalizer[T] {
	for k, v := range aliases {
		n.validValues[clean(k)] = v
	}
	return n
}

// Normalize converts raw to the enum type. Empty input yields the default;
// unknown input yields the default and ok=false.
func (n *Normalizer[T]) Normalize(raw string) (T, bool) {
	key := clean(raw)
	if key == "" {
		return n.defaultValue, true
	}
	if v, ok := n.validValues[key]; ok {
		return v, true
	}
	return n.defaultValue, false
}

// NormalizeWithError is Normalize with a descriptive error for unknown input.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	v, ok := n.Normalize(raw)
	if !ok {
		var zero T
		return zero, fmt.Errorf("invalid %s %q, valid options: %s", n.name, raw, strings.Join(n.validKeys, ", "))
	}
	return v, nil
}

// ValidKeys returns the canonical keys in sorted order.
func (n *Normalizer[T]) ValidKeys() []string {
	out := make([]string, len(n.validKeys))
	copy(out, n.validKeys)
	return out
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
