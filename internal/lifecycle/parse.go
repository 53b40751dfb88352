// SPDX-License-Identifier: AGPL-3.0-or-later

package lifecycle

import (
	"strings"

	"github.com/samber/lo"
)

// Pair is a single key/value item from a "key:value,key:value" list.
type Pair struct {
	Key   string
	Value string
}

// ParseKeyValueList parses "key:value,key:value" into pairs.
// Items are split on the first colon only; an item without a colon becomes
// a key with an empty value. Order and duplicates are preserved.
func ParseKeyValueList(raw string) []Pair {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var pairs []Pair
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		k, v, found := strings.Cut(item, ":")
		if !found {
			pairs = append(pairs, Pair{Key: item})
			continue
		}
		pairs = append(pairs, Pair{Key: strings.TrimSpace(k), Value: strings.TrimSpace(v)})
	}
	return pairs
}

// ParseList parses "a,b,c" into trimmed, non-empty items in source order.
func ParseList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	items := lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Compact(items)
}

// SkipSet holds the phases explicitly marked as not run.
type SkipSet struct {
	names []string
}

// NewSkipSet builds a skip set from names, dropping blanks and repeats.
func NewSkipSet(names []string) SkipSet {
	return SkipSet{names: lo.Uniq(lo.Compact(names))}
}

// ParseSkipSet parses a comma-separated skip list.
func ParseSkipSet(raw string) SkipSet {
	return NewSkipSet(ParseList(raw))
}

func (s SkipSet) Contains(phase string) bool { return lo.Contains(s.names, phase) }

func (s SkipSet) Len() int { return len(s.names) }

// Names returns the skipped names in the order they were given.
func (s SkipSet) Names() []string { return append([]string(nil), s.names...) }

// ErrorMap maps a phase name to its failure message.
//
// Keys keep the order of their first appearance. A repeated key replaces the
// earlier message, the same as building a map from the pair list.
type ErrorMap struct {
	keys     []string
	messages map[string]string
}

// NewErrorMap folds pairs into an ErrorMap. An empty key is kept like any other.
func NewErrorMap(pairs []Pair) ErrorMap {
	m := ErrorMap{messages: make(map[string]string, len(pairs))}
	for _, p := range pairs {
		if _, seen := m.messages[p.Key]; !seen {
			m.keys = append(m.keys, p.Key)
		}
		m.messages[p.Key] = p.Value
	}
	return m
}

// ParseErrorMap parses a comma-separated "phase:message" list.
func ParseErrorMap(raw string) ErrorMap {
	return NewErrorMap(ParseKeyValueList(raw))
}

// Message returns the failure message for phase and whether one was recorded.
func (m ErrorMap) Message(phase string) (string, bool) {
	msg, ok := m.messages[phase]
	return msg, ok
}

func (m ErrorMap) Has(phase string) bool {
	_, ok := m.messages[phase]
	return ok
}

func (m ErrorMap) Len() int { return len(m.keys) }

// Keys returns the phases with errors in first-appearance order.
func (m ErrorMap) Keys() []string { return append([]string(nil), m.keys...) }
