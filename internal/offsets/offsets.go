// Package offsets holds the versioned field-offset tables that describe the
// target's memory layout. A Profile is data: one per supported target build,
// swappable through a file without recompiling.
package offsets

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

var (
	// ErrMissingOffset is returned by Require when a profile lacks a field.
	ErrMissingOffset = errors.New("missing offset")

	// ErrInvalidOffset is returned by LoadFile for values that are not
	// non-negative integers.
	ErrInvalidOffset = errors.New("invalid offset")
)

// Table maps field names to byte offsets. Names compare case-insensitively
// since config loaders fold keys to lower case.
type Table map[string]uint64

func (t Table) Set(name string, off uint64) {
	t[strings.ToLower(name)] = off
}

func (t Table) Lookup(name string) (uint64, bool) {
	off, ok := t[strings.ToLower(name)]
	return off, ok
}

// Profile is the offset table for one build of one target module.
type Profile struct {
	Build  string
	Module string
	Table  Table
}

func (p Profile) Lookup(name string) (uint64, bool) {
	if p.Table == nil {
		return 0, false
	}
	return p.Table.Lookup(name)
}

// Get returns the offset for name, or zero when it is absent. Callers that
// cannot tolerate zero should Require the name first.
func (p Profile) Get(name string) uint64 {
	off, _ := p.Lookup(name)
	return off
}

// Require checks that every name is present and reports all missing ones.
func (p Profile) Require(names ...string) error {
	missing := lo.Filter(names, func(name string, _ int) bool {
		_, ok := p.Lookup(name)
		return !ok
	})
	if len(missing) > 0 {
		return fmt.Errorf("%w in profile %q: %s", ErrMissingOffset, p.Build, strings.Join(missing, ", "))
	}
	return nil
}

// Names returns the table's keys in sorted order.
func (p Profile) Names() []string {
	names := lo.Keys(p.Table)
	sort.Strings(names)
	return names
}

func (p Profile) Len() int {
	return len(p.Table)
}
