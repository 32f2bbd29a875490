// Package listing orders and text-filters record collections for the list
// views. Sort strategies are declarative: each entity exposes a registry of
// named options (the keys the sort dropdown submits), and an unknown or
// field-less key degrades to identity order rather than failing — a display
// concern should never take a page down.
package listing

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// FieldValue is the typed result of a field accessor. OK is false when the
// record has no usable value for the field; comparisons involving a missing
// value report "equal" so the pair keeps its input order.
type FieldValue struct {
	kind kind
	str  string
	num  float64
	t    time.Time
	ok   bool
}

type kind int

const (
	kindString kind = iota
	kindNumber
	kindDate
)

func Str(s string) FieldValue       { return FieldValue{kind: kindString, str: s, ok: true} }
func Num(f float64) FieldValue      { return FieldValue{kind: kindNumber, num: f, ok: true} }
func Date(t time.Time) FieldValue   { return FieldValue{kind: kindDate, t: t, ok: true} }
func Missing() FieldValue           { return FieldValue{} }

// SortOption binds a dropdown key to a field accessor and a direction.
// A nil Field means the option is a no-op (identity order).
type SortOption[T any] struct {
	Value     string
	Label     string
	Field     func(T) FieldValue
	Direction Direction
}

func compare(a, b FieldValue, col *collate.Collator) int {
	if !a.ok || !b.ok {
		return 0
	}
	switch a.kind {
	case kindDate:
		return a.t.Compare(b.t)
	case kindNumber:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	default:
		return col.CompareString(a.str, b.str)
	}
}

// Sort returns a new slice ordered by the option named key. Unknown keys
// return the input order. The sort is stable: equal (or incomparable)
// pairs keep their relative input order.
func Sort[T any](records []T, options []SortOption[T], key string) []T {
	var selected *SortOption[T]
	for i := range options {
		if options[i].Value == key {
			selected = &options[i]
			break
		}
	}
	if selected == nil || selected.Field == nil {
		return records
	}

	out := make([]T, len(records))
	copy(out, records)
	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		c := compare(selected.Field(out[i]), selected.Field(out[j]), col)
		if selected.Direction == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// Filter keeps records where any searchable field contains term,
// case-insensitively. An empty term is identity.
func Filter[T any](records []T, fields func(T) []string, term string) []T {
	if term == "" {
		return records
	}
	search := strings.ToLower(term)
	out := make([]T, 0, len(records))
	for _, rec := range records {
		for _, f := range fields(rec) {
			if strings.Contains(strings.ToLower(f), search) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// SortAndFilter sorts first, then filters, so the surviving records keep the
// chosen order.
func SortAndFilter[T any](records []T, options []SortOption[T], fields func(T) []string, key, term string) []T {
	return Filter(Sort(records, options, key), fields, term)
}
