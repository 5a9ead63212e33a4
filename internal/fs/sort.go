package fs

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMethod selects the primary ordering of a listing.
type SortMethod string

const (
	SortNatural  SortMethod = "natural"
	SortLexical  SortMethod = "lexical"
	SortSize     SortMethod = "size"
	SortModified SortMethod = "modified"
)

// SortOptions controls Sort.
type SortOptions struct {
	Method        SortMethod
	Reverse       bool
	DirsFirst     bool
	CaseSensitive bool
}

// DefaultSortOptions is the ordering browsers usually default to: directories first,
// then names.
func DefaultSortOptions() SortOptions {
	return SortOptions{Method: SortNatural, DirsFirst: true}
}

// Sort orders entries in place. Directories stay ahead of files when
// DirsFirst is set, regardless of Reverse.
func Sort(entries []Entry, opts SortOptions) {
	var collator *collate.Collator
	if opts.Method == SortNatural || opts.Method == SortLexical || opts.Method == "" {
		var copts []collate.Option
		if opts.Method != SortLexical {
			copts = append(copts, collate.Numeric)
		}
		if !opts.CaseSensitive {
			copts = append(copts, collate.IgnoreCase)
		}
		collator = collate.New(language.Und, copts...)
	}

	byName := func(a, b Entry) int {
		if collator != nil {
			if c := collator.CompareString(a.Name, b.Name); c != 0 {
				return c
			}
		}
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	}

	compare := func(a, b Entry) int {
		switch opts.Method {
		case SortSize:
			if a.Size != b.Size {
				if a.Size < b.Size {
					return -1
				}
				return 1
			}
		case SortModified:
			if !a.Modified.Equal(b.Modified) {
				if a.Modified.Before(b.Modified) {
					return -1
				}
				return 1
			}
		}
		return byName(a, b)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if opts.DirsFirst && a.IsDir != b.IsDir {
			return a.IsDir
		}
		c := compare(a, b)
		if opts.Reverse {
			return c > 0
		}
		return c < 0
	})
}
