// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect gathers the ids of queried elements and emits them.
//
// IDs is a single ordered pass: elements whose id attribute is absent or
// empty are skipped and every other id is kept in input order. It cannot
// fail; an empty input yields an empty, non-nil list.
package collect

import (
	"strings"

	"github.com/pdiddy/getids/pkg/types"
)

// Options adjusts the scan. The zero value keeps every non-empty id
// exactly as it appears.
type Options struct {
	// Unique drops ids already seen earlier in the scan.
	Unique bool

	// TrimSpace trims surrounding whitespace before the empty check.
	TrimSpace bool
}

// Tally counts the elements a scan left out, by reason.
type Tally struct {
	// Missing counts elements whose id is absent or empty (after trimming
	// when TrimSpace is set).
	Missing int

	// Duplicates counts ids dropped because Unique had already seen them.
	Duplicates int
}

// IDs returns the non-empty ids of elements in input order.
func IDs(elements []types.Element) []string {
	return IDsWith(elements, Options{})
}

// IDsWith is IDs with scan options applied.
func IDsWith(elements []types.Element, opts Options) []string {
	ids, _ := Scan(elements, opts)
	return ids
}

// Scan is IDsWith that also reports why elements were left out.
func Scan(elements []types.Element, opts Options) ([]string, Tally) {
	ids := make([]string, 0, len(elements))
	var tally Tally

	var seen map[string]struct{}
	if opts.Unique {
		seen = make(map[string]struct{}, len(elements))
	}

	for _, el := range elements {
		id := el.ID
		if opts.TrimSpace {
			id = strings.TrimSpace(id)
		}
		if !el.HasID || id == "" {
			tally.Missing++
			continue
		}
		if seen != nil {
			if _, dup := seen[id]; dup {
				tally.Duplicates++
				continue
			}
			seen[id] = struct{}{}
		}
		ids = append(ids, id)
	}
	return ids, tally
}
