// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data types shared across getids packages.
package types

import "time"

// Element is one element returned by a document query.
type Element struct {
	// ID is the value of the id attribute. Empty when the attribute is
	// absent or set to "".
	ID string `json:"id" yaml:"id"`

	// HasID reports whether the id attribute is present at all.
	HasID bool `json:"has_id" yaml:"has_id"`

	// Tag is the lower-case element name (e.g. "div").
	Tag string `json:"tag" yaml:"tag"`

	// Classes lists the element's class names in attribute order.
	Classes []string `json:"classes,omitempty" yaml:"classes,omitempty"`
}

// Collection is the outcome of collecting ids from one input document.
type Collection struct {
	// Source is the input the document was read from: a file path, a URL,
	// or "-" for stdin.
	Source string `json:"source" yaml:"source"`

	// Selector is the CSS selector the elements were queried with.
	Selector string `json:"selector" yaml:"selector"`

	// Matched is the number of elements the selector matched, including
	// those skipped for lacking an id.
	Matched int `json:"matched" yaml:"matched"`

	// Missing is the number of matched elements with an absent or empty id.
	Missing int `json:"missing" yaml:"missing"`

	// Duplicates is the number of repeated ids dropped by unique collection.
	Duplicates int `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`

	// IDs holds the collected non-empty ids in document order.
	IDs []string `json:"ids" yaml:"ids"`

	// CollectedAt is when the collection finished.
	CollectedAt time.Time `json:"collected_at" yaml:"collected_at"`
}
