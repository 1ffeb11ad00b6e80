// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfimg converts PDF pages to page images by driving Poppler's
// pdftoppm as a subprocess.
package pdfimg

import (
	"fmt"
	"strconv"
	"strings"
)

// PageRange selects a 1-based inclusive page interval. A zero First means
// the first page; a zero Last means the last page of the document.
type PageRange struct {
	First int
	Last  int
}

// All reports whether the range covers the whole document.
func (r PageRange) All() bool {
	return r.First == 0 && r.Last == 0
}

// ParsePageRange parses "3", "1-5", "2-", or "-5". An empty string selects
// every page. Pages are 1-based; an end page before the start page is an
// error.
func ParsePageRange(s string) (PageRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PageRange{}, nil
	}

	parse := func(part string) (int, error) {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			return 0, fmt.Errorf("invalid page number %q", part)
		}
		return n, nil
	}

	first, last, found := strings.Cut(s, "-")
	if !found {
		n, err := parse(s)
		if err != nil {
			return PageRange{}, fmt.Errorf("page range %q: %w", s, err)
		}
		return PageRange{First: n, Last: n}, nil
	}

	var r PageRange
	if strings.TrimSpace(first) != "" {
		n, err := parse(first)
		if err != nil {
			return PageRange{}, fmt.Errorf("page range %q: %w", s, err)
		}
		r.First = n
	}
	if strings.TrimSpace(last) != "" {
		n, err := parse(last)
		if err != nil {
			return PageRange{}, fmt.Errorf("page range %q: %w", s, err)
		}
		r.Last = n
	}
	if r.First != 0 && r.Last != 0 && r.Last < r.First {
		return PageRange{}, fmt.Errorf("page range %q: end page before start page", s)
	}
	return r, nil
}
