// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfread opens PDF documents and extracts per-page text lines.
// Only the embedded text layer is read; scanned (image-only) pages come
// back empty.
package pdfread

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadable marks a file that cannot be parsed as a PDF: corrupt,
// encrypted without a password, or not a PDF at all.
var ErrUnreadable = errors.New("unreadable document")

// PageText holds the extracted text of one page, grouped into lines in
// reading order.
type PageText struct {
	// Number is the 1-based page number.
	Number int `json:"number" yaml:"number"`

	// Lines are the text rows of the page, top to bottom.
	Lines []string `json:"lines" yaml:"lines"`
}

// FirstLine returns the first non-empty line of the page, or "".
func (p PageText) FirstLine() string {
	for _, line := range p.Lines {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}

// LastLine returns the last non-empty line of the page, or "".
func (p PageText) LastLine() string {
	for i := len(p.Lines) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(p.Lines[i]); s != "" {
			return s
		}
	}
	return ""
}

// Document is an open PDF file.
type Document struct {
	file   *os.File
	reader *pdf.Reader
}

// Open opens the PDF at path. Parse failures are wrapped in ErrUnreadable
// so callers can distinguish a bad document from plain I/O trouble.
func Open(path string) (*Document, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, filepath.Base(path), err)
	}
	return &Document{file: file, reader: reader}, nil
}

// Close releases the underlying file handle.
func (d *Document) Close() error {
	return d.file.Close()
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// Page extracts the text of the 1-based page n. Pages whose content
// stream cannot be decoded yield an empty PageText rather than an error:
// a single bad page should not sink the whole file.
func (d *Document) Page(n int) PageText {
	page := PageText{Number: n}

	p := d.reader.Page(n)
	if p.V.IsNull() {
		return page
	}

	rows, err := p.GetTextByRow()
	if err != nil {
		return page
	}

	for _, row := range rows {
		var b strings.Builder
		for _, text := range row.Content {
			b.WriteString(text.S)
		}
		if line := strings.TrimSpace(b.String()); line != "" {
			page.Lines = append(page.Lines, line)
		}
	}
	return page
}

// Pages extracts every page of the document in order.
func (d *Document) Pages() []PageText {
	n := d.PageCount()
	pages := make([]PageText, 0, n)
	for i := 1; i <= n; i++ {
		pages = append(pages, d.Page(i))
	}
	return pages
}
