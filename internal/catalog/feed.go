// Package catalog parses the administrative category feed: a two-column CSV
// with "category" and "subcategory" headers. The feed replaces the stored
// catalog wholesale; it never edits individual entries.
package catalog

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/gocarina/gocsv"

	"github.com/AlexRiks/AccountingDesk-IA/internal/common"
	"github.com/AlexRiks/AccountingDesk-IA/internal/model"
)

// feedRow maps one CSV row of the administrative feed.
type feedRow struct {
	Category    string `csv:"category"`
	Subcategory string `csv:"subcategory"`
}

// ParseFeed reads the feed and returns deduplicated entries sorted by
// (category, subcategory). Rows missing a category or subcategory are
// skipped with a warning rather than failing the whole load.
func ParseFeed(r io.Reader) ([]model.CategoryEntry, error) {
	var rows []feedRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse category feed: %w", err)
	}

	seen := make(map[model.CategoryEntry]struct{}, len(rows))
	entries := make([]model.CategoryEntry, 0, len(rows))
	skipped := 0

	for i, row := range rows {
		if row.Category == "" || row.Subcategory == "" {
			slog.Warn("skipping malformed feed row",
				"row", i+1,
				"category", row.Category,
				"subcategory", row.Subcategory)
			skipped++
			continue
		}

		entry := model.CategoryEntry{Category: row.Category, Subcategory: row.Subcategory}
		if _, dup := seen[entry]; dup {
			continue
		}
		seen[entry] = struct{}{}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Category != entries[j].Category {
			return entries[i].Category < entries[j].Category
		}
		return entries[i].Subcategory < entries[j].Subcategory
	})

	if skipped > 0 {
		slog.Warn("category feed had malformed rows", "skipped", skipped, "loaded", len(entries))
	}

	// A feed with zero valid rows is almost certainly a malformed file;
	// refusing it keeps a bad load from wiping the catalog.
	if len(entries) == 0 {
		return nil, fmt.Errorf("category feed has no valid rows: %w", common.ErrCatalogEmpty)
	}

	return entries, nil
}
