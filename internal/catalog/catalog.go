// Package catalog answers part price lookups against a static price list
// loaded once at startup from a CSV export of the pricing spreadsheet.
package catalog

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// Catalog is an immutable name→price index. It is populated once by Load and
// never mutated afterwards, so it is safe for concurrent reads with no
// locking.
type Catalog struct {
	names  []string // load order, for stable iteration
	prices map[string]float64
}

// Load reads the price list from a CSV file with part name in the first
// column and price in the second. A missing or malformed file yields an
// empty catalog rather than a startup failure: the site stays up with zero
// parts available.
func Load(path string) *Catalog {
	c := &Catalog{prices: make(map[string]float64)}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("WARNING: pricing file %s unavailable, catalog is empty: %v", path, err)
		return c
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // spreadsheet exports have ragged rows
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARNING: pricing file %s unreadable, catalog is empty: %v", path, err)
			return &Catalog{prices: make(map[string]float64)}
		}
		if len(record) < 2 {
			continue
		}
		name := strings.TrimSpace(record[0])
		price, ok := parsePrice(record[1])
		if name == "" || !ok {
			// header row or junk line
			continue
		}
		if _, dup := c.prices[name]; !dup {
			c.names = append(c.names, name)
		}
		c.prices[name] = price
	}

	log.Printf("Loaded %d parts from %s", len(c.names), path)
	return c
}

// parsePrice accepts plain numbers plus the "$1,234.56" style the
// spreadsheet uses.
func parsePrice(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// Parts returns every known part name in load order.
func (c *Catalog) Parts() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Price returns the price for an exact part name.
func (c *Catalog) Price(name string) (float64, bool) {
	price, ok := c.prices[name]
	return price, ok
}

// Search returns every part whose name contains the query, matched
// case-insensitively. Empty-query short-circuiting is the caller's job.
func (c *Catalog) Search(query string) map[string]float64 {
	matches := make(map[string]float64)
	q := strings.ToLower(query)
	for name, price := range c.prices {
		if strings.Contains(strings.ToLower(name), q) {
			matches[name] = price
		}
	}
	return matches
}

// Len returns the number of known parts.
func (c *Catalog) Len() int { return len(c.names) }
