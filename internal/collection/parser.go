// Package collection imports the player's owned-card list from CSV exports
// and plain text deck lists, and re-imports automatically on file changes.
package collection

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/deckforge/deckforge/internal/deck"
)

// ParseFile reads a collection file, choosing the format by extension:
// .csv parses as a CSV export, anything else as a plain text list.
func ParseFile(path string) ([]deck.OwnedCard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open collection file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ParseCSV(f)
	}
	return ParseText(f)
}

// ParseCSV parses a CSV export. The header row must contain a name column;
// quantity defaults to 1 when the column is absent. Rows repeating a name
// have their quantities summed.
func ParseCSV(r io.Reader) ([]deck.OwnedCard, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	nameCol, qtyCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name", "card name", "card":
			if nameCol < 0 {
				nameCol = i
			}
		case "quantity", "count", "qty", "amount":
			if qtyCol < 0 {
				qtyCol = i
			}
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("CSV header has no name column")
	}

	acc := newAccumulator()
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row %d: %w", line, err)
		}
		line++

		if nameCol >= len(record) {
			continue
		}
		name := strings.TrimSpace(record[nameCol])
		if name == "" {
			continue
		}

		qty := 1
		if qtyCol >= 0 && qtyCol < len(record) {
			if n, err := strconv.Atoi(strings.TrimSpace(record[qtyCol])); err == nil && n > 0 {
				qty = n
			}
		}
		acc.add(name, qty, "csv")
	}
	return acc.list(), nil
}

// ParseText parses a plain text list: one card per line, with an optional
// leading count ("3 Lightning Bolt" or "3x Lightning Bolt"). Blank lines
// and lines starting with "#" or "//" are skipped.
func ParseText(r io.Reader) ([]deck.OwnedCard, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text list: %w", err)
	}

	acc := newAccumulator()
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		qty := 1
		name := line
		if fields := strings.SplitN(line, " ", 2); len(fields) == 2 {
			count := strings.TrimSuffix(strings.ToLower(fields[0]), "x")
			if n, err := strconv.Atoi(count); err == nil && n > 0 {
				qty = n
				name = strings.TrimSpace(fields[1])
			}
		}
		if name == "" {
			continue
		}
		acc.add(name, qty, "text")
	}
	return acc.list(), nil
}

// accumulator merges duplicate names case-insensitively, keeping the first
// spelling seen and summing quantities.
type accumulator struct {
	order []string
	cards map[string]*deck.OwnedCard
}

func newAccumulator() *accumulator {
	return &accumulator{cards: make(map[string]*deck.OwnedCard)}
}

func (a *accumulator) add(name string, qty int, source string) {
	key := strings.ToLower(name)
	if existing, ok := a.cards[key]; ok {
		existing.Quantity += qty
		return
	}
	a.order = append(a.order, key)
	a.cards[key] = &deck.OwnedCard{Name: name, Quantity: qty, Source: source}
}

func (a *accumulator) list() []deck.OwnedCard {
	out := make([]deck.OwnedCard, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, *a.cards[key])
	}
	return out
}
