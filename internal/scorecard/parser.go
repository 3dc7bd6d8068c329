// Package scorecard imports paper or spreadsheet scorecards. A card is a grid with a
// header row ("Name", 1, 2, ... 18), optional "Par" and "SI" rows describing the course,
// and one row per player with gross scores.
package scorecard

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/trentd187/golf-scoring/internal/scoring"
)

// Card is a parsed scorecard.
type Card struct {
	// Holes is the course described by the Par and SI rows. It is nil unless both rows
	// are present and give a value for every hole column.
	Holes []scoring.Hole
	Rows  []Row
}

// Row is one player line of the card.
type Row struct {
	Name  string
	Line  int // 1-based row number in the source file
	Gross [scoring.HoleCount]scoring.Gross
}

// Parser turns an uploaded file into a Card.
type Parser interface {
	Parse(data []byte) (*Card, error)
}

// ParserFor picks a parser by file extension.
func ParserFor(filename string) (Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx", ".xlsm":
		return NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %q", ext)
	}
}

// Parse is ParserFor followed by Parse.
func Parse(filename string, data []byte) (*Card, error) {
	p, err := ParserFor(filename)
	if err != nil {
		return nil, err
	}
	return p.Parse(data)
}

type rowKind int

const (
	kindPlayer rowKind = iota
	kindPar
	kindStrokeIndex
	kindSkip
)

func classifyLabel(label string) rowKind {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "":
		return kindSkip
	case "par":
		return kindPar
	case "si", "s.i.", "index", "stroke index", "hcp", "handicap":
		return kindStrokeIndex
	case "out", "in", "total", "tot":
		return kindSkip
	}
	return kindPlayer
}

// parseGrid is shared by the CSV and XLSX parsers.
func parseGrid(rows [][]string) (*Card, error) {
	headerIdx, holeCols, err := findHeader(rows)
	if err != nil {
		return nil, err
	}

	card := &Card{}
	var pars, indexes map[int]int
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}
		switch classifyLabel(row[0]) {
		case kindSkip:
			continue
		case kindPar:
			if pars, err = numericRow(row, holeCols); err != nil {
				return nil, fmt.Errorf("invalid par row at line %d: %w", i+1, err)
			}
		case kindStrokeIndex:
			if indexes, err = numericRow(row, holeCols); err != nil {
				return nil, fmt.Errorf("invalid stroke index row at line %d: %w", i+1, err)
			}
		default:
			r := Row{Name: strings.TrimSpace(row[0]), Line: i + 1}
			for col, hole := range holeCols {
				if col < len(row) {
					r.Gross[hole-1] = scoring.ParseGross(row[col])
				}
			}
			card.Rows = append(card.Rows, r)
		}
	}

	if len(pars) == len(holeCols) && len(indexes) == len(holeCols) {
		for _, hole := range holeCols {
			card.Holes = append(card.Holes, scoring.Hole{Number: hole, Par: pars[hole], StrokeIndex: indexes[hole]})
		}
		sort.Slice(card.Holes, func(i, j int) bool { return card.Holes[i].Number < card.Holes[j].Number })
	}
	if len(card.Rows) == 0 && card.Holes == nil {
		return nil, fmt.Errorf("scorecard has no player rows")
	}
	return card, nil
}

// findHeader locates the first row whose label is "Name" or "Player" and maps its
// numeric columns (1–18) to hole numbers.
func findHeader(rows [][]string) (int, map[int]int, error) {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(row[0]))
		if label != "name" && label != "player" {
			continue
		}

		cols := make(map[int]int)
		seen := make(map[int]bool)
		for col := 1; col < len(row); col++ {
			hole, err := strconv.Atoi(strings.TrimSpace(row[col]))
			if err != nil || hole < 1 || hole > scoring.HoleCount || seen[hole] {
				continue
			}
			seen[hole] = true
			cols[col] = hole
		}
		if len(cols) == 0 {
			return 0, nil, fmt.Errorf("header row at line %d has no hole columns", i+1)
		}
		return i, cols, nil
	}
	return 0, nil, fmt.Errorf("no header row found (first column must be \"Name\")")
}

// numericRow reads a Par or SI row. Every hole column must hold a positive integer.
func numericRow(row []string, holeCols map[int]int) (map[int]int, error) {
	out := make(map[int]int, len(holeCols))
	for col, hole := range holeCols {
		if col >= len(row) {
			return nil, fmt.Errorf("missing value for hole %d", hole)
		}
		v, err := strconv.Atoi(strings.TrimSpace(row[col]))
		if err != nil {
			return nil, fmt.Errorf("non-numeric value %q for hole %d", row[col], hole)
		}
		if v <= 0 {
			return nil, fmt.Errorf("value %d for hole %d must be positive", v, hole)
		}
		out[hole] = v
	}
	return out, nil
}
