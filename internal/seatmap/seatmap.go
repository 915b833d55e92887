// Package seatmap derives a slot's full seating chart from its capacity.
// Seats are never persisted; the chart is regenerated on demand and seat IDs
// are validated against it.
package seatmap

import (
	"errors"
	"fmt"
	"strconv"
)

type Tier string

const (
	TierVIP     Tier = "vip"
	TierPremium Tier = "premium"
	TierRegular Tier = "regular"
)

var ErrInvalidCapacity = errors.New("invalid capacity")

// PriceBand maps a run of rows to a tier and a per-seat price. UpToRow is the
// exclusive upper 0-based row index; a negative value matches all remaining
// rows. Bands are evaluated in order.
type PriceBand struct {
	UpToRow int
	Tier    Tier
	Price   float64
}

// Layout is the data-driven seating configuration: row width plus the
// ordered price table.
type Layout struct {
	SeatsPerRow int
	Bands       []PriceBand
}

// DefaultLayout mirrors the venue default: 12 seats per row, rows A-C vip,
// D-F premium, the rest regular.
func DefaultLayout() Layout {
	return Layout{
		SeatsPerRow: 12,
		Bands: []PriceBand{
			{UpToRow: 3, Tier: TierVIP, Price: 500},
			{UpToRow: 6, Tier: TierPremium, Price: 350},
			{UpToRow: -1, Tier: TierRegular, Price: 250},
		},
	}
}

// Seat is one position in the derived chart. IsBooked is filled in by the
// caller from current occupancy.
type Seat struct {
	ID       string  `json:"id"` // row letter + number, e.g. "C7"
	Row      string  `json:"row"`
	Number   int     `json:"number"`
	Tier     Tier    `json:"tier"`
	Price    float64 `json:"price"`
	IsBooked bool    `json:"is_booked"`
}

func (l Layout) band(rowIdx int) PriceBand {
	for _, b := range l.Bands {
		if b.UpToRow < 0 || rowIdx < b.UpToRow {
			return b
		}
	}
	// no catch-all band configured; price the row like the last band
	return l.Bands[len(l.Bands)-1]
}

// Generate derives the ordered seat list for a capacity using the default
// layout. Same capacity always yields the same list.
func Generate(capacity int) ([]Seat, error) {
	return GenerateWithLayout(DefaultLayout(), capacity)
}

// GenerateWithLayout derives the ordered seat list for a capacity. The last
// row may be partial. Fails with ErrInvalidCapacity when capacity or the
// layout cannot produce a chart.
func GenerateWithLayout(l Layout, capacity int) ([]Seat, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if l.SeatsPerRow <= 0 || len(l.Bands) == 0 {
		return nil, fmt.Errorf("%w: layout has no rows or price bands", ErrInvalidCapacity)
	}

	seats := make([]Seat, 0, capacity)
	for i := 0; i < capacity; i++ {
		rowIdx := i / l.SeatsPerRow
		b := l.band(rowIdx)
		row := RowLabel(rowIdx)
		num := i%l.SeatsPerRow + 1
		seats = append(seats, Seat{
			ID:     fmt.Sprintf("%s%d", row, num),
			Row:    row,
			Number: num,
			Tier:   b.Tier,
			Price:  b.Price,
		})
	}
	return seats, nil
}

// RowLabel converts a 0-based row index to its letter label: A..Z, AA, AB...
func RowLabel(rowIdx int) string {
	label := ""
	n := rowIdx
	for {
		label = string(rune('A'+n%26)) + label
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return label
}

// rowIndex is the inverse of RowLabel; ok is false for malformed labels.
func rowIndex(label string) (int, bool) {
	if label == "" {
		return 0, false
	}
	idx := 0
	for _, r := range label {
		if r < 'A' || r > 'Z' {
			return 0, false
		}
		idx = idx*26 + int(r-'A') + 1
	}
	return idx - 1, true
}

// parseSeatID splits a seat ID like "C7" into its row label and seat number.
func parseSeatID(id string) (row string, num int, ok bool) {
	i := 0
	for i < len(id) && id[i] >= 'A' && id[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(id) {
		return "", 0, false
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil || n < 1 {
		return "", 0, false
	}
	return id[:i], n, true
}

// Locate resolves a seat ID to its 0-based row index within a chart of the
// given capacity; ok is false when the seat does not exist in that chart.
func (l Layout) Locate(capacity int, seatID string) (rowIdx int, ok bool) {
	if l.SeatsPerRow <= 0 {
		return 0, false
	}
	row, num, ok := parseSeatID(seatID)
	if !ok || num > l.SeatsPerRow {
		return 0, false
	}
	rowIdx, ok = rowIndex(row)
	if !ok {
		return 0, false
	}
	ordinal := rowIdx*l.SeatsPerRow + num // 1-based position in the chart
	if ordinal > capacity {
		return 0, false
	}
	return rowIdx, true
}

// PriceFor returns the tier price of a seat within a chart of the given
// capacity; ok is false when the seat does not exist.
func (l Layout) PriceFor(capacity int, seatID string) (float64, bool) {
	rowIdx, ok := l.Locate(capacity, seatID)
	if !ok {
		return 0, false
	}
	return l.band(rowIdx).Price, true
}

// TotalFor sums the tier prices of the requested seats. Seat IDs absent from
// the chart are returned in invalid; the total only covers seats that exist.
func (l Layout) TotalFor(capacity int, seatIDs []string) (total float64, invalid []string) {
	for _, id := range seatIDs {
		price, ok := l.PriceFor(capacity, id)
		if !ok {
			invalid = append(invalid, id)
			continue
		}
		total += price
	}
	return total, invalid
}

// Validate reports whether the layout can price every row it generates.
func (l Layout) Validate() error {
	if l.SeatsPerRow <= 0 {
		return fmt.Errorf("%w: seats per row must be positive", ErrInvalidCapacity)
	}
	if len(l.Bands) == 0 {
		return fmt.Errorf("%w: price table is empty", ErrInvalidCapacity)
	}
	for i, b := range l.Bands {
		if b.Price < 0 {
			return fmt.Errorf("%w: negative price in band %d", ErrInvalidCapacity, i)
		}
	}
	if last := l.Bands[len(l.Bands)-1]; last.UpToRow >= 0 {
		return fmt.Errorf("%w: price table must end with a catch-all band", ErrInvalidCapacity)
	}
	return nil
}
