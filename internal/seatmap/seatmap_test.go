package seatmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeatCount(t *testing.T) {
	for _, capacity := range []int{1, 11, 12, 13, 48, 96, 100, 313} {
		seats, err := Generate(capacity)
		require.NoError(t, err, "capacity %d", capacity)
		assert.Len(t, seats, capacity)
	}
}

func TestGenerateInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -500} {
		_, err := Generate(capacity)
		assert.ErrorIs(t, err, ErrInvalidCapacity, "capacity %d", capacity)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	first, err := Generate(100)
	require.NoError(t, err)
	second, err := Generate(100)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGeneratePartialLastRow(t *testing.T) {
	seats, err := Generate(30)
	require.NoError(t, err)

	last := seats[len(seats)-1]
	assert.Equal(t, "C6", last.ID)
	assert.Equal(t, "C", last.Row)
	assert.Equal(t, 6, last.Number)

	// no seat past the partial row
	_, ok := DefaultLayout().Locate(30, "C7")
	assert.False(t, ok)
}

func TestGenerateTierBands(t *testing.T) {
	seats, err := Generate(96) // rows A through H, all full
	require.NoError(t, err)

	byID := make(map[string]Seat, len(seats))
	for _, s := range seats {
		byID[s.ID] = s
	}

	cases := []struct {
		id    string
		tier  Tier
		price float64
	}{
		{"A1", TierVIP, 500},
		{"C12", TierVIP, 500},
		{"D1", TierPremium, 350},
		{"F12", TierPremium, 350},
		{"G1", TierRegular, 250},
		{"H12", TierRegular, 250},
	}
	for _, tc := range cases {
		seat, ok := byID[tc.id]
		require.True(t, ok, "seat %s missing", tc.id)
		assert.Equal(t, tc.tier, seat.Tier, "seat %s", tc.id)
		assert.Equal(t, tc.price, seat.Price, "seat %s", tc.id)
	}
}

func TestGenerateSeatIDsFollowRowAndNumber(t *testing.T) {
	seats, err := Generate(26)
	require.NoError(t, err)

	for i, s := range seats {
		assert.Equal(t, fmt.Sprintf("%s%d", s.Row, s.Number), s.ID)
		assert.Equal(t, RowLabel(i/12), s.Row)
		assert.Equal(t, i%12+1, s.Number)
	}
}

func TestRowLabel(t *testing.T) {
	cases := map[int]string{
		0:  "A",
		1:  "B",
		25: "Z",
		26: "AA",
		27: "AB",
		51: "AZ",
		52: "BA",
	}
	for idx, want := range cases {
		assert.Equal(t, want, RowLabel(idx), "row index %d", idx)
	}
}

func TestLocate(t *testing.T) {
	l := DefaultLayout()

	valid := []string{"A1", "A12", "B1", "D7", "H4"}
	for _, id := range valid {
		_, ok := l.Locate(96, id)
		assert.True(t, ok, "seat %s", id)
	}

	invalid := []string{"", "A", "12", "A0", "A13", "I1", "a1", "7C", "A1B"}
	for _, id := range invalid {
		_, ok := l.Locate(96, id)
		assert.False(t, ok, "seat %s", id)
	}
}

func TestPriceFor(t *testing.T) {
	l := DefaultLayout()

	price, ok := l.PriceFor(96, "B3")
	require.True(t, ok)
	assert.Equal(t, 500.0, price)

	_, ok = l.PriceFor(12, "B3") // only row A exists at capacity 12
	assert.False(t, ok)
}

func TestTotalFor(t *testing.T) {
	l := DefaultLayout()

	total, invalid := l.TotalFor(100, []string{"A1", "D1", "G1"})
	assert.Empty(t, invalid)
	assert.Equal(t, 1100.0, total)

	total, invalid = l.TotalFor(100, []string{"A1", "Q99", "X0"})
	assert.Equal(t, []string{"Q99", "X0"}, invalid)
	assert.Equal(t, 500.0, total)
}

func TestCustomLayout(t *testing.T) {
	l := Layout{
		SeatsPerRow: 4,
		Bands: []PriceBand{
			{UpToRow: 1, Tier: TierVIP, Price: 80},
			{UpToRow: -1, Tier: TierRegular, Price: 20},
		},
	}

	seats, err := GenerateWithLayout(l, 10)
	require.NoError(t, err)
	require.Len(t, seats, 10)

	assert.Equal(t, TierVIP, seats[3].Tier)     // A4
	assert.Equal(t, TierRegular, seats[4].Tier) // B1
	assert.Equal(t, "C2", seats[9].ID)

	total, invalid := l.TotalFor(10, []string{"A1", "B1"})
	assert.Empty(t, invalid)
	assert.Equal(t, 100.0, total)
}

func TestLayoutValidate(t *testing.T) {
	assert.NoError(t, DefaultLayout().Validate())

	bad := []Layout{
		{SeatsPerRow: 0, Bands: DefaultLayout().Bands},
		{SeatsPerRow: 12},
		{SeatsPerRow: 12, Bands: []PriceBand{{UpToRow: 3, Tier: TierVIP, Price: 500}}}, // no catch-all
		{SeatsPerRow: 12, Bands: []PriceBand{{UpToRow: -1, Tier: TierRegular, Price: -1}}},
	}
	for i, l := range bad {
		assert.ErrorIs(t, l.Validate(), ErrInvalidCapacity, "layout %d", i)
	}
}
