package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinema-booking-cli/model"
)

func labels(seats []*model.Seat) []string {
	out := make([]string, 0, len(seats))
	for _, s := range seats {
		out = append(out, s.Label())
	}
	return out
}

func cols(seats []*model.Seat) []int {
	out := make([]int, 0, len(seats))
	for _, s := range seats {
		out = append(out, s.Col)
	}
	return out
}

func TestAllocateDefault_SingleRowMiddleOut(t *testing.T) {
	t.Parallel()
	h := model.NewHall("", "Movie", 1, 3)

	seats, err := AllocateDefault(h, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"A02", "A01"}, labels(seats))
}

func TestAllocateDefault_SingleSeatHall(t *testing.T) {
	t.Parallel()
	h := model.NewHall("", "Movie", 1, 1)

	seats, err := AllocateDefault(h, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A01"}, labels(seats))

	_, err = AllocateDefault(h, 2)
	assert.True(t, IsInsufficientCapacity(err))
}

func TestAllocateDefault_FarthestRowFirst(t *testing.T) {
	t.Parallel()
	h := model.NewHall("", "Movie", 2, 2)

	seats, err := AllocateDefault(h, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"A02", "A01", "B02"}, labels(seats))
	assert.Equal(t, 1, seats[0].Row, "row A is the last array row")
	assert.Equal(t, 0, seats[2].Row)
}

func TestAllocateDefault_Deterministic(t *testing.T) {
	t.Parallel()
	first, err := AllocateDefault(model.NewHall("", "Movie", 3, 5), 7)
	require.NoError(t, err)
	second, err := AllocateDefault(model.NewHall("", "Movie", 3, 5), 7)
	require.NoError(t, err)

	want := []string{"A03", "A02", "A04", "A01", "A05", "B03", "B02"}
	assert.Equal(t, want, labels(first))
	assert.Equal(t, labels(first), labels(second))
}

func TestAllocateDefault_DoesNotMutate(t *testing.T) {
	t.Parallel()
	h := model.NewHall("", "Movie", 3, 4)

	seats, err := AllocateDefault(h, 5)
	require.NoError(t, err)
	assert.Len(t, seats, 5)
	for _, s := range seats {
		assert.True(t, s.Available())
	}
	assert.Equal(t, 12, h.AvailableSeatCount())
	assert.Empty(t, h.Orders())
}

func TestAllocateDefault_SkipsBookedSeats(t *testing.T) {
	t.Parallel()
	h := model.NewHall("", "Movie", 2, 3)
	Confirm(h, model.Order{ID: "first"}, []*model.Seat{h.Seat(1, 1)})

	seats, err := AllocateDefault(h, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"A01", "A03", "B02"}, labels(seats))
}

func TestAllocateDefault_NonPositiveTickets(t *testing.T) {
	t.Parallel()
	h := model.NewHall("", "Movie", 5, 5)

	for _, n := range []int{0, -3} {
		_, err := AllocateDefault(h, n)
		assert.True(t, IsInvalidRequest(err), "tickets=%d: %v", n, err)
	}
}

func TestAllocateDefault_MoreThanAvailable(t *testing.T) {
	t.Parallel()
	h := model.NewHall("", "Movie", 1, 3)
	Confirm(h, model.Order{ID: "full"}, h.Row(0))
	require.Equal(t, 0, h.AvailableSeatCount())

	_, err := AllocateDefault(h, 1)
	assert.True(t, IsInsufficientCapacity(err))
	assert.Equal(t, 0, h.AvailableSeatCount())
	assert.Len(t, h.Orders(), 1)
}

func TestPickFromRow_CenterOutCoversRow(t *testing.T) {
	t.Parallel()
	cases := []struct {
		n    int
		want []int
	}{
		{1, []int{0}},
		{2, []int{1, 0}},
		{4, []int{2, 1, 3, 0}},
		{5, []int{2, 1, 3, 0, 4}},
		{6, []int{3, 2, 4, 1, 5, 0}},
	}
	for _, tc := range cases {
		h := model.NewHall("", "Movie", 1, tc.n)
		picked := PickFromRow(h.Row(0), tc.n)
		assert.Equal(t, tc.want, cols(picked), "n=%d", tc.n)

		seen := map[int]bool{}
		for _, c := range cols(picked) {
			assert.False(t, seen[c], "n=%d picked column %d twice", tc.n, c)
			seen[c] = true
		}
	}
}

func TestPickFromRow_SkipsBookedAndStopsAtMax(t *testing.T) {
	t.Parallel()
	h := model.NewHall("", "Movie", 1, 5)
	h.Seat(0, 2).Book("x")
	h.Seat(0, 1).Book("x")

	assert.Equal(t, []int{3, 0, 4}, cols(PickFromRow(h.Row(0), 5)))
	assert.Equal(t, []int{3, 0}, cols(PickFromRow(h.Row(0), 2)))
	assert.Empty(t, PickFromRow(h.Row(0), 0))
	assert.Empty(t, PickFromRow(nil, 3))
}

func TestAllocateFromPosition_FillsRightThenSpillsTowardScreen(t *testing.T) {
	t.Parallel()
	h := model.NewHall("", "Movie", 3, 5)

	seats, err := AllocateFromPosition(h, 4, 'B', 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"B04", "B05", "C03", "C02"}, labels(seats))
	for _, s := range seats {
		assert.NotEqual(t, 2, s.Row, "must never spill into rows farther from the screen")
	}
}

func TestAllocateFromPosition_SkipsBookedSeats(t *testing.T) {
	t.Parallel()
	h := model.NewHall("", "Movie", 3, 5)
	Confirm(h, model.Order{ID: "first"}, []*model.Seat{h.Seat(1, 3)})

	seats, err := AllocateFromPosition(h, 2, 'b', 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"B03", "B05"}, labels(seats))
}

func TestAllocateFromPosition_NoRowsLeftTowardScreen(t *testing.T) {
	t.Parallel()
	h := model.NewHall("", "Movie", 2, 2)

	// Row B is nearest the screen; the farther row A must not be used.
	_, err := AllocateFromPosition(h, 3, 'B', 1)
	assert.True(t, IsInsufficientCapacity(err))
	assert.Equal(t, 4, h.AvailableSeatCount())
}

func TestAllocateFromPosition_OutOfBounds(t *testing.T) {
	t.Parallel()
	h := model.NewHall("", "Movie", 3, 4)

	for _, tc := range []struct {
		row  rune
		seat int
	}{
		{'Z', 1},
		{'A', 0},
		{'A', 999},
		{'D', 1},
	} {
		_, err := AllocateFromPosition(h, 1, tc.row, tc.seat)
		assert.True(t, IsInvalidRequest(err), "%c%d: %v", tc.row, tc.seat, err)
	}
}

func TestAllocateFromPosition_TooManyTickets(t *testing.T) {
	t.Parallel()
	h := model.NewHall("", "Movie", 1, 3)
	h.Seat(0, 0).Book("x")
	h.Seat(0, 1).Book("x")

	_, err := AllocateFromPosition(h, 2, 'A', 1)
	assert.True(t, IsInsufficientCapacity(err))

	_, err = AllocateFromPosition(h, 0, 'A', 1)
	assert.True(t, IsInvalidRequest(err))
}
