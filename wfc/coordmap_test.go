package wfc

import "testing"

func TestCoordMapInsertGet(t *testing.T) {
	var m coordMap[string]

	m.insert(Coord{1, 2}, "a")
	m.insert(Coord{-3, 7}, "b")
	m.insert(Coord{1, -2}, "c")

	tests := []struct {
		at   Coord
		want string
		ok   bool
	}{
		{Coord{1, 2}, "a", true},
		{Coord{-3, 7}, "b", true},
		{Coord{1, -2}, "c", true},
		{Coord{0, 0}, "", false},
		{Coord{2, 1}, "", false},
	}

	for _, tc := range tests {
		got := m.get(tc.at)
		if tc.ok && (got == nil || *got != tc.want) {
			t.Errorf("get(%d,%d) = %v, want %q", tc.at.X, tc.at.Y, got, tc.want)
		}
		if !tc.ok && got != nil {
			t.Errorf("get(%d,%d) = %q, want absent", tc.at.X, tc.at.Y, *got)
		}
	}
}

func TestCoordMapOverwrite(t *testing.T) {
	var m coordMap[int]

	m.insert(Coord{0, 0}, 1)
	m.insert(Coord{0, 0}, 2)

	if m.len() != 1 {
		t.Fatalf("len = %d, want 1", m.len())
	}
	if got := m.get(Coord{0, 0}); got == nil || *got != 2 {
		t.Errorf("get = %v, want 2", got)
	}
}

func TestCoordMapRemove(t *testing.T) {
	var m coordMap[int]

	m.insert(Coord{0, 0}, 1)
	m.insert(Coord{1, 1}, 2)

	if !m.remove(Coord{0, 0}) {
		t.Error("remove of present key returned false")
	}
	if m.remove(Coord{0, 0}) {
		t.Error("remove of absent key returned true")
	}
	if m.len() != 1 {
		t.Errorf("len = %d, want 1", m.len())
	}
	if m.get(Coord{1, 1}) == nil {
		t.Error("unrelated key lost by remove")
	}
}

func TestCoordMapOrder(t *testing.T) {
	var m coordMap[int]

	// Insert in scrambled order; iteration must be lexicographic (X, Y).
	coords := []Coord{{5, 0}, {-1, 3}, {0, 0}, {5, -2}, {-1, -9}, {0, 7}}
	for i, at := range coords {
		m.insert(at, i)
	}

	want := []Coord{{-1, -9}, {-1, 3}, {0, 0}, {0, 7}, {5, -2}, {5, 0}}
	i := 0
	for at := range m.all() {
		if at != want[i] {
			t.Errorf("entry %d at (%d,%d), want (%d,%d)", i, at.X, at.Y, want[i].X, want[i].Y)
		}
		i++
	}
	if i != len(want) {
		t.Errorf("iterated %d entries, want %d", i, len(want))
	}
}

func TestCoordCompare(t *testing.T) {
	tests := []struct {
		a, b Coord
		want int
	}{
		{Coord{0, 0}, Coord{0, 0}, 0},
		{Coord{0, 0}, Coord{0, 1}, -1},
		{Coord{0, 1}, Coord{0, 0}, 1},
		{Coord{-1, 9}, Coord{0, -9}, -1},
		{Coord{1, -5}, Coord{0, 5}, 1},
	}

	for _, tc := range tests {
		if got := tc.a.compare(tc.b); got != tc.want {
			t.Errorf("(%d,%d).compare(%d,%d) = %d, want %d",
				tc.a.X, tc.a.Y, tc.b.X, tc.b.Y, got, tc.want)
		}
	}
}
