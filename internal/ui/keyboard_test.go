package ui

import (
	"testing"
)

func TestKeyboardMove_Wraps(t *testing.T) {
	tests := []struct {
		name       string
		start      keyboard
		dRow, dCol int
		want       keyboard
	}{
		{"left from first column", keyboard{0, 0}, 0, -1, keyboard{0, 9}},
		{"right from last column", keyboard{1, 9}, 0, 1, keyboard{1, 0}},
		{"up from first row", keyboard{0, 0}, -1, 0, keyboard{4, 0}},
		{"down from last row", keyboard{4, 2}, 1, 0, keyboard{0, 2}},
		{"down clamps column", keyboard{2, 8}, 1, 0, keyboard{3, 6}},
		{"down into special row clamps", keyboard{3, 6}, 1, 0, keyboard{4, 2}},
		{"left wraps special row", keyboard{4, 0}, 0, -1, keyboard{4, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.move(tt.dRow, tt.dCol)
			if got != tt.want {
				t.Fatalf("move(%d,%d) from %+v = %+v, want %+v", tt.dRow, tt.dCol, tt.start, got, tt.want)
			}
		})
	}
}

func TestKeyboardMove_StaysInRange(t *testing.T) {
	k := keyboard{}
	steps := [][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}, {1, 1}, {-1, -1}}
	for i := 0; i < 500; i++ {
		s := steps[i%len(steps)]
		k = k.move(s[0]*(i%7), s[1]*(i%11))
		if k.row < 0 || k.row >= len(keyboardLayout) {
			t.Fatalf("row %d out of range after %d moves", k.row, i)
		}
		if k.col < 0 || k.col >= len(keyboardLayout[k.row]) {
			t.Fatalf("col %d out of range for row %d after %d moves", k.col, k.row, i)
		}
	}
}

func TestKeyAt(t *testing.T) {
	tests := []struct {
		name   string
		x, y   int
		want   string
		wantOK bool
	}{
		{"first key", 0, 0, "1", true},
		{"inside first key", 2, 0, "1", true},
		{"gap between keys", 3, 0, "", false},
		{"second key", 4, 0, "2", true},
		{"gap line", 0, 1, "", false},
		{"qwerty row", 0, 2, "Q", true},
		{"backspace", 5, 8, keyBackspace, true},
		{"space", 12, 8, keySpace, true},
		{"search", 29, 8, keySearch, true},
		{"gap before search", 28, 8, "", false},
		{"past the end", 60, 8, "", false},
		{"below", 0, 10, "", false},
		{"negative", -1, 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, ok := keyAt(tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("keyAt(%d,%d) ok = %v, want %v", tt.x, tt.y, ok, tt.wantOK)
			}
			if ok && keyboardLayout[row][col] != tt.want {
				t.Fatalf("keyAt(%d,%d) = %s, want %s", tt.x, tt.y, keyboardLayout[row][col], tt.want)
			}
		})
	}
}
