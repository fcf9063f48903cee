package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Special keys of the on-screen keyboard.
const (
	keyBackspace = "BACKSPACE"
	keySpace     = "SPACE"
	keySearch    = "SEARCH"
)

var keyboardLayout = [][]string{
	{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
	{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"},
	{"A", "S", "D", "F", "G", "H", "J", "K", "L"},
	{"Z", "X", "C", "V", "B", "N", "M"},
	{keyBackspace, keySpace, keySearch},
}

// keyboard is the focus cursor over keyboardLayout.
type keyboard struct {
	row, col int
}

// move shifts focus with wrap-around. Moving between rows keeps the column
// when the new row is long enough and clamps it otherwise.
func (k keyboard) move(dRow, dCol int) keyboard {
	rows := len(keyboardLayout)
	if dRow != 0 {
		k.row = ((k.row+dRow)%rows + rows) % rows
		if last := len(keyboardLayout[k.row]) - 1; k.col > last {
			k.col = last
		}
	}
	if dCol != 0 {
		cols := len(keyboardLayout[k.row])
		k.col = ((k.col+dCol)%cols + cols) % cols
	}
	return k
}

func (k keyboard) focused() string {
	return keyboardLayout[k.row][k.col]
}

func keyLabel(key string) string {
	if key == keySpace {
		return "SPACE (is big)"
	}
	return key
}

// cellWidth is the rendered width of one key, padding included.
func cellWidth(key string) int {
	return runewidth.StringWidth(keyLabel(key)) + 2
}

// keyAt maps a position relative to the keyboard's top-left corner onto a
// key. Rows are drawn on even lines with one space between keys.
func keyAt(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 || y%2 == 1 {
		return 0, 0, false
	}
	row = y / 2
	if row >= len(keyboardLayout) {
		return 0, 0, false
	}
	start := 0
	for c, key := range keyboardLayout[row] {
		end := start + cellWidth(key)
		if x >= start && x < end {
			return row, c, true
		}
		start = end + 1
	}
	return 0, 0, false
}

func (k keyboard) view(styles Styles, enabled bool) string {
	var b strings.Builder
	for r, row := range keyboardLayout {
		if r > 0 {
			b.WriteString("\n\n")
		}
		for c, key := range row {
			if c > 0 {
				b.WriteString(" ")
			}
			style := styles.Key
			if enabled && r == k.row && c == k.col {
				style = styles.Selected.Padding(0, 1)
			}
			b.WriteString(style.Render(keyLabel(key)))
		}
	}
	return b.String()
}
