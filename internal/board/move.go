package board

import "fmt"

// MaxBoardSize is the largest supported grid edge, chosen so a board fits in
// MaxCells/wordBits Planes words (see bitboard.go).
const MaxBoardSize = 32

// MaxCells is the largest number of cells any supported board can hold.
const MaxCells = MaxBoardSize * MaxBoardSize

// Move is a coordinate pair naming a cell to place a stone on. Unlike the
// packed encodings used for chess moves, Caro moves carry no piece or
// capture information, so a plain (X, Y) pair is both the simplest and the
// fastest representation to generate and compare.
type Move struct {
	X, Y int
}

// NoMove is the sentinel for "no move available", e.g. an empty PV slot or
// a resignation.
var NoMove = Move{X: -1, Y: -1}

// Valid reports whether m names a cell inside a board of the given size.
func (m Move) Valid(size int) bool {
	return m.X >= 0 && m.Y >= 0 && m.X < size && m.Y < size
}

// String renders the move in algebraic-ish form, column letter(s) then
// 1-based row, e.g. "h8".
func (m Move) String() string {
	if m == NoMove {
		return "-"
	}
	return fmt.Sprintf("%s%d", columnLabel(m.X), m.Y+1)
}

func columnLabel(x int) string {
	if x < 26 {
		return string(rune('a' + x))
	}
	return fmt.Sprintf("[%d]", x)
}

// cellIndex maps a coordinate to its row-major bit index within an n*n
// board, the same addressing scheme bitboard.go and zobrist.go use.
func cellIndex(x, y, n int) int {
	return y*n + x
}

// cellCoords is the inverse of cellIndex.
func cellCoords(idx, n int) Move {
	return Move{X: idx % n, Y: idx / n}
}

// MoveList is a fixed-capacity move buffer sized for the largest supported
// board, avoiding per-node allocation during move generation and ordering.
type MoveList struct {
	moves [MaxCells]Move
	count int
}

// NewMoveList returns an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves currently in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set overwrites the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap exchanges the moves at i and j, used by in-place selection sort
// during move ordering.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list without releasing its backing array.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains reports whether m is already present in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice exposes the populated portion of the list as a slice. The slice
// aliases the list's backing array and is only valid until the next Add.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
