package board

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Board mutators. Wrapped with fmt.Errorf at
// the call site so callers can match with errors.Is while still getting a
// move-specific message.
var (
	ErrOutOfBounds    = errors.New("board: cell out of bounds")
	ErrCellOccupied   = errors.New("board: cell already occupied")
	ErrInvalidSize    = errors.New("board: size out of supported range")
)

// MinBoardSize is the smallest board this package will construct; anything
// below it can't hold a five-in-a-row line with room to maneuver.
const MinBoardSize = 5

// Board is an immutable snapshot of a Caro position: a square grid, the two
// players' occupied cells, and the incrementally maintained Zobrist hash.
// Mutation always returns a new Board; the search engine calls Place at
// every node and keeps no separate mutable representation.
type Board struct {
	size    int
	planes  [2]Planes
	toMove  Player
	hash    uint64
	moveNum int
}

// New returns an empty board of the given size. size must be in
// [MinBoardSize, MaxBoardSize].
func New(size int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Board{
		size:   size,
		planes: [2]Planes{NewPlanes(size), NewPlanes(size)},
		toMove: First,
	}, nil
}

// Size returns the board's edge length.
func (b *Board) Size() int { return b.size }

// ToMove returns the player to move next.
func (b *Board) ToMove() Player { return b.toMove }

// MoveNumber returns how many stones have been placed so far.
func (b *Board) MoveNumber() int { return b.moveNum }

// Hash returns the board's Zobrist hash.
func (b *Board) Hash() uint64 { return b.hash }

// Bits returns the occupied-cell plane for the given player. The returned
// Planes is shared with the Board and must not be mutated; callers that
// need a mutable copy should call Clone on the result.
func (b *Board) Bits(p Player) Planes {
	return b.planes[p.Index()]
}

// Occupied returns the union of both players' occupied cells.
func (b *Board) Occupied() Planes {
	return b.planes[0].Or(b.planes[1])
}

// PlayerAt reports which player, if any, occupies (x, y).
func (b *Board) PlayerAt(x, y int) Player {
	if b.planes[0].Test(x, y) {
		return First
	}
	if b.planes[1].Test(x, y) {
		return Second
	}
	return Empty
}

// InBounds reports whether (x, y) names a cell on this board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size && y < b.size
}

// Place returns a new Board with the side to move's stone placed at m,
// turn alternated. It does not enforce win/forbidden-move rules; those are
// the responsibility of the caller (engine move generation always filters
// to Valid, empty cells before calling Place).
func (b *Board) Place(m Move) (*Board, error) {
	if !b.InBounds(m.X, m.Y) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, m)
	}
	if b.PlayerAt(m.X, m.Y) != Empty {
		return nil, fmt.Errorf("%w: %s", ErrCellOccupied, m)
	}

	next := &Board{
		size:    b.size,
		planes:  [2]Planes{b.planes[0].Clone(), b.planes[1].Clone()},
		toMove:  b.toMove.Opponent(),
		hash:    b.hash,
		moveNum: b.moveNum + 1,
	}
	next.planes[b.toMove.Index()].Set(m.X, m.Y)
	idx := cellIndex(m.X, m.Y, b.size)
	next.hash ^= ZobristCell(idx, b.toMove)
	next.hash ^= ZobristSideToMove()
	return next, nil
}

// Moves returns every empty cell as a candidate move, in row-major order.
// The engine's move picker uses this exhaustive list at every node; no
// move generator restricts it to cells near existing stones.
func (b *Board) Moves() *MoveList {
	ml := NewMoveList()
	occ := b.Occupied()
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if !occ.Test(x, y) {
				ml.Add(Move{X: x, Y: y})
			}
		}
	}
	return ml
}

// String renders the board as a grid of '.', 'X' (First) and 'O' (Second).
func (b *Board) String() string {
	out := make([]byte, 0, b.size*(b.size*2+1))
	for y := b.size - 1; y >= 0; y-- {
		for x := 0; x < b.size; x++ {
			switch b.PlayerAt(x, y) {
			case First:
				out = append(out, 'X', ' ')
			case Second:
				out = append(out, 'O', ' ')
			default:
				out = append(out, '.', ' ')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
