package board

import "github.com/cespare/xxhash/v2"

// The board's square grid has 8 symmetries (the dihedral group D4: the
// identity, three rotations, and their four mirrored counterparts).
// Canonicalizing a position to the image with the smallest hash digest of
// its 8 images lets the opening book treat rotated/reflected openings as the
// same book entry instead of storing each one separately.

// transform maps (x, y) on an n*n board to its image under one of the 8
// D4 symmetries, numbered 0-7: 0 is identity, 1-3 are the 90/180/270
// rotations, 4-7 are those same rotations composed with a horizontal flip.
func transform(x, y, n, sym int) (int, int) {
	if sym >= 4 {
		x = n - 1 - x
		sym -= 4
	}
	for i := 0; i < sym; i++ {
		x, y = y, n-1-x
	}
	return x, y
}

// CanonicalKey computes a stable hash of the board's position that is
// identical across all 8 D4 symmetric images, by hashing each image's
// occupancy bytes and keeping the smallest digest. Used as the opening
// book's lookup key.
func CanonicalKey(b *Board) uint64 {
	key, _ := CanonicalKeyAndSym(b)
	return key
}

// CanonicalKeyAndSym is CanonicalKey plus the winning symmetry index, so
// a caller that stores book moves in canonical orientation can map a
// stored move back to the board's actual orientation via CanonicalMove.
func CanonicalKeyAndSym(b *Board) (uint64, int) {
	best := uint64(0)
	bestSym := 0
	first := true
	buf := make([]byte, b.size*b.size)

	for sym := 0; sym < 8; sym++ {
		for y := 0; y < b.size; y++ {
			for x := 0; x < b.size; x++ {
				tx, ty := transform(x, y, b.size, sym)
				buf[cellIndex(tx, ty, b.size)] = byte(b.PlayerAt(x, y))
			}
		}
		h := xxhash.Sum64(buf)
		if first || h < best {
			best = h
			bestSym = sym
			first = false
		}
	}
	return best, bestSym
}

// CanonicalMove transforms m from the board's real orientation into the
// canonical orientation identified by sym, for storing into the book.
func CanonicalMove(m Move, n, sym int) Move {
	x, y := transform(m.X, m.Y, n, sym)
	return Move{X: x, Y: y}
}

// RealMove is CanonicalMove's inverse: it maps a move stored in canonical
// orientation sym back to the board's actual orientation.
func RealMove(m Move, n, sym int) Move {
	flipped := sym >= 4
	k := sym
	if flipped {
		k -= 4
	}
	x, y := m.X, m.Y
	for i := 0; i < (4-k)%4; i++ {
		x, y = y, n-1-x
	}
	if flipped {
		x = n - 1 - x
	}
	return Move{X: x, Y: y}
}
