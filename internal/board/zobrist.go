package board

// Zobrist hash keys for position hashing, generated with a fixed-seed PRNG
// so keys are reproducible across runs and across processes sharing a
// persisted transposition table or opening book.
var (
	zobristCell      [MaxCells][2]uint64 // [cellIndex][player.Index()]
	zobristSideToMove uint64
)

func init() {
	initZobrist()
}

// prng is a small xorshift64* generator. It exists purely so the Zobrist
// table is deterministic; crypto-grade randomness is not needed and would
// only slow init() down.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for i := 0; i < MaxCells; i++ {
		zobristCell[i][0] = rng.next()
		zobristCell[i][1] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// ZobristCell returns the Zobrist key for a stone of the given player at
// the given cell index (see cellIndex).
func ZobristCell(idx int, p Player) uint64 {
	return zobristCell[idx][p.Index()]
}

// ZobristSideToMove returns the key XORed in when it is Second's turn.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}
