package engine

import (
	"sync"
	"sync/atomic"

	"github.com/hailam/caroengine/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLowerBound
	TTUpperBound
)

// TTEntry is one slot of a cluster. Kept small and flat so a cluster of
// clusterSize entries fits a cache line.
type TTEntry struct {
	Key       uint32
	BestMove  board.Move
	Score     int16
	StaticEval int16
	Depth     int8
	Flag      TTFlag
	Age       uint8
}

func (e TTEntry) empty() bool { return e.Depth == 0 && e.Key == 0 }

// clusterSize is the number of entries sharing one bucket.
const clusterSize = 3

type cluster [clusterSize]TTEntry

// ProbeResult is the three-way outcome of a TT probe: the stored score can
// be trusted outright (Usable), an entry exists but its bound/depth can't
// resolve the current window (Refer, still useful as a move-ordering hint),
// or nothing is stored (Miss).
type ProbeResult int

const (
	Miss ProbeResult = iota
	Refer
	Usable
)

// shard owns one slice of clusters plus its own lock. The mutex gives the
// same correctness as a fully lock-free cluster-sized atomic write, at the
// cost of higher contention; this implementation takes the mutex, since
// Go has no portable 32-byte atomic store and the search is not
// probe-bound enough for shard contention to matter in practice.
type shard struct {
	mu       sync.Mutex
	clusters []cluster
}

// TranspositionTable is an array of shards, each independently locked, so
// concurrent Lazy SMP workers contend only when they land in the same
// shard. Shard index comes from the high bits of the key, bucket index
// from the low bits.
type TranspositionTable struct {
	shards     []shard
	shardMask  uint64
	bucketMask uint64
	age        atomic.Uint32

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewTranspositionTable allocates a table sized in megabytes, split into
// numShards shards (rounded to a power of 2, default 16).
func NewTranspositionTable(sizeMB, numShards int) *TranspositionTable {
	if numShards <= 0 {
		numShards = 16
	}
	numShards = int(roundDownToPowerOf2(uint64(numShards)))

	totalBytes := uint64(sizeMB) * 1024 * 1024
	clusterBytes := uint64(clusterSize) * 16 // approximate flat entry size
	totalClusters := roundDownToPowerOf2(totalBytes / clusterBytes)
	if totalClusters < uint64(numShards) {
		totalClusters = uint64(numShards)
	}
	clustersPerShard := totalClusters / uint64(numShards)

	tt := &TranspositionTable{
		shards:     make([]shard, numShards),
		shardMask:  uint64(numShards) - 1,
		bucketMask: clustersPerShard - 1,
	}
	for i := range tt.shards {
		tt.shards[i].clusters = make([]cluster, clustersPerShard)
	}
	return tt
}

func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

func (tt *TranspositionTable) locate(key uint64) (*shard, uint64) {
	s := &tt.shards[(key>>32)&tt.shardMask]
	bucket := key & tt.bucketMask
	return s, bucket
}

// Probe looks up key and classifies the result against the requested
// search window.
func (tt *TranspositionTable) Probe(key uint64, depth, alpha, beta, ply int) (ProbeResult, TTEntry) {
	tt.probes.Add(1)
	s, bucket := tt.locate(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	cl := &s.clusters[bucket]
	for i := range cl {
		e := cl[i]
		if e.empty() || e.Key != uint32(key>>32) {
			continue
		}
		tt.hits.Add(1)
		if int(e.Depth) < depth {
			return Refer, e
		}
		score := AdjustScoreFromTT(int(e.Score), ply)
		switch e.Flag {
		case TTExact:
			return Usable, withScore(e, score)
		case TTLowerBound:
			if score >= beta {
				return Usable, withScore(e, score)
			}
		case TTUpperBound:
			if score <= alpha {
				return Usable, withScore(e, score)
			}
		}
		return Refer, e
	}
	return Miss, TTEntry{BestMove: board.NoMove}
}

func withScore(e TTEntry, score int) TTEntry {
	e.Score = int16(score)
	return e
}

// Store writes an entry into its cluster, replacing the slot that
// minimizes depth - 2*(generation - entry_generation), always preferring
// an empty slot first. Helper workers (workerIndex >= 1) additionally
// skip shallow entries and skip anything that isn't an exact bound, so
// they cannot pollute the table the master relies on.
func (tt *TranspositionTable) Store(key uint64, depth, score int, flag TTFlag, bestMove board.Move, staticEval, ply, workerIndex, rootDepth int) {
	if workerIndex >= 1 {
		if depth < rootDepth/2 || flag != TTExact {
			return
		}
	}

	s, bucket := tt.locate(key)
	gen := uint8(tt.age.Load())

	s.mu.Lock()
	defer s.mu.Unlock()

	cl := &s.clusters[bucket]
	worst := 0
	worstScore := 1 << 30
	for i := range cl {
		e := cl[i]
		if e.empty() {
			worst = i
			break
		}
		if e.Key == uint32(key>>32) {
			worst = i
			break
		}
		replScore := int(e.Depth) - 2*int(gen-e.Age)
		if replScore < worstScore {
			worstScore = replScore
			worst = i
		}
	}

	cl[worst] = TTEntry{
		Key:        uint32(key >> 32),
		BestMove:   bestMove,
		Score:      int16(AdjustScoreToTT(score, ply)),
		StaticEval: int16(staticEval),
		Depth:      int8(depth),
		Flag:       flag,
		Age:        gen,
	}
}

// NewSearch increments the generation counter, called once per root call
// to the search controller.
func (tt *TranspositionTable) NewSearch() {
	tt.age.Add(1)
}

// Clear wipes every shard, used on explicit new-game reset.
func (tt *TranspositionTable) Clear() {
	for i := range tt.shards {
		s := &tt.shards[i]
		s.mu.Lock()
		for j := range s.clusters {
			s.clusters[j] = cluster{}
		}
		s.mu.Unlock()
	}
	tt.age.Store(0)
	tt.hits.Store(0)
	tt.probes.Store(0)
}

// HashFull samples the first shard and estimates the permille of the
// table currently occupied at the live generation.
func (tt *TranspositionTable) HashFull() int {
	if len(tt.shards) == 0 {
		return 0
	}
	s := &tt.shards[0]
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := uint8(tt.age.Load())
	sample := len(s.clusters)
	if sample > 1000/clusterSize {
		sample = 1000 / clusterSize
	}
	if sample == 0 {
		return 0
	}
	used := 0
	total := 0
	for i := 0; i < sample; i++ {
		for _, e := range s.clusters[i] {
			total++
			if !e.empty() && e.Age == gen {
				used++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return used * 1000 / total
}

// HitRate returns the probe hit rate as a fraction in [0, 1]; telemetry
// formats it as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	p := tt.probes.Load()
	if p == 0 {
		return 0
	}
	return float64(tt.hits.Load()) / float64(p)
}

// AdjustScoreFromTT converts a stored mate-distance-from-storage-ply score
// back into a mate-distance-from-root score for the current ply.
func AdjustScoreFromTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT is the inverse of AdjustScoreFromTT, applied before a
// mate score is written so that entries are ply-independent on disk.
func AdjustScoreToTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
