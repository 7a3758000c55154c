// Package book implements the Caro engine's opening book: a badger-backed
// key/value store keyed by canonical (symmetry-collapsed) position hash,
// with zstd-compressed entry blobs, able to hold millions of openings
// on disk instead of an in-memory map.
package book

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sort"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"

	"github.com/hailam/caroengine/internal/board"
)

// BookEntry is one candidate reply at a book position.
type BookEntry struct {
	Move   board.Move
	Weight uint16
}

// Book wraps a badger key/value database. Positions are keyed by their
// CanonicalKey (an 8-byte big-endian uint64); values are a zstd-compressed,
// length-prefixed sequence of BookEntry records stored in canonical
// orientation, so one entry covers all 8 rotations/reflections of an
// opening.
type Book struct {
	db      *badger.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Open opens (or creates) a book database rooted at dir.
func Open(dir string) (*Book, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a transient book database, useful for tests; its
// contents are lost when it is closed.
func OpenInMemory() (*Book, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Book, error) {
	opts = opts.WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("book: open: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("book: zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		enc.Close()
		return nil, fmt.Errorf("book: zstd decoder: %w", err)
	}
	return &Book{db: db, encoder: enc, decoder: dec}, nil
}

// Close releases the database and the zstd codecs.
func (b *Book) Close() error {
	b.decoder.Close()
	b.encoder.Close()
	return b.db.Close()
}

func keyBytes(key uint64) []byte {
	var kb [8]byte
	binary.BigEndian.PutUint64(kb[:], key)
	return kb[:]
}

// Put stores entries (already in canonical orientation) for the position
// identified by key, replacing any existing entries.
func (b *Book) Put(key uint64, entries []BookEntry) error {
	raw := encodeEntries(entries)
	blob := b.encoder.EncodeAll(raw, nil)
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyBytes(key), blob)
	})
}

// PutPosition is a convenience wrapper that canonicalizes pos and moves
// before storing, so callers can build a book directly from played games.
func (b *Book) PutPosition(pos *board.Board, entries []BookEntry) error {
	key, sym := board.CanonicalKeyAndSym(pos)
	canon := make([]BookEntry, len(entries))
	for i, e := range entries {
		canon[i] = BookEntry{Move: board.CanonicalMove(e.Move, pos.Size(), sym), Weight: e.Weight}
	}
	return b.Put(key, canon)
}

// Lookup implements engine.BookSource: it looks up b's canonical key,
// decompresses and decodes its entries if present, and returns a single
// move chosen by weighted random selection, mapped back to the board's
// real orientation. currentPly past maxPly always misses, since book
// coverage thins out fast once a game leaves its prepared lines.
func (b *Book) Lookup(pos *board.Board, side board.Player, maxPly, currentPly int) (board.Move, bool) {
	if b == nil || currentPly > maxPly {
		return board.NoMove, false
	}

	key, sym := board.CanonicalKeyAndSym(pos)
	entries, ok := b.fetch(key)
	if !ok || len(entries) == 0 {
		return board.NoMove, false
	}

	m := weightedPick(entries)
	real := board.RealMove(m, pos.Size(), sym)
	if !real.Valid(pos.Size()) || pos.Occupied().Test(real.X, real.Y) {
		return board.NoMove, false
	}
	return real, true
}

// ProbeAll returns every stored entry for pos, sorted by descending
// weight, for book-inspection tooling.
func (b *Book) ProbeAll(pos *board.Board) []BookEntry {
	key, sym := board.CanonicalKeyAndSym(pos)
	entries, ok := b.fetch(key)
	if !ok {
		return nil
	}
	out := make([]BookEntry, len(entries))
	for i, e := range entries {
		out[i] = BookEntry{Move: board.RealMove(e.Move, pos.Size(), sym), Weight: e.Weight}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out
}

func (b *Book) fetch(key uint64) ([]BookEntry, bool) {
	var entries []BookEntry
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyBytes(key))
		if err != nil {
			return err
		}
		return item.Value(func(blob []byte) error {
			raw, err := b.decoder.DecodeAll(blob, nil)
			if err != nil {
				return err
			}
			entries = decodeEntries(raw)
			return nil
		})
	})
	if err != nil {
		return nil, false
	}
	return entries, true
}

// Size returns the number of distinct canonical positions stored.
func (b *Book) Size() int {
	n := 0
	_ = b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n
}

func weightedPick(entries []BookEntry) board.Move {
	total := uint32(0)
	for _, e := range entries {
		total += uint32(e.Weight)
	}
	if total == 0 {
		return entries[0].Move
	}
	r := rand.Uint32() % total
	cum := uint32(0)
	for _, e := range entries {
		cum += uint32(e.Weight)
		if r < cum {
			return e.Move
		}
	}
	return entries[len(entries)-1].Move
}

// encodeEntries/decodeEntries use a flat fixed-width record (x, y int16;
// weight uint16) rather than gob or JSON: a hand-rolled binary layout
// instead of pulling in a serialization library for a six-byte record.
const entryRecordSize = 6

func encodeEntries(entries []BookEntry) []byte {
	buf := make([]byte, 0, len(entries)*entryRecordSize)
	for _, e := range entries {
		var rec [entryRecordSize]byte
		binary.BigEndian.PutUint16(rec[0:2], uint16(int16(e.Move.X)))
		binary.BigEndian.PutUint16(rec[2:4], uint16(int16(e.Move.Y)))
		binary.BigEndian.PutUint16(rec[4:6], e.Weight)
		buf = append(buf, rec[:]...)
	}
	return buf
}

func decodeEntries(raw []byte) []BookEntry {
	n := len(raw) / entryRecordSize
	entries := make([]BookEntry, 0, n)
	r := bytes.NewReader(raw)
	rec := make([]byte, entryRecordSize)
	for i := 0; i < n; i++ {
		if _, err := r.Read(rec); err != nil {
			break
		}
		x := int(int16(binary.BigEndian.Uint16(rec[0:2])))
		y := int(int16(binary.BigEndian.Uint16(rec[2:4])))
		w := binary.BigEndian.Uint16(rec[4:6])
		entries = append(entries, BookEntry{Move: board.Move{X: x, Y: y}, Weight: w})
	}
	return entries
}
