// Package recordset implements the comparer's in-memory ledger set: a
// hash-bucketed collection of record.Record values supporting membership
// tests and symmetric-difference comparison between two ledgers.
package recordset

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/flashdb/ledgertool/internal/record"
)

// Set is an unordered collection of records, bucketed by the xxHash64 of
// their canonical byte encoding. Bucket collisions are resolved with a
// full 8-field equality check, so membership always reflects spec-level
// record equality rather than hash equality alone.
type Set struct {
	buckets map[uint64][]record.Record
	size    int
}

// New returns an empty Set.
func New() *Set {
	return &Set{buckets: make(map[uint64][]record.Record)}
}

// canonicalKey hashes rec's canonical byte encoding. The encoding packs
// every field in struct order using fixed-width big-endian integers, so
// two records compare hash-equal only if every field matches exactly
// (modulo collision, which Add/Contains resolve with Record.Equal).
func canonicalKey(rec record.Record) uint64 {
	var buf [8 + 1 + 8 + 8 + 8 + 8 + 1]byte
	binary.BigEndian.PutUint64(buf[0:8], rec.TxID)
	buf[8] = uint8(rec.TxType)
	binary.BigEndian.PutUint64(buf[9:17], rec.FromUserID)
	binary.BigEndian.PutUint64(buf[17:25], rec.ToUserID)
	binary.BigEndian.PutUint64(buf[25:33], rec.Amount)
	binary.BigEndian.PutUint64(buf[33:41], rec.Timestamp)
	buf[41] = uint8(rec.Status)

	h := xxhash.New()
	h.Write(buf[:])
	h.WriteString(rec.Description)
	return h.Sum64()
}

// Add inserts rec into the set. Adding an already-present record is a
// no-op.
func (s *Set) Add(rec record.Record) {
	key := canonicalKey(rec)
	for _, existing := range s.buckets[key] {
		if existing.Equal(rec) {
			return
		}
	}
	s.buckets[key] = append(s.buckets[key], rec)
	s.size++
}

// Contains reports whether rec, compared field-for-field, is already in
// the set.
func (s *Set) Contains(rec record.Record) bool {
	key := canonicalKey(rec)
	for _, existing := range s.buckets[key] {
		if existing.Equal(rec) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct records held in the set.
func (s *Set) Len() int {
	return s.size
}

// All returns every record in the set, in unspecified order.
func (s *Set) All() []record.Record {
	out := make([]record.Record, 0, s.size)
	for _, bucket := range s.buckets {
		out = append(out, bucket...)
	}
	return out
}

// Diff computes the symmetric difference between a and b: records present
// in a but not b, and records present in b but not a. Two ledgers compare
// equal (both slices empty) only when every record in one has an exact
// field-for-field match in the other.
func Diff(a, b *Set) (onlyInA, onlyInB []record.Record) {
	for _, rec := range a.All() {
		if !b.Contains(rec) {
			onlyInA = append(onlyInA, rec)
		}
	}
	for _, rec := range b.All() {
		if !a.Contains(rec) {
			onlyInB = append(onlyInB, rec)
		}
	}
	return onlyInA, onlyInB
}
