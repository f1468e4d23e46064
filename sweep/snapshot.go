package sweep

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

// Snapshot is the record store: the parsed results table as of one load.
// It is immutable; reloading produces a new Snapshot rather than updating an
// existing one, so a Snapshot can be shared freely between goroutines.
type Snapshot struct {
	id      string
	digest  string
	records []TrialRecord
}

// Load parses a tab-separated results table into a Snapshot.
func Load(text string) (*Snapshot, error) {
	return LoadWith(text, ParseOptions{})
}

// LoadWith parses text with opts into a Snapshot. On failure it returns the
// *ParseError and no Snapshot.
func LoadWith(text string, opts ParseOptions) (*Snapshot, error) {
	records, err := ParseWith(text, opts)
	if err != nil {
		return nil, err
	}
	s := &Snapshot{
		id:      xid.New().String(),
		digest:  contentDigest(text, opts),
		records: records,
	}
	logrus.Debugf("loaded snapshot %s: %d records", s.id, len(records))
	return s, nil
}

// NewSnapshot wraps already-parsed records. The slice is copied.
func NewSnapshot(records []TrialRecord) *Snapshot {
	owned := make([]TrialRecord, len(records))
	copy(owned, records)
	return &Snapshot{id: xid.New().String(), records: owned}
}

// ID identifies this load. Two loads of the same text get different IDs.
func (s *Snapshot) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Digest is the hex SHA-256 of the source text and parse options, or "" for
// snapshots built with NewSnapshot.
func (s *Snapshot) Digest() string {
	if s == nil {
		return ""
	}
	return s.digest
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// At returns the i-th record in source order. Like slice indexing, it panics
// when i is outside [0, Len()), which includes every index of a nil snapshot.
func (s *Snapshot) At(i int) TrialRecord {
	if i < 0 || i >= s.Len() {
		panic(fmt.Sprintf("sweep: record index %d out of range [0, %d)", i, s.Len()))
	}
	return s.records[i]
}

// Records returns a copy of all records in source order.
func (s *Snapshot) Records() []TrialRecord {
	if s == nil {
		return []TrialRecord{}
	}
	out := make([]TrialRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Filter returns the records satisfying keep, in source order.
func (s *Snapshot) Filter(keep func(TrialRecord) bool) []TrialRecord {
	out := make([]TrialRecord, 0)
	if s == nil {
		return out
	}
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func contentDigest(text string, opts ParseOptions) string {
	h := sha256.New()
	h.Write([]byte(string(opts.delimiter())))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
