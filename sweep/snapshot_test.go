package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/cacheplot/sweep/internal/testutil"
)

func TestLoad_PreservesSourceOrder(t *testing.T) {
	s := mustLoad(t, testutil.Table(
		"fifo\t1\t1024\t64\t1\t1\t50\tgcc.trace",
		"lru\t1\t1024\t64\t1\t1\t60\tswim.trace",
	))

	require.Equal(t, 2, s.Len())
	assert.Equal(t, PolicyFIFO, s.At(0).Policy)
	assert.Equal(t, PolicyLRU, s.At(1).Policy)
	assert.NotEmpty(t, s.ID())
	assert.Len(t, s.Digest(), 64)
}

func TestLoad_Malformed_NoSnapshot(t *testing.T) {
	s, err := Load(testutil.Table("lru\t4\t16384\t64\t299449\t3744\tswim.trace"))

	assert.Nil(t, s)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestSnapshot_Records_ReturnsCopy(t *testing.T) {
	s := mustLoad(t, testutil.Table("lru\t4\t16384\t64\t299449\t3744\t98.77\tswim.trace"))

	// WHEN a caller mutates the returned slice
	records := s.Records()
	records[0].HitRate = 0

	// THEN the snapshot is unaffected
	assert.Equal(t, 98.77, s.At(0).HitRate)
}

func TestNewSnapshot_CopiesInput(t *testing.T) {
	records := []TrialRecord{{Policy: PolicyLRU, HitRate: 90}}
	s := NewSnapshot(records)
	records[0].HitRate = 10

	assert.Equal(t, 90.0, s.At(0).HitRate)
	assert.Empty(t, s.Digest())
}

func TestSnapshot_Filter_KeepsOrder(t *testing.T) {
	s, err := LoadDefault()
	require.NoError(t, err)

	gcc := s.Filter(func(r TrialRecord) bool { return r.TraceFile == "gcc.trace" })

	require.NotEmpty(t, gcc)
	assert.Equal(t, 83.16, gcc[0].HitRate)
	assert.Equal(t, 99.01, gcc[len(gcc)-1].HitRate)
}

func TestSnapshot_NilSafe(t *testing.T) {
	var s *Snapshot
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.ID())
	assert.Empty(t, s.Records())
	assert.Empty(t, s.Filter(func(TrialRecord) bool { return true }))
}

func TestSnapshot_At_OutOfRangePanics(t *testing.T) {
	var empty *Snapshot
	s := mustLoad(t, testutil.Table("lru\t4\t16384\t64\t299449\t3744\t98.77\tswim.trace"))

	assert.NotPanics(t, func() { s.At(0) })
	assert.Panics(t, func() { s.At(1) })
	assert.Panics(t, func() { s.At(-1) })
	assert.Panics(t, func() { empty.At(0) })
}

func TestLoad_SameText_DistinctSnapshotsSameDigest(t *testing.T) {
	a := mustLoad(t, DefaultTable())
	b := mustLoad(t, DefaultTable())

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, a.Digest(), b.Digest())
	assert.Equal(t, a.Records(), b.Records())
}

func TestLoadWith_DelimiterChangesDigest(t *testing.T) {
	text := "Policy,Associativity,CacheSize,BlockSize,Hits,Misses,HitRate,TraceFile\n"
	tsv := testutil.Header + "\n"

	a, err := LoadWith(text, ParseOptions{Delimiter: ','})
	require.NoError(t, err)
	b, err := Load(tsv)
	require.NoError(t, err)

	assert.NotEqual(t, a.Digest(), b.Digest())
}

func TestCache_SameText_SameSnapshot(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)

	// WHEN the same text is loaded twice
	a, err := c.Load(DefaultTable(), ParseOptions{})
	require.NoError(t, err)
	b, err := c.Load(DefaultTable(), ParseOptions{})
	require.NoError(t, err)

	// THEN the second load returns the cached snapshot
	assert.Same(t, a, b)
	assert.Equal(t, 1, c.Len())
}

func TestCache_ParseFailure_NotCached(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)

	_, err = c.Load("", ParseOptions{})
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewCache(1)
	require.NoError(t, err)

	a, err := c.Load(testutil.Table("lru\t1\t1024\t64\t1\t1\t50\tgcc.trace"), ParseOptions{})
	require.NoError(t, err)
	_, err = c.Load(testutil.Table("lru\t1\t2048\t64\t1\t1\t50\tgcc.trace"), ParseOptions{})
	require.NoError(t, err)
	again, err := c.Load(testutil.Table("lru\t1\t1024\t64\t1\t1\t50\tgcc.trace"), ParseOptions{})
	require.NoError(t, err)

	assert.NotSame(t, a, again)
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestNewCache_InvalidSize(t *testing.T) {
	_, err := NewCache(0)
	assert.Error(t, err)
}
