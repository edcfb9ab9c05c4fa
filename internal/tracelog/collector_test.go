package tracelog

import (
	"encoding/binary"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sid(b byte) SpanID { return SpanID{0, 0, 0, 0, 0, 0, 0, b} }

func newTestCollector(t *testing.T, capacity int) (*Collector, *Log) {
	t.Helper()
	c, log := New(capacity)
	c.now = func() time.Time {
		return time.Date(2024, 3, 9, 14, 5, 7, 123_456_789, time.Local)
	}
	return c, log
}

func lastRecord(t *testing.T, log *Log) Record {
	t.Helper()
	log.Update()
	recs := log.Records()
	require.NotEmpty(t, recs)
	return recs[len(recs)-1]
}

func TestEmit_StripsAndTrimsMessage(t *testing.T) {
	c, log := newTestCollector(t, 4)
	c.Emit(LevelInfo, SpanID{}, Fields{MessageKey: "  hello \n", "user": "ann"})

	r := lastRecord(t, log)
	assert.Equal(t, "hello", r.Message)
	assert.Equal(t, Fields{"user": "ann"}, r.Fields)
	assert.Equal(t, "2024-03-09 14:05:07.123", r.Time)
	assert.Empty(t, r.Spans)
}

func TestEmit_NilFieldsAndNoMessage(t *testing.T) {
	c, log := newTestCollector(t, 4)
	c.Emit(LevelWarn, SpanID{}, nil)

	r := lastRecord(t, log)
	assert.Equal(t, "", r.Message)
	assert.NotNil(t, r.Fields)
}

func TestEmit_SpanChainRootToLeaf(t *testing.T) {
	c, log := newTestCollector(t, 4)
	c.OpenSpan(sid(1), SpanID{}, "warp_log", nil)
	c.OpenSpan(sid(2), sid(1), "log_fn", Fields{"a": "field a", "b": "2"})
	c.RecordSpan(sid(2), Fields{"c": "field c", "b": "3"})

	c.Emit(LevelInfo, sid(2), Fields{MessageKey: "after"})
	r := lastRecord(t, log)
	require.Len(t, r.Spans, 2)
	assert.Equal(t, "warp_log", r.Spans[0].Name)
	assert.Empty(t, r.Spans[0].Fields)
	assert.Equal(t, "log_fn", r.Spans[1].Name)
	assert.Equal(t, Fields{"a": "field a", "b": "3", "c": "field c"}, r.Spans[1].Fields)
}

func TestEmit_SnapshotIsNotAffectedByLaterRecords(t *testing.T) {
	c, log := newTestCollector(t, 4)
	c.OpenSpan(sid(1), SpanID{}, "root", Fields{"k": "before"})
	c.Emit(LevelInfo, sid(1), Fields{MessageKey: "one"})
	c.RecordSpan(sid(1), Fields{"k": "after"})

	r := lastRecord(t, log)
	assert.Equal(t, "before", r.Spans[0].Fields["k"])
}

func TestCloseSpan_RemovesFieldsFromLaterEvents(t *testing.T) {
	c, log := newTestCollector(t, 4)
	c.OpenSpan(sid(1), SpanID{}, "root", Fields{"r": "1"})
	c.OpenSpan(sid(2), sid(1), "middle", Fields{"m": "2"})
	c.OpenSpan(sid(3), sid(2), "leaf", Fields{"l": "3"})
	require.Equal(t, 3, c.OpenSpans())

	c.CloseSpan(sid(2))
	assert.Equal(t, 2, c.OpenSpans())

	c.Emit(LevelInfo, sid(3), Fields{MessageKey: "x"})
	r := lastRecord(t, log)
	require.Len(t, r.Spans, 2)
	assert.Equal(t, "root", r.Spans[0].Name)
	assert.Equal(t, "leaf", r.Spans[1].Name)
	for _, s := range r.Spans {
		assert.NotContains(t, s.Fields, "m")
	}
}

func TestRecordSpan_AfterCloseDoesNotResurrect(t *testing.T) {
	c, _ := newTestCollector(t, 1)
	c.OpenSpan(sid(1), SpanID{}, "root", nil)
	c.CloseSpan(sid(1))
	c.RecordSpan(sid(1), Fields{"late": "yes"})
	assert.Zero(t, c.OpenSpans())
}

func TestOpenSpan_UnderClosedParentLosesAncestors(t *testing.T) {
	c, log := newTestCollector(t, 4)
	c.OpenSpan(sid(1), SpanID{}, "root", nil)
	c.OpenSpan(sid(2), sid(1), "mid", nil)
	c.CloseSpan(sid(2))
	c.OpenSpan(sid(3), sid(2), "leaf", nil)
	c.Emit(LevelInfo, sid(3), Fields{MessageKey: "x"})

	r := lastRecord(t, log)
	require.Len(t, r.Spans, 1)
	assert.Equal(t, "leaf", r.Spans[0].Name)
}

func TestOpenSpan_InvalidIDIgnored(t *testing.T) {
	c, _ := newTestCollector(t, 1)
	c.OpenSpan(SpanID{}, SpanID{}, "nope", nil)
	assert.Zero(t, c.OpenSpans())
}

func TestEmit_UnknownSpanHasNoChain(t *testing.T) {
	c, log := newTestCollector(t, 2)
	c.Emit(LevelError, sid(9), Fields{MessageKey: "orphan"})
	assert.Empty(t, lastRecord(t, log).Spans)
}

type panickyStringer struct{ Name string }

func (p panickyStringer) String() string { panic("boom") }

type nilError struct{}

func (*nilError) Error() string { panic("nil receiver") }

func TestCollector_ConcurrentSpansAndDrain(t *testing.T) {
	const (
		workers = 8
		rounds  = 500
	)
	c, log := newTestCollector(t, 16)

	stop := make(chan struct{})
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for {
			select {
			case <-stop:
				return
			default:
				log.Update()
				_ = log.Visible()
			}
		}
	}()

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rounds {
				var root, child SpanID
				root[0] = byte(w + 1)
				binary.BigEndian.PutUint32(root[4:], uint32(i))
				child = root
				child[1] = 1

				c.OpenSpan(root, SpanID{}, "root", Fields{"worker": "w"})
				c.OpenSpan(child, root, "child", nil)
				c.RecordSpan(child, Fields{"round": "r"})
				c.Emit(LevelInfo, child, Fields{MessageKey: "tick"})
				c.CloseSpan(child)
				c.CloseSpan(root)
			}
		}()
	}
	wg.Wait()
	close(stop)
	<-drained
	log.Update()

	assert.Zero(t, c.OpenSpans(), "closed spans are not retained")
	assert.LessOrEqual(t, log.Len(), log.Cap())
	assert.NotZero(t, c.Delivered())
	assert.LessOrEqual(t, c.Delivered(), uint64(workers*rounds))
	for _, r := range log.Records() {
		require.Len(t, r.Spans, 2)
		assert.Equal(t, "root", r.Spans[0].Name)
		assert.Equal(t, Fields{"round": "r"}, r.Spans[1].Fields)
	}
}

func TestStringify(t *testing.T) {
	var typedNil *nilError
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "plain", "plain"},
		{"int", 42, "42"},
		{"bool", true, "true"},
		{"error", errors.New("bad"), "bad"},
		{"nil", nil, "<nil>"},
		{"duration", 1500 * time.Millisecond, "1.5s"},
		{"panicking stringer", panickyStringer{Name: "x"}, `tracelog.panickyStringer{Name:"x"}`},
		{"panicking error", typedNil, "(*tracelog.nilError)(nil)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stringify(tt.in))
		})
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range Levels() {
		got, err := ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	got, err := ParseLevel(" Warning ")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, got)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelOrdering(t *testing.T) {
	levels := Levels()
	for i := 1; i < len(levels); i++ {
		assert.True(t, levels[i].AtLeast(levels[i-1]))
		assert.False(t, levels[i-1].AtLeast(levels[i]))
	}
	assert.Equal(t, "LEVEL(9)", Level(9).String())
}
