package tracelog

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainQueue(q *Queue) []Record {
	var out []Record
	for {
		r, ok := q.TryPop()
		if !ok {
			return out
		}
		out = append(out, r)
	}
}

func TestQueue_KeepsMostRecentWhenFull(t *testing.T) {
	for _, k := range []int{1, 3, 8} {
		t.Run(fmt.Sprintf("cap=%d", k), func(t *testing.T) {
			q := NewQueue(k)
			total := k*3 + 1
			for i := range total {
				q.Push(Record{Message: fmt.Sprint(i)})
			}

			got := drainQueue(q)
			require.Len(t, got, k)
			for i, r := range got {
				assert.Equal(t, fmt.Sprint(total-k+i), r.Message)
			}
			assert.Equal(t, uint64(total-k), q.Dropped())
			assert.Equal(t, uint64(total), q.Delivered())
		})
	}
}

func TestQueue_NonPositiveCapacity(t *testing.T) {
	q := NewQueue(0)
	assert.Equal(t, 1, q.Cap())
	q.Push(Record{Message: "a"})
	q.Push(Record{Message: "b"})
	got := drainQueue(q)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Message)
}

func TestQueue_TryPopEmpty(t *testing.T) {
	q := NewQueue(2)
	_, ok := q.TryPop()
	assert.False(t, ok)
}

func TestQueue_ConcurrentProducersNeverBlock(t *testing.T) {
	q := NewQueue(4)
	var wg sync.WaitGroup
	for p := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				q.Push(Record{Message: fmt.Sprintf("%d-%d", p, i)})
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, q.Len(), q.Cap())
	// Without a consumer every push ends up either pending or dropped.
	assert.Equal(t, uint64(8*200), q.Dropped()+uint64(q.Len()))
}
