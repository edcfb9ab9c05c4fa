package tracelog

import "strings"

// DisplayInfo holds the user-facing labels of the log panel.
type DisplayInfo struct {
	Filter   string
	Level    string
	Time     string
	SpanData string
	Data     string
	Message  string
}

// DefaultDisplayInfo returns the English labels.
func DefaultDisplayInfo() DisplayInfo {
	return DisplayInfo{
		Filter:   "Filter",
		Level:    "Level",
		Time:     "Time",
		SpanData: "Span Data",
		Data:     "Data",
		Message:  "Message",
	}
}

// Filter selects which records are shown. Zero value shows everything.
// Substring matches are case-sensitive and literal.
type Filter struct {
	// Level is the minimum severity shown; nil disables the check.
	Level    *Level
	SpanData string
	Data     string
	Message  string
}

// Active reports whether any criterion is set.
func (f Filter) Active() bool {
	return f.Level != nil || f.SpanData != "" || f.Data != "" || f.Message != ""
}

// Match reports whether r passes every criterion.
func (f Filter) Match(r Record) bool {
	if f.Level != nil && !r.Level.AtLeast(*f.Level) {
		return false
	}
	if f.SpanData != "" && !r.SpanMatches(f.SpanData) {
		return false
	}
	if f.Data != "" && !r.Fields.Contains(f.Data) {
		return false
	}
	if f.Message != "" && !strings.Contains(r.Message, f.Message) {
		return false
	}
	return true
}

// Log is the consumer side: a fixed-capacity ring of the most recent
// records, refilled from the queue by Update. It is not safe for concurrent
// use and is meant to live on the UI goroutine.
type Log struct {
	queue    *Queue
	capacity int
	records  []Record

	Filter  Filter
	Display DisplayInfo
}

func newLog(queue *Queue) *Log {
	return &Log{
		queue:    queue,
		capacity: queue.Cap(),
		records:  make([]Record, 0, queue.Cap()),
		Display:  DefaultDisplayInfo(),
	}
}

// Update drains pending records into the ring and returns the most severe
// level among them. ok is false when nothing was pending.
func (l *Log) Update() (worst Level, ok bool) {
	n := min(l.queue.Len(), l.capacity)
	if n == 0 {
		return 0, false
	}

	incoming := make([]Record, 0, n)
	for len(incoming) < n {
		r, popped := l.queue.TryPop()
		if !popped {
			break
		}
		if !ok || r.Level > worst {
			worst = r.Level
		}
		ok = true
		incoming = append(incoming, r)
	}
	if len(incoming) == 0 {
		return 0, false
	}

	l.appendRecords(incoming)
	return worst, ok
}

// appendRecords applies the ring policy: a batch that fills the ring replaces
// it, a smaller batch pushes out exactly as many old entries as needed.
func (l *Log) appendRecords(incoming []Record) {
	if len(incoming) >= l.capacity {
		l.records = append(l.records[:0], incoming[len(incoming)-l.capacity:]...)
		return
	}
	if overflow := len(l.records) + len(incoming) - l.capacity; overflow > 0 {
		kept := copy(l.records, l.records[overflow:])
		clear(l.records[kept:])
		l.records = l.records[:kept]
	}
	l.records = append(l.records, incoming...)
}

// Records returns the retained records, oldest first. The slice is only
// valid until the next Update.
func (l *Log) Records() []Record { return l.records }

// Visible returns the retained records that pass Filter, oldest first.
func (l *Log) Visible() []Record {
	if !l.Filter.Active() {
		out := make([]Record, len(l.records))
		copy(out, l.records)
		return out
	}
	out := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		if l.Filter.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Clear drops every retained record.
func (l *Log) Clear() {
	clear(l.records)
	l.records = l.records[:0]
}

// Len returns the number of retained records.
func (l *Log) Len() int { return len(l.records) }

// Cap returns the ring capacity.
func (l *Log) Cap() int { return l.capacity }

// Dropped returns how many records were evicted from the queue before Update saw them.
func (l *Log) Dropped() uint64 { return l.queue.Dropped() }
