package analytics

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

const eventSearch = "search"

// Recorder writes analytics events to the database off the request path.
// RecordSearch never blocks: when the buffer is full the event is dropped
// and counted instead.
type Recorder struct {
	db        *sql.DB
	events    chan event
	done      chan struct{}
	closeOnce sync.Once
	dropped   atomic.Int64
}

type event struct {
	eventType string
	query     string
	userID    string
	at        time.Time
}

func NewRecorder(db *sql.DB, buffer int) *Recorder {
	if buffer <= 0 {
		buffer = 256
	}
	r := &Recorder{
		db:     db,
		events: make(chan event, buffer),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

// RecordSearch queues one search event. userID may be empty for anonymous
// searches. Must not be called after Close.
func (r *Recorder) RecordSearch(query, userID string) {
	ev := event{eventType: eventSearch, query: query, userID: userID, at: time.Now().UTC()}
	select {
	case r.events <- ev:
	default:
		r.dropped.Add(1)
	}
}

// Dropped reports how many events were discarded on a full buffer.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Close flushes queued events and stops the worker.
func (r *Recorder) Close() {
	r.closeOnce.Do(func() {
		close(r.events)
		<-r.done
	})
}

func (r *Recorder) run() {
	defer close(r.done)
	for ev := range r.events {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO analytics (event_type, search_query, user_id, created_at)
			VALUES (?, ?, ?, ?)
		`, ev.eventType, ev.query, nullIfEmpty(ev.userID), ev.at)
		cancel()
		if err != nil {
			log.Printf("[analytics] record: %v", err)
		}
	}
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
