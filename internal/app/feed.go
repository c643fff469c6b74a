package app

import (
	"sync"

	"society-quiz-service/internal/domain"
)

// LeaderboardFeed fans leaderboard snapshots out to live subscribers.
type LeaderboardFeed struct {
	mu          sync.Mutex
	subscribers map[<-chan []domain.LeaderboardEntry]chan []domain.LeaderboardEntry
}

func NewLeaderboardFeed() *LeaderboardFeed {
	return &LeaderboardFeed{
		subscribers: make(map[<-chan []domain.LeaderboardEntry]chan []domain.LeaderboardEntry),
	}
}

// Subscribe registers a new subscriber. The caller must invoke the returned cancel
// function to avoid leaks.
func (f *LeaderboardFeed) Subscribe() (<-chan []domain.LeaderboardEntry, func()) {
	ch := make(chan []domain.LeaderboardEntry, 8)

	f.mu.Lock()
	f.subscribers[ch] = ch
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// HasSubscribers reports whether anyone is listening.
func (f *LeaderboardFeed) HasSubscribers() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers) > 0
}

// Publish sends a snapshot to every subscriber without blocking.
func (f *LeaderboardFeed) Publish(entries []domain.LeaderboardEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subscribers {
		sendLatest(ch, entries)
	}
}

// deliver pushes a snapshot to a single subscriber if it is still registered.
func (f *LeaderboardFeed) deliver(ch <-chan []domain.LeaderboardEntry, entries []domain.LeaderboardEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sub, ok := f.subscribers[ch]; ok {
		sendLatest(sub, entries)
	}
}

// sendLatest drops the oldest queued snapshot when a subscriber falls behind.
func sendLatest(ch chan []domain.LeaderboardEntry, entries []domain.LeaderboardEntry) {
	select {
	case ch <- entries:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- entries
	}
}
