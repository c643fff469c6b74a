package app

import (
	"testing"

	"society-quiz-service/internal/domain"
)

func TestFeedPublishAndCancel(t *testing.T) {
	feed := NewLeaderboardFeed()
	ch, cancel := feed.Subscribe()
	if !feed.HasSubscribers() {
		t.Fatalf("expected subscriber")
	}

	feed.Publish([]domain.LeaderboardEntry{{Rank: 1, TeamID: "A"}})
	if got := <-ch; len(got) != 1 || got[0].TeamID != "A" {
		t.Fatalf("unexpected snapshot %+v", got)
	}

	cancel()
	cancel()
	if feed.HasSubscribers() {
		t.Fatalf("expected no subscribers after cancel")
	}
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
	feed.Publish(nil)
}

func TestFeedSlowSubscriberKeepsLatest(t *testing.T) {
	feed := NewLeaderboardFeed()
	ch, cancel := feed.Subscribe()
	defer cancel()

	for i := 0; i < 20; i++ {
		feed.Publish([]domain.LeaderboardEntry{{Rank: 1, Points: i}})
	}

	var last []domain.LeaderboardEntry
	for len(ch) > 0 {
		last = <-ch
	}
	if last == nil || last[0].Points != 19 {
		t.Fatalf("expected newest snapshot to survive, got %+v", last)
	}
}

func TestFeedDeliverIgnoresUnknownChannel(t *testing.T) {
	feed := NewLeaderboardFeed()
	ch, cancel := feed.Subscribe()
	cancel()
	feed.deliver(ch, []domain.LeaderboardEntry{{Rank: 1}})
}
