package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"society-quiz-service/internal/app"
	"society-quiz-service/internal/domain"
	"society-quiz-service/internal/infra/memory"
)

func TestTopEntriesOrdering(t *testing.T) {
	teams := memory.NewTeamDirectory(
		domain.Team{TeamID: "A", TeamName: "Alpha", TeamLead: "Ann"},
		domain.Team{TeamID: "B", TeamName: "Bravo", TeamLead: "Ben"},
		domain.Team{TeamID: "C", TeamName: "Charlie", TeamLead: "Cat"},
	)
	subs := []domain.Submission{
		{ID: "1", TeamID: "A", Points: 40, ElapsedMs: 30000},
		{ID: "2", TeamID: "B", Points: 40, ElapsedMs: 25000},
		{ID: "3", TeamID: "C", Points: 44, ElapsedMs: 60000},
	}

	entries := app.TopEntries(context.Background(), subs, teams, 0)
	want := []string{"C", "B", "A"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, id := range want {
		if entries[i].TeamID != id || entries[i].Rank != i+1 {
			t.Fatalf("position %d: expected %s rank %d, got %+v", i, id, i+1, entries[i])
		}
	}
	if entries[0].TeamName != "Charlie" || entries[0].TeamLead != "Cat" {
		t.Fatalf("metadata not joined: %+v", entries[0])
	}
}

func TestTopEntriesTruncates(t *testing.T) {
	subs := make([]domain.Submission, 250)
	for i := range subs {
		subs[i] = domain.Submission{ID: fmt.Sprint(i), TeamID: fmt.Sprintf("team-%03d", i), Points: i}
	}

	entries := app.TopEntries(context.Background(), subs, nil, 0)
	if len(entries) != app.DefaultLeaderboardLimit {
		t.Fatalf("expected %d entries, got %d", app.DefaultLeaderboardLimit, len(entries))
	}
	if entries[0].Points != 249 || entries[len(entries)-1].Rank != 200 {
		t.Fatalf("unexpected bounds: first=%+v last=%+v", entries[0], entries[len(entries)-1])
	}

	if got := app.TopEntries(context.Background(), subs, nil, 5); len(got) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(got))
	}
}

func TestTopEntriesKeepsBestPerTeam(t *testing.T) {
	now := time.Now()
	subs := []domain.Submission{
		{ID: "1", TeamID: "A", Points: 20, ElapsedMs: 100, SubmittedAt: now},
		{ID: "2", TeamID: "A", Points: 30, ElapsedMs: 900, SubmittedAt: now.Add(time.Second)},
		{ID: "3", TeamID: "A", Points: 30, ElapsedMs: 500, SubmittedAt: now.Add(2 * time.Second)},
		{ID: "4", TeamID: "B", Points: 25, ElapsedMs: 100, SubmittedAt: now},
	}

	entries := app.TopEntries(context.Background(), subs, nil, 0)
	if len(entries) != 2 {
		t.Fatalf("expected one entry per team, got %+v", entries)
	}
	if entries[0].TeamID != "A" || entries[0].Points != 30 || entries[0].ElapsedMs != 500 {
		t.Fatalf("expected best A submission first, got %+v", entries[0])
	}
}

func TestTopEntriesTiesBreakOnTeamID(t *testing.T) {
	subs := []domain.Submission{
		{ID: "1", TeamID: "zeta", Points: 10, ElapsedMs: 1000},
		{ID: "2", TeamID: "alpha", Points: 10, ElapsedMs: 1000},
		{ID: "3", TeamID: "mike", Points: 10, ElapsedMs: 1000},
	}

	for run := 0; run < 5; run++ {
		entries := app.TopEntries(context.Background(), subs, nil, 0)
		if entries[0].TeamID != "alpha" || entries[1].TeamID != "mike" || entries[2].TeamID != "zeta" {
			t.Fatalf("unexpected tie order: %+v", entries)
		}
		if entries[0].Rank == entries[1].Rank {
			t.Fatalf("ranks must be distinct: %+v", entries)
		}
	}
}

func TestTopEntriesMissingTeamMetadata(t *testing.T) {
	teams := memory.NewTeamDirectory(domain.Team{TeamID: "A", TeamName: "Alpha", TeamLead: "Ann"})
	subs := []domain.Submission{
		{ID: "1", TeamID: "A", Points: 10},
		{ID: "2", TeamID: "ghost", Points: 20},
	}

	entries := app.TopEntries(context.Background(), subs, teams, 0)
	if entries[0].TeamID != "ghost" || entries[0].TeamName != "" || entries[0].TeamLead != "" {
		t.Fatalf("expected ghost with empty metadata, got %+v", entries[0])
	}

	entries = app.TopEntries(context.Background(), subs, failingDirectory{}, 0)
	if len(entries) != 2 || entries[1].TeamName != "" {
		t.Fatalf("directory failure should not drop entries: %+v", entries)
	}
}

func TestTopEntriesEmpty(t *testing.T) {
	entries := app.TopEntries(context.Background(), nil, nil, 0)
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", entries)
	}
}

type failingDirectory struct{}

func (failingDirectory) GetTeam(context.Context, string) (domain.Team, error) {
	return domain.Team{}, errors.New("directory down")
}

func (failingDirectory) GetTeams(context.Context, []string) (map[string]domain.Team, error) {
	return nil, errors.New("directory down")
}
