package cli

import (
	"bytes"
	"strings"
	"testing"

	"society-quiz-service/internal/config"
	"society-quiz-service/internal/domain"
)

func TestPrintLeaderboard(t *testing.T) {
	var buf bytes.Buffer
	err := printLeaderboard(&buf, []domain.LeaderboardEntry{
		{Rank: 1, TeamID: "T-03", TeamName: "Race Conditions", TeamLead: "Lena", Points: 44, ElapsedMs: 61500},
		{Rank: 2, TeamID: "T-01", TeamName: "Byte Busters", TeamLead: "Priya", Points: 40, ElapsedMs: 25000},
	})
	if err != nil {
		t.Fatalf("print: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[1], "1") || !strings.Contains(lines[1], "Race Conditions") || !strings.Contains(lines[1], "61.5s") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
}

func TestListenPort(t *testing.T) {
	var cfg config.Config
	if got := listenPort("", cfg); got != "8080" {
		t.Fatalf("expected default 8080, got %s", got)
	}
	cfg.Server.Port = "9000"
	if got := listenPort("", cfg); got != "9000" {
		t.Fatalf("expected config port, got %s", got)
	}
	if got := listenPort("7000", cfg); got != "7000" {
		t.Fatalf("expected flag to win, got %s", got)
	}
}
