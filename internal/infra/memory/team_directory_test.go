package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"society-quiz-service/internal/domain"
)

func TestTeamDirectoryLookup(t *testing.T) {
	dir := NewTeamDirectory(
		domain.Team{TeamID: "T-01", TeamName: "Byte Busters", TeamLead: "Priya"},
		domain.Team{TeamID: "T-02", TeamName: "Null Pointers", TeamLead: "Arjun"},
	)

	team, err := dir.GetTeam(context.Background(), "T-02")
	if err != nil || team.TeamName != "Null Pointers" {
		t.Fatalf("unexpected lookup result %+v, %v", team, err)
	}
	if _, err := dir.GetTeam(context.Background(), "T-99"); !errors.Is(err, domain.ErrTeamNotFound) {
		t.Fatalf("expected team not found, got %v", err)
	}

	found, _ := dir.GetTeams(context.Background(), []string{"T-01", "T-99"})
	if len(found) != 1 || found["T-01"].TeamLead != "Priya" {
		t.Fatalf("expected only T-01, got %+v", found)
	}
}

func TestReadTeamsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.yaml")
	content := "teams:\n  - id: T-01\n    name: Byte Busters\n    lead: Priya\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	teams, err := ReadTeamsFile(path)
	if err != nil {
		t.Fatalf("read teams: %v", err)
	}
	if len(teams) != 1 || teams[0] != (domain.Team{TeamID: "T-01", TeamName: "Byte Busters", TeamLead: "Priya"}) {
		t.Fatalf("unexpected teams %+v", teams)
	}
}
