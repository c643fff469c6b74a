package memory

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"society-quiz-service/internal/domain"
)

// TeamDirectory is a read-only, map-backed app.TeamDirectory.
type TeamDirectory struct {
	teams map[string]domain.Team
}

func NewTeamDirectory(teams ...domain.Team) *TeamDirectory {
	m := make(map[string]domain.Team, len(teams))
	for _, t := range teams {
		m[t.TeamID] = t
	}
	return &TeamDirectory{teams: m}
}

func (d *TeamDirectory) GetTeam(_ context.Context, teamID string) (domain.Team, error) {
	if t, ok := d.teams[teamID]; ok {
		return t, nil
	}
	return domain.Team{}, fmt.Errorf("%w: %s", domain.ErrTeamNotFound, teamID)
}

// GetTeams returns the known subset of teamIDs.
func (d *TeamDirectory) GetTeams(_ context.Context, teamIDs []string) (map[string]domain.Team, error) {
	out := make(map[string]domain.Team, len(teamIDs))
	for _, id := range teamIDs {
		if t, ok := d.teams[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

// ReadTeamsFile decodes a YAML list of teams:
//
//	teams:
//	  - id: T-01
//	    name: Byte Busters
//	    lead: Priya
func ReadTeamsFile(path string) ([]domain.Team, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read teams: %w", err)
	}
	var doc struct {
		Teams []domain.Team `yaml:"teams"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode teams: %w", err)
	}
	for i, t := range doc.Teams {
		if t.TeamID == "" {
			return nil, fmt.Errorf("decode teams: entry %d has no id", i)
		}
	}
	return doc.Teams, nil
}
