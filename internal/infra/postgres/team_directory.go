package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"society-quiz-service/internal/domain"
)

// TeamDirectory reads team metadata from the teams table.
type TeamDirectory struct {
	pool *pgxpool.Pool
}

func NewTeamDirectory(pool *pgxpool.Pool) *TeamDirectory {
	return &TeamDirectory{pool: pool}
}

func (d *TeamDirectory) GetTeam(ctx context.Context, teamID string) (domain.Team, error) {
	var t domain.Team
	err := d.pool.QueryRow(ctx,
		`SELECT team_id, team_name, team_lead FROM teams WHERE team_id=$1`, teamID,
	).Scan(&t.TeamID, &t.TeamName, &t.TeamLead)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Team{}, fmt.Errorf("%w: %s", domain.ErrTeamNotFound, teamID)
	}
	if err != nil {
		return domain.Team{}, unavailable("load team", err)
	}
	return t, nil
}

func (d *TeamDirectory) GetTeams(ctx context.Context, teamIDs []string) (map[string]domain.Team, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT team_id, team_name, team_lead FROM teams WHERE team_id = ANY($1)`, teamIDs,
	)
	if err != nil {
		return nil, unavailable("load teams", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Team, len(teamIDs))
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.TeamID, &t.TeamName, &t.TeamLead); err != nil {
			return nil, unavailable("scan team", err)
		}
		out[t.TeamID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("load teams", err)
	}
	return out, nil
}
