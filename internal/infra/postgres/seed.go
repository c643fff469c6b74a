package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"society-quiz-service/internal/domain"
)

type teamRow struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	TeamID   string `bun:"team_id,pk"`
	TeamName string `bun:"team_name,notnull"`
	TeamLead string `bun:"team_lead,notnull"`
}

type questionBankRow struct {
	bun.BaseModel `bun:"table:question_banks,alias:qb"`

	ID        string              `bun:"id,pk"`
	Data      domain.QuestionBank `bun:"data,type:jsonb,notnull"`
	UpdatedAt time.Time           `bun:"updated_at,notnull"`
}

// UpsertTeams inserts or refreshes team directory rows.
func UpsertTeams(ctx context.Context, db bun.IDB, teams []domain.Team) error {
	if len(teams) == 0 {
		return nil
	}
	rows := make([]teamRow, len(teams))
	for i, t := range teams {
		rows[i] = teamRow{TeamID: t.TeamID, TeamName: t.TeamName, TeamLead: t.TeamLead}
	}
	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (team_id) DO UPDATE").
		Set("team_name = EXCLUDED.team_name").
		Set("team_lead = EXCLUDED.team_lead").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert teams: %w", err)
	}
	return nil
}

// UpsertQuestionBank stores a validated question bank.
func UpsertQuestionBank(ctx context.Context, db bun.IDB, bank domain.QuestionBank) error {
	if err := bank.Validate(); err != nil {
		return err
	}
	row := questionBankRow{ID: bank.ID, Data: bank, UpdatedAt: time.Now().UTC()}
	_, err := db.NewInsert().
		Model(&row).
		On("CONFLICT (id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert question bank: %w", err)
	}
	return nil
}

// Seed writes teams and the question bank in one transaction.
func Seed(ctx context.Context, db *bun.DB, teams []domain.Team, bank domain.QuestionBank) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := UpsertTeams(ctx, tx, teams); err != nil {
			return err
		}
		return UpsertQuestionBank(ctx, tx, bank)
	})
}
