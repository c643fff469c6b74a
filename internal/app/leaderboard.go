package app

import (
	"context"
	"sort"

	"society-quiz-service/internal/domain"
)

// DefaultLeaderboardLimit is used when a caller does not ask for a specific size.
const DefaultLeaderboardLimit = 200

// TopEntries ranks the best submission of every team and joins display metadata.
// A team missing from the directory (or a failing directory) yields empty name/lead
// rather than an error.
func TopEntries(ctx context.Context, submissions []domain.Submission, teams TeamDirectory, limit int) []domain.LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	best := make(map[string]domain.Submission, len(submissions))
	for _, sub := range submissions {
		current, ok := best[sub.TeamID]
		if !ok || betterSubmission(sub, current) {
			best[sub.TeamID] = sub
		}
	}

	ranked := make([]domain.Submission, 0, len(best))
	for _, sub := range best {
		ranked = append(ranked, sub)
	}
	// Team ids are unique after dedup, so the final key makes the order total.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		if ranked[i].ElapsedMs != ranked[j].ElapsedMs {
			return ranked[i].ElapsedMs < ranked[j].ElapsedMs
		}
		return ranked[i].TeamID < ranked[j].TeamID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	ids := make([]string, len(ranked))
	for i, sub := range ranked {
		ids[i] = sub.TeamID
	}
	var directory map[string]domain.Team
	if teams != nil && len(ids) > 0 {
		if found, err := teams.GetTeams(ctx, ids); err == nil {
			directory = found
		}
	}

	entries := make([]domain.LeaderboardEntry, len(ranked))
	for i, sub := range ranked {
		team := directory[sub.TeamID]
		entries[i] = domain.LeaderboardEntry{
			Rank:      i + 1,
			TeamID:    sub.TeamID,
			TeamName:  team.TeamName,
			TeamLead:  team.TeamLead,
			Points:    sub.Points,
			ElapsedMs: sub.ElapsedMs,
		}
	}
	return entries
}

// betterSubmission reports whether a beats b: more points, then less time.
func betterSubmission(a, b domain.Submission) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.ElapsedMs != b.ElapsedMs {
		return a.ElapsedMs < b.ElapsedMs
	}
	if !a.SubmittedAt.Equal(b.SubmittedAt) {
		return a.SubmittedAt.Before(b.SubmittedAt)
	}
	return a.ID < b.ID
}
