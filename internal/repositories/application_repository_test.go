package repositories

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hackmate/hackmate/internal/models"
)

func insertApplication(t *testing.T, db *sql.DB, userID, hackathonID uuid.UUID, githubURL string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(
		`INSERT INTO hackathon_applications (id, user_id, hackathon_id, looking_for_team, github_url, status)
		VALUES (?, ?, ?, 1, ?, 'submitted')`,
		id.String(), userID.String(), hackathonID.String(), githubURL,
	)
	require.NoError(t, err)
	return id
}

func TestGetTeamSeekingCandidates(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationRepository(db)

	hackathon := insertHackathon(t, db, "HackWeek")
	requester := insertUser(t, db, "requester@example.com")
	candidate := insertUser(t, db, "candidate@example.com")
	teamed := insertUser(t, db, "teamed@example.com")

	insertApplication(t, db, requester, hackathon, "")
	insertApplication(t, db, candidate, hackathon, "https://github.com/event-profile")
	insertApplication(t, db, teamed, hackathon, "")

	// An active member of a team in this hackathon is no longer a candidate.
	team := insertTeam(t, db, hackathon, teamed, "Taken")
	membership := models.NewJoinRequest(team, teamed)
	membership.Status = models.MembershipStatusActive
	require.NoError(t, NewTeamMembershipRepository(db).Create(membership))

	candidates, err := repo.GetTeamSeekingCandidates(hackathon.String(), requester.String())
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	require.Equal(t, candidate, candidates[0].User.ID)
	require.Equal(t, "https://github.com/event-profile", candidates[0].Application.GithubURL)
}
