package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hackmate/hackmate/internal/models"
)

func TestApplicationFormUpsert(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationFormRepository(db)

	hackathon := insertHackathon(t, db, "HackWeek")

	form := models.NewApplicationForm(hackathon)
	form.RequiresGithub = true
	form.CustomQuestion1 = "What will you build?"
	require.NoError(t, repo.UpsertForm(form))

	// A second save replaces the questions without creating a second row.
	replacement := models.NewApplicationForm(hackathon)
	replacement.CustomQuestion1 = "Why this hackathon?"
	require.NoError(t, repo.UpsertForm(replacement))

	stored, err := repo.GetFormByHackathon(hackathon.String())
	require.NoError(t, err)
	require.Equal(t, form.ID, stored.ID)
	require.Equal(t, "Why this hackathon?", stored.CustomQuestion1)
	require.False(t, stored.RequiresGithub)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM application_forms WHERE hackathon_id = ?`, hackathon.String()).Scan(&count))
	require.Equal(t, 1, count)
}

func TestApplicationResponseUpsert(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationFormRepository(db)

	hackathon := insertHackathon(t, db, "HackWeek")
	applicant := insertUser(t, db, "applicant@example.com")
	applicationID := insertApplication(t, db, applicant, hackathon, "")

	resp := models.NewApplicationResponse(applicationID)
	resp.CustomAnswer1 = "A matching engine"
	require.NoError(t, repo.UpsertResponse(resp))

	resp.CustomAnswer1 = "A better matching engine"
	require.NoError(t, repo.UpsertResponse(resp))

	stored, err := repo.GetResponseByApplication(applicationID.String())
	require.NoError(t, err)
	require.Equal(t, "A better matching engine", stored.CustomAnswer1)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM application_responses WHERE application_id = ?`, applicationID.String()).Scan(&count))
	require.Equal(t, 1, count)
}
