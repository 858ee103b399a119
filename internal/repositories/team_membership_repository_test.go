package repositories

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/hackmate/hackmate/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	entries, err := os.ReadDir("../../migrations")
	require.NoError(t, err)

	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".sql" {
			continue
		}
		schema, err := os.ReadFile(filepath.Join("../../migrations", entry.Name()))
		require.NoError(t, err)
		_, err = db.Exec(string(schema))
		require.NoError(t, err)
	}

	return db
}

func insertUser(t *testing.T, db *sql.DB, email string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(`INSERT INTO users (id, email) VALUES (?, ?)`, id.String(), email)
	require.NoError(t, err)
	return id
}

func insertHackathon(t *testing.T, db *sql.DB, title string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	now := time.Now()
	_, err := db.Exec(
		`INSERT INTO hackathons (id, title, start_date, end_date, registration_deadline)
		VALUES (?, ?, ?, ?, ?)`,
		id.String(), title, now, now.Add(48*time.Hour), now.Add(24*time.Hour),
	)
	require.NoError(t, err)
	return id
}

func insertTeam(t *testing.T, db *sql.DB, hackathonID, leaderID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(
		`INSERT INTO teams (id, name, hackathon_id, leader_id) VALUES (?, ?, ?, ?)`,
		id.String(), name, hackathonID.String(), leaderID.String(),
	)
	require.NoError(t, err)
	return id
}

func membershipStatus(t *testing.T, db *sql.DB, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(`SELECT status FROM team_memberships WHERE id = ?`, id.String()).Scan(&status)
	require.NoError(t, err)
	return status
}

func invitationStatus(t *testing.T, db *sql.DB, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(`SELECT status FROM team_invitations WHERE id = ?`, id.String()).Scan(&status)
	require.NoError(t, err)
	return status
}

func TestApproveWithExclusivity(t *testing.T) {
	db := openTestDB(t)
	repo := NewTeamMembershipRepository(db)
	invitationRepo := NewTeamInvitationRepository(db)

	leaderA := insertUser(t, db, "leader-a@example.com")
	leaderB := insertUser(t, db, "leader-b@example.com")
	leaderC := insertUser(t, db, "leader-c@example.com")
	applicant := insertUser(t, db, "applicant@example.com")

	hackathon := insertHackathon(t, db, "HackWeek")
	otherHackathon := insertHackathon(t, db, "Other Event")

	teamA := insertTeam(t, db, hackathon, leaderA, "Team A")
	teamB := insertTeam(t, db, hackathon, leaderB, "Team B")
	teamC := insertTeam(t, db, otherHackathon, leaderC, "Team C")

	requestA := models.NewJoinRequest(teamA, applicant)
	requestB := models.NewJoinRequest(teamB, applicant)
	requestOther := models.NewJoinRequest(teamC, applicant)
	require.NoError(t, repo.Create(requestA))
	require.NoError(t, repo.Create(requestB))
	require.NoError(t, repo.Create(requestOther))

	invitation := models.NewTeamInvitation(teamB, leaderB, applicant, true)
	require.NoError(t, invitationRepo.Create(invitation))

	err := repo.ApproveWithExclusivity(requestA.ID.String(), applicant.String(), hackathon.String())
	require.NoError(t, err)

	require.Equal(t, models.MembershipStatusActive, membershipStatus(t, db, requestA.ID))
	require.Equal(t, models.MembershipStatusDeclined, membershipStatus(t, db, requestB.ID))
	require.Equal(t, models.InvitationStatusExpired, invitationStatus(t, db, invitation.ID))

	// Requests in other hackathons stay untouched.
	require.Equal(t, models.MembershipStatusPending, membershipStatus(t, db, requestOther.ID))

	var joinedAt sql.NullTime
	err = db.QueryRow(`SELECT joined_at FROM team_memberships WHERE id = ?`, requestA.ID.String()).Scan(&joinedAt)
	require.NoError(t, err)
	require.True(t, joinedAt.Valid)

	// Approving the already-declined request races out with ErrNoRows.
	err = repo.ApproveWithExclusivity(requestB.ID.String(), applicant.String(), hackathon.String())
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAcceptInvitationWithExclusivity(t *testing.T) {
	db := openTestDB(t)
	repo := NewTeamMembershipRepository(db)
	invitationRepo := NewTeamInvitationRepository(db)

	leaderA := insertUser(t, db, "leader-a@example.com")
	leaderB := insertUser(t, db, "leader-b@example.com")
	invitee := insertUser(t, db, "invitee@example.com")

	hackathon := insertHackathon(t, db, "HackWeek")
	teamA := insertTeam(t, db, hackathon, leaderA, "Team A")
	teamB := insertTeam(t, db, hackathon, leaderB, "Team B")

	// A stale declined row for the invited team must not block acceptance.
	stale := models.NewJoinRequest(teamA, invitee)
	stale.Status = models.MembershipStatusDeclined
	require.NoError(t, repo.Create(stale))

	pendingElsewhere := models.NewJoinRequest(teamB, invitee)
	require.NoError(t, repo.Create(pendingElsewhere))

	invitation := models.NewTeamInvitation(teamA, leaderA, invitee, true)
	require.NoError(t, invitationRepo.Create(invitation))

	membership := &models.TeamMembership{
		ID:                 uuid.New(),
		TeamID:             teamA,
		UserID:             invitee,
		Role:               models.MembershipRoleMember,
		SkillsContribution: []string{},
		InvitedAt:          &invitation.CreatedAt,
		InvitedBy:          &invitation.InviterID,
	}

	err := repo.AcceptInvitationWithExclusivity(invitation, membership, hackathon.String())
	require.NoError(t, err)

	require.Equal(t, models.MembershipStatusActive, membershipStatus(t, db, membership.ID))
	require.Equal(t, models.InvitationStatusAccepted, invitationStatus(t, db, invitation.ID))
	require.Equal(t, models.MembershipStatusDeclined, membershipStatus(t, db, pendingElsewhere.ID))

	// The stale declined row was replaced.
	var count int
	err = db.QueryRow(
		`SELECT COUNT(*) FROM team_memberships WHERE team_id = ? AND user_id = ?`,
		teamA.String(), invitee.String(),
	).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// Accepting the same invitation twice fails.
	err = repo.AcceptInvitationWithExclusivity(invitation, membership, hackathon.String())
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestExpireOverdue(t *testing.T) {
	db := openTestDB(t)
	repo := NewTeamInvitationRepository(db)

	leader := insertUser(t, db, "leader@example.com")
	invitee := insertUser(t, db, "invitee@example.com")
	hackathon := insertHackathon(t, db, "HackWeek")
	team := insertTeam(t, db, hackathon, leader, "Team A")

	overdue := models.NewTeamInvitation(team, leader, invitee, true)
	overdue.ExpiresAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(overdue))

	fresh := models.NewTeamInvitation(team, leader, invitee, true)
	require.NoError(t, repo.Create(fresh))

	expired, err := repo.ExpireOverdue(time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), expired)

	require.Equal(t, models.InvitationStatusExpired, invitationStatus(t, db, overdue.ID))
	require.Equal(t, models.InvitationStatusPending, invitationStatus(t, db, fresh.ID))
}
