package repositories

import (
	"database/sql"
	"time"

	"github.com/hackmate/hackmate/internal/models"
)

type TeamInvitationRepository struct {
	db *sql.DB
}

func NewTeamInvitationRepository(db *sql.DB) *TeamInvitationRepository {
	return &TeamInvitationRepository{
		db: db,
	}
}

const invitationColumns = `i.id, i.team_id, i.inviter_id, i.invitee_id, i.message, i.status,
	i.created_at, i.responded_at, i.expires_at`

// Create creates a new invitation
func (r *TeamInvitationRepository) Create(i *models.TeamInvitation) error {
	query := `
		INSERT INTO team_invitations (id, team_id, inviter_id, invitee_id, message, status, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		i.ID.String(),
		i.TeamID.String(),
		i.InviterID.String(),
		i.InviteeID.String(),
		i.Message,
		i.Status,
		i.ExpiresAt,
	)

	return err
}

// GetByID retrieves an invitation by ID
func (r *TeamInvitationRepository) GetByID(id string) (*models.TeamInvitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM team_invitations i WHERE i.id = ?`

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}

	return r.scanInvitation(rows)
}

// HasOpen reports whether an open invitation already exists for (team, invitee)
func (r *TeamInvitationRepository) HasOpen(teamID, inviteeID string) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM team_invitations
		WHERE team_id = ? AND invitee_id = ? AND status IN (?, ?)
	`
	err := r.db.QueryRow(query, teamID, inviteeID,
		models.InvitationStatusPending, models.InvitationStatusLeaderPending).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListSent returns invitations sent by a user, with display fields
func (r *TeamInvitationRepository) ListSent(userID string) ([]*models.TeamInvitation, error) {
	return r.listWithDetails(`i.inviter_id = ?`, userID)
}

// ListReceived returns a user's open invitations, with display fields
func (r *TeamInvitationRepository) ListReceived(userID string) ([]*models.TeamInvitation, error) {
	return r.listWithDetails(`i.invitee_id = ? AND i.status = 'pending'`, userID)
}

// ListLeaderPending returns member-proposed invitations awaiting a
// leader's approval across teams led by the user
func (r *TeamInvitationRepository) ListLeaderPending(leaderID string) ([]*models.TeamInvitation, error) {
	return r.listWithDetails(
		`i.status = 'leader_pending' AND i.team_id IN (SELECT id FROM teams WHERE leader_id = ?)`,
		leaderID,
	)
}

// UpdateStatus transitions an invitation from an expected current status.
// Returns sql.ErrNoRows when the invitation is no longer in that status.
func (r *TeamInvitationRepository) UpdateStatus(id, fromStatus, toStatus string, respondedAt *time.Time) error {
	result, err := r.db.Exec(
		`UPDATE team_invitations SET status = ?, responded_at = ? WHERE id = ? AND status = ?`,
		toStatus, respondedAt, id, fromStatus,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ExpireOverdue marks open invitations past their expiry as expired.
// Returns the number of invitations expired.
func (r *TeamInvitationRepository) ExpireOverdue(now time.Time) (int64, error) {
	result, err := r.db.Exec(
		`UPDATE team_invitations
		SET status = ?, responded_at = ?
		WHERE status IN (?, ?) AND expires_at < ?`,
		models.InvitationStatusExpired, now,
		models.InvitationStatusPending, models.InvitationStatusLeaderPending, now,
	)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *TeamInvitationRepository) listWithDetails(where string, args ...interface{}) ([]*models.TeamInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `, t.name, inviter.name, invitee.email
		FROM team_invitations i
		JOIN teams t ON t.id = i.team_id
		JOIN users inviter ON inviter.id = i.inviter_id
		JOIN users invitee ON invitee.id = i.invitee_id
		WHERE ` + where + `
		ORDER BY i.created_at DESC
	`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []*models.TeamInvitation
	for rows.Next() {
		i := &models.TeamInvitation{}
		err := rows.Scan(
			&i.ID, &i.TeamID, &i.InviterID, &i.InviteeID, &i.Message, &i.Status,
			&i.CreatedAt, &i.RespondedAt, &i.ExpiresAt,
			&i.TeamName, &i.InviterName, &i.InviteeEmail,
		)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, i)
	}

	return invitations, rows.Err()
}

func (r *TeamInvitationRepository) scanInvitation(rows *sql.Rows) (*models.TeamInvitation, error) {
	i := &models.TeamInvitation{}
	err := rows.Scan(
		&i.ID, &i.TeamID, &i.InviterID, &i.InviteeID, &i.Message, &i.Status,
		&i.CreatedAt, &i.RespondedAt, &i.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return i, nil
}
