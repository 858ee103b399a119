package repositories

import (
	"database/sql"
	"time"

	"github.com/hackmate/hackmate/internal/models"
)

type TeamMembershipRepository struct {
	db *sql.DB
}

func NewTeamMembershipRepository(db *sql.DB) *TeamMembershipRepository {
	return &TeamMembershipRepository{
		db: db,
	}
}

const membershipColumns = `m.id, m.team_id, m.user_id, m.role, m.status, m.skills_contribution,
	m.preferred_role_in_project, m.invited_at, m.joined_at, m.left_at, m.invited_by, m.invitation_message`

// Create creates a new membership row
func (r *TeamMembershipRepository) Create(m *models.TeamMembership) error {
	query := `
		INSERT INTO team_memberships (id, team_id, user_id, role, status, skills_contribution,
			preferred_role_in_project, invited_at, joined_at, left_at, invited_by, invitation_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var invitedBy interface{}
	if m.InvitedBy != nil {
		invitedBy = m.InvitedBy.String()
	}

	_, err := r.db.Exec(query,
		m.ID.String(),
		m.TeamID.String(),
		m.UserID.String(),
		m.Role,
		m.Status,
		marshalStrings(m.SkillsContribution),
		m.PreferredRoleInProject,
		m.InvitedAt,
		m.JoinedAt,
		m.LeftAt,
		invitedBy,
		m.InvitationMessage,
	)

	return err
}

// GetByTeamUserAndStatus retrieves a membership in a specific status
func (r *TeamMembershipRepository) GetByTeamUserAndStatus(teamID, userID, status string) (*models.TeamMembership, error) {
	query := `SELECT ` + membershipColumns + ` FROM team_memberships m WHERE m.team_id = ? AND m.user_id = ? AND m.status = ?`

	rows, err := r.db.Query(query, teamID, userID, status)
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

	return r.scanMembership(rows)
}

// ExistsWithStatus reports whether a (team, user) membership exists in a status
func (r *TeamMembershipRepository) ExistsWithStatus(teamID, userID, status string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM team_memberships WHERE team_id = ? AND user_id = ? AND status = ?`
	if err := r.db.QueryRow(query, teamID, userID, status).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByTeam returns memberships of a team with member display fields
func (r *TeamMembershipRepository) ListByTeam(teamID string, status string) ([]*models.TeamMembership, error) {
	query := `
		SELECT ` + membershipColumns + `, u.name, u.email
		FROM team_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.team_id = ?
	`
	args := []interface{}{teamID}

	if status != "" {
		query += ` AND m.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY m.invited_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []*models.TeamMembership
	for rows.Next() {
		m := &models.TeamMembership{}
		var skills string
		var invitedBy sql.NullString

		err := rows.Scan(
			&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.Status, &skills,
			&m.PreferredRoleInProject, &m.InvitedAt, &m.JoinedAt, &m.LeftAt,
			&invitedBy, &m.InvitationMessage, &m.UserName, &m.UserEmail,
		)
		if err != nil {
			return nil, err
		}

		m.SkillsContribution = unmarshalStrings(skills)
		if invitedBy.Valid {
			if id, err := parseUUID(invitedBy.String); err == nil {
				m.InvitedBy = &id
			}
		}

		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}

// UpdateStatus sets a membership status with the matching timestamp fields
func (r *TeamMembershipRepository) UpdateStatus(m *models.TeamMembership) error {
	query := `
		UPDATE team_memberships
		SET status = ?, joined_at = ?, left_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, m.Status, m.JoinedAt, m.LeftAt, m.ID.String())
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

// ApproveWithExclusivity activates a pending membership and, in the same
// transaction, declines the user's other pending memberships and expires
// their open invitations within the same hackathon. Approval must be
// exclusive per hackathon, so the whole multi-row update is atomic.
func (r *TeamMembershipRepository) ApproveWithExclusivity(membershipID, userID, hackathonID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()

	result, err := tx.Exec(
		`UPDATE team_memberships SET status = ?, joined_at = ? WHERE id = ? AND status = ?`,
		models.MembershipStatusActive, now, membershipID, models.MembershipStatusPending,
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

	if err := declineOtherPending(tx, membershipID, userID, hackathonID, now); err != nil {
		return err
	}

	return tx.Commit()
}

// AcceptInvitationWithExclusivity creates (or re-activates) an active
// membership from an accepted invitation, marks the invitation accepted,
// and applies the same per-hackathon exclusivity sweep, all in one
// transaction.
func (r *TeamMembershipRepository) AcceptInvitationWithExclusivity(invitation *models.TeamInvitation, membership *models.TeamMembership, hackathonID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()

	var invitedBy interface{}
	if membership.InvitedBy != nil {
		invitedBy = membership.InvitedBy.String()
	}

	// A declined/left row for this (team, user) may exist; replace it.
	_, err = tx.Exec(
		`DELETE FROM team_memberships WHERE team_id = ? AND user_id = ?`,
		membership.TeamID.String(), membership.UserID.String(),
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		`INSERT INTO team_memberships (id, team_id, user_id, role, status, skills_contribution,
			preferred_role_in_project, invited_at, joined_at, invited_by, invitation_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		membership.ID.String(),
		membership.TeamID.String(),
		membership.UserID.String(),
		membership.Role,
		models.MembershipStatusActive,
		marshalStrings(membership.SkillsContribution),
		membership.PreferredRoleInProject,
		membership.InvitedAt,
		now,
		invitedBy,
		membership.InvitationMessage,
	)
	if err != nil {
		return err
	}

	result, err := tx.Exec(
		`UPDATE team_invitations SET status = ?, responded_at = ? WHERE id = ? AND status = ?`,
		models.InvitationStatusAccepted, now, invitation.ID.String(), models.InvitationStatusPending,
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

	if err := declineOtherPending(tx, membership.ID.String(), membership.UserID.String(), hackathonID, now); err != nil {
		return err
	}

	return tx.Commit()
}

// declineOtherPending declines every other pending membership and expires
// every open invitation for the user across teams of the same hackathon.
func declineOtherPending(tx *sql.Tx, keepMembershipID, userID, hackathonID string, now time.Time) error {
	_, err := tx.Exec(
		`UPDATE team_memberships
		SET status = ?
		WHERE user_id = ? AND status = ? AND id != ?
		AND team_id IN (SELECT id FROM teams WHERE hackathon_id = ?)`,
		models.MembershipStatusDeclined, userID, models.MembershipStatusPending,
		keepMembershipID, hackathonID,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		`UPDATE team_invitations
		SET status = ?, responded_at = ?
		WHERE invitee_id = ? AND status IN (?, ?)
		AND team_id IN (SELECT id FROM teams WHERE hackathon_id = ?)`,
		models.InvitationStatusExpired, now, userID,
		models.InvitationStatusPending, models.InvitationStatusLeaderPending, hackathonID,
	)

	return err
}

// CountActiveByUser counts teams the user is currently active in
func (r *TeamMembershipRepository) CountActiveByUser(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM team_memberships WHERE user_id = ? AND status = 'active'`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func (r *TeamMembershipRepository) scanMembership(rows *sql.Rows) (*models.TeamMembership, error) {
	m := &models.TeamMembership{}
	var skills string
	var invitedBy sql.NullString

	err := rows.Scan(
		&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.Status, &skills,
		&m.PreferredRoleInProject, &m.InvitedAt, &m.JoinedAt, &m.LeftAt,
		&invitedBy, &m.InvitationMessage,
	)

	if err != nil {
		return nil, err
	}

	m.SkillsContribution = unmarshalStrings(skills)
	if invitedBy.Valid {
		if id, err := parseUUID(invitedBy.String); err == nil {
			m.InvitedBy = &id
		}
	}

	return m, nil
}
