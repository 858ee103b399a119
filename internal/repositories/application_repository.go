package repositories

import (
	"database/sql"

	"github.com/hackmate/hackmate/internal/models"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
	}
}

// MatchCandidate pairs a participant profile with their application to a
// hackathon. It is the scorer's unit of input.
type MatchCandidate struct {
	User        *models.User
	Application *models.HackathonApplication
}

const applicationColumns = `id, user_id, hackathon_id, skills, preferred_roles, looking_for_team,
	open_to_remote, project_idea, motivation, goals, preferred_team_size, portfolio_url, github_url,
	linkedin_url, status, submitted_at, reviewed_at, reviewed_by, reviewer_notes, created_at, updated_at`

// Create creates a new application
func (r *ApplicationRepository) Create(a *models.HackathonApplication) error {
	query := `
		INSERT INTO hackathon_applications (id, user_id, hackathon_id, skills, preferred_roles,
			looking_for_team, open_to_remote, project_idea, motivation, goals, preferred_team_size,
			portfolio_url, github_url, linkedin_url, status, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		a.ID.String(),
		a.UserID.String(),
		a.HackathonID.String(),
		marshalStrings(a.Skills),
		marshalStrings(a.PreferredRoles),
		a.LookingForTeam,
		a.OpenToRemote,
		a.ProjectIdea,
		a.Motivation,
		a.Goals,
		a.PreferredTeamSize,
		a.PortfolioURL,
		a.GithubURL,
		a.LinkedinURL,
		a.Status,
		a.SubmittedAt,
	)

	return err
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(id string) (*models.HackathonApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM hackathon_applications WHERE id = ?`

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

	return r.scanApplication(rows)
}

// GetByUserAndHackathon retrieves a user's application to a hackathon
func (r *ApplicationRepository) GetByUserAndHackathon(userID, hackathonID string) (*models.HackathonApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM hackathon_applications WHERE user_id = ? AND hackathon_id = ?`

	rows, err := r.db.Query(query, userID, hackathonID)
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

	return r.scanApplication(rows)
}

// ListByUser returns a user's applications, newest first
func (r *ApplicationRepository) ListByUser(userID string) ([]*models.HackathonApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM hackathon_applications WHERE user_id = ? ORDER BY created_at DESC`
	return r.queryApplications(query, userID)
}

// ListByHackathon returns all applications to a hackathon, newest first
func (r *ApplicationRepository) ListByHackathon(hackathonID string) ([]*models.HackathonApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM hackathon_applications WHERE hackathon_id = ? ORDER BY created_at DESC`
	return r.queryApplications(query, hackathonID)
}

// UpdateStatus updates review status and notes for an application
func (r *ApplicationRepository) UpdateStatus(id, status, notes, reviewerID string) error {
	query := `
		UPDATE hackathon_applications
		SET status = ?, reviewer_notes = ?, reviewed_by = ?, reviewed_at = CURRENT_TIMESTAMP,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.Exec(query, status, notes, reviewerID, id)
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

// GetStats counts applications per status for a hackathon
func (r *ApplicationRepository) GetStats(hackathonID string) (*models.ApplicationStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'submitted' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'accepted' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'waitlisted' THEN 1 ELSE 0 END), 0)
		FROM hackathon_applications
		WHERE hackathon_id = ?
	`

	stats := &models.ApplicationStats{}
	err := r.db.QueryRow(query, hackathonID).Scan(
		&stats.Total, &stats.Submitted, &stats.Accepted, &stats.Rejected, &stats.Waitlisted,
	)
	if err != nil {
		return nil, err
	}

	if id, err := parseUUID(hackathonID); err == nil {
		stats.HackathonID = id
	}

	return stats, nil
}

// GetTeamSeekingCandidates returns all participants of a hackathon who are
// looking for a team and are not already active in one of its teams. The
// requesting user is excluded; order is stable (oldest application first)
// so equal scores keep a deterministic ranking.
func (r *ApplicationRepository) GetTeamSeekingCandidates(hackathonID, excludeUserID string) ([]*MatchCandidate, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.name, u.username, u.bio, u.location, u.phone_number,
			u.github_url, u.linkedin_url, u.portfolio_url, u.skills, u.interests, u.experience_level, u.role,
			u.total_hackathons_participated, u.total_hackathons_organized, u.hackathons_won, u.average_rating,
			u.availability_status, u.oauth_provider, u.oauth_id, u.created_at, u.updated_at,
			a.id, a.skills, a.preferred_roles, a.looking_for_team, a.open_to_remote, a.project_idea,
			a.github_url, a.status
		FROM hackathon_applications a
		JOIN users u ON u.id = a.user_id
		WHERE a.hackathon_id = ?
		AND a.user_id != ?
		AND a.looking_for_team = 1
		AND a.status IN ('submitted', 'accepted')
		AND a.user_id NOT IN (
			SELECT m.user_id FROM team_memberships m
			JOIN teams t ON t.id = m.team_id
			WHERE t.hackathon_id = ? AND m.status = 'active'
		)
		ORDER BY a.created_at ASC
	`

	rows, err := r.db.Query(query, hackathonID, excludeUserID, hackathonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []*MatchCandidate
	for rows.Next() {
		user := &models.User{}
		app := &models.HackathonApplication{}
		var userSkills, interests, appSkills, roles string

		err := rows.Scan(
			&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Username, &user.Bio,
			&user.Location, &user.PhoneNumber, &user.GithubURL, &user.LinkedinURL, &user.PortfolioURL,
			&userSkills, &interests, &user.ExperienceLevel, &user.Role,
			&user.TotalHackathonsParticipated, &user.TotalHackathonsOrganized, &user.HackathonsWon,
			&user.AverageRating, &user.AvailabilityStatus, &user.OAuthProvider, &user.OAuthID,
			&user.CreatedAt, &user.UpdatedAt,
			&app.ID, &appSkills, &roles, &app.LookingForTeam, &app.OpenToRemote, &app.ProjectIdea,
			&app.GithubURL, &app.Status,
		)
		if err != nil {
			return nil, err
		}

		user.Skills = unmarshalStrings(userSkills)
		user.Interests = unmarshalStrings(interests)
		app.UserID = user.ID
		app.Skills = unmarshalStrings(appSkills)
		app.PreferredRoles = unmarshalStrings(roles)

		candidates = append(candidates, &MatchCandidate{User: user, Application: app})
	}

	return candidates, rows.Err()
}

// CountByUserStatuses counts a user's applications in the given statuses,
// used by the stats worker
func (r *ApplicationRepository) CountByUserStatuses(userID string, statuses []string) (int, error) {
	query := `SELECT COUNT(*) FROM hackathon_applications WHERE user_id = ? AND status IN (`
	args := []interface{}{userID}
	for i, status := range statuses {
		if i > 0 {
			query += `, `
		}
		query += `?`
		args = append(args, status)
	}
	query += `)`

	var count int
	err := r.db.QueryRow(query, args...).Scan(&count)
	return count, err
}

func (r *ApplicationRepository) queryApplications(query string, args ...interface{}) ([]*models.HackathonApplication, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []*models.HackathonApplication
	for rows.Next() {
		a, err := r.scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}

	return applications, rows.Err()
}

func (r *ApplicationRepository) scanApplication(rows *sql.Rows) (*models.HackathonApplication, error) {
	a := &models.HackathonApplication{}
	var skills, roles string
	var reviewedBy sql.NullString

	err := rows.Scan(
		&a.ID, &a.UserID, &a.HackathonID, &skills, &roles, &a.LookingForTeam, &a.OpenToRemote,
		&a.ProjectIdea, &a.Motivation, &a.Goals, &a.PreferredTeamSize, &a.PortfolioURL,
		&a.GithubURL, &a.LinkedinURL, &a.Status, &a.SubmittedAt, &a.ReviewedAt, &reviewedBy,
		&a.ReviewerNotes, &a.CreatedAt, &a.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	a.Skills = unmarshalStrings(skills)
	a.PreferredRoles = unmarshalStrings(roles)

	if reviewedBy.Valid {
		if id, err := parseUUID(reviewedBy.String); err == nil {
			a.ReviewedBy = &id
		}
	}

	return a, nil
}
