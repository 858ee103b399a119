package repositories

import (
	"database/sql"

	"github.com/hackmate/hackmate/internal/models"
)

type TeamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{
		db: db,
	}
}

// TeamFilter narrows team listings
type TeamFilter struct {
	HackathonID string
	Status      string
	Page        int
	PageSize    int
}

const teamColumns = `t.id, t.name, t.description, t.hackathon_id, t.leader_id, t.max_members,
	t.status, t.required_skills, t.looking_for_roles, t.project_name, t.project_idea,
	t.github_repo, t.demo_url, t.allow_remote, t.created_at, t.updated_at`

const activeMemberCount = `(SELECT COUNT(*) FROM team_memberships m WHERE m.team_id = t.id AND m.status = 'active')`

// Create creates a new team
func (r *TeamRepository) Create(t *models.Team) error {
	query := `
		INSERT INTO teams (id, name, description, hackathon_id, leader_id, max_members, status,
			required_skills, looking_for_roles, project_name, project_idea, github_repo, demo_url, allow_remote)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		t.ID.String(),
		t.Name,
		t.Description,
		t.HackathonID.String(),
		t.LeaderID.String(),
		t.MaxMembers,
		t.Status,
		marshalStrings(t.RequiredSkills),
		marshalStrings(t.LookingForRoles),
		t.ProjectName,
		t.ProjectIdea,
		t.GithubRepo,
		t.DemoURL,
		t.AllowRemote,
	)

	return err
}

// GetByID retrieves a team with its active member count
func (r *TeamRepository) GetByID(id string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + `, ` + activeMemberCount + ` FROM teams t WHERE t.id = ?`

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

	return r.scanTeam(rows)
}

// List retrieves teams with pagination, newest first
func (r *TeamRepository) List(filter TeamFilter) ([]*models.Team, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}

	if filter.HackathonID != "" {
		where += ` AND t.hackathon_id = ?`
		args = append(args, filter.HackathonID)
	}
	if filter.Status != "" {
		where += ` AND t.status = ?`
		args = append(args, filter.Status)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM teams t` + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	query := `SELECT ` + teamColumns + `, ` + activeMemberCount + ` FROM teams t` + where +
		` ORDER BY t.created_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		t, err := r.scanTeam(rows)
		if err != nil {
			return nil, 0, err
		}
		teams = append(teams, t)
	}

	return teams, total, rows.Err()
}

// ListByUser returns teams the user leads or is an active member of
func (r *TeamRepository) ListByUser(userID string) ([]*models.Team, error) {
	query := `
		SELECT DISTINCT ` + teamColumns + `, ` + activeMemberCount + `
		FROM teams t
		LEFT JOIN team_memberships m ON m.team_id = t.id
		WHERE t.leader_id = ? OR (m.user_id = ? AND m.status = 'active')
		ORDER BY t.created_at DESC
	`

	rows, err := r.db.Query(query, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		t, err := r.scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}

	return teams, rows.Err()
}

// Update updates a team
func (r *TeamRepository) Update(t *models.Team) error {
	query := `
		UPDATE teams
		SET name = ?, description = ?, max_members = ?, status = ?, required_skills = ?,
			looking_for_roles = ?, project_name = ?, project_idea = ?, github_repo = ?,
			demo_url = ?, allow_remote = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		t.Name,
		t.Description,
		t.MaxMembers,
		t.Status,
		marshalStrings(t.RequiredSkills),
		marshalStrings(t.LookingForRoles),
		t.ProjectName,
		t.ProjectIdea,
		t.GithubRepo,
		t.DemoURL,
		t.AllowRemote,
		t.ID.String(),
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

// UpdateStatus recomputes and stores the team status from its active
// member count
func (r *TeamRepository) UpdateStatus(teamID string) error {
	query := `
		UPDATE teams
		SET status = CASE
			WHEN (SELECT COUNT(*) FROM team_memberships m WHERE m.team_id = teams.id AND m.status = 'active') >= max_members THEN 'full'
			WHEN (SELECT COUNT(*) FROM team_memberships m WHERE m.team_id = teams.id AND m.status = 'active') > 0 THEN 'looking'
			ELSE 'inactive'
		END,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query, teamID)
	return err
}

// Delete deletes a team
func (r *TeamRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM teams WHERE id = ?`, id)
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

func (r *TeamRepository) scanTeam(rows *sql.Rows) (*models.Team, error) {
	t := &models.Team{}
	var requiredSkills, lookingForRoles string

	err := rows.Scan(
		&t.ID, &t.Name, &t.Description, &t.HackathonID, &t.LeaderID, &t.MaxMembers,
		&t.Status, &requiredSkills, &lookingForRoles, &t.ProjectName, &t.ProjectIdea,
		&t.GithubRepo, &t.DemoURL, &t.AllowRemote, &t.CreatedAt, &t.UpdatedAt,
		&t.ActiveMemberCount,
	)

	if err != nil {
		return nil, err
	}

	t.RequiredSkills = unmarshalStrings(requiredSkills)
	t.LookingForRoles = unmarshalStrings(lookingForRoles)

	return t, nil
}
