package repositories

import (
	"database/sql"

	"github.com/hackmate/hackmate/internal/models"
)

type HackathonRepository struct {
	db *sql.DB
}

func NewHackathonRepository(db *sql.DB) *HackathonRepository {
	return &HackathonRepository{
		db: db,
	}
}

// HackathonFilter narrows hackathon listings
type HackathonFilter struct {
	Platform  string
	IsVirtual *bool
	Query     string
}

const hackathonColumns = `id, title, description, start_date, end_date, location, is_virtual,
	prize_pool, themes, sponsors, registration_deadline, requirements, tags, platform, url,
	max_team_size, participants, image, created_by, is_user_created, is_published, created_at, updated_at`

// Create creates a new hackathon
func (r *HackathonRepository) Create(h *models.Hackathon) error {
	query := `
		INSERT INTO hackathons (id, title, description, start_date, end_date, location, is_virtual,
			prize_pool, themes, sponsors, registration_deadline, requirements, tags, platform, url,
			max_team_size, participants, image, created_by, is_user_created, is_published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var createdBy interface{}
	if h.CreatedBy != nil {
		createdBy = h.CreatedBy.String()
	}

	_, err := r.db.Exec(query,
		h.ID.String(), h.Title, h.Description, h.StartDate, h.EndDate, h.Location, h.IsVirtual,
		h.PrizePool, h.Themes, h.Sponsors, h.RegistrationDeadline, h.Requirements, h.Tags,
		h.Platform, h.URL, h.MaxTeamSize, h.Participants, h.Image, createdBy,
		h.IsUserCreated, h.IsPublished,
	)

	return err
}

// GetByID retrieves a hackathon by ID
func (r *HackathonRepository) GetByID(id string) (*models.Hackathon, error) {
	query := `SELECT ` + hackathonColumns + ` FROM hackathons WHERE id = ?`

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

	return r.scanHackathon(rows)
}

// List retrieves hackathons ordered by start date, newest first
func (r *HackathonRepository) List(filter HackathonFilter) ([]*models.Hackathon, error) {
	query := `SELECT ` + hackathonColumns + ` FROM hackathons WHERE 1=1`
	args := []interface{}{}

	if filter.Platform != "" {
		query += ` AND platform = ?`
		args = append(args, filter.Platform)
	}
	if filter.IsVirtual != nil {
		query += ` AND is_virtual = ?`
		args = append(args, *filter.IsVirtual)
	}
	if filter.Query != "" {
		query += ` AND (title LIKE ? OR description LIKE ? OR themes LIKE ? OR tags LIKE ?)`
		pattern := "%" + filter.Query + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}

	query += ` ORDER BY start_date DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hackathons []*models.Hackathon
	for rows.Next() {
		h, err := r.scanHackathon(rows)
		if err != nil {
			return nil, err
		}
		hackathons = append(hackathons, h)
	}

	return hackathons, rows.Err()
}

// Update updates a hackathon
func (r *HackathonRepository) Update(h *models.Hackathon) error {
	query := `
		UPDATE hackathons
		SET title = ?, description = ?, start_date = ?, end_date = ?, location = ?, is_virtual = ?,
			prize_pool = ?, themes = ?, sponsors = ?, registration_deadline = ?, requirements = ?,
			tags = ?, platform = ?, url = ?, max_team_size = ?, participants = ?, image = ?,
			is_published = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		h.Title, h.Description, h.StartDate, h.EndDate, h.Location, h.IsVirtual,
		h.PrizePool, h.Themes, h.Sponsors, h.RegistrationDeadline, h.Requirements,
		h.Tags, h.Platform, h.URL, h.MaxTeamSize, h.Participants, h.Image,
		h.IsPublished, h.ID.String(),
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

// CountByCreator counts published hackathons created by a user
func (r *HackathonRepository) CountByCreator(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM hackathons WHERE created_by = ? AND is_published = 1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

// Delete deletes a hackathon
func (r *HackathonRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM hackathons WHERE id = ?`, id)
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

func (r *HackathonRepository) scanHackathon(rows *sql.Rows) (*models.Hackathon, error) {
	h := &models.Hackathon{}
	var createdBy sql.NullString

	err := rows.Scan(
		&h.ID, &h.Title, &h.Description, &h.StartDate, &h.EndDate, &h.Location, &h.IsVirtual,
		&h.PrizePool, &h.Themes, &h.Sponsors, &h.RegistrationDeadline, &h.Requirements, &h.Tags,
		&h.Platform, &h.URL, &h.MaxTeamSize, &h.Participants, &h.Image, &createdBy,
		&h.IsUserCreated, &h.IsPublished, &h.CreatedAt, &h.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	if createdBy.Valid {
		if id, err := parseUUID(createdBy.String); err == nil {
			h.CreatedBy = &id
		}
	}

	return h, nil
}
