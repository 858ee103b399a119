package repositories

import (
	"database/sql"

	"github.com/hackmate/hackmate/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, email, password_hash, name, username, bio, location, phone_number,
	github_url, linkedin_url, portfolio_url, skills, interests, experience_level, role,
	total_hackathons_participated, total_hackathons_organized, hackathons_won, average_rating,
	availability_status, oauth_provider, oauth_id, created_at, updated_at`

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, username, bio, location, phone_number,
			github_url, linkedin_url, portfolio_url, skills, interests, experience_level, role,
			total_hackathons_participated, total_hackathons_organized, hackathons_won, average_rating,
			availability_status, oauth_provider, oauth_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		user.ID.String(),
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Username,
		user.Bio,
		user.Location,
		user.PhoneNumber,
		user.GithubURL,
		user.LinkedinURL,
		user.PortfolioURL,
		marshalStrings(user.Skills),
		marshalStrings(user.Interests),
		user.ExperienceLevel,
		user.Role,
		user.TotalHackathonsParticipated,
		user.TotalHackathonsOrganized,
		user.HackathonsWon,
		user.AverageRating,
		user.AvailabilityStatus,
		user.OAuthProvider,
		user.OAuthID,
	)

	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRow(query, id))
}

// GetByEmail retrieves a user by normalized email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRow(query, models.NormalizeEmail(email)))
}

// Update updates a user's profile fields
func (r *UserRepository) Update(user *models.User) error {
	query := `
		UPDATE users
		SET name = ?, username = ?, bio = ?, location = ?, phone_number = ?,
			github_url = ?, linkedin_url = ?, portfolio_url = ?, skills = ?, interests = ?,
			experience_level = ?, role = ?, availability_status = ?,
			oauth_provider = ?, oauth_id = ?, password_hash = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		user.Name,
		user.Username,
		user.Bio,
		user.Location,
		user.PhoneNumber,
		user.GithubURL,
		user.LinkedinURL,
		user.PortfolioURL,
		marshalStrings(user.Skills),
		marshalStrings(user.Interests),
		user.ExperienceLevel,
		user.Role,
		user.AvailabilityStatus,
		user.OAuthProvider,
		user.OAuthID,
		user.PasswordHash,
		user.ID.String(),
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

// UpdateStats writes the recomputed hackathon statistics for a user
func (r *UserRepository) UpdateStats(userID string, participated, organized, won int) error {
	query := `
		UPDATE users
		SET total_hackathons_participated = ?, total_hackathons_organized = ?,
			hackathons_won = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query, participated, organized, won, userID)
	return err
}

// ListIDs returns all user IDs, used by the stats worker sweep
func (r *UserRepository) ListIDs() ([]string, error) {
	rows, err := r.db.Query(`SELECT id FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var skills, interests string

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Username,
		&user.Bio,
		&user.Location,
		&user.PhoneNumber,
		&user.GithubURL,
		&user.LinkedinURL,
		&user.PortfolioURL,
		&skills,
		&interests,
		&user.ExperienceLevel,
		&user.Role,
		&user.TotalHackathonsParticipated,
		&user.TotalHackathonsOrganized,
		&user.HackathonsWon,
		&user.AverageRating,
		&user.AvailabilityStatus,
		&user.OAuthProvider,
		&user.OAuthID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	user.Skills = unmarshalStrings(skills)
	user.Interests = unmarshalStrings(interests)

	return user, nil
}
