package repositories

import (
	"database/sql"

	"github.com/hackmate/hackmate/internal/models"
)

type FavoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{
		db: db,
	}
}

// Create marks a hackathon as a user's favorite
func (r *FavoriteRepository) Create(favorite *models.FavoriteHackathon) error {
	query := `
		INSERT INTO favorite_hackathons (id, user_id, hackathon_id)
		VALUES (?, ?, ?)
	`

	_, err := r.db.Exec(query,
		favorite.ID.String(),
		favorite.UserID.String(),
		favorite.HackathonID.String(),
	)

	return err
}

// ListByUser returns a user's favorites, newest first
func (r *FavoriteRepository) ListByUser(userID string) ([]*models.FavoriteHackathon, error) {
	query := `
		SELECT id, user_id, hackathon_id, created_at
		FROM favorite_hackathons
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []*models.FavoriteHackathon
	for rows.Next() {
		favorite := &models.FavoriteHackathon{}
		if err := rows.Scan(&favorite.ID, &favorite.UserID, &favorite.HackathonID, &favorite.CreatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, favorite)
	}

	return favorites, rows.Err()
}

// Exists reports whether a favorite already exists
func (r *FavoriteRepository) Exists(userID, hackathonID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM favorite_hackathons WHERE user_id = ? AND hackathon_id = ?`
	if err := r.db.QueryRow(query, userID, hackathonID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a user's favorite
func (r *FavoriteRepository) Delete(userID, hackathonID string) error {
	result, err := r.db.Exec(
		`DELETE FROM favorite_hackathons WHERE user_id = ? AND hackathon_id = ?`,
		userID, hackathonID,
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
