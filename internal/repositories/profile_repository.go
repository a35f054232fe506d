package repositories

import (
	"github.com/lucymaru126/montage/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(profile *models.Profile) error
	GetProfileByID(id uint) (*models.Profile, error)
	GetProfilesByIDs(ids []uint) (map[uint]models.Profile, error)
	GetProfileByUsername(username string) (*models.Profile, error)
	GetProfileByEmail(email string) (*models.Profile, error)
	GetProfileByFirebaseUID(firebaseUID string) (*models.Profile, error)
	UpdateProfile(profile *models.Profile) error
	SearchProfiles(query string) ([]models.Profile, error)
	SetBanned(id uint, banned bool) error
	SetVerified(id uint, verified bool) error
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// CreateProfile creates a new profile in PostgreSQL
func (r *PostgresProfileRepository) CreateProfile(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// GetProfileByID retrieves a profile by ID
func (r *PostgresProfileRepository) GetProfileByID(id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfilesByIDs retrieves all profiles for the given id set in one
// query, keyed by id. Read composition uses this to resolve every
// author/commenter/actor reference in a single round trip.
func (r *PostgresProfileRepository) GetProfilesByIDs(ids []uint) (map[uint]models.Profile, error) {
	result := make(map[uint]models.Profile)
	if len(ids) == 0 {
		return result, nil
	}
	var profiles []models.Profile
	if err := r.db.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		result[p.ID] = p
	}
	return result, nil
}

// GetProfileByUsername retrieves a profile by username, case-insensitively
func (r *PostgresProfileRepository) GetProfileByUsername(username string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("LOWER(username) = LOWER(?)", username).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByEmail retrieves a profile by email
func (r *PostgresProfileRepository) GetProfileByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByFirebaseUID retrieves a profile linked to a Firebase identity
func (r *PostgresProfileRepository) GetProfileByFirebaseUID(firebaseUID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates an existing profile
func (r *PostgresProfileRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// SearchProfiles searches profiles by username or full name (case-insensitive)
func (r *PostgresProfileRepository) SearchProfiles(query string) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Where("LOWER(username) LIKE LOWER(?) OR LOWER(full_name) LIKE LOWER(?)", "%"+query+"%", "%"+query+"%").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// SetBanned flips the banned moderation flag
func (r *PostgresProfileRepository) SetBanned(id uint, banned bool) error {
	res := r.db.Model(&models.Profile{}).Where("id = ?", id).Update("is_banned", banned)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetVerified flips the verified flag
func (r *PostgresProfileRepository) SetVerified(id uint, verified bool) error {
	res := r.db.Model(&models.Profile{}).Where("id = ?", id).Update("is_verified", verified)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
