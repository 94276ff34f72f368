package repository

import (
	"errors"
	"strings"

	"github.com/grocer-next/internal/models"

	"gorm.io/gorm"
)

// CustomRequestRepository is the custom request data access interface.
type CustomRequestRepository interface {
	Create(request *models.CustomRequest) error
	GetByID(id uint) (*models.CustomRequest, error)
	GetByIDAndUser(id uint, userID uint) (*models.CustomRequest, error)
	ListByUser(filter RequestListFilter) ([]models.CustomRequest, int64, error)
	ListAdmin(filter RequestListFilter) ([]models.CustomRequest, int64, error)
	UpdateStatus(id uint, status string) error
}

// GormCustomRequestRepository is the GORM implementation.
type GormCustomRequestRepository struct {
	db *gorm.DB
}

// NewCustomRequestRepository creates a custom request repository.
func NewCustomRequestRepository(db *gorm.DB) *GormCustomRequestRepository {
	return &GormCustomRequestRepository{db: db}
}

// Create inserts a custom request.
func (r *GormCustomRequestRepository) Create(request *models.CustomRequest) error {
	return r.db.Create(request).Error
}

// GetByID fetches a request by ID; nil when absent.
func (r *GormCustomRequestRepository) GetByID(id uint) (*models.CustomRequest, error) {
	var request models.CustomRequest
	if err := r.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// GetByIDAndUser fetches a request owned by userID; nil when absent.
func (r *GormCustomRequestRepository) GetByIDAndUser(id uint, userID uint) (*models.CustomRequest, error) {
	var request models.CustomRequest
	if err := r.db.Where("user_id = ?", userID).First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// ListByUser pages through one user's requests.
func (r *GormCustomRequestRepository) ListByUser(filter RequestListFilter) ([]models.CustomRequest, int64, error) {
	if filter.UserID == 0 {
		return []models.CustomRequest{}, 0, nil
	}
	return r.list(filter)
}

// ListAdmin pages through all requests.
func (r *GormCustomRequestRepository) ListAdmin(filter RequestListFilter) ([]models.CustomRequest, int64, error) {
	return r.list(filter)
}

func (r *GormCustomRequestRepository) list(filter RequestListFilter) ([]models.CustomRequest, int64, error) {
	query := r.db.Model(&models.CustomRequest{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR brand LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var requests []models.CustomRequest
	if err := query.Order("id DESC").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// UpdateStatus sets a request's status.
func (r *GormCustomRequestRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.CustomRequest{}).Where("id = ?", id).Update("status", status).Error
}
