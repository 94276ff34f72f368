package service

import (
	"strings"

	"github.com/grocer-next/internal/constants"
	"github.com/grocer-next/internal/logger"
	"github.com/grocer-next/internal/models"
	"github.com/grocer-next/internal/queue"
	"github.com/grocer-next/internal/repository"
)

// RequestService handles custom product requests: customers ask for
// items the catalog lacks, admins review them.
type RequestService struct {
	repo        repository.CustomRequestRepository
	queueClient *queue.Client
}

// NewRequestService creates a request service.
func NewRequestService(repo repository.CustomRequestRepository, queueClient *queue.Client) *RequestService {
	return &RequestService{repo: repo, queueClient: queueClient}
}

// CreateRequestInput carries a new custom request.
type CreateRequestInput struct {
	Name     string
	Quantity int
	Brand    string
	Notes    string
}

var validRequestStatuses = map[string]struct{}{
	constants.RequestStatusPending:   {},
	constants.RequestStatusReviewed:  {},
	constants.RequestStatusFulfilled: {},
	constants.RequestStatusRejected:  {},
}

// Create files a new request in pending status.
func (s *RequestService) Create(userID uint, input CreateRequestInput) (*models.CustomRequest, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Quantity <= 0 {
		return nil, ErrInvalidRequest
	}
	request := &models.CustomRequest{
		UserID:   userID,
		Name:     name,
		Quantity: input.Quantity,
		Brand:    strings.TrimSpace(input.Brand),
		Notes:    strings.TrimSpace(input.Notes),
		Status:   constants.RequestStatusPending,
	}
	if err := s.repo.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}

// GetForUser returns one of the user's requests.
func (s *RequestService) GetForUser(userID, requestID uint) (*models.CustomRequest, error) {
	if userID == 0 || requestID == 0 {
		return nil, ErrInvalidInput
	}
	request, err := s.repo.GetByIDAndUser(requestID, userID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNotFound
	}
	return request, nil
}

// ListForUser pages through the user's requests.
func (s *RequestService) ListForUser(userID uint, status string, page, pageSize int) ([]models.CustomRequest, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.repo.ListByUser(repository.RequestListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   status,
	})
}

// ListAdmin pages through all requests.
func (s *RequestService) ListAdmin(filter repository.RequestListFilter) ([]models.CustomRequest, int64, error) {
	return s.repo.ListAdmin(filter)
}

// UpdateStatus moves a request to a new status and queues the
// customer notification.
func (s *RequestService) UpdateStatus(requestID uint, status string) (*models.CustomRequest, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if _, ok := validRequestStatuses[normalized]; !ok {
		return nil, ErrInvalidStatus
	}
	request, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNotFound
	}
	if request.Status == normalized {
		return request, nil
	}
	if err := s.repo.UpdateStatus(requestID, normalized); err != nil {
		return nil, err
	}
	if err := s.queueClient.EnqueueRequestStatusEmail(queue.RequestStatusEmailPayload{
		RequestID: requestID,
		Status:    normalized,
	}); err != nil {
		logger.Warnw("request_status_email_enqueue_failed",
			"request_id", requestID,
			"status", normalized,
			"error", err,
		)
	}
	return s.repo.GetByID(requestID)
}
