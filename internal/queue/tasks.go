package queue

import (
	"encoding/json"

	"github.com/grocer-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail notifies a customer of an order status change.
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskRequestStatusEmail notifies a customer of a custom request status change.
	TaskRequestStatusEmail = constants.TaskRequestStatusEmail
)

// OrderStatusEmailPayload is the order status email task payload.
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// RequestStatusEmailPayload is the request status email task payload.
type RequestStatusEmailPayload struct {
	RequestID uint   `json:"request_id"`
	Status    string `json:"status"`
}

// NewOrderStatusEmailTask builds an order status email task.
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewRequestStatusEmailTask builds a request status email task.
func NewRequestStatusEmailTask(payload RequestStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRequestStatusEmail, body), nil
}
