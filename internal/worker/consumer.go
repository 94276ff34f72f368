package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/grocer-next/internal/logger"
	"github.com/grocer-next/internal/provider"
	"github.com/grocer-next/internal/queue"
	"github.com/grocer-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer processes queued notification tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{Container: c}
}

// Register binds task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskRequestStatusEmail, c.handleRequestStatusEmail)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	receiverEmail, err := c.OrderRepo.ResolveReceiverEmailByOrderID(order.ID)
	if err != nil {
		logger.Warnw("worker_order_status_email_resolve_receiver_failed", "order_id", order.ID, "error", err)
		return err
	}
	if receiverEmail == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	input := service.OrderStatusEmailInput{
		OrderNo:    order.OrderNo,
		Status:     status,
		TotalPrice: order.TotalPrice,
	}
	if err := c.EmailService.SendOrderStatusEmail(receiverEmail, input); err != nil {
		if err == service.ErrEmailServiceDisabled || err == service.ErrEmailServiceNotConfigured {
			logger.Debugw("worker_order_status_email_skip_disabled", "order_id", order.ID)
			return nil
		}
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleRequestStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.RequestStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_request_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.RequestID == 0 {
		logger.Debugw("worker_request_status_email_skip_invalid_payload", "request_id", payload.RequestID)
		return nil
	}
	request, err := c.RequestRepo.GetByID(payload.RequestID)
	if err != nil {
		logger.Warnw("worker_request_status_email_fetch_failed", "request_id", payload.RequestID, "error", err)
		return err
	}
	if request == nil {
		logger.Debugw("worker_request_status_email_skip_not_found", "request_id", payload.RequestID)
		return nil
	}
	user, err := c.UserRepo.GetByID(request.UserID)
	if err != nil {
		logger.Warnw("worker_request_status_email_fetch_user_failed", "request_id", request.ID, "user_id", request.UserID, "error", err)
		return err
	}
	if user == nil || strings.TrimSpace(user.Email) == "" {
		logger.Debugw("worker_request_status_email_skip_empty_receiver", "request_id", request.ID)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = request.Status
	}
	input := service.RequestStatusEmailInput{
		RequestID: request.ID,
		ItemName:  request.Name,
		Status:    status,
	}
	if err := c.EmailService.SendRequestStatusEmail(strings.TrimSpace(user.Email), input); err != nil {
		if err == service.ErrEmailServiceDisabled || err == service.ErrEmailServiceNotConfigured {
			logger.Debugw("worker_request_status_email_skip_disabled", "request_id", request.ID)
			return nil
		}
		logger.Warnw("worker_request_status_email_send_failed",
			"request_id", request.ID,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}
