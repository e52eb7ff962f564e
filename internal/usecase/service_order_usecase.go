package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"assistec/internal/domain/entities"
	"assistec/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrServiceOrderNotFound      = errors.New("service order not found")
	ErrInvalidServiceOrderFields = errors.New("invalid service order fields")
	ErrInvalidServiceOrderStatus = errors.New("invalid service order status")
)

// CreateServiceOrderInput carries the intake form for a repair job.
type CreateServiceOrderInput struct {
	CustomerName  string
	DeviceBrand   string
	DeviceModel   string
	DeviceSerial  string
	ReportedIssue string
}

// IServiceOrderUseCase exposes the OS intake operations the quote engine
// hangs off of.

type IServiceOrderUseCase interface {
	Create(ctx context.Context, in CreateServiceOrderInput) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	UpdateStatus(ctx context.Context, id string, status entities.ServiceOrderStatus) (entities.ServiceOrder, error)
}

type ServiceOrderUseCase struct {
	repo interfaces.IServiceOrderRepository
}

var _ IServiceOrderUseCase = (*ServiceOrderUseCase)(nil)

func NewServiceOrderUseCase(repo interfaces.IServiceOrderRepository) *ServiceOrderUseCase {
	return &ServiceOrderUseCase{repo: repo}
}

func (u *ServiceOrderUseCase) Create(ctx context.Context, in CreateServiceOrderInput) (entities.ServiceOrder, error) {
	customer := strings.TrimSpace(in.CustomerName)
	brand := strings.TrimSpace(in.DeviceBrand)
	model := strings.TrimSpace(in.DeviceModel)
	issue := strings.TrimSpace(in.ReportedIssue)
	if customer == "" || brand == "" || model == "" || issue == "" {
		return entities.ServiceOrder{}, ErrInvalidServiceOrderFields
	}

	now := time.Now().UTC()
	return u.repo.Create(ctx, entities.ServiceOrder{
		ID:            uuid.NewString(),
		CustomerName:  customer,
		DeviceBrand:   brand,
		DeviceModel:   model,
		DeviceSerial:  strings.TrimSpace(in.DeviceSerial),
		ReportedIssue: issue,
		Status:        entities.ServiceOrderStatusReceived,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

func (u *ServiceOrderUseCase) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceOrder{}, ErrInvalidServiceOrderID
	}

	so, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if so.ID == "" {
		return entities.ServiceOrder{}, ErrServiceOrderNotFound
	}
	return so, nil
}

func (u *ServiceOrderUseCase) UpdateStatus(ctx context.Context, id string, status entities.ServiceOrderStatus) (entities.ServiceOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceOrder{}, ErrInvalidServiceOrderID
	}

	switch status {
	case entities.ServiceOrderStatusReceived,
		entities.ServiceOrderStatusInDiagnosis,
		entities.ServiceOrderStatusAwaitingApproval,
		entities.ServiceOrderStatusInRepair,
		entities.ServiceOrderStatusDone,
		entities.ServiceOrderStatusDelivered:
	default:
		return entities.ServiceOrder{}, ErrInvalidServiceOrderStatus
	}

	updated, err := u.repo.UpdateStatusByID(ctx, id, status)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if updated.ID == "" {
		return entities.ServiceOrder{}, ErrServiceOrderNotFound
	}
	return updated, nil
}
