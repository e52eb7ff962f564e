package response

import (
	"time"

	"assistec/internal/domain/entities"
)

type ServiceOrderResponse struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	DeviceBrand   string    `json:"device_brand"`
	DeviceModel   string    `json:"device_model"`
	DeviceSerial  string    `json:"device_serial,omitempty"`
	ReportedIssue string    `json:"reported_issue"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromServiceOrder(so entities.ServiceOrder) ServiceOrderResponse {
	return ServiceOrderResponse{
		ID:            so.ID,
		CustomerName:  so.CustomerName,
		DeviceBrand:   so.DeviceBrand,
		DeviceModel:   so.DeviceModel,
		DeviceSerial:  so.DeviceSerial,
		ReportedIssue: so.ReportedIssue,
		Status:        string(so.Status),
		CreatedAt:     so.CreatedAt,
		UpdatedAt:     so.UpdatedAt,
	}
}
