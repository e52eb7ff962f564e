package entities

import "time"

// ServiceOrderStatus tracks the repair workflow of a device in the shop.

type ServiceOrderStatus string

const (
	ServiceOrderStatusReceived         ServiceOrderStatus = "received"
	ServiceOrderStatusInDiagnosis      ServiceOrderStatus = "in_diagnosis"
	ServiceOrderStatusAwaitingApproval ServiceOrderStatus = "awaiting_approval"
	ServiceOrderStatusInRepair         ServiceOrderStatus = "in_repair"
	ServiceOrderStatusDone             ServiceOrderStatus = "done"
	ServiceOrderStatusDelivered        ServiceOrderStatus = "delivered"
)

// ServiceOrder (OS) is the repair job quotes attach to.
//
// Storage model (DynamoDB):
//   - PK: id
type ServiceOrder struct {
	ID            string             `json:"id"`
	CustomerName  string             `json:"customer_name"`
	DeviceBrand   string             `json:"device_brand"`
	DeviceModel   string             `json:"device_model"`
	DeviceSerial  string             `json:"device_serial,omitempty"`
	ReportedIssue string             `json:"reported_issue"`
	Status        ServiceOrderStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     *time.Time         `json:"deleted_at,omitempty"`
}
