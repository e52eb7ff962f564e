package request

// CreateServiceOrderRequest is the device intake form.
type CreateServiceOrderRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	DeviceBrand   string `json:"device_brand" binding:"required"`
	DeviceModel   string `json:"device_model" binding:"required"`
	DeviceSerial  string `json:"device_serial"`
	ReportedIssue string `json:"reported_issue" binding:"required"`
}

// UpdateServiceOrderStatusRequest moves an OS through the repair workflow.
type UpdateServiceOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
