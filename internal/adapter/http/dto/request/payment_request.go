package request

import "encoding/json"

// PaymentCreateRequest is the payload for the "charge a quote" route.
//
// `provider_payload` is stored as-is (raw JSON) to support varying Mercado
// Pago schemas.

type PaymentCreateRequest struct {
	ProviderPayload json.RawMessage `json:"provider_payload"`
}
