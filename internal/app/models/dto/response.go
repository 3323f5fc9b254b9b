package dto

import "time"

// PingResponse is the liveness payload
type PingResponse struct {
	Message string `json:"message" example:"pong"`
	Status  string `json:"status" example:"success"`
}

// HealthResponse reports readiness of the service and its dependencies
type HealthResponse struct {
	Status    string            `json:"status" example:"ok"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}
