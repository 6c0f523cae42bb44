package models

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type HealthResponse struct {
	Status   string                 `json:"status"`
	Database string                 `json:"database,omitempty"`
	Pool     map[string]interface{} `json:"pool,omitempty"`
}
