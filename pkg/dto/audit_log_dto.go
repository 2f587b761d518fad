package dto

import "time"

// Response DTOs

type AuditLogResponse struct {
	ID        int64                  `json:"id"`
	User      *UserResponse          `json:"user,omitempty"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
}
