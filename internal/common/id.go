package common

import (
	"github.com/google/uuid"
)

// NewJobID generates a unique job ID with the "job_" prefix
func NewJobID() string {
	return "job_" + uuid.New().String()
}

// NewResultID generates a unique analysis result ID with the "res_" prefix
func NewResultID() string {
	return "res_" + uuid.New().String()
}

// NewAlertID generates a unique competitive alert ID with the "alert_" prefix
func NewAlertID() string {
	return "alert_" + uuid.New().String()
}
