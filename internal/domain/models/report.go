package models

import "time"

// SubmissionEntry is a journaled, successfully submitted fabric record.
type SubmissionEntry struct {
	Input       FabricInput `bson:"input" json:"input"`
	QRCodeURL   string      `bson:"qr_code_url" json:"qrCodeUrl"`
	SessionID   string      `bson:"session_id,omitempty" json:"sessionId,omitempty"`
	SubmittedAt time.Time   `bson:"submitted_at" json:"submittedAt"`
}

// DailyDigest represents the aggregated intake of one day, stored in MongoDB.
type DailyDigest struct {
	Date         time.Time      `bson:"date" json:"date"`
	Submissions  int            `bson:"submissions" json:"submissions"`
	TotalLength  float64        `bson:"total_length" json:"total_length"`
	TotalValue   float64        `bson:"total_value" json:"total_value"`
	FabricCounts map[string]int `bson:"fabric_counts" json:"fabric_counts"`
	CreatedAt    time.Time      `bson:"created_at" json:"created_at"`
}
