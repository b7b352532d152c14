package models

import "time"

// User is a registered policy holder.
type User struct {
	ID            string    `bson:"_id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Vehicle       string    `bson:"vehicle" json:"vehicle"`
	InsuranceType string    `bson:"insurance_type" json:"insurance_type"`
	ClaimReported bool      `bson:"claim_reported" json:"claim_reported"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// Appointment is captured by the scheduling flow. Fields are stored exactly as typed.
type Appointment struct {
	ID        string    `bson:"_id" json:"id"`
	SessionID string    `bson:"session_id,omitempty" json:"session_id,omitempty"`
	Date      string    `bson:"date" json:"date"`
	Time      string    `bson:"time" json:"time"`
	Reason    string    `bson:"reason" json:"reason"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Claim is captured by the claim flow. Fields are stored exactly as typed.
type Claim struct {
	ID          string    `bson:"_id" json:"id"`
	SessionID   string    `bson:"session_id,omitempty" json:"session_id,omitempty"`
	Date        string    `bson:"date" json:"date"`
	Type        string    `bson:"type" json:"type"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// RegisterUserRequest is the body of POST /api/v1/users.
type RegisterUserRequest struct {
	Name          string `json:"name" binding:"required"`
	Vehicle       string `json:"vehicle"`
	InsuranceType string `json:"insurance_type"`
}
