package server

import (
	"github.com/tpdc055/sheriff/internal/domain"
	"github.com/tpdc055/sheriff/internal/storage"
	"github.com/tpdc055/sheriff/internal/store"
)

// StatusResponse is the combined store and sync status snapshot.
type StatusResponse struct {
	Online      bool          `json:"online"`
	PendingSync int           `json:"pending_sync"`
	LastSync    int64         `json:"last_sync" doc:"epoch millis of the last durable save, 0 when never"`
	Storage     storage.Usage `json:"storage"`
	Stats       store.Stats   `json:"stats"`
}

// LogAttemptRequest is the body for POST /writs/{writ_id}/attempts.
type LogAttemptRequest struct {
	Date           string `json:"date,omitempty" doc:"YYYY-MM-DD, defaults to today"`
	Officer        string `json:"officer,omitempty"`
	Outcome        string `json:"outcome" enum:"served,refused,not_found,address_incorrect,other"`
	Notes          string `json:"notes"`
	Location       string `json:"location"`
	GPSCoordinates string `json:"gps_coordinates,omitempty"`
	WitnessName    string `json:"witness_name,omitempty"`
	Signature      string `json:"signature,omitempty"`
	ActorID        string `json:"actor_id,omitempty"`
}

// AttemptResponse returns the applied attempt alongside the updated writ.
type AttemptResponse struct {
	Writ    domain.Writ           `json:"writ"`
	Attempt domain.ServiceAttempt `json:"attempt"`
}

// RecordSeizureRequest is the body for POST /writs/{writ_id}/seizures.
type RecordSeizureRequest struct {
	Description    string   `json:"description"`
	EstimatedValue int64    `json:"estimated_value" doc:"minor currency units, must be positive"`
	Condition      string   `json:"condition"`
	Location       string   `json:"location"`
	SeizedDate     string   `json:"seized_date,omitempty" doc:"YYYY-MM-DD, defaults to today"`
	Photos         []string `json:"photos,omitempty" doc:"data URIs produced by the image encoder"`
	GPSCoordinates string   `json:"gps_coordinates,omitempty"`
	ActorID        string   `json:"actor_id,omitempty"`
}

// SeizureResponse returns the stored item, the updated writ and the running
// inventory value.
type SeizureResponse struct {
	Writ             domain.Writ        `json:"writ"`
	Item             domain.SeizureItem `json:"item"`
	TotalSeizedValue int64              `json:"total_seized_value"`
}

// AddFeeRequest is the body for POST /writs/{writ_id}/fees.
type AddFeeRequest struct {
	Description   string `json:"description"`
	Amount        int64  `json:"amount" doc:"minor currency units, must be positive"`
	Paid          bool   `json:"paid,omitempty"`
	PaidDate      string `json:"paid_date,omitempty"`
	ReceiptNumber string `json:"receipt_number,omitempty"`
	ActorID       string `json:"actor_id,omitempty"`
}

// FeeResponse returns the added fee, the updated writ and the outstanding
// balance after recompute.
type FeeResponse struct {
	Writ        domain.Writ           `json:"writ"`
	Fee         domain.EnforcementFee `json:"fee"`
	Outstanding int64                 `json:"outstanding"`
}

// PayFeeRequest is the body for POST /writs/{writ_id}/fees/{fee_id}/pay.
type PayFeeRequest struct {
	PaidDate      string `json:"paid_date,omitempty" doc:"YYYY-MM-DD, defaults to today"`
	ReceiptNumber string `json:"receipt_number,omitempty"`
	ActorID       string `json:"actor_id,omitempty"`
}

// UpdateWritRequest is the body for PATCH /writs/{writ_id}. Pointer fields
// distinguish "leave unchanged" from "set to empty".
type UpdateWritRequest struct {
	Status          *string `json:"status,omitempty" enum:"pending,in_progress,executed,closed,stayed"`
	ServiceStatus   *string `json:"service_status,omitempty" enum:"pending,attempted,served,failed,returned"`
	AssignedOfficer *string `json:"assigned_officer,omitempty"`
	Priority        *string `json:"priority,omitempty"`
	Instructions    *string `json:"instructions,omitempty"`
	ActorID         string  `json:"actor_id,omitempty"`
	Force           bool    `json:"force,omitempty" doc:"bypass status transition checks"`
}

// QueueResponse lists the offline queue with its pending count.
type QueueResponse struct {
	Entries []domain.QueueEntry `json:"entries"`
	Pending int                 `json:"pending"`
}

// NetstateRequest reports a connectivity transition.
type NetstateRequest struct {
	Online bool `json:"online"`
}

// EventResponse is one audit log row with its payload decoded.
type EventResponse struct {
	ID      int64          `json:"id"`
	TS      string         `json:"ts"`
	Type    string         `json:"type"`
	WritID  string         `json:"writ_id,omitempty"`
	ActorID string         `json:"actor_id"`
	Payload map[string]any `json:"payload,omitempty"`
}
