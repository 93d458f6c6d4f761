package domain

import "encoding/json"

// Writ type, enforcement and service status values. Kept as plain strings so
// snapshots round-trip without translation.
const (
	WritExecution  = "execution"
	WritAttachment = "attachment"
	WritPossession = "possession"
	WritArrest     = "arrest"
	WritSearch     = "search"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusExecuted   = "executed"
	StatusClosed     = "closed"
	StatusStayed     = "stayed"
)

const (
	ServicePending   = "pending"
	ServiceAttempted = "attempted"
	ServiceServed    = "served"
	ServiceFailed    = "failed"
	ServiceReturned  = "returned"
)

const (
	OutcomeServed           = "served"
	OutcomeRefused          = "refused"
	OutcomeNotFound         = "not_found"
	OutcomeAddressIncorrect = "address_incorrect"
	OutcomeOther            = "other"
)

// Outbox entry actions.
const (
	ActionServiceAttempt = "service_attempt"
	ActionSeizure        = "seizure"
	ActionUpdateWrit     = "update_writ"
)

type ServiceAttempt struct {
	ID             string `json:"id"`
	WritID         string `json:"writ_id"`
	Date           string `json:"date" format:"date"`
	Officer        string `json:"officer"`
	Outcome        string `json:"outcome" enum:"served,refused,not_found,address_incorrect,other"`
	Notes          string `json:"notes"`
	Location       string `json:"location,omitempty"`
	GPSCoordinates string `json:"gps_coordinates,omitempty"`
	WitnessName    string `json:"witness_name,omitempty"`
	Signature      string `json:"signature,omitempty"`
	Timestamp      int64  `json:"timestamp,omitempty"`
}

type SeizureItem struct {
	ID             string   `json:"id"`
	WritID         string   `json:"writ_id"`
	Description    string   `json:"description"`
	EstimatedValue int64    `json:"estimated_value"`
	Condition      string   `json:"condition"`
	Location       string   `json:"location"`
	Status         string   `json:"status" enum:"seized,stored,sold,returned"`
	SeizedDate     string   `json:"seized_date" format:"date"`
	DisposedDate   string   `json:"disposed_date,omitempty"`
	Photos         []string `json:"photos,omitempty"`
	GPSCoordinates string   `json:"gps_coordinates,omitempty"`
	Timestamp      int64    `json:"timestamp,omitempty"`
}

type EnforcementFee struct {
	ID            string `json:"id"`
	WritID        string `json:"writ_id"`
	Description   string `json:"description"`
	Amount        int64  `json:"amount"`
	Paid          bool   `json:"paid"`
	PaidDate      string `json:"paid_date,omitempty"`
	ReceiptNumber string `json:"receipt_number,omitempty"`
}

// Writ is the root aggregate. It owns its child collections exclusively;
// children carry writ_id as a back-reference only.
type Writ struct {
	ID                 string           `json:"id"`
	WritNumber         string           `json:"writ_number"`
	CaseID             string           `json:"case_id"`
	CaseNumber         string           `json:"case_number"`
	OrderID            string           `json:"order_id"`
	Type               string           `json:"type" enum:"execution,attachment,possession,arrest,search"`
	Status             string           `json:"status" enum:"pending,in_progress,executed,closed,stayed"`
	ServiceStatus      string           `json:"service_status" enum:"pending,attempted,served,failed,returned"`
	IssuedDate         string           `json:"issued_date" format:"date"`
	ExpiryDate         string           `json:"expiry_date" format:"date"`
	AssignedOfficer    string           `json:"assigned_officer,omitempty"`
	TargetParty        string           `json:"target_party"`
	TargetAddress      string           `json:"target_address"`
	Instructions       string           `json:"instructions"`
	Priority           string           `json:"priority" enum:"low,medium,high,urgent"`
	ServiceAttempts    []ServiceAttempt `json:"service_attempts"`
	SeizureItems       []SeizureItem    `json:"seizure_items"`
	Fees               []EnforcementFee `json:"fees"`
	TotalFeesCharged   int64            `json:"total_fees_charged"`
	TotalFeesCollected int64            `json:"total_fees_collected"`
	LastModified       int64            `json:"last_modified,omitempty"`
}

// OutstandingFees is the charged-minus-collected balance shown to callers.
func (w Writ) OutstandingFees() int64 {
	return w.TotalFeesCharged - w.TotalFeesCollected
}

// TotalSeizedValue sums estimated values across the seizure inventory.
func (w Writ) TotalSeizedValue() int64 {
	var total int64
	for _, item := range w.SeizureItems {
		total += item.EstimatedValue
	}
	return total
}

type Officer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Badge string `json:"badge"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Zone  string `json:"zone,omitempty"`
}

// QueueEntry wraps a mutation recorded while offline. Payload holds the JSON
// of a ServiceAttempt, SeizureItem or full Writ depending on Action.
// Entries are append-only; Synced flips false to true exactly once.
type QueueEntry struct {
	ID        string          `json:"id"`
	Action    string          `json:"action" enum:"service_attempt,seizure,update_writ"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
	Synced    bool            `json:"synced"`
}
