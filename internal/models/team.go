package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team size bounds.
const (
	MinTeamSize = 2
	MaxTeamSize = 5
)

// Track is the hackathon track a team competes in.
type Track string

const (
	TrackAI             Track = "AI"
	TrackIoT            Track = "IoT"
	TrackBlockchain     Track = "Blockchain"
	TrackOpenInnovation Track = "OpenInnovation"
)

// Tracks lists every valid track.
var Tracks = []Track{TrackAI, TrackIoT, TrackBlockchain, TrackOpenInnovation}

// IsValid reports whether t is a known track.
func (t Track) IsValid() bool {
	for _, track := range Tracks {
		if t == track {
			return true
		}
	}
	return false
}

// PaymentStatus represents the manual payment verification state of a team.
type PaymentStatus string

const (
	// PaymentPending is the initial state after registration.
	PaymentPending PaymentStatus = "pending"
	// PaymentVerified means an administrator confirmed the payment. Terminal.
	PaymentVerified PaymentStatus = "verified"
	// PaymentRejected means an administrator rejected the payment. Terminal.
	PaymentRejected PaymentStatus = "rejected"
)

// IsValid reports whether s is a known payment status.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentVerified, PaymentRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is defined from s.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentVerified || s == PaymentRejected
}

// Team represents a registered hackathon team.
type Team struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	Name               string             `json:"name" bson:"name" example:"Quantum"`
	Track              Track              `json:"track" bson:"track" example:"AI"`
	Size               int                `json:"size" bson:"size" example:"4"` // declared size, not the live count
	MemberCount        int                `json:"memberCount" bson:"-" example:"4"`
	PaymentReference   string             `json:"paymentReference" bson:"paymentReference" example:"UPI123456789"`
	PaymentReceiptPath string             `json:"paymentReceiptPath" bson:"paymentReceiptPath" example:"507f1f77bcf86cd799439011_1700000000000.png"`
	PaymentStatus      PaymentStatus      `json:"paymentStatus" bson:"paymentStatus" example:"pending"`
	OwnerID            string             `json:"ownerId" bson:"ownerId" example:"google-oauth2|1234567890"`
	OwnerEmail         string             `json:"ownerEmail" bson:"ownerEmail" example:"leader@example.com"`
	VerifiedAt         *time.Time         `json:"verifiedAt,omitempty" bson:"verifiedAt,omitempty"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt" example:"2024-01-15T09:30:00Z"`
}

// TeamWithMembers is a team with its roster expanded.
type TeamWithMembers struct {
	Team
	Members    []Member `json:"members"`
	ReceiptURL string   `json:"receiptUrl,omitempty" example:"https://receipts.example.com/507f1f77bcf86cd799439011_1700000000000.png"`
}

// Leader returns the team leader, or nil if the roster has none.
func (t *TeamWithMembers) Leader() *Member {
	for i := range t.Members {
		if t.Members[i].IsLeader {
			return &t.Members[i]
		}
	}
	return nil
}

// TeamFields holds the leader-editable team fields.
type TeamFields struct {
	Track Track
	Size  int
}

// UpdateTeamRequest is the payload for editing a team's track, declared size and roster.
type UpdateTeamRequest struct {
	Track    Track         `json:"track" example:"IoT"`
	TeamSize int           `json:"teamSize" example:"3"`
	Members  []MemberInput `json:"members"`
}

// VerifyPaymentRequest optionally carries the details used for the verification email.
// Blank fields are looked up from the store.
type VerifyPaymentRequest struct {
	TeamName    string `json:"teamName" example:"Quantum"`
	LeaderEmail string `json:"leaderEmail" example:"leader@example.com"`
	LeaderName  string `json:"leaderName" example:"Asha Rao"`
}

// RegistrationResponse is returned after a successful registration.
type RegistrationResponse struct {
	TeamID string `json:"teamId" example:"507f1f77bcf86cd799439011"`
}

// MyTeamResponse is the participant dashboard payload.
type MyTeamResponse struct {
	Registered bool             `json:"registered" example:"true"`
	Team       *TeamWithMembers `json:"team,omitempty"`
}

// TeamListResponse is the response for listing teams.
type TeamListResponse struct {
	Items []Team `json:"items"`
}

// AdminStats summarizes registrations for the admin dashboard.
type AdminStats struct {
	TotalTeams    int `json:"totalTeams" example:"42"`
	PendingTeams  int `json:"pendingTeams" example:"10"`
	VerifiedTeams int `json:"verifiedTeams" example:"30"`
	RejectedTeams int `json:"rejectedTeams" example:"2"`
	TotalMembers  int `json:"totalMembers" example:"150"`
	CheckedIn     int `json:"checkedIn" example:"87"`
}
