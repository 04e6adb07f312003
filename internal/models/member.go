package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodPreference is a member's meal preference.
type FoodPreference string

const (
	FoodVeg    FoodPreference = "Veg"
	FoodNonVeg FoodPreference = "NonVeg"
)

// IsValid reports whether f is a known food preference.
func (f FoodPreference) IsValid() bool {
	return f == FoodVeg || f == FoodNonVeg
}

// Member represents a participant. A member belongs to exactly one team for its lifetime.
type Member struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439021"`
	TeamID         primitive.ObjectID `json:"teamId" bson:"teamId" example:"507f1f77bcf86cd799439011"`
	Name           string             `json:"name" bson:"name" example:"Asha Rao"`
	Email          string             `json:"email" bson:"email" example:"asha@example.com"`
	Phone          string             `json:"phone" bson:"phone" example:"9876543210"`
	College        string             `json:"college" bson:"college" example:"IIT Bombay"`
	RollNo         string             `json:"rollNo,omitempty" bson:"rollNo,omitempty" example:"21B1"`
	Branch         string             `json:"branch,omitempty" bson:"branch,omitempty" example:"CSE"`
	Accommodation  bool               `json:"accommodation" bson:"accommodation" example:"false"`
	FoodPreference FoodPreference     `json:"foodPreference" bson:"foodPreference" example:"Veg"`
	IsLeader       bool               `json:"isLeader" bson:"isLeader" example:"true"`
	CheckedIn      bool               `json:"checkedIn" bson:"checkedIn" example:"false"`
	CheckedInAt    *time.Time         `json:"checkedInAt,omitempty" bson:"checkedInAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
}

// MemberInput is a member record as submitted by a participant.
type MemberInput struct {
	Name           string         `json:"name" validate:"required,min=2" example:"Asha Rao"`
	Email          string         `json:"email" validate:"required,email" example:"asha@example.com"`
	Phone          string         `json:"phone" validate:"required,phone" example:"9876543210"`
	College        string         `json:"college" validate:"required" example:"IIT Bombay"`
	RollNo         string         `json:"rollNo" example:"21B1"`
	Branch         string         `json:"branch" example:"CSE"`
	Accommodation  bool           `json:"accommodation" example:"false"`
	FoodPreference FoodPreference `json:"foodPreference" validate:"required,foodpref" example:"Veg"`
}

// Normalize trims whitespace and lower-cases the email.
func (in MemberInput) Normalize() MemberInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.College = strings.TrimSpace(in.College)
	in.RollNo = strings.TrimSpace(in.RollNo)
	in.Branch = strings.TrimSpace(in.Branch)
	return in
}

// ToMember converts the input into a Member of the given team.
func (in MemberInput) ToMember(teamID primitive.ObjectID, isLeader bool) Member {
	in = in.Normalize()
	return Member{
		TeamID:         teamID,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		College:        in.College,
		RollNo:         in.RollNo,
		Branch:         in.Branch,
		Accommodation:  in.Accommodation,
		FoodPreference: in.FoodPreference,
		IsLeader:       isLeader,
	}
}

// BuildRoster converts inputs to members, marking the first one as leader.
func BuildRoster(teamID primitive.ObjectID, inputs []MemberInput) []Member {
	members := make([]Member, 0, len(inputs))
	for i, in := range inputs {
		members = append(members, in.ToMember(teamID, i == 0))
	}
	return members
}

// CheckInRequest is the payload for toggling a member's attendance.
// CurrentStatus is the value the operator saw; the new value is its negation.
type CheckInRequest struct {
	CurrentStatus *bool `json:"currentStatus" binding:"required" example:"false"`
}

// NormalizeEmail lower-cases and trims an email for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
