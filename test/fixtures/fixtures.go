// Package fixtures provides test data builders for unit and integration tests.
package fixtures

import (
	"fmt"
	"time"

	"hackreg/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ===== Member Input Fixtures =====

// MemberInputBuilder provides fluent API for building submitted member records.
type MemberInputBuilder struct {
	input models.MemberInput
}

// NewMemberInput creates a MemberInputBuilder with a unique email and valid defaults.
func NewMemberInput() *MemberInputBuilder {
	return &MemberInputBuilder{
		input: models.MemberInput{
			Name:           "Test Member",
			Email:          fmt.Sprintf("member-%s@example.com", primitive.NewObjectID().Hex()[16:]),
			Phone:          "9876543210",
			College:        "Test Institute of Technology",
			FoodPreference: models.FoodVeg,
		},
	}
}

// NewLeaderInput creates a MemberInputBuilder carrying the leader-only fields.
func NewLeaderInput() *MemberInputBuilder {
	b := NewMemberInput()
	b.input.Name = "Team Leader"
	b.input.RollNo = "21B1"
	b.input.Branch = "CSE"
	return b
}

func (b *MemberInputBuilder) WithName(name string) *MemberInputBuilder {
	b.input.Name = name
	return b
}

func (b *MemberInputBuilder) WithEmail(email string) *MemberInputBuilder {
	b.input.Email = email
	return b
}

func (b *MemberInputBuilder) WithPhone(phone string) *MemberInputBuilder {
	b.input.Phone = phone
	return b
}

func (b *MemberInputBuilder) WithRollNo(rollNo string) *MemberInputBuilder {
	b.input.RollNo = rollNo
	return b
}

func (b *MemberInputBuilder) WithBranch(branch string) *MemberInputBuilder {
	b.input.Branch = branch
	return b
}

func (b *MemberInputBuilder) WithFood(food models.FoodPreference) *MemberInputBuilder {
	b.input.FoodPreference = food
	return b
}

func (b *MemberInputBuilder) WithAccommodation() *MemberInputBuilder {
	b.input.Accommodation = true
	return b
}

func (b *MemberInputBuilder) Build() models.MemberInput {
	return b.input
}

// ===== Registration Fixtures =====

// RegistrationBuilder provides fluent API for building registration payloads.
type RegistrationBuilder struct {
	req models.RegistrationRequest
}

// NewRegistration creates a valid two-member registration with a PNG receipt.
func NewRegistration() *RegistrationBuilder {
	return &RegistrationBuilder{
		req: models.RegistrationRequest{
			TeamName:     "Quantum",
			Track:        models.TrackAI,
			TeamSize:     2,
			UPIReference: "UPI123456",
			Members: []models.MemberInput{
				NewLeaderInput().Build(),
				NewMemberInput().Build(),
			},
			Receipt: NewReceipt(),
		},
	}
}

// NewReceipt returns a small valid PNG receipt.
func NewReceipt() *models.ReceiptFile {
	data := []byte("\x89PNG\r\n\x1a\nreceipt")
	return &models.ReceiptFile{
		Filename:    "receipt.png",
		ContentType: "image/png",
		Size:        int64(len(data)),
		Data:        data,
	}
}

func (b *RegistrationBuilder) WithTeamName(name string) *RegistrationBuilder {
	b.req.TeamName = name
	return b
}

func (b *RegistrationBuilder) WithTrack(track models.Track) *RegistrationBuilder {
	b.req.Track = track
	return b
}

func (b *RegistrationBuilder) WithTeamSize(size int) *RegistrationBuilder {
	b.req.TeamSize = size
	return b
}

func (b *RegistrationBuilder) WithUPIReference(ref string) *RegistrationBuilder {
	b.req.UPIReference = ref
	return b
}

func (b *RegistrationBuilder) WithMembers(members ...models.MemberInput) *RegistrationBuilder {
	b.req.Members = members
	return b
}

// WithLeaderEmail sets the email of the leader slot.
func (b *RegistrationBuilder) WithLeaderEmail(email string) *RegistrationBuilder {
	b.req.Members[0].Email = email
	return b
}

func (b *RegistrationBuilder) WithReceipt(receipt *models.ReceiptFile) *RegistrationBuilder {
	b.req.Receipt = receipt
	return b
}

func (b *RegistrationBuilder) Build() models.RegistrationRequest {
	return b.req
}

func (b *RegistrationBuilder) BuildPtr() *models.RegistrationRequest {
	return &b.req
}

// ===== Team Fixtures =====

// TeamBuilder provides fluent API for building stored teams.
type TeamBuilder struct {
	team models.Team
}

// NewTeam creates a pending team with sensible defaults.
func NewTeam() *TeamBuilder {
	id := primitive.NewObjectID()
	return &TeamBuilder{
		team: models.Team{
			ID:                 id,
			Name:               "Test Team",
			Track:              models.TrackAI,
			Size:               2,
			PaymentReference:   "UPI123456",
			PaymentReceiptPath: id.Hex() + "_1700000000000.png",
			PaymentStatus:      models.PaymentPending,
			OwnerID:            "owner-" + id.Hex()[16:],
			OwnerEmail:         "leader@example.com",
			CreatedAt:          time.Now(),
			UpdatedAt:          time.Now(),
		},
	}
}

func (b *TeamBuilder) WithID(id primitive.ObjectID) *TeamBuilder {
	b.team.ID = id
	return b
}

func (b *TeamBuilder) WithName(name string) *TeamBuilder {
	b.team.Name = name
	return b
}

func (b *TeamBuilder) WithOwner(identity models.Identity) *TeamBuilder {
	b.team.OwnerID = identity.ID
	b.team.OwnerEmail = identity.Email
	return b
}

func (b *TeamBuilder) WithSize(size int) *TeamBuilder {
	b.team.Size = size
	return b
}

func (b *TeamBuilder) WithStatus(status models.PaymentStatus) *TeamBuilder {
	b.team.PaymentStatus = status
	return b
}

func (b *TeamBuilder) Verified() *TeamBuilder {
	return b.WithStatus(models.PaymentVerified)
}

func (b *TeamBuilder) Rejected() *TeamBuilder {
	return b.WithStatus(models.PaymentRejected)
}

func (b *TeamBuilder) Build() models.Team {
	return b.team
}

func (b *TeamBuilder) BuildPtr() *models.Team {
	return &b.team
}

// ===== Member Fixtures =====

// MemberBuilder provides fluent API for building stored members.
type MemberBuilder struct {
	member models.Member
}

// NewMember creates a non-leader member of a random team.
func NewMember() *MemberBuilder {
	return &MemberBuilder{
		member: models.Member{
			ID:             primitive.NewObjectID(),
			TeamID:         primitive.NewObjectID(),
			Name:           "Test Member",
			Email:          fmt.Sprintf("member-%s@example.com", primitive.NewObjectID().Hex()[16:]),
			Phone:          "9876543210",
			College:        "Test Institute of Technology",
			FoodPreference: models.FoodVeg,
			CreatedAt:      time.Now(),
		},
	}
}

func (b *MemberBuilder) WithID(id primitive.ObjectID) *MemberBuilder {
	b.member.ID = id
	return b
}

func (b *MemberBuilder) WithTeamID(teamID primitive.ObjectID) *MemberBuilder {
	b.member.TeamID = teamID
	return b
}

func (b *MemberBuilder) WithName(name string) *MemberBuilder {
	b.member.Name = name
	return b
}

func (b *MemberBuilder) WithEmail(email string) *MemberBuilder {
	b.member.Email = email
	return b
}

func (b *MemberBuilder) WithPhone(phone string) *MemberBuilder {
	b.member.Phone = phone
	return b
}

func (b *MemberBuilder) WithFood(food models.FoodPreference) *MemberBuilder {
	b.member.FoodPreference = food
	return b
}

func (b *MemberBuilder) WithAccommodation() *MemberBuilder {
	b.member.Accommodation = true
	return b
}

// AsLeader marks the member as leader and fills the leader-only fields.
func (b *MemberBuilder) AsLeader() *MemberBuilder {
	b.member.IsLeader = true
	b.member.RollNo = "21B1"
	b.member.Branch = "CSE"
	return b
}

func (b *MemberBuilder) CheckedIn() *MemberBuilder {
	now := time.Now()
	b.member.CheckedIn = true
	b.member.CheckedInAt = &now
	return b
}

func (b *MemberBuilder) Build() models.Member {
	return b.member
}

func (b *MemberBuilder) BuildPtr() *models.Member {
	return &b.member
}
