package models

import "strings"

// MaxReceiptSize is the largest accepted payment receipt, 4 MiB.
const MaxReceiptSize = 4 << 20

// Accepted receipt content types mapped to the extension used for the stored object.
var ReceiptExtensions = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"application/pdf": "pdf",
}

// ReceiptFile is an uploaded payment receipt held in memory.
type ReceiptFile struct {
	Filename    string `validate:"required"`
	ContentType string `validate:"required,oneof=image/jpeg image/png application/pdf"`
	Size        int64  `validate:"gt=0,max=4194304"`
	Data        []byte `validate:"-"`
}

// Extension returns the file extension for the stored receipt object.
// The original filename's extension wins when it is one of the accepted ones.
func (r *ReceiptFile) Extension() string {
	if idx := strings.LastIndex(r.Filename, "."); idx >= 0 && idx < len(r.Filename)-1 {
		ext := strings.ToLower(r.Filename[idx+1:])
		switch ext {
		case "jpg", "jpeg", "png", "pdf":
			return ext
		}
	}
	if ext, ok := ReceiptExtensions[r.ContentType]; ok {
		return ext
	}
	return "bin"
}

// RegistrationRequest is the team registration payload. Receipt is bound
// separately from the multipart form.
type RegistrationRequest struct {
	TeamName     string        `json:"teamName" validate:"required,min=3" example:"Quantum"`
	Track        Track         `json:"track" validate:"required,track" example:"AI"`
	TeamSize     int           `json:"teamSize" validate:"required,oneof=2 3 4 5" example:"2"`
	UPIReference string        `json:"upiReference" validate:"required,min=6" example:"UPI123456789"`
	Members      []MemberInput `json:"members" validate:"required,min=1,dive"`
	Receipt      *ReceiptFile  `json:"-" validate:"required"`
}

// ValidatedRegistration is a registration payload that passed validation,
// with strings trimmed and emails normalized.
type ValidatedRegistration struct {
	TeamName     string
	Track        Track
	TeamSize     int
	UPIReference string
	Members      []MemberInput
	Receipt      ReceiptFile
}

// Leader returns the member submitted in the leader slot.
func (v *ValidatedRegistration) Leader() MemberInput {
	return v.Members[0]
}

// Emails returns the normalized member emails in submission order.
func (v *ValidatedRegistration) Emails() []string {
	emails := make([]string, 0, len(v.Members))
	for _, m := range v.Members {
		emails = append(emails, m.Email)
	}
	return emails
}

// Identity is the authenticated caller as resolved by the identity provider.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// IsZero reports whether no caller is authenticated.
func (i Identity) IsZero() bool {
	return strings.TrimSpace(i.ID) == ""
}
