package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"hackreg/internal/models"
)

// ReceiptURLExpiry is how long a pre-signed receipt link stays valid.
const ReceiptURLExpiry = 15 * time.Minute

// ReceiptKey returns the object key for a team's payment receipt: {teamId}_{unixMillis}.{ext}.
func ReceiptKey(teamID string, ext string, at time.Time) string {
	return fmt.Sprintf("%s_%d.%s", teamID, at.UnixMilli(), ext)
}

//go:generate mockgen -destination=mocks/mock_receipt_store.go -package=mocks hackreg/internal/storage ReceiptStore

// ReceiptStore uploads payment receipts and resolves links to them.
type ReceiptStore interface {
	Upload(ctx context.Context, teamID string, receipt models.ReceiptFile) (string, error)
	URL(ctx context.Context, key string) (string, error)
}

// Receipts stores payment receipt artifacts.
type Receipts struct {
	store Storage
	now   func() time.Time
}

// NewReceipts creates a receipt store backed by s.
func NewReceipts(s Storage) *Receipts {
	return &Receipts{store: s, now: time.Now}
}

var _ ReceiptStore = (*Receipts)(nil)

// Upload writes the receipt for teamID and returns its key.
func (r *Receipts) Upload(ctx context.Context, teamID string, receipt models.ReceiptFile) (string, error) {
	key := ReceiptKey(teamID, receipt.Extension(), r.now())
	if err := r.store.PutObject(ctx, key, bytes.NewReader(receipt.Data), int64(len(receipt.Data)), receipt.ContentType); err != nil {
		return "", err
	}
	return key, nil
}

// URL resolves a viewable link for a stored receipt, preferring the public URL.
func (r *Receipts) URL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	if url, ok := r.store.PublicURL(key); ok {
		return url, nil
	}
	return r.store.GetPresignedURL(ctx, key, ReceiptURLExpiry)
}
