package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const defaultDocumentID = "user_profiles"

// PGBackend stores the collection as a single jsonb row in profile_documents.
type PGBackend struct {
	DB         *sql.DB
	DocumentID string
}

// NewPGBackend constructs a PGBackend.
func NewPGBackend(db *sql.DB) *PGBackend {
	return &PGBackend{DB: db, DocumentID: defaultDocumentID}
}

// Load reads the document row. A missing row is an empty collection.
func (b *PGBackend) Load(ctx context.Context) (map[string]UserProfile, error) {
	const query = `SELECT body FROM profile_documents WHERE id = $1`

	var body []byte
	err := b.DB.QueryRowContext(ctx, query, b.documentID()).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return map[string]UserProfile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select profile document: %w", err)
	}
	return decodeDocument(body)
}

// Save upserts the document row.
func (b *PGBackend) Save(ctx context.Context, profiles map[string]UserProfile) error {
	const query = `
INSERT INTO profile_documents (id, body, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (id) DO UPDATE
SET body = EXCLUDED.body,
    updated_at = EXCLUDED.updated_at`

	raw, err := encodeDocument(profiles)
	if err != nil {
		return err
	}
	if _, err := b.DB.ExecContext(ctx, query, b.documentID(), string(raw)); err != nil {
		return fmt.Errorf("upsert profile document: %w", err)
	}
	return nil
}

func (b *PGBackend) documentID() string {
	if b.DocumentID == "" {
		return defaultDocumentID
	}
	return b.DocumentID
}

var _ Backend = (*PGBackend)(nil)
