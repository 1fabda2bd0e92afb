package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/portfolio/backend/internal/model"
)

// ContactRepository defines the persistence interface for contact messages.
type ContactRepository interface {
	// Save inserts msg and populates msg.ID and msg.CreatedAt.
	Save(ctx context.Context, msg *model.ContactMessage) error
}

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

var _ ContactRepository = (*PgContactRepository)(nil)

// Save inserts a new contact_messages row. The id comes back from the RETURNING
// clause; created_at is taken from msg when set, otherwise from the database default.
func (r *PgContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (name, email, subject, message, created_at)
		 VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
		 RETURNING id::text, created_at`,
		msg.Name, msg.Email, msg.Subject, msg.Message, nullTime(msg),
	).Scan(&msg.ID, &msg.CreatedAt)
}

func nullTime(msg *model.ContactMessage) any {
	if msg.CreatedAt.IsZero() {
		return nil
	}
	return msg.CreatedAt
}
