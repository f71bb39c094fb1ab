package leads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no lead matches the given id.
var ErrNotFound = errors.New("lead not found")

// ErrInvalidStatus is returned for a status outside the known set.
var ErrInvalidStatus = errors.New("invalid lead status")

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	}
	return false
}

// Sources recorded by the server.
const (
	SourceApp     = "app"
	SourceReport  = "report"
	SourceContact = "contact"
)

// Lead is a prospective customer captured from the contact form or a report request.
type Lead struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	WhatsApp     string     `json:"whatsapp"`
	BusinessName string     `json:"business_name"`
	Message      string     `json:"message"`
	Source       string     `json:"source"`
	Status       Status     `json:"status"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// NewLead is the input for Create.
type NewLead struct {
	Email        string
	Name         string
	WhatsApp     string
	BusinessName string
	Message      string
	Source       string
}

// Store persists leads in the sqlite leads table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

const selectColumns = `id, email, name, whatsapp, business_name, message, source, status, notes, created_at, updated_at, deleted_at`

// Create stores a new active lead. The email is stored lower-case.
func (s *Store) Create(ctx context.Context, in NewLead) (Lead, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return Lead{}, errors.New("lead email is required")
	}
	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = SourceApp
	}

	now := s.now().UTC().Truncate(time.Second)
	l := Lead{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		WhatsApp:     strings.TrimSpace(in.WhatsApp),
		BusinessName: strings.TrimSpace(in.BusinessName),
		Message:      strings.TrimSpace(in.Message),
		Source:       source,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leads (id, email, name, whatsapp, business_name, message, source, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, '', ?, ?)
	`, l.ID, l.Email, l.Name, l.WhatsApp, l.BusinessName, l.Message, l.Source, string(l.Status), now.Unix(), now.Unix())
	if err != nil {
		return Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return l, nil
}

func (s *Store) Get(ctx context.Context, id string) (Lead, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM leads WHERE id = ?`, id)
	l, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, fmt.Errorf("get lead %s: %w", id, err)
	}
	return l, nil
}

// ListByEmail returns every lead for email, newest first, including deleted ones.
func (s *Store) ListByEmail(ctx context.Context, email string) ([]Lead, error) {
	return s.list(ctx, `WHERE email = ? ORDER BY created_at DESC, id`, strings.ToLower(strings.TrimSpace(email)))
}

// ListBySource returns every lead captured from source, newest first.
func (s *Store) ListBySource(ctx context.Context, source string) ([]Lead, error) {
	return s.list(ctx, `WHERE source = ? ORDER BY created_at DESC, id`, source)
}

// ListActive returns active leads, newest first. limit <= 0 means no limit.
func (s *Store) ListActive(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = -1
	}
	return s.list(ctx, `WHERE status = ? ORDER BY created_at DESC, id LIMIT ?`, string(StatusActive), limit)
}

func (s *Store) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.update(ctx, id, `status = ?`, string(status))
}

// AddNotes replaces the lead's notes.
func (s *Store) AddNotes(ctx context.Context, id, notes string) error {
	return s.update(ctx, id, `notes = ?`, strings.TrimSpace(notes))
}

// Delete soft-deletes the lead, or removes the row when force is true.
func (s *Store) Delete(ctx context.Context, id string, force bool) error {
	if force {
		res, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete lead %s: %w", id, err)
		}
		return requireRow(res)
	}
	return s.update(ctx, id, `status = ?, deleted_at = ?`, string(StatusDeleted), s.now().UTC().Unix())
}

func (s *Store) update(ctx context.Context, id, set string, args ...any) error {
	args = append(args, s.now().UTC().Unix(), id)
	res, err := s.db.ExecContext(ctx, `UPDATE leads SET `+set+`, updated_at = ? WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update lead %s: %w", id, err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) list(ctx context.Context, where string, args ...any) ([]Lead, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM leads `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	var out []Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(row scanner) (Lead, error) {
	var (
		l                Lead
		status           string
		created, updated int64
		deleted          sql.NullInt64
	)
	if err := row.Scan(&l.ID, &l.Email, &l.Name, &l.WhatsApp, &l.BusinessName, &l.Message,
		&l.Source, &status, &l.Notes, &created, &updated, &deleted); err != nil {
		return Lead{}, err
	}
	l.Status = Status(status)
	l.CreatedAt = time.Unix(created, 0).UTC()
	l.UpdatedAt = time.Unix(updated, 0).UTC()
	if deleted.Valid {
		t := time.Unix(deleted.Int64, 0).UTC()
		l.DeletedAt = &t
	}
	return l, nil
}
