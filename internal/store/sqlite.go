package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/prepline/prepline/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// eventRow is the sqlx row shape for the events table.
type eventRow struct {
	ID              string    `db:"id"`
	Title           string    `db:"title"`
	StartAt         time.Time `db:"start_at"`
	EndAt           time.Time `db:"end_at"`
	AllDay          bool      `db:"all_day"`
	ResourceID      string    `db:"resource_id"`
	Kind            string    `db:"kind"`
	Status          string    `db:"status"`
	Assignee        string    `db:"assignee"`
	NotesCount      int       `db:"notes_count"`
	RecurrenceBadge string    `db:"recurrence_badge"`
	BatchSize       float64   `db:"batch_size"`
	YieldUnit       string    `db:"yield_unit"`
	Equipment       string    `db:"equipment"`
	Description     string    `db:"description"`
	FetchedAt       time.Time `db:"fetched_at"`
}

func (r eventRow) toModel() model.Event {
	return model.Event{
		ID:              r.ID,
		Title:           r.Title,
		Start:           r.StartAt,
		End:             r.EndAt,
		AllDay:          r.AllDay,
		ResourceID:      r.ResourceID,
		Kind:            model.EventKind(r.Kind),
		Status:          r.Status,
		Assignee:        r.Assignee,
		NotesCount:      r.NotesCount,
		RecurrenceBadge: r.RecurrenceBadge,
		BatchSize:       r.BatchSize,
		YieldUnit:       r.YieldUnit,
		Equipment:       r.Equipment,
		Description:     r.Description,
		FetchedAt:       r.FetchedAt,
	}
}

// UpsertEvents inserts or replaces a batch of cached schedule events.
func (s *SQLiteStore) UpsertEvents(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO events (
			id, title, start_at, end_at, all_day, resource_id,
			kind, status, assignee, notes_count, recurrence_badge,
			batch_size, yield_unit, equipment, description, fetched_at
		) VALUES (
			?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?,
			?, ?, ?, ?, ?
		)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		_, err = stmt.ExecContext(ctx,
			e.ID, e.Title, e.Start.UTC(), e.End.UTC(), e.AllDay, e.ResourceID,
			string(e.Kind), e.Status, e.Assignee, e.NotesCount, e.RecurrenceBadge,
			e.BatchSize, e.YieldUnit, e.Equipment, e.Description, e.FetchedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("upserting event %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// GetEvents retrieves cached events matching the filter, ordered by
// start time.
func (s *SQLiteStore) GetEvents(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	var conditions []string
	var args []interface{}

	if filter.Kind != nil {
		conditions = append(conditions, "kind = ?")
		args = append(args, *filter.Kind)
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.From != nil {
		conditions = append(conditions, "start_at >= ?")
		args = append(args, filter.From.UTC())
	}
	if filter.Until != nil {
		conditions = append(conditions, "start_at < ?")
		args = append(args, filter.Until.UTC())
	}

	query := "SELECT * FROM events"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_at ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	var rows []eventRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}

	events := make([]model.Event, len(rows))
	for i, r := range rows {
		events[i] = r.toModel()
	}
	return events, nil
}

// GetEventByID retrieves a single cached event, or nil when absent.
func (s *SQLiteStore) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	var row eventRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM events WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying event %s: %w", id, err)
	}

	ev := row.toModel()
	return &ev, nil
}

// DeleteEventsBefore drops cached events starting before the cutoff, so
// the cache does not grow without bound.
func (s *SQLiteStore) DeleteEventsBefore(ctx context.Context, cutoff time.Time) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE start_at < ?", cutoff.UTC())
	if err != nil {
		return fmt.Errorf("pruning events: %w", err)
	}
	return nil
}

// receivingRow is the sqlx row shape for the receiving_records table.
type receivingRow struct {
	ID          string       `db:"id"`
	Supplier    string       `db:"supplier"`
	Product     string       `db:"product"`
	Quantity    float64      `db:"quantity"`
	Unit        string       `db:"unit"`
	Temperature float64      `db:"temperature"`
	ExpiryDate  sql.NullTime `db:"expiry_date"`
	ReceivedAt  sql.NullTime `db:"received_at"`
	Notes       string       `db:"notes"`
	FetchedAt   time.Time    `db:"fetched_at"`
}

func (r receivingRow) toModel() model.ReceivingRecord {
	rec := model.ReceivingRecord{
		ID:          r.ID,
		Supplier:    r.Supplier,
		Product:     r.Product,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		Temperature: r.Temperature,
		Notes:       r.Notes,
		FetchedAt:   r.FetchedAt,
	}
	if r.ExpiryDate.Valid {
		rec.ExpiryDate = r.ExpiryDate.Time
	}
	if r.ReceivedAt.Valid {
		rec.ReceivedAt = r.ReceivedAt.Time
	}
	return rec
}

// UpsertReceivingRecords inserts or replaces a batch of receiving records.
func (s *SQLiteStore) UpsertReceivingRecords(ctx context.Context, records []model.ReceivingRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO receiving_records (
			id, supplier, product, quantity, unit, temperature,
			expiry_date, received_at, notes, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err = stmt.ExecContext(ctx,
			r.ID, r.Supplier, r.Product, r.Quantity, r.Unit, r.Temperature,
			nullTime(r.ExpiryDate), nullTime(r.ReceivedAt), r.Notes, r.FetchedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("upserting receiving record %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// GetReceivingRecords retrieves cached receiving records, newest first.
func (s *SQLiteStore) GetReceivingRecords(ctx context.Context, limit int) ([]model.ReceivingRecord, error) {
	query := "SELECT * FROM receiving_records ORDER BY received_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	var rows []receivingRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("querying receiving records: %w", err)
	}

	records := make([]model.ReceivingRecord, len(rows))
	for i, r := range rows {
		records[i] = r.toModel()
	}
	return records, nil
}

// GetExpiringRecords retrieves records whose expiry date falls within
// the next days from now, soonest first. Already-expired stock is
// included.
func (s *SQLiteStore) GetExpiringRecords(ctx context.Context, now time.Time, days int) ([]model.ReceivingRecord, error) {
	cutoff := now.AddDate(0, 0, days)

	var rows []receivingRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM receiving_records WHERE expiry_date IS NOT NULL AND expiry_date < ? ORDER BY expiry_date ASC",
		cutoff.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying expiring records: %w", err)
	}

	records := make([]model.ReceivingRecord, len(rows))
	for i, r := range rows {
		records[i] = r.toModel()
	}
	return records, nil
}

// SaveWaitlistEntry logs a waitlist submission, generating an ID when
// the entry has none.
func (s *SQLiteStore) SaveWaitlistEntry(ctx context.Context, entry model.WaitlistEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO waitlist_entries (id, name, email, role, message, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		entry.ID, entry.Name, entry.Email, entry.Role, entry.Message, entry.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving waitlist entry: %w", err)
	}
	return nil
}

// GetWaitlistEntries retrieves logged waitlist submissions, newest first.
func (s *SQLiteStore) GetWaitlistEntries(ctx context.Context) ([]model.WaitlistEntry, error) {
	var rows []struct {
		ID        string    `db:"id"`
		Name      string    `db:"name"`
		Email     string    `db:"email"`
		Role      string    `db:"role"`
		Message   string    `db:"message"`
		CreatedAt time.Time `db:"created_at"`
	}
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM waitlist_entries ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("querying waitlist entries: %w", err)
	}

	entries := make([]model.WaitlistEntry, len(rows))
	for i, r := range rows {
		entries[i] = model.WaitlistEntry{
			ID:        r.ID,
			Name:      r.Name,
			Email:     r.Email,
			Role:      r.Role,
			Message:   r.Message,
			CreatedAt: r.CreatedAt,
		}
	}
	return entries, nil
}

// nullTime maps the zero time to NULL.
func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
