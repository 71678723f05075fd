package db

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "github.com/lib/pq"

	"github.com/aonescu/kubewatch/internal/types"
)

// PostgresStore keeps an append-only log of watch events plus an in-memory
// cache of the latest record per UID for fast reads.
type PostgresStore struct {
	db *sql.DB
	mu sync.RWMutex
	// In-memory cache for fast reads
	latestByUID map[string]types.WatchRecord
	uidsByKind  map[string][]string
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	store := &PostgresStore{
		db:          db,
		latestByUID: make(map[string]types.WatchRecord),
		uidsByKind:  make(map[string][]string),
	}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Load latest state into cache
	if err := store.loadCache(); err != nil {
		log.Printf("Warning: failed to load cache: %v", err)
	}

	return store, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	-- Watch events: append-only event log
	CREATE TABLE IF NOT EXISTS watch_events (
		id BIGSERIAL PRIMARY KEY,
		resource TEXT NOT NULL,
		event_type TEXT NOT NULL,
		uid TEXT,
		kind TEXT,
		namespace TEXT,
		name TEXT,
		resource_version TEXT,
		received_at TIMESTAMP NOT NULL,
		object JSONB
	);
	CREATE INDEX IF NOT EXISTS idx_watch_events_uid ON watch_events(uid);
	CREATE INDEX IF NOT EXISTS idx_watch_events_kind ON watch_events(kind);
	CREATE INDEX IF NOT EXISTS idx_watch_events_received ON watch_events(received_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *PostgresStore) loadCache() error {
	rows, err := s.db.Query(`
		SELECT DISTINCT ON (uid)
			resource, event_type, uid, kind, namespace, name, resource_version, received_at, object
		FROM watch_events
		WHERE uid <> ''
		ORDER BY uid, id DESC
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return err
		}
		s.latestByUID[rec.UID] = rec
		s.uidsByKind[rec.Kind] = append(s.uidsByKind[rec.Kind], rec.UID)
	}
	return rows.Err()
}

func (s *PostgresStore) Record(rec types.WatchRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO watch_events
			(resource, event_type, uid, kind, namespace, name, resource_version, received_at, object)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, rec.Resource, rec.EventType, rec.UID, rec.Kind, rec.Namespace, rec.Name,
		rec.Version, rec.ReceivedAt, nullableJSON(rec.Object))
	if err != nil {
		return fmt.Errorf("failed to insert watch event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.latestByUID[rec.UID] = rec
	found := false
	for _, uid := range s.uidsByKind[rec.Kind] {
		if uid == rec.UID {
			found = true
			break
		}
	}
	if !found {
		s.uidsByKind[rec.Kind] = append(s.uidsByKind[rec.Kind], rec.UID)
	}
	return nil
}

func (s *PostgresStore) GetLatestByKind(kind string) []types.WatchRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []types.WatchRecord
	for _, uid := range s.uidsByKind[kind] {
		if rec, exists := s.latestByUID[uid]; exists {
			results = append(results, rec)
		}
	}
	return results
}

func (s *PostgresStore) GetByUID(uid string) (types.WatchRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, exists := s.latestByUID[uid]
	return rec, exists
}

// History returns every recorded event for the given UID, oldest first. It
// reads from the database rather than the cache, which only holds the
// latest record per UID.
func (s *PostgresStore) History(uid string) []types.WatchRecord {
	rows, err := s.db.Query(`
		SELECT resource, event_type, uid, kind, namespace, name, resource_version, received_at, object
		FROM watch_events
		WHERE uid = $1
		ORDER BY id ASC
	`, uid)
	if err != nil {
		log.Printf("Warning: history query failed: %v", err)
		return nil
	}
	defer rows.Close()

	var results []types.WatchRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			log.Printf("Warning: failed to scan watch event: %v", err)
			return results
		}
		results = append(results, rec)
	}
	return results
}

func (s *PostgresStore) Ping() error {
	return s.db.Ping()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func scanRecord(rows *sql.Rows) (types.WatchRecord, error) {
	var rec types.WatchRecord
	var object sql.NullString
	err := rows.Scan(&rec.Resource, &rec.EventType, &rec.UID, &rec.Kind,
		&rec.Namespace, &rec.Name, &rec.Version, &rec.ReceivedAt, &object)
	if err != nil {
		return rec, err
	}
	if object.Valid {
		rec.Object = []byte(object.String)
	}
	return rec, nil
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
