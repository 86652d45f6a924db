/*
Store keeps the terminal transaction history and the user notifications
derived from it. Tables are tx_history and notifications.

Internally,

1) The opaque result payload is stored as a JSON text column.
2) Both tables are pruned to their caps on every insert, oldest first.
3) Listing order is most-recent first.
*/
package historydb

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/meeray/market-go/database"
	"github.com/meeray/market-go/txtracker"
)

// Notification is one user-facing history entry.
type Notification struct {
	Id string `json:"id"`
	// success, error or info.
	Kind      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Read      bool   `json:"read"`
}

type Store struct {
	cfg       *Config
	stmtCache *database.StmtCache
}

func NewStore(db *sql.DB, cfg *Config) (*Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	schema := `
	CREATE TABLE IF NOT EXISTS tx_history (
		id TEXT PRIMARY KEY,
		type TEXT,
		status TEXT,
		timestamp INTEGER,
		steem_tx_id TEXT,
		sidechain_tx_id TEXT,
		error TEXT,
		result TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_history_type ON tx_history (type);
	CREATE INDEX IF NOT EXISTS idx_history_status ON tx_history (status);

	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		kind TEXT,
		title TEXT,
		message TEXT,
		timestamp INTEGER,
		is_read INTEGER
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &Store{
		cfg:       cfg,
		stmtCache: database.NewStmtCache(db),
	}, nil
}

func (s *Store) Close() {
	s.stmtCache.Clear()
}

// RecordTerminal stores the terminal transaction and derives its
// notification. Satisfies the tracker's history sink.
func (s *Store) RecordTerminal(st txtracker.TransactionStatus) error {
	resultJSON := ""
	if st.Result != nil {
		raw, err := json.Marshal(st.Result)
		if err != nil {
			return err
		}
		resultJSON = string(raw)
	}

	stmt, err := s.stmtCache.Prepare(`
	INSERT OR REPLACE INTO tx_history (id, type, status, timestamp, steem_tx_id, sidechain_tx_id, error, result)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return err
	}
	if _, err := stmt.Exec(st.Id, st.Type, string(st.Status), st.Timestamp,
		st.SteemTxId, st.SidechainTxId, st.Error, resultJSON); err != nil {
		return err
	}
	if err := s.pruneHistory(); err != nil {
		return err
	}

	kind := "error"
	if st.Status == txtracker.StatusCompleted {
		kind = "success"
	}
	return s.AddNotification(Notification{
		Kind:    kind,
		Title:   txtracker.TitleFor(st.Type, st.Status),
		Message: txtracker.MessageFor(&st),
	})
}

// History returns up to limit entries, most-recent first. Zero limit
// means the configured cap.
func (s *Store) History(limit int) ([]txtracker.TransactionStatus, error) {
	if limit <= 0 {
		limit = s.cfg.HistoryCap
	}
	return s.queryHistory(`
	SELECT id, type, status, timestamp, steem_tx_id, sidechain_tx_id, error, result
	FROM tx_history ORDER BY timestamp DESC, rowid DESC LIMIT ?;
	`, limit)
}

func (s *Store) HistoryByType(opType string) ([]txtracker.TransactionStatus, error) {
	return s.queryHistory(`
	SELECT id, type, status, timestamp, steem_tx_id, sidechain_tx_id, error, result
	FROM tx_history WHERE type = ? ORDER BY timestamp DESC, rowid DESC;
	`, opType)
}

func (s *Store) HistoryByStatus(status txtracker.Status) ([]txtracker.TransactionStatus, error) {
	return s.queryHistory(`
	SELECT id, type, status, timestamp, steem_tx_id, sidechain_tx_id, error, result
	FROM tx_history WHERE status = ? ORDER BY timestamp DESC, rowid DESC;
	`, string(status))
}

func (s *Store) Completed() ([]txtracker.TransactionStatus, error) {
	return s.HistoryByStatus(txtracker.StatusCompleted)
}

func (s *Store) Failed() ([]txtracker.TransactionStatus, error) {
	return s.HistoryByStatus(txtracker.StatusFailed)
}

// GetById returns nil when the transaction is not in the history.
func (s *Store) GetById(id string) (*txtracker.TransactionStatus, error) {
	entries, err := s.queryHistory(`
	SELECT id, type, status, timestamp, steem_tx_id, sidechain_tx_id, error, result
	FROM tx_history WHERE id = ?;
	`, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (s *Store) ClearHistory() error {
	stmt, err := s.stmtCache.Prepare(`DELETE FROM tx_history;`)
	if err != nil {
		return err
	}
	_, err = stmt.Exec()
	return err
}

func (s *Store) queryHistory(query string, args ...interface{}) ([]txtracker.TransactionStatus, error) {
	stmt, err := s.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []txtracker.TransactionStatus
	for rows.Next() {
		var st txtracker.TransactionStatus
		var status, resultJSON string
		if err := rows.Scan(&st.Id, &st.Type, &status, &st.Timestamp,
			&st.SteemTxId, &st.SidechainTxId, &st.Error, &resultJSON); err != nil {
			return nil, err
		}
		st.Status = txtracker.Status(status)
		if resultJSON != "" {
			if err := json.Unmarshal([]byte(resultJSON), &st.Result); err != nil {
				return nil, err
			}
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) pruneHistory() error {
	stmt, err := s.stmtCache.Prepare(`
	DELETE FROM tx_history WHERE id NOT IN (
		SELECT id FROM tx_history ORDER BY timestamp DESC, rowid DESC LIMIT ?
	);
	`)
	if err != nil {
		return err
	}
	_, err = stmt.Exec(s.cfg.HistoryCap)
	return err
}

// ===== Notifications =====

// AddNotification assigns id and timestamp when absent.
func (s *Store) AddNotification(n Notification) error {
	if n.Id == "" {
		n.Id = uuid.NewString()
	}
	if n.Timestamp == 0 {
		n.Timestamp = time.Now().UnixMilli()
	}

	stmt, err := s.stmtCache.Prepare(`
	INSERT OR REPLACE INTO notifications (id, kind, title, message, timestamp, is_read)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return err
	}
	read := 0
	if n.Read {
		read = 1
	}
	if _, err := stmt.Exec(n.Id, n.Kind, n.Title, n.Message, n.Timestamp, read); err != nil {
		return err
	}
	return s.pruneNotifications()
}

// Notifications returns every kept notification, most-recent first.
func (s *Store) Notifications() ([]Notification, error) {
	stmt, err := s.stmtCache.Prepare(`
	SELECT id, kind, title, message, timestamp, is_read
	FROM notifications ORDER BY timestamp DESC, rowid DESC;
	`)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		var read int
		if err := rows.Scan(&n.Id, &n.Kind, &n.Title, &n.Message, &n.Timestamp, &read); err != nil {
			return nil, err
		}
		n.Read = read != 0
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) UnreadCount() (int, error) {
	stmt, err := s.stmtCache.Prepare(`SELECT COUNT(*) FROM notifications WHERE is_read = 0;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := stmt.QueryRow().Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) MarkRead(id string) error {
	stmt, err := s.stmtCache.Prepare(`UPDATE notifications SET is_read = 1 WHERE id = ?;`)
	if err != nil {
		return err
	}
	_, err = stmt.Exec(id)
	return err
}

func (s *Store) MarkAllRead() error {
	stmt, err := s.stmtCache.Prepare(`UPDATE notifications SET is_read = 1;`)
	if err != nil {
		return err
	}
	_, err = stmt.Exec()
	return err
}

func (s *Store) ClearNotifications() error {
	stmt, err := s.stmtCache.Prepare(`DELETE FROM notifications;`)
	if err != nil {
		return err
	}
	_, err = stmt.Exec()
	return err
}

func (s *Store) pruneNotifications() error {
	stmt, err := s.stmtCache.Prepare(`
	DELETE FROM notifications WHERE id NOT IN (
		SELECT id FROM notifications ORDER BY timestamp DESC, rowid DESC LIMIT ?
	);
	`)
	if err != nil {
		return err
	}
	_, err = stmt.Exec(s.cfg.NotificationCap)
	return err
}
