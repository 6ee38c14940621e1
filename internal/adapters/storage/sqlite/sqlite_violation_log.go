// Package sqlite disponibiliza o log de violações persistido em SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

// ViolationLog grava violações na tabela failed_requests. Só faz INSERT e SELECT.
type ViolationLog struct {
	db *sql.DB
}

var _ ports.ViolationLog = (*ViolationLog)(nil)

// New abre o banco indicado por dsn e garante que a tabela exista.
func New(ctx context.Context, dsn string) (*ViolationLog, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlite dsn is required")
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Uma única conexão evita SQLITE_BUSY com várias negações simultâneas.
	db.SetMaxOpenConns(1)

	l := &ViolationLog{db: db}
	if err := l.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return l, nil
}

func (l *ViolationLog) init(ctx context.Context) error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS failed_requests (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		ip TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		reason TEXT NOT NULL
	);`
	if _, err := l.db.ExecContext(ctx, createTableSQL); err != nil {
		return &domain.StorageError{Op: "create failed_requests table", Err: err}
	}
	return nil
}

func (l *ViolationLog) Record(ctx context.Context, violation domain.Violation) error {
	const insertSQL = `INSERT INTO failed_requests(id, ip, timestamp, reason) VALUES(?, ?, ?, ?)`
	_, err := l.db.ExecContext(ctx, insertSQL,
		violation.ID,
		violation.IP,
		violation.Timestamp.UTC().Format(time.RFC3339Nano),
		violation.Reason,
	)
	if err != nil {
		return &domain.StorageError{Op: "insert violation", Err: err}
	}
	return nil
}

// ListAll devolve todas as violações na ordem de inserção.
func (l *ViolationLog) ListAll(ctx context.Context) ([]domain.Violation, error) {
	const query = `SELECT id, ip, timestamp, reason FROM failed_requests ORDER BY seq ASC`
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &domain.StorageError{Op: "select violations", Err: err}
	}
	defer rows.Close()

	violations := []domain.Violation{}
	for rows.Next() {
		var v domain.Violation
		var timestamp string
		if err := rows.Scan(&v.ID, &v.IP, &timestamp, &v.Reason); err != nil {
			return nil, &domain.StorageError{Op: "scan violation", Err: err}
		}
		v.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			return nil, &domain.StorageError{Op: "parse violation timestamp", Err: err}
		}
		violations = append(violations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "iterate violations", Err: err}
	}

	return violations, nil
}

func (l *ViolationLog) Close() error {
	return l.db.Close()
}
