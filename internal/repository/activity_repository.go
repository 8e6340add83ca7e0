package repository

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jengzang/running-records-go/internal/coerce"
	"github.com/jengzang/running-records-go/internal/database"
	"github.com/jengzang/running-records-go/internal/models"
)

// DocumentIDField holds a document's id inside its body.
const DocumentIDField = "_id"

// ActivityRepository handles document operations on one activity collection
type ActivityRepository struct {
	db         *sql.DB
	collection string
}

// NewActivityRepository creates a repository bound to a collection
func NewActivityRepository(db *sql.DB, collection string) *ActivityRepository {
	return &ActivityRepository{db: db, collection: collection}
}

// Collection returns the collection name the repository reads and writes.
func (r *ActivityRepository) Collection() string {
	return r.collection
}

// Find returns the documents whose timestamp falls in [rng.Start, rng.End),
// ordered by timestamp and reduced to the projected fields. Documents without a
// usable timestamp never match.
func (r *ActivityRepository) Find(ctx context.Context, rng models.DateRange, projection []string) ([]models.Document, error) {
	query := `SELECT body FROM documents
		WHERE collection = ? AND ts_ms IS NOT NULL AND ts_ms >= ? AND ts_ms < ?
		ORDER BY ts_ms, id`

	rows, err := r.db.QueryContext(ctx, query, r.collection, rng.Start.UnixMilli(), rng.End.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		var doc models.Document
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		docs = append(docs, doc.Project(projection))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}

// Insert stores documents in one transaction and returns their ids. A document
// without an id is assigned a random UUID.
func (r *ActivityRepository) Insert(ctx context.Context, docs []models.Document) ([]string, error) {
	ids := make([]string, 0, len(docs))

	err := database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO documents (id, collection, ts_ms, body) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, doc := range docs {
			stored := doc.Project(nil)
			id, ok := coerce.String(stored[DocumentIDField])
			if !ok {
				id = uuid.NewString()
			}
			stored[DocumentIDField] = id

			var tsMs sql.NullInt64
			if ts, ok := coerce.Time(stored[models.FieldTimestamp]); ok {
				tsMs = sql.NullInt64{Int64: ts.UnixMilli(), Valid: true}
			}

			body, err := json.Marshal(stored)
			if err != nil {
				return fmt.Errorf("failed to encode document %d: %w", i, err)
			}
			if _, err := stmt.ExecContext(ctx, id, r.collection, tsMs, body); err != nil {
				return fmt.Errorf("failed to insert document %d: %w", i, err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// Count returns the number of documents in the collection
func (r *ActivityRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE collection = ?`, r.collection).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return total, nil
}
