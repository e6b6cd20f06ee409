package repository

import (
	"context"
	"database/sql"
	"errors"

	"livedocs/internal/access"
	"livedocs/internal/document/model"
	"livedocs/pkg/logger"

	"github.com/lib/pq"
)

// RoomRepository is the Postgres-backed RoomStore. Rooms live in the rooms
// table; access entries in room_accesses keyed by (room_id, email) with the
// permission set stored as text[].
type RoomRepository struct {
	DB *sql.DB
}

func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{DB: db}
}

func (r *RoomRepository) Get(ctx context.Context, roomID string) (*model.Document, error) {
	doc := &model.Document{ID: roomID}
	var defaults []string
	err := r.DB.QueryRowContext(ctx,
		`SELECT title, creator_id, creator_email, default_accesses, created_at, updated_at FROM rooms WHERE id = $1`,
		roomID,
	).Scan(&doc.Metadata.Title, &doc.Metadata.CreatorID, &doc.Metadata.CreatorEmail,
		pq.Array(&defaults), &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get room %s: %v", roomID, err)
		return nil, err
	}
	doc.DefaultAccesses = toPermissions(defaults)

	doc.Accesses, err = r.loadAccesses(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *RoomRepository) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO rooms (id, title, creator_id, creator_email, default_accesses, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		doc.ID, doc.Metadata.Title, doc.Metadata.CreatorID, doc.Metadata.CreatorEmail,
		pq.Array(fromPermissions(doc.DefaultAccesses)), doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to create room %s: %v", doc.ID, err)
		return nil, err
	}

	for email, perms := range doc.Accesses {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO room_accesses (room_id, email, permissions) VALUES ($1, $2, $3)`,
			doc.ID, email, pq.Array(fromPermissions(perms)))
		if err != nil {
			logger.Sugar.Errorf("Failed to seed access for %s on room %s: %v", email, doc.ID, err)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return doc.Clone(), nil
}

func (r *RoomRepository) Update(ctx context.Context, roomID string, update model.RoomUpdate) (*model.Document, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var res sql.Result
	if update.Title != nil {
		res, err = tx.ExecContext(ctx,
			`UPDATE rooms SET title = $1, updated_at = NOW() WHERE id = $2`, *update.Title, roomID)
	} else {
		res, err = tx.ExecContext(ctx,
			`UPDATE rooms SET updated_at = NOW() WHERE id = $1`, roomID)
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to update room %s: %v", roomID, err)
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}

	for email, perms := range update.Accesses {
		if perms == nil {
			_, err = tx.ExecContext(ctx,
				`DELETE FROM room_accesses WHERE room_id = $1 AND email = $2`, roomID, email)
		} else {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO room_accesses (room_id, email, permissions) VALUES ($1, $2, $3)
				 ON CONFLICT (room_id, email) DO UPDATE SET permissions = EXCLUDED.permissions`,
				roomID, email, pq.Array(fromPermissions(perms)))
		}
		if err != nil {
			logger.Sugar.Errorf("Failed to update access for %s on room %s: %v", email, roomID, err)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.Get(ctx, roomID)
}

func (r *RoomRepository) Delete(ctx context.Context, roomID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM room_accesses WHERE room_id = $1`, roomID); err != nil {
		logger.Sugar.Errorf("Failed to delete accesses for room %s: %v", roomID, err)
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, roomID)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete room %s: %v", roomID, err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return tx.Commit()
}

func (r *RoomRepository) Query(ctx context.Context, userEmail string) ([]*model.Document, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id, r.title, r.creator_id, r.creator_email, r.default_accesses, r.created_at, r.updated_at
		 FROM rooms r JOIN room_accesses a ON r.id = a.room_id
		 WHERE a.email = $1
		 ORDER BY r.updated_at DESC`, userEmail)
	if err != nil {
		logger.Sugar.Errorf("Failed to query rooms for %s: %v", userEmail, err)
		return nil, err
	}
	defer rows.Close()

	var docs []*model.Document
	for rows.Next() {
		doc := &model.Document{}
		var defaults []string
		if err := rows.Scan(&doc.ID, &doc.Metadata.Title, &doc.Metadata.CreatorID,
			&doc.Metadata.CreatorEmail, pq.Array(&defaults), &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, err
		}
		doc.DefaultAccesses = toPermissions(defaults)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if doc.Accesses, err = r.loadAccesses(ctx, doc.ID); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func (r *RoomRepository) loadAccesses(ctx context.Context, roomID string) (map[string][]access.Permission, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT email, permissions FROM room_accesses WHERE room_id = $1`, roomID)
	if err != nil {
		logger.Sugar.Errorf("Failed to load accesses for room %s: %v", roomID, err)
		return nil, err
	}
	defer rows.Close()

	accesses := make(map[string][]access.Permission)
	for rows.Next() {
		var email string
		var perms []string
		if err := rows.Scan(&email, pq.Array(&perms)); err != nil {
			return nil, err
		}
		accesses[email] = toPermissions(perms)
	}
	return accesses, rows.Err()
}

func toPermissions(in []string) []access.Permission {
	out := make([]access.Permission, len(in))
	for i, s := range in {
		out[i] = access.Permission(s)
	}
	return out
}

func fromPermissions(in []access.Permission) []string {
	out := make([]string, len(in))
	for i, p := range in {
		out[i] = string(p)
	}
	return out
}
