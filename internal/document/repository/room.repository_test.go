package repository

import (
	"context"
	"testing"
	"time"

	"livedocs/internal/access"
	"livedocs/internal/document/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomColumns() []string {
	return []string{"title", "creator_id", "creator_email", "default_accesses", "created_at", "updated_at"}
}

func expectGetRoom(mock sqlmock.Sqlmock, roomID string, accessRows *sqlmock.Rows) {
	now := time.Now()
	mock.ExpectQuery("SELECT title, creator_id, creator_email, default_accesses, created_at, updated_at FROM rooms").
		WithArgs(roomID).
		WillReturnRows(sqlmock.NewRows(roomColumns()).
			AddRow("Untitled", "user-alice", "alice@x.com", `{"room:write"}`, now, now))
	mock.ExpectQuery("SELECT email, permissions FROM room_accesses").
		WithArgs(roomID).
		WillReturnRows(accessRows)
}

func TestRoomRepositoryGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomRepository(db)

	accessRows := sqlmock.NewRows([]string{"email", "permissions"}).
		AddRow("alice@x.com", `{"room:write"}`).
		AddRow("bob@x.com", `{"room:read","room:presence:write"}`)
	expectGetRoom(mock, "doc-1", accessRows)

	doc, err := repo.Get(context.Background(), "doc-1")
	require.NoError(t, err)

	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, "alice@x.com", doc.Metadata.CreatorEmail)
	assert.Equal(t, []access.Permission{access.PermissionWrite}, doc.Accesses["alice@x.com"])
	assert.Equal(t, []access.Permission{access.PermissionRead, access.PermissionPresenceWrite}, doc.Accesses["bob@x.com"])
	assert.Equal(t, []access.Permission{access.PermissionWrite}, doc.DefaultAccesses)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomRepository(db)

	mock.ExpectQuery("SELECT title, creator_id, creator_email").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(roomColumns()))

	_, err = repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryUpdateGrant(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms SET updated_at").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO room_accesses").
		WithArgs("doc-1", "bob@x.com", pq.Array([]string{"room:read", "room:presence:write"})).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	accessRows := sqlmock.NewRows([]string{"email", "permissions"}).
		AddRow("alice@x.com", `{"room:write"}`).
		AddRow("bob@x.com", `{"room:read","room:presence:write"}`)
	expectGetRoom(mock, "doc-1", accessRows)

	doc, err := repo.Update(context.Background(), "doc-1", model.RoomUpdate{
		Accesses: map[string][]access.Permission{
			"bob@x.com": access.PermissionsFor(access.RoleViewer),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []access.Permission{access.PermissionRead, access.PermissionPresenceWrite}, doc.Accesses["bob@x.com"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryUpdateRemovesEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms SET updated_at").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM room_accesses").
		WithArgs("doc-1", "bob@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	accessRows := sqlmock.NewRows([]string{"email", "permissions"}).
		AddRow("alice@x.com", `{"room:write"}`)
	expectGetRoom(mock, "doc-1", accessRows)

	doc, err := repo.Update(context.Background(), "doc-1", model.RoomUpdate{
		Accesses: map[string][]access.Permission{"bob@x.com": nil},
	})
	require.NoError(t, err)
	assert.NotContains(t, doc.Accesses, "bob@x.com")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryUpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms SET updated_at").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err = repo.Update(context.Background(), "missing", model.RoomUpdate{})
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM room_accesses").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM rooms").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(context.Background(), "doc-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositoryMarkReadNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotificationRepository(db)

	mock.ExpectExec("UPDATE notifications SET read").
		WithArgs("n-1", "bob@x.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.MarkRead(context.Background(), "n-1", "bob@x.com"), model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
