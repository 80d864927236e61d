package service

import (
	"context"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifehub/internal/record/model"
	"lifehub/internal/record/repository"
	"lifehub/pkg/apperr"
	"lifehub/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTaskService(t *testing.T) (*Service[model.Task, *model.Task], sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New[model.Task, *model.Task](repository.NewRepository(db, repository.TaskSchema())), mock
}

func TestAnonymousPrincipalRejectedBeforeStoreAccess(t *testing.T) {
	svc, mock := newTaskService(t)

	_, err := svc.ListPage(context.Background(), "", "")
	assert.True(t, apperr.IsUnauthenticated(err))

	_, err = svc.Get(context.Background(), "", "t1")
	assert.True(t, apperr.IsUnauthenticated(err))

	_, err = svc.Create(context.Background(), "", model.Task{})
	assert.True(t, apperr.IsUnauthenticated(err))

	err = svc.Delete(context.Background(), "", "t1")
	assert.True(t, apperr.IsUnauthenticated(err))

	// Nothing above may have touched the store.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStampsOwnerUnconditionally(t *testing.T) {
	svc, mock := newTaskService(t)

	mock.ExpectExec("INSERT INTO tasks").
		WithArgs(sqlmock.AnyArg(), "user-a", "Buy milk", "", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// The submitted record claims a different owner and a fixed ID; both
	// are overwritten at creation.
	rec, err := svc.Create(context.Background(), "user-a", model.Task{
		ID:      "forged-id",
		OwnerID: "user-b",
		Title:   "Buy milk",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-a", rec.OwnerID)
	assert.NotEqual(t, "forged-id", rec.ID)
	_, err = uuid.Parse(rec.ID)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), rec.CreatedAt, time.Minute)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPageCountIgnoresSearchFilter(t *testing.T) {
	svc, mock := newTaskService(t)

	mock.ExpectQuery(regexp.QuoteMeta("title ILIKE '%' || $2 || '%'")).
		WithArgs("user-a", "milk").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title", "description", "complete", "created_at"}).
			AddRow("t1", "user-a", "Buy milk", "", false, time.Now()))
	// The incomplete count runs against the whole owned set, no search arg.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tasks WHERE owner_id = $1 AND complete = false")).
		WithArgs("user-a").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	page, err := svc.ListPage(context.Background(), "user-a", "milk")
	require.NoError(t, err)
	assert.Equal(t, "milk", page.SearchInput)
	require.NotNil(t, page.Count)
	assert.Equal(t, 5, *page.Count)
	assert.Len(t, page.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteListPageHasNoCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	svc := New[model.Quote, *model.Quote](repository.NewRepository(db, repository.QuoteSchema()))

	mock.ExpectQuery("SELECT .* FROM quotes").
		WithArgs("user-a").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "author", "quote", "category", "created_at"}))

	page, err := svc.ListPage(context.Background(), "user-a", "")
	require.NoError(t, err)
	assert.Nil(t, page.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAppliesEditableFieldsToLoadedRecord(t *testing.T) {
	svc, mock := newTaskService(t)

	created := time.Now().Add(-time.Hour)
	mock.ExpectQuery("SELECT .* FROM tasks WHERE id").
		WithArgs("t1", "user-a").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title", "description", "complete", "created_at"}).
			AddRow("t1", "user-a", "Old title", "old", false, created))
	mock.ExpectExec("UPDATE tasks SET").
		WithArgs("New title", "old", true, "t1", "user-a").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec, err := svc.Update(context.Background(), "user-a", "t1", func(task *model.Task) {
		task.Title = "New title"
		task.Complete = true
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", rec.Title)
	assert.True(t, rec.Complete)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateForeignRecordIsNotFound(t *testing.T) {
	svc, mock := newTaskService(t)

	mock.ExpectQuery("SELECT .* FROM tasks WHERE id").
		WithArgs("t1", "user-b").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title", "description", "complete", "created_at"}))

	_, err := svc.Update(context.Background(), "user-b", "t1", func(*model.Task) {})
	assert.True(t, apperr.IsNotFound(err))
}
