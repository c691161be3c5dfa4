package mysql

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/CatalogGo/internal/domain"
	apperrors "github.com/utafrali/CatalogGo/pkg/errors"
)

func newTestRepo(t *testing.T) (*ProductRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProductRepository(db, logger), mock
}

func productRow() *sqlmock.Rows {
	return sqlmock.NewRows(productColumns).AddRow(
		1, "Essence Mascara", "Volumizing mascara", "beauty", 9.99, 7.17,
		4.94, 5, "Essence", "RCH45Q1A", "https://cdn.example.com/1/thumb.png",
		[]byte(`["beauty","mascara"]`), []byte(`["https://cdn.example.com/1/1.png"]`),
		2, 23.17, 14.43, 28.01,
		"1 month warranty", "Ships in 1 month", "Low Stock",
		"30 days return policy", 24,
		[]byte(`{"barcode":"9164035109868","qrCode":"https://cdn.example.com/qr.png"}`),
		[]byte(`[{"rating":2,"comment":"Very unhappy!","date":"2024-05-23T08:56:21.618Z","reviewerName":"John Doe","reviewerEmail":"john@x.com"}]`),
	)
}

func TestGetByID(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id = ?").
		WithArgs(1).
		WillReturnRows(productRow())

	p, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Essence Mascara", p.Title)
	assert.Equal(t, "beauty", p.Category)
	assert.Equal(t, 9.99, p.Price)
	assert.Equal(t, []string{"beauty", "mascara"}, p.Tags)
	require.NotNil(t, p.Dimensions)
	assert.Equal(t, 23.17, p.Dimensions.Width)
	require.NotNil(t, p.Meta)
	assert.Equal(t, "9164035109868", p.Meta.Barcode)
	require.Len(t, p.Reviews, 1)
	assert.Equal(t, "John Doe", p.Reviews[0].ReviewerName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id = ?").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(productColumns))

	_, err := repo.GetByID(context.Background(), 99)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Product not found", appErr.Message)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetByIDNullableColumns(t *testing.T) {
	repo, mock := newTestRepo(t)

	rows := sqlmock.NewRows(productColumns).AddRow(
		7, "Generic Widget", nil, nil, nil, nil,
		nil, nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil,
		nil, nil, nil,
		nil, nil, nil, nil,
	)
	mock.ExpectQuery("SELECT (.+) FROM products WHERE id = ?").
		WithArgs(7).
		WillReturnRows(rows)

	p, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 7, p.ID)
	assert.Empty(t, p.Brand)
	assert.Nil(t, p.Dimensions)
	assert.Nil(t, p.Meta)
	assert.Nil(t, p.Tags)
	assert.Nil(t, p.Reviews)
}

func TestCount(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(194))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 194, count)
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS products").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpsert(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("INSERT INTO products (.+) ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 2))

	products := []domain.Product{
		{ID: 1, Title: "Essence Mascara", Category: "beauty", Price: 9.99, SKU: "RCH45Q1A"},
		{ID: 2, Title: "Eyeshadow Palette", Category: "beauty", Price: 19.99, SKU: "MVCFH27F"},
	}
	require.NoError(t, repo.BulkUpsert(context.Background(), products))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpsertEmptyBatch(t *testing.T) {
	repo, mock := newTestRepo(t)

	require.NoError(t, repo.BulkUpsert(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
