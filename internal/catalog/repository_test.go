package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) *Repository {
	repo, err := NewRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	_, err = repo.db.Exec(`
		CREATE TABLE products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price INTEGER NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)
	`)
	require.NoError(t, err)

	return repo
}

func insertProduct(t *testing.T, repo *Repository, id, name string, price int64) {
	_, err := repo.db.Exec(
		`INSERT INTO products (id, name, description, price, image_url, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, name, "a tool", price, "https://cdn.example.com/"+id+".jpg", time.Now().UTC(),
	)
	require.NoError(t, err)
}

func TestGetProduct_Success(t *testing.T) {
	repo := setupTestRepo(t)
	insertProduct(t, repo, "p1", "Cordless Drill", 45000)

	p, err := repo.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Cordless Drill", p.Name)
	assert.Equal(t, int64(45000), p.Price)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetProduct(context.Background(), "missing")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestListProducts(t *testing.T) {
	repo := setupTestRepo(t)
	insertProduct(t, repo, "p1", "Cordless Drill", 45000)
	insertProduct(t, repo, "p2", "Claw Hammer", 8000)

	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestListProducts_EmptyCatalog(t *testing.T) {
	repo := setupTestRepo(t)

	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}
