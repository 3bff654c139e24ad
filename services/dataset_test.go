package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"catalog-service/models"
	"catalog-service/repository"
	"catalog-service/repository/repositorytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDataset = `
category:
  - name: Running
    slug: running
    image: https://images.unsplash.com/photo-1542291026-7eec264c27ff?q=80&w=1200
product:
  - title: Pegasus Trail 5
    price: 139.99
    category: Running
    featured: true
    sizes: ["8", "9", "10"]
  - title: Vomero 17
    price: 159
    category: Running
    brand: Nike
    rating: 4.8
`

func writeDataset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDataset(t *testing.T) {
	ds, err := LoadDataset(writeDataset(t, yamlDataset))
	require.NoError(t, err)
	require.Len(t, ds[models.CategoryCollection], 1)
	require.Len(t, ds[models.ProductCollection], 2)

	store := repositorytest.NewMemoryStore()
	seeder := NewSeeder(repository.NewHandle(store), WithDataset(ds))
	require.NoError(t, seeder.EnsureCatalogSeeded(context.Background()))

	products := store.Docs(models.ProductCollection)
	require.Len(t, products, 2)
	assert.Equal(t, "Pegasus Trail 5", products[0]["title"])
	assert.Equal(t, 159.0, products[1]["price"])
	assert.Equal(t, 4.5, products[0]["rating"])
}

func TestLoadDatasetWithBadProductInsertsNothing(t *testing.T) {
	ds, err := LoadDataset(writeDataset(t, `
product:
  - title: Fine
    price: 10
    category: Shoes
  - title: Too Good
    price: 10
    category: Shoes
    rating: 6
`))
	require.NoError(t, err)

	store := repositorytest.NewMemoryStore()
	seeder := NewSeeder(repository.NewHandle(store), WithDataset(ds))

	assert.Error(t, seeder.EnsureSeeded(context.Background(), models.ProductCollection))
	assert.Zero(t, store.Inserts(models.ProductCollection))
}

func TestLoadDatasetErrors(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadDataset(writeDataset(t, "category: [unterminated"))
	assert.Error(t, err)

	_, err = LoadDataset(writeDataset(t, "orders:\n  - id: 1\n"))
	assert.ErrorContains(t, err, `unknown collection "orders"`)
}
