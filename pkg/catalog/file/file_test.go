package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightshop/pkg/catalog"
)

const feed = `products:
  - id: 10
    name: Warm evening
    price: 790
    category: garland
    image: https://example.com/a.jpg
    features: [LED, USB]
    occasions: [Nursery]
    power: USB
  - id: 11
    name: Party set
    price: 1590
    category: decor
`

func TestProviderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(feed), 0o600))

	c, err := catalog.Load(context.Background(), New(path))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	p, err := c.Get(10)
	require.NoError(t, err)
	assert.Equal(t, catalog.Garland, p.Category)
	assert.Equal(t, []string{"LED", "USB"}, p.Features)
	assert.Equal(t, "USB", p.Power)

	decor := c.Filter(catalog.Select(catalog.Decor))
	require.Len(t, decor, 1)
	assert.Equal(t, 11, decor[0].ID)
}

func TestDecodeRejectsUnknownCategory(t *testing.T) {
	_, err := Decode([]byte("products:\n  - id: 1\n    name: x\n    category: lamp\n"))
	assert.ErrorIs(t, err, catalog.ErrInvalidCategory)
}

func TestDecodeRejectsUnknownField(t *testing.T) {
	_, err := Decode([]byte("products:\n  - id: 1\n    colour: red\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.yaml")).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
