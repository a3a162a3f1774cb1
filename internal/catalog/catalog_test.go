package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Products(t *testing.T) {
	c := New()
	products, err := c.Products()
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "organic-cotton-dress", products[0].ID)
	assert.Equal(t, "2,700L", products[0].Impact.WaterSaved)
	assert.Equal(t, "GOTS Certified", products[0].Materials[0].Sustainability)
	assert.Equal(t, []string{"RWS Certified", "Global Recycled Standard", "B Corp"}, products[2].Certifications)
}

func TestCatalog_ProductsReturnsCopy(t *testing.T) {
	c := New()
	first, err := c.Products()
	require.NoError(t, err)
	first[0].ID = "mutated"

	second, err := c.Products()
	require.NoError(t, err)
	assert.Equal(t, "organic-cotton-dress", second[0].ID)
}

func TestCatalog_ByID(t *testing.T) {
	c := New()

	p, ok, err := c.ByID("hemp-linen-shirt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Tops", p.Category)
	assert.Len(t, p.Materials, 2)

	_, ok, err = c.ByID("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalog_ByCategory(t *testing.T) {
	c := New()

	knit, err := c.ByCategory("Knitwear")
	require.NoError(t, err)
	require.Len(t, knit, 1)
	assert.Equal(t, "recycled-wool-sweater", knit[0].ID)

	none, err := c.ByCategory("knitwear")
	require.NoError(t, err)
	assert.Empty(t, none)
}
