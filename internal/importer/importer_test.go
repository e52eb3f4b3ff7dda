package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedHeader = `Handle,Title,Body (HTML),Vendor,Type,Product Category,Tags,Published,Variant Price,Variant Compare At Price,Image Src,Option1 Value,Variant Image`

func parseFeed(t *testing.T, rows ...string) []RawProduct {
	t.Helper()
	feed := feedHeader + "\n" + strings.Join(rows, "\n")
	products, err := Parse(strings.NewReader(feed))
	require.NoError(t, err)
	return products
}

func TestParseGroupsVariantRowsByHandle(t *testing.T) {
	products := parseFeed(t,
		`lip-gloss,Gloss,<p>Shiny</p>,BV,Lip,Health & Beauty > Personal Care > Cosmetics > Makeup > Lip Makeup,gloss,true,12.00,,https://img.example/gloss.jpg,,`,
		`lip-gloss,,,,,,,,12.00,,,Red,`,
	)

	require.Len(t, products, 1)
	product := products[0]
	assert.Equal(t, "lip-gloss", product.Handle)
	assert.Equal(t, "Gloss", product.Title)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, "Red", product.Variants[0].Title)
	// Variant rows without their own image inherit the canonical one.
	assert.Equal(t, "https://img.example/gloss.jpg", product.Variants[0].ImageURL)
}

func TestParseSkipsUnpublishedProducts(t *testing.T) {
	products := parseFeed(t,
		`visible,Visible,,BV,Lip,,,true,10.00,,,,`,
		`hidden,Hidden,,BV,Lip,,,false,10.00,,,,`,
	)

	require.Len(t, products, 1)
	assert.Equal(t, "visible", products[0].Handle)
}

func TestParseStatusActiveCountsAsPublished(t *testing.T) {
	feed := "Handle,Title,Variant Price,Status\n" +
		"serum,Serum,25.00,active\n"
	products, err := Parse(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].Published)
}

func TestParseToleratesHeaderWhitespace(t *testing.T) {
	feed := " Handle , Title , Variant Price , Published \n" +
		"mask,Mask,8.50,true\n"
	products, err := Parse(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Mask", products[0].Title)
	assert.Equal(t, 8.50, products[0].Price)
}

func TestParseVariantRowWithoutOptionValueIsIgnored(t *testing.T) {
	products := parseFeed(t,
		`balm,Balm,,BV,Lip,,,true,6.00,,,,`,
		`balm,,,,,,,,6.00,,,,`,
	)

	require.Len(t, products, 1)
	assert.Empty(t, products[0].Variants)
}

func TestParseVariantRowBeforeCanonicalRowIsDropped(t *testing.T) {
	products := parseFeed(t,
		`orphan,,,,,,,,5.00,,,Red,`,
	)
	assert.Empty(t, products)
}

func TestParseStripsDescriptionMarkup(t *testing.T) {
	products := parseFeed(t,
		`cream,Cream,"<div>Rich &amp; <b>creamy</b>&nbsp;texture</div>",BV,Skin,,,true,18.00,,,,`,
	)

	require.Len(t, products, 1)
	assert.Equal(t, "Rich & creamy texture", products[0].Description)
}

func TestParseCleansImageArtifacts(t *testing.T) {
	products := parseFeed(t,
		`oil,Oil,,BV,Hair,,,true,14.00,,"'https://img.example/a.jpg,https://img.example/b.jpg'",,`,
	)

	require.Len(t, products, 1)
	assert.Equal(t, "https://img.example/a.jpg", products[0].ImageURL)
}

func TestParseMissingHandleColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("Title,Variant Price\nGloss,12.00\n"))
	assert.Error(t, err)
}

func TestToProductsMapsFeedGroups(t *testing.T) {
	compareAt := 20.0
	raws := []RawProduct{{
		Handle:         "day-cream",
		Title:          "Day Cream",
		Description:    "Light moisturizer",
		Vendor:         "BV",
		Category:       "Skin Care",
		Published:      true,
		Price:          15.0,
		CompareAtPrice: &compareAt,
		ImageURL:       "https://img.example/cream.jpg",
	}}

	products := ToProducts(raws)
	require.Len(t, products, 1)
	p := products[0]
	assert.Equal(t, "day-cream", p.Slug)
	assert.Equal(t, "Day Cream", p.Name)
	assert.Equal(t, 15.0, p.Price)
	require.NotNil(t, p.CompareAtPrice)
	assert.Equal(t, 20.0, *p.CompareAtPrice)
	require.NotNil(t, p.Brand)
	assert.Equal(t, "BV", *p.Brand)
	require.NotNil(t, p.ImageAlt)
	assert.Equal(t, "Day Cream", *p.ImageAlt)
	assert.True(t, p.InStock)
	assert.Nil(t, p.ExternalID)
}
