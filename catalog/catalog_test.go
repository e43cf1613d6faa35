package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"shoecare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseResolver(t *testing.T) ImageResolver {
	t.Helper()
	r, err := NewBaseURLResolver("http://localhost:5000")
	require.NoError(t, err)
	return r
}

func byTitle(records []models.ServiceRecord, title string) (models.ServiceRecord, bool) {
	for _, rec := range records {
		if rec.Title == title {
			return rec, true
		}
	}
	return models.ServiceRecord{}, false
}

func TestLoadEmbeddedCatalog(t *testing.T) {
	records, err := Load(baseResolver(t))
	require.NoError(t, err)
	require.Len(t, records, 4)

	titles := make([]string, len(records))
	for i, rec := range records {
		titles[i] = rec.Title
		assert.NoError(t, rec.Validate(), rec.Title)
	}
	assert.Equal(t, []string{"Basic Clean", "Deep Clean", "Sole Restoration", "Custom Design"}, titles)
}

func TestCustomDesignEntry(t *testing.T) {
	records, err := Load(baseResolver(t))
	require.NoError(t, err)

	rec, ok := byTitle(records, "Custom Design")
	require.True(t, ok)
	assert.Equal(t, "$75", rec.Price)
	assert.Equal(t, 5.0, rec.Rating)
	assert.Equal(t, []string{"Custom painting", "Unique designs", "Logo addition", "Color changes"}, rec.Features)
	assert.Equal(t, "http://localhost:5000/images/custom-design.jpg", rec.BackgroundImageURL)
	// popularCount and isActive are omitted in the catalog.
	assert.Equal(t, models.DefaultPopularCount, rec.PopularCount)
	assert.True(t, rec.IsActive)
}

func TestLoadFileFormats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"catalog.yaml": `version: 1
services:
  - title: Lace Swap
    description: New laces.
    price: "$5"
    image: /images/laces.jpg
    icon: link
    isActive: false
`,
		"catalog.toml": `version = 1

[[services]]
title = "Lace Swap"
description = "New laces."
price = "$5"
image = "/images/laces.jpg"
icon = "link"
isActive = false
`,
		"catalog.json": `{"version": 1, "services": [{"title": "Lace Swap", "description": "New laces.", "price": "$5", "image": "/images/laces.jpg", "icon": "link", "isActive": false}]}`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			records, err := LoadFile(path, baseResolver(t))
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, "Lace Swap", records[0].Title)
			assert.Equal(t, "http://localhost:5000/images/laces.jpg", records[0].BackgroundImageURL)
			assert.False(t, records[0].IsActive)
			assert.Equal(t, models.DefaultPopularCount, records[0].PopularCount)
		})
	}
}

func TestLoadFileRejectsBadCatalogs(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"version.yaml":   "version: 2\nservices:\n  - title: X\n    image: x.jpg\n",
		"empty.yaml":     "version: 1\nservices: []\n",
		"duplicate.yaml": "version: 1\nservices:\n  - title: X\n    image: x.jpg\n  - title: X\n    image: y.jpg\n",
		"noimage.yaml":   "version: 1\nservices:\n  - title: X\n",
		"unknown.yaml":   "version: 1\nservices:\n  - title: X\n    image: x.jpg\n    colour: red\n",
		"catalog.ini":    "title=X\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
			_, err := LoadFile(path, baseResolver(t))
			assert.Error(t, err)
		})
	}
}
