package api

import (
	"encoding/json"
	"testing"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`"true"`, true},
		{`"false"`, false},
		{`"FALSE"`, false},
		{`"0"`, false},
		{`"off"`, false},
		{`"no"`, false},
		{`""`, false},
		{`"on"`, true},
		{`"yes"`, true},
		{`null`, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var v truthy
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &v))
			assert.Equal(t, tt.want, bool(v))
		})
	}
}

func TestGalleryInput(t *testing.T) {
	var g galleryInput
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &g))
	assert.Equal(t, `["a","b"]`, models.Deref(g.encoded))

	require.NoError(t, json.Unmarshal([]byte(`[]`), &g))
	assert.Nil(t, g.encoded)

	require.NoError(t, json.Unmarshal([]byte(`"[\"c\"]"`), &g))
	assert.Equal(t, `["c"]`, models.Deref(g.encoded))

	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &g))
}

func TestTagsInput(t *testing.T) {
	var tags tagsInput
	require.NoError(t, json.Unmarshal([]byte(`["go","redis"]`), &tags))
	assert.Equal(t, tagsInput("go,redis"), tags)

	require.NoError(t, json.Unmarshal([]byte(`"a, b"`), &tags))
	assert.Equal(t, tagsInput("a, b"), tags)

	assert.Error(t, json.Unmarshal([]byte(`12`), &tags))
}

func TestNumericString(t *testing.T) {
	var n numericString
	require.NoError(t, json.Unmarshal([]byte(`85`), &n))
	assert.Equal(t, numericString("85"), n)

	require.NoError(t, json.Unmarshal([]byte(`"70"`), &n))
	assert.Equal(t, numericString("70"), n)

	assert.Error(t, json.Unmarshal([]byte(`true`), &n))
}

func TestProjectRequestApply(t *testing.T) {
	var req projectRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":" Demo ","liveUrl":null,"featured":"1"}`), &req))

	project := models.Project{LiveURL: models.StringPtr("https://old"), GithubURL: models.StringPtr("https://gh")}
	req.apply(&project)

	assert.Equal(t, "Demo", project.Title)
	assert.Nil(t, project.LiveURL)
	assert.Equal(t, "https://gh", models.Deref(project.GithubURL))
	assert.True(t, project.Featured)
}

func TestParseID(t *testing.T) {
	_, err := parseID("", "id")
	assert.Error(t, err)

	_, err = parseID("nope", "id")
	assert.Error(t, err)

	id, err := parseID(" 7c4e3e52-4a3a-4e8e-9b0d-7a4c0c3f1f10 ", "id")
	require.NoError(t, err)
	assert.Equal(t, "7c4e3e52-4a3a-4e8e-9b0d-7a4c0c3f1f10", id.String())
}
