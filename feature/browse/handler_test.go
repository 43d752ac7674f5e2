package browse

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-recovery/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, dbName string) (*fiber.App, *mocks.Source) {
	t.Helper()
	app := fiber.New()
	db := seedCatalog(t, dbName)
	src := new(mocks.Source)
	feat := NewFeature(src, zap.NewNop(), db)
	require.NoError(t, feat.Load(app))
	return app, src
}

// TestHandleListAlbums tests the album index endpoint.
func TestHandleListAlbums(t *testing.T) {
	app, _ := setupTestApp(t, "browse_h_list")

	resp, err := app.Test(httptest.NewRequest("GET", "/albums", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, "vacations", body[0]["slug"])
	assert.Equal(t, float64(1), body[0]["file_count"])
}

// TestHandleGetAlbum tests detail lookup and the 404 path.
func TestHandleGetAlbum(t *testing.T) {
	app, _ := setupTestApp(t, "browse_h_album")

	resp, err := app.Test(httptest.NewRequest("GET", "/albums/vacations", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	album := body["album"].(map[string]any)
	assert.Equal(t, "vacations", album["name"])
	assert.Len(t, body["children"], 1)
	assert.Len(t, body["files"], 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/albums/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

// TestHandleGetFile tests metadata lookup and the 404 path.
func TestHandleGetFile(t *testing.T) {
	app, _ := setupTestApp(t, "browse_h_file")

	resp, err := app.Test(httptest.NewRequest("GET", "/files/file-beach", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "vacations/beach.jpg", body["key"])

	resp, err = app.Test(httptest.NewRequest("GET", "/files/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

// TestHandleGetFileContent tests byte streaming with the stored MIME type.
func TestHandleGetFileContent(t *testing.T) {
	app, src := setupTestApp(t, "browse_h_content")
	src.On("Open", mock.Anything, "vacations/beach.jpg").
		Return(io.NopCloser(strings.NewReader("beach")), nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/files/file-beach/content", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "beach", string(body))
	src.AssertExpectations(t)
}
