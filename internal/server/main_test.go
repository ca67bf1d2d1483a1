package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"pinboard/internal/config"
	"pinboard/internal/database"
	"pinboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// memUploader stores uploads in memory and hands back fake URLs.
type memUploader struct {
	files map[string][]byte
}

func (u *memUploader) Upload(_ context.Context, filename string, content []byte) (string, error) {
	if u.files == nil {
		u.files = map[string][]byte{}
	}
	u.files[filename] = content
	return "http://cdn.test/" + filename, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:             "0",
		Env:              "test",
		JWTSecret:        "test-secret",
		AccessTTLMin:     60,
		RefreshTTLMin:    24 * 60,
		UserDeletePolicy: config.DeletePolicySelf,
	}
}

// newTestServer wires a Server onto an in-memory database with the
// full route table registered.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	return newTestServerWithConfig(t, testConfig())
}

func newTestServerWithConfig(t *testing.T, cfg *config.Config) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := database.OpenTest()
	require.NoError(t, err)

	s := NewServerWithDeps(cfg, db, nil, &memUploader{})

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeEnvelope parses the standard {success, data/error} wrapper.
func decodeEnvelope(t *testing.T, resp *http.Response) (bool, map[string]interface{}, string) {
	t.Helper()
	defer resp.Body.Close()

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	var data map[string]interface{}
	if len(env.Data) > 0 {
		// Data may be an object or an array; arrays are wrapped.
		if env.Data[0] == '[' {
			var items []interface{}
			require.NoError(t, json.Unmarshal(env.Data, &items))
			data = map[string]interface{}{"items": items}
		} else {
			require.NoError(t, json.Unmarshal(env.Data, &data))
		}
	}
	return env.Success, data, env.Error
}

func signupBody(handle string) map[string]interface{} {
	return map[string]interface{}{
		"firstName": "Test",
		"lastName":  "User",
		"username":  handle,
		"email":     handle + "@example.com",
		"phone":     "555-" + handle,
		"password":  "Password123",
	}
}

// registerUser signs a user up through the API and returns their id.
func registerUser(t *testing.T, app *fiber.App, handle string) uint {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/signup", signupBody(handle), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, data, _ := decodeEnvelope(t, resp)
	id, ok := data["id"].(float64)
	require.True(t, ok, "signup response must carry the user id")
	return uint(id)
}

// loginUser logs in through the API and returns the access and
// refresh tokens.
func loginUser(t *testing.T, app *fiber.App, handle string) (string, string) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/login", map[string]string{
		"email":    handle + "@example.com",
		"password": "Password123",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, data, _ := decodeEnvelope(t, resp)
	access, _ := data["access"].(string)
	refresh, _ := data["refresh"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	return access, refresh
}

// registerAndLogin is the common signup+login preamble.
func registerAndLogin(t *testing.T, app *fiber.App, handle string) (uint, string) {
	t.Helper()
	id := registerUser(t, app, handle)
	access, _ := loginUser(t, app, handle)
	return id, access
}

// createPost creates a post through the API and returns its id.
func createPost(t *testing.T, app *fiber.App, token, name string) uint {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/posts/create", map[string]string{
		"name":    name,
		"address": "12 Main St",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, data, _ := decodeEnvelope(t, resp)
	id, ok := data["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

// multipartUpload builds a multipart body with a single file field.
func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

// loadUser reads a user row directly, bypassing the API.
func loadUser(t *testing.T, s *Server, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, s.db.First(&user, id).Error)
	return &user
}
