package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/api/healthcheck", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "available", body["status"])
}

func registerAndLogin(t *testing.T, ts *testServer, username string) string {
	status, _, _ := ts.post(t, "/api/users", map[string]string{
		"username": username,
		"name":     "Test User",
		"password": "correct horse battery",
	}, nil)
	assert.Equal(t, http.StatusCreated, status)

	status, _, body := ts.post(t, "/api/login", map[string]string{
		"username": username,
		"password": "correct horse battery",
	}, nil)
	assert.Equal(t, http.StatusOK, status)

	token := body["token"].(map[string]any)["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

// seedBlogs inserts the two-blog fixture directly, without owners.
func seedBlogs(t *testing.T, db *sql.DB) {
	_, err := db.Exec(`
		INSERT INTO blogs (title, author, url, likes) VALUES
		('A Brief History of Time', 'Stephen Hawking', 'https://en.wikipedia.org/wiki/A_Brief_History_of_Time', 1001),
		('Doraemon', 'Fujiko Fujio', 'https://en.wikipedia.org/wiki/Doraemon_(character)', 1000)`)
	assert.NoError(t, err)
}

func TestRegisterUser(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	tests := []struct {
		name           string
		payload        map[string]string
		expectedStatus int
	}{
		{
			name:           "valid user",
			payload:        map[string]string{"username": "testuser", "password": "correct horse battery"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate username",
			payload:        map[string]string{"username": "testuser", "password": "correct horse battery"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "username too short",
			payload:        map[string]string{"username": "ab", "password": "correct horse battery"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "password too short",
			payload:        map[string]string{"username": "validuser", "password": "short"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, _, _ := ts.post(t, "/api/users", tc.payload, nil)
			assert.Equal(t, tc.expectedStatus, status)
		})
	}
}

func TestLoginUser(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	registerAndLogin(t, ts, "testuser")

	status, _, _ := ts.post(t, "/api/login", map[string]string{
		"username": "testuser",
		"password": "wrong password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestListBlogs(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	seedBlogs(t, db)

	status, _, body := ts.get(t, "/api/blogs", nil)
	assert.Equal(t, http.StatusOK, status)

	blogs := body["blogs"].([]any)
	assert.Len(t, blogs, 2)

	// every element exposes id, not a raw internal identifier
	for _, b := range blogs {
		blog := b.(map[string]any)
		assert.NotNil(t, blog["id"])
		assert.NotZero(t, blog["id"].(float64))
	}

	assert.Equal(t, float64(1001), blogs[0].(map[string]any)["likes"])
	assert.Equal(t, float64(1000), blogs[1].(map[string]any)["likes"])
}

func TestCreateBlogEndpoint(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "testuser")

	payload := map[string]any{
		"title":  "A Brief History of Time",
		"author": "Stephen Hawking",
		"url":    "https://en.wikipedia.org/wiki/A_Brief_History_of_Time",
	}

	t.Run("no token is unauthorized", func(t *testing.T) {
		status, _, _ := ts.post(t, "/api/blogs", payload, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		status, _, _ := ts.post(t, "/api/blogs", payload, strptr("not-a-token"))
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("valid create returns the owned blog with default likes", func(t *testing.T) {
		status, _, body := ts.post(t, "/api/blogs", payload, &token)
		assert.Equal(t, http.StatusCreated, status)

		blog := body["blog"].(map[string]any)
		assert.Equal(t, float64(0), blog["likes"])
		assert.Equal(t, "testuser", blog["user"].(map[string]any)["username"])

		// the new id shows up in the owner's blog list
		status, _, body = ts.get(t, "/api/users", nil)
		assert.Equal(t, http.StatusOK, status)
		users := body["users"].([]any)
		assert.Len(t, users, 1)
		assert.Len(t, users[0].(map[string]any)["blogs"].([]any), 1)
	})

	t.Run("missing title is a 400 and nothing is stored", func(t *testing.T) {
		status, _, _ := ts.post(t, "/api/blogs", map[string]any{
			"author": "Stephen Hawking",
			"url":    "https://example.com",
		}, &token)
		assert.Equal(t, http.StatusBadRequest, status)

		_, _, body := ts.get(t, "/api/blogs", nil)
		assert.Len(t, body["blogs"].([]any), 1)
	})
}

func TestUpdateBlogEndpoint(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	seedBlogs(t, db)

	t.Run("update works without a token", func(t *testing.T) {
		status, _, body := ts.put(t, "/api/blogs/1", map[string]any{"likes": 2000}, nil)
		assert.Equal(t, http.StatusOK, status)

		blog := body["blog"].(map[string]any)
		assert.Equal(t, float64(2000), blog["likes"])
		assert.Equal(t, "A Brief History of Time", blog["title"])
	})

	t.Run("empty title is rejected and the row kept", func(t *testing.T) {
		status, _, _ := ts.put(t, "/api/blogs/1", map[string]any{"title": ""}, nil)
		assert.Equal(t, http.StatusBadRequest, status)

		var title string
		assert.NoError(t, db.QueryRow("SELECT title FROM blogs WHERE id = 1").Scan(&title))
		assert.Equal(t, "A Brief History of Time", title)
	})

	t.Run("unknown id answers 200 with a null blog", func(t *testing.T) {
		status, _, body := ts.put(t, "/api/blogs/99999", map[string]any{"likes": 1}, nil)
		assert.Equal(t, http.StatusOK, status)

		blog, present := body["blog"]
		assert.True(t, present)
		assert.Nil(t, blog)
	})
}

func TestDeleteBlogEndpoint(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ownerToken := registerAndLogin(t, ts, "owner")
	otherToken := registerAndLogin(t, ts, "other")

	status, _, body := ts.post(t, "/api/blogs", map[string]any{
		"title":  "A Brief History of Time",
		"author": "Stephen Hawking",
		"url":    "https://example.com",
	}, &ownerToken)
	assert.Equal(t, http.StatusCreated, status)
	blogID := int(body["blog"].(map[string]any)["id"].(float64))

	path := fmt.Sprintf("/api/blogs/%d", blogID)

	t.Run("no token is unauthorized", func(t *testing.T) {
		status, _, _ := ts.delete(t, path, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("non-owner is forbidden and nothing changes", func(t *testing.T) {
		status, _, _ := ts.delete(t, path, &otherToken)
		assert.Equal(t, http.StatusForbidden, status)

		var count int
		assert.NoError(t, db.QueryRow("SELECT COUNT(*) FROM blogs").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("owner delete answers 204 and removes the back-reference", func(t *testing.T) {
		status, _, _ := ts.delete(t, path, &ownerToken)
		assert.Equal(t, http.StatusNoContent, status)

		var count int
		assert.NoError(t, db.QueryRow("SELECT COUNT(*) FROM blogs").Scan(&count))
		assert.Equal(t, 0, count)

		var refs int
		assert.NoError(t, db.QueryRow("SELECT cardinality(blogs) FROM users WHERE username = 'owner'").Scan(&refs))
		assert.Equal(t, 0, refs)
	})

	t.Run("repeated delete is an idempotent 204", func(t *testing.T) {
		status, _, _ := ts.delete(t, path, &ownerToken)
		assert.Equal(t, http.StatusNoContent, status)
	})
}
