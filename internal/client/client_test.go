package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/taskboard/pkg/util"
)

func newStubServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, New(server.URL)
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func TestLoginStoresToken(t *testing.T) {
	var gotPath string
	_, c := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeData(w, http.StatusOK, map[string]any{
			"user": map[string]any{"id": "u1", "email": "ada@x.com", "role": "USER"},
			"auth": map[string]any{"token": "jwt-token"},
		})
	})

	session, err := c.Login(context.Background(), "ada@x.com", "pass1234")
	require.NoError(t, err)
	assert.Equal(t, "/auth/login", gotPath)
	assert.Equal(t, "u1", session.User.ID)
	assert.Equal(t, "jwt-token", c.Token())
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	_, c := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeData(w, http.StatusOK, []any{})
	})
	c.token = "jwt-token"

	_, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt-token", gotAuth)
}

func TestListTasksByProjectQuery(t *testing.T) {
	var gotQuery string
	_, c := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeData(w, http.StatusOK, []map[string]any{
			{"id": "t1", "title": "wire up auth", "status": "TODO", "user": map[string]any{"email": "ada@x.com"}},
		})
	})

	tasks, err := c.ListTasksByProject(context.Background(), "p 1")
	require.NoError(t, err)
	assert.Equal(t, "projectId=p+1", gotQuery)
	require.Len(t, tasks, 1)
	require.NotNil(t, tasks[0].Assignee)
	assert.Equal(t, "ada@x.com", tasks[0].Assignee.Email)
}

func TestErrorEnvelopeMapsToDomainError(t *testing.T) {
	_, c := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    "CONFLICT",
				"message": "project with this name already exists",
				"details": map[string]any{"name": "Atlas"},
			},
		})
	})

	_, err := c.CreateProject(context.Background(), "Atlas")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
	assert.Equal(t, "Atlas", domainErr.Details["name"])
}

func TestUnexpectedErrorBody(t *testing.T) {
	_, c := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream timeout"))
	})

	_, err := c.ListProjects(context.Background())
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
}

func TestDeleteSendsNoBody(t *testing.T) {
	var gotMethod, gotPath string
	_, c := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		writeData(w, http.StatusOK, map[string]any{"deleted": true})
	})

	require.NoError(t, c.DeleteProject(context.Background(), "p1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/projects/p1", gotPath)
}
