package odata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/bnema/xpertdoc-portal-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, server *httptest.Server, creds domain.Credentials, cfg Config) ports.Portal {
	t.Helper()

	cfg.HTTPClient = server.Client()
	portal, err := NewConnector(cfg).Connect(domain.NewSession(server.URL, creds))
	require.NoError(t, err)
	return portal
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestConnectRejectsInvalidBaseURL(t *testing.T) {
	t.Parallel()

	connector := NewConnector(Config{})
	for _, raw := range []string{"", "ftp://portal", "http://", "://bad"} {
		_, err := connector.Connect(domain.Session{BaseURL: raw, Credentials: domain.AmbientCredentials()})
		assert.Error(t, err, raw)
	}
}

func TestQuerySendsFilterAndDecodesValues(t *testing.T) {
	t.Parallel()

	libraryID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/portal/odata/TemplateGroups", r.URL.Path)
		assert.Equal(t, "TemplateLibraryId eq "+libraryID.String()+" and Name eq 'Invoices'", r.URL.Query().Get("$filter"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, err := uuid.Parse(r.Header.Get(requestIDHeader))
		assert.NoError(t, err)

		writeJSON(t, w, http.StatusOK, map[string]any{
			"value": []map[string]any{{"TemplateGroupId": "b1e9e3f0-1111-4a4a-9b9b-2c2c2c2c2c2c", "Name": "Invoices"}},
		})
	}))
	t.Cleanup(server.Close)

	cfg := Config{HTTPClient: server.Client()}
	portal, err := NewConnector(cfg).Connect(domain.NewSession(server.URL+"/portal", domain.AmbientCredentials()))
	require.NoError(t, err)

	records, err := portal.Query(context.Background(), domain.EntitySetTemplateGroups, domain.Eq("TemplateLibraryId", libraryID).And("Name", "Invoices"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Invoices", records[0]["Name"])
}

func TestAmbientCredentialsNeverLogIn(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEqual(t, "/"+loginPath, r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{"value": []any{}})
	}))
	t.Cleanup(server.Close)

	portal := connect(t, server, domain.AmbientCredentials(), Config{})
	records, err := portal.Query(context.Background(), domain.EntitySetTemplateLibraries, domain.Eq("Name", "Docs"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFormsLoginHappensOnceAndCookieIsReplayed(t *testing.T) {
	t.Parallel()

	var logins atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/"+loginPath {
			logins.Add(1)
			var body loginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "alice", body.UserName)
			assert.Equal(t, "alice-secret", body.Password)
			http.SetCookie(w, &http.Cookie{Name: "XpertdocAuth", Value: "ticket-1", Path: "/"})
			w.WriteHeader(http.StatusOK)
			return
		}

		cookie, err := r.Cookie("XpertdocAuth")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "ticket-1", cookie.Value)
		writeJSON(t, w, http.StatusOK, map[string]any{"value": []any{}})
	}))
	t.Cleanup(server.Close)

	portal := connect(t, server, domain.ExplicitCredentials("alice", "alice-secret"), Config{})
	for range 3 {
		_, err := portal.Query(context.Background(), domain.EntitySetContentLibraries, domain.Eq("Name", "Reports"))
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), logins.Load())
}

func TestFormsLoginRejectedSurfacesAuthorization(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"error": map[string]string{"code": "InvalidCredentials", "message": "bad password"}})
	}))
	t.Cleanup(server.Close)

	portal := connect(t, server, domain.ExplicitCredentials("alice", "wrong"), Config{})
	_, err := portal.Query(context.Background(), domain.EntitySetContentLibraries, domain.Eq("Name", "Reports"))
	require.ErrorIs(t, err, domain.ErrAuthorization)
	assert.ErrorContains(t, err, "forms login")
	assert.ErrorContains(t, err, "bad password")
}

func TestStatusCodesMapToDomainErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		status int
		want   error
	}{
		{status: http.StatusUnauthorized, want: domain.ErrAuthorization},
		{status: http.StatusForbidden, want: domain.ErrAuthorization},
		{status: http.StatusNotFound, want: domain.ErrNotFound},
		{status: http.StatusConflict, want: domain.ErrConflict},
		{status: http.StatusLocked, want: domain.ErrConflict},
		{status: http.StatusGatewayTimeout, want: domain.ErrTimeout},
	}

	for _, tc := range testCases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			t.Cleanup(server.Close)

			portal := connect(t, server, domain.AmbientCredentials(), Config{})
			err := portal.Mutate(context.Background(), domain.EntityRef{Set: domain.EntitySetContentLibraryFiles, ID: uuid.New()}, domain.CheckOutMutation())
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUnexpectedStatusIsNotClassified(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	portal := connect(t, server, domain.AmbientCredentials(), Config{})
	_, err := portal.FetchContent(context.Background(), domain.EntityRef{Set: domain.EntitySetContentLibraryFiles, ID: uuid.New()})
	require.Error(t, err)
	assert.ErrorContains(t, err, "status 500: boom")
	for _, kind := range []error{domain.ErrNotFound, domain.ErrConflict, domain.ErrAuthorization, domain.ErrTimeout} {
		assert.NotErrorIs(t, err, kind)
	}
}

func TestRequestTimeoutSurfacesAsTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	portal := connect(t, server, domain.AmbientCredentials(), Config{RequestTimeout: 20 * time.Millisecond})
	_, err := portal.Query(context.Background(), domain.EntitySetTemplates, domain.Eq("Name", "Slow"))
	require.ErrorIs(t, err, domain.ErrTimeout)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestRequestTimeoutAppliesUnderLongerCallerDeadline(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	portal := connect(t, server, domain.AmbientCredentials(), Config{RequestTimeout: 50 * time.Millisecond})
	start := time.Now()
	_, err := portal.Query(ctx, domain.EntitySetTemplates, domain.Eq("Name", "Slow"))
	require.ErrorIs(t, err, domain.ErrTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFetchContentDecodesBase64Value(t *testing.T) {
	t.Parallel()

	fileID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/odata/ContentLibraryFiles("+fileID.String()+")/GetContent", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]string{"value": "JVBERi0xLjc="})
	}))
	t.Cleanup(server.Close)

	portal := connect(t, server, domain.AmbientCredentials(), Config{})
	content, err := portal.FetchContent(context.Background(), domain.EntityRef{Set: domain.EntitySetContentLibraryFiles, ID: fileID})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), content)
}

func TestMutateUpdateContentSendsBase64Body(t *testing.T) {
	t.Parallel()

	fileID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/odata/ContentLibraryFiles("+fileID.String()+")/UpdateContent", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "AA==", body["content"])
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	portal := connect(t, server, domain.AmbientCredentials(), Config{})
	err := portal.Mutate(context.Background(), domain.EntityRef{Set: domain.EntitySetContentLibraryFiles, ID: fileID}, domain.UpdateContentMutation([]byte{0x00}))
	require.NoError(t, err)
}

func TestMutateRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}))
	t.Cleanup(server.Close)

	portal := connect(t, server, domain.AmbientCredentials(), Config{})
	err := portal.Mutate(context.Background(), domain.EntityRef{Set: domain.EntitySetContentLibraryFiles, ID: uuid.New()}, domain.Mutation{Kind: "Delete"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported mutation")
}
