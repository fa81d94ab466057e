package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBackend records requests and serves canned responses per route
type mockBackend struct {
	mu       sync.Mutex
	url      string
	requests []*http.Request
	bodies   []string
	handlers map[string]http.HandlerFunc
}

func newMockBackend(t *testing.T) (*mockBackend, *Client) {
	t.Helper()
	m := &mockBackend{handlers: make(map[string]http.HandlerFunc)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		m.mu.Lock()
		m.requests = append(m.requests, r)
		m.bodies = append(m.bodies, string(body))
		h, ok := m.handlers[r.Method+" "+r.URL.Path]
		m.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"no route"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	m.url = srv.URL

	client, err := NewClient(ClientConfig{BaseURL: srv.URL, Tokens: StaticToken("tok-123")})
	require.NoError(t, err)
	return m, client
}

func (m *mockBackend) handle(route string, status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[route] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (m *mockBackend) last() (*http.Request, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1], m.bodies[len(m.bodies)-1]
}

type recordingObserver struct {
	routes   []string
	statuses []int
}

func (o *recordingObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	o.routes = append(o.routes, method+" "+route)
	o.statuses = append(o.statuses, status)
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	assert.Error(t, err)

	_, err = NewClient(ClientConfig{BaseURL: "ftp://example.org"})
	assert.Error(t, err)

	c, err := NewClient(ClientConfig{BaseURL: "https://example.org/"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", c.BaseURL())
	assert.Equal(t, 30*time.Second, c.timeout)
}

func TestClient_SendsAuthAndRequestID(t *testing.T) {
	m, c := newMockBackend(t)
	m.handle("GET /api/residents", http.StatusOK, `[{"id":1,"husband_name":"Omar","num_family_members":4}]`)

	residents, err := c.ListResidents(context.Background())
	require.NoError(t, err)
	require.Len(t, residents, 1)
	assert.Equal(t, "Omar", residents[0].HusbandName)

	req, _ := m.last()
	assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))
	assert.Len(t, req.Header.Get("X-Request-ID"), 36)
}

func TestClient_LoginIsAnonymous(t *testing.T) {
	m, c := newMockBackend(t)
	m.handle("POST /api/login", http.StatusOK, `{"success":true,"token":"jwt","role":"admin","permissions":{}}`)

	res, err := c.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", res.Token)
	assert.Equal(t, "admin", res.Role)

	req, body := m.last()
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.JSONEq(t, `{"username":"admin","password":"secret"}`, body)
}

func TestClient_ErrorMapping(t *testing.T) {
	m, c := newMockBackend(t)
	m.handle("GET /api/residents/search", http.StatusNotFound, `{"error":"المستفيد غير موجود"}`)
	m.handle("GET /api/aids", http.StatusUnauthorized, `{"error":"Token مطلوب"}`)
	m.handle("POST /api/children", http.StatusBadRequest, `{"message":"الطفل موجود بالفعل!"}`)

	_, err := c.SearchResident(context.Background(), "Omar", "123456789")
	assert.ErrorIs(t, err, ErrNotFound)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "المستفيد غير موجود", apiErr.Message)

	_, err = c.ListAids(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.CreateChild(context.Background(), ChildInput{Name: "Lina"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "الطفل موجود بالفعل!", apiErr.Message)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestClient_SearchResidentQuery(t *testing.T) {
	m, c := newMockBackend(t)
	m.handle("GET /api/residents/search", http.StatusOK, `{"id":42,"name":"أحمد"}`)

	match, err := c.SearchResident(context.Background(), "أحمد", "123456789")
	require.NoError(t, err)
	assert.Equal(t, 42, match.ID)

	req, _ := m.last()
	assert.Equal(t, "أحمد", req.URL.Query().Get("name"))
	assert.Equal(t, "123456789", req.URL.Query().Get("id"))
}

func TestClient_SearchResidentWithoutID(t *testing.T) {
	for _, body := range []string{`{}`, `null`, `{"id":0,"name":"أحمد"}`} {
		m, c := newMockBackend(t)
		m.handle("GET /api/residents/search", http.StatusOK, body)

		match, err := c.SearchResident(context.Background(), "أحمد", "123456789")
		assert.Nil(t, match, body)
		assert.ErrorIs(t, err, ErrNotFound, body)
	}
}

func TestClient_CheckResident(t *testing.T) {
	m, c := newMockBackend(t)

	exists, err := c.CheckResident(context.Background(), "1", "2", "3")
	require.NoError(t, err, "missing endpoint is treated as not existing")
	assert.False(t, exists)

	m.handle("GET /api/residents/check", http.StatusOK, `{"exists":true}`)
	exists, err = c.CheckResident(context.Background(), "1", "2", "3")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestClient_CreateAid(t *testing.T) {
	m, c := newMockBackend(t)
	m.handle("POST /api/aids", http.StatusCreated, `{"id":7,"resident_id":42,"aid_type":"طرد غذائي","date":"2024-05-01","resident":{"husband_name":"أحمد","husband_id_number":"123456789"}}`)

	aid, err := c.CreateAid(context.Background(), AidInput{ResidentID: 42, AidType: "طرد غذائي", Date: "2024-05-01"})
	require.NoError(t, err)
	assert.Equal(t, 7, aid.ID)

	_, body := m.last()
	assert.JSONEq(t, `{"resident_id":42,"aid_type":"طرد غذائي","date":"2024-05-01"}`, body)
}

func TestClient_DeleteChildEscapesIDNumber(t *testing.T) {
	m, c := newMockBackend(t)
	m.handle("DELETE /api/children/401234567", http.StatusOK, `{"message":"ok"}`)

	require.NoError(t, c.DeleteChild(context.Background(), "401234567"))
	req, _ := m.last()
	assert.Equal(t, http.MethodDelete, req.Method)
}

func TestClient_UploadResidents(t *testing.T) {
	m, c := newMockBackend(t)
	m.handle("POST /api/residents/import", http.StatusOK, `{"message":"تم استيراد 2 مستفيد بنجاح"}`)

	msg, err := c.UploadResidents(context.Background(), "/tmp/residents.xlsx", strings.NewReader("sheet-bytes"))
	require.NoError(t, err)
	assert.Contains(t, msg.Message, "2")

	req, body := m.last()
	assert.True(t, strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data"))
	assert.Contains(t, body, `name="file"; filename="residents.xlsx"`)
	assert.Contains(t, body, "sheet-bytes")
}

func TestClient_Observer(t *testing.T) {
	m, _ := newMockBackend(t)
	m.handle("PUT /api/aids/3", http.StatusOK, `{"message":"ok"}`)

	obs := &recordingObserver{}
	c, err := NewClient(ClientConfig{BaseURL: m.url, Observer: obs})
	require.NoError(t, err)

	_, err = c.UpdateAid(context.Background(), 3, map[string]any{"aid_type": "نقدية"})
	require.NoError(t, err)
	assert.Equal(t, []string{"PUT /api/aids/{id}"}, obs.routes)
	assert.Equal(t, []int{http.StatusOK}, obs.statuses)
}

func TestClient_NotificationsAndMarkRead(t *testing.T) {
	m, c := newMockBackend(t)
	m.handle("GET /api/notifications", http.StatusOK, `[{"id":1,"action":"add","is_new":true},{"id":2,"is_new":false}]`)
	m.handle("POST /api/notifications/mark-read", http.StatusOK, `{"success":true}`)

	items, err := c.ListNotifications(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	require.NoError(t, c.MarkNotificationsRead(context.Background()))
}

func TestClient_ContextCancelled(t *testing.T) {
	m, c := newMockBackend(t)
	m.handle("GET /api/exports", http.StatusOK, `[]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListExpenses(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunBatch(t *testing.T) {
	result := RunBatch(context.Background(), []string{"1", "", "2", "3"}, func(_ context.Context, id string) error {
		if id == "2" {
			return errors.New("boom")
		}
		return nil
	})

	assert.Equal(t, []string{"1", "3"}, result.Succeeded)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, "(empty)", result.Failed[0].ID)
	assert.Equal(t, "2", result.Failed[1].ID)
	assert.True(t, result.HasErrors())
	assert.Equal(t, "2 succeeded, 2 failed", result.Summary())

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"succeeded"`)
}
