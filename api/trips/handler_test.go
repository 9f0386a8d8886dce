package trips

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kilianp07/autorange/core/journal"
)

type memStore struct{ recs []journal.Record }

func (m *memStore) Append(_ context.Context, r journal.Record) error {
	m.recs = append(m.recs, r)
	return nil
}

func (m *memStore) Query(_ context.Context, q journal.Query) ([]journal.Record, error) {
	var res []journal.Record
	for _, r := range m.recs {
		if q.Match(r) {
			res = append(res, r)
		}
	}
	return res, nil
}

func (m *memStore) Close() error { return nil }

func TestTripHandler(t *testing.T) {
	now := time.Now().UTC()
	store := &memStore{}
	_ = store.Append(context.Background(), journal.Record{ID: "t1", Timestamp: now.Add(-time.Hour), VehicleID: "v1", Outcome: "ok"})
	_ = store.Append(context.Background(), journal.Record{ID: "t2", Timestamp: now, VehicleID: "v2", Outcome: "capacity_exceeded"})

	h := NewHandler(store, "secret")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/trips", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips?outcome=capacity_exceeded", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out []journal.Record
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].ID != "t2" {
		t.Fatalf("unexpected records %#v", out)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/trips?start="+now.Add(-30*time.Minute).Format(time.RFC3339), nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	if len(out) != 1 {
		t.Fatalf("start filter: %#v", out)
	}
}

func TestTripHandlerEmpty(t *testing.T) {
	h := NewHandler(&memStore{}, "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/trips?vehicle_id=x", nil))
	if rr.Body.String() != "[]\n" {
		t.Fatalf("expected empty array got %s", rr.Body.String())
	}
}

type mockStore struct{ mock.Mock }

func (m *mockStore) Append(ctx context.Context, r journal.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockStore) Query(ctx context.Context, q journal.Query) ([]journal.Record, error) {
	args := m.Called(ctx, q)
	recs, _ := args.Get(0).([]journal.Record)
	return recs, args.Error(1)
}

func (m *mockStore) Close() error { return m.Called().Error(0) }

func TestTripHandlerQueryError(t *testing.T) {
	store := &mockStore{}
	store.On("Query", mock.Anything, journal.Query{VehicleID: "v1"}).Return(nil, errors.New("disk gone"))
	h := NewHandler(store, "")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/trips?vehicle_id=v1", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "disk gone")
	store.AssertExpectations(t)
}

func TestTripHandlerBadRequest(t *testing.T) {
	store := &mockStore{}
	h := NewHandler(store, "")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/trips?end=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/trips", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	store.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}
