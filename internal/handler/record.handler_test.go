package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"record-service/internal/domain"
	"record-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeRepo struct {
	mu      sync.Mutex
	records []*domain.Record
	err     error
}

func (f *fakeRepo) Create(ctx context.Context, req *domain.CreateRecordRequest) (*domain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	rec := &domain.Record{ID: primitive.NewObjectID(), Name: req.Name, Album: req.Album, CreatedAt: now, UpdatedAt: now}
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeRepo) GetAll(ctx context.Context) ([]*domain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]*domain.Record(nil), f.records...), nil
}

type recordJSON struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Album     string    `json:"album"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Version   *int      `json:"__v"`
}

func newTestHandler(repo *fakeRepo) (*RecordHandler, *ErrorResponder) {
	logger := zap.NewNop()
	return NewRecordHandler(usecase.NewRecordUsecase(repo, logger), logger), NewErrorResponder(logger)
}

func post(h *RecordHandler, errs *ErrorResponder, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/records", strings.NewReader(body))
	rec := httptest.NewRecorder()
	errs.Handle(h.CreateRecord).ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestCreateRecord(t *testing.T) {
	h, errs := newTestHandler(&fakeRepo{})

	rec := post(h, errs, `{"name":"Abbey Road","album":"The Beatles"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got recordJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Abbey Road", got.Name)
	assert.Equal(t, "The Beatles", got.Album)
	assert.Len(t, got.ID, 24)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
	require.NotNil(t, got.Version)
	assert.Equal(t, 0, *got.Version)
}

func TestCreateRecordMissingFields(t *testing.T) {
	bodies := []string{
		``,
		`{}`,
		`[1, 2]`,
		`"Abbey Road"`,
		`{"name":"Abbey Road"}`,
		`{"album":"The Beatles"}`,
		`{"name":"","album":"The Beatles"}`,
		`{"name":"Abbey Road","album":null}`,
		`{"name":0,"album":"The Beatles"}`,
		`{"name":"Abbey Road","album":false}`,
	}

	for _, body := range bodies {
		repo := &fakeRepo{}
		h, errs := newTestHandler(repo)

		rec := post(h, errs, body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, body)
		assert.Equal(t, "Name and album are required fields.", errorBody(t, rec), body)
		assert.Empty(t, repo.records, body)
	}
}

func TestCreateRecordCastsScalars(t *testing.T) {
	h, errs := newTestHandler(&fakeRepo{})

	rec := post(h, errs, `{"name":1969,"album":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got recordJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "1969", got.Name)
	assert.Equal(t, "true", got.Album)
}

func TestCreateRecordRejectsObjects(t *testing.T) {
	repo := &fakeRepo{}
	h, errs := newTestHandler(repo)

	rec := post(h, errs, `{"name":{"title":"Abbey Road"},"album":"The Beatles"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, errorBody(t, rec), "Cast to string failed")
	assert.Empty(t, repo.records)
}

func TestCreateRecordMalformedJSON(t *testing.T) {
	h, errs := newTestHandler(&fakeRepo{})

	rec := post(h, errs, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "Invalid JSON body")
}

func TestCreateRecordNonObjectBody(t *testing.T) {
	repo := &fakeRepo{}
	h, errs := newTestHandler(repo)

	for _, body := range []string{`"x"`, `5`, `[1]`, `null`} {
		rec := post(h, errs, body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, body)
		assert.Equal(t, "Name and album are required fields.", errorBody(t, rec), body)
	}
	assert.Empty(t, repo.records)
}

func TestCreateRecordBodyTooLarge(t *testing.T) {
	h, errs := newTestHandler(&fakeRepo{})

	big := `{"name":"` + strings.Repeat("a", MaxBodyBytes) + `","album":"x"}`
	rec := post(h, errs, big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCreateRecordStorageError(t *testing.T) {
	h, errs := newTestHandler(&fakeRepo{err: errors.New("server selection timeout")})

	rec := post(h, errs, `{"name":"Abbey Road","album":"The Beatles"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server selection timeout", errorBody(t, rec))
}

func TestGetRecords(t *testing.T) {
	repo := &fakeRepo{}
	h, errs := newTestHandler(repo)

	rec := httptest.NewRecorder()
	errs.Handle(h.GetRecords).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	post(h, errs, `{"name":"R1","album":"A1"}`)
	post(h, errs, `{"name":"R2","album":"A2"}`)

	rec = httptest.NewRecorder()
	errs.Handle(h.GetRecords).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []recordJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "R1", got[0].Name)
	assert.Equal(t, "A2", got[1].Album)
}

func TestGetRecordsStorageError(t *testing.T) {
	h, errs := newTestHandler(&fakeRepo{err: errors.New("cursor killed")})

	rec := httptest.NewRecorder()
	errs.Handle(h.GetRecords).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "list records: cursor killed", errorBody(t, rec))
}
