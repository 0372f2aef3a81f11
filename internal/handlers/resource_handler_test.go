package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/scheduling-api/internal/domain/catalog"
	"github.com/BruksfildServices01/scheduling-api/internal/dto"
	"github.com/BruksfildServices01/scheduling-api/internal/httperr"
	"github.com/BruksfildServices01/scheduling-api/internal/models"
	"github.com/BruksfildServices01/scheduling-api/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validators.Register(); err != nil {
		panic(err)
	}
}

// ------------------------------------------------------------------
// in-memory service
// ------------------------------------------------------------------

type fakeService[T any] struct {
	entity string
	rows   map[uint]T
	next   uint

	keyOf    func(*T) uint
	setKey   func(*T, uint)
	same     func(a, b *T) bool
	match    func(*T, domain.Filter) bool
	hydrate  func(*T) error
	onDelete func(key uint)

	failWith error
}

func (f *fakeService[T]) Entity() string { return f.entity }

func (f *fakeService[T]) Create(_ context.Context, rec *T) error {
	if f.failWith != nil {
		return f.failWith
	}
	for _, row := range f.rows {
		if f.same(&row, rec) {
			return httperr.ErrBusiness(httperr.CodeDuplicate)
		}
	}
	if f.keyOf(rec) == 0 {
		f.next++
		f.setKey(rec, f.next)
	}
	if f.hydrate != nil {
		if err := f.hydrate(rec); err != nil {
			return err
		}
	}
	f.rows[f.keyOf(rec)] = *rec
	return nil
}

func (f *fakeService[T]) Update(_ context.Context, key uint, rec *T) error {
	if _, ok := f.rows[key]; !ok {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	for k, row := range f.rows {
		if k != key && f.same(&row, rec) {
			return httperr.ErrBusiness(httperr.CodeConflict)
		}
	}
	f.setKey(rec, key)
	f.rows[key] = *rec
	return nil
}

func (f *fakeService[T]) Delete(_ context.Context, key uint) error {
	if _, ok := f.rows[key]; !ok {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if f.onDelete != nil {
		f.onDelete(key)
	}
	delete(f.rows, key)
	return nil
}

func (f *fakeService[T]) Get(_ context.Context, key uint) (*T, error) {
	row, ok := f.rows[key]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return &row, nil
}

func (f *fakeService[T]) Find(_ context.Context, filter domain.Filter) ([]T, error) {
	var out []T
	for _, row := range f.sorted() {
		if f.match(&row, filter) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeService[T]) List(context.Context) ([]T, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.sorted(), nil
}

func (f *fakeService[T]) sorted() []T {
	keys := make([]uint, 0, len(f.rows))
	for k := range f.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, f.rows[k])
	}
	return out
}

// ------------------------------------------------------------------
// fixture
// ------------------------------------------------------------------

type fixture struct {
	router        *gin.Engine
	clients       *fakeService[models.Client]
	professionals *fakeService[models.Professional]
	services      *fakeService[models.Service]
	appointments  *fakeService[models.Appointment]
}

func newFixture() *fixture {
	f := &fixture{}

	f.clients = &fakeService[models.Client]{
		entity: "client", rows: map[uint]models.Client{},
		keyOf:  func(c *models.Client) uint { return c.ID },
		setKey: func(c *models.Client, k uint) { c.ID = k },
		same:   func(a, b *models.Client) bool { return a.Name == b.Name },
		match:  func(c *models.Client, q domain.Filter) bool { return q["name"] == c.Name },
	}
	f.professionals = &fakeService[models.Professional]{
		entity: "professional", rows: map[uint]models.Professional{},
		keyOf:  func(p *models.Professional) uint { return p.ID },
		setKey: func(p *models.Professional, k uint) { p.ID = k },
		same:   func(a, b *models.Professional) bool { return a.Name == b.Name },
		match:  func(p *models.Professional, q domain.Filter) bool { return q["name"] == p.Name },
	}
	f.services = &fakeService[models.Service]{
		entity: "service", rows: map[uint]models.Service{},
		keyOf:  func(s *models.Service) uint { return s.ID },
		setKey: func(s *models.Service, k uint) { s.ID = k },
		same:   func(a, b *models.Service) bool { return a.Description == b.Description },
		match:  func(s *models.Service, q domain.Filter) bool { return q["description"] == s.Description },
	}
	f.appointments = &fakeService[models.Appointment]{
		entity: "appointment", rows: map[uint]models.Appointment{},
		keyOf:  func(a *models.Appointment) uint { return a.ID },
		setKey: func(a *models.Appointment, k uint) { a.ID = k },
		same: func(a, b *models.Appointment) bool {
			return a.ScheduledAt.Equal(b.ScheduledAt) && a.ClientID == b.ClientID &&
				a.ProfessionalID == b.ProfessionalID && a.ServiceID == b.ServiceID
		},
		match: func(a *models.Appointment, q domain.Filter) bool {
			if v, ok := q["client_id"]; ok && v != a.ClientID {
				return false
			}
			if v, ok := q["professional_id"]; ok && v != a.ProfessionalID {
				return false
			}
			return true
		},
	}
	f.appointments.hydrate = func(a *models.Appointment) error {
		c, okC := f.clients.rows[a.ClientID]
		p, okP := f.professionals.rows[a.ProfessionalID]
		s, okS := f.services.rows[a.ServiceID]
		if !okC || !okP || !okS {
			return httperr.ErrBusiness(httperr.CodeInvalidReference)
		}
		a.Client, a.Professional, a.Service = c, p, s
		return nil
	}
	f.clients.onDelete = func(key uint) {
		for id, a := range f.appointments.rows {
			if a.ClientID == key {
				delete(f.appointments.rows, id)
			}
		}
	}

	f.router = gin.New()
	NewResourceHandler[models.Client](f.clients, ClientResource()).Register(f.router, "/client", "/clients", nil)
	NewResourceHandler[models.Professional](f.professionals, ProfessionalResource()).Register(f.router, "/professional", "/professionals", nil)
	NewResourceHandler[models.Service](f.services, ServiceResource()).Register(f.router, "/service", "/services", nil)
	NewResourceHandler[models.Appointment](f.appointments, AppointmentResource("UTC")).Register(f.router, "/appointment", "/appointments", nil)
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type listBody struct {
	Data  []map[string]any `json:"data"`
	Total int              `json:"total"`
}

// ------------------------------------------------------------------
// tests
// ------------------------------------------------------------------

func TestExampleScenario(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/client", gin.H{"name": "Ana"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ana"}`, w.Body.String())

	w = f.do(t, http.MethodPost, "/client", gin.H{"name": "Ana"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, httperr.CodeDuplicate, decode[httperr.HTTPError](t, w).Code)

	w = f.do(t, http.MethodPost, "/professional", gin.H{"name": "Carla"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1.0, decode[map[string]any](t, w)["id"])

	w = f.do(t, http.MethodPost, "/service", gin.H{"description": "Haircut", "price": 10.00})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1.0, decode[map[string]any](t, w)["id"])

	w = f.do(t, http.MethodPost, "/appointment", gin.H{
		"time": "2023-01-01T08:00:00", "client_id": 1, "professional_id": 1, "service_id": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = f.do(t, http.MethodGet, "/appointments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[listBody](t, w)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Ana", list.Data[0]["client"])
	assert.Equal(t, "Carla", list.Data[0]["professional"])
	assert.Equal(t, "Haircut", list.Data[0]["service"])
	assert.Equal(t, 10.0, list.Data[0]["price"])

	w = f.do(t, http.MethodDelete, "/client?id=1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = f.do(t, http.MethodGet, "/appointments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"total":0}`, w.Body.String())
}

func TestCreateValidation(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name string
		path string
		body any
		code string
	}{
		{"missing name", "/client", gin.H{}, "invalid_request"},
		{"blank name", "/client", gin.H{"name": "   "}, "invalid_request"},
		{"wrong type", "/client", gin.H{"name": 12}, "invalid_request"},
		{"missing price", "/service", gin.H{"description": "Haircut"}, "invalid_request"},
		{"negative price", "/service", gin.H{"description": "Haircut", "price": -1}, "invalid_request"},
		{"bad time", "/appointment", gin.H{
			"scheduled_at": "amanhã", "client_id": 1, "professional_id": 1, "service_id": 1,
		}, "invalid_scheduled_at"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, tc.path, tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.code, decode[httperr.HTTPError](t, w).Code)
		})
	}
	assert.Empty(t, f.clients.rows)
	assert.Empty(t, f.services.rows)
}

func TestServiceAcceptsZeroPrice(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/service", gin.H{"description": "Consulta", "price": 0})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestAppointmentUnknownReference(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/appointment", gin.H{
		"scheduled_at": "01/01/2023 08:00:00", "client_id": 9, "professional_id": 9, "service_id": 9,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, httperr.CodeInvalidReference, decode[httperr.HTTPError](t, w).Code)
}

func TestGetByKeyAndUniqueField(t *testing.T) {
	f := newFixture()
	f.do(t, http.MethodPost, "/client", gin.H{"name": "Ana"})

	w := f.do(t, http.MethodGet, "/client?id=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ana"}`, w.Body.String())

	w = f.do(t, http.MethodGet, "/client?name=Ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ana"}`, w.Body.String())

	w = f.do(t, http.MethodGet, "/client?name=Bia", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/client?id=7", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/client?id=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_id", decode[httperr.HTTPError](t, w).Code)

	w = f.do(t, http.MethodGet, "/client", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing_filter", decode[httperr.HTTPError](t, w).Code)
}

func TestGetByFilterReturnsList(t *testing.T) {
	f := newFixture()
	f.do(t, http.MethodPost, "/client", gin.H{"name": "Ana"})
	f.do(t, http.MethodPost, "/client", gin.H{"name": "Bia"})
	f.do(t, http.MethodPost, "/professional", gin.H{"name": "Carla"})
	f.do(t, http.MethodPost, "/service", gin.H{"description": "Haircut", "price": 10})
	for _, c := range []int{1, 2} {
		w := f.do(t, http.MethodPost, "/appointment", gin.H{
			"scheduled_at": "2023-01-01T08:00:00", "client_id": c, "professional_id": 1, "service_id": 1,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := f.do(t, http.MethodGet, "/appointment?client_id=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[listBody](t, w)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Bia", list.Data[0]["client"])

	w = f.do(t, http.MethodGet, "/appointment?professional_id=1", nil)
	assert.Equal(t, 2, decode[listBody](t, w).Total)

	w = f.do(t, http.MethodGet, "/appointment?client_id=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOutcomes(t *testing.T) {
	f := newFixture()
	f.do(t, http.MethodPost, "/client", gin.H{"name": "Ana"})
	f.do(t, http.MethodPost, "/client", gin.H{"name": "Bia"})

	w := f.do(t, http.MethodPut, "/client", gin.H{"id": 1, "name": "Ana Maria"})
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "Ana Maria", f.clients.rows[1].Name)

	w = f.do(t, http.MethodPut, "/client", gin.H{"id": 1, "name": "Bia"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, httperr.CodeConflict, decode[httperr.HTTPError](t, w).Code)
	assert.Equal(t, "Ana Maria", f.clients.rows[1].Name)

	w = f.do(t, http.MethodPut, "/client", gin.H{"id": 99, "name": "Zé"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPut, "/client", gin.H{"name": "sem id"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOutcomes(t *testing.T) {
	f := newFixture()
	f.do(t, http.MethodPost, "/client", gin.H{"name": "Ana"})

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/client?id=1", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodDelete, "/client?id=1", nil).Code)

	w := f.do(t, http.MethodDelete, "/client", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing_id", decode[httperr.HTTPError](t, w).Code)
}

func TestUnknownErrorIsHidden(t *testing.T) {
	f := newFixture()
	f.clients.failWith = errors.New("connection reset by peer")

	w := f.do(t, http.MethodGet, "/clients", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
	assert.Equal(t, "internal_error", decode[httperr.HTTPError](t, w).Code)
}

func TestDanglingAppointmentIsInternalError(t *testing.T) {
	f := newFixture()
	f.appointments.rows[1] = models.Appointment{ID: 1, ClientID: 5, ProfessionalID: 5, ServiceID: 5}

	w := f.do(t, http.MethodGet, "/appointment?id=1", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWriteGuard(t *testing.T) {
	r := gin.New()
	svc := &fakeService[models.Brand]{
		entity: "brand", rows: map[uint]models.Brand{},
		keyOf:  func(b *models.Brand) uint { return b.Code },
		setKey: func(b *models.Brand, k uint) { b.Code = k },
		same:   func(a, b *models.Brand) bool { return a.Name == b.Name },
		match:  func(b *models.Brand, q domain.Filter) bool { return q["name"] == b.Name },
	}
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	NewResourceHandler[models.Brand](svc, BrandResource()).Register(r, "/brand", "/brands", deny)

	body := bytes.NewBufferString(`{"code":1,"name":"Fiat"}`)
	req := httptest.NewRequest(http.MethodPost, "/brand", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/brands", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListUsesBatchPresenter(t *testing.T) {
	svc := &fakeService[models.Brand]{
		entity: "brand", rows: map[uint]models.Brand{1: {Code: 1, Name: "Fiat"}, 2: {Code: 2, Name: "Ford"}},
		keyOf: func(b *models.Brand) uint { return b.Code },
	}
	res := BrandResource()
	batches := 0
	next := res.PresentList
	res.PresentList = func(rows []models.Brand) ([]dto.BrandDTO, error) {
		batches++
		return next(rows)
	}

	r := gin.New()
	NewResourceHandler[models.Brand](svc, res).Register(r, "/brand", "/brands", nil)

	req := httptest.NewRequest(http.MethodGet, "/brands", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, batches)
	assert.Equal(t, 2, decode[listBody](t, w).Total)
}

func TestDanglingRowFailsWholeList(t *testing.T) {
	f := newFixture()
	f.appointments.rows[1] = models.Appointment{ID: 1, ClientID: 5, ProfessionalID: 5, ServiceID: 5}

	w := f.do(t, http.MethodGet, "/appointments", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
