package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmsalcedo/obrakit/internal/domain/takeoff"
	"github.com/jmsalcedo/obrakit/internal/domain/units"
)

type fakeUsage struct{ used map[int64]bool }

func (f *fakeUsage) InUse(_ context.Context, id int64) (bool, error) { return f.used[id], nil }

type fakeTakeoffs struct {
	nextID   int64
	profiles map[int64]takeoff.ActivityYieldProfile
	records  map[uuid.UUID]takeoff.TakeoffRecord
}

func newFakeTakeoffs() *fakeTakeoffs {
	return &fakeTakeoffs{
		nextID:   1,
		profiles: map[int64]takeoff.ActivityYieldProfile{},
		records:  map[uuid.UUID]takeoff.TakeoffRecord{},
	}
}

func (f *fakeTakeoffs) CreateProfile(_ context.Context, p takeoff.ActivityYieldProfile) (*takeoff.ActivityYieldProfile, error) {
	p.ID = f.nextID
	f.nextID++
	f.profiles[p.ID] = p
	return &p, nil
}

func (f *fakeTakeoffs) GetProfile(_ context.Context, id int64) (*takeoff.ActivityYieldProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeTakeoffs) ListProfiles(_ context.Context) ([]takeoff.ActivityYieldProfile, error) {
	out := make([]takeoff.ActivityYieldProfile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeTakeoffs) DeleteProfile(_ context.Context, id int64) error {
	delete(f.profiles, id)
	return nil
}

func (f *fakeTakeoffs) SaveRecord(_ context.Context, rec takeoff.TakeoffRecord) (*takeoff.TakeoffRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	f.records[rec.ID] = rec
	return &rec, nil
}

func (f *fakeTakeoffs) GetRecord(_ context.Context, id uuid.UUID) (*takeoff.TakeoffRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeTakeoffs) ListRecordsByProject(_ context.Context, projectID int64) ([]takeoff.TakeoffRecord, error) {
	var out []takeoff.TakeoffRecord
	for _, rec := range f.records {
		if rec.ProjectID == projectID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func newTestServer(t *testing.T, usage *fakeUsage) (*httptest.Server, *units.Registry, *fakeTakeoffs) {
	t.Helper()
	if usage == nil {
		usage = &fakeUsage{used: map[int64]bool{}}
	}
	reg := units.NewRegistry(units.NewMemStore(), usage)
	tk := newFakeTakeoffs()
	h := NewRouter(Deps{
		Log:      slog.Default(),
		Units:    reg,
		Takeoffs: tk,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, reg, tk
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestUnitsAPI_CreateAndConvert(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/units", map[string]any{
		"name": "Kilogram", "symbol": "kg", "category": "mass", "is_base": true, "factor": 99,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	kg := decodeBody[unitDTO](t, resp)
	assert.True(t, kg.IsBase)
	assert.Equal(t, 1.0, kg.Factor, "base factor is forced to 1.0")

	resp = doJSON(t, http.MethodPost, srv.URL+"/units", map[string]any{
		"name": "Bag(25kg)", "symbol": "bolsa", "category": "mass", "factor": 25,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	bag := decodeBody[unitDTO](t, resp)

	resp = doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/units/convert?qty=2&from=%d&to=%d", srv.URL, bag.ID, kg.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	conv := decodeBody[convertResp](t, resp)
	assert.InDelta(t, 50.0, conv.Result, 1e-9)
}

func TestUnitsAPI_CrossCategoryConvertIs422(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/units", map[string]any{
		"name": "Kilogram", "symbol": "kg", "category": "mass", "is_base": true,
	})
	kg := decodeBody[unitDTO](t, resp)
	resp = doJSON(t, http.MethodPost, srv.URL+"/units", map[string]any{
		"name": "Meter", "symbol": "m", "category": "length", "is_base": true,
	})
	m := decodeBody[unitDTO](t, resp)

	resp = doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/units/convert?qty=1&from=%d&to=%d", srv.URL, kg.ID, m.ID), nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUnitsAPI_DeleteInUseIs409(t *testing.T) {
	usage := &fakeUsage{used: map[int64]bool{}}
	srv, _, _ := newTestServer(t, usage)

	resp := doJSON(t, http.MethodPost, srv.URL+"/units", map[string]any{
		"name": "Kilogram", "symbol": "kg", "category": "mass", "is_base": true,
	})
	kg := decodeBody[unitDTO](t, resp)
	usage.used[kg.ID] = true

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/units/%d", srv.URL, kg.ID), nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUnitsAPI_SecondBaseDemotesPrior(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/units", map[string]any{
		"name": "Kilogram", "symbol": "kg", "category": "mass", "is_base": true,
	})
	kg := decodeBody[unitDTO](t, resp)
	resp = doJSON(t, http.MethodPost, srv.URL+"/units", map[string]any{
		"name": "Gram", "symbol": "g", "category": "mass", "is_base": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = decodeBody[unitDTO](t, resp)

	resp = doJSON(t, http.MethodGet, srv.URL+"/units?category=mass", nil)
	list := decodeBody[[]unitDTO](t, resp)
	require.Len(t, list, 2)
	bases := 0
	for _, u := range list {
		if u.IsBase {
			bases++
			assert.NotEqual(t, kg.ID, u.ID, "prior base must be demoted")
		}
	}
	assert.Equal(t, 1, bases)
}

func masonryProfile() takeoff.ActivityYieldProfile {
	return takeoff.ActivityYieldProfile{
		Name:     "Mampostería",
		WorkUnit: takeoff.AreaClass,
		WorkSym:  "m2",
		Ratios: []takeoff.MaterialRatio{
			{MaterialName: "brick", Ratio: 12.5, Unit: "pcs"},
			{MaterialName: "cement", Ratio: 0.5, Unit: "bags"},
			{MaterialName: "sand", Ratio: 0.02, Unit: "m3"},
		},
	}
}

func TestTakeoffAPI_Compute(t *testing.T) {
	srv, _, tk := newTestServer(t, nil)
	p, err := tk.CreateProfile(context.Background(), masonryProfile())
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, srv.URL+"/takeoffs", map[string]any{
		"profile_id": p.ID, "length": "20", "height": "3",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[takeoffDTO](t, resp)

	assert.Equal(t, "Mampostería", got.Activity)
	assert.InDelta(t, 60.0, got.Area, 1e-9)
	require.Len(t, got.Items, 3)
	assert.Equal(t, "brick", got.Items[0].MaterialName)
	assert.InDelta(t, 750.0, got.Items[0].Quantity, 1e-9)
	assert.InDelta(t, 30.0, got.Items[1].Quantity, 1e-9)
	assert.InDelta(t, 1.20, got.Items[2].Quantity, 1e-9)
	assert.Empty(t, got.ID, "unsaved estimate has no id")
}

func TestTakeoffAPI_BadNumericInputDegrades(t *testing.T) {
	srv, _, tk := newTestServer(t, nil)
	p, err := tk.CreateProfile(context.Background(), masonryProfile())
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, srv.URL+"/takeoffs", map[string]any{
		"profile_id": p.ID, "length": "veinte", "height": "3",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "bad numeric input never fails an estimate")
	got := decodeBody[takeoffDTO](t, resp)
	assert.Empty(t, got.Items)
}

func TestTakeoffAPI_SaveAndFetch(t *testing.T) {
	srv, _, tk := newTestServer(t, nil)
	p, err := tk.CreateProfile(context.Background(), masonryProfile())
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, srv.URL+"/takeoffs", map[string]any{
		"profile_id": p.ID, "project_id": 7, "length": "20", "height": "3", "save": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	saved := decodeBody[takeoffDTO](t, resp)
	require.NotEmpty(t, saved.ID)

	resp = doJSON(t, http.MethodGet, srv.URL+"/takeoffs/"+saved.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody[takeoffDTO](t, resp)
	assert.Equal(t, saved, fetched)

	resp = doJSON(t, http.MethodGet, srv.URL+"/takeoffs?project_id=7", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[[]takeoffDTO](t, resp)
	assert.Len(t, list, 1)
}

func TestTakeoffAPI_UnknownProfileIs404(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)
	resp := doJSON(t, http.MethodPost, srv.URL+"/takeoffs", map[string]any{
		"profile_id": 99, "length": "20", "height": "3",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
