package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/config"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/database"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/dataset"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/models"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/repository"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/service"
)

const fixture = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature",
     "geometry": {"type": "LineString", "coordinates": [[-49.27, -25.48], [-49.26, -25.47]]},
     "properties": {"id_trip": "B", "id_traj": 1, "id_driver": "D1", "speed": 10, "date_d": "2023-03-02",
       "bairro": "Centro", "hierarquia": "Via Local"}},
    {"type": "Feature",
     "geometry": {"type": "MultiLineString", "coordinates": [[[-49.25, -25.46], [-49.24, -25.45]], [[-49.23, -25.44]]]},
     "properties": {"id_trip": "A", "id_traj": 2, "id_driver": "D2", "speed": 80, "date_d": "2023-03-01",
       "bairro": "Batel", "hierarquia": "Rodovia"}},
    {"type": "Feature",
     "geometry": {"type": "LineString", "coordinates": [[-49.21, -25.42], [-49.20, -25.41]]},
     "properties": {"id_trip": "B", "id_traj": 3, "id_driver": "D1", "speed": 140,
       "bairro": "Centro", "hierarquia": "Trilha"}}
  ]
}`

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T, content string) *gin.Engine {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trajetorias.geojson")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	db, err := database.Open(database.Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	palettes, err := config.DefaultPaletteFile().Build()
	if err != nil {
		t.Fatalf("failed to build palettes: %v", err)
	}

	trips := service.NewTripService(dataset.NewCache(dataset.LoadFile), repository.NewTripRepository(db), path)
	viz := service.NewVisualizationService(trips, palettes)

	pages := NewPageHandler(viz)
	tripHandler := NewTripHandler(trips)
	vizHandler := NewVisualizationHandler(viz)

	r := gin.New()
	r.POST("/navigate", pages.Navigate)
	r.GET("/pages/:route", pages.GetPage)
	r.GET("/trips", tripHandler.GetTrips)
	r.GET("/trips/ids", tripHandler.GetTripIDs)
	r.GET("/speed/trip", vizHandler.GetTripSpeed)
	r.GET("/speed/heatmap", vizHandler.GetHeatmap)
	r.GET("/speed/classified", vizHandler.GetClassified)
	r.GET("/speed/timeline", vizHandler.GetTimeline)
	r.GET("/speed/timeline/ws", vizHandler.StreamTimeline)
	r.GET("/hierarchy", vizHandler.GetHierarchyLayer)
	return r
}

func do(t *testing.T, r http.Handler, method, target, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return w.Code, env
}

func TestPageHandler_Navigate(t *testing.T) {
	r := setupRouter(t, fixture)

	tests := []struct {
		name   string
		body   string
		status int
		route  string
	}{
		{"speed button", `{"current": "home", "event": "speed"}`, http.StatusOK, "page1"},
		{"time button", `{"current": "page1", "event": "speed_over_time"}`, http.StatusOK, "page2"},
		{"no event", `{"current": "page1"}`, http.StatusOK, "page1"},
		{"unknown event", `{"current": "home", "event": "logout"}`, http.StatusBadRequest, ""},
		{"unknown page", `{"current": "page9", "event": "home"}`, http.StatusBadRequest, ""},
		{"malformed", `{"current":`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, r, http.MethodPost, "/navigate", tt.body)
			if status != tt.status {
				t.Fatalf("expected status %d, got %d (%s)", tt.status, status, env.Message)
			}
			if tt.route == "" {
				return
			}
			var data struct {
				Route string `json:"route"`
			}
			if err := json.Unmarshal(env.Data, &data); err != nil {
				t.Fatalf("failed to decode data: %v", err)
			}
			if data.Route != tt.route {
				t.Errorf("expected route %q, got %q", tt.route, data.Route)
			}
		})
	}
}

func TestPageHandler_GetPage(t *testing.T) {
	r := setupRouter(t, fixture)

	for _, route := range []string{"home", "page1", "page2"} {
		status, env := do(t, r, http.MethodGet, "/pages/"+route, "")
		if status != http.StatusOK {
			t.Errorf("%s: expected 200, got %d (%s)", route, status, env.Message)
		}
	}

	status, _ := do(t, r, http.MethodGet, "/pages/page3", "")
	if status != http.StatusNotFound {
		t.Errorf("expected 404 for unknown page, got %d", status)
	}
}

func TestTripHandler_GetTripIDs(t *testing.T) {
	r := setupRouter(t, fixture)

	status, env := do(t, r, http.MethodGet, "/trips/ids", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var data struct {
		Data  []string `json:"data"`
		Count int      `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Count != 2 || data.Data[0] != "A" || data.Data[1] != "B" {
		t.Errorf("unexpected trip ids: %+v", data)
	}
}

func TestTripHandler_GetTrips(t *testing.T) {
	r := setupRouter(t, fixture)

	status, env := do(t, r, http.MethodGet, "/trips?trip=B&pageSize=1", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var data models.TripsResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Total != 2 || len(data.Data) != 1 {
		t.Errorf("expected 1 of 2 rows, got %d of %d", len(data.Data), data.Total)
	}

	status, _ = do(t, r, http.MethodGet, "/trips?page=abc", "")
	if status != http.StatusBadRequest {
		t.Errorf("expected 400 for bad page, got %d", status)
	}
}

func TestVisualizationHandler_UnknownTrip(t *testing.T) {
	r := setupRouter(t, fixture)

	status, _ := do(t, r, http.MethodGet, "/speed/trip?trip=ZZ", "")
	if status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
}

func TestVisualizationHandler_Heatmap(t *testing.T) {
	r := setupRouter(t, fixture)

	status, env := do(t, r, http.MethodGet, "/speed/heatmap?driver=D2", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var data struct {
		Data  []models.HeatSample `json:"data"`
		Count int                 `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Count != 3 {
		t.Fatalf("expected 3 samples, got %d", data.Count)
	}
	for _, s := range data.Data {
		if s.Weight != 80 {
			t.Errorf("expected weight 80, got %v", s.Weight)
		}
	}
}

func TestVisualizationHandler_ClassifiedUnknownScale(t *testing.T) {
	r := setupRouter(t, fixture)

	status, _ := do(t, r, http.MethodGet, "/speed/classified?scale=rainbow", "")
	if status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}

	status, _ = do(t, r, http.MethodGet, "/speed/classified?scale=ramp", "")
	if status != http.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
}

func TestVisualizationHandler_UnsupportedGeometry(t *testing.T) {
	content := `{"type": "FeatureCollection", "features": [
	  {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-49.27, -25.48]},
	   "properties": {"id_trip": "P", "speed": 5}}]}`
	r := setupRouter(t, content)

	status, env := do(t, r, http.MethodGet, "/speed/heatmap", "")
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if !strings.Contains(env.Message, "unsupported geometry") {
		t.Errorf("expected geometry error message, got %q", env.Message)
	}
}

func TestVisualizationHandler_Hierarchy(t *testing.T) {
	r := setupRouter(t, fixture)

	status, env := do(t, r, http.MethodGet, "/hierarchy", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var data struct {
		Unmapped []string `json:"unmapped"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if len(data.Unmapped) != 1 || data.Unmapped[0] != "Trilha" {
		t.Errorf("expected Trilha unmapped, got %v", data.Unmapped)
	}
}

func TestVisualizationHandler_Timeline(t *testing.T) {
	r := setupRouter(t, fixture)

	status, env := do(t, r, http.MethodGet, "/speed/timeline", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var data struct {
		Data []models.TimeBucket `json:"data"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if len(data.Data) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(data.Data))
	}
	if data.Data[0].TimestampKey >= data.Data[1].TimestampKey {
		t.Errorf("expected ascending keys, got %q then %q", data.Data[0].TimestampKey, data.Data[1].TimestampKey)
	}
}

func TestVisualizationHandler_StreamTimeline(t *testing.T) {
	srv := httptest.NewServer(setupRouter(t, fixture))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/speed/timeline/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	var got []models.TimeBucket
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) || closeErr.Code != websocket.CloseNormalClosure {
				t.Fatalf("expected normal closure, got %v", err)
			}
			break
		}
		var bucket models.TimeBucket
		if err := json.NewDecoder(bytes.NewReader(msg)).Decode(&bucket); err != nil {
			t.Fatalf("invalid frame %q: %v", msg, err)
		}
		got = append(got, bucket)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(got))
	}
	if got[0].TimestampKey != "2023-03-01T00:00:00Z" || len(got[0].Samples) != 3 {
		t.Errorf("unexpected first frame: %+v", got[0])
	}
	if got[1].TimestampKey != "2023-03-02T00:00:00Z" || len(got[1].Samples) != 2 {
		t.Errorf("unexpected second frame: %+v", got[1])
	}
}
