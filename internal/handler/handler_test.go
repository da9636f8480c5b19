package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"falcon9/internal/artifact"
	"falcon9/internal/launch"
	"falcon9/internal/model"
	"falcon9/internal/model/modeltest"
	"falcon9/internal/prediction"
)

const referenceBody = `{
	"payload_mass": 6104.96,
	"orbit": "GTO",
	"launch_site": "KSC LC 39A",
	"grid_fins": true,
	"reused": true,
	"legs": true,
	"block": "5.0",
	"reused_count": 2,
	"year": 2020,
	"month": 6
}`

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
}

func newEngine(handlers ...interface{ Register(*gin.Engine) }) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), LimitBody(1<<16))
	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode body %q: %v", w.Body.String(), err)
		}
	}
	return w, env
}

func referenceParams(t *testing.T) launch.Parameters {
	t.Helper()
	var in launch.Input
	if err := json.Unmarshal([]byte(referenceBody), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p, err := in.Parameters()
	if err != nil {
		t.Fatalf("parameters: %v", err)
	}
	return p
}

func loadedService() *prediction.Service {
	return &prediction.Service{Source: prediction.Static(modeltest.Pipeline())}
}

func TestPredict_Reference(t *testing.T) {
	r := newEngine(&PredictionHandler{Service: loadedService()})
	w, env := do(t, r, http.MethodPost, "/api/v1/predictions", referenceBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got predictionResponse
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("data: %v", err)
	}
	if !got.Success || got.Verdict != "successful" {
		t.Fatalf("success=%v verdict=%q", got.Success, got.Verdict)
	}
	if got.Probability < 0 || got.Probability > 100 {
		t.Fatalf("probability=%v", got.Probability)
	}
	if got.Band != string(prediction.BandHigh) {
		t.Fatalf("band=%q", got.Band)
	}
	if env.Meta["request_id"] == "" || w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("missing request id: meta=%v", env.Meta)
	}
}

func TestPredict_InvalidInput(t *testing.T) {
	r := newEngine(&PredictionHandler{Service: loadedService()})
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing orbit", `{"payload_mass": 1000}`, "orbit"},
		{"unknown orbit", `{"payload_mass":1,"orbit":"MARS","launch_site":"KSC LC 39A","grid_fins":true,"reused":true,"legs":true,"block":"5.0","reused_count":0,"year":2020,"month":6}`, "orbit"},
		{"negative mass", `{"payload_mass":-5,"orbit":"GTO","launch_site":"KSC LC 39A","grid_fins":true,"reused":true,"legs":true,"block":"5.0","reused_count":0,"year":2020,"month":6}`, "payload_mass"},
		{"orbit as number", `{"payload_mass":5,"orbit":7,"launch_site":"KSC LC 39A","grid_fins":true,"reused":true,"legs":true,"block":"5.0","reused_count":0,"year":2020,"month":6}`, "orbit"},
		{"fractional reused count", `{"payload_mass":5,"orbit":"GTO","launch_site":"KSC LC 39A","grid_fins":true,"reused":true,"legs":true,"block":"5.0","reused_count":2.5,"year":2020,"month":6}`, "reused_count"},
		{"block as object", `{"payload_mass":5,"orbit":"GTO","launch_site":"KSC LC 39A","grid_fins":true,"reused":true,"legs":true,"block":{},"reused_count":0,"year":2020,"month":6}`, "block"},
		{"month 13", `{"payload_mass":5,"orbit":"GTO","launch_site":"KSC LC 39A","grid_fins":true,"reused":true,"legs":true,"block":"5.0","reused_count":0,"year":2020,"month":13}`, "month"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, r, http.MethodPost, "/api/v1/predictions", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d want=400", w.Code)
			}
			if env.Meta["error"] != "invalid_input" || env.Meta["field"] != tc.field {
				t.Fatalf("meta=%v want field=%s", env.Meta, tc.field)
			}
		})
	}
}

func TestPredict_MalformedBody(t *testing.T) {
	r := newEngine(&PredictionHandler{Service: loadedService()})
	for _, body := range []string{`{not json`, ""} {
		w, env := do(t, r, http.MethodPost, "/api/v1/predictions", body)
		if w.Code != http.StatusBadRequest || env.Meta["error"] != "invalid_body" {
			t.Fatalf("body=%q status=%d meta=%v", body, w.Code, env.Meta)
		}
		if _, ok := env.Meta["field"]; ok {
			t.Fatalf("body=%q unexpected field in meta=%v", body, env.Meta)
		}
	}
}

func TestPredict_ModelUnavailable(t *testing.T) {
	r := newEngine(&PredictionHandler{Service: &prediction.Service{Source: &artifact.Slot{}}})
	for _, body := range []string{referenceBody, `{"payload_mass":-5,"orbit":7}`, `{not json`} {
		w, env := do(t, r, http.MethodPost, "/api/v1/predictions", body)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("body=%s status=%d want=503", body, w.Code)
		}
		if env.Meta["error"] != "model_unavailable" {
			t.Fatalf("body=%s meta=%v", body, env.Meta)
		}
	}
}

type brokenArtifact struct{ model.Artifact }

func (brokenArtifact) Classes() []float64 { return []float64{0, 1} }
func (brokenArtifact) Info() model.Info   { return model.Info{PositiveClass: 1} }
func (brokenArtifact) Predict(model.Row) (float64, error) {
	return 0, errors.New("boom")
}

func TestPredict_InferenceFailure(t *testing.T) {
	r := newEngine(&PredictionHandler{Service: &prediction.Service{Source: prediction.Static(brokenArtifact{})}})
	w, env := do(t, r, http.MethodPost, "/api/v1/predictions", referenceBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want=500", w.Code)
	}
	if env.Meta["error"] != "inference_failure" {
		t.Fatalf("meta=%v", env.Meta)
	}
}

func TestOptions(t *testing.T) {
	r := newEngine(&PredictionHandler{Service: loadedService()})
	w, env := do(t, r, http.MethodGet, "/api/v1/options", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var got struct {
		Orbits []string `json:"orbits"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("data: %v", err)
	}
	if len(got.Orbits) != 8 {
		t.Fatalf("orbits=%v", got.Orbits)
	}
}

func TestHealthAndReady(t *testing.T) {
	slot := &artifact.Slot{}
	r := newEngine(&HealthHandler{Service: &prediction.Service{Source: slot}})

	if w, _ := do(t, r, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Fatalf("healthz=%d", w.Code)
	}
	if w, _ := do(t, r, http.MethodGet, "/readyz", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz before load=%d", w.Code)
	}
	slot.Set(&artifact.Loaded{Pipeline: modeltest.Pipeline()})
	if w, _ := do(t, r, http.MethodGet, "/readyz", ""); w.Code != http.StatusOK {
		t.Fatalf("readyz after load=%d", w.Code)
	}
}

func TestModelReload(t *testing.T) {
	raw, err := json.Marshal(modeltest.Pipeline())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	present := false
	open := func(path string) (io.ReadCloser, error) {
		if !present {
			return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
		return io.NopCloser(bytes.NewReader(raw)), nil
	}
	slot := &artifact.Slot{}
	retrier := &artifact.Retrier{
		Loader: &artifact.Loader{Candidates: []artifact.Candidate{{Name: "workdir", Path: "/m.json"}}, Open: open},
		Slot:   slot,
	}
	svc := &prediction.Service{Source: slot}
	r := newEngine(&ModelHandler{Service: svc, Retrier: retrier})

	w, _ := do(t, r, http.MethodGet, "/api/v1/model", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("model before load=%d", w.Code)
	}

	w, env := do(t, r, http.MethodPost, "/api/v1/model/reload", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("reload without artifact=%d", w.Code)
	}
	if attempts, ok := env.Meta["attempts"].([]any); !ok || len(attempts) != 1 {
		t.Fatalf("attempts=%v", env.Meta["attempts"])
	}

	present = true
	w, env = do(t, r, http.MethodPost, "/api/v1/model/reload", "")
	if w.Code != http.StatusOK {
		t.Fatalf("reload=%d body=%s", w.Code, w.Body.String())
	}
	var got modelResponse
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("data: %v", err)
	}
	if got.Source != "workdir" || got.Path != "/m.json" || got.Trees != 3 {
		t.Fatalf("model=%+v", got)
	}
	if _, err := svc.Predict(context.Background(), referenceParams(t)); err != nil {
		t.Fatalf("predict after reload: %v", err)
	}
}
