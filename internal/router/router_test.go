package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"pawcare/internal/adapters/blob/fs"
	"pawcare/internal/adapters/storage/sqldb"
	"pawcare/internal/router"
)

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()

	if opts.Photos == nil {
		store, err := fs.New(t.TempDir(), "")
		if err != nil {
			t.Fatalf("fs store: %v", err)
		}
		opts.Photos = store
	}
	h, err := router.NewRouter(opts)
	if err != nil {
		t.Fatalf("NewRouter returned error: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_ClinicDay(t *testing.T) {
	backends := map[string]func(t *testing.T) router.Options{
		"memory": func(t *testing.T) router.Options { return router.Options{} },
		"sqlite": func(t *testing.T) router.Options {
			db, err := sqldb.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "pawcare.db"))
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			t.Cleanup(func() { _ = db.Close() })
			return router.Options{DB: db}
		},
	}

	for name, opts := range backends {
		t.Run(name, func(t *testing.T) {
			ts := newServer(t, opts(t))
			today := civil.DateOf(time.Now()).String()

			// 1) Registrar mascota
			petID := createPet(t, ts.URL, map[string]any{
				"name":          "Choco",
				"species":       "Canine",
				"breed":         "Beagle",
				"gender":        "Female",
				"age":           3,
				"contactNumber": "1234-5678",
				"owner":         "Maria Santos",
			})

			// 2) Cita: el status enviado se ignora
			var appt struct {
				ID          string  `json:"id"`
				Status      string  `json:"status"`
				CompletedAt *string `json:"completedAt"`
			}
			{
				st, body := doReq(t, ts.URL, "POST", "/api/appointments", map[string]any{
					"petId":  petID,
					"owner":  "Maria Santos",
					"date":   today,
					"time":   "10:00",
					"vet":    "Dr. Cruz",
					"status": "Done",
				})
				if st != http.StatusCreated {
					t.Fatalf("expected 201 create appointment, got %d body=%s", st, string(body))
				}
				_ = json.Unmarshal(body, &appt)
				if appt.Status != "Pending" || appt.CompletedAt != nil {
					t.Fatalf("expected Pending without completion, got %s", string(body))
				}
			}

			// 3) Aprobar y completar
			{
				st, body := doReq(t, ts.URL, "POST", "/api/appointments/"+appt.ID+"/approve", nil)
				if st != http.StatusOK || !strings.Contains(string(body), `"Approved by Vet"`) {
					t.Fatalf("expected 200 approve, got %d body=%s", st, string(body))
				}
				st, body = doReq(t, ts.URL, "POST", "/api/appointments/"+appt.ID+"/done", nil)
				if st != http.StatusOK {
					t.Fatalf("expected 200 done, got %d body=%s", st, string(body))
				}
				_ = json.Unmarshal(body, &appt)
				if appt.Status != "Done" || appt.CompletedAt == nil || *appt.CompletedAt != today {
					t.Fatalf("expected Done today, got %s", string(body))
				}
			}

			// 4) Receta emitida y dispensada
			{
				st, body := doReq(t, ts.URL, "POST", "/api/prescriptions", map[string]any{
					"petId":      petID,
					"pet":        "Choco",
					"owner":      "Maria Santos",
					"drug":       "Amoxicillin",
					"dosage":     "250 mg",
					"directions": "Twice daily",
					"prescriber": "Dr. Cruz",
				})
				if st != http.StatusCreated {
					t.Fatalf("expected 201 create prescription, got %d body=%s", st, string(body))
				}
				var rx struct {
					ID   string `json:"id"`
					Date string `json:"date"`
				}
				_ = json.Unmarshal(body, &rx)
				if rx.Date != today {
					t.Fatalf("expected issue date %s, got %s", today, rx.Date)
				}

				st, body = doReq(t, ts.URL, "POST", "/api/prescriptions/"+rx.ID+"/dispense", nil)
				if st != http.StatusOK || !strings.Contains(string(body), `"dispensed":true`) {
					t.Fatalf("expected 200 dispense, got %d body=%s", st, string(body))
				}
			}

			// 5) Resumen del día
			{
				st, body := doReq(t, ts.URL, "GET", "/api/reports/summary?period=day", nil)
				if st != http.StatusOK {
					t.Fatalf("expected 200 summary, got %d body=%s", st, string(body))
				}
				var sum struct {
					From                   string `json:"from"`
					To                     string `json:"to"`
					AppointmentsDone       int    `json:"appointmentsDone"`
					PrescriptionsDispensed int    `json:"prescriptionsDispensed"`
					PetsAdded              int    `json:"petsAdded"`
					Events                 []struct {
						Type string `json:"type"`
					} `json:"events"`
				}
				_ = json.Unmarshal(body, &sum)
				if sum.From != today || sum.To != today {
					t.Fatalf("expected window %s..%s, got %s..%s", today, today, sum.From, sum.To)
				}
				if sum.AppointmentsDone != 1 || sum.PrescriptionsDispensed != 1 || sum.PetsAdded != 1 {
					t.Fatalf("unexpected counts %s", string(body))
				}
				want := []string{"PET_CREATED", "APPT_CREATED", "APPT_APPROVED", "APPT_DONE", "RX_CREATED", "RX_DISPENSED"}
				if len(sum.Events) != len(want) {
					t.Fatalf("expected %d events, got %s", len(want), string(body))
				}
				for i, typ := range want {
					if sum.Events[i].Type != typ {
						t.Fatalf("event %d: expected %s, got %s", i, typ, sum.Events[i].Type)
					}
				}
			}

			// 6) Bitácora por rango
			{
				st, body := doReq(t, ts.URL, "GET", "/api/ops/log?from="+today+"&to="+today, nil)
				if st != http.StatusOK || !strings.Contains(string(body), `"petId":"`+petID+`"`) {
					t.Fatalf("expected 200 ops log with pet id, got %d body=%s", st, string(body))
				}
			}

			// 7) Export XLSX
			{
				res := get(t, ts.URL+"/api/reports/export?period=day")
				body, _ := io.ReadAll(res.Body)
				res.Body.Close()
				if res.StatusCode != http.StatusOK {
					t.Fatalf("expected 200 export, got %d body=%s", res.StatusCode, string(body))
				}
				if !strings.HasPrefix(res.Header.Get("Content-Type"), "application/vnd.openxmlformats") {
					t.Fatalf("unexpected content type %q", res.Header.Get("Content-Type"))
				}
				if !strings.Contains(res.Header.Get("Content-Disposition"), ".xlsx") || !bytes.HasPrefix(body, []byte("PK")) {
					t.Fatalf("expected xlsx attachment, got %q", res.Header.Get("Content-Disposition"))
				}
			}

			// 8) Borrar cita deja APPT_DELETED
			{
				st, _ := doReq(t, ts.URL, "DELETE", "/api/appointments/"+appt.ID, nil)
				if st != http.StatusNoContent {
					t.Fatalf("expected 204 delete appointment, got %d", st)
				}
				st, body := doReq(t, ts.URL, "GET", "/api/ops/log?from="+today+"&to="+today, nil)
				if st != http.StatusOK || !strings.Contains(string(body), "APPT_DELETED") {
					t.Fatalf("expected APPT_DELETED in log, got %s", string(body))
				}
			}
		})
	}
}

func TestHTTP_DeletePet_DoesNotCascade(t *testing.T) {
	ts := newServer(t, router.Options{})
	petID := createPet(t, ts.URL, map[string]any{"name": "Choco", "owner": "Maria Santos"})

	st, body := doReq(t, ts.URL, "POST", "/api/appointments", map[string]any{
		"petId": petID,
		"owner": "Maria Santos",
		"date":  "2026-10-20",
		"time":  "09:00",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create appointment, got %d body=%s", st, string(body))
	}
	var appt struct {
		ID    string `json:"id"`
		PetID string `json:"petId"`
	}
	_ = json.Unmarshal(body, &appt)

	if st, _ := doReq(t, ts.URL, "DELETE", "/api/pets/"+petID, nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 delete pet, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/api/pets/"+petID, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/api/appointments/"+appt.ID, nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"petId":"`+petID+`"`) {
		t.Fatalf("expected appointment untouched, got %d body=%s", st, string(body))
	}
}

func TestHTTP_ErrorMapping(t *testing.T) {
	ts := newServer(t, router.Options{})

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		want   string
	}{
		{"bad json", "POST", "/api/pets", `{"name":`, http.StatusBadRequest, "invalid input"},
		{"missing name", "POST", "/api/pets", `{"species":"Canine"}`, http.StatusBadRequest, "invalid input"},
		{"unknown pet", "GET", "/api/pets/nope", "", http.StatusNotFound, "pet not found"},
		{"unknown appointment", "POST", "/api/appointments/nope/done", "", http.StatusNotFound, "appointment not found"},
		{"unknown prescription", "DELETE", "/api/prescriptions/nope", "", http.StatusNotFound, "prescription not found"},
		{"bad role", "POST", "/api/users", `{"name":"Ana","role":"janitor"}`, http.StatusBadRequest, "invalid input"},
		{"ops log missing to", "GET", "/api/ops/log?from=2026-10-01", "", http.StatusBadRequest, "invalid input"},
		{"bad period", "GET", "/api/reports/summary?period=year", "", http.StatusBadRequest, "invalid input"},
		{"custom inverted", "GET", "/api/reports/summary?period=custom&from=2026-10-12&to=2026-10-10", "", http.StatusBadRequest, "invalid input"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var rdr io.Reader
			if c.body != "" {
				rdr = strings.NewReader(c.body)
			}
			req, _ := http.NewRequest(c.method, ts.URL+c.path, rdr)
			res, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("do request: %v", err)
			}
			defer res.Body.Close()
			body, _ := io.ReadAll(res.Body)

			if res.StatusCode != c.status || !strings.Contains(string(body), c.want) {
				t.Fatalf("expected %d %q, got %d %q", c.status, c.want, res.StatusCode, string(body))
			}
		})
	}
}

func TestHTTP_PhotoUpload(t *testing.T) {
	ts := newServer(t, router.Options{})
	petID := createPet(t, ts.URL, map[string]any{"name": "Mimi"})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "../../mimi photo.png")
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	_ = png.Encode(fw, img)
	_ = mw.Close()

	req, _ := http.NewRequest("POST", ts.URL+"/api/pets/"+petID+"/photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 upload, got %d body=%s", res.StatusCode, string(body))
	}

	var photo struct {
		URL          string `json:"url"`
		ThumbnailURL string `json:"thumbnailUrl"`
	}
	_ = json.Unmarshal(body, &photo)
	if !strings.HasPrefix(photo.URL, "/uploads/") || strings.Contains(strings.TrimPrefix(photo.URL, "/uploads/"), "/") {
		t.Fatalf("unexpected photo url %q", photo.URL)
	}
	if !strings.HasPrefix(photo.ThumbnailURL, "/uploads/thumbs/") {
		t.Fatalf("unexpected thumbnail url %q", photo.ThumbnailURL)
	}

	// la ficha apunta a la foto
	{
		st, body := doReq(t, ts.URL, "GET", "/api/pets/"+petID, nil)
		if st != http.StatusOK || !strings.Contains(string(body), photo.URL) {
			t.Fatalf("expected pet with photo, got %d body=%s", st, string(body))
		}
	}

	// y el archivo se sirve
	for _, u := range []string{photo.URL, photo.ThumbnailURL} {
		res := get(t, ts.URL+u)
		res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 serving %s, got %d", u, res.StatusCode)
		}
	}
	res = get(t, ts.URL+"/uploads/missing.png")
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for missing upload, got %d", res.StatusCode)
	}
}

func TestHTTP_PhotoUpload_RequiresFile(t *testing.T) {
	ts := newServer(t, router.Options{})
	petID := createPet(t, ts.URL, map[string]any{"name": "Mimi"})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("note", "no file")
	_ = mw.Close()

	req, _ := http.NewRequest("POST", ts.URL+"/api/pets/"+petID+"/photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d", res.StatusCode)
	}
}

func TestHTTP_SeedDemoData(t *testing.T) {
	ts := newServer(t, router.Options{SeedDemoData: true})
	today := civil.DateOf(time.Now()).String()

	st, body := doReq(t, ts.URL, "GET", "/api/pets", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list pets, got %d", st)
	}
	var ps []struct {
		Name string `json:"name"`
	}
	_ = json.Unmarshal(body, &ps)
	if len(ps) != 2 || ps[0].Name != "Choco" || ps[1].Name != "Mimi" {
		t.Fatalf("unexpected seeded pets %s", string(body))
	}

	// sembrar no deja entradas en la bitácora
	st, body = doReq(t, ts.URL, "GET", "/api/ops/log?from="+today+"&to="+today, nil)
	if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("expected empty log after seed, got %d body=%s", st, string(body))
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := newServer(t, router.Options{})

	res := get(t, ts.URL+"/health")
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	if res.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health %d %q", res.StatusCode, string(body))
	}

	res = get(t, ts.URL+"/metrics")
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	if res.StatusCode != http.StatusOK || !strings.Contains(string(body), "pawcare_http_requests_total") {
		t.Fatalf("expected request counter in metrics, got %d", res.StatusCode)
	}
}

func TestHTTP_CORSPreflight(t *testing.T) {
	ts := newServer(t, router.Options{AllowedOrigins: []string{"http://localhost:3000"}})

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/pets", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	res.Body.Close()

	if got := res.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func createPet(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/pets", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	return res
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
