package remindertime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/routine"
)

func newTestRouter(store Store, sched Rescheduler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	svc := NewService(store, sched, testLogger())
	h := NewHandler(svc, testLogger())
	h.RegisterRoutes(router.Group("/api"))
	return router
}

func seededStore() *memStore {
	return &memStore{times: Times{
		Morning: ReminderTime{Hour: 6, Minute: 30, TimeOfDay: routine.SlotMorning},
		Evening: ReminderTime{Hour: 22, Minute: 30, TimeOfDay: routine.SlotEvening},
	}}
}

func TestGetTimes(t *testing.T) {
	router := newTestRouter(seededStore(), &recordingScheduler{})

	req := httptest.NewRequest(http.MethodGet, "/api/reminder-time", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var records []ReminderTime
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected both slots, got %d records", len(records))
	}
	if records[0].TimeOfDay != routine.SlotMorning || records[0].Clock() != "06:30" {
		t.Errorf("morning record = %+v", records[0])
	}
	if records[1].TimeOfDay != routine.SlotEvening || records[1].Clock() != "22:30" {
		t.Errorf("evening record = %+v", records[1])
	}
}

func TestUpdateTimes(t *testing.T) {
	store := seededStore()
	sched := &recordingScheduler{}
	router := newTestRouter(store, sched)

	body := `{"morning":"07:15","night":"21:45"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reminder-time", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Errorf("body = %s", w.Body.String())
	}
	if store.times.Morning.Clock() != "07:15" || store.times.Evening.Clock() != "21:45" {
		t.Errorf("store not updated: %+v", store.times)
	}
	if sched.calls != 1 {
		t.Errorf("expected one reschedule push, got %d", sched.calls)
	}
}

func TestUpdateTimesValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "out of range", body: `{"morning":"25:99","night":"22:30"}`},
		{name: "no leading zero", body: `{"morning":"6:30","night":"22:30"}`},
		{name: "missing night", body: `{"morning":"06:30"}`},
		{name: "garbage", body: `{"morning":"abc","night":"def"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seededStore()
			sched := &recordingScheduler{}
			router := newTestRouter(store, sched)

			req := httptest.NewRequest(http.MethodPost, "/api/reminder-time", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if store.puts != 0 {
				t.Error("store mutated on invalid input")
			}
			if sched.calls != 0 {
				t.Error("reschedule triggered on invalid input")
			}
		})
	}
}
