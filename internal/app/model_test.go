package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jwulff/cineai/internal/classifier"
	"github.com/jwulff/cineai/internal/predict"

	tea "github.com/charmbracelet/bubbletea"
)

const synopsis = "Uzak bir galakside, genç bir çiftçi kendini savaşın ortasında bulur."

const sciFiBody = `{
	"success": true,
	"predicted_genre": "sci-fi",
	"predicted_genre_tr": "Bilim Kurgu",
	"emoji": "🚀",
	"description": "Bilim kurgu ve gelecek vizyonu",
	"confidence": 91.4,
	"top_5_probabilities": [
		{"genre": "sci-fi", "genre_tr": "Bilim Kurgu", "emoji": "🚀", "probability": 91.4},
		{"genre": "action", "genre_tr": "Aksiyon", "emoji": "💥", "probability": 4.1},
		{"genre": "adventure", "genre_tr": "Macera", "emoji": "🗺️", "probability": 2.2},
		{"genre": "drama", "genre_tr": "Drama", "emoji": "🎭", "probability": 1.5},
		{"genre": "horror", "genre_tr": "Korku", "emoji": "👻", "probability": 0.8}
	],
	"translated_text": "In a distant galaxy, a young farmer finds himself amid a war.",
	"original_text": "Uzak bir galakside, genç bir çiftçi kendini savaşın ortasında bulur."
}`

// mockService serves a canned /predict reply and counts calls.
func mockService(t *testing.T, status int, body string) (*classifier.Client, *int64) {
	t.Helper()
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return classifier.New(srv.URL), &calls
}

func newTestModel(t *testing.T, status int, body string) (Model, *int64) {
	t.Helper()
	client, calls := mockService(t, status, body)
	m := New(context.Background(), predict.NewController(client), nil, client.BaseURL(), nil)
	m, _ = applyUpdate(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, calls
}

func applyUpdate(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// resolve runs cmd, descending into batches, and returns the prediction
// message it produces.
func resolve(t *testing.T, cmd tea.Cmd) PredictionResolvedMsg {
	t.Helper()
	if msg, ok := findResolved(cmd); ok {
		return msg
	}
	t.Fatal("command produced no PredictionResolvedMsg")
	return PredictionResolvedMsg{}
}

func findResolved(cmd tea.Cmd) (PredictionResolvedMsg, bool) {
	if cmd == nil {
		return PredictionResolvedMsg{}, false
	}
	switch msg := cmd().(type) {
	case PredictionResolvedMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if res, ok := findResolved(c); ok {
				return res, true
			}
		}
	}
	return PredictionResolvedMsg{}, false
}

var (
	ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	f2    = tea.KeyMsg{Type: tea.KeyF2}
)

func TestNewModel(t *testing.T) {
	m := New(context.Background(), predict.NewController(nil), nil, "", nil)
	if m.ctrl.State().Phase != predict.Idle {
		t.Errorf("phase = %v, want idle", m.ctrl.State().Phase)
	}
	if m.healthy {
		t.Error("new model should not report healthy")
	}
	if m.showDiagnostics {
		t.Error("diagnostics should start collapsed")
	}
	if m.View() != "Başlatılıyor..." {
		t.Errorf("view before size = %q", m.View())
	}
}

func TestSubmitShortTextMakesNoCall(t *testing.T) {
	m, calls := newTestModel(t, http.StatusOK, sciFiBody)
	m.input.SetValue("kısa")

	m, cmd := applyUpdate(m, ctrlS)
	if cmd != nil {
		t.Error("short text should not issue a command")
	}
	if atomic.LoadInt64(calls) != 0 {
		t.Errorf("calls = %d, want 0", *calls)
	}

	st := m.ctrl.State()
	if st.Phase != predict.Failed || st.Message != predict.ValidationMessage {
		t.Errorf("state = %+v", st)
	}
	if !strings.Contains(m.View(), predict.ValidationMessage) {
		t.Error("view should show the validation message")
	}
}

func TestSubmitSuccess(t *testing.T) {
	m, calls := newTestModel(t, http.StatusOK, sciFiBody)
	m.input.SetValue(synopsis)

	m, cmd := applyUpdate(m, ctrlS)
	if !m.ctrl.Busy() {
		t.Fatal("should be submitting after ctrl+s")
	}
	if !strings.Contains(m.View(), "AI modeli analiz yapıyor") {
		t.Error("view should show the loading indicator")
	}

	m, _ = applyUpdate(m, resolve(t, cmd))
	if atomic.LoadInt64(calls) != 1 {
		t.Errorf("calls = %d, want 1", *calls)
	}

	st := m.ctrl.State()
	if st.Phase != predict.Succeeded {
		t.Fatalf("phase = %v, want succeeded", st.Phase)
	}
	if len(m.chart) != 5 {
		t.Fatalf("chart len = %d, want 5", len(m.chart))
	}
	if m.chart[0].Label != "🚀 Bilim Kurgu" || m.chart[0].Value != 91.4 {
		t.Errorf("chart[0] = %+v", m.chart[0])
	}

	view := m.View()
	for _, want := range []string{"Bilim Kurgu", "%91.4", "Olasılık Dağılımı"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSubmitWhileBusyIsIgnored(t *testing.T) {
	m, _ := newTestModel(t, http.StatusOK, sciFiBody)
	m.input.SetValue(synopsis)

	m, first := applyUpdate(m, ctrlS)
	if first == nil {
		t.Fatal("first submit should issue a command")
	}
	m, second := applyUpdate(m, ctrlS)
	if second != nil {
		t.Error("second submit while busy should be ignored")
	}

	m, _ = applyUpdate(m, resolve(t, first))
	if m.ctrl.State().Phase != predict.Succeeded {
		t.Errorf("phase = %v, want succeeded", m.ctrl.State().Phase)
	}
}

func TestSubmitServiceError(t *testing.T) {
	m, _ := newTestModel(t, http.StatusInternalServerError, `{"detail":"Model yüklenemedi"}`)
	m.input.SetValue(synopsis)

	m, cmd := applyUpdate(m, ctrlS)
	m, _ = applyUpdate(m, resolve(t, cmd))

	st := m.ctrl.State()
	if st.Phase != predict.Failed || st.Message != "Model yüklenemedi" {
		t.Errorf("state = %+v", st)
	}
	if m.chart != nil {
		t.Error("chart should be cleared on failure")
	}
	if !strings.Contains(m.View(), "Model yüklenemedi") {
		t.Error("view should show the service detail")
	}
}

func TestResubmitClearsPriorResult(t *testing.T) {
	m, _ := newTestModel(t, http.StatusOK, sciFiBody)
	m.input.SetValue(synopsis)

	m, cmd := applyUpdate(m, ctrlS)
	m, _ = applyUpdate(m, resolve(t, cmd))
	m, _ = applyUpdate(m, f2)
	if !m.showDiagnostics {
		t.Fatal("f2 should expand diagnostics")
	}

	m, _ = applyUpdate(m, ctrlS)
	if m.ctrl.State().Result != nil {
		t.Error("result should be cleared while submitting")
	}
	if m.chart != nil || m.showDiagnostics {
		t.Error("chart and diagnostics should reset on resubmit")
	}
}

func TestStaleResolutionDiscarded(t *testing.T) {
	m, _ := newTestModel(t, http.StatusOK, sciFiBody)
	m.input.SetValue(synopsis)

	m, cmd := applyUpdate(m, ctrlS)
	msg := resolve(t, cmd)
	msg.Resolution.Seq++

	m, _ = applyUpdate(m, msg)
	if !m.ctrl.Busy() {
		t.Error("stale resolution should not leave submitting")
	}
}

func TestDiagnosticsToggle(t *testing.T) {
	m, _ := newTestModel(t, http.StatusOK, sciFiBody)

	m, _ = applyUpdate(m, f2)
	if m.showDiagnostics {
		t.Error("f2 should do nothing without a result")
	}

	m.input.SetValue(synopsis)
	m, cmd := applyUpdate(m, ctrlS)
	m, _ = applyUpdate(m, resolve(t, cmd))

	m, _ = applyUpdate(m, f2)
	view := m.View()
	if !strings.Contains(view, "Çevrilen Metin (EN):") {
		t.Error("diagnostics should show the translated text")
	}
	if !strings.Contains(view, "In a distant galaxy") {
		t.Error("diagnostics should include the translation")
	}

	m, _ = applyUpdate(m, f2)
	if strings.Contains(m.View(), "Çevrilen Metin (EN):") {
		t.Error("second f2 should collapse diagnostics")
	}
}

func TestTypingUpdatesCounter(t *testing.T) {
	m, _ := newTestModel(t, http.StatusOK, sciFiBody)

	m, _ = applyUpdate(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("çok güzel")})
	if got := m.input.Value(); got != "çok güzel" {
		t.Fatalf("input = %q", got)
	}
	if !strings.Contains(m.View(), "9 karakter") {
		t.Error("counter should count runes")
	}
	if m.submitEnabled() {
		t.Error("submit should be disabled below the minimum")
	}

	m, _ = applyUpdate(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	if !m.submitEnabled() {
		t.Error("submit should be enabled at the minimum")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, http.StatusOK, sciFiBody)

	for _, k := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := applyUpdate(m, k)
		if cmd == nil {
			t.Fatalf("%s should return a command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s should quit", k)
		}
	}
}

func TestQuitCancelsInFlightCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
			fmt.Fprint(w, sciFiBody)
		}
	}))
	t.Cleanup(srv.Close)

	m := New(context.Background(), predict.NewController(classifier.New(srv.URL)), nil, srv.URL, nil)
	m.input.SetValue(synopsis)

	m, cmd := applyUpdate(m, ctrlS)
	m, _ = applyUpdate(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.ctx.Err() == nil {
		t.Fatal("quit should cancel the model context")
	}

	start := time.Now()
	msg := resolve(t, cmd)
	if time.Since(start) > 2*time.Second {
		t.Error("cancelled call should return promptly")
	}
	if msg.Resolution.Err == nil {
		t.Error("cancelled call should resolve with an error")
	}
}

func TestParentContextBoundsCalls(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	m := New(parent, predict.NewController(nil), nil, "", nil)

	cancel()
	if m.ctx.Err() == nil {
		t.Error("model context should follow its parent")
	}
}

type fakeHealth struct {
	resp classifier.HealthResponse
	err  error
}

func (f fakeHealth) Health(context.Context) (classifier.HealthResponse, error) {
	return f.resp, f.err
}

func TestHealthResponse(t *testing.T) {
	h := fakeHealth{resp: classifier.HealthResponse{Status: "healthy", ModelLoaded: true, VectorizerLoaded: true}}
	m := New(context.Background(), predict.NewController(nil), h, "http://localhost:8000", nil)
	m, _ = applyUpdate(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, _ = applyUpdate(m, healthCmd(context.Background(), h)())
	if !m.healthy {
		t.Error("should be healthy")
	}
	if !strings.Contains(m.View(), "Servis hazır") {
		t.Error("header should show the service as ready")
	}

	m, _ = applyUpdate(m, HealthResponseMsg{Response: classifier.HealthResponse{Status: "healthy"}})
	if m.healthy {
		t.Error("unloaded model should not be healthy")
	}
}

func TestHealthError(t *testing.T) {
	h := fakeHealth{err: errors.New("connection refused")}
	m := New(context.Background(), predict.NewController(nil), h, "", nil)
	m.healthy = true

	m, _ = applyUpdate(m, healthCmd(context.Background(), h)())
	if m.healthy {
		t.Error("should not be healthy after a probe error")
	}
	if m.healthMsg != "Servise ulaşılamıyor" {
		t.Errorf("healthMsg = %q", m.healthMsg)
	}
}

func TestSpinnerTickIgnoredWhenIdle(t *testing.T) {
	m, _ := newTestModel(t, http.StatusOK, sciFiBody)

	_, cmd := applyUpdate(m, m.spinner.Tick())
	if cmd != nil {
		t.Error("idle model should stop the spinner")
	}
}
