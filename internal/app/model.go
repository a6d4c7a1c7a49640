package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/jwulff/cineai/internal/classifier"
	"github.com/jwulff/cineai/internal/predict"
	"github.com/jwulff/cineai/internal/ui"
	"go.uber.org/zap"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	placeholder = "Örnek: Uzak bir galakside, genç bir çiftçi kendini galaksiler arası bir savaşın " +
		"ortasında bulur. Gizemli bir prensesi kurtarmak için efsanevi bir şövalyenin yolculuğuna çıkar..."
	inputHeight   = 6
	charLimit     = 5000
	healthTimeout = 5 * time.Second
)

// HealthChecker probes the classification service.
type HealthChecker interface {
	Health(ctx context.Context) (classifier.HealthResponse, error)
}

// Model is the root bubbletea model for the CineAI TUI.
type Model struct {
	// Prediction flow, shared by reference with every copy of the model.
	ctrl  *predict.Controller
	chart []predict.ChartDatum

	// Service
	health    HealthChecker
	endpoint  string
	healthy   bool
	healthMsg string

	// Widgets
	input   textarea.Model
	spinner spinner.Model
	help    help.Model
	keys    KeyMap

	// UI state
	showDiagnostics bool
	width           int
	height          int

	// Bounds in-flight calls; cancelled on quit.
	ctx    context.Context
	cancel context.CancelFunc

	logger *zap.Logger
}

// New creates a Model driving ctrl. Calls run under a child of ctx that is
// cancelled when the user quits. health may be nil to skip the startup probe.
func New(ctx context.Context, ctrl *predict.Controller, health HealthChecker, endpoint string, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)

	input := textarea.New()
	input.Placeholder = placeholder
	input.CharLimit = charLimit
	input.ShowLineNumbers = false
	input.Prompt = "┃ "
	input.SetHeight(inputHeight)
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = ui.SpinnerStyle

	return Model{
		ctrl:      ctrl,
		health:    health,
		endpoint:  endpoint,
		healthMsg: "Servis kontrol ediliyor...",
		input:     input,
		spinner:   spin,
		help:      help.New(),
		keys:      DefaultKeyMap(),
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger,
	}
}

// Init starts the cursor blink and probes service health.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, healthCmd(m.ctx, m.health))
}

// healthCmd calls /health once.
func healthCmd(parent context.Context, h HealthChecker) tea.Cmd {
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, healthTimeout)
		defer cancel()
		resp, err := h.Health(ctx)
		if err != nil {
			return HealthErrorMsg{Err: err}
		}
		return HealthResponseMsg{Response: resp}
	}
}

// predictCmd runs an issued call off the event loop.
func predictCmd(ctx context.Context, call *predict.Call) tea.Cmd {
	return func() tea.Msg {
		return PredictionResolvedMsg{Resolution: call.Do(ctx)}
	}
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(20, m.width-2))
		m.help.Width = m.width
		return m, nil

	case PredictionResolvedMsg:
		if !m.ctrl.Apply(msg.Resolution) {
			return m, nil
		}
		st := m.ctrl.State()
		if st.Phase == predict.Succeeded {
			m.chart = predict.ToChartData(*st.Result)
		} else {
			m.chart = nil
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case HealthResponseMsg:
		m.healthy = msg.Response.Healthy()
		if m.healthy {
			m.healthMsg = "Servis hazır"
		} else {
			m.healthMsg = "Model yüklenmemiş"
		}
		return m, nil

	case HealthErrorMsg:
		m.healthy = false
		m.healthMsg = "Servise ulaşılamıyor"
		m.logger.Warn("health probe failed", zap.Error(msg.Err))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes key presses. Keys that are not bindings go to the
// text area, which stays editable while a request is in flight.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		call := m.ctrl.Submit(m.input.Value())
		if call == nil {
			return m, nil
		}
		m.chart = nil
		m.showDiagnostics = false
		return m, tea.Batch(m.spinner.Tick, predictCmd(m.ctx, call))

	case key.Matches(msg, m.keys.Diagnostics):
		if m.ctrl.State().Phase == predict.Succeeded {
			m.showDiagnostics = !m.showDiagnostics
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitEnabled mirrors the disabled state of the submit trigger.
func (m Model) submitEnabled() bool {
	return !m.ctrl.Busy() && predict.TextLength(m.input.Value()) >= predict.MinTextLength
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Başlatılıyor..."
	}

	divider := ui.DividerStyle.Render(strings.Repeat("─", m.width))

	sections := []string{
		m.renderHeader(),
		divider,
		m.renderInputPanel(),
	}
	if st := m.ctrl.State(); st.Phase == predict.Failed {
		sections = append(sections, m.renderErrorBar(st.Message))
	}
	sections = append(sections,
		divider,
		m.renderResultPanel(),
		divider,
		m.help.View(m.keys),
	)

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("CineAI") + " " + ui.TitleAccentStyle.Render("Pro")

	var status string
	if m.healthy {
		status = ui.HealthyStyle.Render("● " + m.healthMsg)
	} else {
		status = ui.UnhealthyStyle.Render("○ " + m.healthMsg)
	}

	var endpoint string
	if m.endpoint != "" {
		endpoint = ui.DimStyle.Render(" · " + m.endpoint)
	}

	return title + "  " + status + endpoint
}

func (m Model) renderInputPanel() string {
	header := ui.PanelTitleStyle.Render("Film Açıklaması") + "  " +
		ui.DimStyle.Render("Filmin konusunu Türkçe olarak yazın")

	counter := ui.DimStyle.Render(fmt.Sprintf("%d karakter • %s ile gönder",
		predict.TextLength(m.input.Value()), m.keys.Submit.Help().Key))

	var button string
	switch {
	case m.ctrl.Busy():
		button = ui.ButtonDisabledStyle.Render(m.spinner.View() + " Analiz Ediliyor...")
	case m.submitEnabled():
		button = ui.ButtonStyle.Render("Analiz Et 🚀")
	default:
		button = ui.ButtonDisabledStyle.Render("Analiz Et 🚀")
	}

	return strings.Join([]string{
		header,
		m.input.View(),
		counter + "  " + button,
	}, "\n")
}

func (m Model) renderErrorBar(msg string) string {
	return ui.ErrorStyle.Render("⚠️ ") + ui.ErrorTextStyle.Render(msg)
}

func (m Model) renderResultPanel() string {
	lines := []string{
		ui.PanelTitleStyle.Render("Tahmin Sonucu") + "  " + ui.DimStyle.Render("AI destekli tür analizi"),
	}

	st := m.ctrl.State()
	switch st.Phase {
	case predict.Submitting:
		lines = append(lines, "", "  "+m.spinner.View()+" "+ui.DimStyle.Render("AI modeli analiz yapıyor..."))

	case predict.Succeeded:
		lines = append(lines, "", ui.RenderResult(*st.Result, m.width))
		lines = append(lines, "", ui.PanelTitleStyle.Render("Olasılık Dağılımı"))
		lines = append(lines, ui.RenderBarChart(m.chart, m.width))
		lines = append(lines, "", m.renderDiagnosticsToggle())
		if m.showDiagnostics {
			lines = append(lines, ui.RenderDiagnostics(*st.Result, m.width))
		}

	default:
		lines = append(lines, "",
			ui.DimStyle.Render("  Film açıklaması girin ve ")+ui.GenreStyle.Render("Analiz Et")+
				ui.DimStyle.Render(" butonuna basın"))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderDiagnosticsToggle() string {
	marker := "▸"
	if m.showDiagnostics {
		marker = "▾"
	}
	return ui.DimStyle.Render(marker+" Sistemin Arka Planı ") +
		ui.FooterKeyStyle.Render(m.keys.Diagnostics.Help().Key)
}
