package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Bano733-code/gc-content-analyzer/internal/gc"
)

// Colors for modern design
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	accentColor    = lipgloss.Color("#F59E0B") // Amber
	surfaceColor   = lipgloss.Color("#1F2937") // Dark gray
	textColor      = lipgloss.Color("#F3F4F6") // Light gray
	mutedColor     = lipgloss.Color("#9CA3AF") // Muted gray
	borderColor    = lipgloss.Color("#374151") // Border gray
)

// Styles
var (
	containerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Align(lipgloss.Center)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(surfaceColor).
			Padding(0, 1)

	sequenceStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(lipgloss.Color("#111827")).
			Padding(1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	labelStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	gcHighStyle = lipgloss.NewStyle().Foreground(secondaryColor).Bold(true)
	gcLowStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
)

// GCRecord mirrors the per-record result written by the batch CLI.
type GCRecord struct {
	Identifier string           `json:"identifier"`
	Sequence   string           `json:"sequence"`
	Stats      gc.SummaryStats  `json:"stats"`
	Profile    []gc.WindowPoint `json:"profile"`
	WindowSize int              `json:"window_size"`
	StepSize   int              `json:"step_size"`
}

type listItem struct {
	record GCRecord
}

func (i listItem) FilterValue() string {
	return i.record.Identifier
}

func (i listItem) Title() string {
	if i.record.Identifier != "" {
		return i.record.Identifier
	}
	return "(unnamed)"
}

func (i listItem) Description() string {
	gcStr := fmt.Sprintf("GC: %.1f%%", i.record.Stats.GCPercent)
	if i.record.Stats.GCPercent >= 50.0 {
		gcStr = gcHighStyle.Render(gcStr)
	} else {
		gcStr = gcLowStyle.Render(gcStr)
	}
	return fmt.Sprintf("%s    len: %d    windows: %d", gcStr, i.record.Stats.Length, len(i.record.Profile))
}

type mode int

const (
	modeSummary mode = iota
	modeProfile
	modeSequence
)

func (m mode) String() string {
	switch m {
	case modeSummary:
		return "Summary"
	case modeProfile:
		return "GC Profile"
	case modeSequence:
		return "Sequence"
	default:
		return "Unknown"
	}
}

type model struct {
	list          list.Model
	records       []GCRecord
	currentMode   mode
	showHelp      bool
	width         int
	height        int
	totalRecords  int
	selectedIndex int
}

func loadResults(path string) ([]GCRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []GCRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func newModel(records []GCRecord) model {
	items := make([]list.Item, len(records))
	for i, record := range records {
		items[i] = listItem{record: record}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "GC Content Results"
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)

	return model{
		list:         l,
		records:      records,
		currentMode:  modeSummary,
		totalRecords: len(records),
	}
}

func initialModel(path string) model {
	records, err := loadResults(path)
	if err != nil {
		log.Fatal(err)
	}
	return newModel(records)
}

func (m model) Init() tea.Cmd {
	return nil
}

// cycleMode advances to the next view mode, wrapping around.
func (m model) cycleMode() model {
	m.currentMode = (m.currentMode + 1) % 3
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// left panel takes 1/3 of the width
		m.list.SetWidth(msg.Width / 3)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "h":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			return m.cycleMode(), nil

		case "1":
			m.currentMode = modeSummary
			return m, nil

		case "2":
			m.currentMode = modeProfile
			return m, nil

		case "3":
			m.currentMode = modeSequence
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.selectedIndex = m.list.Index()
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpModal()
	}

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderLeftPanel(),
		m.renderRightPanel(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		m.renderStatusBar(),
	)
}

func (m model) renderLeftPanel() string {
	return containerStyle.
		Width(m.width/3 - 2).
		Height(m.height - 4).
		Render(m.list.View())
}

func (m model) renderRightPanel() string {
	rightWidth := (m.width * 2) / 3

	if len(m.records) == 0 {
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render("No records available")
	}

	selectedItem := m.list.SelectedItem()
	if selectedItem == nil {
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render("No item selected")
	}

	record := selectedItem.(listItem).record
	lines := m.buildRightLines(record)

	return containerStyle.
		Width(rightWidth - 2).
		Height(m.height - 4).
		Render(strings.Join(lines, "\n"))
}

// buildRightLines renders the detail panel content for the selected
// record according to the current view mode.
func (m model) buildRightLines(record GCRecord) []string {
	header := titleStyle.Render(fmt.Sprintf("%s (%s)", record.Identifier, m.currentMode.String()))
	meta := labelStyle.Render(fmt.Sprintf("window %d bp, step %d bp", record.WindowSize, record.StepSize))

	lines := []string{header, meta, ""}
	switch m.currentMode {
	case modeSummary:
		lines = append(lines, m.formatSummary(record.Stats)...)
	case modeProfile:
		lines = append(lines, m.formatProfile(record.Profile)...)
	case modeSequence:
		lines = append(lines, m.formatSequence(record.Sequence))
	}
	return lines
}

func (m model) formatSummary(s gc.SummaryStats) []string {
	gcLine := fmt.Sprintf("GC%%:    %.3f", s.GCPercent)
	if s.GCPercent >= 50.0 {
		gcLine = gcHighStyle.Render(gcLine)
	} else {
		gcLine = gcLowStyle.Render(gcLine)
	}
	return []string{
		fmt.Sprintf("Length: %d", s.Length),
		gcLine,
		"",
		fmt.Sprintf("A:      %d", s.CountA),
		fmt.Sprintf("T:      %d", s.CountT),
		fmt.Sprintf("G:      %d", s.CountG),
		fmt.Sprintf("C:      %d", s.CountC),
		fmt.Sprintf("Other:  %d", s.CountOther),
	}
}

// formatProfile draws one bar per window, scaled to the panel width.
func (m model) formatProfile(profile []gc.WindowPoint) []string {
	if len(profile) == 0 {
		return []string{labelStyle.Render("Sequence shorter than the window; no profile.")}
	}
	barWidth := m.width/2 - 20
	if barWidth < 10 {
		barWidth = 10
	}
	maxRows := m.height - 10
	if maxRows < 1 {
		maxRows = 1
	}
	lines := make([]string, 0, len(profile))
	for i, p := range profile {
		if i >= maxRows {
			lines = append(lines, labelStyle.Render(fmt.Sprintf("… %d more windows", len(profile)-i)))
			break
		}
		filled := int(p.GCPercent / 100.0 * float64(barWidth))
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		lines = append(lines, fmt.Sprintf("%8d %s %5.1f%%", p.Position, bar, p.GCPercent))
	}
	return lines
}

func (m model) formatSequence(sequence string) string {
	if sequence == "" {
		return labelStyle.Render("No sequence available")
	}

	cleanSequence := strings.ReplaceAll(sequence, "\n", "")
	cleanSequence = strings.ReplaceAll(cleanSequence, "\r", "")

	return sequenceStyle.
		Width(m.width*2/3 - 6).
		Render(cleanSequence)
}

func (m model) renderStatusBar() string {
	leftInfo := fmt.Sprintf("%d/%d records", m.selectedIndex+1, m.totalRecords)
	centerInfo := fmt.Sprintf("Mode: %s", m.currentMode.String())
	rightInfo := "Press 'h' for help, 'q' to quit"

	totalUsed := len(leftInfo) + len(centerInfo) + len(rightInfo)
	spacing := m.width - totalUsed - 6

	var statusContent string
	if spacing > 0 {
		leftSpacing := spacing / 2
		rightSpacing := spacing - leftSpacing
		statusContent = fmt.Sprintf("%s%s%s%s%s",
			leftInfo,
			strings.Repeat(" ", leftSpacing),
			centerInfo,
			strings.Repeat(" ", rightSpacing),
			rightInfo,
		)
	} else {
		statusContent = fmt.Sprintf("%s | %s", leftInfo, centerInfo)
	}

	return statusBarStyle.
		Width(m.width).
		Render(statusContent)
}

func (m model) renderHelpModal() string {
	helpContent := `GC Content Results Browser - Help

Navigation:
  up/down, j/k  Navigate list
  /             Filter records
  Enter         Select record

View Modes:
  tab           Cycle modes
  1             Summary counts
  2             Sliding-window GC profile
  3             Raw sequence

General:
  h             Toggle this help
  q, Ctrl+C     Quit

Current Mode: ` + m.currentMode.String() + `
Total Records: ` + fmt.Sprintf("%d", m.totalRecords) + `
`

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(surfaceColor).
		Foreground(textColor).
		Width(60).
		Align(lipgloss.Center)

	modal := modalStyle.Render(helpContent)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

func main() {
	path := "results.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	p := tea.NewProgram(initialModel(path), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
