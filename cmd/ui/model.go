/*
Package ui is an interactive terminal program that rebuilds the site on changes.
*/
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gookit/color"

	"github.com/flytaly/mdsite/pkg/log"
	"github.com/flytaly/mdsite/pkg/site"
)

const (
	maxLogRecords = 100
	shownRecords  = 10
	listLimit     = 5
)

type model struct {
	site     *site.Site
	root     string
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc

	reports chan reportMsg
	records <-chan log.Record
	logs    []log.Record

	last     *site.Report
	lastErr  error
	building bool
	showLog  bool
	quitting bool
	width    int

	spinner spinner.Model
	help    help.Model
}

func newModel(s *site.Site, records <-chan log.Record, root string, interval time.Duration) model {
	ctx, cancel := context.WithCancel(context.Background())
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return model{
		site:     s,
		root:     root,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		reports:  make(chan reportMsg),
		records:  records,
		building: true,
		width:    80,
		spinner:  sp,
		help:     help.New(),
	}
}

// Init builds the site and starts watching.
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		rebuild(m),
		listenForBuilds(m),
		waitForReports(m.reports),
		m.spinner.Tick,
	}
	if m.records != nil {
		cmds = append(cmds, waitForLogs(m.records))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			m.cancel()
			m.site.Close()
			return m, tea.Quit
		case key.Matches(msg, keys.Rebuild):
			if m.building {
				return m, nil
			}
			m.building = true
			return m, tea.Batch(rebuild(m), m.spinner.Tick)
		case key.Matches(msg, keys.Log):
			m.showLog = !m.showLog
			return m, nil
		}
	case buildMsg:
		m.building = false
		m.last, m.lastErr = msg.report, msg.err
		return m, nil
	case reportMsg:
		m.last, m.lastErr = msg.report, msg.err
		return m, waitForReports(m.reports)
	case log.Record:
		m.logs = append(m.logs, msg)
		if len(m.logs) > maxLogRecords {
			m.logs = m.logs[len(m.logs)-maxLogRecords:]
		}
		return m, waitForLogs(m.records)
	case spinner.TickMsg:
		if !m.building {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	result := fmt.Sprintf(" %s  Watch path: %s\n\n", color.Green.Sprint("➜"), color.Cyan.Sprint(m.root))

	switch {
	case m.building:
		result += fmt.Sprintf(" %s Building...\n", m.spinner.View())
	case m.lastErr != nil:
		result += fmt.Sprintf(" %s %s\n", color.Red.Sprint("✗"), m.lastErr)
	}
	result += FormatReport(m.last, listLimit, m.width)

	if m.showLog {
		result += "\n" + formatLogs(m.logs, shownRecords)
	}
	return result + "\n" + m.help.View(keys)
}

// NewProgram creates the program that builds the site and rebuilds it on changes.
// records are displayed in the log pane.
func NewProgram(s *site.Site, records <-chan log.Record, root string, interval time.Duration) *tea.Program {
	return tea.NewProgram(newModel(s, records, root, interval))
}
