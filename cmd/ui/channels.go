package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/flytaly/mdsite/pkg/log"
	"github.com/flytaly/mdsite/pkg/site"
)

// reportMsg is a result of a build started by the watcher
type reportMsg struct {
	report *site.Report
	err    error
}

// buildMsg is a result of a build started by the user
type buildMsg reportMsg

func listenForBuilds(m model) tea.Cmd {
	return func() tea.Msg {
		m.site.Watch(m.ctx, m.interval, func(r *site.Report, err error) {
			select {
			case m.reports <- reportMsg{report: r, err: err}:
			case <-m.ctx.Done():
			}
		})
		return nil
	}
}

func waitForReports(reports chan reportMsg) tea.Cmd {
	return func() tea.Msg {
		return <-reports
	}
}

func waitForLogs(records <-chan log.Record) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-records
		if !ok {
			return nil
		}
		return r
	}
}

func rebuild(m model) tea.Cmd {
	return func() tea.Msg {
		r, err := m.site.Build(m.ctx)
		return buildMsg{report: r, err: err}
	}
}
