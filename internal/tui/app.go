package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-offline-sync/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultRefreshInterval = 500 * time.Millisecond
	maxNotices             = 5
)

// SyncController is the part of the sync coordinator the status view uses.
type SyncController interface {
	Status(ctx context.Context) models.StatusReport
	ForceSync(ctx context.Context) error
}

// RootModel renders the sync indicator:
// 1) polls the coordinator status
// 2) shows transient notices as they arrive
// 3) binds s to a forced sync and q to quit
type RootModel struct {
	ctx     context.Context
	sync    SyncController
	notices <-chan models.Notice
	now     func() time.Time
	refresh time.Duration

	spinner   spinner.Model
	report    models.StatusReport
	forcing   bool
	recent    []models.Notice
	lastErr   string
	buildInfo models.AppBuildInfo

	showBuildInfo bool
	quitByUser    bool
}

// NewRootModel creates the status view. notices may be nil.
func NewRootModel(ctx context.Context, sync SyncController, notices <-chan models.Notice, buildInfo models.AppBuildInfo) RootModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return RootModel{
		ctx:       ctx,
		sync:      sync,
		notices:   notices,
		now:       time.Now,
		refresh:   defaultRefreshInterval,
		spinner:   s,
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	return tea.Batch(r.spinner.Tick, r.fetchStatus(), r.waitNotice(), r.scheduleRefresh())
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return r.handleKey(msg)

	case statusMsg:
		r.report = msg.report
		return r, nil

	case refreshMsg:
		return r, tea.Batch(r.fetchStatus(), r.scheduleRefresh())

	case noticeMsg:
		r.recent = append(r.recent, msg.notice)
		if len(r.recent) > maxNotices {
			r.recent = r.recent[len(r.recent)-maxNotices:]
		}
		return r, r.waitNotice()

	case noticesClosedMsg:
		r.notices = nil
		return r, nil

	case syncDoneMsg:
		r.forcing = false
		r.lastErr = humanizeServerUnavailableError(msg.err)
		return r, r.fetchStatus()

	case spinner.TickMsg:
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd
	}

	return r, nil
}

func (r RootModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		r.quitByUser = true
		return r, tea.Quit
	case key.Matches(msg, keys.buildInfo):
		r.showBuildInfo = !r.showBuildInfo
		return r, nil
	case key.Matches(msg, keys.esc):
		r.showBuildInfo = false
		return r, nil
	}

	if r.showBuildInfo {
		return r, nil
	}

	if key.Matches(msg, keys.sync) && r.canForceSync() {
		r.forcing = true
		r.lastErr = ""
		return r, r.forceSync()
	}
	return r, nil
}

func (r RootModel) canForceSync() bool {
	return !r.forcing && r.report.Indicator(r.now()).CanForceSync
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(r.buildInfo))
	}

	ind := r.report.Indicator(r.now())

	var b strings.Builder
	b.WriteString(toneStyle(ind.Tone).Render(ind.Label))
	if r.report.IsSyncing || r.forcing {
		b.WriteString(" ")
		b.WriteString(r.spinner.View())
	}
	if ind.ShowPending {
		fmt.Fprintf(&b, "  %d pending", r.report.PendingCount)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(ind.Tooltip))
	b.WriteString("\n")

	if len(r.recent) > 0 {
		b.WriteString("\n")
		for _, n := range r.recent {
			if n.Level == models.NoticeError {
				b.WriteString(errorStyle.Render("! " + n.Message))
			} else {
				b.WriteString("· " + n.Message)
			}
			b.WriteString("\n")
		}
	}
	if r.lastErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Sync failed: " + r.lastErr))
		b.WriteString("\n")
	}

	hotKeys := "s: sync now  v: about"
	if !r.canForceSync() {
		hotKeys = helpStyle.Render("s: sync now (unavailable)") + "  v: about"
	}

	return appStyle.Render(renderPage(titleStyle.Render("go-offline-sync"), b.String(), hotKeys))
}

func (r RootModel) fetchStatus() tea.Cmd {
	return func() tea.Msg {
		return statusMsg{report: r.sync.Status(r.ctx)}
	}
}

func (r RootModel) scheduleRefresh() tea.Cmd {
	return tea.Tick(r.refresh, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func (r RootModel) waitNotice() tea.Cmd {
	if r.notices == nil {
		return nil
	}
	ch := r.notices
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return noticesClosedMsg{}
		}
		return noticeMsg{notice: n}
	}
}

func (r RootModel) forceSync() tea.Cmd {
	return func() tea.Msg {
		return syncDoneMsg{err: r.sync.ForceSync(r.ctx)}
	}
}
