package tui

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-offline-sync/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSync struct {
	report    models.StatusReport
	forceErr  error
	forceRuns atomic.Int32
}

func (s *stubSync) Status(context.Context) models.StatusReport { return s.report }

func (s *stubSync) ForceSync(context.Context) error {
	s.forceRuns.Add(1)
	return s.forceErr
}

func newTestModel(s *stubSync, notices <-chan models.Notice) RootModel {
	m := NewRootModel(context.Background(), s, notices, models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc"))
	m.now = func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) }
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	rm, ok := next.(RootModel)
	require.True(t, ok)
	return rm, cmd
}

func TestRootModel_ViewShowsIndicator(t *testing.T) {
	tests := []struct {
		name   string
		report models.StatusReport
		want   []string
	}{
		{
			name:   "synced",
			report: models.StatusReport{IsOnline: true},
			want:   []string{"Synced", "Connected and synced."},
		},
		{
			name:   "pending",
			report: models.StatusReport{IsOnline: true, PendingCount: 3},
			want:   []string{"Pending", "3 pending", "3 items pending sync."},
		},
		{
			name:   "offline",
			report: models.StatusReport{PendingCount: 1},
			want:   []string{"Offline", "You are offline", "unavailable"},
		},
		{
			name:   "error wins",
			report: models.StatusReport{ErrorCount: 2},
			want:   []string{"Error", "2 item(s) failed to sync."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := update(t, newTestModel(&stubSync{}, nil), statusMsg{report: tt.report})
			view := m.View()
			for _, w := range tt.want {
				assert.Contains(t, view, w)
			}
		})
	}
}

func TestRootModel_ForceSyncKey(t *testing.T) {
	s := &stubSync{report: models.StatusReport{IsOnline: true}}
	m, _ := update(t, newTestModel(s, nil), statusMsg{report: s.report})

	m, cmd := update(t, m, runeKey('s'))
	require.NotNil(t, cmd)
	assert.True(t, m.forcing)

	// a second press while the first is running is ignored
	_, again := update(t, m, runeKey('s'))
	assert.Nil(t, again)

	msg := cmd()
	require.IsType(t, syncDoneMsg{}, msg)
	assert.Equal(t, int32(1), s.forceRuns.Load())

	m, _ = update(t, m, msg)
	assert.False(t, m.forcing)
	assert.Empty(t, m.lastErr)
}

func TestRootModel_ForceSyncUnavailable(t *testing.T) {
	for _, report := range []models.StatusReport{
		{IsOnline: false},
		{IsOnline: true, IsSyncing: true},
	} {
		s := &stubSync{report: report}
		m, _ := update(t, newTestModel(s, nil), statusMsg{report: report})

		_, cmd := update(t, m, runeKey('s'))
		assert.Nil(t, cmd)
	}
}

func TestRootModel_ForceSyncError(t *testing.T) {
	s := &stubSync{
		report:   models.StatusReport{IsOnline: true},
		forceErr: errors.New("dial tcp 127.0.0.1:8080: connection refused"),
	}
	m, _ := update(t, newTestModel(s, nil), statusMsg{report: s.report})

	m, cmd := update(t, m, runeKey('s'))
	m, _ = update(t, m, cmd())

	assert.Equal(t, "Network is down or the server is unreachable", m.lastErr)
	assert.Contains(t, m.View(), "Sync failed")
}

func TestRootModel_Notices(t *testing.T) {
	ch := make(chan models.Notice, maxNotices+2)
	m := newTestModel(&stubSync{}, ch)

	for i := 0; i < maxNotices+2; i++ {
		ch <- models.Notice{Level: models.NoticeInfo, Message: "notice"}
		var cmd tea.Cmd
		m, cmd = update(t, m, m.waitNotice()())
		require.NotNil(t, cmd, "queue is re-armed after each notice")
	}
	assert.Len(t, m.recent, maxNotices)

	close(ch)
	m, cmd := update(t, m, m.waitNotice()())
	assert.Nil(t, cmd)
	assert.Nil(t, m.waitNotice())
}

func TestRootModel_ErrorNoticeIsRendered(t *testing.T) {
	m := newTestModel(&stubSync{}, nil)
	m, _ = update(t, m, noticeMsg{notice: models.Notice{Level: models.NoticeError, Message: "pull failed"}})

	assert.Contains(t, m.View(), "! pull failed")
}

func TestRootModel_BuildInfoToggle(t *testing.T) {
	s := &stubSync{report: models.StatusReport{IsOnline: true}}
	m, _ := update(t, newTestModel(s, nil), statusMsg{report: s.report})

	m, _ = update(t, m, runeKey('v'))
	assert.Contains(t, m.View(), "Build version: 1.2.3")

	// keys other than esc/v/q are swallowed while the window is open
	_, cmd := update(t, m, runeKey('s'))
	assert.Nil(t, cmd)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, m.View(), "Build version: 1.2.3")
}

func TestRootModel_Quit(t *testing.T) {
	m, cmd := update(t, newTestModel(&stubSync{}, nil), runeKey('q'))
	require.NotNil(t, cmd)
	assert.True(t, m.quitByUser)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRootModel_RefreshFetchesStatus(t *testing.T) {
	s := &stubSync{report: models.StatusReport{IsOnline: true, PendingCount: 1}}
	m := newTestModel(s, nil)

	msg := m.fetchStatus()()
	m, _ = update(t, m, msg)

	assert.Equal(t, 1, m.report.PendingCount)
}

func TestHumanizeServerUnavailableError(t *testing.T) {
	assert.Empty(t, humanizeServerUnavailableError(nil))
	assert.Equal(t, "boom", humanizeServerUnavailableError(errors.New("boom")))
	assert.Equal(t, "Network is down or the server is unreachable",
		humanizeServerUnavailableError(errors.New("Get \"http://x\": context deadline exceeded")))
}
