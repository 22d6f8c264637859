// Package tui renders the client's sync status indicator in the terminal.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	sync      SyncController
	notices   <-chan models.Notice
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func New(sync SyncController, notices <-chan models.Notice, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{
		sync:      sync,
		notices:   notices,
		buildInfo: buildInfo,
		logger:    logger,
	}
}

// Run blocks until the user quits, returning ErrUserQuit, or ctx is done,
// returning nil.
func (t *TUI) Run(ctx context.Context) error {
	model := NewRootModel(ctx, t.sync, t.notices, t.buildInfo)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		t.logger.Err(err).Str("func", "TUI.Run").Msg("tui program failed")
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
