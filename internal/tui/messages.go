package tui

import (
	"github.com/MKhiriev/go-offline-sync/models"
)

type statusMsg struct {
	report models.StatusReport
}

type noticeMsg struct {
	notice models.Notice
}

// noticesClosedMsg is sent once the notice channel is closed.
type noticesClosedMsg struct{}

type syncDoneMsg struct {
	err error
}

type refreshMsg struct{}
