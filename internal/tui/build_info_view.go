// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-offline-sync/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	body := "Application: go-offline-sync client\n" + info.String()
	return overlayBoxStyle.Render(renderPage("ABOUT", body, "esc: back"))
}
