package http

import (
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/service"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
)

type Handler struct {
	services *service.Services
	// hasher verifies the HashSHA256 header of document writes; nil disables the check
	hasher *utils.Hasher

	logger *logger.Logger
}

func NewHandler(services *service.Services, hasher *utils.Hasher, logger *logger.Logger) *Handler {
	logger.Info().Bool("integrity_check", hasher != nil).Msg("http handler created")
	return &Handler{
		services: services,
		hasher:   hasher,
		logger:   logger,
	}
}
