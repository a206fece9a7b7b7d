// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware for both the
// server-rendered pages and the JSON API. Cross-cutting concerns such as
// session authentication, CSRF protection, request tracing, and access
// logging are handled in this package before requests are delegated to the
// service layer.
package http

import (
	"github.com/MKhiriev/fitgrit/internal/config"
	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/service"
)

// Cookie names used by the session and CSRF machinery.
const (
	sessionCookieName = "fitgrit_session"
	csrfCookieName    = "fitgrit_csrf"
)

type Handler struct {
	services *service.Services

	app  config.App
	auth config.Auth

	templates *templateSet

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handler, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		app:       cfg.App,
		auth:      cfg.Auth,
		templates: templates,
		logger:    logger,
	}, nil
}
