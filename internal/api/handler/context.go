package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/record-admin/internal/api/middleware"
	"github.com/99minutos/record-admin/internal/core/ports"
	"github.com/99minutos/record-admin/internal/pkg/metrics"
)

// requestLog returns the request-scoped logger, tagged with the operator
// when the request is authenticated.
func requestLog(c echo.Context) *zerolog.Logger {
	l := zerolog.Ctx(c.Request().Context())
	if op, ok := c.Get(middleware.OperatorKey).(string); ok && op != "" {
		tagged := l.With().Str("operator", op).Logger()
		return &tagged
	}
	return l
}

// validate runs the form rules and counts rejections per form.
func validate(c echo.Context, form string, v any) error {
	if err := c.Validate(v); err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues(form).Inc()
		requestLog(c).Debug().Err(err).Str("form", form).Msg("form rejected")
		return err
	}
	return nil
}

// bindJSON decodes the request body, mapping decode failures to 400.
func bindJSON(c echo.Context, v any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return nil
}

// formUpload opens the multipart "file" field. The caller closes the
// returned reader.
func formUpload(c echo.Context) (ports.Upload, io.Closer, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return ports.Upload{}, nil, echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return ports.Upload{}, nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	return ports.Upload{Filename: fh.Filename, Size: fh.Size, Content: f}, f, nil
}
