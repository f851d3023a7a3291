package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/linkeval/internal/eval/anyburl"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/prediction"
	"github.com/labstack/echo/v4"
)

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)

		var re *RunError
		if errors.As(err, &re) {
			body["run_id"] = re.RunID
		}

		_ = c.JSON(status, body)
	}
}

func errorResponse(err error) (int, map[string]string) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, map[string]string{"error": ve.Message, "title": "validation error"}
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, map[string]string{"error": nf.Error()}
	}

	var fe *prediction.FormatError
	if errors.As(err, &fe) {
		return http.StatusUnprocessableEntity, map[string]string{"error": fe.Error(), "title": "malformed prediction file"}
	}

	// config errors may quote file content, so the detail stays in the log
	var ce *anyburl.ConfigError
	if errors.As(err, &ce) {
		slog.Warn("Tool config rejected", "error", err)
		return http.StatusUnprocessableEntity, map[string]string{
			"error": fmt.Sprintf("tool config does not provide a readable %s entry", ce.Key),
			"title": "invalid tool config",
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, map[string]string{"error": fmt.Sprintf("%v", he.Message)}
	}

	slog.Error("Unhandled error", "error", err)
	return http.StatusInternalServerError, map[string]string{"error": "internal server error"}
}
