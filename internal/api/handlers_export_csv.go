package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/dailybrew/internal/services"
)

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	rows, err := handler.services.Export.BuildRows(c.UserContext(), user.ID, from, to, handler.location)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return handler.respondServiceError(c, err)
	}
	for _, row := range rows {
		if err := writer.Write(row.Columns()); err != nil {
			return handler.respondServiceError(c, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return handler.respondServiceError(c, err)
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(handler.now().In(handler.location), "csv"))
	return c.Send(output.Bytes())
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("dailybrew-export-%s.%s", now.Format(responseDayLayout), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
