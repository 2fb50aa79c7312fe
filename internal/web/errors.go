package web

import (
	"errors"

	"quiz-builder/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const msgUnexpected = "Something went wrong"

// ErrorPage is rendered for request errors no page handles itself.
type ErrorPage struct {
	PageTitle string
	Status    int
	Message   string
}

// errorHandler renders failures as a page inside the layout. Internal details stay in the log.
func errorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		page := ErrorPage{PageTitle: "Error", Status: fiber.StatusInternalServerError, Message: msgUnexpected}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			page.Status = fiberErr.Code
			page.Message = fiberErr.Message
			logger.Get().Warn("Web request rejected",
				zap.String("path", c.Path()),
				zap.Int("status", fiberErr.Code),
				zap.String("message", fiberErr.Message))
		} else {
			logger.Get().Error("Web request failed", zap.String("path", c.Path()), zap.Error(err))
		}

		if renderErr := c.Status(page.Status).Render("error", page, layout); renderErr != nil {
			logger.Get().Error("Failed to render error page", zap.Error(renderErr))
			return c.Status(page.Status).SendString(page.Message)
		}
		return nil
	}
}
