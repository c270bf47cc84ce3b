package middleware

import (
	"encoding/json"
	"log"
	"time"

	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const colorReset = "\033[0m"

type requestLine struct {
	IP      string `json:"ip"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Status  int    `json:"status"`
	Latency string `json:"latency"`
}

func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	colors := utils.ColorsEnabled(logger)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Передаем управление следующему обработчику
		err := c.Next()
		if err != nil {
			// Let the app error handler set the status before it is logged.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		status := c.Response().StatusCode()
		method := c.Method()
		latency := time.Since(start)

		if colors {
			logger.Printf("%s %s%s%s %s %s%d%s %v",
				c.IP(),
				utils.MethodColor(method), method, colorReset,
				c.Path(),
				utils.StatusColor(status), status, colorReset,
				latency,
			)
		} else {
			line, _ := json.Marshal(requestLine{
				IP:      c.IP(),
				Method:  method,
				Path:    c.Path(),
				Status:  status,
				Latency: latency.String(),
			})
			logger.Println(string(line))
		}

		return err
	}
}
