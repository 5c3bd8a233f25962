package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aom0101z1/gestion-ventas-sub001/schedule"
)

type CalendarController struct {
	Engine *schedule.Engine
}

func NewCalendarController(engine *schedule.Engine) *CalendarController {
	return &CalendarController{Engine: engine}
}

// GetMonth godoc
// @Summary Get the class calendar for a month
// @Tags calendar
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /calendar/{year}/{month} [get]
func (cc *CalendarController) GetMonth(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid year",
		})
	}
	month, err := c.ParamsInt("month")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid month",
		})
	}

	view, err := cc.Engine.MonthCalendar(year, month)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{
		"calendar": view,
	})
}

// GetDay godoc
// @Summary Get the classes scheduled on one date
// @Tags calendar
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /calendar/day/{date} [get]
func (cc *CalendarController) GetDay(c *fiber.Ctx) error {
	day, err := cc.Engine.ClassesForDate(c.Params("date"))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{
		"day": day,
	})
}
