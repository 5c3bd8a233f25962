package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aom0101z1/gestion-ventas-sub001/schedule"
)

type ReportsController struct {
	Engine *schedule.Engine
}

func NewReportsController(engine *schedule.Engine) *ReportsController {
	return &ReportsController{Engine: engine}
}

// GetWeeklySummary godoc
// @Summary Aggregate the 7 days starting at a date
// @Tags reports
// @Produce json
// @Param start query string true "Week start date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reports/weekly [get]
func (rc *ReportsController) GetWeeklySummary(c *fiber.Ctx) error {
	summary, err := rc.Engine.WeeklySummary(c.Query("start"))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{
		"summary": summary,
	})
}

// GetTeacherStats godoc
// @Summary Aggregate one teacher's classes over a date range
// @Tags reports
// @Produce json
// @Param id path int true "Teacher ID"
// @Param start query string true "Range start (YYYY-MM-DD)"
// @Param end query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reports/teacher/{id} [get]
func (rc *ReportsController) GetTeacherStats(c *fiber.Ctx) error {
	stats, err := rc.Engine.TeacherStats(c.Params("id"), c.Query("start"), c.Query("end"))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{
		"stats": stats,
	})
}

// GetBehindGroups godoc
// @Summary List groups running behind schedule, most behind first
// @Tags reports
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /reports/behind [get]
func (rc *ReportsController) GetBehindGroups(c *fiber.Ctx) error {
	behind, err := rc.Engine.BehindGroups()
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{
		"groups": behind,
	})
}

// GetTodayAlerts godoc
// @Summary Get today's alerts (behind groups, missing records, upcoming holidays)
// @Tags alerts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /alerts/today [get]
func (rc *ReportsController) GetTodayAlerts(c *fiber.Ctx) error {
	alerts, err := rc.Engine.TodayAlerts()
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{
		"alerts": alerts,
	})
}
