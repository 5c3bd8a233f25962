package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aom0101z1/gestion-ventas-sub001/schedule"
	"github.com/aom0101z1/gestion-ventas-sub001/utils"
)

type ProgressController struct {
	Engine *schedule.Engine
}

func NewProgressController(engine *schedule.Engine) *ProgressController {
	return &ProgressController{Engine: engine}
}

type ProgressInput struct {
	Units             []int  `json:"units" validate:"dive,min=1,max=52"`
	CompletedExpected bool   `json:"completed_expected"`
	Notes             string `json:"notes"`
}

// GetGroupProgress godoc
// @Summary Get all progress records for a group
// @Tags progress
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /groups/{id}/progress [get]
func (pc *ProgressController) GetGroupProgress(c *fiber.Ctx) error {
	records, err := pc.Engine.GroupProgressView(c.Params("id"))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{
		"group_id": c.Params("id"),
		"records":  records,
	})
}

// GetExpectedProgress godoc
// @Summary Get expected vs actual progress for a group
// @Tags progress
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /groups/{id}/expected [get]
func (pc *ProgressController) GetExpectedProgress(c *fiber.Ctx) error {
	group, err := pc.Engine.GetGroup(c.Params("id"))
	if err != nil {
		return engineError(c, err)
	}
	progress, err := pc.Engine.ExpectedProgress(group)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{
		"group":    group,
		"progress": progress,
	})
}

// SaveProgress godoc
// @Summary Record what a group covered on a date
// @Tags progress
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param date path string true "Class date (YYYY-MM-DD)"
// @Param record body ProgressInput true "Progress data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /groups/{id}/progress/{date} [post]
func (pc *ProgressController) SaveProgress(c *fiber.Ctx) error {
	var input ProgressInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	units := make([]schedule.UnitEntry, 0, len(input.Units))
	for _, u := range input.Units {
		units = append(units, schedule.UnitEntry{Unit: u})
	}

	record, err := pc.Engine.SaveProgress(c.Params("id"), c.Params("date"), schedule.ProgressRecord{
		UnitsCovered:      units,
		CompletedExpected: input.CompletedExpected,
		Notes:             input.Notes,
	})
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Progress saved",
		"record":  record,
	})
}

// DeleteProgress godoc
// @Summary Delete the progress record of a group on a date
// @Tags progress
// @Produce json
// @Param id path int true "Group ID"
// @Param date path string true "Class date (YYYY-MM-DD)"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /groups/{id}/progress/{date} [delete]
func (pc *ProgressController) DeleteProgress(c *fiber.Ctx) error {
	if err := pc.Engine.DeleteProgress(c.Params("id"), c.Params("date")); err != nil {
		return engineError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
