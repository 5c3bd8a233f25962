package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aom0101z1/gestion-ventas-sub001/config"
	"github.com/aom0101z1/gestion-ventas-sub001/models"
	"github.com/aom0101z1/gestion-ventas-sub001/utils"
)

type GroupsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewGroupsController(db *gorm.DB, cfg *config.Config) *GroupsController {
	return &GroupsController{DB: db, Cfg: cfg}
}

type GroupInput struct {
	Name         string   `json:"name" validate:"required"`
	ScheduleType string   `json:"schedule_type" validate:"omitempty,oneof=intensive regular weekend"`
	Days         []string `json:"days" validate:"required,min=1"`
	StartDate    string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	StartTime    string   `json:"start_time" validate:"omitempty,datetime=15:04"`
	Book         int      `json:"book" validate:"omitempty,min=1,max=5"`
	TeacherID    uint     `json:"teacher_id"`
	Status       string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ListGroups godoc
// @Summary List all groups
// @Tags groups
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /groups [get]
func (gc *GroupsController) ListGroups(c *fiber.Ctx) error {
	var groups []models.Group
	query := gc.DB
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&groups).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	return c.JSON(fiber.Map{
		"groups": groups,
	})
}

// GetGroup godoc
// @Summary Get one group
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /groups/{id} [get]
func (gc *GroupsController) GetGroup(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var group models.Group
	if err := gc.DB.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Group not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	return c.JSON(fiber.Map{
		"group": group,
	})
}

// CreateGroup godoc
// @Summary Create a group
// @Tags groups
// @Accept json
// @Produce json
// @Param group body GroupInput true "Group data"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /groups [post]
func (gc *GroupsController) CreateGroup(c *fiber.Ctx) error {
	var input GroupInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	group := models.Group{
		Name:         input.Name,
		ScheduleType: input.ScheduleType,
		Days:         strings.Join(input.Days, ","),
		StartDate:    input.StartDate,
		StartTime:    input.StartTime,
		Book:         input.Book,
		TeacherID:    input.TeacherID,
		Status:       input.Status,
	}
	if group.ScheduleType == "" {
		group.ScheduleType = "regular"
	}
	if group.Book == 0 {
		group.Book = 1
	}
	if group.Status == "" {
		group.Status = "active"
	}

	if err := gc.DB.Create(&group).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create group",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Group created",
		"group":   group,
	})
}

// UpdateGroup godoc
// @Summary Update a group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param group body GroupInput true "Group data"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /groups/{id} [put]
func (gc *GroupsController) UpdateGroup(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var group models.Group
	if err := gc.DB.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Group not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var input GroupInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	group.Name = input.Name
	group.Days = strings.Join(input.Days, ",")
	if input.ScheduleType != "" {
		group.ScheduleType = input.ScheduleType
	}
	if input.StartDate != "" {
		group.StartDate = input.StartDate
	}
	if input.StartTime != "" {
		group.StartTime = input.StartTime
	}
	if input.Book != 0 {
		group.Book = input.Book
	}
	if input.TeacherID != 0 {
		group.TeacherID = input.TeacherID
	}
	if input.Status != "" {
		group.Status = input.Status
	}

	if err := gc.DB.Save(&group).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update group",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Group updated",
		"group":   group,
	})
}
