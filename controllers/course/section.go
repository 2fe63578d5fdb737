package controllers

import (
	"learnmart/database"
	"learnmart/middleware"
	"learnmart/models"
	"learnmart/validators"

	"github.com/gofiber/fiber/v2"
)

// CreateSection appends a section to a course and returns the full course
// tree, which the client replaces its local copy with.
func CreateSection(c *fiber.Ctx) error {
	if _, ok := requireInstructor(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructor only.", nil)
	}

	courseID := c.Params("id")
	var course models.Course
	if err := database.Database.Db.First(&course, "id = ?", courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData := new(struct {
		Name string `json:"name"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if errors := validators.ValidateSectionName(reqData.Name); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	// Append at the end of the course
	var maxPosition int
	database.Database.Db.Model(&models.Section{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(position), 0)").Scan(&maxPosition)

	section := models.Section{
		CourseID: courseID,
		Name:     reqData.Name,
		Position: maxPosition + 1,
	}
	if err := database.Database.Db.Create(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	full, err := loadCourse(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully!", full)
}

// RenameSection updates a section's name and returns the full course tree
func RenameSection(c *fiber.Ctx) error {
	if _, ok := requireInstructor(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructor only.", nil)
	}

	var section models.Section
	if err := database.Database.Db.First(&section, "id = ?", c.Params("id")).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	reqData := new(struct {
		Name string `json:"name"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if errors := validators.ValidateSectionName(reqData.Name); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	section.Name = reqData.Name
	if err := database.Database.Db.Save(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to rename section!", nil)
	}

	full, err := loadCourse(section.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section renamed successfully!", full)
}

// DeleteSection removes a section and all its lectures, returning the full
// course tree
func DeleteSection(c *fiber.Ctx) error {
	if _, ok := requireInstructor(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructor only.", nil)
	}

	var section models.Section
	if err := database.Database.Db.First(&section, "id = ?", c.Params("id")).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	courseID := c.Query("courseId")
	if courseID == "" {
		courseID = section.CourseID
	}

	tx := database.Database.Db.Begin()
	if err := tx.Where("section_id = ?", section.ID).Delete(&models.Lecture{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}
	if err := tx.Delete(&section).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	full, err := loadCourse(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", full)
}
