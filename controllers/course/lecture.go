package controllers

import (
	"strconv"

	"learnmart/config"
	"learnmart/database"
	"learnmart/middleware"
	"learnmart/models"
	"learnmart/utils"
	"learnmart/validators"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// loadSection fetches a section with its lectures in server order
func loadSection(id string) (*models.Section, error) {
	var section models.Section
	err := database.Database.Db.
		Preload("Lectures", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&section, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// CreateLecture adds a lecture to a section and returns the updated section
func CreateLecture(c *fiber.Ctx) error {
	if _, ok := requireInstructor(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructor only.", nil)
	}

	sectionID := c.Params("id")
	var section models.Section
	if err := database.Database.Db.First(&section, "id = ?", sectionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	videoFile, videoErr := c.FormFile("video")
	duration, _ := strconv.ParseFloat(c.FormValue("duration"), 64)

	form := validators.LectureForm{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Duration:    duration,
	}
	if videoErr == nil {
		form.VideoPath = videoFile.Filename
	}
	if errors := validators.ValidateLecture(form); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	videoName, err := utils.SaveUploadedFile(videoFile, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store video!", nil)
	}

	supplementURL := ""
	if supplementFile, err := c.FormFile("supplement"); err == nil {
		name, err := utils.SaveUploadedFile(supplementFile, config.AppConfig.UploadDir)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store supplement!", nil)
		}
		supplementURL = utils.GetFileURL(name)
	}

	var maxPosition int
	database.Database.Db.Model(&models.Lecture{}).
		Where("section_id = ?", sectionID).
		Select("COALESCE(MAX(position), 0)").Scan(&maxPosition)

	lecture := models.Lecture{
		SectionID:     sectionID,
		Title:         form.Title,
		Description:   form.Description,
		VideoURL:      utils.GetFileURL(videoName),
		Duration:      duration,
		SupplementURL: supplementURL,
		Position:      maxPosition + 1,
	}
	if err := database.Database.Db.Create(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lecture!", nil)
	}

	full, err := loadSection(sectionID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch section!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture created successfully!", full)
}

// UpdateLecture applies a partial lecture patch and returns the updated
// section. Only fields present in the request are touched; removeSupplement
// detaches the supplement without touching the video.
func UpdateLecture(c *fiber.Ctx) error {
	if _, ok := requireInstructor(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructor only.", nil)
	}

	sectionID := c.Params("sectionId")
	var lecture models.Lecture
	if err := database.Database.Db.First(&lecture, "id = ? AND section_id = ?", c.Params("id"), sectionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	present := make(map[string]bool)
	if mp, err := c.MultipartForm(); err == nil && mp != nil {
		for key := range mp.Value {
			present[key] = true
		}
	} else {
		c.Request().PostArgs().VisitAll(func(key, _ []byte) {
			present[string(key)] = true
		})
	}

	if present["title"] {
		if title := c.FormValue("title"); title != "" {
			lecture.Title = title
		}
	}
	if present["description"] {
		if description := c.FormValue("description"); description != "" {
			lecture.Description = description
		}
	}
	if present["duration"] {
		if duration, err := strconv.ParseFloat(c.FormValue("duration"), 64); err == nil && duration >= 0 {
			lecture.Duration = duration
		}
	}
	if videoFile, err := c.FormFile("video"); err == nil {
		name, err := utils.SaveUploadedFile(videoFile, config.AppConfig.UploadDir)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store video!", nil)
		}
		lecture.VideoURL = utils.GetFileURL(name)
	}
	if supplementFile, err := c.FormFile("supplement"); err == nil {
		name, err := utils.SaveUploadedFile(supplementFile, config.AppConfig.UploadDir)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store supplement!", nil)
		}
		lecture.SupplementURL = utils.GetFileURL(name)
	}
	if c.FormValue("removeSupplement") == "true" {
		lecture.SupplementURL = ""
	}

	if err := database.Database.Db.Save(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture!", nil)
	}

	full, err := loadSection(sectionID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch section!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture updated successfully!", full)
}

// DeleteLecture removes a lecture and returns the updated section
func DeleteLecture(c *fiber.Ctx) error {
	if _, ok := requireInstructor(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructor only.", nil)
	}

	sectionID := c.Params("sectionId")
	var lecture models.Lecture
	if err := database.Database.Db.First(&lecture, "id = ? AND section_id = ?", c.Params("id"), sectionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	if err := database.Database.Db.Delete(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lecture!", nil)
	}

	full, err := loadSection(sectionID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch section!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture deleted successfully!", full)
}
