package controllers

import (
	"encoding/json"
	"strconv"

	"learnmart/config"
	"learnmart/database"
	"learnmart/middleware"
	"learnmart/models"
	"learnmart/utils"
	"learnmart/validators"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// loadCourse fetches a course with its full section/lecture tree and
// reviews, in server order
func loadCourse(id string) (*models.Course, error) {
	var course models.Course
	err := database.Database.Db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Sections.Lectures", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Reviews").
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func requireInstructor(c *fiber.Ctx) (string, bool) {
	role, _ := c.Locals("role").(string)
	if role != "INSTRUCTOR" {
		return "", false
	}
	name, _ := c.Locals("name").(string)
	return name, true
}

// metadataFormFromRequest builds the typed metadata form from a multipart
// request. Only fields present in the request appear in the returned
// presence map.
func metadataFormFromRequest(c *fiber.Ctx) (validators.CourseMetadataForm, map[string]bool) {
	present := make(map[string]bool)
	form := validators.CourseMetadataForm{}

	if mp, err := c.MultipartForm(); err == nil && mp != nil {
		for key := range mp.Value {
			present[key] = true
		}
		if _, err := c.FormFile("thumbnail"); err == nil {
			present["thumbnail"] = true
		}
	} else {
		c.Request().PostArgs().VisitAll(func(key, _ []byte) {
			present[string(key)] = true
		})
	}

	form.Name = c.FormValue("name")
	form.Description = c.FormValue("description")
	form.CategoryID = c.FormValue("category_id")
	form.Level = c.FormValue("level")
	form.Benefits = c.FormValue("benefits")
	if price, err := strconv.ParseFloat(c.FormValue("price"), 64); err == nil {
		form.Price = price
	}
	if raw := c.FormValue("tags"); raw != "" {
		_ = json.Unmarshal([]byte(raw), &form.Tags)
	}
	if raw := c.FormValue("instructions"); raw != "" {
		_ = json.Unmarshal([]byte(raw), &form.Instructions)
	}

	return form, present
}

// saveThumbnail stores an uploaded thumbnail, if any, and returns its URL
func saveThumbnail(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("thumbnail")
	if err != nil {
		return "", nil
	}
	name, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return "", err
	}
	return utils.GetFileURL(name), nil
}

// CreateCourse creates a new draft course from the Information-stage form
func CreateCourse(c *fiber.Ctx) error {
	instructor, ok := requireInstructor(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructor only.", nil)
	}

	form, _ := metadataFormFromRequest(c)
	_, thumbErr := c.FormFile("thumbnail")
	if errors := validators.ValidateCourseMetadata(form, thumbErr == nil); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	var category models.Category
	if err := database.Database.Db.First(&category, "id = ? AND active = ?", form.CategoryID, true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	thumbnailURL, err := saveThumbnail(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store thumbnail!", nil)
	}

	course := models.Course{
		Status:       models.StatusDraft,
		Name:         form.Name,
		Description:  form.Description,
		Instructor:   instructor,
		Price:        form.Price,
		CategoryID:   form.CategoryID,
		Level:        form.Level,
		Tags:         datatypes.NewJSONSlice(form.Tags),
		Benefits:     form.Benefits,
		ThumbnailURL: thumbnailURL,
		Instructions: datatypes.NewJSONSlice(form.Instructions),
	}
	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	full, err := loadCourse(course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", full)
}

// GetCourse returns a course with its full tree
func GetCourse(c *fiber.Ctx) error {
	course, err := loadCourse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// UpdateCourse applies a partial metadata patch. Only fields present in the
// request are touched.
func UpdateCourse(c *fiber.Ctx) error {
	if _, ok := requireInstructor(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructor only.", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, "id = ?", c.Params("id")).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	form, present := metadataFormFromRequest(c)

	if present["name"] {
		course.Name = form.Name
	}
	if present["description"] {
		course.Description = form.Description
	}
	if present["price"] {
		if form.Price < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"price": "Price must not be negative!"})
		}
		course.Price = form.Price
	}
	if present["category_id"] {
		var category models.Category
		if err := database.Database.Db.First(&category, "id = ? AND active = ?", form.CategoryID, true).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
		course.CategoryID = form.CategoryID
	}
	if present["level"] {
		if !validators.ValidLevel(form.Level) {
			return middleware.ValidationErrorResponse(c, map[string]string{"level": "Skill level must be Beginner, Intermediate or Advanced!"})
		}
		course.Level = form.Level
	}
	if present["benefits"] {
		course.Benefits = form.Benefits
	}
	if present["tags"] {
		course.Tags = datatypes.NewJSONSlice(form.Tags)
	}
	if present["instructions"] {
		course.Instructions = datatypes.NewJSONSlice(form.Instructions)
	}
	if present["thumbnail"] {
		thumbnailURL, err := saveThumbnail(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store thumbnail!", nil)
		}
		course.ThumbnailURL = thumbnailURL
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	full, err := loadCourse(course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", full)
}

// SaveExam stores the opaque exam payload on the course
func SaveExam(c *fiber.Ctx) error {
	if _, ok := requireInstructor(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructor only.", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, "id = ?", c.Params("id")).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	body := c.Body()
	if len(body) == 0 || !json.Valid(body) {
		return middleware.ValidationErrorResponse(c, map[string]string{"exam": "Exam payload must be valid JSON!"})
	}

	course.Exam = datatypes.JSON(append([]byte(nil), body...))
	course.HasExam = true
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save exam!", nil)
	}

	full, err := loadCourse(course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam saved successfully!", full)
}

// PublishCourse applies the full publish payload and the requested status.
// Publishing requires the course tree to satisfy the publishable invariant.
// Requesting the status the course already has is a no-op success.
func PublishCourse(c *fiber.Ctx) error {
	if _, ok := requireInstructor(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructor only.", nil)
	}

	course, err := loadCourse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	status := c.FormValue("status")
	if status != models.StatusDraft && status != models.StatusPublished {
		return middleware.ValidationErrorResponse(c, map[string]string{"status": "Status must be DRAFT or PUBLISHED!"})
	}

	if course.Status == status {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course already in requested state!", course)
	}

	if status == models.StatusPublished && !course.Publishable() {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"sections": "Every section needs at least one lecture before publishing!",
		})
	}

	form, present := metadataFormFromRequest(c)
	if present["name"] {
		course.Name = form.Name
	}
	if present["description"] {
		course.Description = form.Description
	}
	if present["price"] {
		course.Price = form.Price
	}
	if present["benefits"] {
		course.Benefits = form.Benefits
	}
	if present["category_id"] {
		course.CategoryID = form.CategoryID
	}
	if present["level"] {
		course.Level = form.Level
	}
	if present["tags"] {
		course.Tags = datatypes.NewJSONSlice(form.Tags)
	}
	if present["instructions"] {
		course.Instructions = datatypes.NewJSONSlice(form.Instructions)
	}
	if raw := c.FormValue("exam"); raw != "" && json.Valid([]byte(raw)) {
		course.Exam = datatypes.JSON(raw)
		course.HasExam = true
	}
	if present["thumbnail"] {
		thumbnailURL, err := saveThumbnail(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store thumbnail!", nil)
		}
		course.ThumbnailURL = thumbnailURL
	}
	course.Status = status

	// Save without the preloaded associations
	if err := database.Database.Db.Omit("Sections", "Reviews").Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	full, err := loadCourse(course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", full)
}
