package controllers

import (
	"sort"

	"learnmart/database"
	"learnmart/middleware"
	"learnmart/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListCategories returns the active catalog categories
func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Where("active = ?", true).Order("name ASC").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

func publishedCourses(where string, args ...interface{}) ([]models.Course, error) {
	var courses []models.Course
	query := database.Database.Db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Sections.Lectures", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Reviews").
		Where("status = ?", models.StatusPublished).
		Order("created_at DESC")
	if where != "" {
		query = query.Where(where, args...)
	}
	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// CatalogPage returns the three course collections the catalog view is
// built from: the category's own courses, the marketplace best sellers and
// a sibling category's courses.
func CatalogPage(c *fiber.Ctx) error {
	categoryID := c.Params("id")

	var category models.Category
	if err := database.Database.Db.First(&category, "id = ? AND active = ?", categoryID, true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	selected, err := publishedCourses("category_id = ?", categoryID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	all, err := publishedCourses("")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	mostSold := make([]models.Course, len(all))
	copy(mostSold, all)
	sort.SliceStable(mostSold, func(i, j int) bool {
		return len(mostSold[i].Reviews) > len(mostSold[j].Reviews)
	})
	if len(mostSold) > 10 {
		mostSold = mostSold[:10]
	}

	var sibling []models.Course
	var other models.Category
	err = database.Database.Db.
		Where("id <> ? AND active = ?", categoryID, true).
		Order("name ASC").First(&other).Error
	if err == nil {
		sibling, err = publishedCourses("category_id = ?", other.ID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
	}

	page := models.CatalogPage{
		Selected: selected,
		MostSold: mostSold,
		Sibling:  sibling,
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Catalog page fetched successfully!", page)
}
