package controllers

import (
	"strings"

	"learnmart/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IssueToken mints a development JWT for the stub server. The real
// marketplace owns authentication; this endpoint only exists so the client
// can exercise authenticated flows locally.
func IssueToken(c *fiber.Ctx) error {
	reqData := new(struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors := make(map[string]string)
	if strings.TrimSpace(reqData.Name) == "" {
		errors["name"] = "Name is required!"
	}
	if reqData.Role != "STUDENT" && reqData.Role != "INSTRUCTOR" {
		errors["role"] = "Role must be STUDENT or INSTRUCTOR!"
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	token, err := middleware.GenerateJWT(uuid.NewString(), reqData.Name, reqData.Role, reqData.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token issued successfully!", fiber.Map{
		"token": token,
	})
}
