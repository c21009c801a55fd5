package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/config"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/database"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/validation"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func LoginAPI(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  validation.FormatErrors(err),
		})
	}

	db := config.GetDB()
	user, err := database.GetUserByEmail(db, req.Email)
	if err != nil || !CheckPasswordHash(req.Password, user.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	roles, err := database.GetUserRoles(db, user.ID)
	if err != nil {
		config.LogError("auth", "LoginAPI", "load roles", user.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load user roles")
	}
	user.Roles = roles

	classIDs, err := database.GetUserClassIDs(db, user.ID)
	if err != nil {
		config.LogError("auth", "LoginAPI", "load classes", user.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load class assignments")
	}
	user.ClassIDs = classIDs

	claims := JWTClaims{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		ClassIDs:  classIDs,
	}
	for _, r := range roles {
		claims.Roles = append(claims.Roles, r.Name)
	}
	if user.DepartmentID != nil {
		claims.DepartmentID = *user.DepartmentID
	}

	token, err := GenerateJWT(claims)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate token")
	}

	sessionID := GenerateSessionID()
	if err := database.CreateSession(db, sessionID, user.ID, GetSessionExpiry()); err != nil {
		config.LogError("auth", "LoginAPI", "create session", user.ID, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  GetSessionExpiry(),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "session_id",
		Value:    sessionID.String(),
		Expires:  GetSessionExpiry(),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	if sessionID := c.Cookies("session_id"); sessionID != "" {
		if err := database.DeleteSession(config.GetDB(), sessionID); err != nil {
			config.LogError("auth", "LogoutAPI", "delete session", sessionID, err)
		}
	}

	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "jwt_token", Value: "", Expires: expired, HTTPOnly: true})
	c.Cookie(&fiber.Cookie{Name: "session_id", Value: "", Expires: expired, HTTPOnly: true})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

func MeAPI(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"user":    CurrentUser(c),
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func ChangePasswordAPI(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  validation.FormatErrors(err),
		})
	}

	db := config.GetDB()
	user := CurrentUser(c)

	stored, err := database.GetUserByID(db, user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}
	if !CheckPasswordHash(req.CurrentPassword, stored.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Current password is incorrect")
	}

	if err := database.UpdateUserPassword(db, user.ID, req.NewPassword); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update password")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password changed successfully",
	})
}
