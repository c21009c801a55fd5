package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	// Public routes
	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)

	// Protected routes
	auth.Use(AuthMiddleware)
	auth.Get("/me", MeAPI)
	auth.Post("/change-password", ChangePasswordAPI)
}

// AuthMiddleware validates the JWT and sets the staff identity on the request
// context. Every handler downstream reads the user from c.Locals("user");
// there is no ambient global session state.
func AuthMiddleware(c *fiber.Ctx) error {
	var tokenString string

	// First try cookie
	tokenString = c.Cookies("jwt_token")

	// If no cookie, try Authorization header
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "No token found")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	user := &models.User{
		ID:        claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		IsActive:  true,
		ClassIDs:  claims.ClassIDs,
	}
	if claims.DepartmentID != "" {
		deptID := claims.DepartmentID
		user.DepartmentID = &deptID
	}
	roles := make([]*models.Role, len(claims.Roles))
	for i, roleName := range claims.Roles {
		roles[i] = &models.Role{Name: roleName}
	}
	user.Roles = roles

	c.Locals("user", user)
	c.Locals("user_id", user.ID)
	return c.Next()
}

// RoleMiddleware checks if user has one of the required roles
func RoleMiddleware(allowedRoles ...models.RoleName) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		for _, allowed := range allowedRoles {
			if user.HasRole(allowed) {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Insufficient permissions")
	}
}

// CurrentUser returns the staff member attached by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) *models.User {
	return c.Locals("user").(*models.User)
}
