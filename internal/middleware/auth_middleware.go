package middleware

import (
	"strings"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const actorKey = "actor"

// RequireAuth validates the JWT, checks the token version against the
// database, and stores the resolved identity in Locals. Handlers never read
// the token themselves.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Check strict session against DB
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "Account is deactivated"})
		}
		if user.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		c.Locals(actorKey, model.Actor{
			ID:       user.ID,
			Username: user.Username,
			Name:     user.Name,
			Role:     user.Role,
		})

		return c.Next()
	}
}

// ActorFromContext returns the identity stored by RequireAuth
func ActorFromContext(c *fiber.Ctx) model.Actor {
	actor, _ := c.Locals(actorKey).(model.Actor)
	return actor
}

// Operation names the route groups the policy table gates
type Operation string

const (
	OpUserManagement  Operation = "user_management"
	OpMasterData      Operation = "master_data"
	OpIncomingStock   Operation = "incoming_stock"
	OpOutgoingStock   Operation = "outgoing_stock"
	OpRequestCreate   Operation = "request_create"
	OpRequestView     Operation = "request_view"
	OpRequestApproval Operation = "request_approval"
	OpReports         Operation = "reports"
)

// policy maps each operation group to the roles allowed to perform it. Admin
// manages accounts and approves requisitions but stays out of the day-to-day
// warehouse and reporting screens.
var policy = map[Operation][]model.Role{
	OpUserManagement:  {model.RoleAdmin},
	OpMasterData:      {model.RoleWarehouseStaff},
	OpIncomingStock:   {model.RoleWarehouseStaff},
	OpOutgoingStock:   {model.RoleWarehouseStaff},
	OpRequestCreate:   {model.RoleProductionStaff},
	OpRequestView:     {model.RoleProductionStaff, model.RoleWarehouseStaff},
	OpRequestApproval: {model.RoleWarehouseStaff, model.RoleAdmin},
	OpReports:         {model.RoleDirector},
}

// RequireOperation checks the authenticated user's role against the policy
// table. Must run after RequireAuth.
func RequireOperation(op Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := ActorFromContext(c)
		for _, role := range policy[op] {
			if actor.Role == role {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{
			"error": "You do not have permission to access this page",
		})
	}
}
