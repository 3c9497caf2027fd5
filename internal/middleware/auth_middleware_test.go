package middleware

import (
	"net/http/httptest"
	"testing"

	"go-warehouse-api/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appWithRole(role model.Role, op Operation) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(actorKey, model.Actor{ID: uuid.New(), Role: role})
		return c.Next()
	})
	app.Get("/x", RequireOperation(op), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})
	return app
}

func statusFor(t *testing.T, role model.Role, op Operation) int {
	t.Helper()
	resp, err := appWithRole(role, op).Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestOperationPolicy(t *testing.T) {
	tests := []struct {
		name string
		role model.Role
		op   Operation
		want int
	}{
		{"admin manages users", model.RoleAdmin, OpUserManagement, 200},
		{"warehouse staff cannot manage users", model.RoleWarehouseStaff, OpUserManagement, 403},

		{"warehouse staff edits master data", model.RoleWarehouseStaff, OpMasterData, 200},
		{"admin stays out of master data", model.RoleAdmin, OpMasterData, 403},
		{"director stays out of master data", model.RoleDirector, OpMasterData, 403},

		{"production staff files requests", model.RoleProductionStaff, OpRequestCreate, 200},
		{"warehouse staff cannot file requests", model.RoleWarehouseStaff, OpRequestCreate, 403},

		{"warehouse staff views requests", model.RoleWarehouseStaff, OpRequestView, 200},
		{"production staff views requests", model.RoleProductionStaff, OpRequestView, 200},
		{"director cannot view requests", model.RoleDirector, OpRequestView, 403},

		{"warehouse staff approves", model.RoleWarehouseStaff, OpRequestApproval, 200},
		{"admin approves", model.RoleAdmin, OpRequestApproval, 200},
		{"production staff cannot approve", model.RoleProductionStaff, OpRequestApproval, 403},

		{"director reads reports", model.RoleDirector, OpReports, 200},
		{"admin cannot read reports", model.RoleAdmin, OpReports, 403},
		{"warehouse staff cannot read reports", model.RoleWarehouseStaff, OpReports, 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(t, tt.role, tt.op))
		})
	}
}
