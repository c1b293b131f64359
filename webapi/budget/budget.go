package budget

import (
	"github.com/adu-coder/nineteen/pkg/config"
	"github.com/adu-coder/nineteen/pkg/middleware"
	authsvc "github.com/adu-coder/nineteen/pkg/service/auth"
	budgetsvc "github.com/adu-coder/nineteen/pkg/service/budget"
	"github.com/adu-coder/nineteen/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the budget endpoints.
func Routes(
	app *fiber.App,
	budgetSvc *budgetsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/users/:userId/budgets", protected, ListBudgets(budgetSvc, authSvc))
	app.Post("/users/:userId/budgets", protected, CreateBudget(budgetSvc, authSvc))
	app.Put("/users/:userId/budgets/:budgetId", protected, UpdateBudget(budgetSvc, authSvc))
	app.Delete("/users/:userId/budgets/:budgetId", protected, DeleteBudget(budgetSvc, authSvc))
}

// ListBudgets returns a Fiber handler listing the caller's budgets with current spending.
// @Summary List budgets with spending
// @Tags budgets
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /users/{userId}/budgets [get]
// @Security Bearer
func ListBudgets(budgetSvc *budgetsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.RequireOwner(c, authSvc)
		if !ok {
			return err
		}
		list, err := budgetSvc.ListWithSpending(c.Context(), userID)
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budgets", list)
	}
}

// CreateBudget returns a Fiber handler that creates an active budget.
// @Summary Create budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body CreateBudgetInput true "Budget"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /users/{userId}/budgets [post]
// @Security Bearer
func CreateBudget(budgetSvc *budgetsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.RequireOwner(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[CreateBudgetInput](c)
		if input == nil {
			return err
		}
		sp, err := budgetSvc.Create(c.Context(), userID, input.toDraft())
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Budget created", sp)
	}
}

// UpdateBudget returns a Fiber handler for a partial budget update.
// @Summary Update budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param budgetId path string true "Budget ID"
// @Param request body UpdateBudgetInput true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /users/{userId}/budgets/{budgetId} [put]
// @Security Bearer
func UpdateBudget(budgetSvc *budgetsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.RequireOwner(c, authSvc)
		if !ok {
			return err
		}
		budgetID, ok, err := common.ParseUUIDParam(c, "budgetId")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateBudgetInput](c)
		if input == nil {
			return err
		}
		b, err := budgetSvc.Update(c.Context(), userID, budgetID, input.toPatch())
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget updated", b)
	}
}

// DeleteBudget returns a Fiber handler that removes a budget.
// @Summary Delete budget
// @Tags budgets
// @Produce json
// @Param userId path string true "User ID"
// @Param budgetId path string true "Budget ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{userId}/budgets/{budgetId} [delete]
// @Security Bearer
func DeleteBudget(budgetSvc *budgetsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.RequireOwner(c, authSvc)
		if !ok {
			return err
		}
		budgetID, ok, err := common.ParseUUIDParam(c, "budgetId")
		if !ok {
			return err
		}
		if err := budgetSvc.Delete(c.Context(), userID, budgetID); err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget deleted", nil)
	}
}
