package transaction

import (
	"github.com/adu-coder/nineteen/pkg/config"
	"github.com/adu-coder/nineteen/pkg/middleware"
	authsvc "github.com/adu-coder/nineteen/pkg/service/auth"
	transactionsvc "github.com/adu-coder/nineteen/pkg/service/transaction"
	"github.com/adu-coder/nineteen/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the owner's ledger endpoints.
func Routes(
	app *fiber.App,
	txSvc *transactionsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/users/:userId/transactions", protected, ListTransactions(txSvc, authSvc))
	app.Post("/users/:userId/transactions", protected, CreateTransaction(txSvc, authSvc))
	app.Put("/users/:userId/transactions/:transactionId", protected, UpdateTransaction(txSvc, authSvc))
	app.Delete("/users/:userId/transactions/:transactionId", protected, DeleteTransaction(txSvc, authSvc))
}

// ListTransactions returns a Fiber handler listing the caller's transactions newest first.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /users/{userId}/transactions [get]
// @Security Bearer
func ListTransactions(txSvc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.RequireOwner(c, authSvc)
		if !ok {
			return err
		}
		txs, err := txSvc.List(c.Context(), userID)
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", txs)
	}
}

// CreateTransaction returns a Fiber handler that records a transaction. Replaying a
// request with an existing client ID answers 200 with the stored record.
// @Summary Create transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body CreateTransactionInput true "Transaction"
// @Success 201 {object} common.Response
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /users/{userId}/transactions [post]
// @Security Bearer
func CreateTransaction(txSvc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.RequireOwner(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[CreateTransactionInput](c)
		if input == nil {
			return err
		}
		tx, created, err := txSvc.Create(c.Context(), userID, input.toDraft())
		if err != nil {
			return common.ServiceError(c, err)
		}
		if !created {
			return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction already exists", tx)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction created", tx)
	}
}

// UpdateTransaction returns a Fiber handler for a partial transaction update.
// @Summary Update transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param transactionId path string true "Transaction ID"
// @Param request body UpdateTransactionInput true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{userId}/transactions/{transactionId} [put]
// @Security Bearer
func UpdateTransaction(txSvc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.RequireOwner(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateTransactionInput](c)
		if input == nil {
			return err
		}
		tx, err := txSvc.Update(c.Context(), userID, c.Params("transactionId"), input.toPatch())
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction updated", tx)
	}
}

// DeleteTransaction returns a Fiber handler that removes a transaction.
// @Summary Delete transaction
// @Tags transactions
// @Produce json
// @Param userId path string true "User ID"
// @Param transactionId path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{userId}/transactions/{transactionId} [delete]
// @Security Bearer
func DeleteTransaction(txSvc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.RequireOwner(c, authSvc)
		if !ok {
			return err
		}
		if err := txSvc.Delete(c.Context(), userID, c.Params("transactionId")); err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction deleted", nil)
	}
}
