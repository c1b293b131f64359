package friend

import (
	"github.com/adu-coder/nineteen/pkg/config"
	"github.com/adu-coder/nineteen/pkg/domain/account"
	"github.com/adu-coder/nineteen/pkg/middleware"
	accountsvc "github.com/adu-coder/nineteen/pkg/service/account"
	authsvc "github.com/adu-coder/nineteen/pkg/service/auth"
	sharingsvc "github.com/adu-coder/nineteen/pkg/service/sharing"
	"github.com/adu-coder/nineteen/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the friend graph and friend view endpoints.
func Routes(
	app *fiber.App,
	accountSvc *accountsvc.Service,
	sharingSvc *sharingsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/users/:userId/friends", protected, ListFriends(accountSvc, authSvc))
	app.Post("/users/:userId/friends/requests", protected, SendRequest(accountSvc, authSvc))
	app.Get("/users/:userId/friends/requests", protected, ListIncoming(accountSvc, authSvc))
	app.Get("/users/:userId/friends/requests/sent", protected, ListOutgoing(accountSvc, authSvc))
	app.Post("/users/:userId/friends/requests/:requesterId/accept", protected, AcceptRequest(accountSvc, authSvc))
	app.Post("/users/:userId/friends/requests/:requesterId/decline", protected, DeclineRequest(accountSvc, authSvc))
	app.Delete("/users/:userId/friends/:friendId", protected, RemoveFriend(accountSvc, authSvc))
	app.Put("/users/:userId/friends/:friendId/sharing", protected, UpdateSharing(accountSvc, authSvc))
	app.Get("/users/:userId/friends/:friendId/transactions", protected, FriendTransactions(sharingSvc, authSvc))
	app.Get("/users/:userId/friends/:friendId/balance", protected, FriendBalance(sharingSvc, authSvc))
	app.Get("/users/:userId/friends/:friendId/analytics", protected, FriendAnalytics(sharingSvc, authSvc))
}

// ownerAndParam resolves the caller-owned :userId and the UUID path parameter name.
func ownerAndParam(c *fiber.Ctx, authSvc *authsvc.Service, name string) (userID, other uuid.UUID, ok bool, err error) {
	if userID, ok, err = common.RequireOwner(c, authSvc); !ok {
		return
	}
	other, ok, err = common.ParseUUIDParam(c, name)
	return
}

// ListFriends returns a Fiber handler listing the caller's friends.
// @Summary List friends
// @Tags friends
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{userId}/friends [get]
// @Security Bearer
func ListFriends(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.RequireOwner(c, authSvc)
		if !ok {
			return err
		}
		friends, err := accountSvc.ListFriends(c.Context(), userID)
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Friends", friends)
	}
}

// ListIncoming returns a Fiber handler listing pending requests sent to the caller.
// @Summary List incoming friend requests
// @Tags friends
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /users/{userId}/friends/requests [get]
// @Security Bearer
func ListIncoming(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.RequireOwner(c, authSvc)
		if !ok {
			return err
		}
		requests, err := accountSvc.ListIncomingRequests(c.Context(), userID)
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Incoming friend requests", requests)
	}
}

// ListOutgoing returns a Fiber handler listing the caller's pending sent requests.
// @Summary List sent friend requests
// @Tags friends
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /users/{userId}/friends/requests/sent [get]
// @Security Bearer
func ListOutgoing(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.RequireOwner(c, authSvc)
		if !ok {
			return err
		}
		requests, err := accountSvc.ListOutgoingRequests(c.Context(), userID)
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Sent friend requests", requests)
	}
}

// SendRequest returns a Fiber handler that sends a friend request.
// @Summary Send friend request
// @Tags friends
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body FriendRequestInput true "Target account"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /users/{userId}/friends/requests [post]
// @Security Bearer
func SendRequest(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.RequireOwner(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[FriendRequestInput](c)
		if input == nil {
			return err
		}
		friendID := uuid.MustParse(input.FriendID)
		if err := accountSvc.SendFriendRequest(c.Context(), userID, friendID); err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Friend request sent", fiber.Map{
			"friendId": friendID,
		})
	}
}

// AcceptRequest returns a Fiber handler that accepts a pending request.
// @Summary Accept friend request
// @Tags friends
// @Produce json
// @Param userId path string true "User ID"
// @Param requesterId path string true "Requester ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{userId}/friends/requests/{requesterId}/accept [post]
// @Security Bearer
func AcceptRequest(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, requesterID, ok, err := ownerAndParam(c, authSvc, "requesterId")
		if !ok {
			return err
		}
		if err := accountSvc.AcceptFriendRequest(c.Context(), userID, requesterID); err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Friend request accepted", fiber.Map{
			"friendId": requesterID,
		})
	}
}

// DeclineRequest returns a Fiber handler that declines a pending request.
// @Summary Decline friend request
// @Tags friends
// @Produce json
// @Param userId path string true "User ID"
// @Param requesterId path string true "Requester ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{userId}/friends/requests/{requesterId}/decline [post]
// @Security Bearer
func DeclineRequest(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, requesterID, ok, err := ownerAndParam(c, authSvc, "requesterId")
		if !ok {
			return err
		}
		if err := accountSvc.DeclineFriendRequest(c.Context(), userID, requesterID); err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Friend request declined", nil)
	}
}

// RemoveFriend returns a Fiber handler that unlinks a friend.
// @Summary Remove friend
// @Tags friends
// @Produce json
// @Param userId path string true "User ID"
// @Param friendId path string true "Friend ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{userId}/friends/{friendId} [delete]
// @Security Bearer
func RemoveFriend(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, friendID, ok, err := ownerAndParam(c, authSvc, "friendId")
		if !ok {
			return err
		}
		if err := accountSvc.RemoveFriend(c.Context(), userID, friendID); err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Friend removed", nil)
	}
}

// UpdateSharing returns a Fiber handler that changes the grants given to one friend.
// @Summary Update per-friend sharing
// @Tags friends
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param friendId path string true "Friend ID"
// @Param request body SharingInput true "Grants"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{userId}/friends/{friendId}/sharing [put]
// @Security Bearer
func UpdateSharing(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, friendID, ok, err := ownerAndParam(c, authSvc, "friendId")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[SharingInput](c)
		if input == nil {
			return err
		}
		owner, err := accountSvc.UpdateFriendSharing(c.Context(), userID, friendID, account.SharingPatch{
			Transactions: input.Transactions,
			Balance:      input.Balance,
		})
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Sharing updated", SharingDTO{
			FriendID:     friendID.String(),
			Transactions: owner.TransactionShareFriendIDs.Has(friendID),
			Balance:      owner.BalanceShareFriendIDs.Has(friendID),
		})
	}
}

// FriendTransactions returns a Fiber handler for a friend's recent transactions.
// The caller is the viewer and :friendId is the owner being viewed.
// @Summary View a friend's transactions
// @Tags friends
// @Produce json
// @Param userId path string true "Viewer ID"
// @Param friendId path string true "Owner ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{userId}/friends/{friendId}/transactions [get]
// @Security Bearer
func FriendTransactions(sharingSvc *sharingsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewerID, ownerID, ok, err := ownerAndParam(c, authSvc, "friendId")
		if !ok {
			return err
		}
		txs, err := sharingSvc.FriendTransactions(c.Context(), viewerID, ownerID)
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Friend transactions", txs)
	}
}

// FriendBalance returns a Fiber handler for a friend's all-time totals.
// @Summary View a friend's balance
// @Tags friends
// @Produce json
// @Param userId path string true "Viewer ID"
// @Param friendId path string true "Owner ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{userId}/friends/{friendId}/balance [get]
// @Security Bearer
func FriendBalance(sharingSvc *sharingsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewerID, ownerID, ok, err := ownerAndParam(c, authSvc, "friendId")
		if !ok {
			return err
		}
		b, err := sharingSvc.FriendBalance(c.Context(), viewerID, ownerID)
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Friend balance", b)
	}
}

// FriendAnalytics returns a Fiber handler for a friend's per-tag expense breakdown.
// @Summary View a friend's analytics
// @Tags friends
// @Produce json
// @Param userId path string true "Viewer ID"
// @Param friendId path string true "Owner ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{userId}/friends/{friendId}/analytics [get]
// @Security Bearer
func FriendAnalytics(sharingSvc *sharingsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewerID, ownerID, ok, err := ownerAndParam(c, authSvc, "friendId")
		if !ok {
			return err
		}
		a, err := sharingSvc.FriendAnalytics(c.Context(), viewerID, ownerID)
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Friend analytics", a)
	}
}
