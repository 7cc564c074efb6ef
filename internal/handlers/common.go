package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/EL-K-Code/recipe-app-api/internal/types"
	"github.com/EL-K-Code/recipe-app-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// getUserID extracts the authenticated user id from context (set by the auth
// middleware)
func getUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user not found in context")
	}
	return userID, nil
}

// parseIDParam parses the :id path parameter. A non-numeric id is treated
// the same as a missing row.
func parseIDParam(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, types.NewNotFoundError("resource")
	}
	return id, nil
}

// parseIDList extracts numeric ids from a query parameter, supporting both
// repeated keys and comma-separated values.
func parseIDList(c *fiber.Ctx, key string) []uint64 {
	idMap := make(map[uint64]struct{})

	args := c.Context().QueryArgs()
	args.VisitAll(func(k, value []byte) {
		if string(k) != key {
			return
		}
		for _, v := range strings.Split(string(value), ",") {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				continue
			}
			idMap[id] = struct{}{}
		}
	})

	if len(idMap) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(idMap))
	for id := range idMap {
		ids = append(ids, id)
	}
	return ids
}

// serviceError maps a service failure onto the error envelope. Typed errors
// keep their code and type; anything else is an opaque 500 with the detail
// logged, never surfaced.
func serviceError(c *fiber.Ctx, err error) error {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return utils.ErrorResponse(c, ce.Message, ce.Code, ce.Type)
	}

	zap.L().Error("internal service error",
		zap.String("url", c.OriginalURL()),
		zap.Error(err),
	)
	return utils.ErrorResponse(c, "internal server error", fiber.StatusInternalServerError, "internal")
}
