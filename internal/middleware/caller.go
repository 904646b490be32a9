package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hamrobank/ledger/internal/domain"
)

// PrincipalHeader carries the authenticated principal id, set by the
// gateway in front of this service.
const PrincipalHeader = "X-Principal-ID"

// CallerFromRequest assembles the explicit caller context for audit events.
// Authentication itself happens upstream; an absent or malformed principal
// header yields actor id 0.
func CallerFromRequest(gctx *gin.Context) domain.Caller {
	principalID, _ := strconv.ParseInt(gctx.GetHeader(PrincipalHeader), 10, 64)

	return domain.Caller{
		PrincipalID: principalID,
		IP:          gctx.ClientIP(),
		UserAgent:   gctx.Request.UserAgent(),
	}
}
