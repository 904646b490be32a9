// Package transferdelivery manages delivery layer of fund movements.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/hamrobank/ledger/internal/domain"
	"github.com/hamrobank/ledger/internal/middleware"
	"github.com/hamrobank/ledger/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, caller domain.Caller, req domain.TransferRequest) (domain.TransferTxResult, error)
	Deposit(ctx context.Context, caller domain.Caller, accountID int64, amount, description string) (domain.AdjustTxResult, error)
	Withdraw(ctx context.Context, caller domain.Caller, accountID int64, amount, description string) (domain.AdjustTxResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type transferRequest struct {
	SourceAccountID          int64  `json:"source_account_id" binding:"required,min=1"`
	DestinationAccountNumber string `json:"destination_account_number" binding:"required,accountnumber"`
	Amount                   string `json:"amount" binding:"required"`
	Description              string `json:"description"`
}

type transferData struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

// Create handles http request to transfer funds between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	caller := middleware.CallerFromRequest(gctx)

	arg := domain.TransferRequest{
		SourceAccountID:          req.SourceAccountID,
		DestinationAccountNumber: req.DestinationAccountNumber,
		Amount:                   req.Amount,
		Description:              req.Description,
	}

	result, err := h.service.Transfer(ctx, caller, arg)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(statusFor(err), web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transferData{result}})
}

type adjustUri struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type adjustRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

type adjustData struct {
	Transaction domain.AdjustTxResult `json:"transaction"`
}

// Deposit handles http request to credit an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.adjust(gctx, h.service.Deposit)
}

// Withdraw handles http request to debit an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.adjust(gctx, h.service.Withdraw)
}

func (h *Handler) adjust(gctx *gin.Context,
	op func(ctx context.Context, caller domain.Caller, accountID int64, amount, description string) (domain.AdjustTxResult, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri adjustUri
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	var req adjustRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	caller := middleware.CallerFromRequest(gctx)

	result, err := op(ctx, caller, uri.ID, req.Amount, req.Description)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(statusFor(err), web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: adjustData{result}})
}

func statusFor(err error) int {
	var ve *domain.ValidationError

	switch {
	case errors.As(err, &ve):
		if errors.Is(ve, domain.ErrAccountNotFound) && len(ve.Violations) == 1 {
			return http.StatusNotFound
		}

		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func bindErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}
