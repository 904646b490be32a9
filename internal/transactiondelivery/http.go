// Package transactiondelivery manages delivery layer of journal reads.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/hamrobank/ledger/internal/domain"
	"github.com/hamrobank/ledger/pkg/errorspkg"
	"github.com/hamrobank/ledger/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	GetByReference(ctx context.Context, ref string) (domain.Transaction, error)
	ListRecent(ctx context.Context, accountID int64, limit int32) ([]domain.Transaction, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type getRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type data struct {
	Transaction domain.Transaction `json:"transaction"`
}

// Get handles http request to get a transaction by id.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	transaction, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{transaction}})
}

type getByReferenceRequest struct {
	Reference string `uri:"reference" binding:"required"`
}

// GetByReference handles http request to get a transaction by reference number.
func (h *Handler) GetByReference(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getByReferenceRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	transaction, err := h.service.GetByReference(ctx, req.Reference)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{transaction}})
}

type listUri struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type listQuery struct {
	Limit int32 `form:"limit" binding:"omitempty,min=1,max=100"`
}

type dataTransactions struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// ListRecent handles http request to list recent transactions of an account.
func (h *Handler) ListRecent(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri listUri
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	var query listQuery
	if err := gctx.ShouldBindQuery(&query); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	transactions, err := h.service.ListRecent(ctx, uri.ID, query.Limit)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataTransactions{transactions}})
}

func bindErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}
