package transferdelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/hamrobank/ledger/internal/accountdelivery"
	"github.com/hamrobank/ledger/internal/domain"
	"github.com/hamrobank/ledger/internal/middleware"
	"github.com/hamrobank/ledger/pkg/errorspkg"
)

func setupRouter(t *testing.T, h *Handler) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		require.NoError(t, v.RegisterValidation("accountnumber", accountdelivery.ValidAccountNumber))
	}

	router := gin.New()
	router.POST("/transfers", h.Create)
	router.POST("/accounts/:id/deposits", h.Deposit)
	router.POST("/accounts/:id/withdrawals", h.Withdraw)

	return router
}

func performRequest(t *testing.T, router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(method, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set(middleware.PrincipalHeader, "42")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func testResult() domain.TransferTxResult {
	createdAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	sourceID, destinationID := int64(1), int64(2)

	return domain.TransferTxResult{
		Transaction: domain.Transaction{
			ID:                   9,
			Type:                 domain.TypeTransfer,
			Amount:               "150",
			SourceAccountID:      &sourceID,
			DestinationAccountID: &destinationID,
			Status:               domain.StatusCompleted,
			ReferenceNumber:      "TXN17250000000004F2A9C1B",
			CreatedAt:            createdAt,
		},
		SourceAccount: domain.Account{
			ID: 1, AccountNumber: "1111111111", OwnerID: 101,
			Balance: "350", Status: domain.StatusActive, CreatedAt: createdAt,
		},
		DestinationAccount: domain.Account{
			ID: 2, AccountNumber: "2222222222", OwnerID: 102,
			Balance: "350", Status: domain.StatusActive, CreatedAt: createdAt,
		},
	}
}

func requireBodyMatchTransfer(t *testing.T, body io.Reader, want domain.TransferTxResult) {
	t.Helper()

	var got struct {
		Data struct {
			Transfer domain.TransferTxResult `json:"transfer"`
		} `json:"data"`
	}

	require.NoError(t, json.NewDecoder(body).Decode(&got))

	if diff := cmp.Diff(want, got.Data.Transfer); diff != "" {
		t.Errorf("transfer mismatch (-want +got):\n%s", diff)
	}
}

func TestCreate(t *testing.T) {
	caller := domain.Caller{PrincipalID: 42}

	validBody := gin.H{
		"source_account_id":          1,
		"destination_account_number": "2222222222",
		"amount":                     "150",
		"description":                "rent",
	}

	testCases := []struct {
		name          string
		body          gin.H
		buildStubs    func(service *MockService)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			body: validBody,
			buildStubs: func(service *MockService) {
				arg := domain.TransferRequest{
					SourceAccountID:          1,
					DestinationAccountNumber: "2222222222",
					Amount:                   "150",
					Description:              "rent",
				}
				service.EXPECT().Transfer(gomock.Any(), gomock.Eq(caller), gomock.Eq(arg)).
					Times(1).Return(testResult(), nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				requireBodyMatchTransfer(t, recorder.Body, testResult())
			},
		},
		{
			name: "MissingAmount",
			body: gin.H{
				"source_account_id":          1,
				"destination_account_number": "2222222222",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
				require.Contains(t, recorder.Body.String(), "Amount is required")
			},
		},
		{
			name: "ShortAccountNumber",
			body: gin.H{
				"source_account_id":          1,
				"destination_account_number": "12345",
				"amount":                     "150",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
				require.Contains(t, recorder.Body.String(), "must be exactly 10 digits")
			},
		},
		{
			name: "InsufficientFunds",
			body: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).
					Return(domain.TransferTxResult{},
						&domain.ValidationError{Violations: []error{domain.ErrInsufficientFunds}})
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "DestinationNotFound",
			body: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).
					Return(domain.TransferTxResult{}, &domain.ValidationError{
						Violations: []error{fmt.Errorf("destination: %w", domain.ErrAccountNotFound)},
					})
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
		{
			name: "NotFoundAmongOtherViolationsIsBadRequest",
			body: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).
					Return(domain.TransferTxResult{}, &domain.ValidationError{
						Violations: []error{
							fmt.Errorf("destination: %w", domain.ErrAccountNotFound),
							domain.ErrNonPositiveAmount,
						},
					})
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "Conflict",
			body: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).
					Return(domain.TransferTxResult{},
						fmt.Errorf("%w: %w", domain.ErrTransferFailed, domain.ErrConcurrentModification))
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusConflict, recorder.Code)
			},
		},
		{
			name: "InternalError",
			body: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).
					Return(domain.TransferTxResult{}, errorspkg.ErrInternal)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			router := setupRouter(t, NewHandler(service))
			recorder := performRequest(t, router, http.MethodPost, "/transfers", tc.body)

			tc.checkResponse(t, recorder)
		})
	}
}

func TestAdjust(t *testing.T) {
	caller := domain.Caller{PrincipalID: 42}

	testCases := []struct {
		name          string
		url           string
		body          gin.H
		buildStubs    func(service *MockService)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "DepositOK",
			url:  "/accounts/1/deposits",
			body: gin.H{"amount": "75.5"},
			buildStubs: func(service *MockService) {
				service.EXPECT().Deposit(gomock.Any(), gomock.Eq(caller), int64(1), "75.5", "").
					Times(1).Return(domain.AdjustTxResult{
					Account: domain.Account{ID: 1, Balance: "175.5", Status: domain.StatusActive},
				}, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Contains(t, recorder.Body.String(), "175.5")
			},
		},
		{
			name: "WithdrawOK",
			url:  "/accounts/1/withdrawals",
			body: gin.H{"amount": "40", "description": "atm"},
			buildStubs: func(service *MockService) {
				service.EXPECT().Withdraw(gomock.Any(), gomock.Eq(caller), int64(1), "40", "atm").
					Times(1).Return(domain.AdjustTxResult{
					Account: domain.Account{ID: 1, Balance: "60", Status: domain.StatusActive},
				}, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
		{
			name: "WithdrawInsufficientFunds",
			url:  "/accounts/1/withdrawals",
			body: gin.H{"amount": "150"},
			buildStubs: func(service *MockService) {
				service.EXPECT().Withdraw(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).Return(domain.AdjustTxResult{},
					&domain.ValidationError{Violations: []error{domain.ErrInsufficientFunds}})
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "DepositUnknownAccount",
			url:  "/accounts/99/deposits",
			body: gin.H{"amount": "10"},
			buildStubs: func(service *MockService) {
				service.EXPECT().Deposit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).Return(domain.AdjustTxResult{},
					&domain.ValidationError{Violations: []error{domain.ErrAccountNotFound}})
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
		{
			name: "InvalidAccountID",
			url:  "/accounts/0/deposits",
			body: gin.H{"amount": "10"},
			buildStubs: func(service *MockService) {
				service.EXPECT().Deposit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "MissingAmount",
			url:  "/accounts/1/deposits",
			body: gin.H{},
			buildStubs: func(service *MockService) {
				service.EXPECT().Deposit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
				require.Contains(t, recorder.Body.String(), "Amount is required")
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			router := setupRouter(t, NewHandler(service))
			recorder := performRequest(t, router, http.MethodPost, tc.url, tc.body)

			tc.checkResponse(t, recorder)
		})
	}
}
