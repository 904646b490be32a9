package transactionservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/hamrobank/ledger/internal/domain"
)

func TestListRecentLimitClamping(t *testing.T) {
	testCases := []struct {
		name      string
		limit     int32
		wantLimit int32
	}{
		{name: "DefaultWhenZero", limit: 0, wantLimit: 10},
		{name: "DefaultWhenNegative", limit: -3, wantLimit: 10},
		{name: "PassedThrough", limit: 25, wantLimit: 25},
		{name: "CappedAtMax", limit: 1000, wantLimit: 100},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			repo.EXPECT().ListRecent(gomock.Any(), int64(1), tc.wantLimit).Times(1).
				Return([]domain.Transaction{}, nil)

			_, err := New(repo).ListRecent(context.Background(), 1, tc.limit)
			require.NoError(t, err)
		})
	}
}

func TestGetDelegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	want := domain.Transaction{ID: 9, ReferenceNumber: "TXN17250000000004F2A9C1B"}

	repo := NewMockRepo(ctrl)
	repo.EXPECT().Get(gomock.Any(), int64(9)).Times(1).Return(want, nil)
	repo.EXPECT().GetByReference(gomock.Any(), want.ReferenceNumber).Times(1).Return(want, nil)

	service := New(repo)

	got, err := service.Get(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, want, got)

	got, err = service.GetByReference(context.Background(), want.ReferenceNumber)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
