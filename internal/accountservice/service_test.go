package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/hamrobank/ledger/internal/domain"
	"github.com/hamrobank/ledger/pkg/randompkg"
)

func randomAccount(id int64) domain.Account {
	return domain.Account{
		ID:            id,
		AccountNumber: randompkg.AccountNumber(),
		OwnerID:       randompkg.Int64Between(1, 1000),
		Balance:       randompkg.MoneyAmountBetween(0, 10000),
		Status:        domain.StatusActive,
		CreatedAt:     time.Now().Truncate(time.Second),
	}
}

func TestGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	want := randomAccount(1)

	repo := NewMockRepo(ctrl)
	repo.EXPECT().Get(gomock.Any(), want.ID).Times(1).Return(want, nil)

	got, err := New(repo).Get(context.Background(), want.ID)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestGetByNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	want := randomAccount(2)

	repo := NewMockRepo(ctrl)
	repo.EXPECT().GetByNumber(gomock.Any(), want.AccountNumber).Times(1).Return(want, nil)

	got, err := New(repo).GetByNumber(context.Background(), want.AccountNumber)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestListByOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := randomAccount(1)
	second := randomAccount(2)
	second.OwnerID = first.OwnerID

	repo := NewMockRepo(ctrl)
	repo.EXPECT().ListByOwner(gomock.Any(), first.OwnerID).Times(1).
		Return([]domain.Account{first, second}, nil)

	got, err := New(repo).ListByOwner(context.Background(), first.OwnerID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, first, got[0])
}

func TestGetNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().Get(gomock.Any(), int64(99)).Times(1).
		Return(domain.Account{}, domain.ErrAccountNotFound)

	_, err := New(repo).Get(context.Background(), 99)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
