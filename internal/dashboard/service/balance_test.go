package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/apperr"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/cache"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/model"
	"github.com/radieske/betting-admin-dashboard/pkg/contracts/events"
)

const testUserID = "7f0c4a52-3b8e-4d8e-9a55-2f4f8f1c2b10"

var (
	testStaff = &model.StaffMember{ID: "0b9d8f5e-1a2b-4c3d-8e9f-001122334455", FirstName: "Ana"}
	fixedNow  = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
)

type balanceFixture struct {
	store *mockLedgerStore
	id    *mockResolver
	cache *mockCache
	publ  *mockPublisher
	obs   *recordingObserver
	svc   *BalanceService
}

func newBalanceFixture() *balanceFixture {
	f := &balanceFixture{
		store: new(mockLedgerStore),
		id:    new(mockResolver),
		cache: new(mockCache),
		publ:  new(mockPublisher),
		obs:   &recordingObserver{},
	}
	f.svc = NewBalanceService(zap.NewNop(), f.store, f.id, f.cache, f.publ, f.obs)
	f.svc.now = func() time.Time { return fixedNow }
	f.svc.revalidateDelay = 0
	return f
}

func TestAdjust_CreditRecordsBonus(t *testing.T) {
	f := newBalanceFixture()
	comment := "  welcome bonus  "

	f.id.On("Current", mock.Anything).Return(testStaff, nil)
	f.store.On("ApplyAdjustment", mock.Anything, mock.MatchedBy(func(tx model.Transaction) bool {
		return tx.UserID == testUserID &&
			tx.Amount == 1500 &&
			tx.TransactionType == model.TransactionBonus &&
			*tx.EmployeeID == testStaff.ID &&
			*tx.Comment == "welcome bonus" &&
			tx.CreatedAt.Equal(fixedNow) &&
			tx.ID != ""
	})).Return(int64(6500), nil)
	f.cache.On("Delete", mock.Anything, []string{cache.UserKey(testUserID)}).Return(nil)
	f.publ.On("PublishBalanceAdjusted", mock.Anything, mock.MatchedBy(func(e events.BalanceAdjusted) bool {
		return e.UserID == testUserID && e.BalanceAfter == 6500 && e.TransactionType == "BONUS" &&
			e.EmployeeID == testStaff.ID && e.TsUnixMs == fixedNow.UnixMilli()
	})).Return(nil)

	err := f.svc.Adjust(context.Background(), AdjustRequest{
		UserID:  testUserID,
		Amount:  1500,
		Type:    model.AdjustmentCredit,
		Comment: &comment,
	})
	require.NoError(t, err)

	f.store.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.publ.AssertExpectations(t)
	assert.Equal(t, [][2]string{{"credit", "applied"}}, f.obs.calls)
}

func TestAdjust_DebitRecordsManualDebit(t *testing.T) {
	f := newBalanceFixture()

	f.id.On("Current", mock.Anything).Return(testStaff, nil)
	f.store.On("ApplyAdjustment", mock.Anything, mock.MatchedBy(func(tx model.Transaction) bool {
		return tx.Amount == -3000 && tx.TransactionType == model.TransactionManualDebit && tx.Comment == nil
	})).Return(int64(2000), nil)
	f.cache.On("Delete", mock.Anything, mock.Anything).Return(nil)
	f.publ.On("PublishBalanceAdjusted", mock.Anything, mock.Anything).Return(nil)

	blank := "   "
	err := f.svc.Adjust(context.Background(), AdjustRequest{
		UserID:  testUserID,
		Amount:  -3000,
		Type:    model.AdjustmentDebit,
		Comment: &blank,
	})
	require.NoError(t, err)
	f.store.AssertExpectations(t)
}

func TestAdjust_ValidationFailsBeforeStore(t *testing.T) {
	longComment := strings.Repeat("á", MaxCommentLength+1)

	tests := []struct {
		name    string
		req     AdjustRequest
		wantMsg string
	}{
		{"credit with negative amount", AdjustRequest{UserID: testUserID, Amount: -10, Type: model.AdjustmentCredit}, "Credit should be positive"},
		{"credit with zero", AdjustRequest{UserID: testUserID, Amount: 0, Type: model.AdjustmentCredit}, "Credit should be positive"},
		{"debit with positive amount", AdjustRequest{UserID: testUserID, Amount: 10, Type: model.AdjustmentDebit}, "Debit should be negative"},
		{"debit with zero", AdjustRequest{UserID: testUserID, Amount: 0, Type: model.AdjustmentDebit}, "Debit should be negative"},
		{"unknown type", AdjustRequest{UserID: testUserID, Amount: 10, Type: "refund"}, `type should be "credit" or "debit"`},
		{"invalid user id", AdjustRequest{UserID: "not-a-uuid", Amount: 10, Type: model.AdjustmentCredit}, "userId should be a valid id"},
		{"comment too long", AdjustRequest{UserID: testUserID, Amount: 10, Type: model.AdjustmentCredit, Comment: &longComment}, "comment is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBalanceFixture()

			err := f.svc.Adjust(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
			assert.Equal(t, tt.wantMsg, apperr.Message(err))

			f.id.AssertNotCalled(t, "Current", mock.Anything)
			f.store.AssertNotCalled(t, "ApplyAdjustment", mock.Anything, mock.Anything)
			require.Len(t, f.obs.calls, 1)
			assert.Equal(t, "invalid_request", f.obs.calls[0][1])
		})
	}
}

func TestAdjust_InsufficientBalance(t *testing.T) {
	f := newBalanceFixture()

	f.id.On("Current", mock.Anything).Return(testStaff, nil)
	f.store.On("ApplyAdjustment", mock.Anything, mock.Anything).
		Return(int64(0), apperr.InvalidOperation("insufficient balance"))

	err := f.svc.Adjust(context.Background(), AdjustRequest{UserID: testUserID, Amount: -99999, Type: model.AdjustmentDebit})

	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)
	f.cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.publ.AssertNotCalled(t, "PublishBalanceAdjusted", mock.Anything, mock.Anything)
	assert.Equal(t, [][2]string{{"debit", "invalid_operation"}}, f.obs.calls)
}

func TestAdjust_UnknownUser(t *testing.T) {
	f := newBalanceFixture()

	f.id.On("Current", mock.Anything).Return(testStaff, nil)
	f.store.On("ApplyAdjustment", mock.Anything, mock.Anything).
		Return(int64(0), apperr.NotFound("user not found"))

	err := f.svc.Adjust(context.Background(), AdjustRequest{UserID: testUserID, Amount: 100, Type: model.AdjustmentCredit})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAdjust_NoStaffMember(t *testing.T) {
	f := newBalanceFixture()
	f.id.On("Current", mock.Anything).Return(nil, apperr.NotFound("staff member not found"))

	err := f.svc.Adjust(context.Background(), AdjustRequest{UserID: testUserID, Amount: 100, Type: model.AdjustmentCredit})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	f.store.AssertNotCalled(t, "ApplyAdjustment", mock.Anything, mock.Anything)
}

func TestAdjust_PostCommitFailuresAreIgnored(t *testing.T) {
	f := newBalanceFixture()

	f.id.On("Current", mock.Anything).Return(testStaff, nil)
	f.store.On("ApplyAdjustment", mock.Anything, mock.Anything).Return(int64(100), nil)
	f.cache.On("Delete", mock.Anything, mock.Anything).Return(errors.New("redis down"))
	f.publ.On("PublishBalanceAdjusted", mock.Anything, mock.Anything).Return(errors.New("kafka down"))

	err := f.svc.Adjust(context.Background(), AdjustRequest{UserID: testUserID, Amount: 100, Type: model.AdjustmentCredit})

	require.NoError(t, err)
	f.cache.AssertExpectations(t)
	f.publ.AssertExpectations(t)
}

func TestAdjust_UnknownTypeObservedAsUnknown(t *testing.T) {
	f := newBalanceFixture()

	_ = f.svc.Adjust(context.Background(), AdjustRequest{UserID: testUserID, Amount: 1, Type: "whatever"})

	assert.Equal(t, [][2]string{{"unknown", "invalid_request"}}, f.obs.calls)
}

func TestAdjust_InvalidatesUserCacheAgainAfterDelay(t *testing.T) {
	f := newBalanceFixture()
	f.svc.revalidateDelay = 10 * time.Millisecond

	f.id.On("Current", mock.Anything).Return(testStaff, nil)
	f.store.On("ApplyAdjustment", mock.Anything, mock.Anything).Return(int64(100), nil)
	var deletes atomic.Int32
	f.cache.On("Delete", mock.Anything, []string{cache.UserKey(testUserID)}).
		Run(func(mock.Arguments) { deletes.Add(1) }).
		Return(nil).Twice()
	f.publ.On("PublishBalanceAdjusted", mock.Anything, mock.Anything).Return(nil)

	err := f.svc.Adjust(context.Background(), AdjustRequest{UserID: testUserID, Amount: 100, Type: model.AdjustmentCredit})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return deletes.Load() == 2
	}, time.Second, 5*time.Millisecond)
	f.cache.AssertExpectations(t)
}
