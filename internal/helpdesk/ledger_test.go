package helpdesk_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portal-service/internal/helpdesk"
	"portal-service/internal/model"
	"portal-service/internal/store/mocks"
	"portal-service/pkg/apperr"
)

func TestMarkReadSecondCallChangesNothing(t *testing.T) {
	s := new(mocks.MockHelpdeskStore)
	// First call flips the unread rows, the second finds nothing left.
	s.On("MarkRead", mock.Anything, uint(7), uint(100)).Return(int64(2), nil).Once()
	s.On("MarkRead", mock.Anything, uint(7), uint(100)).Return(int64(0), nil)
	s.On("UnreadCount", mock.Anything, uint(7)).Return(int64(3), nil)

	ledger := helpdesk.NewLedger(s, nil, zap.NewNop())
	ctx := context.Background()

	updated, err := ledger.MarkRead(ctx, 7, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	before, err := ledger.UnreadCount(ctx, 7)
	require.NoError(t, err)

	updated, err = ledger.MarkRead(ctx, 7, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)

	after, err := ledger.UnreadCount(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMarkAllRead(t *testing.T) {
	s := new(mocks.MockHelpdeskStore)
	s.On("MarkAllRead", mock.Anything, uint(7)).Return(int64(5), nil)

	ledger := helpdesk.NewLedger(s, nil, zap.NewNop())
	updated, err := ledger.MarkAllRead(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(5), updated)
}

func TestUnreadCountReadsThroughWithoutCache(t *testing.T) {
	s := new(mocks.MockHelpdeskStore)
	s.On("UnreadCount", mock.Anything, uint(7)).Return(int64(4), nil)

	ledger := helpdesk.NewLedger(s, nil, zap.NewNop())
	count, err := ledger.UnreadCount(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestUnreadCountStoreError(t *testing.T) {
	s := new(mocks.MockHelpdeskStore)
	s.On("UnreadCount", mock.Anything, uint(7)).
		Return(int64(0), apperr.New(apperr.CodeTransient, "store read failed"))

	ledger := helpdesk.NewLedger(s, nil, zap.NewNop())
	_, err := ledger.UnreadCount(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeTransient, apperr.CodeOf(err))
}

func TestListNotificationsCapsAtOnePage(t *testing.T) {
	s := new(mocks.MockHelpdeskStore)
	rows := []model.HelpdeskNotification{
		{ID: 2, UserID: 7, TicketID: 101, Event: model.EventNewMessage, CreatedAt: time.Now()},
		{ID: 1, UserID: 7, TicketID: 100, Event: model.EventTicketCreated, CreatedAt: time.Now().Add(-time.Hour)},
	}
	s.On("ListNotifications", mock.Anything, uint(7), false, helpdesk.NotificationPageSize).Return(rows, nil)

	ledger := helpdesk.NewLedger(s, nil, zap.NewNop())
	got, err := ledger.ListNotifications(context.Background(), 7, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first, as the store delivers them.
	assert.Equal(t, uint(101), got[0].TicketID)
}

func TestListNotificationsUnreadOnly(t *testing.T) {
	s := new(mocks.MockHelpdeskStore)
	s.On("ListNotifications", mock.Anything, uint(7), true, helpdesk.NotificationPageSize).
		Return([]model.HelpdeskNotification{}, nil)

	ledger := helpdesk.NewLedger(s, nil, zap.NewNop())
	got, err := ledger.ListNotifications(context.Background(), 7, true)
	require.NoError(t, err)
	assert.Empty(t, got)
}
