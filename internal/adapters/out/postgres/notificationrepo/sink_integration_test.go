package notificationrepo_test

import (
	"context"
	"testing"

	"farmtrade/internal/adapters/out/postgres/notificationrepo"
	"farmtrade/internal/adapters/out/postgres/pgtest"
	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/notification"

	"github.com/stretchr/testify/suite"
)

type SinkIntegrationTestSuite struct {
	pgtest.Suite
	sink *notificationrepo.GormSink
}

func (s *SinkIntegrationTestSuite) SetupTest() {
	s.Suite.SetupTest()
	s.sink = notificationrepo.NewGormSink(s.DB)
}

func (s *SinkIntegrationTestSuite) TestDeliver_StoresBatch() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	batch := []notification.Notification{
		{
			ID: kernel.NewUUID(), UserID: userID, Kind: notification.KindPaymentUpdate,
			Title: "Payment received", Message: "Payment of 600.00 received.",
			RelatedID: kernel.NewUUID(), RelatedModel: notification.RelatedPayment,
			Priority: notification.PriorityHigh, CreatedAt: pgtest.Now(),
		},
		{
			ID: kernel.NewUUID(), UserID: kernel.NewUUID(), Kind: notification.KindOrderUpdate,
			Title: "Order payment pending", Message: "Order PO-1 is now payment pending.",
			RelatedID: kernel.NewUUID(), RelatedModel: notification.RelatedOrder,
			Priority: notification.PriorityMedium, CreatedAt: pgtest.Now(),
		},
	}

	s.Equal("postgres", s.sink.Name())
	s.Require().NoError(s.sink.Deliver(ctx, batch))

	var stored []notificationrepo.NotificationDTO
	s.Require().NoError(s.DB.Where("user_id = ?", userID.Bytes()).Find(&stored).Error)
	s.Require().Len(stored, 1)
	s.Equal("Payment received", stored[0].Title)
	s.Equal("payment_update", stored[0].Kind)
	s.Equal("high", stored[0].Priority)
	s.False(stored[0].IsRead)
}

func (s *SinkIntegrationTestSuite) TestDeliver_InvalidNotificationWritesNothing() {
	err := s.sink.Deliver(context.Background(), []notification.Notification{
		{ID: kernel.NewUUID(), UserID: kernel.NewUUID(), Title: "ok", Message: "ok"},
		{ID: kernel.NewUUID(), UserID: kernel.NewUUID()},
	})
	s.Require().Error(err)

	var count int64
	s.Require().NoError(s.DB.Model(&notificationrepo.NotificationDTO{}).Count(&count).Error)
	s.Zero(count)
}

func (s *SinkIntegrationTestSuite) TestDeliver_EmptyBatch() {
	s.Require().NoError(s.sink.Deliver(context.Background(), nil))
}

func TestSinkIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(SinkIntegrationTestSuite))
}
