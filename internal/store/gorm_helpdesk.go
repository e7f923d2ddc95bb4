package store

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"portal-service/internal/model"
	"portal-service/pkg/apperr"
)

func (s *Store) IsQueueMember(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.QueueMember{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, wrapRead(err)
	}
	return count > 0, nil
}

func (s *Store) ManagesArea(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.HelpdeskArea{}).
		Where("manager_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, wrapRead(err)
	}
	return count > 0, nil
}

func (s *Store) ManagedAreas(ctx context.Context, userID uint) ([]model.HelpdeskArea, error) {
	var areas []model.HelpdeskArea
	err := s.db.WithContext(ctx).
		Where("manager_id = ?", userID).
		Order("name, id").
		Find(&areas).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return areas, nil
}

func (s *Store) AreasByClient(ctx context.Context, clientID uint) ([]model.HelpdeskArea, error) {
	var areas []model.HelpdeskArea
	err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Find(&areas).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return areas, nil
}

func (s *Store) QueuesByArea(ctx context.Context, areaID uint) ([]model.Queue, error) {
	var queues []model.Queue
	err := s.db.WithContext(ctx).
		Where("area_id = ?", areaID).
		Find(&queues).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return queues, nil
}

func (s *Store) DefaultQueue(ctx context.Context, clientID uint) (*model.Queue, error) {
	var queue model.Queue
	err := s.db.WithContext(ctx).
		Where("client_id = ? AND is_default = ?", clientID, true).
		First(&queue).Error
	if err != nil {
		return nil, wrapFind(err, "default queue")
	}
	return &queue, nil
}

func (s *Store) QueueMemberIDs(ctx context.Context, queueID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&model.QueueMember{}).
		Where("queue_id = ?", queueID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return ids, nil
}

func (s *Store) CreateTicket(ctx context.Context, ticket *model.Ticket) error {
	if err := s.db.WithContext(ctx).Create(ticket).Error; err != nil {
		return apperr.Wrap(err, apperr.CodeTransient, "ticket creation failed")
	}
	return nil
}

func (s *Store) FindTicket(ctx context.Context, id uint) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := s.db.WithContext(ctx).First(&ticket, id).Error; err != nil {
		return nil, wrapFind(err, "ticket")
	}
	return &ticket, nil
}

func (s *Store) TicketsForUser(ctx context.Context, userID uint) ([]model.Ticket, error) {
	var tickets []model.Ticket
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return tickets, nil
}

func (s *Store) AddMessage(ctx context.Context, msg *model.TicketMessage) error {
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return apperr.Wrap(err, apperr.CodeTransient, "message creation failed")
	}
	return nil
}

// InsertNotification relies on the unique index over (user_id, ticket_id,
// event) plus ON CONFLICT DO NOTHING, so two racing events for the same
// triple still leave exactly one row and never touch an existing read_at.
func (s *Store) InsertNotification(ctx context.Context, userID, ticketID uint, event string) (bool, error) {
	notification := model.HelpdeskNotification{
		UserID:   userID,
		TicketID: ticketID,
		Event:    event,
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "ticket_id"}, {Name: "event"}},
			DoNothing: true,
		}).
		Create(&notification)
	if result.Error != nil {
		return false, apperr.Wrap(result.Error, apperr.CodeTransient, "notification insert failed")
	}
	return result.RowsAffected > 0, nil
}

func (s *Store) MarkRead(ctx context.Context, userID, ticketID uint) (int64, error) {
	now := time.Now()
	result := s.db.WithContext(ctx).
		Model(&model.HelpdeskNotification{}).
		Where("user_id = ? AND ticket_id = ? AND read_at IS NULL", userID, ticketID).
		Update("read_at", &now)
	if result.Error != nil {
		return 0, apperr.Wrap(result.Error, apperr.CodeTransient, "mark read failed")
	}
	return result.RowsAffected, nil
}

func (s *Store) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	now := time.Now()
	result := s.db.WithContext(ctx).
		Model(&model.HelpdeskNotification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", &now)
	if result.Error != nil {
		return 0, apperr.Wrap(result.Error, apperr.CodeTransient, "mark read failed")
	}
	return result.RowsAffected, nil
}

func (s *Store) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.HelpdeskNotification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, wrapRead(err)
	}
	return count, nil
}

func (s *Store) ListNotifications(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]model.HelpdeskNotification, error) {
	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var notifications []model.HelpdeskNotification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, wrapRead(err)
	}
	return notifications, nil
}
