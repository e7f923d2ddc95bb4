package store

import (
	"context"

	"gorm.io/gorm"

	"portal-service/internal/model"
	"portal-service/pkg/apperr"
)

func (s *Store) FindClientByName(ctx context.Context, name string) (*model.Client, error) {
	var client model.Client
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&client).Error
	if err != nil {
		return nil, wrapFind(err, "client")
	}
	return &client, nil
}

// ReassignAllGroups moves every group under the target client in a single
// transaction. Sectors follow their group, so no sector row changes.
func (s *Store) ReassignAllGroups(ctx context.Context, targetClientID uint) (int64, error) {
	var moved int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Group{}).
			Where("client_id <> ?", targetClientID).
			Update("client_id", targetClientID)
		if result.Error != nil {
			return result.Error
		}
		moved = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, apperr.Wrap(err, apperr.CodeTransient, "group reassignment failed")
	}
	return moved, nil
}

func (s *Store) CountGroupsByClient(ctx context.Context, clientID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Group{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	if err != nil {
		return 0, wrapRead(err)
	}
	return count, nil
}

// Append writes one audit entry. Append-only by convention; nothing in the
// core reads audit rows back.
func (s *Store) Append(ctx context.Context, entry *model.AuditLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return apperr.Wrap(err, apperr.CodeTransient, "audit append failed")
	}
	return nil
}
