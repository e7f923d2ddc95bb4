package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portal-service/internal/model"
	"portal-service/pkg/apperr"
)

// Store is the gorm-backed implementation of every store contract.
type Store struct {
	db *gorm.DB
}

// New creates a store over the given database handle
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for boundary code that manages simple
// CRUD rows directly.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func wrapFind(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.CodeNotFound, what+" not found")
	}
	return apperr.Wrap(err, apperr.CodeTransient, "store read failed")
}

func wrapRead(err error) error {
	return apperr.Wrap(err, apperr.CodeTransient, "store read failed")
}

func (s *Store) FindUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrapFind(err, "user")
	}
	return &user, nil
}

func (s *Store) FindClient(ctx context.Context, id uint) (*model.Client, error) {
	var client model.Client
	if err := s.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, wrapFind(err, "client")
	}
	return &client, nil
}

func (s *Store) FindTool(ctx context.Context, id uint) (*model.Tool, error) {
	var tool model.Tool
	if err := s.db.WithContext(ctx).First(&tool, id).Error; err != nil {
		return nil, wrapFind(err, "tool")
	}
	return &tool, nil
}

func (s *Store) FindToolBySlug(ctx context.Context, slug string) (*model.Tool, error) {
	var tool model.Tool
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&tool).Error; err != nil {
		return nil, wrapFind(err, "tool")
	}
	return &tool, nil
}

func (s *Store) LinkedClientIDs(ctx context.Context, toolID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&model.ClientTool{}).
		Where("tool_id = ?", toolID).
		Pluck("client_id", &ids).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return ids, nil
}

func (s *Store) DirectClientIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&model.UserClientPermission{}).
		Where("user_id = ?", userID).
		Pluck("client_id", &ids).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return ids, nil
}

func (s *Store) GroupIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&model.UserGroupPermission{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &ids).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return ids, nil
}

func (s *Store) SectorIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&model.UserSectorPermission{}).
		Where("user_id = ?", userID).
		Pluck("sector_id", &ids).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return ids, nil
}

func (s *Store) ClientIDsOfGroups(ctx context.Context, groupIDs []uint) ([]uint, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&model.Group{}).
		Where("id IN ?", groupIDs).
		Distinct().
		Pluck("client_id", &ids).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return ids, nil
}

func (s *Store) ClientIDsOfSectors(ctx context.Context, sectorIDs []uint) ([]uint, error) {
	if len(sectorIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&model.Sector{}).
		Joins("JOIN groups ON groups.id = sectors.group_id AND groups.deleted_at IS NULL").
		Where("sectors.id IN ?", sectorIDs).
		Distinct().
		Pluck("groups.client_id", &ids).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return ids, nil
}

func (s *Store) ToolPermissions(ctx context.Context, toolID uint) ([]model.ToolPermission, error) {
	var perms []model.ToolPermission
	err := s.db.WithContext(ctx).
		Where("tool_id = ?", toolID).
		Find(&perms).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return perms, nil
}

func (s *Store) ActiveClients(ctx context.Context, ids []uint) ([]model.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var clients []model.Client
	err := s.db.WithContext(ctx).
		Where("id IN ? AND status = ?", ids, model.StatusActive).
		Find(&clients).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return clients, nil
}

func (s *Store) AllActiveClients(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := s.db.WithContext(ctx).
		Where("status = ?", model.StatusActive).
		Find(&clients).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return clients, nil
}

func (s *Store) ToolsLinkedToClients(ctx context.Context, clientIDs []uint) ([]model.Tool, error) {
	if len(clientIDs) == 0 {
		return nil, nil
	}
	var tools []model.Tool
	err := s.db.WithContext(ctx).
		Model(&model.Tool{}).
		Joins("JOIN client_tools ON client_tools.tool_id = tools.id").
		Where("client_tools.client_id IN ?", clientIDs).
		Distinct("tools.*").
		Find(&tools).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return tools, nil
}

func (s *Store) ToolsGrantedTo(ctx context.Context, userID uint, groupIDs, sectorIDs []uint) ([]model.Tool, error) {
	cond := s.db.
		Where("tool_permissions.principal_type = ? AND tool_permissions.principal_id = ?",
			model.PrincipalUser, userID)
	if len(groupIDs) > 0 {
		cond = cond.Or("tool_permissions.principal_type = ? AND tool_permissions.principal_id IN ?",
			model.PrincipalGroup, groupIDs)
	}
	if len(sectorIDs) > 0 {
		cond = cond.Or("tool_permissions.principal_type = ? AND tool_permissions.principal_id IN ?",
			model.PrincipalSector, sectorIDs)
	}

	var tools []model.Tool
	err := s.db.WithContext(ctx).
		Model(&model.Tool{}).
		Joins("JOIN tool_permissions ON tool_permissions.tool_id = tools.id").
		Where(cond).
		Distinct("tools.*").
		Find(&tools).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return tools, nil
}

func (s *Store) AllTools(ctx context.Context) ([]model.Tool, error) {
	var tools []model.Tool
	if err := s.db.WithContext(ctx).Find(&tools).Error; err != nil {
		return nil, wrapRead(err)
	}
	return tools, nil
}
