package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type GroupGormRepository struct {
	db *gorm.DB
}

func NewGroupGormRepository(db *gorm.DB) *GroupGormRepository {
	return &GroupGormRepository{db: db}
}

func (r *GroupGormRepository) FindByName(ctx context.Context, name string) (model.Group, error) {
	var g model.Group
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Group{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Group{}, err
	}
	return g, nil
}

// グループに属するユーザー一覧
func (r *GroupGormRepository) ListMembers(ctx context.Context, groupName string) ([]model.User, error) {
	g, err := r.FindByName(ctx, groupName)
	if err != nil {
		return []model.User{}, err
	}

	var users []model.User
	err = r.db.WithContext(ctx).
		Preload("Groups").
		Joins("join user_groups on user_groups.user_id = users.id").
		Where("user_groups.group_id = ?", g.ID).
		Order("users.id asc").
		Find(&users).Error
	if err != nil {
		return []model.User{}, err
	}
	return users, nil
}

// ユーザーがグループに属しているか
func (r *GroupGormRepository) HasMember(ctx context.Context, groupName string, userID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Table("user_groups").
		Joins("join groups on groups.id = user_groups.group_id").
		Where("groups.name = ? AND user_groups.user_id = ?", groupName, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *GroupGormRepository) AddMember(ctx context.Context, groupName string, userID int64) error {
	g, err := r.FindByName(ctx, groupName)
	if err != nil {
		return err
	}

	//既に所属していれば何もしない
	has, err := r.HasMember(ctx, groupName, userID)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	return r.db.WithContext(ctx).
		Exec("insert into user_groups (user_id, group_id) values (?, ?)", userID, g.ID).Error
}

func (r *GroupGormRepository) RemoveMember(ctx context.Context, groupName string, userID int64) error {
	g, err := r.FindByName(ctx, groupName)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Exec("delete from user_groups where user_id = ? and group_id = ?", userID, g.ID).Error
}
