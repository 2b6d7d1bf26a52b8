package repository

import (
	"app/internal/domain/model"
	"context"
)

// 権限グループの所属管理の窓口
type GroupRepository interface {
	FindByName(ctx context.Context, name string) (model.Group, error)

	//グループに属するユーザー一覧
	ListMembers(ctx context.Context, groupName string) ([]model.User, error)

	//ユーザーがグループに属しているか
	HasMember(ctx context.Context, groupName string, userID int64) (bool, error)

	AddMember(ctx context.Context, groupName string, userID int64) error
	RemoveMember(ctx context.Context, groupName string, userID int64) error
}
