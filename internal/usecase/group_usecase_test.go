package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks (Group向け：衝突回避)
// =====================

type GroupRepoMock struct{ mock.Mock }

func (m *GroupRepoMock) FindByName(ctx context.Context, name string) (model.Group, error) {
	args := m.Called(ctx, name)
	g, _ := args.Get(0).(model.Group)
	return g, args.Error(1)
}

func (m *GroupRepoMock) ListMembers(ctx context.Context, groupName string) ([]model.User, error) {
	args := m.Called(ctx, groupName)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *GroupRepoMock) HasMember(ctx context.Context, groupName string, userID int64) (bool, error) {
	args := m.Called(ctx, groupName, userID)
	return args.Bool(0), args.Error(1)
}

func (m *GroupRepoMock) AddMember(ctx context.Context, groupName string, userID int64) error {
	args := m.Called(ctx, groupName, userID)
	return args.Error(0)
}

func (m *GroupRepoMock) RemoveMember(ctx context.Context, groupName string, userID int64) error {
	args := m.Called(ctx, groupName, userID)
	return args.Error(0)
}

type GroupUserRepoMock struct{ mock.Mock }

func (m *GroupUserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in GroupUsecase tests")
}

func (m *GroupUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *GroupUserRepoMock) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func newGroupUsecase(groupRepo *GroupRepoMock, userRepo *GroupUserRepoMock) *usecase.GroupUsecase {
	return usecase.NewGroupUsecase(groupRepo, userRepo, usecase.DefaultGroupMapping())
}

// =====================
// Tests
// =====================

// URLのロール名はmanager/delivery-crewの2つだけ。それ以外は全操作404
func TestGroupUsecase_UnknownRole_NotFound(t *testing.T) {
	uc := newGroupUsecase(new(GroupRepoMock), new(GroupUserRepoMock))

	_, err := uc.ListMembers(context.Background(), "admins")
	assertErrContains(t, err, "not found")

	_, err = uc.AddMember(context.Background(), "admins", "john")
	assertErrContains(t, err, "not found")

	_, err = uc.RemoveMember(context.Background(), "admins", 1)
	assertErrContains(t, err, "not found")
}

func TestGroupUsecase_ListMembers(t *testing.T) {
	groupRepo := new(GroupRepoMock)

	groupRepo.On("ListMembers", mock.Anything, model.GroupManager).Return([]model.User{
		{ID: 1, Username: "maria", Email: "maria@example.com", Groups: []model.Group{{ID: 1, Name: model.GroupManager}}},
	}, nil)

	uc := newGroupUsecase(groupRepo, new(GroupUserRepoMock))

	outs, err := uc.ListMembers(context.Background(), "manager")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(outs))
	assert.Equal(t, "maria", outs[0].Username)
	assert.Equal(t, []string{model.GroupManager}, outs[0].Groups)

	groupRepo.AssertExpectations(t)
}

func TestGroupUsecase_AddMember_UserNotFound(t *testing.T) {
	groupRepo := new(GroupRepoMock)
	userRepo := new(GroupUserRepoMock)

	userRepo.On("FindByUsername", mock.Anything, "ghost").Return((*model.User)(nil), nil)

	uc := newGroupUsecase(groupRepo, userRepo)

	_, err := uc.AddMember(context.Background(), "delivery-crew", "ghost")
	assertErrContains(t, err, "user not found")

	groupRepo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestGroupUsecase_AddMember_Success(t *testing.T) {
	groupRepo := new(GroupRepoMock)
	userRepo := new(GroupUserRepoMock)

	user := &model.User{ID: 3, Username: "john", Email: "john@example.com"}
	userRepo.On("FindByUsername", mock.Anything, "john").Return(user, nil)
	groupRepo.On("AddMember", mock.Anything, model.GroupDeliveryCrew, int64(3)).Return(nil)

	uc := newGroupUsecase(groupRepo, userRepo)

	out, err := uc.AddMember(context.Background(), "delivery-crew", " john ")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.ID)
	assert.Equal(t, []string{model.GroupDeliveryCrew}, out.Groups)

	groupRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

// 既にメンバーのユーザーを再追加してもグループ名は重複しない
func TestGroupUsecase_AddMember_AlreadyMember_NoDuplicate(t *testing.T) {
	groupRepo := new(GroupRepoMock)
	userRepo := new(GroupUserRepoMock)

	user := &model.User{
		ID:       3,
		Username: "john",
		Groups:   []model.Group{{ID: 2, Name: model.GroupDeliveryCrew}},
	}
	userRepo.On("FindByUsername", mock.Anything, "john").Return(user, nil)
	groupRepo.On("AddMember", mock.Anything, model.GroupDeliveryCrew, int64(3)).Return(nil)

	uc := newGroupUsecase(groupRepo, userRepo)

	out, err := uc.AddMember(context.Background(), "delivery-crew", "john")
	assert.NoError(t, err)
	assert.Equal(t, []string{model.GroupDeliveryCrew}, out.Groups)
}

// 存在しないユーザーIDの削除は404
func TestGroupUsecase_RemoveMember_UnknownUser(t *testing.T) {
	groupRepo := new(GroupRepoMock)
	userRepo := new(GroupUserRepoMock)

	userRepo.On("FindByID", mock.Anything, int64(99)).Return((*model.User)(nil), nil)

	uc := newGroupUsecase(groupRepo, userRepo)

	_, err := uc.RemoveMember(context.Background(), "manager", 99)
	assertErrContains(t, err, "user not found")

	groupRepo.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
}

// グループに属していないユーザーの削除は404
func TestGroupUsecase_RemoveMember_NotInGroup(t *testing.T) {
	groupRepo := new(GroupRepoMock)
	userRepo := new(GroupUserRepoMock)

	userRepo.On("FindByID", mock.Anything, int64(5)).Return(&model.User{ID: 5, Username: "john"}, nil)
	groupRepo.On("HasMember", mock.Anything, model.GroupManager, int64(5)).Return(false, nil)

	uc := newGroupUsecase(groupRepo, userRepo)

	_, err := uc.RemoveMember(context.Background(), "manager", 5)
	assertErrContains(t, err, "not found")

	groupRepo.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
}

// 削除成功は204ではなく200でメッセージを返す
func TestGroupUsecase_RemoveMember_Success(t *testing.T) {
	groupRepo := new(GroupRepoMock)
	userRepo := new(GroupUserRepoMock)

	userRepo.On("FindByID", mock.Anything, int64(3)).Return(&model.User{ID: 3, Username: "john"}, nil)
	groupRepo.On("HasMember", mock.Anything, model.GroupDeliveryCrew, int64(3)).Return(true, nil)
	groupRepo.On("RemoveMember", mock.Anything, model.GroupDeliveryCrew, int64(3)).Return(nil)

	uc := newGroupUsecase(groupRepo, userRepo)

	out, err := uc.RemoveMember(context.Background(), "delivery-crew", 3)
	assert.NoError(t, err)
	assert.Equal(t, "member removed", out.Message)

	groupRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}
