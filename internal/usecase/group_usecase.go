package usecase

import (
	"context"
	"net/http"
	"strings"

	repo "app/internal/repository"
)

// URLのロール名→グループ名の対応表。
// main.goで明示的に注入する（暗黙のグローバルにしない）。
func DefaultGroupMapping() map[string]string {
	return map[string]string{
		"manager":       "Manager",
		"delivery-crew": "Delivery crew",
	}
}

// GroupUsecase は /groups/{roleName}/users の業務ロジックです。
// エンドポイント自体のManager/管理者制限はmiddleware側で行う。
type GroupUsecase struct {
	groupRepo repo.GroupRepository
	userRepo  repo.UserRepository
	mapping   map[string]string
}

func NewGroupUsecase(
	groupRepo repo.GroupRepository,
	userRepo repo.UserRepository,
	mapping map[string]string,
) *GroupUsecase {
	return &GroupUsecase{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		mapping:   mapping,
	}
}

type MemberOutput struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Groups   []string `json:"groups"`
}

// 未知のロール名は404
func (u *GroupUsecase) resolveGroup(roleName string) (string, error) {
	name, ok := u.mapping[strings.TrimSpace(roleName)]
	if !ok {
		return "", NewHTTPError(http.StatusNotFound, "not found")
	}
	return name, nil
}

func (u *GroupUsecase) ListMembers(ctx context.Context, roleName string) ([]MemberOutput, error) {
	groupName, err := u.resolveGroup(roleName)
	if err != nil {
		return []MemberOutput{}, err
	}

	users, err := u.groupRepo.ListMembers(ctx, groupName)
	if err == repo.ErrNotFound {
		return []MemberOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return []MemberOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]MemberOutput, 0, len(users))
	for _, user := range users {
		outs = append(outs, MemberOutput{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Groups:   user.GroupNames(),
		})
	}
	return outs, nil
}

func (u *GroupUsecase) AddMember(ctx context.Context, roleName string, username string) (MemberOutput, error) {
	groupName, err := u.resolveGroup(roleName)
	if err != nil {
		return MemberOutput{}, err
	}

	if strings.TrimSpace(username) == "" {
		return MemberOutput{}, NewHTTPError(http.StatusBadRequest, "username required")
	}

	user, err := u.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return MemberOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return MemberOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}

	if err := u.groupRepo.AddMember(ctx, groupName, user.ID); err != nil {
		if err == repo.ErrNotFound {
			return MemberOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return MemberOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	groups := user.GroupNames()
	already := false
	for _, g := range groups {
		if g == groupName {
			already = true
			break
		}
	}
	if !already {
		groups = append(groups, groupName)
	}

	return MemberOutput{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Groups:   groups,
	}, nil
}

// RemoveMember はグループからユーザーを外す。
// 削除系だが204ではなく明示的に200 OKを返す（互換性のため）。
func (u *GroupUsecase) RemoveMember(ctx context.Context, roleName string, userID int64) (SuccessResponse, error) {
	groupName, err := u.resolveGroup(roleName)
	if err != nil {
		return SuccessResponse{}, err
	}

	if userID <= 0 {
		return SuccessResponse{}, NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	//ユーザー自体が存在しなければ404
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return SuccessResponse{}, NewHTTPError(http.StatusNotFound, "user not found")
	}

	//グループにいないユーザーは「存在しない」扱い
	has, err := u.groupRepo.HasMember(ctx, groupName, userID)
	if err != nil {
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !has {
		return SuccessResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.groupRepo.RemoveMember(ctx, groupName, userID); err != nil {
		if err == repo.ErrNotFound {
			return SuccessResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SuccessResponse{Message: "member removed"}, nil
}
