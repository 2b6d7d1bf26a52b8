package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /groups/{roleName}/usersのHTTP
type GroupHandler struct {
	uc *usecase.GroupUsecase
}

// DI
func NewGroupHandler(uc *usecase.GroupUsecase) *GroupHandler {
	return &GroupHandler{uc: uc}
}

type AddMemberRequest struct {
	Username string `json:"username"`
}

func (h *GroupHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	// /groups配下は全部「JWT必須 + Manager/管理者限定」
	g := e.Group(
		"/groups",
		middleware.AuthJWT(cfg),
		middleware.ManagerRoleGuard(),
	)

	g.GET("/:role_name/users", h.listMembers)
	g.POST("/:role_name/users", h.addMember)
	g.DELETE("/:role_name/users/:id", h.removeMember)
}

func (h *GroupHandler) listMembers(c echo.Context) error {
	out, err := h.uc.ListMembers(c.Request().Context(), c.Param("role_name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GroupHandler) addMember(c echo.Context) error {
	var req AddMemberRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddMember(c.Request().Context(), c.Param("role_name"), req.Username)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *GroupHandler) removeMember(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
	}

	out, err := h.uc.RemoveMember(c.Request().Context(), c.Param("role_name"), userID)
	if err != nil {
		return writeError(c, err)
	}

	//削除系だが204ではなく200で返す
	return c.JSON(http.StatusOK, out)
}
