package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/raddison/salon-booking/internal/repository"
	"github.com/raddison/salon-booking/internal/utils"
)

// AdminHandler covers admin authentication and account management plus the
// dashboard stats endpoint.
type AdminHandler struct {
	Admins       *repository.AdminRepo
	Appointments *repository.AppointmentRepo
	Customers    *repository.CustomerRepo
	Messages     *repository.MessageRepo
	Log          *zap.Logger

	JWTSecret    string
	AccessTTLMin int
	BcryptCost   int
}

type adminCreds struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login.  Unknown username and wrong password
// both return the same 401 body.
func (h *AdminHandler) Login(c echo.Context) error {
	var req adminCreds
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}
	admin, err := h.Admins.GetByUsername(c.Request().Context(), req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	if !utils.VerifyPassword(admin.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAdminToken(h.JWTSecret, admin.ID, admin.Username, h.AccessTTLMin)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "login successful",
		"admin_id":   admin.ID,
		"username":   admin.Username,
		"token":      tok.Token,
		"expires_at": tok.Expires.Format("2006-01-02 15:04:05"),
	})
}

type adminResp struct {
	ID        uint64 `json:"admin_id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// List handles GET /api/admins.  Password hashes never leave the
// repository layer's model.
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.Admins.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch admins"})
	}
	out := make([]adminResp, 0, len(admins))
	for _, a := range admins {
		out = append(out, adminResp{a.ID, a.Username, a.CreatedAt.Format("2006-01-02 15:04:05")})
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /api/admins.
func (h *AdminHandler) Create(c echo.Context) error {
	var req adminCreds
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Username) == "" || len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and a password of at least 6 characters are required"})
	}
	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create admin"})
	}
	id, err := h.Admins.Create(c.Request().Context(), req.Username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create admin"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "admin created", "admin_id": id})
}

type deleteAdminReq struct {
	Password string `json:"password"`
}

// Delete handles DELETE /api/admins/:id.  The caller re-enters their
// own password, and the last remaining admin cannot be removed.
func (h *AdminHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid admin id"})
	}
	var req deleteAdminReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password confirmation is required"})
	}

	ctx := c.Request().Context()
	callerID, ok := c.Get("admin_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hash, err := h.Admins.GetHashByID(ctx, callerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete admin"})
	}
	if !utils.VerifyPassword(hash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "incorrect password"})
	}

	count, err := h.Admins.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete admin"})
	}
	if count <= 1 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete the last admin"})
	}

	if err := h.Admins.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "admin not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete admin"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "admin deleted"})
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles PUT /api/admins/:id/change-password.  The target
// admin's current password must be supplied.
func (h *AdminHandler) ChangePassword(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid admin id"})
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.CurrentPassword == "" || len(req.NewPassword) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "current password and a new password of at least 6 characters are required"})
	}
	ctx := c.Request().Context()
	hash, err := h.Admins.GetHashByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "admin not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to change password"})
	}
	if !utils.VerifyPassword(hash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "incorrect current password"})
	}
	newHash, err := utils.HashPassword(req.NewPassword, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to change password"})
	}
	if err := h.Admins.UpdatePassword(ctx, id, newHash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to change password"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password changed"})
}

// Stats handles GET /api/admin/stats for the dashboard cards.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	counts, err := h.Appointments.CountByStatus(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch stats"})
	}
	revenue, err := h.Appointments.Revenue(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch stats"})
	}
	customers, err := h.Customers.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch stats"})
	}
	messages, err := h.Messages.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch stats"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"appointments": counts,
		"revenue":      revenue,
		"customers":    customers,
		"messages":     messages,
	})
}
