package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/lucymaru126/montage/internal/repositories"
	"gorm.io/gorm"
)

// AdminHandler handles moderation endpoints. Every route is gated on
// the requesting profile's admin flag.
type AdminHandler struct {
	profileRepository repositories.ProfileRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(profileRepo repositories.ProfileRepository) *AdminHandler {
	return &AdminHandler{profileRepository: profileRepo}
}

// RegisterAdminRoutes registers moderation routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/admin/users/:id/ban", h.BanUser)
	g.DELETE("/admin/users/:id/ban", h.UnbanUser)
	g.POST("/admin/users/:id/verify", h.VerifyUser)
	g.DELETE("/admin/users/:id/verify", h.UnverifyUser)
}

func (h *AdminHandler) requireAdmin(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	profile, err := h.profileRepository.GetProfileByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	if !profile.IsAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
	}
	return nil
}

func (h *AdminHandler) setFlag(c echo.Context, apply func(id uint) error) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := apply(uint(targetID)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// BanUser bans a user; banned users cannot sign in
func (h *AdminHandler) BanUser(c echo.Context) error {
	return h.setFlag(c, func(id uint) error {
		return h.profileRepository.SetBanned(id, true)
	})
}

// UnbanUser lifts a ban
func (h *AdminHandler) UnbanUser(c echo.Context) error {
	return h.setFlag(c, func(id uint) error {
		return h.profileRepository.SetBanned(id, false)
	})
}

// VerifyUser grants the verified badge
func (h *AdminHandler) VerifyUser(c echo.Context) error {
	return h.setFlag(c, func(id uint) error {
		return h.profileRepository.SetVerified(id, true)
	})
}

// UnverifyUser revokes the verified badge
func (h *AdminHandler) UnverifyUser(c echo.Context) error {
	return h.setFlag(c, func(id uint) error {
		return h.profileRepository.SetVerified(id, false)
	})
}
