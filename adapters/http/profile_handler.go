package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/aislescan/aislescan-api/internal/application/usecase/profile"
	"github.com/aislescan/aislescan-api/pkg/apperror"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
}

func NewProfileHandler(uc *profileUC.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	u, ok := CurrentUser(c)
	if !ok {
		c.Error(apperror.NewInternal("current user missing from context", nil))
		return
	}

	input := profileUC.GetProfileInput{UserID: u.ID}
	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": ToProfileDTO(output.Profile),
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	u, ok := CurrentUser(c)
	if !ok {
		c.Error(apperror.NewInternal("current user missing from context", nil))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("Invalid profile update body", err.Error()))
		return
	}

	input := profileUC.UpdateProfileInput{
		UserID:              u.ID,
		Allergies:           req.Allergies,
		Goals:               req.Goals,
		DietaryRestrictions: req.DietaryRestrictions,
	}
	output, err := h.profileUseCase.ExecuteUpdateProfile(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": ToProfileDTO(output.Profile),
	})
}
