package http

import (
	"time"

	"github.com/aislescan/aislescan-api/internal/domain/profile"
	"github.com/aislescan/aislescan-api/internal/domain/scan"
	"github.com/aislescan/aislescan-api/internal/domain/user"
)

// External field naming is camelCase throughout; this is the one canonical
// convention the mobile client is built against.

// Auth DTOs

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the user view; the password hash never leaves the server.
type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// Profile DTOs

type ProfileDTO struct {
	Allergies           []string `json:"allergies"`
	Goals               *string  `json:"goals"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
}

// UpdateProfileRequest fields are pointers: an absent field leaves the
// stored value unchanged, a present-but-empty one clears it.
type UpdateProfileRequest struct {
	Allergies           *[]string `json:"allergies"`
	Goals               *string   `json:"goals"`
	DietaryRestrictions *[]string `json:"dietaryRestrictions"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		Allergies:           p.Allergies,
		Goals:               p.Goals,
		DietaryRestrictions: p.DietaryRestrictions,
	}
	if dto.Allergies == nil {
		dto.Allergies = []string{}
	}
	if dto.DietaryRestrictions == nil {
		dto.DietaryRestrictions = []string{}
	}
	return dto
}

// Scan DTOs

type SaveScanRequest struct {
	ProductName  *string        `json:"productName"`
	ImageURI     *string        `json:"imageUri"`
	AnalysisData map[string]any `json:"analysisData"`
}

type ScanDTO struct {
	ID           string         `json:"id"`
	ProductName  *string        `json:"productName"`
	ImageURI     *string        `json:"imageUri"`
	AnalysisData map[string]any `json:"analysisData"`
	CreatedAt    time.Time      `json:"createdAt"`
}

func ToScanDTO(s *scan.Scan) ScanDTO {
	return ScanDTO{
		ID:           s.ID.String(),
		ProductName:  s.ProductName,
		ImageURI:     s.ImageURI,
		AnalysisData: s.AnalysisData,
		CreatedAt:    s.CreatedAt,
	}
}

func ToScanDTOs(scans []*scan.Scan) []ScanDTO {
	dtos := make([]ScanDTO, len(scans))
	for i, s := range scans {
		dtos[i] = ToScanDTO(s)
	}
	return dtos
}
