// AngelaMos | 2026
// dto.go

package settings

import "time"

type UpdateSettingsRequest struct {
	BusinessName string  `json:"businessName" validate:"required,min=1,max=120"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

type SettingsResponse struct {
	ID           string    `json:"id"`
	BusinessName string    `json:"businessName"`
	Address      *string   `json:"address,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	LogoPath     *string   `json:"logoPath,omitempty"`
	FaviconPath  *string   `json:"faviconPath,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicResponse is the unauthenticated subset served to the login page.
type PublicResponse struct {
	BusinessName string  `json:"businessName"`
	LogoPath     *string `json:"logoPath,omitempty"`
	FaviconPath  *string `json:"faviconPath,omitempty"`
}

func ToSettingsResponse(s *BusinessSettings) *SettingsResponse {
	return &SettingsResponse{
		ID:           s.ID,
		BusinessName: s.BusinessName,
		Address:      s.Address,
		Phone:        s.Phone,
		LogoPath:     s.LogoPath,
		FaviconPath:  s.FaviconPath,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func ToPublicResponse(s *BusinessSettings) *PublicResponse {
	return &PublicResponse{
		BusinessName: s.BusinessName,
		LogoPath:     s.LogoPath,
		FaviconPath:  s.FaviconPath,
	}
}
