package models

import "github.com/octabyte/bm-gateway/enums"

// UserProfile is the member record the backend returns alongside an access token.
type UserProfile struct {
	ID               string                 `json:"_id"`
	Name             string                 `json:"name"`
	Email            string                 `json:"email"`
	Phone            string                 `json:"phone,omitempty"`
	Role             enums.Role             `json:"role"`
	Status           enums.UserStatus       `json:"status,omitempty"`
	MembershipStatus enums.MembershipStatus `json:"membershipStatus,omitempty"`
	Image            string                 `json:"image,omitempty"`
}

func (u UserProfile) IsAdmin() bool {
	return u.Role == enums.RoleAdmin || u.Role == enums.RoleSuperAdmin
}
