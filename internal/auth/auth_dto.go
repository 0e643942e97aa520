package auth

import "go-elra/internal/directory"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	RoleLevel      int    `json:"role_level"`
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	IsHRHOD        bool   `json:"is_hr_hod"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func mapToResponse(u *directory.User) AuthResponse {
	return AuthResponse{
		ID:             u.ID.String(),
		Email:          u.Email,
		Name:           u.FullName(),
		Role:           u.RoleName(),
		RoleLevel:      u.RoleLevel(),
		DepartmentID:   u.DepartmentID.String(),
		DepartmentName: u.DepartmentName(),
		IsHRHOD:        u.IsHRHOD(),
	}
}
