package directory

type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
	IsHR bool   `json:"is_hr"`
}

type UserSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	RoleLevel  int    `json:"role_level"`
	Department string `json:"department"`
}

func Summarize(u *User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:         u.ID.String(),
		Name:       u.FullName(),
		Email:      u.Email,
		Role:       u.RoleName(),
		RoleLevel:  u.RoleLevel(),
		Department: u.DepartmentName(),
	}
}
