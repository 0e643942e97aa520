package rbac

type EnforceRequest struct {
	Level    int    `json:"level"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type PermissionsResponse struct {
	Role        string               `json:"role"`
	Level       int                  `json:"level"`
	Permissions []PermissionResponse `json:"permissions"`
}
