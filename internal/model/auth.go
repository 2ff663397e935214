package model

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginUser struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	FullName *string `json:"fullName"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// TableRows is one page of the admin table browser.
type TableRows struct {
	Table string                   `json:"table"`
	Rows  []map[string]interface{} `json:"rows"`
}
