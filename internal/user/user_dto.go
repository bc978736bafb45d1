package user

type CreateUserRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=100"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"required,oneof=admin employee"`
	Department string `json:"department"`
	StaffHouse bool   `json:"staff_house"`
}

type UpdateUserRequest struct {
	Username   *string `json:"username" binding:"omitempty,min=3,max=100"`
	Password   *string `json:"password" binding:"omitempty,min=6"`
	Role       *string `json:"role" binding:"omitempty,oneof=admin employee"`
	Department *string `json:"department"`
	StaffHouse *bool   `json:"staff_house"`
	Active     *bool   `json:"active"`
}

type UserResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	Department string `json:"department"`
	StaffHouse bool   `json:"staff_house"`
	Active     bool   `json:"active"`
	CreatedAt  string `json:"created_at"`
}
