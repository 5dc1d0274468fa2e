package httptransport

type CreateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role,omitempty"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type UserData struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role"`
	CreatedAt   string `json:"created_at"`
}

type UserResponse struct {
	Status    string   `json:"status"`
	Data      UserData `json:"data"`
	Timestamp string   `json:"timestamp"`
}

type UserListResponse struct {
	Status string `json:"status"`
	Data   struct {
		Items       []UserData `json:"items"`
		CurrentPage int        `json:"current_page"`
		TotalPages  int        `json:"total_pages"`
		TotalItems  int64      `json:"total_items"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type DeleteResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Status    string    `json:"status"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}
