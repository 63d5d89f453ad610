package dto

// Data Transfer Objects for the signup and token endpoints

// SignupRequest: payload for account registration
type SignupRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

// SignupResponse echoes the accepted pair
type SignupResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenRequest: payload for exchanging a confirmation code for a session
type TokenRequest struct {
	Username         string `json:"username" binding:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" binding:"required,max=50"`
}

// TokenResponse: the signed access token
type TokenResponse struct {
	Token string `json:"token"`
}
