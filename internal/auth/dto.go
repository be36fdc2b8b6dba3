package auth

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
	Password    string `json:"password" validate:"required,max=128"`
}

// TokenPair is produced by Login and Refresh. RefreshToken travels only in the cookie.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AccessTokenResponse is the body returned by login and refresh.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

const TokenTypeBearer = "bearer"

func NewAccessTokenResponse(pair *TokenPair) AccessTokenResponse {
	return AccessTokenResponse{AccessToken: pair.AccessToken, TokenType: TokenTypeBearer}
}
