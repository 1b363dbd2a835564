package dto

type TokenResponse struct {
	Token string `json:"token"`
	Salt  string `json:"salt"`
}

type CallbackQuery struct {
	Code     string `form:"code" binding:"required"`
	Provider string `form:"provider" binding:"omitempty,oneof=google facebook twitch"`
}

type LoginQuery struct {
	Redirect string `form:"redirect"`
}

type ReturnQuery struct {
	Code  string `form:"code"`
	State string `form:"state"`
}

type WalletLoginRequest struct {
	Address string `json:"address" binding:"required"`
}

type CompleteLoginRequest struct {
	Token string `json:"token" binding:"required"`
	Salt  string `json:"salt" binding:"required,numeric"`
}

type StatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Address       string `json:"address,omitempty"`
	LoginType     string `json:"loginType,omitempty"`
	Provider      string `json:"provider,omitempty"`
}
