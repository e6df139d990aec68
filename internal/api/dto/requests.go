package dto

// RegisterRequest é o payload de POST /auth/register
type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginRequest é o payload de POST /auth/login
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// CreateBetRequest é o payload de POST /bets/
type CreateBetRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	League      string   `json:"league"`
	Options     []string `json:"options"`
}

// VoteRequest é o payload de POST /bets/{id}/vote
type VoteRequest struct {
	OptionIndex int `json:"option_index"`
}

// ResolveRequest é o payload de POST /bets/{id}/resolve
type ResolveRequest struct {
	WinningOptionIndex int `json:"winning_option_index"`
}
