package dto

type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type DashboardResponse struct {
	FirstName string `json:"first_name"`
}

type PortfolioEntry struct {
	Ticker        string  `json:"ticker"`
	Industry      string  `json:"industry"`
	Quantity      int     `json:"quantity"`
	PricePerShare float64 `json:"price_per_share"`
	Date          string  `json:"date"`
}
