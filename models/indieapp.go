package models

// IndieApp is the model of the small "naive" payload.
type IndieApp struct {
	Name             string    `json:"name"`
	Introduction     string    `json:"introduction"`
	SupportedOutputs []string  `json:"supported_outputs"`
	Developer        Developer `json:"developer"`
}

// Developer is the nested developer record of an IndieApp.
type Developer struct {
	UserID     int    `json:"user_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	WebsiteURL URL    `json:"website_url"`
}
