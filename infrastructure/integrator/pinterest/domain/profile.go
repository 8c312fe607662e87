package pinterestdomain

// Profile é a resposta de /users/me
type Profile struct {
	Username       string `json:"username"`
	AccountType    string `json:"account_type"`
	BusinessName   string `json:"business_name,omitempty"`
	ProfileImage   string `json:"profile_image,omitempty"`
	WebsiteURL     string `json:"website_url,omitempty"`
	About          string `json:"about,omitempty"`
	BoardCount     int64  `json:"board_count"`
	PinCount       int64  `json:"pin_count"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
	MonthlyViews   int64  `json:"monthly_views"`
}
