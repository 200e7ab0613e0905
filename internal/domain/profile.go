package domain

// Role gates access to the admin view.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Profile is a discoverable user profile. Profiles are owned by the catalog
// and referenced everywhere else by ID only.
type Profile struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Bio        string   `json:"bio"`
	Interests  []string `json:"interests"`
	ImageURL   string   `json:"imageUrl"`
	Location   string   `json:"location"`
	Occupation string   `json:"occupation"`
	Role       Role     `json:"role,omitempty"`
	Verified   bool     `json:"isVerified,omitempty"`
}
