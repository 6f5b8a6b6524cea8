package users

// Profile holds the optional account page fields
type Profile struct {
	Phone      string  `json:"phone"`
	Country    string  `json:"country"`
	City       string  `json:"city"`
	Address    string  `json:"address"`
	PostalCode string  `json:"postalCode"`
	HeightCm   float64 `json:"heightCm"`
	WeightKg   float64 `json:"weightKg"`
	Age        int     `json:"age"`
	Goals      string  `json:"goals"`
	Occupation string  `json:"occupation"`
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Profile
}
