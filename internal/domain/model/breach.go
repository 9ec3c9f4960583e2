package model

// Breach is a single breach entry from the breach-lookup service. Field names
// mirror the upstream HIBP payload, which uses PascalCase keys.
type Breach struct {
	Name        string   `json:"Name"`
	Title       string   `json:"Title"`
	Domain      string   `json:"Domain"`
	BreachDate  string   `json:"BreachDate"`
	PwnCount    int64    `json:"PwnCount"`
	Description string   `json:"Description"`
	DataClasses []string `json:"DataClasses"`
	IsVerified  bool     `json:"IsVerified"`
	IsSensitive bool     `json:"IsSensitive"`
}

// PasswordCheck is the result of a password exposure lookup.
type PasswordCheck struct {
	PwnedCount int64 `json:"pwned_count"`
	IsPwned    bool  `json:"is_pwned"`
}
