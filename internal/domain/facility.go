package domain

// Facility is a registered receiving site for transported soil, identified
// by a fixed numeric ID assigned outside this system.
type Facility struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}
