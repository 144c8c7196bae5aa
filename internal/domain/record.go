package domain

import "time"

// RawRow is one manifest row exactly as read from the uploaded file. Index
// is 1-based and counts data rows in file order, header excluded, so error
// reports point at the row the user sees in their spreadsheet.
type RawRow struct {
	Index  int
	Values map[string]string
}

// TransportRecord is a manifest row that passed every check, with types
// normalized and the receiving facility resolved, so the rest of the
// application never re-queries the directory.
type TransportRecord struct {
	Address    string   `json:"address"`
	PostalCode int      `json:"postalCode"`
	District   string   `json:"district"`
	Facility   Facility `json:"facility"`

	// Optional metadata; nil or empty when the column was absent or blank.
	Name         string     `json:"name,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
	VehicleType  string     `json:"vehicleType,omitempty"`
	LoadWeightKg *float64   `json:"loadWeightKg,omitempty"`
	FuelType     string     `json:"fuelType,omitempty"`
}
