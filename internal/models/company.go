package models

// Company is an employer profile in the catalog.
type Company struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Industry      string   `json:"industry,omitempty"`
	Location      string   `json:"location,omitempty"`
	Employees     string   `json:"employees,omitempty"`
	OpenPositions int      `json:"open_positions"`
	TechStack     []string `json:"tech_stack,omitempty"`
	Description   string   `json:"description,omitempty"`
}
