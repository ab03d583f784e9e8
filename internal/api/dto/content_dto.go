package dto

// ContentValue is one entry of the public content map.
type ContentValue struct {
	Value    string  `json:"value"`
	ImageURL *string `json:"imageUrl"`
}
