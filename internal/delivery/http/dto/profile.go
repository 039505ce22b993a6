package dto

type ProfileRequest struct {
	Skills      []string `json:"skills"`
	SearchTerms []string `json:"search_terms"`
	Location    string   `json:"location"`
}
