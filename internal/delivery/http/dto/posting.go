package dto

type ParseURLRequest struct {
	URL string `json:"url"`
}
