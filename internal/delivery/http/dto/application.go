package dto

import "time"

type ApplicationRequest struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	URL         string     `json:"url"`
	DateApplied *time.Time `json:"date_applied"`
}
