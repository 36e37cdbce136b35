package backup

import "time"

type buildOutput struct {
	Body buildResponse
}

type buildResponse struct {
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	Files     int       `json:"files"`
	Protected bool      `json:"protected"`
	Checksum  string    `json:"checksum"`
}
