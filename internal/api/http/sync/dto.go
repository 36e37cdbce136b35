package sync

type triggerInput struct {
	Body triggerRequest
}

type triggerRequest struct {
	// Archive is optional; empty means "build a fresh backup and sync it".
	Archive string `json:"archive,omitempty" doc:"Path to an existing archive"`
}

type triggerOutput struct {
	Body triggerResponse
}

type triggerResponse struct {
	Backend     string `json:"backend"`
	Destination string `json:"destination"`
	Size        int64  `json:"size"`
	DryRun      bool   `json:"dry_run"`
}
