package model

// ProjectImage is a photo or rendering attached to a project. The TUI
// lists images by URL; the binary content stays on the server.
type ProjectImage struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	UploadedAt  string `json:"uploadedAt,omitempty"`
	UploadedBy  string `json:"uploadedBy,omitempty"`
}
