package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/homereno/renoterm/internal/model"
)

// imageWire is the image record as the backend sends it; ids arrive
// under id or _id, as strings or numbers.
type imageWire struct {
	ID          flexID `json:"id"`
	MongoID     flexID `json:"_id"`
	ProjectID   flexID `json:"projectId"`
	URL         string `json:"url"`
	Description string `json:"description"`
	UploadedAt  string `json:"uploadedAt"`
	UploadedBy  string `json:"uploadedBy"`
}

func (w imageWire) toModel() model.ProjectImage {
	return model.ProjectImage{
		ID:          coalesceID(w.ID, w.MongoID),
		ProjectID:   string(w.ProjectID),
		URL:         w.URL,
		Description: w.Description,
		UploadedAt:  w.UploadedAt,
		UploadedBy:  w.UploadedBy,
	}
}

// ListProjectImages fetches the images attached to a project.
func (c *Client) ListProjectImages(ctx context.Context, projectID string) ([]model.ProjectImage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/images/project/"+projectID, &raw); err != nil {
		return nil, fmt.Errorf("listing images for project %s: %w", projectID, err)
	}
	inner := listEnvelope(raw, "images")
	if inner == nil {
		return []model.ProjectImage{}, nil
	}
	var wires []imageWire
	if err := json.Unmarshal(inner, &wires); err != nil {
		return nil, fmt.Errorf("decoding image list: %w", err)
	}
	images := make([]model.ProjectImage, 0, len(wires))
	for _, w := range wires {
		images = append(images, w.toModel())
	}
	return images, nil
}

// CreateImageFromURL attaches an already-hosted image to a project.
func (c *Client) CreateImageFromURL(ctx context.Context, projectID, url, description string) (*model.ProjectImage, error) {
	payload := map[string]string{"projectId": projectID, "url": url}
	if description != "" {
		payload["description"] = description
	}
	var wire imageWire
	if err := c.post(ctx, "/api/images", payload, &wire); err != nil {
		return nil, fmt.Errorf("attaching image: %w", err)
	}
	img := wire.toModel()
	return &img, nil
}

// DeleteImage detaches an image from its project.
func (c *Client) DeleteImage(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/api/images/"+id); err != nil {
		return fmt.Errorf("deleting image %s: %w", id, err)
	}
	return nil
}
