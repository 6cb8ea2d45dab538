package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/homereno/renoterm/internal/model"
)

// CreateProjectInput is the payload for creating a project. The worker
// headcount is derived from the budget by the caller (see
// schedule.AutoWorkers); users never type it directly at creation time.
type CreateProjectInput struct {
	Name         string   `json:"name"`
	Address      string   `json:"address,omitempty"`
	Budget       float64  `json:"budget"`
	EtaWeeks     float64  `json:"eta"`
	Progress     int      `json:"progress"`
	Workers      int      `json:"number_of_workers"`
	ContractorID string   `json:"contractor,omitempty"`
	TaskIDs      []string `json:"taskIds"`
}

// ListProjects fetches all projects visible to the session.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/projects", &raw); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return c.decodeProjects(raw)
}

// GetProject fetches a single project by id.
func (c *Client) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var wire projectWire
	if err := c.get(ctx, "/api/projects/"+id, &wire); err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	p := wire.toModel(c.resolver)
	return &p, nil
}

// CreateProject creates a project and returns the server's record.
func (c *Client) CreateProject(ctx context.Context, input CreateProjectInput) (*model.Project, error) {
	if input.TaskIDs == nil {
		input.TaskIDs = []string{}
	}
	var wire projectWire
	if err := c.post(ctx, "/api/projects", input, &wire); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	p := wire.toModel(c.resolver)
	return &p, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/api/projects/"+id); err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	return nil
}

// UpdateName saves a new project name and returns the confirmed record.
func (c *Client) UpdateName(ctx context.Context, id, name string) (*model.Project, error) {
	return c.patchProject(ctx, id, "/name", map[string]interface{}{"name": name})
}

// Coordinates pairs a geocoded position for an address save.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// UpdateAddress saves a new address, with geocoded coordinates when the
// lookup produced any.
func (c *Client) UpdateAddress(ctx context.Context, id, address string, coords *Coordinates) (*model.Project, error) {
	payload := map[string]interface{}{"address": address}
	if coords != nil {
		payload["latitude"] = coords.Latitude
		payload["longitude"] = coords.Longitude
	}
	return c.patchProject(ctx, id, "/address", payload)
}

// UpdateBudget saves a new budget.
func (c *Client) UpdateBudget(ctx context.Context, id string, budget float64) (*model.Project, error) {
	return c.patchProject(ctx, id, "/budget", map[string]interface{}{"budget": budget})
}

// UpdateProgress saves a new manual progress percentage.
func (c *Client) UpdateProgress(ctx context.Context, id string, progress int) (*model.Project, error) {
	return c.patchProject(ctx, id, "/progress", map[string]interface{}{"progress": progress})
}

// UpdateEta saves a new baseline estimate in weeks.
func (c *Client) UpdateEta(ctx context.Context, id string, etaWeeks float64) (*model.Project, error) {
	return c.patchProject(ctx, id, "/eta", map[string]interface{}{"eta": etaWeeks})
}

// UpdateWorkers saves a new worker headcount.
func (c *Client) UpdateWorkers(ctx context.Context, id string, workers int) (*model.Project, error) {
	return c.patchProject(ctx, id, "/workers", map[string]interface{}{"workers": workers})
}

// UpdateFinished saves the finished flag.
func (c *Client) UpdateFinished(ctx context.Context, id string, finished bool) (*model.Project, error) {
	return c.patchProject(ctx, id, "/finished", map[string]interface{}{"finished": finished})
}

// AssignContractor assigns the contractor with the given id.
func (c *Client) AssignContractor(ctx context.Context, id, contractorID string) (*model.Project, error) {
	return c.patchProject(ctx, id, "/contractor", map[string]interface{}{"contractorId": contractorID})
}

// RemoveContractor clears the project's contractor assignment.
func (c *Client) RemoveContractor(ctx context.Context, id string) (*model.Project, error) {
	return c.patchProject(ctx, id, "/contractor/remove", map[string]interface{}{})
}

// AddTask attaches a new task to the project's membership list and
// returns the updated project.
func (c *Client) AddTask(ctx context.Context, projectID string, task model.Task) (*model.Project, error) {
	var wire projectWire
	if err := c.post(ctx, "/api/projects/"+projectID+"/tasks", task, &wire); err != nil {
		return nil, fmt.Errorf("adding task to project %s: %w", projectID, err)
	}
	p := wire.toModel(c.resolver)
	return &p, nil
}

// RemoveTask detaches a task from the project's membership list.
func (c *Client) RemoveTask(ctx context.Context, projectID, taskID string) error {
	if err := c.delete(ctx, "/api/projects/"+projectID+"/tasks/"+taskID); err != nil {
		return fmt.Errorf("removing task %s from project %s: %w", taskID, projectID, err)
	}
	return nil
}

// patchProject issues a field-level PATCH and normalizes the confirmed
// record the server returns.
func (c *Client) patchProject(ctx context.Context, id, suffix string, payload map[string]interface{}) (*model.Project, error) {
	var wire projectWire
	if err := c.patch(ctx, "/api/projects/"+id+suffix, payload, &wire); err != nil {
		return nil, fmt.Errorf("updating project %s%s: %w", id, suffix, err)
	}
	p := wire.toModel(c.resolver)
	return &p, nil
}

// decodeProjects unwraps and normalizes a list response.
func (c *Client) decodeProjects(raw json.RawMessage) ([]model.Project, error) {
	inner := listEnvelope(raw, "projects")
	if inner == nil {
		return []model.Project{}, nil
	}
	var wires []projectWire
	if err := json.Unmarshal(inner, &wires); err != nil {
		return nil, fmt.Errorf("decoding project list: %w", err)
	}
	projects := make([]model.Project, 0, len(wires))
	for _, w := range wires {
		projects = append(projects, w.toModel(c.resolver))
	}
	return projects, nil
}
