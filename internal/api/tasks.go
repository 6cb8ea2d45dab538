package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/homereno/renoterm/internal/model"
)

// ListTasksForProject fetches the tasks belonging to a project, in
// insertion order.
func (c *Client) ListTasksForProject(ctx context.Context, projectID string) ([]model.Task, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/tasks/project/"+projectID, &raw); err != nil {
		return nil, fmt.Errorf("listing tasks for project %s: %w", projectID, err)
	}
	inner := listEnvelope(raw, "tasks")
	if inner == nil {
		return []model.Task{}, nil
	}
	var wires []taskWire
	if err := json.Unmarshal(inner, &wires); err != nil {
		return nil, fmt.Errorf("decoding task list: %w", err)
	}
	tasks := make([]model.Task, 0, len(wires))
	for _, w := range wires {
		tasks = append(tasks, w.toModel())
	}
	return tasks, nil
}

// GetTask fetches a single task by id.
func (c *Client) GetTask(ctx context.Context, id string) (*model.Task, error) {
	var wire taskWire
	if err := c.get(ctx, "/api/tasks/"+id, &wire); err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	t := wire.toModel()
	return &t, nil
}

// CreateTask creates a task and returns the server's record.
func (c *Client) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	var wire taskWire
	if err := c.post(ctx, "/api/tasks", task, &wire); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	t := wire.toModel()
	return &t, nil
}

// UpdateTask saves a task and returns the confirmed record.
func (c *Client) UpdateTask(ctx context.Context, id string, task model.Task) (*model.Task, error) {
	var wire taskWire
	if err := c.put(ctx, "/api/tasks/"+id, task, &wire); err != nil {
		return nil, fmt.Errorf("updating task %s: %w", id, err)
	}
	t := wire.toModel()
	return &t, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/api/tasks/"+id); err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return nil
}
