package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/homereno/renoterm/internal/model"
)

// ListContractors fetches the contractor roster.
func (c *Client) ListContractors(ctx context.Context) ([]model.Contractor, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/contractors", &raw); err != nil {
		return nil, fmt.Errorf("listing contractors: %w", err)
	}
	inner := listEnvelope(raw, "contractors")
	if inner == nil {
		return []model.Contractor{}, nil
	}
	var wires []contractorWire
	if err := json.Unmarshal(inner, &wires); err != nil {
		return nil, fmt.Errorf("decoding contractor list: %w", err)
	}
	roster := make([]model.Contractor, 0, len(wires))
	for _, w := range wires {
		roster = append(roster, w.toModel())
	}
	return roster, nil
}

// GetContractor fetches a single contractor by id.
func (c *Client) GetContractor(ctx context.Context, id string) (*model.Contractor, error) {
	var wire contractorWire
	if err := c.get(ctx, "/api/contractors/"+id, &wire); err != nil {
		return nil, fmt.Errorf("getting contractor %s: %w", id, err)
	}
	ctr := wire.toModel()
	return &ctr, nil
}
