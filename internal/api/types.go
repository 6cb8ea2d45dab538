package api

import (
	"encoding/json"
	"math"

	"github.com/homereno/renoterm/internal/contractor"
	"github.com/homereno/renoterm/internal/model"
)

// flexID accepts an identifier sent as either a JSON string or a number;
// older backend records use numeric ids.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// projectWire is the project record as the backend sends it, before
// normalization. Ids may arrive under id or _id, worker counts under two
// different keys, and the contractor as an id, an object, or a bare name.
type projectWire struct {
	ID      flexID `json:"id"`
	MongoID flexID `json:"_id"`

	Name    string   `json:"name"`
	Address string   `json:"address"`
	Budget  *float64 `json:"budget"`

	Progress *float64 `json:"progress"`
	Eta      *float64 `json:"eta"`

	WorkersCamel *float64 `json:"numberOfWorkers"`
	WorkersSnake *float64 `json:"number_of_workers"`

	Finished  *bool    `json:"finished"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Contractor     json.RawMessage `json:"contractor"`
	ContractorID   flexID          `json:"contractorId"`
	ContractorName string          `json:"contractorName"`

	TaskIDs []string `json:"taskIds"`
}

// contractorEmbed is the embedded contractor object some project records
// carry instead of a bare id.
type contractorEmbed struct {
	ID       flexID `json:"id"`
	MongoID  flexID `json:"_id"`
	FullName string `json:"fullName"`
}

// toModel normalizes a wire project into the model shape. Contractor
// strings go through the resolver's id-vs-name classification.
func (w projectWire) toModel(resolver *contractor.Resolver) model.Project {
	p := model.Project{
		ID:      coalesceID(w.ID, w.MongoID),
		Name:    w.Name,
		Address: w.Address,
		TaskIDs: w.TaskIDs,
	}
	if w.Budget != nil {
		p.Budget = *w.Budget
	}
	if w.Eta != nil {
		p.EtaWeeks = *w.Eta
	}
	if w.Progress != nil {
		p.Progress = int(math.Round(*w.Progress))
	}
	if w.WorkersSnake != nil {
		p.Workers = int(math.Round(*w.WorkersSnake))
	} else if w.WorkersCamel != nil {
		p.Workers = int(math.Round(*w.WorkersCamel))
	}
	if w.Finished != nil {
		p.Finished = *w.Finished
	}
	p.Latitude = w.Latitude
	p.Longitude = w.Longitude
	p.Contractor = w.contractorRef(resolver)
	return p.Normalize()
}

// contractorRef folds the three contractor shapes into one ref: an
// explicit contractorId wins, then a string contractor (classified as id
// or display name), then an embedded object. A separately-sent
// contractorName fills the name when nothing else did.
func (w projectWire) contractorRef(resolver *contractor.Resolver) model.ContractorRef {
	ref := model.ContractorRef{ID: string(w.ContractorID)}

	if len(w.Contractor) > 0 && string(w.Contractor) != "null" {
		switch w.Contractor[0] {
		case '{':
			var embed contractorEmbed
			if err := json.Unmarshal(w.Contractor, &embed); err == nil {
				if ref.ID == "" {
					ref.ID = coalesceID(embed.ID, embed.MongoID)
				}
				if ref.Name == "" {
					ref.Name = embed.FullName
				}
			}
		case '"':
			var s string
			if err := json.Unmarshal(w.Contractor, &s); err == nil && ref.ID == "" {
				classified := resolver.Classify(s)
				ref.ID = classified.ID
				if ref.Name == "" {
					ref.Name = classified.Name
				}
			}
		default:
			// Numeric legacy id.
			var n json.Number
			if err := json.Unmarshal(w.Contractor, &n); err == nil && ref.ID == "" {
				ref.ID = n.String()
			}
		}
	}

	if ref.Name == "" {
		ref.Name = w.ContractorName
	}
	return ref
}

// contractorWire is a roster record as the backend sends it.
type contractorWire struct {
	ID        flexID  `json:"id"`
	MongoID   flexID  `json:"_id"`
	FullName  string  `json:"fullName"`
	Price     float64 `json:"price"`
	Expertise string  `json:"expertise"`
}

func (w contractorWire) toModel() model.Contractor {
	return model.Contractor{
		ID:        coalesceID(w.ID, w.MongoID),
		FullName:  w.FullName,
		Price:     w.Price,
		Expertise: model.Expertise(w.Expertise),
	}
}

// taskWire is a task record as the backend sends it.
type taskWire struct {
	ID          flexID `json:"id"`
	MongoID     flexID `json:"_id"`
	ProjectID   flexID `json:"projectId"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

func (w taskWire) toModel() model.Task {
	return model.Task{
		ID:          coalesceID(w.ID, w.MongoID),
		ProjectID:   string(w.ProjectID),
		Name:        w.Name,
		Status:      model.TaskStatus(w.Status),
		Description: w.Description,
	}
}

// listEnvelope unwraps list responses that arrive either as a bare array
// or wrapped in a {projects: [...]} / {data: [...]} envelope.
func listEnvelope(raw json.RawMessage, key string) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	if raw[0] == '[' {
		return raw
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil
	}
	if inner, ok := envelope[key]; ok && len(inner) > 0 && inner[0] == '[' {
		return inner
	}
	if inner, ok := envelope["data"]; ok && len(inner) > 0 && inner[0] == '[' {
		return inner
	}
	return nil
}

func coalesceID(ids ...flexID) string {
	for _, id := range ids {
		if id != "" {
			return string(id)
		}
	}
	return ""
}
