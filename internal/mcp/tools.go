package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/vbonduro/planttracker/internal/domain"
	"github.com/vbonduro/planttracker/internal/service"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_plants",
		Description: "List plants with the pot and soil each one currently lives in",
	}, s.handleListPlants)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_plant",
		Description: "Get a plant with its current pot, soil and full placement history",
	}, s.handleGetPlant)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "move_plant",
		Description: "Move a plant into a pot with a soil mix, closing any current placement of the plant or the pot",
	}, s.handleMovePlant)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_plant",
		Description: "Mark a plant as removed (died, given away) and close its current placement",
	}, s.handleRemovePlant)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "lookup_pot",
		Description: "Look up a pot by the token printed on its QR label",
	}, s.handleLookupPot)
}

type listPlantsInput struct {
	IncludeRemoved bool `json:"include_removed,omitempty" jsonschema:"Also list plants that have been removed"`
}

type listPlantsOutput struct {
	Plants []*service.PlantDetail `json:"plants"`
}

type plantIDInput struct {
	ID int64 `json:"id" jsonschema:"Plant ID"`
}

type movePlantInput struct {
	PlantID   int64  `json:"plant_id" jsonschema:"Plant to move"`
	PotID     int64  `json:"pot_id" jsonschema:"Destination pot ID"`
	SoilID    int64  `json:"soil_id" jsonschema:"Soil mix ID"`
	StartDate string `json:"start_date,omitempty" jsonschema:"Date of the move as YYYY-MM-DD, defaults to today"`
	Notes     string `json:"notes,omitempty" jsonschema:"Optional notes about the move"`
}

type removePlantInput struct {
	ID     int64  `json:"id" jsonschema:"Plant ID"`
	Reason string `json:"reason,omitempty" jsonschema:"Why the plant was removed"`
}

type lookupPotInput struct {
	QRCodeID string `json:"qr_code_id" jsonschema:"Token from the pot's QR label"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

func (s *Server) handleListPlants(ctx context.Context, req *mcp.CallToolRequest, input listPlantsInput) (*mcp.CallToolResult, any, error) {
	plants, err := s.service.ListPlants(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list plants: %w", err)
	}

	out := listPlantsOutput{Plants: make([]*service.PlantDetail, 0, len(plants))}
	for _, p := range plants {
		if p.Removed() && !input.IncludeRemoved {
			continue
		}
		out.Plants = append(out.Plants, p)
	}
	return nil, out, nil
}

func (s *Server) handleGetPlant(ctx context.Context, req *mcp.CallToolRequest, input plantIDInput) (*mcp.CallToolResult, any, error) {
	plant, err := s.service.GetPlant(ctx, input.ID)
	if err != nil {
		return nil, nil, err
	}
	return nil, plant, nil
}

func (s *Server) handleMovePlant(ctx context.Context, req *mcp.CallToolRequest, input movePlantInput) (*mcp.CallToolResult, simpleOutput, error) {
	move := service.MoveRequest{PlantID: input.PlantID, PotID: input.PotID, SoilID: input.SoilID}
	if input.StartDate != "" {
		d, err := domain.ParseDate(input.StartDate)
		if err != nil {
			return nil, simpleOutput{}, err
		}
		move.StartDate = &d
	}
	if input.Notes != "" {
		move.Notes = &input.Notes
	}

	detail, err := s.service.Move(ctx, move)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Moved %s into pot %s (%s) with %s",
			detail.Name, detail.CurrentPot.QRCodeID, detail.CurrentPot.Room, detail.CurrentSoil.Name),
	}, nil
}

func (s *Server) handleRemovePlant(ctx context.Context, req *mcp.CallToolRequest, input removePlantInput) (*mcp.CallToolResult, simpleOutput, error) {
	plant, err := s.service.RemovePlant(ctx, input.ID, input.Reason)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Removed %s: %s", plant.Name, *plant.RemovedReason),
	}, nil
}

func (s *Server) handleLookupPot(ctx context.Context, req *mcp.CallToolRequest, input lookupPotInput) (*mcp.CallToolResult, any, error) {
	pot, err := s.service.GetPotByQR(ctx, input.QRCodeID)
	if err != nil {
		return nil, nil, err
	}
	return nil, pot, nil
}
