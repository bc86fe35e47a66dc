package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/models"
	"github.com/anprojects-core/repositories"
	"github.com/google/uuid"
)

// MilestoneService manages project milestones and units
type MilestoneService struct {
	milestones *repositories.MilestoneRepository
	units      *repositories.UnitRepository
	now        func() time.Time
	newID      func() string
}

// NewMilestoneService creates a new milestone service instance
func NewMilestoneService(milestones *repositories.MilestoneRepository, units *repositories.UnitRepository) *MilestoneService {
	return &MilestoneService{
		milestones: milestones,
		units:      units,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// ListMilestones returns a project's milestones, optionally only those of one unit
func (s *MilestoneService) ListMilestones(ctx context.Context, projectID, unitID string) []models.ProjectMilestone {
	if unitID != "" {
		return s.milestones.FindByUnit(ctx, projectID, unitID)
	}
	return s.milestones.FindByProjectID(ctx, projectID)
}

// Stats counts a project's milestones by status
func (s *MilestoneService) Stats(ctx context.Context, projectID string) dto.MilestoneStats {
	milestones := s.milestones.FindByProjectID(ctx, projectID)
	stats := dto.MilestoneStats{Total: len(milestones)}
	for _, m := range milestones {
		switch m.Status {
		case models.MilestoneStatusCompleted:
			stats.Completed++
		case models.MilestoneStatusPending:
			stats.Pending++
		case models.MilestoneStatusInProgress:
			stats.InProgress++
		}
	}
	return stats
}

func (s *MilestoneService) GetMilestone(ctx context.Context, id string) (models.ProjectMilestone, error) {
	milestone, ok := s.milestones.FindByID(ctx, id)
	if !ok {
		return models.ProjectMilestone{}, ErrNotFound
	}
	return milestone, nil
}

func (s *MilestoneService) GetUnit(ctx context.Context, id string) (models.ProjectUnit, error) {
	unit, ok := s.units.FindByID(ctx, id)
	if !ok {
		return models.ProjectUnit{}, ErrNotFound
	}
	return unit, nil
}

// CreateMilestone appends a milestone to the project
func (s *MilestoneService) CreateMilestone(ctx context.Context, projectID string, req dto.CreateMilestoneRequest) (models.ProjectMilestone, error) {
	status := models.MilestoneStatus(req.Status)
	if status == "" {
		status = models.MilestoneStatusPending
	}
	if !status.Valid() {
		return models.ProjectMilestone{}, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	if req.Date != "" && !validDate(req.Date) {
		return models.ProjectMilestone{}, fmt.Errorf("%w: date %q", ErrInvalidInput, req.Date)
	}

	now := s.now().UTC()
	milestone := models.ProjectMilestone{
		ID:             s.newID(),
		ProjectID:      projectID,
		UnitID:         req.UnitID,
		Name:           req.Name,
		Date:           req.Date,
		Status:         status,
		Phase:          req.Phase,
		BudgetItemID:   req.BudgetItemID,
		TenderID:       req.TenderID,
		BudgetLinkText: req.BudgetLinkText,
		Order:          s.milestones.NextOrder(ctx, projectID),
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return s.milestones.Create(ctx, milestone), nil
}

func (s *MilestoneService) UpdateMilestone(ctx context.Context, id string, fields map[string]any) (models.ProjectMilestone, error) {
	if raw, ok := fields["status"]; ok {
		status, _ := raw.(string)
		if !models.MilestoneStatus(status).Valid() {
			return models.ProjectMilestone{}, fmt.Errorf("%w: %v", ErrInvalidStatus, raw)
		}
	}
	if err := checkDateField(fields, "date", false); err != nil {
		return models.ProjectMilestone{}, err
	}
	delete(fields, "id")
	delete(fields, "project_id")
	milestone, ok, err := s.milestones.Update(ctx, id, fields)
	if err != nil {
		return models.ProjectMilestone{}, err
	}
	if !ok {
		return models.ProjectMilestone{}, ErrNotFound
	}
	return milestone, nil
}

func (s *MilestoneService) DeleteMilestone(ctx context.Context, id string) error {
	if _, ok := s.milestones.FindByID(ctx, id); !ok {
		return ErrNotFound
	}
	s.milestones.Delete(ctx, id)
	return nil
}

func (s *MilestoneService) ListUnits(ctx context.Context, projectID string) []models.ProjectUnit {
	return s.units.FindByProjectID(ctx, projectID)
}

// CreateUnit appends a unit to the project; the type defaults to apartment
func (s *MilestoneService) CreateUnit(ctx context.Context, projectID string, req dto.CreateUnitRequest) (models.ProjectUnit, error) {
	unitType := models.UnitType(req.Type)
	if unitType == "" {
		unitType = models.UnitTypeApartment
	}
	if !unitType.Valid() {
		return models.ProjectUnit{}, fmt.Errorf("%w: unit type %q", ErrInvalidStatus, req.Type)
	}

	now := s.now().UTC()
	unit := models.ProjectUnit{
		ID:        s.newID(),
		ProjectID: projectID,
		Name:      req.Name,
		Type:      unitType,
		Color:     req.Color,
		Icon:      req.Icon,
		Order:     s.units.NextOrder(ctx, projectID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.units.Create(ctx, unit), nil
}

func (s *MilestoneService) UpdateUnit(ctx context.Context, id string, fields map[string]any) (models.ProjectUnit, error) {
	if raw, ok := fields["type"]; ok {
		value, _ := raw.(string)
		if !models.UnitType(value).Valid() {
			return models.ProjectUnit{}, fmt.Errorf("%w: unit type %v", ErrInvalidStatus, raw)
		}
	}
	delete(fields, "id")
	delete(fields, "project_id")
	unit, ok, err := s.units.Update(ctx, id, fields)
	if err != nil {
		return models.ProjectUnit{}, err
	}
	if !ok {
		return models.ProjectUnit{}, ErrNotFound
	}
	return unit, nil
}

func (s *MilestoneService) DeleteUnit(ctx context.Context, id string) error {
	if _, ok := s.units.FindByID(ctx, id); !ok {
		return ErrNotFound
	}
	s.units.Delete(ctx, id)
	return nil
}
