package models

import (
	"time"
)

// Project is the top-level scope every other entity hangs off
type Project struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description,omitempty" gorm:"default:null"`
	Address     string    `json:"address,omitempty" gorm:"default:null"`
	Status      string    `json:"status,omitempty" gorm:"type:varchar(20);default:null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UnitType describes what a project unit is
type UnitType string

const (
	UnitTypeApartment UnitType = "apartment"
	UnitTypeCommon    UnitType = "common"
	UnitTypeBuilding  UnitType = "building"
)

func (t UnitType) Valid() bool {
	return t == UnitTypeApartment || t == UnitTypeCommon || t == UnitTypeBuilding
}

// ProjectUnit is an apartment, common area or building inside a project
type ProjectUnit struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	ProjectID string    `json:"project_id" gorm:"type:text;not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Type      UnitType  `json:"type" gorm:"type:varchar(20)"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	Order     int       `json:"order" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MilestoneStatus is the progress state of a milestone
type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "pending"
	MilestoneStatusInProgress MilestoneStatus = "in-progress"
	MilestoneStatusCompleted  MilestoneStatus = "completed"
)

func (s MilestoneStatus) Valid() bool {
	return s == MilestoneStatusPending || s == MilestoneStatusInProgress || s == MilestoneStatusCompleted
}

// ProjectMilestone is a dated checkpoint, optionally tied to a unit and a budget item
type ProjectMilestone struct {
	ID             string          `json:"id" gorm:"primaryKey;type:text"`
	ProjectID      string          `json:"project_id" gorm:"type:text;not null;index"`
	UnitID         string          `json:"unit_id" gorm:"type:text;default:null;index"`
	Name           string          `json:"name" gorm:"not null"`
	Date           string          `json:"date" gorm:"type:date;default:null"`
	Status         MilestoneStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Phase          string          `json:"phase,omitempty"`
	BudgetItemID   string          `json:"budget_item_id,omitempty" gorm:"type:text;default:null"`
	TenderID       string          `json:"tender_id,omitempty" gorm:"type:text;default:null"`
	BudgetLinkText string          `json:"budget_link_text,omitempty"`
	Order          int             `json:"order" gorm:"not null;default:0"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (p Project) GetID() string          { return p.ID }
func (u ProjectUnit) GetID() string      { return u.ID }
func (u ProjectUnit) GetOrder() int      { return u.Order }
func (m ProjectMilestone) GetID() string { return m.ID }
func (m ProjectMilestone) GetOrder() int { return m.Order }
