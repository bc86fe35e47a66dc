package dto

// CreateMilestoneRequest adds a milestone to a project
type CreateMilestoneRequest struct {
	UnitID         string `json:"unit_id"`
	Name           string `json:"name" binding:"required"`
	Date           string `json:"date"`
	Status         string `json:"status"`
	Phase          string `json:"phase"`
	BudgetItemID   string `json:"budget_item_id"`
	TenderID       string `json:"tender_id"`
	BudgetLinkText string `json:"budget_link_text"`
	Notes          string `json:"notes"`
}

// CreateUnitRequest adds an apartment, common area or building to a project
type CreateUnitRequest struct {
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}
