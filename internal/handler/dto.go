package handler

import (
	"time"

	"github.com/ideaforge-io/ideaforge/internal/domain"
)

// UserDTO is the JSON representation of a user. It never carries the
// password hash.
type UserDTO struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	Bio        string   `json:"bio"`
	Type       string   `json:"type"`
	Address    string   `json:"address"`
	Skills     []string `json:"skills"`
	Reputation int      `json:"reputation"`
	CreatedAt  string   `json:"createdAt"`
	UpdatedAt  string   `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Bio:        u.Bio,
		Type:       string(u.Type),
		Address:    u.Address,
		Skills:     u.Skills,
		Reputation: u.Reputation,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  u.UpdatedAt.Format(time.RFC3339),
	}
}

// IdeaDTO is the JSON representation of an idea.
type IdeaDTO struct {
	ID                    string   `json:"id"`
	CreatorID             string   `json:"creatorId"`
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	Category              string   `json:"category"`
	Tags                  []string `json:"tags"`
	FeasibilityScore      int      `json:"feasibilityScore"`
	MarketSize            string   `json:"marketSize"`
	CompetitionLevel      string   `json:"competitionLevel"`
	DevelopmentComplexity string   `json:"developmentComplexity"`
	FundingRequired       float64  `json:"fundingRequired"`
	EquityOffered         float64  `json:"equityOffered"`
	Status                string   `json:"status"`
	NFTTokenID            string   `json:"nftTokenId"`
	CreatedAt             string   `json:"createdAt"`
	UpdatedAt             string   `json:"updatedAt"`
}

func toIdeaDTO(i *domain.Idea) IdeaDTO {
	return IdeaDTO{
		ID:                    i.ID,
		CreatorID:             i.CreatorID,
		Title:                 i.Title,
		Description:           i.Description,
		Category:              i.Category,
		Tags:                  i.Tags,
		FeasibilityScore:      i.FeasibilityScore,
		MarketSize:            i.MarketSize,
		CompetitionLevel:      i.CompetitionLevel,
		DevelopmentComplexity: i.DevelopmentComplexity,
		FundingRequired:       i.FundingRequired,
		EquityOffered:         i.EquityOffered,
		Status:                string(i.Status),
		NFTTokenID:            i.NFTTokenID,
		CreatedAt:             i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             i.UpdatedAt.Format(time.RFC3339),
	}
}

func toIdeaDTOs(ideas []domain.Idea) []IdeaDTO {
	dtos := make([]IdeaDTO, len(ideas))
	for i := range ideas {
		dtos[i] = toIdeaDTO(&ideas[i])
	}
	return dtos
}

// MilestoneDTO is the JSON representation of a milestone.
type MilestoneDTO struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	FundingAmount float64 `json:"fundingAmount"`
	Status        string  `json:"status"`
	DueDate       string  `json:"dueDate"`
	CompletedDate *string `json:"completedDate,omitempty"`
}

func toMilestoneDTOs(milestones []domain.Milestone) []MilestoneDTO {
	dtos := make([]MilestoneDTO, len(milestones))
	for i, m := range milestones {
		dtos[i] = MilestoneDTO{
			ID:            m.ID,
			Title:         m.Title,
			Description:   m.Description,
			FundingAmount: m.FundingAmount,
			Status:        string(m.Status),
			DueDate:       m.DueDate.Format(time.RFC3339),
		}
		if m.CompletedDate != nil {
			t := m.CompletedDate.Format(time.RFC3339)
			dtos[i].CompletedDate = &t
		}
	}
	return dtos
}

// ProjectDTO is the JSON representation of a project.
type ProjectDTO struct {
	ID                  string         `json:"id"`
	IdeaID              string         `json:"ideaId"`
	ExecutorID          string         `json:"executorId"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Milestones          []MilestoneDTO `json:"milestones"`
	TotalFunding        float64        `json:"totalFunding"`
	CurrentFunding      float64        `json:"currentFunding"`
	Status              string         `json:"status"`
	StartDate           string         `json:"startDate"`
	EstimatedCompletion string         `json:"estimatedCompletion,omitempty"`
	ActualCompletion    *string        `json:"actualCompletion,omitempty"`
	CreatedAt           string         `json:"createdAt"`
	UpdatedAt           string         `json:"updatedAt"`
}

func toProjectDTO(p *domain.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:             p.ID,
		IdeaID:         p.IdeaID,
		ExecutorID:     p.ExecutorID,
		Title:          p.Title,
		Description:    p.Description,
		Milestones:     toMilestoneDTOs(p.Milestones),
		TotalFunding:   p.TotalFunding,
		CurrentFunding: p.CurrentFunding,
		Status:         string(p.Status),
		StartDate:      p.StartDate.Format(time.RFC3339),
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}
	if !p.EstimatedCompletion.IsZero() {
		dto.EstimatedCompletion = p.EstimatedCompletion.Format(time.RFC3339)
	}
	if p.ActualCompletion != nil {
		t := p.ActualCompletion.Format(time.RFC3339)
		dto.ActualCompletion = &t
	}
	return dto
}

func toProjectDTOs(projects []domain.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = toProjectDTO(&projects[i])
	}
	return dtos
}

// FundingDTO is the JSON representation of a funding commitment.
type FundingDTO struct {
	ID               string  `json:"id"`
	ProjectID        string  `json:"projectId"`
	FunderID         string  `json:"funderId"`
	Amount           float64 `json:"amount"`
	EquityPercentage float64 `json:"equityPercentage"`
	Terms            string  `json:"terms"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

func toFundingDTO(f *domain.Funding) FundingDTO {
	return FundingDTO{
		ID:               f.ID,
		ProjectID:        f.ProjectID,
		FunderID:         f.FunderID,
		Amount:           f.Amount,
		EquityPercentage: f.EquityPercentage,
		Terms:            f.Terms,
		Status:           string(f.Status),
		CreatedAt:        f.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        f.UpdatedAt.Format(time.RFC3339),
	}
}

func toFundingDTOs(fundings []domain.Funding) []FundingDTO {
	dtos := make([]FundingDTO, len(fundings))
	for i := range fundings {
		dtos[i] = toFundingDTO(&fundings[i])
	}
	return dtos
}

// DataRecordDTO is the JSON representation of a data record.
type DataRecordDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Key       string `json:"key"`
	Value     any    `json:"value"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toDataRecordDTO(r *domain.DataRecord) DataRecordDTO {
	return DataRecordDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		Key:       r.Key,
		Value:     r.Value,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
}

func toDataRecordDTOs(records []domain.DataRecord) []DataRecordDTO {
	dtos := make([]DataRecordDTO, len(records))
	for i := range records {
		dtos[i] = toDataRecordDTO(&records[i])
	}
	return dtos
}
