package httpmodels

import (
	"time"

	"github.com/freelancehub/agency-inbox/models"
)

type HTTPSupportCase struct {
	Id        string     `json:"id"`
	ThreadId  string     `json:"threadId"`
	Title     string     `json:"title"`
	Priority  string     `json:"priority"`
	Status    string     `json:"status"`
	Summary   string     `json:"summary"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func AdaptSupportCase(h HTTPSupportCase) models.SupportCase {
	c := models.SupportCase{
		Id:       h.Id,
		ThreadId: h.ThreadId,
		Title:    h.Title,
		Priority: models.ThreadPriority(h.Priority),
		Status:   models.SupportCaseStatus(h.Status),
		Summary:  h.Summary,
	}
	if c.Status == "" {
		c.Status = models.SupportCaseOpen
	}
	if h.CreatedAt != nil {
		c.CreatedAt = *h.CreatedAt
	}
	if h.UpdatedAt != nil {
		c.UpdatedAt = *h.UpdatedAt
	}
	return c
}
