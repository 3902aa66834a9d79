package httpmodels

import "github.com/freelancehub/agency-inbox/models"

type HTTPSavedReply struct {
	Id        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Shortcut  string `json:"shortcut,omitempty"`
	Category  string `json:"category"`
	IsDefault bool   `json:"isDefault"`
}

func AdaptSavedReply(h HTTPSavedReply) models.SavedReply {
	category := models.SavedReplyCategory(h.Category)
	if category == "" {
		category = models.SavedReplyGeneral
	}
	return models.SavedReply{
		Id:        h.Id,
		Title:     h.Title,
		Body:      h.Body,
		Shortcut:  h.Shortcut,
		Category:  category,
		IsDefault: h.IsDefault,
	}
}

func AdaptHTTPSavedReplyInput(input models.SavedReplyInput) HTTPSavedReply {
	return HTTPSavedReply{
		Title:     input.Title,
		Body:      input.Body,
		Shortcut:  input.Shortcut,
		Category:  string(input.Category),
		IsDefault: input.IsDefault,
	}
}
