package dto

import (
	"github.com/freelancehub/agency-inbox/models"
)

type SavedReplyDto struct {
	Id        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Shortcut  string `json:"shortcut"`
	Category  string `json:"category"`
	IsDefault bool   `json:"is_default"`
}

func AdaptSavedReplyDto(r models.SavedReply) SavedReplyDto {
	return SavedReplyDto{
		Id:        r.Id,
		Title:     r.Title,
		Body:      r.Body,
		Shortcut:  r.Shortcut,
		Category:  string(r.Category),
		IsDefault: r.IsDefault,
	}
}

type SavedReplyBody struct {
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body" binding:"required"`
	Shortcut  string `json:"shortcut"`
	Category  string `json:"category" binding:"omitempty,oneof=general sales support talent"`
	IsDefault bool   `json:"is_default"`
}

func AdaptSavedReplyInput(body SavedReplyBody) models.SavedReplyInput {
	return models.SavedReplyInput{
		Title:     body.Title,
		Body:      body.Body,
		Shortcut:  body.Shortcut,
		Category:  models.SavedReplyCategory(body.Category),
		IsDefault: body.IsDefault,
	}
}
