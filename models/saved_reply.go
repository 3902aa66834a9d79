package models

import "slices"

type SavedReplyCategory string

const (
	SavedReplyGeneral SavedReplyCategory = "general"
	SavedReplySales   SavedReplyCategory = "sales"
	SavedReplySupport SavedReplyCategory = "support"
	SavedReplyTalent  SavedReplyCategory = "talent"
)

var ValidSavedReplyCategories = []SavedReplyCategory{
	SavedReplyGeneral, SavedReplySales, SavedReplySupport, SavedReplyTalent,
}

func (c SavedReplyCategory) IsValid() bool {
	return slices.Contains(ValidSavedReplyCategories, c)
}

type SavedReply struct {
	Id        string
	Title     string
	Body      string
	Shortcut  string
	Category  SavedReplyCategory
	IsDefault bool
}

type SavedReplyInput struct {
	Title     string
	Body      string
	Shortcut  string
	Category  SavedReplyCategory
	IsDefault bool
}
