package gallery

import "github.com/strrl/unsplash-gallery/pkg/models"

// Selection is the enlarged-photo modal. It shares nothing with Session.
type Selection struct {
	IsOpen bool
	Item   *models.Photo
}

// Open shows item in the modal, replacing any previous selection.
func (Selection) Open(item models.Photo) Selection {
	return Selection{IsOpen: true, Item: &item}
}

// Close hides the modal and drops the selected item
func (Selection) Close() Selection {
	return Selection{}
}
