package attachment

import (
	"fmt"

	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/google/uuid"
)

// MergeSingle keeps existing unless a new file was uploaded for field.
func MergeSingle(existing string, files Files, field string) string {
	if p, ok := files.First(field); ok {
		return p
	}
	return existing
}

// MergeGallery appends every file uploaded for field to existing, preserving order.
func MergeGallery(existing []string, files Files, field string) []string {
	out := make([]string, 0, len(existing)+len(files[field]))
	out = append(out, existing...)
	return append(out, files[field]...)
}

// MergeItems resolves the image of each submitted service or product.
// For the item at position i the first match wins:
//
//	field[<item id>]      file tagged with the item's stable id
//	field[i]              file tagged with the position
//	field                 the i-th untagged file
//	existing item by id   submitted image if set, else the stored one
//
// otherwise the submitted item is kept as is. Items without an id get one.
func MergeItems(existing, submitted model.StoreItems, files Files, field string) model.StoreItems {
	out := make(model.StoreItems, len(submitted))
	untagged := files[field]

	for i, item := range submitted {
		if item.ID != "" {
			if p, ok := files.First(fmt.Sprintf("%s[%s]", field, item.ID)); ok {
				item.Image = p
				out[i] = item
				continue
			}
		}
		if p, ok := files.First(fmt.Sprintf("%s[%d]", field, i)); ok {
			item.Image = p
		} else if i < len(untagged) {
			item.Image = untagged[i]
		} else if j := existing.IndexOf(item.ID); j >= 0 && item.Image == "" {
			item.Image = existing[j].Image
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		out[i] = item
	}
	return out
}
