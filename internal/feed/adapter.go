package feed

import (
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// FromGofeed maps a parsed gofeed document onto the internal feed model.
// Absent fields stay zero-valued; no validation happens here.
func FromGofeed(src *gofeed.Feed) *Feed {
	f := &Feed{
		Title: src.Title,
		Link:  src.Link,
	}

	if src.Image != nil {
		f.ImageURL = src.Image.URL
	}

	if src.ITunesExt != nil {
		f.ITunesImageURL = src.ITunesExt.Image
		f.ITunesCategories = flattenCategories(src.ITunesExt.Categories)
		if src.ITunesExt.Owner != nil {
			f.Owner = &Owner{
				Name:  src.ITunesExt.Owner.Name,
				Email: src.ITunesExt.Owner.Email,
			}
		}
	}

	f.Items = make([]Item, 0, len(src.Items))
	for _, it := range src.Items {
		if it == nil {
			continue
		}
		f.Items = append(f.Items, itemFromGofeed(it))
	}

	return f
}

func itemFromGofeed(src *gofeed.Item) Item {
	it := Item{
		GUID:       src.GUID,
		Link:       src.Link,
		Title:      src.Title,
		Categories: src.Categories,
	}

	if len(src.Enclosures) > 0 && src.Enclosures[0] != nil {
		it.EnclosureURL = src.Enclosures[0].URL
	}

	if src.ITunesExt != nil {
		it.Subtitle = src.ITunesExt.Subtitle
		it.ImageURL = src.ITunesExt.Image
		it.Duration = src.ITunesExt.Duration
		it.Season = src.ITunesExt.Season
	}

	// gofeed's typed ITunesItemExtension carries no categories, so item-level
	// itunes categories come from the generic extension map.
	it.ITunesCategories = itemITunesCategories(src.Extensions)

	return it
}

// flattenCategories collects channel-level itunes category texts, including
// subcategories, in document order.
func flattenCategories(cats []*ext.ITunesCategory) []string {
	var out []string
	for _, c := range cats {
		if c == nil {
			continue
		}
		if c.Text != "" {
			out = append(out, c.Text)
		}
		if c.Subcategory != nil && c.Subcategory.Text != "" {
			out = append(out, c.Subcategory.Text)
		}
	}
	return out
}

func itemITunesCategories(exts ext.Extensions) []string {
	itunes, ok := exts["itunes"]
	if !ok {
		return nil
	}

	var out []string
	for _, e := range itunes["category"] {
		if text := e.Attrs["text"]; text != "" {
			out = append(out, text)
		} else if e.Value != "" {
			out = append(out, e.Value)
		}
	}
	return out
}
