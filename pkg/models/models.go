package models

import "strings"

// Photo is a single search result as returned by the Unsplash API.
// The gallery controller treats it as an opaque value; only the
// presentation layer looks inside.
type Photo struct {
	ID             string     `json:"id"`
	Description    string     `json:"description"`
	AltDescription string     `json:"alt_description"`
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	Color          string     `json:"color"`
	Likes          int        `json:"likes"`
	URLs           PhotoURLs  `json:"urls"`
	User           User       `json:"user"`
	Links          PhotoLinks `json:"links"`
}

// PhotoURLs holds the rendition URLs of a photo
type PhotoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

// User is the photographer
type User struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// PhotoLinks holds the non-image links of a photo
type PhotoLinks struct {
	HTML     string `json:"html"`
	Download string `json:"download"`
}

// SearchPage is one page of a search response
type SearchPage struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}

// Title returns a one-line label for the photo, falling back from the
// description to the alt text and finally the ID.
func (p Photo) Title() string {
	for _, s := range []string{p.Description, p.AltDescription, p.ID} {
		if label := strings.Join(strings.Fields(s), " "); label != "" {
			return label
		}
	}
	return "untitled"
}

// FullURL returns the rendition used for the enlarged view.
func (p Photo) FullURL() string {
	switch {
	case p.URLs.Regular != "":
		return p.URLs.Regular
	case p.URLs.Full != "":
		return p.URLs.Full
	default:
		return p.URLs.Raw
	}
}

// Aspect returns width/height, or 0 when the size is unknown.
func (p Photo) Aspect() float64 {
	if p.Width <= 0 || p.Height <= 0 {
		return 0
	}
	return float64(p.Width) / float64(p.Height)
}
