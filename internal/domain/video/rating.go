package video

import "fmt"

// Rating is the closed set of content ratings a video can carry.
type Rating string

const (
	RatingER Rating = "ER"
	RatingL  Rating = "L"
	Rating10 Rating = "10"
	Rating12 Rating = "12"
	Rating14 Rating = "14"
	Rating16 Rating = "16"
	Rating18 Rating = "18"
)

// ParseRating resolves a string to a rating.
func ParseRating(s string) (Rating, error) {
	switch Rating(s) {
	case RatingER, RatingL, Rating10, Rating12, Rating14, Rating16, Rating18:
		return Rating(s), nil
	default:
		return "", fmt.Errorf("unknown rating %q", s)
	}
}

// Valid reports whether the rating is one of the closed set.
func (r Rating) Valid() bool {
	_, err := ParseRating(string(r))
	return err == nil
}
