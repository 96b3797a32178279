package video

import (
	"fmt"

	pkgerrors "github.com/finchmedia/finch/pkg/errors"
)

// MediaType names one of the five media slots on a video.
type MediaType string

const (
	MediaTypeVideo         MediaType = "VIDEO"
	MediaTypeTrailer       MediaType = "TRAILER"
	MediaTypeBanner        MediaType = "BANNER"
	MediaTypeThumbnail     MediaType = "THUMBNAIL"
	MediaTypeThumbnailHalf MediaType = "THUMBNAIL_HALF"
)

// ParseMediaType resolves a string to a media type.
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(s) {
	case MediaTypeVideo, MediaTypeTrailer, MediaTypeBanner, MediaTypeThumbnail, MediaTypeThumbnailHalf:
		return MediaType(s), nil
	default:
		return "", fmt.Errorf("unknown media type %q", s)
	}
}

// Valid reports whether the value names one of the five slots.
func (t MediaType) Valid() bool {
	_, err := ParseMediaType(string(t))
	return err == nil
}

// IsAudioVideo reports whether the slot holds encodable audio/video
// content rather than a still image.
func (t MediaType) IsAudioVideo() bool {
	return t == MediaTypeVideo || t == MediaTypeTrailer
}

// MediaStatus is the encoding lifecycle of an audio/video slot.
// PENDING is the implicit state of freshly stored media; PROCESSING and
// COMPLETED arrive as external encoder signals. The domain enforces no
// backward-transition guard: the authoritative status comes from a
// checksum-matched callback, not from the aggregate's own clock.
type MediaStatus string

const (
	MediaStatusPending    MediaStatus = "PENDING"
	MediaStatusProcessing MediaStatus = "PROCESSING"
	MediaStatusCompleted  MediaStatus = "COMPLETED"
)

// ParseMediaStatus resolves a string to a media status.
func ParseMediaStatus(s string) (MediaStatus, error) {
	switch MediaStatus(s) {
	case MediaStatusPending, MediaStatusProcessing, MediaStatusCompleted:
		return MediaStatus(s), nil
	default:
		return "", fmt.Errorf("unknown media status %q", s)
	}
}

// Valid reports whether the status is one of the closed set.
func (s MediaStatus) Valid() bool {
	switch s {
	case MediaStatusPending, MediaStatusProcessing, MediaStatusCompleted:
		return true
	default:
		return false
	}
}

// AudioVideoMedia is the immutable descriptor of a stored audio/video
// binary. Identity is the checksum alone: two media with equal checksum
// are the same asset regardless of name or locations. Status advances by
// deriving a new instance, never in place.
type AudioVideoMedia struct {
	checksum        string
	name            string
	rawLocation     string
	encodedLocation string
	status          MediaStatus
}

// NewAudioVideoMedia constructs an audio/video media descriptor.
// Checksum, name, raw location and status are mandatory; the encoded
// location defaults to empty until encoding completes.
func NewAudioVideoMedia(checksum, name, rawLocation, encodedLocation string, status MediaStatus) (AudioVideoMedia, error) {
	var missing []string
	if checksum == "" {
		missing = append(missing, "'checksum' should not be empty")
	}
	if name == "" {
		missing = append(missing, "'name' should not be empty")
	}
	if rawLocation == "" {
		missing = append(missing, "'rawLocation' should not be empty")
	}
	if !status.Valid() {
		missing = append(missing, "'status' should not be empty")
	}
	if len(missing) > 0 {
		return AudioVideoMedia{}, pkgerrors.Validation(missing...)
	}

	return AudioVideoMedia{
		checksum:        checksum,
		name:            name,
		rawLocation:     rawLocation,
		encodedLocation: encodedLocation,
		status:          status,
	}, nil
}

// NewPendingAudioVideoMedia constructs a freshly stored media descriptor
// in the PENDING state.
func NewPendingAudioVideoMedia(checksum, name, rawLocation string) (AudioVideoMedia, error) {
	return NewAudioVideoMedia(checksum, name, rawLocation, "", MediaStatusPending)
}

// Processing derives a copy in the PROCESSING state; locations are
// unchanged.
func (m AudioVideoMedia) Processing() AudioVideoMedia {
	m.status = MediaStatusProcessing
	return m
}

// Completed derives a copy in the COMPLETED state carrying the encoded
// location.
func (m AudioVideoMedia) Completed(encodedLocation string) AudioVideoMedia {
	m.status = MediaStatusCompleted
	m.encodedLocation = encodedLocation
	return m
}

// Equals compares by checksum only.
func (m AudioVideoMedia) Equals(other AudioVideoMedia) bool {
	return m.checksum == other.checksum
}

// Checksum returns the content hash of the raw binary.
func (m AudioVideoMedia) Checksum() string { return m.checksum }

// Name returns the display name.
func (m AudioVideoMedia) Name() string { return m.name }

// RawLocation returns where the raw binary is stored.
func (m AudioVideoMedia) RawLocation() string { return m.rawLocation }

// EncodedLocation returns where the encoded binary is stored; empty
// until encoding completes.
func (m AudioVideoMedia) EncodedLocation() string { return m.encodedLocation }

// Status returns the encoding status.
func (m AudioVideoMedia) Status() MediaStatus { return m.status }

// ImageMedia is the immutable descriptor of a stored image binary.
// Identity is the checksum alone. Images never transition.
type ImageMedia struct {
	checksum string
	name     string
	location string
}

// NewImageMedia constructs an image media descriptor; every field is
// mandatory.
func NewImageMedia(checksum, name, location string) (ImageMedia, error) {
	var missing []string
	if checksum == "" {
		missing = append(missing, "'checksum' should not be empty")
	}
	if name == "" {
		missing = append(missing, "'name' should not be empty")
	}
	if location == "" {
		missing = append(missing, "'location' should not be empty")
	}
	if len(missing) > 0 {
		return ImageMedia{}, pkgerrors.Validation(missing...)
	}

	return ImageMedia{checksum: checksum, name: name, location: location}, nil
}

// Equals compares by checksum only.
func (m ImageMedia) Equals(other ImageMedia) bool {
	return m.checksum == other.checksum
}

// Checksum returns the content hash of the binary.
func (m ImageMedia) Checksum() string { return m.checksum }

// Name returns the display name.
func (m ImageMedia) Name() string { return m.name }

// Location returns where the binary is stored.
func (m ImageMedia) Location() string { return m.location }
