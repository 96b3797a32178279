package video

import "time"

// MediaUpdatedEventType identifies the event emitted when one of a
// video's media slots changes.
const MediaUpdatedEventType = "video.media_updated"

// MediaUpdatedEvent notifies other bounded contexts that a media slot
// changed. Events accumulate on the aggregate and are drained by the
// orchestration layer once persistence succeeds.
type MediaUpdatedEvent struct {
	VideoID   string    `json:"video_id"`
	MediaType string    `json:"media_type"`
	Checksum  string    `json:"checksum"`
	Time      time.Time `json:"occurred_at"`
}

// NewMediaUpdatedEvent creates a media updated event for the given slot.
func NewMediaUpdatedEvent(videoID VideoID, mediaType MediaType, checksum string) MediaUpdatedEvent {
	return MediaUpdatedEvent{
		VideoID:   videoID.String(),
		MediaType: string(mediaType),
		Checksum:  checksum,
		Time:      time.Now(),
	}
}

// EventType returns the event type.
func (e MediaUpdatedEvent) EventType() string { return MediaUpdatedEventType }

// AggregateID returns the owning video's identifier.
func (e MediaUpdatedEvent) AggregateID() string { return e.VideoID }

// OccurredAt returns the unix timestamp of when the slot changed.
func (e MediaUpdatedEvent) OccurredAt() int64 { return e.Time.Unix() }
