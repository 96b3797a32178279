package video

// Resource is a raw binary asset handed to the media storage gateway:
// content plus the metadata needed to address and verify it.
type Resource struct {
	Content     []byte
	Checksum    string
	ContentType string
	Name        string
}

// VideoResource pairs a raw resource with the media slot it targets.
type VideoResource struct {
	Type     MediaType
	Resource Resource
}
