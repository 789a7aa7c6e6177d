package viber

// PictureMessage
// https://developers.viber.com/docs/api/rest-bot-api/#picture-message
type PictureMessage struct {
	// URL of the image (JPEG, PNG, non-animated GIF).
	// REQUIRED. The URL must have a resource with a .jpeg, .png or .gif file extension as the last path segment.
	// Example: http://www.example.com/path/image.jpeg. Animated GIFs can be sent as URL messages or file messages.
	// Max image size: 1MB on iOS, 3MB on Android.
	Media string
	// Description of the photo.
	// OPTIONAL. Max 512 characters
	Text string
	// URL of a reduced size image (JPEG, PNG, GIF)
	// OPTIONAL. Recommended: 400x400. Max size: 100kb.
	Thumbnail string
	MessageOptions
}

var _ Message = (*PictureMessage)(nil)

func (*PictureMessage) Type() string {
	return mediaImage
}

func (m *PictureMessage) Validate() bool {
	return m != nil && m.Media != ""
}

func (m *PictureMessage) Payload() map[string]any {
	data := m.payload(mediaImage)
	set(data, "media", m.Media)
	set(data, "text", m.Text)
	set(data, "thumbnail", m.Thumbnail)
	return data
}

// VideoMessage
// https://developers.viber.com/docs/api/rest-bot-api/#video-message
type VideoMessage struct {
	// URL of the video (MP4, H264)
	// REQUIRED. Max size 26 MB. Only MP4 and H264 are supported.
	// The URL must have a resource with a .mp4 file extension as the last path segment.
	// Example: http://www.example.com/path/video.mp4
	Media string
	// Size of the video in bytes.
	// REQUIRED.
	Size int64
	// Video duration in seconds; will be displayed to the receiver
	// OPTIONAL. Max 180 seconds
	Duration int
	// Description of the video.
	// OPTIONAL. Max 512 characters
	Text string
	// URL of a reduced size image (JPEG)
	// OPTIONAL. Max size 100 kb. Recommended: 400x400.
	Thumbnail string
	MessageOptions
}

var _ Message = (*VideoMessage)(nil)

func (*VideoMessage) Type() string {
	return mediaVideo
}

func (m *VideoMessage) Validate() bool {
	return m != nil && m.Media != "" && m.Size > 0
}

func (m *VideoMessage) Payload() map[string]any {
	data := m.payload(mediaVideo)
	set(data, "media", m.Media)
	set(data, "size", m.Size) // NOT: `file_size`, BUT `size` !
	set(data, "duration", m.Duration)
	set(data, "text", m.Text)
	set(data, "thumbnail", m.Thumbnail)
	return data
}

// FileMessage
// https://developers.viber.com/docs/api/rest-bot-api/#file-message
type FileMessage struct {
	// URL of the file.
	// REQUIRED. Max size 50 MB. URL should include the file extension.
	// See forbidden file formats for unsupported file types
	Media string
	// Size of the file in bytes.
	// REQUIRED.
	Size int64
	// Name of the file.
	// REQUIRED. File name should include extension.
	// Max 256 characters (including file extension).
	// Sending a file without extension or with the wrong extension
	// might cause the client to be unable to open the file.
	FileName string
	MessageOptions
}

var _ Message = (*FileMessage)(nil)

func (*FileMessage) Type() string {
	return mediaFile
}

func (m *FileMessage) Validate() bool {
	return m != nil && m.Media != "" && m.Size > 0 && m.FileName != ""
}

func (m *FileMessage) Payload() map[string]any {
	data := m.payload(mediaFile)
	set(data, "media", m.Media)
	set(data, "size", m.Size)
	set(data, "file_name", m.FileName)
	return data
}

// StickerMessage
// https://developers.viber.com/docs/api/rest-bot-api/#sticker-message
type StickerMessage struct {
	// Unique Viber sticker ID.
	// REQUIRED.
	StickerID int64
	// URL of the sticker image.
	// Set on received stickers only.
	Media string
	MessageOptions
}

var _ Message = (*StickerMessage)(nil)

func (*StickerMessage) Type() string {
	return mediaSticker
}

func (m *StickerMessage) Validate() bool {
	return m != nil && m.StickerID != 0
}

func (m *StickerMessage) Payload() map[string]any {
	data := m.payload(mediaSticker)
	set(data, "sticker_id", m.StickerID)
	set(data, "media", m.Media)
	return data
}
