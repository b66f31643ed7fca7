package files

import "errors"

// PresignRequest is the body of POST /files/presign
type PresignRequest struct {
	FileName string `json:"fileName" binding:"required,notblank"`
	MimeType string `json:"mimeType" binding:"required,notblank"`
}

// PresignResponse carries the presigned upload URL back to the client
type PresignResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	Expires   int64  `json:"expires"` // seconds until UploadURL stops working
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AudioMimePrefix is the only family of content types accepted for upload
const AudioMimePrefix = "audio/"

// MockUploadAck is the fixed body of GET /files/mock-upload
const MockUploadAck = "mock upload"

// ErrInvalidMimeType is returned when the requested content type is not audio
var ErrInvalidMimeType = errors.New("mime type must start with " + AudioMimePrefix)
