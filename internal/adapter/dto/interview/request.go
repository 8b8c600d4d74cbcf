package interview

// StartInterviewRequest represents the request to start an interview session
type StartInterviewRequest struct {
	CountryCode string `json:"country_code" validate:"required,min=2,max=20"`
	Mode        string `json:"mode" validate:"required,session_mode"`
}

// AppendTranscriptRequest represents one transcript fragment
type AppendTranscriptRequest struct {
	Speaker    string   `json:"speaker" validate:"required,speaker"`
	Text       string   `json:"text" validate:"required"`
	Timestamp  float64  `json:"timestamp" validate:"gte=0"`
	Confidence *float64 `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
	IsFinal    bool     `json:"is_final"`
}

// ListSessionsRequest represents query parameters for listing sessions
type ListSessionsRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// AttachRecordingRequest represents the request to attach a voice recording
type AttachRecordingRequest struct {
	RecordingKey string `json:"recording_key" validate:"required,max=512"`
}
