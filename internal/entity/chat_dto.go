package entity

// ChatRequest is the body of POST /session/{id}/chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse echoes the user message next to the generated answer, matching
// the web client contract.
type ChatResponse struct {
	Response string `json:"response"`
	Message  string `json:"message"`
}

// UploadResponse is returned after a successful upload and index build.
type UploadResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Filename  string `json:"filename"`
	SessionID string `json:"session_id"`
}

// StatusResponse reports whether the session has a document and is ready.
type StatusResponse struct {
	HasFile  bool   `json:"has_file"`
	Filename string `json:"filename"`
	Ready    bool   `json:"ready"`
}

// ClearResponse is returned after a session has been cleared.
type ClearResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
