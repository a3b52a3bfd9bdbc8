package entity

import "time"

// Turn roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Document is the PDF currently backing a chat session. It lives only as long
// as the session that owns it.
type Document struct {
	Path       string
	Filename   string
	PageCount  int
	UploadedAt time.Time
}

// Chunk is an immutable text segment cut from the document, ordered by Index.
type Chunk struct {
	Index int
	Text  string
}

// ScoredChunk is a retrieval result: chunk text plus its similarity score.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Turn is a single conversation message tagged by speaker role.
type Turn struct {
	Role string
	Text string
}

// SessionStatus reflects the orchestrator state for a session.
type SessionStatus struct {
	HasDocument bool
	Filename    string
	Ready       bool
}
