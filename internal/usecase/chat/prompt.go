package chat

import (
	"strings"

	"github.com/docchat/docchat-backend/internal/entity"
)

// persona fixes the assistant behavior: answer from the document, admit when
// the answer is not there, stay professional.
const persona = `You are a professional assistant for analyzing PDF documents. Please:
1. Answer questions based on the content of the uploaded PDF document
2. Be helpful, accurate, and concise in your responses
3. If a question cannot be answered from the PDF content, politely state that the information is not available in the document
4. Maintain a professional and friendly tone
5. Focus on providing relevant information from the document`

// buildPrompt assembles instructions, retrieved context, conversation history
// and the user question into a single generation prompt.
func buildPrompt(contextChunks []entity.ScoredChunk, history []entity.Turn, question string) string {
	var sb strings.Builder

	sb.WriteString(persona)
	sb.WriteString("\n\nDocument excerpts:\n")
	for _, sc := range contextChunks {
		sb.WriteString("---\n")
		sb.WriteString(sc.Chunk.Text)
		sb.WriteString("\n")
	}

	if len(history) > 0 {
		sb.WriteString("\nConversation so far:\n")
		for _, turn := range history {
			switch turn.Role {
			case entity.RoleAssistant:
				sb.WriteString("Assistant: ")
			default:
				sb.WriteString("User: ")
			}
			sb.WriteString(turn.Text)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nUser question: ")
	sb.WriteString(question)

	return sb.String()
}
