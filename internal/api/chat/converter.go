package chat

import "github.com/docchat/docchat-backend/internal/entity"

func toStatusResponse(status entity.SessionStatus) entity.StatusResponse {
	return entity.StatusResponse{
		HasFile:  status.HasDocument,
		Filename: status.Filename,
		Ready:    status.Ready,
	}
}
