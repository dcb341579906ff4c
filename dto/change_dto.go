package dto

import (
	"time"

	"github.com/momconnect/hub/models"

	"github.com/google/uuid"
)

type APIChange struct {
	Id           string         `json:"id"`
	RegistrantId string         `json:"registrant_id"`
	Action       string         `json:"action"`
	Data         map[string]any `json:"data"`
	Validated    bool           `json:"validated"`
	Source       string         `json:"source"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	CreatedBy    *string        `json:"created_by"`
	UpdatedBy    *string        `json:"updated_by"`
}

func AdaptChangeDto(change models.Change) APIChange {
	return APIChange{
		Id:           change.Id.String(),
		RegistrantId: change.RegistrantId,
		Action:       string(change.Action),
		Data:         change.Data,
		Validated:    change.Validated,
		Source:       change.SourceId.String(),
		CreatedAt:    change.CreatedAt,
		UpdatedAt:    change.UpdatedAt,
		CreatedBy:    change.CreatedBy.Ptr(),
		UpdatedBy:    change.UpdatedBy.Ptr(),
	}
}

type CreateChangeBody struct {
	RegistrantId string         `json:"registrant_id" binding:"required"`
	Action       string         `json:"action" binding:"required"`
	Data         map[string]any `json:"data"`
	Source       uuid.UUID      `json:"source" binding:"required"`
}

// Validated, created_by and the timestamps are read only on create: a new
// change always starts unvalidated, whatever the caller sends.
func AdaptCreateChangeInput(body CreateChangeBody, createdBy string) models.CreateChangeInput {
	return models.CreateChangeInput{
		RegistrantId: body.RegistrantId,
		Action:       models.ChangeAction(body.Action),
		Data:         body.Data,
		SourceId:     body.Source,
		CreatedBy:    createdBy,
	}
}
