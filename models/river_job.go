package models

import (
	"github.com/google/uuid"
)

// validate then implement a single Change record
type ChangeValidateImplementArgs struct {
	ChangeId uuid.UUID `json:"change_id"`
}

func (ChangeValidateImplementArgs) Kind() string { return "change_validate_implement" }
