package models

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/guregu/null/v5"
)

// InvalidFieldsKey is the key under which a failed validation stores its
// ordered list of error strings inside Change.Data. It is present iff the
// most recent validation attempt failed.
const InvalidFieldsKey = "invalid_fields"

type ChangeAction string

const (
	ActionBabySwitch        ChangeAction = "baby_switch"
	ActionPmtctLossSwitch   ChangeAction = "pmtct_loss_switch"
	ActionPmtctLossOptout   ChangeAction = "pmtct_loss_optout"
	ActionPmtctNonlossOptout ChangeAction = "pmtct_nonloss_optout"
	ActionNurseUpdateDetail ChangeAction = "nurse_update_detail"
	ActionNurseChangeMsisdn ChangeAction = "nurse_change_msisdn"
	ActionNurseOptout       ChangeAction = "nurse_optout"
)

var AllChangeActions = []ChangeAction{
	ActionBabySwitch,
	ActionPmtctLossSwitch,
	ActionPmtctLossOptout,
	ActionPmtctNonlossOptout,
	ActionNurseUpdateDetail,
	ActionNurseChangeMsisdn,
	ActionNurseOptout,
}

func ChangeActionFrom(s string) (ChangeAction, error) {
	for _, action := range AllChangeActions {
		if s == string(action) {
			return action, nil
		}
	}
	return "", errors.Wrap(BadParameterError, fmt.Sprintf("'%s' is not a valid change action", s))
}

// Reason code sets. The loss and nonloss sets overlap in shape but are
// deliberately distinct: "miscarriage" is a valid loss reason and an
// invalid nonloss reason.
var (
	LossReasons = []string{"miscarriage", "stillbirth", "babyloss"}

	NonlossReasons = []string{"not_hiv_pos", "not_useful", "other", "unknown"}

	NurseOptoutReasons = []string{
		"job_change",
		"number_owner_change",
		"not_useful",
		"other",
		"unknown",
	}
)

// Change is a requested mutation against a registrant's subscription or
// registration state. It is created unvalidated by the boundary layer and
// processed asynchronously, at least once, by the change pipeline.
type Change struct {
	Id           uuid.UUID
	RegistrantId string
	Action       ChangeAction
	Data         map[string]any
	Validated    bool
	SourceId     uuid.UUID
	CreatedBy    null.String
	UpdatedBy    null.String
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InvalidFields returns the error strings stored by the last failed
// validation attempt, or nil.
func (c Change) InvalidFields() []string {
	raw, ok := c.Data[InvalidFieldsKey]
	if !ok {
		return nil
	}
	switch fields := raw.(type) {
	case []string:
		return fields
	case []any:
		out := make([]string, 0, len(fields))
		for _, f := range fields {
			if s, ok := f.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

type CreateChangeInput struct {
	RegistrantId string
	Action       ChangeAction
	Data         map[string]any
	SourceId     uuid.UUID
	CreatedBy    string
}

type UpdateChangeInput struct {
	Id        uuid.UUID
	Data      map[string]any
	Validated bool
	UpdatedBy string
}
