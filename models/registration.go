package models

import (
	"time"

	"github.com/google/uuid"
)

type RegistrationType string

const (
	RegTypeMomconnectPrebirth  RegistrationType = "momconnect_prebirth"
	RegTypeMomconnectPostbirth RegistrationType = "momconnect_postbirth"
	RegTypePmtctPrebirth       RegistrationType = "pmtct_prebirth"
	RegTypePmtctPostbirth      RegistrationType = "pmtct_postbirth"
	RegTypeNurseconnect        RegistrationType = "nurseconnect"
)

// Registration is a prior enrollment of a registrant in a messaging
// programme. The change pipeline only ever reads registrations, to recover
// context (language, facility code) the Change payload does not carry.
type Registration struct {
	Id           uuid.UUID
	RegType      RegistrationType
	RegistrantId string
	Data         map[string]any
	Validated    bool
	SourceId     uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Language returns the registration's language code ("eng_ZA"), or the
// fallback when the data blob does not carry one.
func (r Registration) Language(fallback string) string {
	if lang, ok := r.Data["language"].(string); ok && lang != "" {
		return lang
	}
	return fallback
}
