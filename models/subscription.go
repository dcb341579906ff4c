package models

import (
	"time"

	"github.com/google/uuid"
)

// Messageset shortnames the appliers resolve on the stage-based messaging
// service. A registrant switching to the baby track moves onto the pmtct
// postbirth messageset; nurse optouts target the nurseconnect messageset.
const (
	MessagesetPmtctPostbirth = "pmtct_postbirth.patient.1"
	MessagesetNurseconnect   = "nurseconnect.hw_full.1"
)

// Subscription is an active message stream on the stage-based messaging
// service. Owned by that service; read and deactivated here, never created
// directly (new streams go through SubscriptionRequest).
type Subscription struct {
	Id                 string
	Identity           string
	Active             bool
	Completed          bool
	Lang               string
	Messageset         int
	NextSequenceNumber int
	Schedule           int
}

// MessageSet describes a message sequence on the stage-based messaging
// service.
type MessageSet struct {
	Id              int
	ShortName       string
	DefaultSchedule int
}

// Schedule describes a delivery cadence on the stage-based messaging
// service.
type Schedule struct {
	Id int
}

// SubscriptionRequest is the hub's locally stored intent to create a new
// subscription; a downstream job hands it to the messaging service.
type SubscriptionRequest struct {
	Id                 uuid.UUID
	RegistrantId       string
	Messageset         int
	NextSequenceNumber int
	Lang               string
	Schedule           int
	CreatedAt          time.Time
}

type CreateSubscriptionRequestInput struct {
	// Id is supplied by the caller so retried appliers write the same row.
	Id                 uuid.UUID
	RegistrantId       string
	Messageset         int
	NextSequenceNumber int
	Lang               string
	Schedule           int
}
