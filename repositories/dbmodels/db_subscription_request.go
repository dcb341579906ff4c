package dbmodels

import (
	"time"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/utils"

	"github.com/google/uuid"
)

type DBSubscriptionRequest struct {
	Id                 uuid.UUID `db:"id"`
	RegistrantId       string    `db:"registrant_id"`
	Messageset         int       `db:"messageset"`
	NextSequenceNumber int       `db:"next_sequence_number"`
	Lang               string    `db:"lang"`
	Schedule           int       `db:"schedule"`
	CreatedAt          time.Time `db:"created_at"`
}

const TABLE_SUBSCRIPTION_REQUESTS = "subscription_requests"

var SelectSubscriptionRequestColumns = utils.ColumnList[DBSubscriptionRequest]()

func AdaptSubscriptionRequest(db DBSubscriptionRequest) (models.SubscriptionRequest, error) {
	return models.SubscriptionRequest{
		Id:                 db.Id,
		RegistrantId:       db.RegistrantId,
		Messageset:         db.Messageset,
		NextSequenceNumber: db.NextSequenceNumber,
		Lang:               db.Lang,
		Schedule:           db.Schedule,
		CreatedAt:          db.CreatedAt,
	}, nil
}
