package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type DBRegistration struct {
	Id           uuid.UUID `db:"id"`
	RegType      string    `db:"reg_type"`
	RegistrantId string    `db:"registrant_id"`
	Data         []byte    `db:"data"`
	Validated    bool      `db:"validated"`
	SourceId     uuid.UUID `db:"source_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const TABLE_REGISTRATIONS = "registrations"

var SelectRegistrationColumns = utils.ColumnList[DBRegistration]()

func AdaptRegistration(db DBRegistration) (models.Registration, error) {
	registration := models.Registration{
		Id:           db.Id,
		RegType:      models.RegistrationType(db.RegType),
		RegistrantId: db.RegistrantId,
		Data:         map[string]any{},
		Validated:    db.Validated,
		SourceId:     db.SourceId,
		CreatedAt:    db.CreatedAt,
		UpdatedAt:    db.UpdatedAt,
	}

	if len(db.Data) > 0 {
		if err := json.Unmarshal(db.Data, &registration.Data); err != nil {
			return models.Registration{}, errors.Wrap(err, "unable to unmarshal registration data")
		}
	}

	return registration, nil
}
