package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/momconnect/hub/models"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSubscriptionRequestIsIdempotent(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	repo := &SubscriptionRequestRepositoryPostgresql{}
	input := models.CreateSubscriptionRequestInput{
		Id:                 uuid.New(),
		RegistrantId:       "mother01-63e2-4acc-9b94-26663b9bc267",
		Messageset:         32,
		NextSequenceNumber: 1,
		Lang:               "zul_ZA",
		Schedule:           132,
	}

	pool.ExpectExec(`INSERT INTO subscription_requests \(id,registrant_id,messageset,next_sequence_number,lang,schedule\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6\) ON CONFLICT \(id\) DO NOTHING`).
		WithArgs(input.Id, input.RegistrantId, input.Messageset,
			input.NextSequenceNumber, input.Lang, input.Schedule).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// second write with the same id hits the conflict clause and inserts nothing
	pool.ExpectExec(`INSERT INTO subscription_requests`).
		WithArgs(input.Id, input.RegistrantId, input.Messageset,
			input.NextSequenceNumber, input.Lang, input.Schedule).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	require.NoError(t, repo.CreateSubscriptionRequest(context.Background(), pool, input))
	require.NoError(t, repo.CreateSubscriptionRequest(context.Background(), pool, input))

	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestListSubscriptionRequests(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	repo := &SubscriptionRequestRepositoryPostgresql{}
	registrantId := "mother01-63e2-4acc-9b94-26663b9bc267"
	requestId := uuid.New()
	createdAt := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)

	pool.ExpectQuery(`SELECT id, registrant_id, messageset, next_sequence_number, lang, schedule, created_at FROM subscription_requests WHERE registrant_id = \$1 ORDER BY created_at`).
		WithArgs(registrantId).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "registrant_id", "messageset", "next_sequence_number",
			"lang", "schedule", "created_at",
		}).AddRow(requestId, registrantId, 32, 1, "zul_ZA", 132, createdAt))

	requests, err := repo.ListSubscriptionRequests(context.Background(), pool, registrantId)

	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, models.SubscriptionRequest{
		Id:                 requestId,
		RegistrantId:       registrantId,
		Messageset:         32,
		NextSequenceNumber: 1,
		Lang:               "zul_ZA",
		Schedule:           132,
		CreatedAt:          createdAt,
	}, requests[0])
	assert.NoError(t, pool.ExpectationsWereMet())
}
