package repositories

import (
	"context"
	"net/http"
	"testing"

	"github.com/momconnect/hub/infra"
	"github.com/momconnect/hub/models"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	identityStoreUrl   = "http://is.example.org"
	identityStoreToken = "is-test-token"
	identityId         = "nurse001-63e2-4acc-9b94-26663b9bc267"
)

func newIdentityStoreRepositoryForTest() *IdentityStoreRepository {
	return NewIdentityStoreRepository(
		infra.InitializeIdentityStore(identityStoreUrl, identityStoreToken),
		http.DefaultClient,
	)
}

func TestUpdateIdentityDetails(t *testing.T) {
	defer gock.Off()

	gock.New(identityStoreUrl).
		Patch("/api/v1/identities/" + identityId + "/").
		MatchHeader("Authorization", "Token "+identityStoreToken).
		JSON(map[string]any{
			"details": map[string]any{"faccode": "234567"},
		}).
		Reply(http.StatusOK).
		JSON(map[string]any{"id": identityId})

	repo := newIdentityStoreRepositoryForTest()
	err := repo.UpdateIdentityDetails(context.Background(), identityId,
		map[string]any{"faccode": "234567"})

	require.NoError(t, err)
	assert.False(t, gock.HasUnmatchedRequest())
}

func TestUpdateIdentityDetailsNotFoundIsPermanent(t *testing.T) {
	defer gock.Off()

	gock.New(identityStoreUrl).
		Patch("/api/v1/identities/" + identityId + "/").
		Reply(http.StatusNotFound)

	repo := newIdentityStoreRepositoryForTest()
	err := repo.UpdateIdentityDetails(context.Background(), identityId,
		map[string]any{"faccode": "234567"})

	assert.ErrorIs(t, err, models.PermanentExternalError)
}

func TestUpdateIdentityDetailsServerError(t *testing.T) {
	defer gock.Off()

	gock.New(identityStoreUrl).
		Patch("/api/v1/identities/" + identityId + "/").
		Reply(http.StatusInternalServerError)

	repo := newIdentityStoreRepositoryForTest()
	err := repo.UpdateIdentityDetails(context.Background(), identityId,
		map[string]any{"faccode": "234567"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, models.PermanentExternalError)
}
