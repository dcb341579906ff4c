package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/momconnect/hub/infra"
	"github.com/momconnect/hub/models"

	"github.com/cockroachdb/errors"
)

// IdentityRepository writes profile updates back to the identity store.
type IdentityRepository interface {
	UpdateIdentityDetails(ctx context.Context, identityId string, details map[string]any) error
}

type IdentityStoreRepository struct {
	identityStore infra.IdentityStore
	client        *http.Client
}

func NewIdentityStoreRepository(identityStore infra.IdentityStore, client *http.Client) *IdentityStoreRepository {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &IdentityStoreRepository{
		identityStore: identityStore,
		client:        client,
	}
}

// UpdateIdentityDetails patches the identity's details object. The store
// merges the submitted keys into the existing details, so sending only the
// changed fields is both correct and idempotent.
func (repo *IdentityStoreRepository) UpdateIdentityDetails(ctx context.Context,
	identityId string, details map[string]any,
) error {
	u := fmt.Sprintf("%s/api/v1/identities/%s/", repo.identityStore.Url(), identityId)

	body, err := json.Marshal(map[string]any{"details": details})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := repo.identityStore.Token(); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := repo.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not update identity details")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.Wrap(models.PermanentExternalError,
			fmt.Sprintf("identity %s does not exist", identityId))
	case resp.StatusCode >= 300:
		return errors.New(fmt.Sprintf(
			"identity store returned status %d updating identity %s", resp.StatusCode, identityId))
	}
	return nil
}
