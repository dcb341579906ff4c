package infra

// StageBasedMessaging describes the external stage-based messaging service
// owning subscriptions, messagesets and schedules.
type StageBasedMessaging struct {
	url   string
	token string
}

func InitializeStageBasedMessaging(url, token string) StageBasedMessaging {
	return StageBasedMessaging{
		url:   url,
		token: token,
	}
}

func (s StageBasedMessaging) Url() string {
	return s.url
}

func (s StageBasedMessaging) Token() string {
	return s.token
}

// IdentityStore describes the external identity/contact service owning
// registrant identities and their contact details.
type IdentityStore struct {
	url   string
	token string
}

func InitializeIdentityStore(url, token string) IdentityStore {
	return IdentityStore{
		url:   url,
		token: token,
	}
}

func (s IdentityStore) Url() string {
	return s.url
}

func (s IdentityStore) Token() string {
	return s.token
}
