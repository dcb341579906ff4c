package models

import (
	"time"

	"github.com/google/uuid"
)

type SourceAuthority string

const (
	// AuthorityPatient covers self-service channels (USSD, WhatsApp).
	AuthorityPatient SourceAuthority = "patient"
	// AuthorityHWPartial covers health-worker channels with limited rights.
	AuthorityHWPartial SourceAuthority = "hw_partial"
	// AuthorityHWFull covers clinic and helpdesk systems with full rights.
	AuthorityHWFull SourceAuthority = "hw_full"
)

// Source identifies the integration a Change originated from and the
// authority level it carries.
type Source struct {
	Id        uuid.UUID
	Name      string
	Authority SourceAuthority
	CreatedAt time.Time
}
