// Package submit implements the create-then-attach commit protocol used
// by every creation and registration flow: structured metadata is
// committed first, then binary artifacts are uploaded against the
// server-assigned identifier in a second, independently retryable phase.
package submit

import (
	"github.com/google/uuid"

	"github.com/mealbridge/mealcli/internal/models"
)

// Phase marks where a draft is in its lifecycle.
type Phase string

const (
	PhaseCollecting           Phase = "collecting"
	PhaseCommittingMetadata   Phase = "committing-metadata"
	PhaseCommittedAwaitingID  Phase = "committed-awaiting-id"
	PhaseUploadingAttachments Phase = "uploading-attachments"
	PhaseComplete             Phase = "complete"
	PhaseFailed               Phase = "failed"
)

// Draft is the in-progress state of one multi-phase create operation.
// A draft is created when a form opens and discarded when it closes;
// it is owned by a single screen and never shared.
type Draft struct {
	id       uuid.UUID
	phase    Phase
	entityID string
	pending  []models.Attachment
}

// NewDraft creates a draft in the collecting phase.
func NewDraft() *Draft {
	return &Draft{
		id:    uuid.New(),
		phase: PhaseCollecting,
	}
}

// ID returns the client-side draft identity (not the server's).
func (d *Draft) ID() uuid.UUID { return d.id }

// Phase returns the current lifecycle phase.
func (d *Draft) Phase() Phase { return d.phase }

// EntityID returns the server-assigned identifier, empty before the
// metadata commit has resolved one.
func (d *Draft) EntityID() string { return d.entityID }

// Attach queues a binary artifact for phase 2. Attaching a role that is
// already queued replaces it, mirroring the server's replace-on-reupload
// behavior.
func (d *Draft) Attach(att models.Attachment) {
	for i, p := range d.pending {
		if p.Role == att.Role {
			d.pending[i] = att
			return
		}
	}
	d.pending = append(d.pending, att)
}

// Pending returns the attachments not yet accepted by the server.
func (d *Draft) Pending() []models.Attachment {
	out := make([]models.Attachment, len(d.pending))
	copy(out, d.pending)
	return out
}
