package submit

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mealbridge/mealcli/internal/models"
)

// CommitFunc performs the phase-1 metadata commit. Required-field
// validation is the caller's precondition; by the time this runs the
// field set must be complete.
type CommitFunc func(ctx context.Context) (CommitResult, error)

// UploadFunc sends one attachment against a committed identifier.
type UploadFunc func(ctx context.Context, entityID string, att models.Attachment) error

// AttachmentError reports a failed phase-2 upload. The committed entity
// is untouched; only the one artifact needs retrying.
type AttachmentError struct {
	Role models.AttachmentRole
	Err  error
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("upload of %s failed: %v", e.Role, e.Err)
}

func (e *AttachmentError) Unwrap() error { return e.Err }

// Submitter drives a draft through the two-phase protocol.
type Submitter struct {
	commit   CommitFunc
	resolver IdentifierResolver
	upload   UploadFunc
}

// NewSubmitter wires the protocol to one endpoint's commit, identifier
// resolution, and upload operations.
func NewSubmitter(commit CommitFunc, resolver IdentifierResolver, upload UploadFunc) *Submitter {
	return &Submitter{
		commit:   commit,
		resolver: resolver,
		upload:   upload,
	}
}

// Run executes both phases against the draft.
//
// A phase-1 failure returns the draft to collecting: nothing was
// created, and the user may edit and resubmit the whole phase. A
// resolution failure is fatal (the entity exists but cannot be
// identified). A phase-2 failure marks the draft failed but keeps the
// committed identifier, so the remaining attachments can be retried
// without creating a duplicate entity.
//
// Run refuses to start unless the draft is in collecting; a submit
// already in flight for the same draft must finish first.
func (s *Submitter) Run(ctx context.Context, d *Draft) error {
	if d.phase != PhaseCollecting {
		return fmt.Errorf("draft is %s, not collecting", d.phase)
	}

	d.phase = PhaseCommittingMetadata
	res, err := s.commit(ctx)
	if err != nil {
		d.phase = PhaseCollecting
		return fmt.Errorf("metadata commit failed: %w", err)
	}

	id, err := s.resolver.Resolve(ctx, res)
	if err != nil {
		d.phase = PhaseFailed
		return fmt.Errorf("identifier resolution failed: %w", err)
	}
	d.entityID = id
	d.phase = PhaseCommittedAwaitingID

	logrus.WithField("entity_id", id).Debug("metadata committed")

	return s.uploadPending(ctx, d)
}

// RetryUploads re-runs phase 2 against the already-committed identifier.
// Re-running phase 1 would create a duplicate entity, so this is the
// only retry path once metadata has been committed.
func (s *Submitter) RetryUploads(ctx context.Context, d *Draft) error {
	if d.entityID == "" {
		return fmt.Errorf("no committed identifier to upload against")
	}
	if d.phase != PhaseFailed && d.phase != PhaseCommittedAwaitingID {
		return fmt.Errorf("draft is %s, nothing to retry", d.phase)
	}
	return s.uploadPending(ctx, d)
}

// uploadPending dispatches every pending attachment concurrently. The
// uploads are independent requests against the same identifier, so no
// ordering is required between them, but the draft is not complete
// until each one has individually resolved.
func (s *Submitter) uploadPending(ctx context.Context, d *Draft) error {
	if len(d.pending) == 0 {
		d.phase = PhaseComplete
		return nil
	}

	d.phase = PhaseUploadingAttachments

	type outcome struct {
		idx int
		err error
	}
	results := make(chan outcome, len(d.pending))
	for i, att := range d.pending {
		go func(i int, att models.Attachment) {
			results <- outcome{idx: i, err: s.upload(ctx, d.entityID, att)}
		}(i, att)
	}

	failed := make(map[int]error)
	for range d.pending {
		r := <-results
		if r.err != nil {
			failed[r.idx] = r.err
		}
	}

	if len(failed) == 0 {
		d.pending = nil
		d.phase = PhaseComplete
		return nil
	}

	var remaining []models.Attachment
	var errs []error
	for i, att := range d.pending {
		if err, ok := failed[i]; ok {
			remaining = append(remaining, att)
			errs = append(errs, &AttachmentError{Role: att.Role, Err: err})
		}
	}
	d.pending = remaining
	d.phase = PhaseFailed

	return errors.Join(errs...)
}
