package services

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/models"
)

// CollaboratorRef is a normalized reference to a collaborating admin.
// Payloads may carry bare ids or {id: ...} objects; both collapse to
// this before reaching the reconciler.
type CollaboratorRef struct {
	ID int
}

// NormalizeCollaborators converts raw payload references into
// CollaboratorRefs, dropping duplicates, unusable entries, and the
// submitter's own id (self-invites are silently ignored, not errors).
func NormalizeCollaborators(raw []any, submitterID int) []CollaboratorRef {
	seen := make(map[int]struct{}, len(raw))
	refs := make([]CollaboratorRef, 0, len(raw))
	for _, item := range raw {
		id := collaboratorID(item)
		if id <= 0 || id == submitterID {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		refs = append(refs, CollaboratorRef{ID: id})
	}
	return refs
}

func collaboratorID(item any) int {
	switch v := item.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		// JS clients sometimes send ids as strings.
		if id, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return id
		}
	case map[string]any:
		return collaboratorID(v["id"])
	}
	return 0
}

// CollaborationService creates or relinks program collaborations when
// a programs submission names collaborator organizations.
type CollaborationService struct {
	logger *zap.Logger
}

func NewCollaborationService(logger *zap.Logger) *CollaborationService {
	return &CollaborationService{logger: logger}
}

// Reconcile links pre-created invites (rows created at submission time
// with a NULL program_id) to the materialized program, or inserts fresh
// pending invites when none were pre-created. Individual insert
// failures (e.g. uniqueness violations) are skipped so a partial
// collaborator set never aborts the program itself. The returned list
// is the pending set to notify.
func (s *CollaborationService) Reconcile(tx *gorm.DB, programID, submissionID int, programTitle string, refs []CollaboratorRef, invitedByAdminID int) ([]models.ProgramCollaboration, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	relink := tx.Model(&models.ProgramCollaboration{}).
		Where("submission_id = ? AND program_id IS NULL", submissionID).
		Updates(map[string]interface{}{
			"program_id":    programID,
			"status":        models.CollaborationStatusPending,
			"program_title": programTitle,
		})
	if relink.Error != nil {
		return nil, relink.Error
	}

	if relink.RowsAffected == 0 {
		now := time.Now()
		for _, ref := range refs {
			collab := models.ProgramCollaboration{
				ProgramID:           &programID,
				SubmissionID:        &submissionID,
				CollaboratorAdminID: ref.ID,
				InvitedByAdminID:    invitedByAdminID,
				Status:              models.CollaborationStatusPending,
				ProgramTitle:        programTitle,
				InvitedAt:           now,
			}
			if err := tx.Create(&collab).Error; err != nil {
				s.logger.Warn("skipping collaboration invite",
					zap.Int("program_id", programID),
					zap.Int("collaborator_admin_id", ref.ID),
					zap.Error(err),
				)
			}
		}
	}

	var pending []models.ProgramCollaboration
	if err := tx.
		Where("program_id = ? AND status = ?", programID, models.CollaborationStatusPending).
		Find(&pending).Error; err != nil {
		return nil, err
	}
	return pending, nil
}
