package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/models"
)

// ApprovalService drives a submission through its terminal transition:
// pending -> approved or pending -> rejected. Both transitions are
// one-shot; the status flip is conditional on the row still being
// pending so two concurrent reviews cannot both apply side effects.
type ApprovalService struct {
	db            *gorm.DB
	registry      *Registry
	notifications *NotificationService
	logger        *zap.Logger
}

func NewApprovalService(db *gorm.DB, registry *Registry, notifications *NotificationService, logger *zap.Logger) *ApprovalService {
	return &ApprovalService{db: db, registry: registry, notifications: notifications, logger: logger}
}

// approveOutcome carries what the post-commit notification step needs.
type approveOutcome struct {
	Submission *models.Submission
	Result     *ApplyResult
}

// Approve validates and applies a pending submission inside one
// transaction, then notifies the submitter (and any invited
// collaborators) after commit. Notification failures never surface as
// the operation's failure.
func (s *ApprovalService) Approve(ctx context.Context, submissionID int) (*models.Submission, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	outcome, err := s.approveInTx(ctx, tx, submissionID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit approval: %w", err)
	}

	s.notifyApproved(ctx, outcome)
	return outcome.Submission, nil
}

// approveInTx runs the whole approve flow on the caller's transaction.
// The bulk path shares this with its batch transaction.
func (s *ApprovalService) approveInTx(ctx context.Context, tx *gorm.DB, submissionID int) (*approveOutcome, error) {
	var submission models.Submission
	if err := tx.First(&submission, "submission_id = ?", submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("load submission %d: %w", submissionID, err)
	}

	if len(submission.ProposedData) == 0 || !json.Valid(submission.ProposedData) {
		return nil, ErrCorruptSubmission
	}
	if submission.Section == "" || submission.OrganizationID == 0 || submission.SubmittedBy == 0 {
		return nil, ErrInvalidSubmission
	}

	// First write: conditional status flip. A concurrent approve (or a
	// reject that won) leaves zero affected rows and we bail before any
	// side effects.
	flip := tx.Model(&models.Submission{}).
		Where("submission_id = ? AND status = ?", submissionID, models.SubmissionStatusPending).
		Updates(map[string]interface{}{
			"status":     models.SubmissionStatusApproved,
			"updated_at": time.Now(),
		})
	if flip.Error != nil {
		return nil, fmt.Errorf("update submission status: %w", flip.Error)
	}
	if flip.RowsAffected == 0 {
		return nil, ErrNotPending
	}

	result, err := s.registry.Apply(submission.Section, &ApplyContext{
		Ctx:            ctx,
		Tx:             tx,
		SubmissionID:   submission.SubmissionID,
		OrganizationID: submission.OrganizationID,
		SubmittedBy:    submission.SubmittedBy,
		Raw:            submission.ProposedData,
	})
	if err != nil {
		return nil, err
	}

	submission.Status = models.SubmissionStatusApproved
	return &approveOutcome{Submission: &submission, Result: result}, nil
}

func (s *ApprovalService) notifyApproved(ctx context.Context, outcome *approveOutcome) {
	sub := outcome.Submission
	message := buildApprovalMessage(sub.Section, outcome.Result)

	relatedID := sub.SubmissionID
	if err := s.notifications.Dispatch(ctx, sub.SubmittedBy, "success", "Submission approved", message, sub.Section, &relatedID); err != nil {
		s.logger.Warn("approval notification failed",
			zap.Int("submission_id", sub.SubmissionID),
			zap.Error(err),
		)
	}

	for _, invite := range outcome.Result.NotifyInvites {
		inviteMsg := fmt.Sprintf("You have been invited to collaborate on the program %q.", outcome.Result.ProgramTitle)
		if err := s.notifications.Dispatch(ctx, invite.CollaboratorAdminID, "info", "Program collaboration invite", inviteMsg, sub.Section, invite.ProgramID); err != nil {
			s.logger.Warn("collaboration invite notification failed",
				zap.Int("collaborator_admin_id", invite.CollaboratorAdminID),
				zap.Error(err),
			)
		}
	}
}

// buildApprovalMessage templates the submitter-facing message by
// section, with a distinct wording for collaborative programs.
func buildApprovalMessage(section models.Section, result *ApplyResult) string {
	switch section {
	case models.SectionPrograms:
		if result != nil && result.Collaborative {
			return fmt.Sprintf("Your collaborative program %q has been approved and is now live. Invited organizations have been notified.", result.ProgramTitle)
		}
		if result != nil && result.ProgramTitle != "" {
			return fmt.Sprintf("Your program %q has been approved and is now live.", result.ProgramTitle)
		}
		return "Your program submission has been approved."
	case models.SectionNews:
		return "Your news post has been approved and published."
	case models.SectionOrgHeads:
		return "Your organization heads update has been approved."
	default:
		return fmt.Sprintf("Your %s update has been approved.", section)
	}
}

// Reject marks a pending submission rejected with a reason. The guard
// lives in the WHERE clause: zero affected rows means the submission
// was missing or already processed.
func (s *ApprovalService) Reject(ctx context.Context, submissionID int, reason string) error {
	reason = strings.TrimSpace(reason)

	update := s.db.WithContext(ctx).Model(&models.Submission{}).
		Where("submission_id = ? AND status = ?", submissionID, models.SubmissionStatusPending).
		Updates(map[string]interface{}{
			"status":           models.SubmissionStatusRejected,
			"rejection_reason": reason,
			"updated_at":       time.Now(),
		})
	if update.Error != nil {
		return fmt.Errorf("reject submission %d: %w", submissionID, update.Error)
	}
	if update.RowsAffected == 0 {
		return ErrAlreadyProcessed
	}

	var submission models.Submission
	if err := s.db.First(&submission, "submission_id = ?", submissionID).Error; err != nil {
		s.logger.Warn("load rejected submission failed", zap.Int("submission_id", submissionID), zap.Error(err))
		return nil
	}

	// Highlights stage their content in admin_highlights; keep that row
	// in step with the rejection, best-effort.
	if submission.Section == models.SectionHighlights {
		if err := s.db.Model(&models.AdminHighlight{}).
			Where("submission_id = ?", submissionID).
			Updates(map[string]interface{}{
				"status":     models.SubmissionStatusRejected,
				"updated_at": time.Now(),
			}).Error; err != nil {
			s.logger.Warn("highlight status flip failed", zap.Int("submission_id", submissionID), zap.Error(err))
		}
	}

	message := fmt.Sprintf("Your %s submission was rejected.", submission.Section)
	if reason != "" {
		message = fmt.Sprintf("%s Reason: %s", message, reason)
	}
	relatedID := submission.SubmissionID
	if err := s.notifications.Dispatch(ctx, submission.SubmittedBy, "warning", "Submission rejected", message, submission.Section, &relatedID); err != nil {
		s.logger.Warn("rejection notification failed", zap.Int("submission_id", submissionID), zap.Error(err))
	}
	return nil
}

// Delete removes a submission row entirely.
func (s *ApprovalService) Delete(ctx context.Context, submissionID int) error {
	result := s.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Delete(&models.Submission{})
	if result.Error != nil {
		return fmt.Errorf("delete submission %d: %w", submissionID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
