package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BulkReport summarizes a batch operation. Bulk endpoints always
// succeed at the HTTP level; only ErrorCount signals partial failure.
type BulkReport struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors,omitempty"`
}

// BulkService applies the approval engine across submission batches.
// Atomicity differs by operation: bulk approve shares one transaction
// for the whole batch with a savepoint per item (a failed item is
// rolled back to its savepoint and reported; successes commit
// together), while bulk reject and bulk delete touch each item
// independently.
type BulkService struct {
	db        *gorm.DB
	approvals *ApprovalService
	logger    *zap.Logger
}

func NewBulkService(db *gorm.DB, approvals *ApprovalService, logger *zap.Logger) *BulkService {
	return &BulkService{db: db, approvals: approvals, logger: logger}
}

// ApproveAll approves a batch inside one transaction, with a savepoint
// around each item. A failed item is rolled back to its savepoint, so
// its status flip and any partial section writes are undone and the
// submission stays pending; the other items commit together at the end.
func (s *BulkService) ApproveAll(ctx context.Context, ids []int) (*BulkReport, error) {
	report := &BulkReport{}

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

	outcomes := make([]*approveOutcome, 0, len(ids))
	for i, id := range ids {
		sp := fmt.Sprintf("bulk_item_%d", i)
		if err := tx.SavePoint(sp).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("savepoint for submission %d: %w", id, err)
		}

		outcome, err := s.approvals.approveInTx(ctx, tx, id)
		if err != nil {
			if rbErr := tx.RollbackTo(sp).Error; rbErr != nil {
				tx.Rollback()
				return nil, fmt.Errorf("rollback to savepoint for submission %d: %w", id, rbErr)
			}
			report.ErrorCount++
			report.Errors = append(report.Errors, fmt.Sprintf("submission %d: %v", id, err))
			continue
		}
		report.SuccessCount++
		outcomes = append(outcomes, outcome)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit bulk approval: %w", err)
	}

	for _, outcome := range outcomes {
		s.approvals.notifyApproved(ctx, outcome)
	}
	return report, nil
}

// RejectAll rejects each submission independently; a failure on one
// item has no effect on the others.
func (s *BulkService) RejectAll(ctx context.Context, ids []int, reason string) *BulkReport {
	report := &BulkReport{}
	for _, id := range ids {
		if err := s.approvals.Reject(ctx, id, reason); err != nil {
			report.ErrorCount++
			report.Errors = append(report.Errors, fmt.Sprintf("submission %d: %v", id, err))
			continue
		}
		report.SuccessCount++
	}
	return report
}

// DeleteAll deletes each submission independently, same semantics as
// RejectAll.
func (s *BulkService) DeleteAll(ctx context.Context, ids []int) *BulkReport {
	report := &BulkReport{}
	for _, id := range ids {
		err := s.approvals.Delete(ctx, id)
		if err != nil {
			if !errors.Is(err, ErrSubmissionNotFound) {
				s.logger.Warn("bulk delete item failed", zap.Int("submission_id", id), zap.Error(err))
			}
			report.ErrorCount++
			report.Errors = append(report.Errors, fmt.Sprintf("submission %d: %v", id, err))
			continue
		}
		report.SuccessCount++
	}
	return report
}
