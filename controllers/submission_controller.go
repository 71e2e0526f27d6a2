package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/models"
	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/services"
	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/utils"
)

// SubmissionController exposes the superadmin review surface.
type SubmissionController struct {
	db        *gorm.DB
	approvals *services.ApprovalService
	bulk      *services.BulkService
	logger    *zap.Logger
}

func NewSubmissionController(db *gorm.DB, approvals *services.ApprovalService, bulk *services.BulkService, logger *zap.Logger) *SubmissionController {
	return &SubmissionController{db: db, approvals: approvals, bulk: bulk, logger: logger}
}

// List returns the review queue, newest first.
// GET /superadmin/submissions?status=pending&page=1
func (sc *SubmissionController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage := 50

	q := sc.db.
		Preload("Organization").
		Preload("Submitter").
		Order("submitted_at DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if section := c.Query("section"); section != "" {
		q = q.Where("section = ?", section)
	}

	var total int64
	q.Model(&models.Submission{}).Count(&total)

	var submissions []models.Submission
	if err := q.Limit(perPage).Offset((page - 1) * perPage).Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"pagination": gin.H{
			"page":        page,
			"per_page":    perPage,
			"total":       total,
			"total_pages": int(math.Ceil(float64(total) / float64(perPage))),
		},
	})
}

// Approve applies a pending submission to the live schema.
// PUT /superadmin/submissions/:id/approve
func (sc *SubmissionController) Approve(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid submission ID"})
		return
	}

	submission, err := sc.approvals.Approve(c.Request.Context(), submissionID)
	if err != nil {
		sc.respondApprovalError(c, submissionID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission approved successfully",
		"submission": submission,
	})
}

// Reject marks a pending submission rejected.
// PUT /superadmin/submissions/:id/reject
func (sc *SubmissionController) Reject(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid submission ID"})
		return
	}

	var req struct {
		RejectionComment string `json:"rejection_comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || utils.SanitizeInput(req.RejectionComment) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Rejection comment is required"})
		return
	}

	if err := sc.approvals.Reject(c.Request.Context(), submissionID, utils.SanitizeInput(req.RejectionComment)); err != nil {
		sc.respondApprovalError(c, submissionID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Submission rejected successfully",
	})
}

// Delete removes a submission entirely.
// DELETE /superadmin/submissions/:id/delete
func (sc *SubmissionController) Delete(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid submission ID"})
		return
	}

	if err := sc.approvals.Delete(c.Request.Context(), submissionID); err != nil {
		sc.respondApprovalError(c, submissionID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Submission deleted successfully",
	})
}

type bulkRequest struct {
	IDs              []int  `json:"ids" binding:"required"`
	RejectionComment string `json:"rejection_comment"`
}

// BulkApprove applies the approve path across a batch. The response is
// always a success envelope; error_count carries partial failures.
// POST /superadmin/submissions/bulk/approve
func (sc *SubmissionController) BulkApprove(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ids are required"})
		return
	}

	report, err := sc.bulk.ApproveAll(c.Request.Context(), req.IDs)
	if err != nil {
		sc.logger.Error("bulk approve failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Bulk approval failed",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bulk approval processed",
		"details": report,
	})
}

// BulkReject rejects each submission independently.
// POST /superadmin/submissions/bulk/reject
func (sc *SubmissionController) BulkReject(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ids are required"})
		return
	}
	if utils.SanitizeInput(req.RejectionComment) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Rejection comment is required"})
		return
	}

	report := sc.bulk.RejectAll(c.Request.Context(), req.IDs, utils.SanitizeInput(req.RejectionComment))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bulk rejection processed",
		"details": report,
	})
}

// BulkDelete deletes each submission independently.
// POST /superadmin/submissions/bulk/delete
func (sc *SubmissionController) BulkDelete(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ids are required"})
		return
	}

	report := sc.bulk.DeleteAll(c.Request.Context(), req.IDs)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bulk delete processed",
		"details": report,
	})
}

func (sc *SubmissionController) respondApprovalError(c *gin.Context, submissionID int, err error) {
	switch {
	case errors.Is(err, services.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Submission not found"})
	case errors.Is(err, services.ErrAlreadyProcessed):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Submission not found or already processed"})
	case errors.Is(err, services.ErrNotPending):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only pending submissions can be processed"})
	case errors.Is(err, services.ErrCorruptSubmission),
		errors.Is(err, services.ErrInvalidSubmission),
		errors.Is(err, services.ErrUnsupportedSection),
		services.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		sc.logger.Error("submission operation failed", zap.Int("submission_id", submissionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to process submission",
			"error":   err.Error(),
		})
	}
}
