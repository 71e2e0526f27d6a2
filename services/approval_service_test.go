package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/models"
)

func newTestApprovalService(t *testing.T, steps []*queryStep) (*ApprovalService, *scriptedDB, func()) {
	t.Helper()
	db, state, cleanup := newScriptedGormDB(t, steps)
	logger := zap.NewNop()
	notifier := NewNotificationService(db, nil, logger)
	svc := NewApprovalService(db, testRegistry(), notifier, logger)
	return svc, state, cleanup
}

func submissionRow(id, orgID int64, section, proposed string, submittedBy int64, status string) []driver.Value {
	return []driver.Value{id, orgID, section, []byte(proposed), submittedBy, status}
}

var submissionColumns = []string{"submission_id", "organization_id", "section", "proposed_data", "submitted_by", "status"}

func TestApproveCompetencyHappyPath(t *testing.T) {
	svc, state, cleanup := newTestApprovalService(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE submission_id = \\?"),
			columns: submissionColumns,
			rows: [][]driver.Value{
				submissionRow(41, 12, "competency", `"Provides tutoring services"`, 9, "pending"),
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `submissions` SET .* WHERE submission_id = \\? AND status = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `competencies` WHERE organization_id = \\?"),
			columns: []string{"competency_id", "organization_id", "competency"},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `competencies`"),
			result:  scriptedResult{lastInsertID: 7, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `notifications`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT `email` FROM `admins` WHERE admin_id = \\?"),
			columns: []string{"email"},
			rows:    [][]driver.Value{{""}},
		},
	})
	defer cleanup()

	submission, err := svc.Approve(context.Background(), 41)
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if submission.Status != models.SubmissionStatusApproved {
		t.Errorf("status = %q, want %q", submission.Status, models.SubmissionStatusApproved)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

// Storage being down must not block a program approval: the program
// row is still inserted, carrying the inline data URI as its image.
func TestApproveProgramKeepsInlineImageWhenStorageUnavailable(t *testing.T) {
	dataURI := "data:image/png;base64,aGVsbG8="
	payload := `{"title":"Tree Planting","description":"d","category":"outreach","image":"` + dataURI + `"}`

	programInsert := &queryStep{
		kind:    kindExec,
		pattern: regexp.MustCompile("INSERT INTO `programs_projects`"),
		result:  scriptedResult{lastInsertID: 55, rowsAffected: 1},
	}

	svc, state, cleanup := newTestApprovalService(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE submission_id = \\?"),
			columns: submissionColumns,
			rows: [][]driver.Value{
				submissionRow(45, 12, "programs", payload, 9, "pending"),
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `submissions` SET .* WHERE submission_id = \\? AND status = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `programs_projects` WHERE slug = \\?"),
			args:    []driver.Value{"tree-planting"},
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		programInsert,
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `notifications`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT `email` FROM `admins` WHERE admin_id = \\?"),
			columns: []string{"email"},
			rows:    [][]driver.Value{{""}},
		},
	})
	defer cleanup()

	if _, err := svc.Approve(context.Background(), 45); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}

	found := false
	for _, arg := range programInsert.gotArgs {
		if s, ok := arg.(string); ok && s == dataURI {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("program insert args %v do not carry the inline image %q", programInsert.gotArgs, dataURI)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

// A second reviewer racing the same submission must stop at the
// conditional status flip without touching section tables.
func TestApproveAlreadyFlippedStopsBeforeSideEffects(t *testing.T) {
	svc, state, cleanup := newTestApprovalService(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE submission_id = \\?"),
			columns: submissionColumns,
			rows: [][]driver.Value{
				submissionRow(41, 12, "competency", `"Provides tutoring services"`, 9, "pending"),
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `submissions` SET .* WHERE submission_id = \\? AND status = \\?"),
			result:  scriptedResult{rowsAffected: 0},
		},
	})
	defer cleanup()

	_, err := svc.Approve(context.Background(), 41)
	if !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestApproveMissingSubmission(t *testing.T) {
	svc, _, cleanup := newTestApprovalService(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE submission_id = \\?"),
			columns: submissionColumns,
		},
	})
	defer cleanup()

	_, err := svc.Approve(context.Background(), 404)
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestApproveCorruptPayloadLeavesStatusUntouched(t *testing.T) {
	svc, state, cleanup := newTestApprovalService(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE submission_id = \\?"),
			columns: submissionColumns,
			rows: [][]driver.Value{
				submissionRow(41, 12, "competency", `{oops`, 9, "pending"),
			},
		},
	})
	defer cleanup()

	_, err := svc.Approve(context.Background(), 41)
	if !errors.Is(err, ErrCorruptSubmission) {
		t.Fatalf("expected ErrCorruptSubmission, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestRejectAlreadyProcessed(t *testing.T) {
	svc, _, cleanup := newTestApprovalService(t, []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `submissions` SET .* WHERE submission_id = \\? AND status = \\?"),
			result:  scriptedResult{rowsAffected: 0},
		},
	})
	defer cleanup()

	err := svc.Reject(context.Background(), 41, "duplicate submission")
	if !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
}

func TestRejectNotifiesSubmitter(t *testing.T) {
	svc, state, cleanup := newTestApprovalService(t, []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `submissions` SET .* WHERE submission_id = \\? AND status = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE submission_id = \\?"),
			columns: submissionColumns,
			rows: [][]driver.Value{
				submissionRow(41, 12, "news", `{"title":"Old news"}`, 9, "rejected"),
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `notifications`"),
			result:  scriptedResult{lastInsertID: 2, rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT `email` FROM `admins` WHERE admin_id = \\?"),
			columns: []string{"email"},
			rows:    [][]driver.Value{{""}},
		},
	})
	defer cleanup()

	if err := svc.Reject(context.Background(), 41, "outdated content"); err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestDeleteMissingSubmission(t *testing.T) {
	svc, _, cleanup := newTestApprovalService(t, []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `submissions` WHERE submission_id = \\?"),
			result:  scriptedResult{rowsAffected: 0},
		},
	})
	defer cleanup()

	err := svc.Delete(context.Background(), 404)
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestBuildApprovalMessage(t *testing.T) {
	collab := buildApprovalMessage(models.SectionPrograms, &ApplyResult{ProgramTitle: "Tree Planting", Collaborative: true})
	if !strings.Contains(collab, "collaborative") || !strings.Contains(collab, "Tree Planting") {
		t.Errorf("collaborative message = %q", collab)
	}

	plain := buildApprovalMessage(models.SectionPrograms, &ApplyResult{ProgramTitle: "Tree Planting"})
	if strings.Contains(plain, "collaborative") || !strings.Contains(plain, "Tree Planting") {
		t.Errorf("plain program message = %q", plain)
	}

	other := buildApprovalMessage(models.SectionAdvocacy, &ApplyResult{})
	if !strings.Contains(other, "advocacy") {
		t.Errorf("advocacy message = %q", other)
	}
}
