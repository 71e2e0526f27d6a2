package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/models"
	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/utils"
)

const eventDateLayout = "2006-01-02"

// ApplyContext carries one submission's data through a section handler.
// Tx is the approval transaction; every handler write goes through it.
type ApplyContext struct {
	Ctx            context.Context
	Tx             *gorm.DB
	SubmissionID   int
	OrganizationID int
	SubmittedBy    int
	Raw            json.RawMessage
}

// ApplyResult reports what a handler produced. Program fields are only
// set by the programs handler.
type ApplyResult struct {
	ProgramID     *int
	ProgramTitle  string
	Collaborative bool
	NotifyInvites []models.ProgramCollaboration
}

// SectionHandler projects a proposed-data payload onto its target
// table(s).
type SectionHandler interface {
	Apply(ac *ApplyContext) (*ApplyResult, error)
}

// Registry dispatches submissions to section handlers by the section
// discriminator.
type Registry struct {
	handlers map[models.Section]SectionHandler
}

func NewRegistry(images *ImageService, slugs *SlugService, collabs *CollaborationService, logger *zap.Logger) *Registry {
	return &Registry{handlers: map[models.Section]SectionHandler{
		models.SectionOrganization: &organizationHandler{images: images},
		models.SectionAdvocacy:     &advocacyHandler{},
		models.SectionCompetency:   &competencyHandler{},
		models.SectionOrgHeads:     &orgHeadsHandler{images: images},
		models.SectionPrograms:     &programsHandler{images: images, slugs: slugs, collabs: collabs},
		models.SectionNews:         &newsHandler{images: images, slugs: slugs},
		models.SectionHighlights:   &highlightsHandler{},
	}}
}

func (r *Registry) Apply(section models.Section, ac *ApplyContext) (*ApplyResult, error) {
	handler, ok := r.handlers[section]
	if !ok {
		return nil, ErrUnsupportedSection
	}
	return handler.Apply(ac)
}

// normalizeTextPayload accepts either a raw string payload or an
// arbitrary JSON value; strings are trimmed, anything else is
// serialized back to its JSON encoding.
func normalizeTextPayload(raw json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", ErrCorruptSubmission
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s), nil
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", ErrCorruptSubmission
	}
	return string(encoded), nil
}

/* ==========================
   organization (update)
   ========================== */

type organizationPayload struct {
	OrgName     string `json:"org_name"`
	OrgAcronym  string `json:"org_acronym"`
	Description string `json:"description"`
	Facebook    string `json:"facebook"`
	Email       string `json:"email"`
	Logo        string `json:"logo"`
}

type organizationHandler struct {
	images *ImageService
}

func (h *organizationHandler) Apply(ac *ApplyContext) (*ApplyResult, error) {
	var p organizationPayload
	if err := json.Unmarshal(ac.Raw, &p); err != nil {
		return nil, ErrCorruptSubmission
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if v := strings.TrimSpace(p.OrgName); v != "" {
		updates["org_name"] = v
	}
	if v := strings.TrimSpace(p.OrgAcronym); v != "" {
		updates["org_acronym"] = v
	}
	if v := strings.TrimSpace(p.Description); v != "" {
		updates["description"] = v
	}
	if v := strings.TrimSpace(p.Facebook); v != "" {
		updates["facebook"] = v
	}
	if v := strings.TrimSpace(p.Email); v != "" {
		if !utils.ValidateEmail(v) {
			return nil, &ValidationError{Field: "email", Reason: "is not a valid email address"}
		}
		updates["email"] = v
	}
	if v := strings.TrimSpace(p.Logo); v != "" {
		updates["logo"] = h.images.Externalize(ac.Ctx, v, "organizations")
	}

	if err := ac.Tx.Model(&models.Organization{}).
		Where("organization_id = ?", ac.OrganizationID).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return &ApplyResult{}, nil
}

/* ==========================
   advocacy / competency (singleton upsert)
   ========================== */

type advocacyHandler struct{}

func (h *advocacyHandler) Apply(ac *ApplyContext) (*ApplyResult, error) {
	text, err := normalizeTextPayload(ac.Raw)
	if err != nil {
		return nil, err
	}

	var row models.Advocacy
	err = ac.Tx.Where("organization_id = ?", ac.OrganizationID).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.Advocacy{
			OrganizationID: ac.OrganizationID,
			Advocacy:       text,
			UpdatedAt:      time.Now(),
		}
		if err := ac.Tx.Create(&row).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := ac.Tx.Model(&row).Updates(map[string]interface{}{
			"advocacy":   text,
			"updated_at": time.Now(),
		}).Error; err != nil {
			return nil, err
		}
	}
	return &ApplyResult{}, nil
}

type competencyHandler struct{}

func (h *competencyHandler) Apply(ac *ApplyContext) (*ApplyResult, error) {
	text, err := normalizeTextPayload(ac.Raw)
	if err != nil {
		return nil, err
	}

	var row models.Competency
	err = ac.Tx.Where("organization_id = ?", ac.OrganizationID).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.Competency{
			OrganizationID: ac.OrganizationID,
			Competency:     text,
			UpdatedAt:      time.Now(),
		}
		if err := ac.Tx.Create(&row).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := ac.Tx.Model(&row).Updates(map[string]interface{}{
			"competency": text,
			"updated_at": time.Now(),
		}).Error; err != nil {
			return nil, err
		}
	}
	return &ApplyResult{}, nil
}

/* ==========================
   org_heads (replace-all)
   ========================== */

type headPayload struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Facebook     string `json:"facebook"`
	Email        string `json:"email"`
	Photo        string `json:"photo"`
	DisplayOrder int    `json:"display_order"`
}

type orgHeadsHandler struct {
	images *ImageService
}

func (h *orgHeadsHandler) Apply(ac *ApplyContext) (*ApplyResult, error) {
	var heads []headPayload
	if err := json.Unmarshal(ac.Raw, &heads); err != nil {
		// Some clients wrap the list in an object.
		var wrapped struct {
			Heads []headPayload `json:"heads"`
		}
		if err := json.Unmarshal(ac.Raw, &wrapped); err != nil {
			return nil, ErrCorruptSubmission
		}
		heads = wrapped.Heads
	}

	if err := ac.Tx.Where("organization_id = ?", ac.OrganizationID).
		Delete(&models.OrganizationHead{}).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	for i, head := range heads {
		order := head.DisplayOrder
		if order == 0 {
			order = i + 1
		}
		row := models.OrganizationHead{
			OrganizationID: ac.OrganizationID,
			Name:           strings.TrimSpace(head.Name),
			Role:           strings.TrimSpace(head.Role),
			Facebook:       strings.TrimSpace(head.Facebook),
			Email:          strings.TrimSpace(head.Email),
			Photo:          h.images.Externalize(ac.Ctx, head.Photo, "organization-heads"),
			DisplayOrder:   order,
			CreatedAt:      now,
		}
		if err := ac.Tx.Create(&row).Error; err != nil {
			return nil, err
		}
	}
	return &ApplyResult{}, nil
}

/* ==========================
   programs (create-new)
   ========================== */

type programPayload struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	Image             string   `json:"image"`
	AdditionalImages  []string `json:"additional_images"`
	EventStartDate    string   `json:"event_start_date"`
	EventEndDate      string   `json:"event_end_date"`
	MultipleDates     []string `json:"multiple_dates"`
	AcceptsVolunteers bool     `json:"accepts_volunteers"`
	Collaborators     []any    `json:"collaborators"`
}

type programsHandler struct {
	images  *ImageService
	slugs   *SlugService
	collabs *CollaborationService
}

func (h *programsHandler) Apply(ac *ApplyContext) (*ApplyResult, error) {
	var p programPayload
	if err := json.Unmarshal(ac.Raw, &p); err != nil {
		return nil, ErrCorruptSubmission
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(p.Description) == "" {
		return nil, &ValidationError{Field: "description"}
	}
	if strings.TrimSpace(p.Category) == "" {
		return nil, &ValidationError{Field: "category"}
	}

	refs := NormalizeCollaborators(p.Collaborators, ac.SubmittedBy)

	slug, err := h.slugs.Allocate(ac.Tx, title, models.Program{}.TableName())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	program := models.Program{
		OrganizationID: ac.OrganizationID,
		Title:          title,
		Description:    strings.TrimSpace(p.Description),
		Category:       strings.TrimSpace(p.Category),
		Slug:           slug,
		Image:          h.images.Externalize(ac.Ctx, p.Image, "programs"),
		// Superadmin approval alone makes the program live; collaborator
		// acceptance is tracked separately on the collaboration rows.
		IsApproved:        true,
		IsCollaborative:   len(refs) > 0,
		AcceptsVolunteers: p.AcceptsVolunteers,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	program.EventStartDate = parseEventDate(p.EventStartDate)
	program.EventEndDate = parseEventDate(p.EventEndDate)

	if err := ac.Tx.Create(&program).Error; err != nil {
		return nil, err
	}

	for _, d := range p.MultipleDates {
		parsed := parseEventDate(d)
		if parsed == nil {
			continue
		}
		row := models.ProgramEventDate{ProgramID: program.ProgramID, EventDate: *parsed}
		if err := ac.Tx.Create(&row).Error; err != nil {
			return nil, err
		}
	}

	for i, img := range p.AdditionalImages {
		url := h.images.Externalize(ac.Ctx, img, "programs/additional")
		if url == "" {
			continue
		}
		row := models.ProgramAdditionalImage{
			ProgramID: program.ProgramID,
			ImageURL:  url,
			SortOrder: i + 1,
		}
		if err := ac.Tx.Create(&row).Error; err != nil {
			return nil, err
		}
	}

	result := &ApplyResult{
		ProgramID:     &program.ProgramID,
		ProgramTitle:  title,
		Collaborative: len(refs) > 0,
	}

	if len(refs) > 0 {
		invites, err := h.collabs.Reconcile(ac.Tx, program.ProgramID, ac.SubmissionID, title, refs, ac.SubmittedBy)
		if err != nil {
			return nil, err
		}
		result.NotifyInvites = invites
	}
	return result, nil
}

func parseEventDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(eventDateLayout, value)
	if err != nil {
		return nil
	}
	return &parsed
}

/* ==========================
   news (create-new)
   ========================== */

type newsPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

type newsHandler struct {
	images *ImageService
	slugs  *SlugService
}

func (h *newsHandler) Apply(ac *ApplyContext) (*ApplyResult, error) {
	var p newsPayload
	if err := json.Unmarshal(ac.Raw, &p); err != nil {
		return nil, ErrCorruptSubmission
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(p.Content) == "" {
		return nil, &ValidationError{Field: "content"}
	}

	slug, err := h.slugs.Allocate(ac.Tx, title, models.News{}.TableName())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	row := models.News{
		OrganizationID: ac.OrganizationID,
		Title:          title,
		Content:        strings.TrimSpace(p.Content),
		Slug:           slug,
		Image:          h.images.Externalize(ac.Ctx, p.Image, "news"),
		PublishedAt:    &now,
		CreatedAt:      now,
	}
	if err := ac.Tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &ApplyResult{}, nil
}

/* ==========================
   highlights (status flip)
   ========================== */

type highlightsHandler struct{}

func (h *highlightsHandler) Apply(ac *ApplyContext) (*ApplyResult, error) {
	// The highlight content was already staged by the admin; approval
	// just flips the linked row live. Zero affected rows is not an
	// error (the staged row may have been removed).
	if err := ac.Tx.Model(&models.AdminHighlight{}).
		Where("submission_id = ?", ac.SubmissionID).
		Updates(map[string]interface{}{
			"status":     models.SubmissionStatusApproved,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return nil, err
	}
	return &ApplyResult{}, nil
}
