// Package orgs handles organization provisioning: organizations, members,
// linked chat identities, and attendance views over the authenticated API.
package orgs

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog/internal/http/middleware"
	"github.com/shiftlog/shiftlog/internal/httputil"
	"github.com/shiftlog/shiftlog/pkg/attendance"
	"github.com/shiftlog/shiftlog/pkg/domain"
	"github.com/shiftlog/shiftlog/pkg/repository"
)

// Handler handles organization and membership endpoints.
type Handler struct {
	logger      *slog.Logger
	db          *sql.DB
	orgs        *repository.OrganizationsRepository
	memberships *repository.MembershipsRepository
	users       *repository.UsersRepository
	identities  *repository.IdentitiesRepository
	vacations   *repository.VacationsRepository
	attendance  *attendance.Service
	location    *time.Location
}

// NewHandler creates a new orgs handler.
func NewHandler(
	logger *slog.Logger,
	db *sql.DB,
	orgs *repository.OrganizationsRepository,
	memberships *repository.MembershipsRepository,
	users *repository.UsersRepository,
	identities *repository.IdentitiesRepository,
	vacations *repository.VacationsRepository,
	svc *attendance.Service,
	location *time.Location,
) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		logger:      logger,
		db:          db,
		orgs:        orgs,
		memberships: memberships,
		users:       users,
		identities:  identities,
		vacations:   vacations,
		attendance:  svc,
		location:    location,
	}
}

// CreateOrganizationRequest represents an organization creation request.
type CreateOrganizationRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// OrganizationResponse represents an organization in API responses.
type OrganizationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Role string `json:"role,omitempty"`
}

// AddMemberRequest represents a member addition request.
type AddMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateMemberRequest represents a member role or status change.
type UpdateMemberRequest struct {
	Role   string `json:"role"`
	Status string `json:"status"`
}

// MemberResponse represents a membership in API responses.
type MemberResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// LinkIdentityRequest represents a chat identity link request.
type LinkIdentityRequest struct {
	Platform       string `json:"platform"`
	PlatformUserID string `json:"platform_user_id"`
}

// IdentityResponse represents a linked chat identity.
type IdentityResponse struct {
	Platform       string `json:"platform"`
	PlatformUserID string `json:"platform_user_id"`
}

// RosterEntryResponse represents one open session on the status board.
type RosterEntryResponse struct {
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	StartedAt string  `json:"started_at"`
	Note      *string `json:"note,omitempty"`
}

// SessionResponse represents a work session in report responses.
type SessionResponse struct {
	ID        string  `json:"id"`
	StartedAt string  `json:"started_at"`
	EndedAt   *string `json:"ended_at,omitempty"`
	Hours     float64 `json:"hours"`
	Note      *string `json:"note,omitempty"`
}

// ReportResponse represents a monthly attendance report.
type ReportResponse struct {
	UserID     string            `json:"user_id"`
	Year       int               `json:"year"`
	Month      int               `json:"month"`
	TotalHours float64           `json:"total_hours"`
	Sessions   []SessionResponse `json:"sessions"`
}

// RecordVacationRequest represents a vacation day record.
type RecordVacationRequest struct {
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// VacationResponse represents a recorded vacation day.
type VacationResponse struct {
	ID     string  `json:"id"`
	UserID string  `json:"user_id"`
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// Create handles organization creation. The creator becomes the owner in the
// same transaction.
// POST /v1/orgs
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Slug == "" {
		httputil.Error(w, http.StatusBadRequest, "name and slug are required")
		return
	}

	now := time.Now()
	org := &domain.Organization{
		ID:        uuid.New(),
		Name:      req.Name,
		Slug:      req.Slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	membership := &domain.Membership{
		ID:             uuid.New(),
		OrganizationID: org.ID,
		UserID:         userID,
		Role:           domain.MembershipRoleOwner,
		Status:         domain.MembershipStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := repository.Tx(r.Context(), h.db, func(tx *sql.Tx) error {
		if err := h.orgs.CreateTx(r.Context(), tx, org); err != nil {
			return err
		}
		return h.memberships.CreateTx(r.Context(), tx, membership)
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlugAlreadyExists) {
			httputil.Error(w, http.StatusConflict, "slug already exists")
			return
		}
		h.logger.Error("organization creation failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to create organization")
		return
	}

	httputil.JSON(w, http.StatusCreated, OrganizationResponse{
		ID:   org.ID.String(),
		Name: org.Name,
		Slug: org.Slug,
		Role: string(domain.MembershipRoleOwner),
	})
}

// List handles listing the caller's organizations, ordered by when the
// caller joined. The first entry is the implicit target for chat commands.
// GET /v1/orgs
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	results, err := h.memberships.GetActiveWithOrganizations(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list organizations", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to list organizations")
		return
	}

	response := make([]OrganizationResponse, 0, len(results))
	for _, result := range results {
		response = append(response, OrganizationResponse{
			ID:   result.Organization.ID.String(),
			Name: result.Organization.Name,
			Slug: result.Organization.Slug,
			Role: string(result.Membership.Role),
		})
	}
	httputil.JSON(w, http.StatusOK, response)
}

// AddMember handles adding an existing user to an organization.
// POST /v1/orgs/{orgID}/members
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := h.requireManager(w, r)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		httputil.Error(w, http.StatusBadRequest, "email is required")
		return
	}
	role := domain.MembershipRole(req.Role)
	if req.Role == "" {
		role = domain.MembershipRoleMember
	}
	if !role.IsValid() {
		httputil.Error(w, http.StatusBadRequest, "invalid role")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("member lookup failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to add member")
		return
	}

	now := time.Now()
	membership := &domain.Membership{
		ID:             uuid.New(),
		OrganizationID: orgID,
		UserID:         user.ID,
		Role:           role,
		Status:         domain.MembershipStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := h.memberships.Create(r.Context(), membership); err != nil {
		if errors.Is(err, domain.ErrMembershipExists) {
			httputil.Error(w, http.StatusConflict, "user is already a member")
			return
		}
		h.logger.Error("member creation failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to add member")
		return
	}

	httputil.JSON(w, http.StatusCreated, MemberResponse{
		UserID: user.ID.String(),
		Role:   string(membership.Role),
		Status: string(membership.Status),
	})
}

// UpdateMember handles changing a member's role or status.
// PATCH /v1/orgs/{orgID}/members/{userID}
func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := h.requireManager(w, r)
	if !ok {
		return
	}

	memberID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	membership, err := h.memberships.GetByUserAndOrganization(r.Context(), memberID, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			httputil.Error(w, http.StatusNotFound, "membership not found")
			return
		}
		h.logger.Error("membership lookup failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to update member")
		return
	}

	role := membership.Role
	if req.Role != "" {
		role = domain.MembershipRole(req.Role)
		if !role.IsValid() {
			httputil.Error(w, http.StatusBadRequest, "invalid role")
			return
		}
	}
	status := membership.Status
	if req.Status != "" {
		status = domain.MembershipStatus(req.Status)
		if !status.IsValid() {
			httputil.Error(w, http.StatusBadRequest, "invalid status")
			return
		}
	}

	if err := h.memberships.Update(r.Context(), membership.ID, role, status); err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			httputil.Error(w, http.StatusNotFound, "membership not found")
			return
		}
		h.logger.Error("membership update failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to update member")
		return
	}

	httputil.JSON(w, http.StatusOK, MemberResponse{
		UserID: memberID.String(),
		Role:   string(role),
		Status: string(status),
	})
}

// LinkIdentity handles linking a chat platform identity to the caller.
// POST /v1/identities
func (h *Handler) LinkIdentity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req LinkIdentityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	platform := domain.ChatPlatform(req.Platform)
	if !platform.IsValid() {
		httputil.Error(w, http.StatusBadRequest, "invalid platform")
		return
	}
	if req.PlatformUserID == "" {
		httputil.Error(w, http.StatusBadRequest, "platform_user_id is required")
		return
	}

	identity := &domain.ChatIdentity{
		ID:             uuid.New(),
		UserID:         userID,
		Platform:       platform,
		PlatformUserID: req.PlatformUserID,
		CreatedAt:      time.Now(),
	}
	if err := h.identities.Create(r.Context(), identity); err != nil {
		if errors.Is(err, domain.ErrIdentityAlreadyLinked) {
			httputil.Error(w, http.StatusConflict, "identity already linked")
			return
		}
		h.logger.Error("identity link failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to link identity")
		return
	}

	httputil.JSON(w, http.StatusCreated, IdentityResponse{
		Platform:       string(identity.Platform),
		PlatformUserID: identity.PlatformUserID,
	})
}

// Status handles the live status board: who is checked in right now.
// GET /v1/orgs/{orgID}/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	entries, err := h.attendance.Roster(r.Context(), orgID)
	if err != nil {
		h.logger.Error("roster lookup failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to load status")
		return
	}

	response := make([]RosterEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, RosterEntryResponse{
			UserID:    entry.User.ID.String(),
			Name:      entry.User.Name,
			StartedAt: entry.Session.StartedAt.In(h.location).Format(time.RFC3339),
			Note:      entry.Session.Note,
		})
	}
	httputil.JSON(w, http.StatusOK, response)
}

// Report handles the monthly attendance report. Members can view their own
// report; owners and admins can view anyone's.
// GET /v1/orgs/{orgID}/report?user_id=&year=&month=
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	caller, orgID, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	subjectID := caller.UserID
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		subjectID = parsed
	}
	if subjectID != caller.UserID && !caller.Role.CanManageMembers() {
		httputil.Error(w, http.StatusForbidden, "not allowed to view other members' reports")
		return
	}

	now := time.Now().In(h.location)
	year, month := now.Year(), now.Month()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = parsed
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			httputil.Error(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = time.Month(parsed)
	}

	report, err := h.attendance.MonthlyReport(r.Context(), subjectID, orgID, year, month, h.location)
	if err != nil {
		h.logger.Error("report failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	sessions := make([]SessionResponse, 0, len(report.Sessions))
	for _, session := range report.Sessions {
		resp := SessionResponse{
			ID:        session.ID.String(),
			StartedAt: session.StartedAt.In(h.location).Format(time.RFC3339),
			Hours:     session.Hours(),
			Note:      session.Note,
		}
		if session.EndedAt != nil {
			ended := session.EndedAt.In(h.location).Format(time.RFC3339)
			resp.EndedAt = &ended
		}
		sessions = append(sessions, resp)
	}

	httputil.JSON(w, http.StatusOK, ReportResponse{
		UserID:     subjectID.String(),
		Year:       report.Year,
		Month:      int(report.Month),
		TotalHours: report.TotalHours,
		Sessions:   sessions,
	})
}

const dateLayout = "2006-01-02"

// RecordVacation handles recording a vacation day for the caller.
// POST /v1/orgs/{orgID}/vacations
func (h *Handler) RecordVacation(w http.ResponseWriter, r *http.Request) {
	caller, orgID, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	var req RecordVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := time.ParseInLocation(dateLayout, req.Date, h.location)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
		return
	}

	vacation := &domain.Vacation{
		ID:             uuid.New(),
		UserID:         caller.UserID,
		OrganizationID: orgID,
		Date:           date,
		Reason:         req.Reason,
		CreatedAt:      time.Now(),
	}
	if err := h.vacations.Create(r.Context(), vacation); err != nil {
		h.logger.Error("vacation record failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to record vacation")
		return
	}

	httputil.JSON(w, http.StatusCreated, VacationResponse{
		ID:     vacation.ID.String(),
		UserID: vacation.UserID.String(),
		Date:   vacation.Date.Format(dateLayout),
		Reason: vacation.Reason,
	})
}

// ListVacations handles listing vacation days in the organization. Without
// from/to parameters the current calendar month is used.
// GET /v1/orgs/{orgID}/vacations?from=&to=
func (h *Handler) ListVacations(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	now := time.Now().In(h.location)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.location)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, h.location)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "from must be formatted YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, h.location)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "to must be formatted YYYY-MM-DD")
			return
		}
		to = parsed
	}

	vacations, err := h.vacations.ListByOrganization(r.Context(), orgID, from, to)
	if err != nil {
		h.logger.Error("vacation listing failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to list vacations")
		return
	}

	response := make([]VacationResponse, 0, len(vacations))
	for _, vacation := range vacations {
		response = append(response, VacationResponse{
			ID:     vacation.ID.String(),
			UserID: vacation.UserID.String(),
			Date:   vacation.Date.Format(dateLayout),
			Reason: vacation.Reason,
		})
	}
	httputil.JSON(w, http.StatusOK, response)
}

// requireMember resolves the caller's active membership in the organization
// from the URL. On failure it writes the error response and returns false.
func (h *Handler) requireMember(w http.ResponseWriter, r *http.Request) (*domain.Membership, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "authentication required")
		return nil, uuid.Nil, false
	}

	orgID, err := uuid.Parse(chi.URLParam(r, "orgID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid organization id")
		return nil, uuid.Nil, false
	}

	membership, err := h.memberships.GetByUserAndOrganization(r.Context(), userID, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			httputil.Error(w, http.StatusForbidden, "not a member of this organization")
			return nil, uuid.Nil, false
		}
		h.logger.Error("membership lookup failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "membership lookup failed")
		return nil, uuid.Nil, false
	}
	if !membership.IsActive() {
		httputil.Error(w, http.StatusForbidden, "membership is not active")
		return nil, uuid.Nil, false
	}
	return membership, orgID, true
}

// requireManager is requireMember plus a role check for member management.
func (h *Handler) requireManager(w http.ResponseWriter, r *http.Request) (*domain.Membership, uuid.UUID, bool) {
	membership, orgID, ok := h.requireMember(w, r)
	if !ok {
		return nil, uuid.Nil, false
	}
	if !membership.Role.CanManageMembers() {
		httputil.Error(w, http.StatusForbidden, "owner or admin role required")
		return nil, uuid.Nil, false
	}
	return membership, orgID, true
}
