package handler

import (
	"log/slog"
	"net/http"
	"time"

	"faer/internal/delivery/http/response"
	"faer/internal/domain/entity"
	domainerrors "faer/internal/domain/errors"
	"faer/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type formationView struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type enrollmentView struct {
	ID         string         `json:"id"`
	Status     string         `json:"status"`
	EnrolledAt time.Time      `json:"enrolledAt"`
	Formation  *formationView `json:"formation,omitempty"`
}

func newFormationView(f *entity.Formation) formationView {
	return formationView{
		ID:          f.ID.String(),
		Title:       f.Title,
		Description: f.Description,
		Duration:    f.Duration,
		Price:       f.Price,
		Category:    f.Category,
	}
}

func newEnrollmentView(e *entity.Enrollment) enrollmentView {
	view := enrollmentView{
		ID:         e.ID.String(),
		Status:     string(e.Status),
		EnrolledAt: e.EnrolledAt,
	}
	if e.Formation != nil {
		formation := newFormationView(e.Formation)
		view.Formation = &formation
	}

	return view
}

// FormationHandler holds dependencies for the training catalogue endpoints.
type FormationHandler struct {
	uc     usecase.FormationUsecase
	logger *slog.Logger
}

// NewFormationHandler is the constructor for FormationHandler, injected by Fx.
func NewFormationHandler(uc usecase.FormationUsecase, logger *slog.Logger) *FormationHandler {
	return &FormationHandler{
		uc:     uc,
		logger: logger,
	}
}

// List returns the full training catalogue.
func (h *FormationHandler) List(c echo.Context) error {
	formations, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]formationView, 0, len(formations))
	for _, f := range formations {
		views = append(views, newFormationView(f))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// Enroll registers the authenticated user in the formation named by the
// path parameter.
func (h *FormationHandler) Enroll(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	formationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("formation id must be a UUID")
	}

	enrollment, err := h.uc.Enroll(c.Request().Context(), userID, formationID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newEnrollmentView(enrollment), "Enrolled")
}

// ListMine returns the authenticated user's enrollments.
func (h *FormationHandler) ListMine(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	enrollments, err := h.uc.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]enrollmentView, 0, len(enrollments))
	for _, e := range enrollments {
		views = append(views, newEnrollmentView(e))
	}

	return response.Success(c, http.StatusOK, views, "")
}
