// Package handler contains the HTTP layer of the program builder.
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/conference-program/internal/program"
	queuepublisher "github.com/iliyamo/conference-program/internal/service"
)

// ProgramHandler bundles the program builder services behind the /v1
// program endpoints.  All routes are registered behind the admin and
// editor role gate; handlers only translate between HTTP and the
// services.
type ProgramHandler struct {
	Aggregator *program.Aggregator
	Assembler  *program.Assembler
	Grouping   *program.GroupingEngine
	Conflicts  *program.ConflictDetector
	Publisher  *queuepublisher.Publisher
	Log        *zap.SugaredLogger
}

// NewProgramHandler constructs a ProgramHandler and panics if a
// required dependency is nil.  Publisher may be nil when no broker is
// configured; events are then skipped.
func NewProgramHandler(agg *program.Aggregator, asm *program.Assembler, grp *program.GroupingEngine, con *program.ConflictDetector, pub *queuepublisher.Publisher, log *zap.SugaredLogger) *ProgramHandler {
	if agg == nil || asm == nil || grp == nil || con == nil || log == nil {
		panic("nil dependency passed to NewProgramHandler")
	}
	return &ProgramHandler{Aggregator: agg, Assembler: asm, Grouping: grp, Conflicts: con, Publisher: pub, Log: log}
}

// Dashboard handles GET /v1/program/conferences/:id/dashboard.  Query
// parameters: confidenceLevel (conservative|medium|high, default
// conservative) and includeUnderReview (presence or true enables the
// likely/uncertain tiers).
func (h *ProgramHandler) Dashboard(c echo.Context) error {
	conferenceID, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid conference id", nil)
	}
	level := strings.TrimSpace(c.QueryParam("confidenceLevel"))
	includeUnderReview := false
	if v, set := queryFlag(c, "includeUnderReview"); set {
		includeUnderReview = v
	}

	d, err := h.Aggregator.Dashboard(c.Request().Context(), conferenceID, level, includeUnderReview)
	if err != nil {
		h.Log.Errorw("dashboard failed", "conference_id", conferenceID, "err", err)
		return failFor(c, err)
	}
	return ok(c, http.StatusOK, d)
}

// createSessionRequest is the POST /v1/program/sessions body.
type createSessionRequest struct {
	ConferenceID        uint64               `json:"conferenceId"`
	SessionData         program.SessionInput `json:"sessionData"`
	AssignedSubmissions []uint64             `json:"assignedSubmissions"`
}

// CreateSession handles POST /v1/program/sessions.
func (h *ProgramHandler) CreateSession(c echo.Context) error {
	var body createSessionRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if body.ConferenceID == 0 {
		return fail(c, http.StatusBadRequest, "conferenceId is required", nil)
	}

	s, err := h.Assembler.Create(c.Request().Context(), body.ConferenceID, body.SessionData, body.AssignedSubmissions)
	if err != nil {
		return failFor(c, err)
	}
	h.publish(c, "created", s.ConferenceID, s.ID, s.Title, s.SessionNumber, body.AssignedSubmissions)

	return ok(c, http.StatusCreated, echo.Map{
		"session":       s,
		"assignedCount": len(s.Presentations),
	})
}

// updateSessionRequest is the PUT /v1/program/sessions/:id body.  The
// version token must carry the value the client last read; a stale
// token is rejected with 409.
type updateSessionRequest struct {
	SessionData       program.SessionInput `json:"sessionData"`
	AddSubmissions    []uint64             `json:"addSubmissions"`
	RemoveSubmissions []uint64             `json:"removeSubmissions"`
	Version           uint32               `json:"version"`
}

// UpdateSession handles PUT /v1/program/sessions/:id.
func (h *ProgramHandler) UpdateSession(c echo.Context) error {
	sessionID, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid session id", nil)
	}
	var body updateSessionRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if body.Version == 0 {
		return fail(c, http.StatusBadRequest, "version is required", nil)
	}

	s, err := h.Assembler.Update(c.Request().Context(), sessionID, body.SessionData, body.AddSubmissions, body.RemoveSubmissions, body.Version)
	if err != nil {
		return failFor(c, err)
	}
	affected := append(append([]uint64{}, body.AddSubmissions...), body.RemoveSubmissions...)
	h.publish(c, "updated", s.ConferenceID, s.ID, s.Title, s.SessionNumber, affected)

	return ok(c, http.StatusOK, echo.Map{
		"session":    s,
		"validation": program.Validate(*s),
	})
}

// DeleteSession handles DELETE /v1/program/sessions/:id.  Every
// formerly-assigned submission is reset to accepted.
func (h *ProgramHandler) DeleteSession(c echo.Context) error {
	sessionID, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid session id", nil)
	}

	s, affected, err := h.Assembler.Delete(c.Request().Context(), sessionID)
	if err != nil {
		return failFor(c, err)
	}
	h.publish(c, "deleted", s.ConferenceID, s.ID, s.Title, s.SessionNumber, affected)

	return ok(c, http.StatusOK, echo.Map{
		"deleted":               true,
		"reassignedSubmissions": affected,
	})
}

// suggestionsRequest is the POST /v1/program/suggestions body.
type suggestionsRequest struct {
	ConferenceID uint64 `json:"conferenceId"`
	Criteria     string `json:"criteria"`
}

// Suggestions handles POST /v1/program/suggestions.
func (h *ProgramHandler) Suggestions(c echo.Context) error {
	var body suggestionsRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if body.ConferenceID == 0 {
		return fail(c, http.StatusBadRequest, "conferenceId is required", nil)
	}

	batch, err := h.Grouping.Suggest(c.Request().Context(), body.ConferenceID, body.Criteria)
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, http.StatusOK, batch)
}

// ConflictReport handles GET /v1/program/conferences/:id/conflicts.
func (h *ProgramHandler) ConflictReport(c echo.Context) error {
	conferenceID, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid conference id", nil)
	}
	conflicts, err := h.Conflicts.Detect(c.Request().Context(), conferenceID)
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"conflicts": conflicts})
}

// publish emits a program.updated event.  Event failures are logged
// and swallowed; the mutation has already committed.
func (h *ProgramHandler) publish(c echo.Context, action string, conferenceID, sessionID uint64, title string, number uint32, submissions []uint64) {
	if h.Publisher == nil {
		return
	}
	if err := h.Publisher.PublishProgramUpdated(c.Request().Context(), action, conferenceID, sessionID, title, number, submissions); err != nil {
		h.Log.Warnw("program event publish failed", "action", action, "session_id", sessionID, "err", err)
	}
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// queryFlag reads a boolean query parameter; bare presence counts as
// true.  The second return reports whether the parameter was set.
func queryFlag(c echo.Context, name string) (bool, bool) {
	vals, present := c.QueryParams()[name]
	if !present {
		return false, false
	}
	if len(vals) == 0 || vals[0] == "" {
		return true, true
	}
	switch strings.ToLower(vals[0]) {
	case "1", "true", "yes":
		return true, true
	}
	return false, true
}
