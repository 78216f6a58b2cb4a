package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/diagnosis/patrol-checkpoints/internal/http/middleware"
	"github.com/diagnosis/patrol-checkpoints/internal/http/response"
	"github.com/diagnosis/patrol-checkpoints/internal/service"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	authService       service.AuthService
	userService       service.UserService
	checkpointService service.CheckpointService
	roleService       service.RoleService
	scheduleService   service.ScheduleService
	scanService       service.ScanService
	attendanceService service.AttendanceService
	reportService     service.ReportService
}

// Services groups the dependencies of New.
type Services struct {
	Auth       service.AuthService
	Users      service.UserService
	Checkpoint service.CheckpointService
	Roles      service.RoleService
	Schedule   service.ScheduleService
	Scan       service.ScanService
	Attendance service.AttendanceService
	Reports    service.ReportService
}

func New(s Services) *Handlers {
	return &Handlers{
		authService:       s.Auth,
		userService:       s.Users,
		checkpointService: s.Checkpoint,
		roleService:       s.Roles,
		scheduleService:   s.Schedule,
		scanService:       s.Scan,
		attendanceService: s.Attendance,
		reportService:     s.Reports,
	}
}

// decodeJSON answers 400 itself and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			response.BadRequest(w, "request body is empty")
		} else {
			response.BadRequest(w, "invalid JSON body: "+err.Error())
		}
		return false
	}
	return true
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		response.BadRequest(w, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID reads the subject of the authenticated token.
func currentUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims := middleware.Claims(r)
	if claims == nil {
		response.Unauthorized(w, "missing bearer token")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.Sub)
	if err != nil {
		response.WriteError(w, http.StatusUnauthorized, "invalid token subject", response.CodeInvalidToken)
		return uuid.Nil, false
	}
	return id, true
}

// Helper to parse pagination parameters
func parsePagination(r *http.Request) (limit, offset int) {
	limit = 50
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
