package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/javiermolinar/rocinante/internal/activity"
	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/task"
)

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.repo.ListProjects(r.Context())
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, projectToResponse(p))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request format")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, r, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	p, err := task.NewProject(req.Name)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	if err := s.repo.CreateProject(r.Context(), p); err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, projectToResponse(p))
}

// project resolves the {project} URL parameter, writing the error response
// when it cannot.
func (s *Server) project(w http.ResponseWriter, r *http.Request) (*task.Project, bool) {
	p, err := s.repo.GetProjectByName(r.Context(), chi.URLParam(r, "project"))
	if err != nil {
		s.respondDomainError(w, r, err)
		return nil, false
	}
	return p, true
}

// projectTask resolves {id} and checks it belongs to the project.
func (s *Server) projectTask(w http.ResponseWriter, r *http.Request) (*task.Task, bool) {
	p, ok := s.project(w, r)
	if !ok {
		return nil, false
	}
	t, err := s.repo.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondDomainError(w, r, err)
		return nil, false
	}
	if t.ProjectID != p.ID {
		s.respondDomainError(w, r, task.ErrTaskNotFound)
		return nil, false
	}
	return t, true
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	p, ok := s.project(w, r)
	if !ok {
		return
	}

	tasks, err := s.repo.ListTasksByProject(r.Context(), p.ID)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tasksToResponse(tasks))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	p, ok := s.project(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request format")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, r, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	t, err := task.New(req.Title, p.ID, task.NewOptions{
		Start:    req.Start,
		Due:      req.Due,
		End:      req.End,
		Priority: req.Priority,
		Status:   req.Status,
	})
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	if err := s.repo.CreateTask(r.Context(), t); err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, taskToResponse(t))
}

func (s *Server) setTaskStatus(w http.ResponseWriter, r *http.Request) {
	t, ok := s.projectTask(w, r)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request format")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, r, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	if err := s.repo.SetTaskStatus(r.Context(), t.ID, task.Status(req.Status)); err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	updated, err := s.repo.GetTask(r.Context(), t.ID)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, taskToResponse(updated))
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	t, ok := s.projectTask(w, r)
	if !ok {
		return
	}

	if err := s.repo.DeleteTask(r.Context(), t.ID); err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) monthCalendar(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	p, ok := s.project(w, r)
	if !ok {
		return
	}

	first, last := dateutil.MonthBounds(year, month)
	tasks, err := s.repo.ListTasksInRange(r.Context(), p.ID, first, last)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	layout := calendar.Layout(tasks, year, month, s.opts.layout())
	respondJSON(w, http.StatusOK, calendarToResponse(layout))
}

func (s *Server) dayDetail(w http.ResponseWriter, r *http.Request) {
	date := dateutil.Today()
	if v := r.URL.Query().Get("date"); v != "" {
		d, err := dateutil.Parse(v)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		date = d
	}

	p, ok := s.project(w, r)
	if !ok {
		return
	}

	tasks, err := s.repo.ListTasksInRange(r.Context(), p.ID, date, date)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, DayResponse{
		Date:  date,
		Tasks: tasksToResponse(calendar.DayDetail(tasks, date)),
	})
}

func (s *Server) listActivity(w http.ResponseWriter, r *http.Request) {
	if s.feed == nil {
		respondError(w, r, http.StatusNotImplemented, "activity feed unavailable")
		return
	}

	page, err := queryInt(r, "page", 1)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	page, limit = activity.NormalizePage(page, limit, activity.MaxLimit)

	feed, err := s.feed.Page(r.Context(), chi.URLParam(r, "project"), page, limit)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, feed)
}

// parseYearMonth reads ?year=&month=, defaulting each to today's.
func parseYearMonth(r *http.Request) (int, time.Month, error) {
	today := dateutil.Today()

	year, err := queryInt(r, "year", today.Year)
	if err != nil {
		return 0, 0, err
	}
	month, err := queryInt(r, "month", int(today.Month))
	if err != nil {
		return 0, 0, err
	}
	if month < 1 || month > 12 {
		return 0, 0, errInvalidMonth
	}
	if year < 1 || year > 9999 {
		return 0, 0, errInvalidYear
	}
	return year, time.Month(month), nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &queryError{key: key, value: v}
	}
	return n, nil
}
