package handlers

import (
	"net/http"

	"jobboard/internal/app"
	"jobboard/internal/domain/job"
	"jobboard/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobRequest struct {
	Title          string             `json:"title"`
	Company        string             `json:"company"`
	Location       string             `json:"location"`
	Description    string             `json:"description"`
	Requirements   []string           `json:"requirements"`
	Salary         job.Salary         `json:"salary"`
	EmploymentType job.EmploymentType `json:"employmentType"`
	Category       string             `json:"category"`
	ContactEmail   string             `json:"contactEmail"`
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), job.Post{
		Title:          req.Title,
		Company:        req.Company,
		Location:       req.Location,
		Description:    req.Description,
		Requirements:   req.Requirements,
		Salary:         req.Salary,
		EmploymentType: req.EmploymentType,
		Category:       req.Category,
		ContactEmail:   req.ContactEmail,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, created)
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	items, err := h.jobs.List(r.Context(), job.Filter{
		Category:       query.Get("category"),
		EmploymentType: job.EmploymentType(query.Get("employmentType")),
		Status:         job.Status(query.Get("status")),
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	var patch job.Patch
	if err := decodeJSON(r, &patch); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.jobs.Update(r.Context(), id, patch)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	removed, err := h.jobs.Delete(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, removed)
}
