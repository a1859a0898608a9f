package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "resourced/internal/platform/httpserver/docs"
	"resourced/resource"
	domainerrors "resourced/resource/domain/errors"
	httptransport "resourced/resource/transport/http"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	resource resource.Module
}

func New(resourceModule resource.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		resource: resourceModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /v1/resources", s.handleListResources)
	s.mux.HandleFunc("POST /v1/resources", s.handleCreateResource)
	s.mux.HandleFunc("GET /v1/resources/{id}", s.handleGetResource)
	s.mux.HandleFunc("DELETE /v1/resources/{id}", s.handleDeleteResource)
	s.mux.HandleFunc("GET /v1/resources/code/{code}", s.handleGetResourceByCode)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

// handleListResources godoc
//
//	@Summary	List resources
//	@Param		active	query	bool	false	"filter by active flag"
//	@Success	200		{object}	http.ListResourcesResponse
//	@Router		/v1/resources [get]
func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	var active *bool
	if raw := r.URL.Query().Get("active"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_active", "active must be a boolean")
			return
		}
		active = &value
	}

	resp, err := s.resource.Handler.ListResourcesHandler(r.Context(), active)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetResource godoc
//
//	@Summary	Get a resource by id
//	@Param		id	path	string	true	"resource id"
//	@Success	200	{object}	http.ResourceResponse
//	@Failure	404	{object}	http.ErrorResponse
//	@Router		/v1/resources/{id} [get]
func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	resp, err := s.resource.Handler.GetResourceHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetResourceByCode godoc
//
//	@Summary	Get a resource by code
//	@Param		code	path	string	true	"resource code"
//	@Success	200		{object}	http.ResourceResponse
//	@Failure	404		{object}	http.ErrorResponse
//	@Router		/v1/resources/code/{code} [get]
func (s *Server) handleGetResourceByCode(w http.ResponseWriter, r *http.Request) {
	resp, err := s.resource.Handler.GetResourceByCodeHandler(r.Context(), r.PathValue("code"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCreateResource godoc
//
//	@Summary	Create a resource
//	@Param		request	body	http.CreateResourceRequest	true	"resource to create"
//	@Success	201	{object}	http.ResourceResponse
//	@Failure	409	{object}	http.ErrorResponse
//	@Router		/v1/resources [post]
func (s *Server) handleCreateResource(w http.ResponseWriter, r *http.Request) {
	var req httptransport.CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	resp, err := s.resource.Handler.CreateResourceHandler(r.Context(), req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleDeleteResource godoc
//
//	@Summary	Delete a resource
//	@Param		id	path	string	true	"resource id"
//	@Success	204
//	@Failure	404	{object}	http.ErrorResponse
//	@Router		/v1/resources/{id} [delete]
func (s *Server) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	if err := s.resource.Handler.DeleteResourceHandler(r.Context(), r.PathValue("id")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, domainerrors.ErrResourceNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domainerrors.ErrCodeConflict):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	default:
		s.logger.Error("unhandled domain error",
			"event", "http_internal_error",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, httptransport.ErrorResponse{Code: code, Message: message})
}
