package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/diagramkit/pkg/buildinfo"
	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/pipeline"
	"github.com/matzehuels/diagramkit/pkg/render/excalidraw"
)

// maxBodyBytes bounds request bodies. JSON escaping can roughly double the
// size of a source.
const maxBodyBytes = 2*errors.MaxSourceBytes + 4096

// maxBatchJobs bounds the number of jobs in one batch request.
const maxBatchJobs = 100

// translateRequest is the body of POST /v1/translate and one batch job.
// Unset option fields fall back to the server configuration.
type translateRequest struct {
	Name     string `json:"name,omitempty"`
	Source   string `json:"source"`
	Input    string `json:"input"`
	Output   string `json:"output"`
	Kind     string `json:"kind,omitempty"`
	IDs      string `json:"ids,omitempty"`
	GridSize *int   `json:"grid_size,omitempty"`
	Detailed *bool  `json:"detailed,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`
}

type translateResponse struct {
	Name   string             `json:"name,omitempty"`
	Output string             `json:"output"`
	Kind   string             `json:"kind"`
	Cached bool               `json:"cached"`
	Nodes  int                `json:"nodes"`
	Edges  int                `json:"edges"`
	Levels int                `json:"levels"`
	Cyclic bool               `json:"cyclic,omitempty"`
	Report *excalidraw.Report `json:"report,omitempty"`
	Error  *errorBody         `json:"error,omitempty"`
}

type batchRequest struct {
	Jobs []translateRequest `json:"jobs"`
}

type batchResponse struct {
	Results []translateResponse `json:"results"`
}

type validateResponse struct {
	excalidraw.Report
	Load *excalidraw.Load `json:"cognitive_load,omitempty"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.options(req)
	if err != nil {
		writeError(w, err)
		return
	}

	res, hit, err := s.runner.TranslateWithCacheInfo(r.Context(), req.Source, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(req.Name, res, hit))
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.Jobs) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "jobs cannot be empty"))
		return
	}
	if len(req.Jobs) > maxBatchJobs {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "too many jobs (max %d)", maxBatchJobs))
		return
	}

	resp := batchResponse{Results: make([]translateResponse, len(req.Jobs))}
	jobs := make([]pipeline.Job, 0, len(req.Jobs))
	slots := make([]int, 0, len(req.Jobs))
	for i, jr := range req.Jobs {
		opts, err := s.options(jr)
		if err != nil {
			resp.Results[i] = translateResponse{Name: jr.Name, Error: toErrorBody(err)}
			continue
		}
		jobs = append(jobs, pipeline.Job{Name: jr.Name, Source: jr.Source, Options: opts})
		slots = append(slots, i)
	}

	results, err := s.runner.TranslateBatch(r.Context(), jobs, s.cfg.Server.Concurrency)
	if err != nil {
		writeError(w, err)
		return
	}
	for j, br := range results {
		i := slots[j]
		if br.Err != nil {
			resp.Results[i] = translateResponse{Name: br.Name, Error: toErrorBody(br.Err)}
			continue
		}
		resp.Results[i] = toResponse(br.Name, br.Result, br.Result.CacheInfo.Hit)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	resp := validateResponse{Report: excalidraw.Validate(data)}
	if doc, err := excalidraw.Unmarshal(data); err == nil {
		load := excalidraw.CognitiveLoad(doc)
		resp.Load = &load
	}
	if s.metrics != nil {
		s.metrics.OnValidate(r.Context(), resp.Valid, len(resp.Errors))
	}
	writeJSON(w, http.StatusOK, resp)
}

// options merges a request onto the configured defaults and checks the
// source. Format names are case-insensitive. The translation pair is checked
// first so an unsupported pair is reported before the source is looked at.
func (s *Server) options(req translateRequest) (pipeline.Options, error) {
	input, output, err := pipeline.ResolveTranslation(req.Input, req.Output)
	if err != nil {
		return pipeline.Options{}, err
	}
	if err := errors.ValidateSource(req.Source); err != nil {
		return pipeline.Options{}, err
	}

	opts := s.cfg.PipelineOptions(input, output)
	opts.Kind = req.Kind
	opts.Refresh = req.Refresh
	if req.IDs != "" {
		opts.IDs = excalidraw.IDStrategy(req.IDs)
	}
	if req.GridSize != nil {
		opts.GridSize = *req.GridSize
	}
	if req.Detailed != nil {
		opts.Detailed = *req.Detailed
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func toResponse(name string, res *pipeline.Result, hit bool) translateResponse {
	return translateResponse{
		Name:   name,
		Output: string(res.Output),
		Kind:   string(res.Kind),
		Cached: hit,
		Nodes:  res.Stats.NodeCount,
		Edges:  res.Stats.EdgeCount,
		Levels: res.Stats.LevelCount,
		Cyclic: res.Stats.Cyclic,
		Report: res.Report,
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]*errorBody{"error": toErrorBody(err)})
}

func toErrorBody(err error) *errorBody {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return &errorBody{Code: code, Message: errors.UserMessage(err)}
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeUnsupportedTranslation:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidKind, errors.ErrCodeInvalidSource:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
