package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bnema/xpertdoc-portal-cli/internal/adapters/odata"
	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const sessionCookie = "XpertdocAuth"

type userKey struct{}

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type executeRequest struct {
	ExecutionData string  `json:"executionData"`
	Metadata1     *string `json:"metadata1"`
	Metadata2     *string `json:"metadata2"`
}

type executionInfo struct {
	Success             bool   `json:"Success"`
	TemplateExecutionID string `json:"TemplateExecutionId"`
	FailureReason       string `json:"FailureReason,omitempty"`
}

type updateContentRequest struct {
	Content []byte `json:"content"`
}

func (p *Portal) Handler() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/authentication/login", p.login)
	r.Route("/odata", func(r chi.Router) {
		r.Use(p.authenticate)
		r.Get("/{set}", p.query)
		r.Get("/{entity}/{action}", p.getAction)
		r.Post("/{entity}/{action}", p.postAction)
	})

	return r
}

func (p *Portal) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "malformed login request")
		return
	}

	p.mu.Lock()
	password, ok := p.users[req.UserName]
	if !ok || password != req.Password {
		p.mu.Unlock()
		writeError(w, http.StatusUnauthorized, "Unauthorized", "invalid user name or password")
		return
	}
	token := uuid.NewString()
	p.sessions[token] = req.UserName
	p.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: token, Path: "/", HttpOnly: true})
	w.WriteHeader(http.StatusOK)
}

func (p *Portal) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := ""
		p.mu.Lock()
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			user = p.sessions[cookie.Value]
		} else {
			user = p.ambientUser
		}
		p.mu.Unlock()

		if user == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), userKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (p *Portal) query(w http.ResponseWriter, r *http.Request) {
	set := chi.URLParam(r, "set")

	var filter domain.Filter
	if raw := r.URL.Query().Get("$filter"); raw != "" {
		parsed, err := odata.ParseFilter(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
			return
		}
		filter = parsed
	}

	p.mu.Lock()
	records, ok := p.records(set)
	p.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "NotFound", fmt.Sprintf("entity set %q not found", set))
		return
	}

	matched := make([]domain.Record, 0, len(records))
	for _, record := range records {
		if matches(record, filter) {
			matched = append(matched, record)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"value": matched})
}

func (p *Portal) getAction(w http.ResponseWriter, r *http.Request) {
	set, id, err := parseEntity(chi.URLParam(r, "entity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}

	switch {
	case set == "TemplateExecutions" && chi.URLParam(r, "action") == "Status":
		p.executionStatus(w, r, id)
	case chi.URLParam(r, "action") == "GetContent":
		p.getContent(w, set, id)
	default:
		writeError(w, http.StatusNotFound, "NotFound", "unknown action")
	}
}

func (p *Portal) postAction(w http.ResponseWriter, r *http.Request) {
	set, id, err := parseEntity(chi.URLParam(r, "entity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}

	action := chi.URLParam(r, "action")
	switch {
	case set == domain.EntitySetTemplates && action == "Execute":
		p.execute(w, r, id)
	case set == domain.EntitySetContentLibraryFiles:
		p.mutateFile(w, r, id, domain.MutationKind(action))
	default:
		writeError(w, http.StatusNotFound, "NotFound", "unknown action")
	}
}

func (p *Portal) execute(w http.ResponseWriter, r *http.Request, templateID uuid.UUID) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "malformed execute request")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var tpl *template
	for i := range p.templates {
		if p.templates[i].id == templateID {
			tpl = &p.templates[i]
			break
		}
	}
	if tpl == nil {
		writeError(w, http.StatusNotFound, "NotFound", "template not found")
		return
	}

	p.executeCalls++
	exec := &execution{id: uuid.New(), templateID: tpl.id, remaining: tpl.pendingPolls}
	p.executions[exec.id] = exec
	p.log.WithFields(logrus.Fields{"template": tpl.name, "execution_id": exec.id, "payload_bytes": len(req.ExecutionData)}).Info("fixture template execution")

	if exec.remaining > 0 {
		w.Header().Set("Location", executionLocation(r, exec.id))
		w.WriteHeader(http.StatusAccepted)
		return
	}

	writeJSON(w, http.StatusOK, p.complete(exec, tpl))
}

func (p *Portal) executionStatus(w http.ResponseWriter, r *http.Request, executionID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	exec, ok := p.executions[executionID]
	if !ok {
		writeError(w, http.StatusNotFound, "NotFound", "execution not found")
		return
	}

	if !exec.done {
		exec.remaining--
		if exec.remaining > 0 {
			w.Header().Set("Location", executionLocation(r, exec.id))
			w.WriteHeader(http.StatusAccepted)
			return
		}
	}

	for i := range p.templates {
		if p.templates[i].id == exec.templateID {
			writeJSON(w, http.StatusOK, p.complete(exec, &p.templates[i]))
			return
		}
	}
	writeError(w, http.StatusNotFound, "NotFound", "template not found")
}

// complete must be called with p.mu held.
func (p *Portal) complete(exec *execution, tpl *template) executionInfo {
	if tpl.failureReason != "" {
		exec.done = true
		return executionInfo{Success: false, TemplateExecutionID: exec.id.String(), FailureReason: tpl.failureReason}
	}

	if !exec.done {
		p.results = append(p.results, executionResult{
			id:          uuid.New(),
			executionID: exec.id,
			content:     append([]byte(nil), tpl.content...),
		})
		exec.done = true
	}

	return executionInfo{Success: true, TemplateExecutionID: exec.id.String()}
}

func (p *Portal) getContent(w http.ResponseWriter, set string, id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch set {
	case domain.EntitySetTemplateExecutionResults:
		for _, result := range p.results {
			if result.id == id {
				writeJSON(w, http.StatusOK, map[string]any{"value": result.content})
				return
			}
		}
	case domain.EntitySetContentLibraryFiles:
		for _, file := range p.contentFiles {
			if file.id == id {
				writeJSON(w, http.StatusOK, map[string]any{"value": file.content})
				return
			}
		}
	}

	writeError(w, http.StatusNotFound, "NotFound", fmt.Sprintf("%s(%s) not found", set, id))
}

func (p *Portal) mutateFile(w http.ResponseWriter, r *http.Request, fileID uuid.UUID, kind domain.MutationKind) {
	user, _ := r.Context().Value(userKey{}).(string)

	var update updateContentRequest
	if kind == domain.MutationUpdateContent {
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			writeError(w, http.StatusBadRequest, "BadRequest", "malformed content update")
			return
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var file *contentFile
	for _, candidate := range p.contentFiles {
		if candidate.id == fileID {
			file = candidate
			break
		}
	}
	if file == nil {
		writeError(w, http.StatusNotFound, "NotFound", "file not found")
		return
	}

	switch kind {
	case domain.MutationCheckOut:
		if file.checkedOutBy != "" && file.checkedOutBy != user {
			writeError(w, http.StatusConflict, "Conflict", fmt.Sprintf("file is checked out by %s", file.checkedOutBy))
			return
		}
		file.checkedOutBy = user
	case domain.MutationUpdateContent:
		if file.checkedOutBy != user {
			writeError(w, http.StatusConflict, "Conflict", "file must be checked out by the caller before its content can be updated")
			return
		}
		file.content = update.Content
	case domain.MutationCheckIn:
		if file.checkedOutBy != user {
			writeError(w, http.StatusConflict, "Conflict", "file is not checked out by the caller")
			return
		}
		file.checkedOutBy = ""
	default:
		writeError(w, http.StatusNotFound, "NotFound", "unknown action")
		return
	}

	p.log.WithFields(logrus.Fields{"file": file.name, "action": kind, "user": user}).Info("fixture file mutation")
	w.WriteHeader(http.StatusNoContent)
}

func parseEntity(segment string) (string, uuid.UUID, error) {
	set, rest, ok := strings.Cut(segment, "(")
	if !ok || !strings.HasSuffix(rest, ")") {
		return "", uuid.Nil, fmt.Errorf("malformed entity segment %q", segment)
	}
	id, err := uuid.Parse(strings.TrimSuffix(rest, ")"))
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("malformed entity key in %q: %w", segment, err)
	}
	return set, id, nil
}

func executionLocation(r *http.Request, id uuid.UUID) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/odata/TemplateExecutions(" + id.String() + ")/Status"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{"error": map[string]string{"code": code, "message": message}})
}
