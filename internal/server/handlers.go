package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resuexpress/internal/export"
	"github.com/jonathan/resuexpress/internal/types"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

type valueRequest struct {
	Value *string `json:"value" validate:"required"`
}

type advanceRequest struct {
	Direction int `json:"direction" validate:"required,oneof=-1 1"`
}

type selectTemplateRequest struct {
	Key string `json:"key" validate:"required"`
}

type recordsResponse struct {
	Section types.Section  `json:"section"`
	Index   *int           `json:"index,omitempty"`
	Records []types.Record `json:"records"`
}

type templateResponse struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// decodeBody reads a JSON body into v and runs its validation tags.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return &RequestError{Field: "body", Message: err.Error()}
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &RequestError{Field: verrs[0].Field(), Message: fmt.Sprintf("failed '%s' check", verrs[0].Tag())}
		}
		return &RequestError{Field: "body", Message: err.Error()}
	}
	return nil
}

func sectionParam(r *http.Request) (types.Section, error) {
	section := types.Section(chi.URLParam(r, "section"))
	if !section.Valid() {
		return "", &RequestError{Field: "section", Message: fmt.Sprintf("unknown section %q", section)}
	}
	return section, nil
}

func indexParam(r *http.Request) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, &RequestError{Field: "index", Message: "must be an integer"}
	}
	return index, nil
}

func (s *Server) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.session.SetField(chi.URLParam(r, "field"), *req.Value); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	section, err := sectionParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	index, err := s.session.AddRecord(section)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, recordsResponse{
		Section: section,
		Index:   &index,
		Records: s.session.Snapshot().Records(section),
	})
}

func (s *Server) handleRemoveRecord(w http.ResponseWriter, r *http.Request) {
	section, err := sectionParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	index, err := indexParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.session.RemoveRecord(section, index); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, recordsResponse{
		Section: section,
		Records: s.session.Snapshot().Records(section),
	})
}

func (s *Server) handleUpdateRecordField(w http.ResponseWriter, r *http.Request) {
	section, err := sectionParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	index, err := indexParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req valueRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.session.UpdateRecordField(section, index, chi.URLParam(r, "field"), *req.Value); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetStep(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.session.StepView())
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.session.Advance(req.Direction)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	selected := s.session.SelectedTemplate().Key
	templates := s.session.Templates()
	out := make([]templateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, templateResponse{Key: t.Key, Name: t.DisplayName, Selected: t.Key == selected})
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleSelectTemplate(w http.ResponseWriter, r *http.Request) {
	var req selectTemplateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.session.SelectTemplate(req.Key); err != nil {
		s.writeError(w, r, err)
		return
	}
	t := s.session.SelectedTemplate()
	s.jsonResponse(w, http.StatusOK, templateResponse{Key: t.Key, Name: t.DisplayName, Selected: true})
}

func (s *Server) handlePreview(w http.ResponseWriter, _ *http.Request) {
	p := s.session.Preview()
	w.Header().Set("Content-Type", export.ContentTypeHTML)
	w.Header().Set("X-Template", p.TemplateKey)
	_, _ = io.WriteString(w, p.HTML)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	art, err := s.session.Export()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	attachment(w, art.ContentType, art.Filename)
	_, _ = w.Write(art.Body)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	art, pdf, err := s.session.ExportPDF(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	attachment(w, export.ContentTypePDF, art.FilenameFor("pdf"))
	_, _ = w.Write(pdf)
}

// handleEvents streams session events. The current step and preview are sent first
// so a fresh client needs no separate fetch.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ch := s.broker.Subscribe()
	defer s.broker.Unsubscribe(ch)

	sw, err := NewSSEWriter(w)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p := s.session.Preview()
	if err := sw.WriteEvent(EventStep, s.session.StepView()); err != nil {
		return
	}
	if err := sw.WriteEvent(EventPreview, previewEvent{Template: p.TemplateKey, HTML: p.HTML}); err != nil {
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-ch:
			if !ok {
				return
			}
			if err := sw.WriteFrame(frame); err != nil {
				return
			}
		}
	}
}

func attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
