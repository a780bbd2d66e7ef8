package restserver

import (
	"bytes"
	htmltemplate "html/template"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/chrissnell/bikeshare/internal/chart"
	"github.com/chrissnell/bikeshare/internal/constants"
	"github.com/chrissnell/bikeshare/internal/dashboard"
	"github.com/chrissnell/bikeshare/internal/filter"
	"github.com/chrissnell/bikeshare/internal/log"
	"github.com/chrissnell/bikeshare/pkg/responseformat"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// selection parses the filter parameters of a request. format is a
// response option, not a filter, and is ignored here.
func selection(req *http.Request) (filter.Selection, error) {
	return filter.ParseQuery(req.URL.Query())
}

// GetDashboard returns the full dashboard view for the requested selection
func (h *Handlers) GetDashboard(w http.ResponseWriter, req *http.Request) {
	sel, err := selection(req)
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return
	}

	view := h.controller.Dashboard.Build(sel)
	err = h.formatter.WriteResponse(w, req, view, map[string]string{
		CycleHeader:     view.Cycle,
		"Cache-Control": "no-store",
	})
	if err != nil {
		log.Errorf("error writing dashboard response: %v", err)
	}
}

// GetOptions returns the selector options and date bounds
func (h *Handlers) GetOptions(w http.ResponseWriter, req *http.Request) {
	if err := h.formatter.WriteResponse(w, req, h.controller.Dashboard.Options(), nil); err != nil {
		log.Errorf("error writing options response: %v", err)
	}
}

// GetChart renders one panel's chart as PNG or SVG
func (h *Handlers) GetChart(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	id, ok := dashboard.ParsePanelID(vars["panel"])
	if !ok {
		http.NotFound(w, req)
		return
	}
	format, err := chart.ParseFormat(vars["format"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	sel, err := selection(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := h.controller.Dashboard.Build(sel)
	panel, ok := view.Panel(id)
	if !ok {
		http.NotFound(w, req)
		return
	}

	var buf bytes.Buffer
	if err := h.controller.Renderer.Render(&buf, panel.Chart, format); err != nil {
		log.Errorf("error rendering %s chart: %v", id, err)
		http.Error(w, "chart rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(CycleHeader, view.Cycle)
	w.Write(buf.Bytes())
}

// GetHealth reports that the server is up and how many records it serves
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	health := struct {
		Status  string `json:"status"`
		Records int    `json:"records"`
		Version string `json:"version"`
	}{
		Status:  "ok",
		Records: h.controller.Dashboard.Dataset().Len(),
		Version: constants.Version,
	}
	if err := h.formatter.WriteResponse(w, req, health, nil); err != nil {
		log.Errorf("error writing health response: %v", err)
	}
}

type panelView struct {
	dashboard.Panel
	ChartURL string
}

// ServeIndexTemplate serves the dashboard page
func (h *Handlers) ServeIndexTemplate(w http.ResponseWriter, req *http.Request) {
	sel, err := selection(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := htmltemplate.New("index.html.tmpl").ParseFS(h.controller.FS, "index.html.tmpl")
	if err != nil {
		log.Errorf("error parsing index template: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	dash := h.controller.Dashboard.Build(sel)
	panels := make([]panelView, len(dash.Panels))
	for i, p := range dash.Panels {
		panels[i] = panelView{Panel: p, ChartURL: chartURL(p.ID, dash.Query)}
	}

	templateData := struct {
		View    *dashboard.View
		Panels  []panelView
		Options dashboard.Options
		Version string
	}{
		View:    dash,
		Panels:  panels,
		Options: h.controller.Dashboard.Options(),
		Version: constants.Version,
	}

	var buf bytes.Buffer
	if err := view.Execute(&buf, templateData); err != nil {
		log.Errorf("error executing index template: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(CycleHeader, dash.Cycle)
	w.Write(buf.Bytes())
}

func chartURL(id dashboard.PanelID, query string) string {
	u := url.URL{Path: "/chart/" + string(id) + ".svg", RawQuery: query}
	return u.String()
}
