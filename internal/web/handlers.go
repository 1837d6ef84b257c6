package web

import (
	"bytes"
	_ "embed"
	stderrors "errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/dbmrq/districtboard/internal/board"
	"github.com/dbmrq/districtboard/internal/chart"
	"github.com/dbmrq/districtboard/internal/dataset"
	"github.com/dbmrq/districtboard/internal/district"
	"github.com/dbmrq/districtboard/internal/errors"
	"github.com/dbmrq/districtboard/internal/logging"
	"github.com/dbmrq/districtboard/internal/report"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// errNoTable is returned before any dataset is available.
var errNoTable = errors.WithSuggestion(errors.ErrNotFound,
	"no dataset loaded", "Upload a CSV or XLSX file")

// selectionFrom reads the controls from the query string. A parameter
// that is present but empty clears the control; a missing one keeps the
// server default.
func (s *Server) selectionFrom(q url.Values) board.Selection {
	sel := board.Selection{
		Regions:    slices.Clone(s.defaults.Regions),
		Winners:    slices.Clone(s.defaults.Winners),
		SortMetric: s.defaults.SortMetric,
		PickCount:  s.defaults.PickCount,
	}
	if v, ok := q["region"]; ok {
		sel.Regions = nonEmpty(v)
	}
	if v, ok := q["winner"]; ok {
		sel.Winners = nonEmpty(v)
	}
	if v := q.Get("sort"); v != "" {
		sel.SortMetric = v
	}
	if v, ok := q["pick"]; ok {
		sel.Picks = nonEmpty(v)
	}
	return sel
}

func nonEmpty(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// query encodes sel so chart URLs reproduce the page's view.
func query(sel board.Selection, picks []string) string {
	q := url.Values{}
	q["region"] = append([]string{""}, sel.Regions...)
	q["winner"] = append([]string{""}, sel.Winners...)
	q.Set("sort", sel.SortMetric)
	q["pick"] = append([]string{""}, picks...)
	return q.Encode()
}

// buildView runs the pipeline for the request.
func (s *Server) buildView(r *http.Request) (*board.View, error) {
	t := s.Table()
	if t == nil {
		return nil, errNoTable
	}
	return board.Build(t, s.selectionFrom(r.URL.Query()))
}

// option is a form control choice.
type option struct {
	Value   string
	Label   string
	Checked bool
}

func options(values, selected []string) []option {
	out := make([]option, len(values))
	for i, v := range values {
		out[i] = option{Value: v, Label: v, Checked: slices.Contains(selected, v)}
	}
	return out
}

type trendChart struct {
	District string
	URL      string
}

// pageData feeds the index template.
type pageData struct {
	Title     string
	Error     string
	Source    string
	View      *board.View
	Rows      [][]string
	Headers   []string
	Regions   []option
	Winners   []option
	Sorts     []option
	Picks     []option
	Encodings []string
	MaxUpload string
	Query     template.URL
	Trends    []trendChart

	SectionEnvironment string
	SectionPolitics    string
	CaptionScatter     string
	CaptionTable       string
	CaptionTrend       string
	CaptionTip         string
}

func (s *Server) page(v *board.View, errMsg string) pageData {
	p := pageData{
		Title:              report.Title,
		Error:              errMsg,
		Headers:            district.TableColumns,
		Encodings:          dataset.Encodings,
		MaxUpload:          fmt.Sprintf("%d MB", s.maxUpload>>20),
		SectionEnvironment: report.SectionEnvironment,
		SectionPolitics:    report.SectionPolitics,
		CaptionScatter:     report.CaptionScatter,
		CaptionTable:       report.CaptionTable,
		CaptionTrend:       report.CaptionTrend,
		CaptionTip:         report.CaptionTip,
	}
	if t := s.Table(); t != nil {
		p.Source = t.Source()
		p.Regions = options(board.RegionOptions(t), nil)
	}
	if v == nil {
		return p
	}

	p.View = v
	p.Regions = options(board.RegionOptions(s.Table()), v.Selection.Regions)
	p.Winners = options(district.WinnerCategories, v.Selection.Winners)
	p.Sorts = options(district.SortMetrics, []string{v.Selection.SortMetric})
	p.Picks = options(v.PickOptions, v.Picks)
	p.Query = template.URL(query(v.Selection, v.Picks))
	for _, r := range v.Rows {
		p.Rows = append(p.Rows, r.Cells())
	}
	for i, name := range board.TrendDistricts(v.Trend) {
		p.Trends = append(p.Trends, trendChart{
			District: name,
			URL:      fmt.Sprintf("/charts/trend/%d.svg?%s", i, p.Query),
		})
	}
	return p
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		logging.Error("failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	v, err := s.buildView(r)
	if err != nil {
		s.renderPage(w, statusFor(err), s.page(nil, err.Error()))
		return
	}
	s.renderPage(w, http.StatusOK, s.page(v, ""))
}

// UploadResponse is the JSON answer to a successful upload.
type UploadResponse struct {
	Source string `json:"source"`
	Rows   int    `json:"rows"`
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	fail := func(err error, status int) {
		logging.Warn("upload rejected", "error", err, "status", status)
		if wantsJSON(r) {
			jsonResponse(w, status, ErrorResponse{Error: http.StatusText(status), Message: err.Error()})
			return
		}
		s.renderPage(w, status, s.page(nil, err.Error()))
	}

	if r.ContentLength > s.maxUpload {
		fail(fmt.Errorf("file is larger than %d MB", s.maxUpload>>20), http.StatusRequestEntityTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			fail(fmt.Errorf("file is larger than %d MB", s.maxUpload>>20), http.StatusRequestEntityTooLarge)
			return
		}
		fail(err, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		fail(fmt.Errorf("missing file field: %w", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		fail(err, http.StatusBadRequest)
		return
	}

	t, err := s.cache.Load(data, dataset.Options{
		Source:   path.Base(header.Filename),
		Encoding: r.FormValue("encoding"),
		Sheet:    r.FormValue("sheet"),
	})
	if err != nil {
		fail(err, statusFor(err))
		return
	}

	s.setUploaded(t)
	logging.Info("dataset uploaded", "source", t.Source(), "rows", t.Len(), "session_id", s.sessionID)

	if wantsJSON(r) {
		jsonResponse(w, http.StatusOK, UploadResponse{Source: t.Source(), Rows: t.Len()})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v, err := s.buildView(r)
	if err != nil {
		errorResponse(w, err)
		return
	}

	var buf bytes.Buffer
	rep := report.New(&report.Config{
		OutputFormat: report.OutputFormatJSON,
		Writer:       &buf,
		SessionID:    s.sessionID,
	})
	if err := rep.Write(v); err != nil {
		errorResponse(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}

// splitChartFile splits "scatter.svg" into its name and format.
func splitChartFile(file string) (string, chart.Format, error) {
	ext := path.Ext(file)
	format, err := chart.ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil || ext == "" {
		return "", "", errors.New(errors.ErrNotFound, fmt.Sprintf("unknown chart %q", file))
	}
	return strings.TrimSuffix(file, ext), format, nil
}

func writeChart(w http.ResponseWriter, format chart.Format, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		if stderrors.Is(err, chart.ErrNoData) {
			jsonResponse(w, http.StatusNotFound, ErrorResponse{
				Error:   http.StatusText(http.StatusNotFound),
				Message: err.Error(),
			})
			return
		}
		errorResponse(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name, format, err := splitChartFile(r.PathValue("file"))
	if err != nil {
		errorResponse(w, err)
		return
	}

	v, err := s.buildView(r)
	if err != nil {
		errorResponse(w, err)
		return
	}

	switch name {
	case chart.NameDemographics:
		writeChart(w, format, func(out io.Writer) error {
			return chart.Demographics(out, v.Demographics, format)
		})
	case chart.NameScatter:
		writeChart(w, format, func(out io.Writer) error {
			return chart.Scatter(out, v.Scatter, format)
		})
	default:
		errorResponse(w, errors.New(errors.ErrNotFound, fmt.Sprintf("unknown chart %q", name)))
	}
}

func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	name, format, err := splitChartFile(r.PathValue("file"))
	if err != nil {
		errorResponse(w, err)
		return
	}
	n, err := strconv.Atoi(name)
	if err != nil {
		errorResponse(w, errors.New(errors.ErrNotFound, fmt.Sprintf("unknown trend chart %q", name)))
		return
	}

	v, err := s.buildView(r)
	if err != nil {
		errorResponse(w, err)
		return
	}

	districts := board.TrendDistricts(v.Trend)
	if n < 0 || n >= len(districts) {
		errorResponse(w, errors.New(errors.ErrNotFound, fmt.Sprintf("no trend chart %d (%d districts picked)", n, len(districts))))
		return
	}
	writeChart(w, format, func(out io.Writer) error {
		return chart.Trend(out, v.Trend, districts[n], format)
	})
}
