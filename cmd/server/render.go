package main

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/Simplici0/dogsclub/internal/report"
	"github.com/Simplici0/dogsclub/web"
)

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
	LoggedIn       bool
}

var templateFuncs = template.FuncMap{
	"money":    report.FormatCurrency,
	"moneyPtr": report.FormatCurrencyPtr,
	"pct":      report.FormatPercent,
	"pctPtr":   report.FormatPercentPtr,
	"minutes":  report.FormatMinutes,
	"markdown": report.HTML,
}

func (s *server) base(r *http.Request) baseViewData {
	return baseViewData{LoggedIn: isAuthenticated(r, s.auth)}
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	templates, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(web.Templates,
		"templates/layout.html",
		"templates/"+page,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("page", page).Msg("failed to parse template")
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.logger.Error().Err(err).Str("page", page).Msg("failed to render template")
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
