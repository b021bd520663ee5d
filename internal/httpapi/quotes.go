package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/grantdozier/dtg-fabrication-automations/internal/export"
	"github.com/grantdozier/dtg-fabrication-automations/internal/model"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	qb, err := s.quotes.Calculate(r.Context(), req.request())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuickDTO(qb))
}

func (s *Server) handleCalculateDetailed(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	d, err := s.quotes.CalculateDetailed(r.Context(), req.request())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDetailedDTO(d))
}

func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	var req createQuoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	view, err := s.quotes.CreateQuote(r.Context(), req.newQuote())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toQuoteDTO(view))
}

func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	filter := model.QuoteFilter{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		id, err := parseID("customer_id", raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		filter.CustomerID = id
	}

	views, err := s.quotes.ListQuotes(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]quoteDTO, 0, len(views))
	for _, v := range views {
		out = append(out, toQuoteDTO(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := s.quotes.GetQuote(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteDTO(view))
}

func (s *Server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	detail, err := s.quotes.GetQuoteDetail(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.Text(detail)))
}

func (s *Server) handleQuoteWorkbook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	detail, err := s.quotes.GetQuoteDetail(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	f, err := export.Workbook(detail)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", detail.Quote.QuoteNumber+".xlsx"))
	if err := f.Write(w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("quote_number", detail.Quote.QuoteNumber).Msg("write workbook")
	}
}
