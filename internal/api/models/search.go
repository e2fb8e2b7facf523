package models

import (
	"time"

	"github.com/worldloop/worldloop/internal/itinerary"
	"github.com/worldloop/worldloop/internal/rules"
	"github.com/worldloop/worldloop/internal/search"
)

// SearchRequest is the body of POST /v1/search.
type SearchRequest struct {
	Origin        string   `json:"origin"`
	Continents    int      `json:"continents"`
	Cabin         string   `json:"cabin,omitempty"`
	MustVisit     []string `json:"mustVisit,omitempty"`
	Carriers      []string `json:"carriers,omitempty"`
	MaxCandidates int      `json:"maxCandidates,omitempty"`
	TimeoutMs     int      `json:"timeoutMs,omitempty"`
	TopK          int      `json:"topK,omitempty"`
	RankBy        string   `json:"rankBy,omitempty"`
}

// FieldErrors returns structural problems with the request.
func (req SearchRequest) FieldErrors() []FieldError {
	var errs []FieldError
	if req.Origin == "" {
		errs = append(errs, FieldError{Field: "origin", Message: "required", Code: "REQUIRED"})
	}
	if req.Continents < 3 || req.Continents > 6 {
		errs = append(errs, FieldError{Field: "continents", Message: "must be between 3 and 6", Code: "OUT_OF_RANGE"})
	}
	return errs
}

// Spec converts the request into a search specification.
func (req SearchRequest) Spec() search.Spec {
	return search.Spec{
		Origin:        req.Origin,
		Continents:    req.Continents,
		Cabin:         itinerary.CabinClass(req.Cabin),
		MustVisit:     req.MustVisit,
		Carriers:      req.Carriers,
		MaxCandidates: req.MaxCandidates,
		Timeout:       time.Duration(req.TimeoutMs) * time.Millisecond,
		TopK:          req.TopK,
		RankBy:        req.RankBy,
	}
}

// SearchOption is one ranked itinerary in a search response.
type SearchOption struct {
	Rank         int              `json:"rank"`
	Direction    search.Direction `json:"direction"`
	Score        search.Score     `json:"score"`
	TotalCostUSD float64          `json:"totalCostUsd,omitempty"`
	Segments     []SegmentPayload `json:"segments"`
	Warnings     []rules.Result   `json:"warnings,omitempty"`
}

// SearchResponse is the body of a successful POST /v1/search.
type SearchResponse struct {
	Options   []SearchOption `json:"options"`
	Generated int            `json:"generated"`
	Explored  int            `json:"explored"`
	Partial   bool           `json:"partial"`
}

// NewSearchResponse converts an orchestrator result.
func NewSearchResponse(result search.Result) SearchResponse {
	options := make([]SearchOption, len(result.Options))
	for i, opt := range result.Options {
		segs := make([]SegmentPayload, len(opt.Itinerary.Segments))
		for j, seg := range opt.Itinerary.Segments {
			segs[j] = SegmentPayload{
				From:    seg.From,
				To:      seg.To,
				Carrier: seg.Carrier,
				Surface: !seg.IsFlown(),
			}
		}
		options[i] = SearchOption{
			Rank:         opt.Rank,
			Direction:    opt.Direction,
			Score:        opt.Score,
			TotalCostUSD: opt.Signals.TotalCostUSD,
			Segments:     segs,
			Warnings:     opt.Warnings,
		}
	}
	return SearchResponse{
		Options:   options,
		Generated: result.Generated,
		Explored:  result.Explored,
		Partial:   result.Partial,
	}
}
