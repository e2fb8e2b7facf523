package handler

import (
	"net/http"
	"sort"

	"github.com/worldloop/worldloop/internal/api/models"
	"github.com/worldloop/worldloop/internal/api/response"
	"github.com/worldloop/worldloop/internal/carrier"
	"github.com/worldloop/worldloop/internal/geo"
	"github.com/worldloop/worldloop/internal/search"
)

// MetadataHandler serves the static reference data clients need to build
// requests.
type MetadataHandler struct {
	graph *search.HubGraph
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(graph *search.HubGraph) *MetadataHandler {
	return &MetadataHandler{graph: graph}
}

// GetEnums handles GET /v1/metadata/enums - enum values used by the API.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	enums := models.Enums{
		Continents: []string{
			string(geo.EuropeMiddleEast),
			string(geo.Africa),
			string(geo.Asia),
			string(geo.SouthWestPacific),
			string(geo.NorthAmerica),
			string(geo.SouthAmerica),
		},
		Cabins:     []string{"economy", "business", "first"},
		Directions: []string{string(search.Eastbound), string(search.Westbound)},
		RankBy:     []string{"availability", "cost", "quality"},
		Severities: []string{"violation", "warning"},
	}
	response.JSON(w, r, http.StatusOK, enums)
}

// ListAirports handles GET /v1/metadata/airports - the route network.
func (h *MetadataHandler) ListAirports(w http.ResponseWriter, r *http.Request) {
	var airports []models.AirportInfo
	for _, code := range h.graph.Airports() {
		ap, err := geo.Lookup(code)
		if err != nil {
			continue
		}
		airports = append(airports, models.AirportInfo{
			Code:       ap.Code,
			Country:    ap.Country,
			Continent:  string(ap.Continent),
			Conference: string(ap.Conference),
		})
	}
	response.JSON(w, r, http.StatusOK, airports)
}

// ListCarriers handles GET /v1/metadata/carriers - bookable carriers.
func (h *MetadataHandler) ListCarriers(w http.ResponseWriter, r *http.Request) {
	codes := carrier.Codes()
	sort.Strings(codes)

	var carriers []models.CarrierInfo
	for _, code := range codes {
		c, ok := carrier.Lookup(code)
		if !ok {
			continue
		}
		carriers = append(carriers, models.CarrierInfo{
			Code:      c.Code,
			Name:      c.Name,
			Member:    c.Member,
			Affiliate: c.Affiliate,
			Joined:    models.Timestamp(c.Joined),
		})
	}
	response.JSON(w, r, http.StatusOK, carriers)
}
