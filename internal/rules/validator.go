package rules

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/worldloop/worldloop/internal/itinerary"
)

// rule is one catalogue entry. Rules report findings; they never decide
// overall validity on their own.
type rule struct {
	id    string
	check func(*Context) []Result
}

// registry fixes the rule execution and report order. Appending here is the
// only change needed to add a rule.
var registry = []rule{
	{"itinerary_structure", checkStructure},
	{"segment_count", checkSegmentCount},
	{"continent_segment_cap", checkContinentSegmentCap},
	{"continent_count", checkContinentCount},
	{"intercontinental_limit", checkIntercontinentalLimit},
	{"direction_of_travel", checkDirection},
	{"hawaii_alaska", checkHawaiiAlaska},
	{"us_transcontinental", checkUSTranscontinental},
	{"ocean_crossings", checkOceanCrossings},
	{"stopovers", checkMinimumStopovers},
	{"stopovers", checkOriginContinentStopovers},
	{"stopovers", checkOriginCountryStopovers},
	{"stopovers", checkCityStopovers},
	{"return_to_origin", checkReturnToOrigin},
	{"return_to_origin", checkEarlyReturn},
	{"eligible_carriers", checkEligibleCarriers},
	{"first_carrier", checkFirstCarrier},
	{"surface_sectors", checkSurfaceSectors},
	{"repeated_city_pair", checkRepeatedCityPair},
	{"hemisphere_revisit", checkHemisphereRevisit},
}

// Validator runs the full rule catalogue against itineraries. It is
// stateless apart from configuration and safe for concurrent use.
type Validator struct {
	cfg Config
}

// Config controls validator behavior. The zero value is usable.
type Config struct {
	Logger  zerolog.Logger
	Options Options
}

func NewValidator(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate runs every registered rule against the itinerary and returns the
// aggregated report. All rules always run; a violation in one never hides
// findings from another. The only error condition is reference data the
// validator cannot resolve, such as an unknown airport code.
func (v *Validator) Validate(ctx context.Context, it itinerary.Itinerary) (Report, error) {
	rc, err := BuildContext(it, v.cfg.Options)
	if err != nil {
		v.cfg.Logger.Warn().Err(err).Str("origin", it.Ticket.Origin).Msg("validation aborted")
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	// Each rule writes into its own registry slot, so the merged report
	// keeps registry order regardless of scheduling.
	slots := make([][]Result, len(registry))
	var wg sync.WaitGroup
	for i, r := range registry {
		wg.Add(1)
		go func(i int, r rule) {
			defer wg.Done()
			slots[i] = r.check(rc)
		}(i, r)
	}
	wg.Wait()

	report := Report{Valid: true}
	for _, results := range slots {
		for _, res := range results {
			if res.Severity == Violation {
				report.Valid = false
			}
			report.Results = append(report.Results, res)
		}
	}

	v.cfg.Logger.Debug().
		Str("origin", it.Ticket.Origin).
		Int("segments", len(it.Segments)).
		Int("findings", len(report.Results)).
		Bool("valid", report.Valid).
		Msg("itinerary validated")

	return report, nil
}
