package matching

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/A3V1/B2B-RFP/internal/llm"
	"github.com/A3V1/B2B-RFP/internal/prompts"
	"github.com/A3V1/B2B-RFP/internal/schemas"
	"github.com/A3V1/B2B-RFP/internal/types"
)

// ScoreSource tags how a score result was produced.
type ScoreSource string

const (
	// SourceModel marks scores produced by the language model.
	SourceModel ScoreSource = "model"
	// SourceComputed marks scores produced by the deterministic engine.
	SourceComputed ScoreSource = "computed"
)

// Specification field names recorded in ComponentMatch.MatchedSpecs.
const (
	FieldVoltage      = "voltage_kv"
	FieldCrossSection = "cross_section_mm2"
	FieldConductor    = "conductor"
	FieldInsulation   = "insulation"
	FieldCores        = "cores"
	FieldArmour       = "armour"
)

// Scoring weights. They sum to 100; voltage and cross-section carry the
// engineering-critical share.
const (
	voltagePoints      = 25
	crossSectionPoints = 25
	conductorPoints    = 15
	insulationPoints   = 15
	coresPoints        = 10
	armourPoints       = 10
)

// maxMatches bounds the matches kept per requirement.
const maxMatches = 5

// ScoreResult is the outcome of scoring one requirement's candidates.
// Matches is sorted descending by score and truncated to maxMatches;
// CoverageScore is the best match's score or 0.
type ScoreResult struct {
	Matches       []types.ComponentMatch
	CoverageScore float64
	Source        ScoreSource
}

// ScoreCandidates is the deterministic scoring engine. Points accumulate
// only for fields present on both requirement and candidate:
//
//	voltage       +25 when the candidate's rating meets or exceeds the
//	              requirement's (a lower rating is an unsafe match and
//	              never scores)
//	cross-section +25 when numerically equal
//	conductor     +15 on case-insensitive substring match
//	insulation    +15 on case-insensitive substring match
//	cores         +10 when exactly equal
//	armour        +10 on case-insensitive substring match
//
// Fields absent on either side contribute nothing and are omitted from the
// match map. Ties keep the original candidate order.
func ScoreCandidates(req types.Requirement, candidates []types.ComponentCandidate) ScoreResult {
	specs := req.Specifications
	matches := make([]types.ComponentMatch, 0, len(candidates))

	for _, c := range candidates {
		score := 0
		matched := make(map[string]bool)

		if specs.VoltageKV != nil && c.VoltageKV != nil {
			ok := *c.VoltageKV >= *specs.VoltageKV
			matched[FieldVoltage] = ok
			if ok {
				score += voltagePoints
			}
		}
		if specs.CrossSectionMM2 != nil && c.CrossSectionMM2 != nil {
			ok := *c.CrossSectionMM2 == *specs.CrossSectionMM2
			matched[FieldCrossSection] = ok
			if ok {
				score += crossSectionPoints
			}
		}
		if specs.Conductor != nil && c.Conductor != nil {
			ok := containsFold(*c.Conductor, *specs.Conductor)
			matched[FieldConductor] = ok
			if ok {
				score += conductorPoints
			}
		}
		if specs.Insulation != nil && c.Insulation != nil {
			ok := containsFold(*c.Insulation, *specs.Insulation)
			matched[FieldInsulation] = ok
			if ok {
				score += insulationPoints
			}
		}
		if specs.Cores != nil && c.Cores != nil {
			ok := *c.Cores == *specs.Cores
			matched[FieldCores] = ok
			if ok {
				score += coresPoints
			}
		}
		if specs.Armour != nil && c.Armour != nil {
			ok := containsFold(*c.Armour, *specs.Armour)
			matched[FieldArmour] = ok
			if ok {
				score += armourPoints
			}
		}

		matches = append(matches, componentMatch(c, float64(score), matched, ""))
	}

	return finalize(matches, SourceComputed)
}

// Engine scores candidates, preferring the language model and falling back
// to ScoreCandidates. A nil client always computes.
type Engine struct {
	client llm.Client
}

// NewEngine creates a scoring engine.
func NewEngine(client llm.Client) *Engine {
	return &Engine{client: client}
}

// Score scores the candidates for one requirement. A model failure falls
// through to the deterministic engine immediately (no retry); the returned
// error reports the model failure for logging while the result is always
// usable.
func (e *Engine) Score(ctx context.Context, req types.Requirement, candidates []types.ComponentCandidate) (ScoreResult, error) {
	if len(candidates) == 0 {
		return ScoreResult{Source: SourceComputed}, nil
	}
	if e.client == nil {
		return ScoreCandidates(req, candidates), nil
	}

	result, err := e.scoreWithModel(ctx, req, candidates)
	if err != nil {
		return ScoreCandidates(req, candidates), err
	}
	return result, nil
}

// scoreResponse mirrors the JSON shape expected from the model.
type scoreResponse struct {
	ScoredMatches []struct {
		ComponentID  int64           `json:"component_id"`
		Score        float64         `json:"score"`
		MatchedSpecs map[string]bool `json:"matched_specs"`
		Notes        string          `json:"notes"`
	} `json:"scored_matches"`
	BestMatchID   *int64   `json:"best_match_id"`
	CoverageScore *float64 `json:"coverage_score"`
}

func (e *Engine) scoreWithModel(ctx context.Context, req types.Requirement, candidates []types.ComponentCandidate) (ScoreResult, error) {
	reqJSON, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return ScoreResult{}, err
	}
	candJSON, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return ScoreResult{}, err
	}

	template := prompts.MustGet("analysis.json", "score-matches")
	prompt := prompts.Format(template, map[string]string{
		"Requirement": string(reqJSON),
		"Candidates":  string(candJSON),
	})

	responseText, err := e.client.Generate(ctx, llm.TierStandard, prompt)
	if err != nil {
		return ScoreResult{}, err
	}

	raw := []byte(llm.CleanJSONBlock(responseText))
	if err := schemas.Validate(schemas.Score, raw); err != nil {
		return ScoreResult{}, err
	}

	var parsed scoreResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ScoreResult{}, err
	}

	byID := make(map[int64]types.ComponentCandidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	matches := make([]types.ComponentMatch, 0, len(parsed.ScoredMatches))
	for _, sm := range parsed.ScoredMatches {
		c, ok := byID[sm.ComponentID]
		if !ok {
			// The model referenced a component it was not given.
			continue
		}
		matches = append(matches, componentMatch(c, clampScore(sm.Score), sm.MatchedSpecs, sm.Notes))
	}

	return finalize(matches, SourceModel), nil
}

// finalize sorts descending by score (stable, ties keep candidate order),
// truncates to maxMatches and derives the coverage score.
func finalize(matches []types.ComponentMatch, source ScoreSource) ScoreResult {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	coverage := 0.0
	if len(matches) > 0 {
		coverage = matches[0].Score
	}
	return ScoreResult{Matches: matches, CoverageScore: coverage, Source: source}
}

func componentMatch(c types.ComponentCandidate, score float64, matched map[string]bool, notes string) types.ComponentMatch {
	if matched == nil {
		matched = map[string]bool{}
	}
	return types.ComponentMatch{
		ComponentID:   c.ID,
		SKU:           c.SKU,
		Name:          c.Name,
		Category:      c.Category,
		Score:         score,
		MatchedSpecs:  matched,
		Notes:         notes,
		PricePerMeter: c.PricePerMeter,
		InStock:       c.InStock,
		LeadTimeDays:  c.LeadTimeDays,
	}
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func containsFold(have, want string) bool {
	return strings.Contains(strings.ToLower(have), strings.ToLower(want))
}
