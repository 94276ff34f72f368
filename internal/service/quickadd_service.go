package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/grocer-next/internal/config"
	"github.com/grocer-next/internal/constants"
	"github.com/grocer-next/internal/logger"
	"github.com/grocer-next/internal/models"
	"github.com/grocer-next/internal/repository"
)

// QuickAddLine is one free-text row from the quick-add form.
type QuickAddLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Brand    string `json:"brand,omitempty"`
}

// MatcherCandidate is a catalog product offered to the matcher.
type MatcherCandidate struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
}

// MatcherQuery is one line of the batched matcher request.
type MatcherQuery struct {
	Name       string             `json:"name"`
	Brand      string             `json:"brand,omitempty"`
	Candidates []MatcherCandidate `json:"candidates"`
}

// MatcherVerdict is the matcher's ranking for one query line.
type MatcherVerdict struct {
	Status    string `json:"status"` // matched / suggested / not_found
	RankedIDs []uint `json:"ranked_ids"`
}

// Matcher ranks catalog candidates against free-text item lines, one
// verdict per query. The real matching lives in an external service;
// this package only carries its verdicts.
type Matcher interface {
	Match(ctx context.Context, queries []MatcherQuery) ([]MatcherVerdict, error)
}

// HTTPMatcher calls the configured matcher endpoint.
type HTTPMatcher struct {
	endpoint string
	client   *http.Client
}

// NewHTTPMatcher creates a matcher client; nil when no endpoint is set.
func NewHTTPMatcher(cfg config.MatcherConfig) *HTTPMatcher {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil
	}
	timeout := cfg.TimeoutMS
	if timeout <= 0 {
		timeout = 3000
	}
	return &HTTPMatcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: time.Duration(timeout) * time.Millisecond},
	}
}

type matcherRequest struct {
	Items []MatcherQuery `json:"items"`
}

type matcherResponse struct {
	Results []MatcherVerdict `json:"results"`
}

// Match posts every query in one request and decodes the per-line
// verdicts.
func (m *HTTPMatcher) Match(ctx context.Context, queries []MatcherQuery) ([]MatcherVerdict, error) {
	body, err := json.Marshal(matcherRequest{Items: queries})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMatcherUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrMatcherUnavailable, resp.StatusCode)
	}

	var decoded matcherResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMatcherUnavailable, err)
	}
	if len(decoded.Results) != len(queries) {
		return nil, fmt.Errorf("%w: %d verdicts for %d queries", ErrMatcherUnavailable, len(decoded.Results), len(queries))
	}
	return decoded.Results, nil
}

// QuickAddLineResult is the outcome for one input line.
type QuickAddLineResult struct {
	Name       string           `json:"name"`
	Quantity   int              `json:"quantity"`
	Brand      string           `json:"brand,omitempty"`
	Status     string           `json:"status"` // matched / suggested / not_found
	Candidates []models.Product `json:"candidates"`
}

// QuickAddResult is the outcome of a match-and-add batch.
type QuickAddResult struct {
	Results []QuickAddLineResult `json:"results"`
	Cart    *CartView            `json:"cart,omitempty"`
}

// QuickAddService resolves batches of free-text item lines against the
// catalog and drops the winners straight into the cart.
type QuickAddService struct {
	productRepo repository.ProductRepository
	cartService *CartService
	matcher     Matcher
}

// NewQuickAddService creates a quick-add service. matcher may be nil;
// a local exact-name fallback then decides matched vs suggested.
func NewQuickAddService(productRepo repository.ProductRepository, cartService *CartService, matcher Matcher) *QuickAddService {
	return &QuickAddService{
		productRepo: productRepo,
		cartService: cartService,
		matcher:     matcher,
	}
}

const quickAddCandidateLimit = 5

// Match resolves each line to catalog candidates. Lines with a blank
// name are skipped; an all-blank batch is rejected. All lines that
// found candidates go to the matcher in a single call.
func (s *QuickAddService) Match(ctx context.Context, lines []QuickAddLine) ([]QuickAddLineResult, error) {
	results := make([]QuickAddLineResult, 0, len(lines))
	for _, line := range lines {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			continue
		}
		result := QuickAddLineResult{
			Name:       name,
			Quantity:   line.Quantity,
			Brand:      strings.TrimSpace(line.Brand),
			Candidates: []models.Product{},
		}
		products, err := s.productRepo.SearchByName(name, quickAddCandidateLimit)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			result.Status = constants.MatchStatusNotFound
		} else {
			result.Candidates = rankByBrand(products, result.Brand)
		}
		results = append(results, result)
	}
	if len(results) == 0 {
		return nil, ErrInvalidInput
	}

	pending := make([]int, 0, len(results))
	for i := range results {
		if len(results[i].Candidates) > 0 {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return results, nil
	}

	if s.matcher != nil {
		queries := make([]MatcherQuery, 0, len(pending))
		for _, i := range pending {
			candidates := make([]MatcherCandidate, 0, len(results[i].Candidates))
			for _, p := range results[i].Candidates {
				candidates = append(candidates, MatcherCandidate{ProductID: p.ID, Name: p.Name})
			}
			queries = append(queries, MatcherQuery{
				Name:       results[i].Name,
				Brand:      results[i].Brand,
				Candidates: candidates,
			})
		}
		verdicts, err := s.matcher.Match(ctx, queries)
		if err == nil {
			for qi, i := range pending {
				applyVerdict(&results[i], verdicts[qi])
			}
			return results, nil
		}
		logger.Warnw("matcher_call_failed", "lines", len(queries), "error", err)
	}

	for _, i := range pending {
		applyLocalVerdict(&results[i])
	}
	return results, nil
}

// Add resolves each line and adds the top candidate of every line that
// matched anything to the user's cart. not_found lines never touch the
// cart; their verdicts are still returned.
func (s *QuickAddService) Add(ctx context.Context, userID uint, lines []QuickAddLine) (*QuickAddResult, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	for _, line := range lines {
		if strings.TrimSpace(line.Name) != "" && line.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
	}
	results, err := s.Match(ctx, lines)
	if err != nil {
		return nil, err
	}

	out := &QuickAddResult{Results: results}
	for i := range results {
		if results[i].Status == constants.MatchStatusNotFound || len(results[i].Candidates) == 0 {
			continue
		}
		view, err := s.cartService.AddItem(ctx, userID, results[i].Candidates[0].ID, nil, results[i].Quantity)
		if err != nil {
			return nil, err
		}
		out.Cart = view
	}
	return out, nil
}

// rankByBrand floats candidates whose name carries the brand text to
// the front, keeping catalog order within each group.
func rankByBrand(products []models.Product, brand string) []models.Product {
	if brand == "" {
		return products
	}
	needle := strings.ToLower(brand)
	branded := make([]models.Product, 0, len(products))
	rest := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			branded = append(branded, p)
		} else {
			rest = append(rest, p)
		}
	}
	return append(branded, rest...)
}

// applyVerdict reorders a line's candidates per the matcher's ranking.
// Unknown ids are ignored; unranked candidates keep their order at the
// tail.
func applyVerdict(result *QuickAddLineResult, verdict MatcherVerdict) {
	status := strings.ToLower(strings.TrimSpace(verdict.Status))
	switch status {
	case constants.MatchStatusMatched, constants.MatchStatusSuggested, constants.MatchStatusNotFound:
	default:
		status = constants.MatchStatusSuggested
	}
	result.Status = status
	if status == constants.MatchStatusNotFound {
		result.Candidates = []models.Product{}
		return
	}

	byID := make(map[uint]models.Product, len(result.Candidates))
	for _, p := range result.Candidates {
		byID[p.ID] = p
	}
	ranked := make([]models.Product, 0, len(result.Candidates))
	seen := make(map[uint]bool, len(result.Candidates))
	for _, id := range verdict.RankedIDs {
		if p, ok := byID[id]; ok && !seen[id] {
			ranked = append(ranked, p)
			seen[id] = true
		}
	}
	for _, p := range result.Candidates {
		if !seen[p.ID] {
			ranked = append(ranked, p)
		}
	}
	result.Candidates = ranked
}

// applyLocalVerdict is the ranking used when no matcher answers: an
// exact name match wins, anything else is a suggestion.
func applyLocalVerdict(result *QuickAddLineResult) {
	for i := range result.Candidates {
		if strings.EqualFold(result.Candidates[i].Name, result.Name) {
			reordered := append([]models.Product{result.Candidates[i]}, append(append([]models.Product{}, result.Candidates[:i]...), result.Candidates[i+1:]...)...)
			result.Status = constants.MatchStatusMatched
			result.Candidates = reordered
			return
		}
	}
	result.Status = constants.MatchStatusSuggested
}
