package analytics

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/emprendia/emprendia-backend/pkg/docstore"
	"github.com/emprendia/emprendia-backend/pkg/docstore/models"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
)

const topListSize = 20

// Input is one analytics fact to record. Query, when set, is sanitized
// before it reaches the document.
type Input struct {
	Type      enums.EventType
	UserID    string
	AnonID    string
	ProductID string
	ProfileID string
	Query     string
}

// Deduper suppresses repeat events within a session, e.g. reloading a
// product page should count one view.
type Deduper interface {
	MarkSeen(sessionID, key string) (bool, error)
}

// TypeCount pairs an identifier with how often it was seen.
type TypeCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// SiteStats is the marketplace-wide analytics summary.
type SiteStats struct {
	TotalEvents int            `json:"total_events"`
	ByType      map[string]int `json:"by_type"`
	TopProducts []TypeCount    `json:"top_products"`
	TopSearches []TypeCount    `json:"top_searches"`
}

// TrendPoint is one day in an activity series.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// OwnerStats summarizes activity on one entrepreneur's catalog. Trend is
// only populated for accounts with stats access.
type OwnerStats struct {
	ProfileViews  int            `json:"profile_views"`
	ProductViews  int            `json:"product_views"`
	ContactClicks int            `json:"contact_clicks"`
	ByProduct     map[string]int `json:"by_product"`
	Trend         []TrendPoint   `json:"trend,omitempty"`
}

// Service records and aggregates marketplace activity.
type Service interface {
	Track(ctx context.Context, in Input) error
	TrackOnce(ctx context.Context, sessionID string, in Input) (bool, error)
	SiteStats(ctx context.Context) (*SiteStats, error)
	EntrepreneurStats(ctx context.Context, userID string) (*OwnerStats, error)
}

type service struct {
	store  docstore.Store
	dedupe Deduper
	cfg    config.AnalyticsConfig
	clock  func() time.Time
}

// NewService builds the analytics service.
func NewService(store docstore.Store, dedupe Deduper, cfg config.AnalyticsConfig) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	if dedupe == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "deduper is required")
	}
	return &service{store: store, dedupe: dedupe, cfg: cfg, clock: time.Now}, nil
}

// Track appends one event, dropping the oldest entries once the collection
// is full.
func (s *service) Track(ctx context.Context, in Input) error {
	event, err := s.buildEvent(in)
	if err != nil {
		return err
	}
	return s.store.Mutate(ctx, func(doc *docstore.Document) error {
		doc.Events = append(doc.Events, event)
		if max := s.maxEvents(); len(doc.Events) > max {
			doc.Events = doc.Events[len(doc.Events)-max:]
		}
		return nil
	})
}

// TrackOnce records the event at most once per session. The dedupe key is
// derived from the event shape, so a second product view from the same
// session is silently skipped.
func (s *service) TrackOnce(ctx context.Context, sessionID string, in Input) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	first, err := s.dedupe.MarkSeen(sessionID, s.dedupeKey(in))
	if err != nil {
		return false, err
	}
	if !first {
		return false, nil
	}
	if err := s.Track(ctx, in); err != nil {
		return false, err
	}
	return true, nil
}

// SiteStats aggregates all recorded events into the admin overview shape.
func (s *service) SiteStats(ctx context.Context) (*SiteStats, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	stats := &SiteStats{
		TotalEvents: len(doc.Events),
		ByType:      map[string]int{},
	}
	productViews := map[string]int{}
	searches := map[string]int{}
	for _, event := range doc.Events {
		stats.ByType[event.Type.String()]++
		switch event.Type {
		case enums.EventTypeViewProduct:
			if event.ProductID != "" {
				productViews[event.ProductID]++
			}
		case enums.EventTypeSearch:
			if q := event.Meta["q"]; q != "" {
				searches[q]++
			}
		}
	}
	stats.TopProducts = topCounts(productViews, topListSize)
	stats.TopSearches = topCounts(searches, topListSize)
	return stats, nil
}

// EntrepreneurStats aggregates activity touching the user's profile and
// products. The daily trend is withheld unless the account has stats
// access.
func (s *service) EntrepreneurStats(ctx context.Context, userID string) (*OwnerStats, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	user := doc.FindUser(userID)
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	profile := doc.FindProfileByOwner(userID)

	ownProducts := map[string]bool{}
	for _, product := range doc.Products {
		if product.OwnerUserID == userID {
			ownProducts[product.ID] = true
		}
	}

	stats := &OwnerStats{ByProduct: map[string]int{}}
	var relevant []models.Event
	for _, event := range doc.Events {
		switch event.Type {
		case enums.EventTypeViewProfile:
			if profile != nil && event.ProfileID == profile.ID {
				stats.ProfileViews++
				relevant = append(relevant, event)
			}
		case enums.EventTypeViewProduct:
			if ownProducts[event.ProductID] {
				stats.ProductViews++
				stats.ByProduct[event.ProductID]++
				relevant = append(relevant, event)
			}
		case enums.EventTypeClickWhatsApp, enums.EventTypeClickInstagram, enums.EventTypeClickCall:
			ownTarget := ownProducts[event.ProductID] || (profile != nil && event.ProfileID == profile.ID)
			if ownTarget {
				stats.ContactClicks++
				relevant = append(relevant, event)
			}
		}
	}

	if user.CanViewStats {
		stats.Trend = s.dailyTrend(relevant)
	}
	return stats, nil
}

func (s *service) buildEvent(in Input) (models.Event, error) {
	if !in.Type.IsValid() {
		return models.Event{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid event type")
	}
	event := models.Event{
		TS:        docstore.NowISO(s.clock()),
		Type:      in.Type,
		UserID:    in.UserID,
		AnonID:    in.AnonID,
		ProductID: in.ProductID,
		ProfileID: in.ProfileID,
	}
	if in.Query != "" {
		event.Meta = map[string]string{"q": SanitizeQuery(in.Query, s.cfg.MaxQueryLength)}
	}
	return event, nil
}

func (s *service) maxEvents() int {
	if s.cfg.MaxEvents <= 0 {
		return 5000
	}
	return s.cfg.MaxEvents
}

// dailyTrend buckets events by day over the trend window, oldest day first.
// Days without activity are included so charts render a continuous series.
func (s *service) dailyTrend(events []models.Event) []TrendPoint {
	days := s.cfg.TrendWindowDays
	if days <= 0 {
		days = 30
	}
	today := s.clock().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(days - 1))

	counts := map[string]int{}
	for _, event := range events {
		if len(event.TS) < 10 {
			continue
		}
		counts[event.TS[:10]]++
	}

	trend := make([]TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		trend = append(trend, TrendPoint{Date: date, Count: counts[date]})
	}
	return trend
}

// dedupeKey derives the per-session suppression key. Searches carry the
// sanitized query so distinct queries from one session all count.
func (s *service) dedupeKey(in Input) string {
	parts := []string{in.Type.String(), in.ProductID, in.ProfileID}
	if in.Type == enums.EventTypeSearch {
		parts = append(parts, SanitizeQuery(in.Query, s.cfg.MaxQueryLength))
	}
	return strings.Join(parts, "|")
}

func topCounts(counts map[string]int, limit int) []TypeCount {
	out := make([]TypeCount, 0, len(counts))
	for key, count := range counts {
		out = append(out, TypeCount{Key: key, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
