package engine

import (
	"slices"

	"progression-engine/pkg/domain"
)

// Matches reports whether a definition's trigger matches an incoming event.
//
// Matching rules, in order:
//  1. Definition must be active.
//  2. Trigger type must equal the event type. Quests match when any of their
//     steps tracks the event type.
//  3. Vertical scope and filter predicates are evaluated only for
//     game-dependent trigger types; account-level triggers ignore both.
//
// Definitions are evaluated independently; a single event may match many
// definitions, and the engine advances each of them in one call.
func Matches(def *domain.Definition, event *domain.Event) bool {
	if !def.IsActive() {
		return false
	}

	if def.Kind == domain.KindQuest {
		if !questTracksType(def, event.Type) {
			return false
		}
	} else if def.Trigger.Type != event.Type {
		return false
	}

	if !event.Type.IsGameDependent() {
		return true
	}

	if !verticalMatches(def.Vertical, event.Vertical) {
		return false
	}

	return filtersMatch(def.Filters, event)
}

func questTracksType(def *domain.Definition, t domain.TriggerType) bool {
	for _, step := range def.Steps {
		if step.Trigger.Type == t {
			return true
		}
	}
	return false
}

// verticalMatches applies the vertical scope check. Cross-vertical matches
// any event vertical. An event without a vertical skips the check; this is
// intentionally permissive so account-level feeds need not tag a vertical.
func verticalMatches(defVertical, eventVertical domain.Vertical) bool {
	if defVertical == "" || defVertical == domain.VerticalCross {
		return true
	}
	if eventVertical == "" {
		return true
	}
	return defVertical == eventVertical
}

// filtersMatch evaluates the filter branch relevant to the event's shape.
// Every configured allow-list must either be empty or contain the
// corresponding event field. A branch left unconfigured matches everything.
func filtersMatch(filters *domain.FilterSet, event *domain.Event) bool {
	if filters.IsEmpty() {
		return true
	}
	if event.IsSportsShaped() {
		return sportsFiltersMatch(filters.Sports, event)
	}
	return casinoFiltersMatch(filters.Casino, event)
}

func casinoFiltersMatch(f *domain.CasinoFilters, event *domain.Event) bool {
	if f == nil {
		return true
	}
	return allowListContains(f.Providers, event.Provider) &&
		allowListContains(f.GameCategories, event.Category) &&
		allowListContains(f.GameIDs, event.GameID)
}

func sportsFiltersMatch(f *domain.SportsFilters, event *domain.Event) bool {
	if f == nil {
		return true
	}
	return allowListContains(f.SportTypes, event.SportType) &&
		allowListContains(f.Countries, event.Country) &&
		allowListContains(f.Leagues, event.League) &&
		allowListContains(f.EventIDs, event.EventID) &&
		allowListContains(f.MarketTypes, event.MarketType)
}

// allowListContains returns true when the list is empty (no restriction) or
// contains the value. A configured list never matches an empty event field.
func allowListContains(list []string, value string) bool {
	if len(list) == 0 {
		return true
	}
	return slices.Contains(list, value)
}
