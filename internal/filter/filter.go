// Package filter holds the pure in-process filters applied to loaded result
// sets. Filters never mutate their input and applying one twice yields the
// same result as applying it once.
package filter

import (
	"sort"
	"strings"

	"volunteerhub/internal/models"
)

// OpportunityFilter narrows a loaded catalog page.
type OpportunityFilter struct {
	Query    string   // free text against title, description, required skills
	Skills   []string // ANY-match against required skills
	Location string   // substring match
	Status   string   // exact match; "" or "all" disables
}

func (f OpportunityFilter) Apply(list []models.Opportunity) []models.Opportunity {
	out := make([]models.Opportunity, 0, len(list))
	term := strings.ToLower(strings.TrimSpace(f.Query))
	loc := strings.ToLower(strings.TrimSpace(f.Location))
	for _, o := range list {
		if term != "" && !opportunityMatches(&o, term) {
			continue
		}
		if len(f.Skills) > 0 && !anySkill(o.RequiredSkills, f.Skills) {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(o.Location), loc) {
			continue
		}
		if f.Status != "" && f.Status != "all" && o.Status != f.Status {
			continue
		}
		out = append(out, o)
	}
	return out
}

func opportunityMatches(o *models.Opportunity, term string) bool {
	if strings.Contains(strings.ToLower(o.Title), term) ||
		strings.Contains(strings.ToLower(o.Description), term) {
		return true
	}
	for _, s := range o.RequiredSkills {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

func anySkill(have models.StringList, want []string) bool {
	for _, w := range want {
		if have.Contains(w) {
			return true
		}
	}
	return false
}

// AvailableSkills is the facet shown next to the catalog: the sorted union
// of required skills across the loaded (pre-filter) result set.
func AvailableSkills(list []models.Opportunity) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, o := range list {
		for _, s := range o.RequiredSkills {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}

// ApplicationFilter narrows a loaded application list.
type ApplicationFilter struct {
	Query  string // against opportunity title, volunteer name, volunteer email
	Status string // exact match; "" or "all" disables
}

func (f ApplicationFilter) Apply(list []models.Application) []models.Application {
	out := make([]models.Application, 0, len(list))
	term := strings.ToLower(strings.TrimSpace(f.Query))
	for _, a := range list {
		if term != "" && !applicationMatches(&a, term) {
			continue
		}
		if f.Status != "" && f.Status != "all" && a.Status != f.Status {
			continue
		}
		out = append(out, a)
	}
	return out
}

func applicationMatches(a *models.Application, term string) bool {
	if a.Opportunity != nil && strings.Contains(strings.ToLower(a.Opportunity.Title), term) {
		return true
	}
	if a.Volunteer != nil {
		if strings.Contains(strings.ToLower(a.Volunteer.Name), term) ||
			strings.Contains(strings.ToLower(a.Volunteer.Email), term) {
			return true
		}
	}
	return false
}

// StatusTally counts applications per lifecycle status over the unfiltered
// set, for the list header badges.
func StatusTally(list []models.Application) map[string]int {
	tally := map[string]int{"all": len(list)}
	for _, a := range list {
		tally[a.Status]++
	}
	return tally
}

// ConversationFilter narrows a conversation partner list by name or
// organization name.
type ConversationFilter struct {
	Query string
}

func (f ConversationFilter) Apply(list []models.User) []models.User {
	term := strings.ToLower(strings.TrimSpace(f.Query))
	if term == "" {
		out := make([]models.User, len(list))
		copy(out, list)
		return out
	}
	out := make([]models.User, 0, len(list))
	for _, u := range list {
		if strings.Contains(strings.ToLower(u.Name), term) ||
			strings.Contains(strings.ToLower(u.OrganizationName), term) {
			out = append(out, u)
		}
	}
	return out
}
