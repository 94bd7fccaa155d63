package filter

import (
	"reflect"
	"testing"

	"volunteerhub/internal/models"
)

func catalogFixture() []models.Opportunity {
	return []models.Opportunity{
		{ID: 1, Title: "Website Redesign", Description: "Rebuild the charity site", RequiredSkills: models.StringList{"Design", "HTML"}, Location: "Amsterdam", Status: "open"},
		{ID: 2, Title: "Food Drive", Description: "Weekend food collection", RequiredSkills: models.StringList{"Driving"}, Location: "Utrecht", Status: "open"},
		{ID: 3, Title: "Tutoring Program", Description: "Math tutoring for kids", RequiredSkills: models.StringList{"Teaching", "Math"}, Location: "Amsterdam Noord", Status: "closed"},
	}
}

func TestOpportunityFilterEmptyIsIdentity(t *testing.T) {
	in := catalogFixture()
	out := OpportunityFilter{}.Apply(in)
	if !reflect.DeepEqual(out, in) {
		t.Errorf("empty filter changed the list: %+v", out)
	}
	all := OpportunityFilter{Status: "all"}.Apply(in)
	if !reflect.DeepEqual(all, in) {
		t.Errorf("status=all filter changed the list: %+v", all)
	}
}

func TestOpportunityFilterIsPure(t *testing.T) {
	in := catalogFixture()
	snapshot := catalogFixture()
	OpportunityFilter{Query: "food", Status: "open"}.Apply(in)
	if !reflect.DeepEqual(in, snapshot) {
		t.Error("filter mutated its input")
	}
}

func TestOpportunityFilterIdempotent(t *testing.T) {
	f := OpportunityFilter{Query: "tutoring"}
	once := f.Apply(catalogFixture())
	twice := f.Apply(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter not idempotent: %+v vs %+v", once, twice)
	}
}

func TestOpportunityFilterFreeText(t *testing.T) {
	cases := []struct {
		query string
		want  []uint
	}{
		{"WEBSITE", []uint{1}},    // title, case-insensitive
		{"collection", []uint{2}}, // description
		{"math", []uint{3}},       // skill and description
		{"amsterdam", nil},        // free text does not search location
		{"nothing matches this", nil},
	}
	for _, tc := range cases {
		got := ids(OpportunityFilter{Query: tc.query}.Apply(catalogFixture()))
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Query=%q got %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestOpportunityFilterSkillsAnyMatch(t *testing.T) {
	got := ids(OpportunityFilter{Skills: []string{"driving", "Teaching"}}.Apply(catalogFixture()))
	if !reflect.DeepEqual(got, []uint{2, 3}) {
		t.Errorf("skills filter got %v, want [2 3]", got)
	}
}

func TestOpportunityFilterLocationAndStatus(t *testing.T) {
	got := ids(OpportunityFilter{Location: "amsterdam"}.Apply(catalogFixture()))
	if !reflect.DeepEqual(got, []uint{1, 3}) {
		t.Errorf("location filter got %v, want [1 3]", got)
	}
	got = ids(OpportunityFilter{Location: "amsterdam", Status: "open"}.Apply(catalogFixture()))
	if !reflect.DeepEqual(got, []uint{1}) {
		t.Errorf("location+status filter got %v, want [1]", got)
	}
}

func TestAvailableSkillsFacet(t *testing.T) {
	got := AvailableSkills(catalogFixture())
	want := []string{"Design", "Driving", "HTML", "Math", "Teaching"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("facet = %v, want %v", got, want)
	}
	if got := AvailableSkills(nil); len(got) != 0 {
		t.Errorf("facet of empty catalog = %v", got)
	}
}

func applicationsFixture() []models.Application {
	return []models.Application{
		{ID: 1, Status: "pending",
			Opportunity: &models.Opportunity{Title: "Website Redesign"},
			Volunteer:   &models.User{Name: "Alice Jansen", Email: "alice@example.org"}},
		{ID: 2, Status: "accepted",
			Opportunity: &models.Opportunity{Title: "Food Drive"},
			Volunteer:   &models.User{Name: "Bob de Vries", Email: "bob@example.org"}},
		{ID: 3, Status: "rejected",
			Opportunity: &models.Opportunity{Title: "Food Drive"},
			Volunteer:   nil}, // volunteer not preloaded
	}
}

func TestApplicationFilterQueryAndStatus(t *testing.T) {
	apps := applicationsFixture()

	got := appIDs(ApplicationFilter{Query: "alice"}.Apply(apps))
	if !reflect.DeepEqual(got, []uint{1}) {
		t.Errorf("name query got %v", got)
	}
	got = appIDs(ApplicationFilter{Query: "BOB@EXAMPLE"}.Apply(apps))
	if !reflect.DeepEqual(got, []uint{2}) {
		t.Errorf("email query got %v", got)
	}
	got = appIDs(ApplicationFilter{Query: "food"}.Apply(apps))
	if !reflect.DeepEqual(got, []uint{2, 3}) {
		t.Errorf("title query got %v", got)
	}
	got = appIDs(ApplicationFilter{Status: "accepted"}.Apply(apps))
	if !reflect.DeepEqual(got, []uint{2}) {
		t.Errorf("status filter got %v", got)
	}
	got = appIDs(ApplicationFilter{Query: "food", Status: "rejected"}.Apply(apps))
	if !reflect.DeepEqual(got, []uint{3}) {
		t.Errorf("combined filter got %v", got)
	}
}

func TestApplicationFilterEmptyIsIdentity(t *testing.T) {
	in := applicationsFixture()
	out := ApplicationFilter{}.Apply(in)
	if !reflect.DeepEqual(out, in) {
		t.Errorf("empty filter changed order or content")
	}
}

func TestStatusTally(t *testing.T) {
	tally := StatusTally(applicationsFixture())
	want := map[string]int{"all": 3, "pending": 1, "accepted": 1, "rejected": 1}
	if !reflect.DeepEqual(tally, want) {
		t.Errorf("tally = %v, want %v", tally, want)
	}
	if got := StatusTally(nil)["all"]; got != 0 {
		t.Errorf("empty tally all = %d", got)
	}
}

func TestConversationFilter(t *testing.T) {
	users := []models.User{
		{ID: 1, Name: "Alice Jansen"},
		{ID: 2, Name: "Bram", OrganizationName: "Green Earth Foundation"},
	}
	got := ConversationFilter{Query: "green"}.Apply(users)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("org query got %v", got)
	}
	got = ConversationFilter{Query: "alice"}.Apply(users)
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("name query got %v", got)
	}
	got = ConversationFilter{}.Apply(users)
	if !reflect.DeepEqual(got, users) {
		t.Errorf("empty query not identity: %v", got)
	}
}

func ids(list []models.Opportunity) []uint {
	var out []uint
	for _, o := range list {
		out = append(out, o.ID)
	}
	return out
}

func appIDs(list []models.Application) []uint {
	var out []uint
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}
