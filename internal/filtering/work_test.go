package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func companyA() map[string]any {
	return map[string]any{
		"Company A": []any{
			map[string]any{
				"job_title":  "Senior Developer",
				"include_in": []any{"technical", "all"},
				"responsibilities": []any{
					"r1", "r2", "r3", "r4", "r5",
				},
			},
			map[string]any{
				"job_title":  "Developer",
				"include_in": []any{"technical"},
				"highlights": []any{"h1", "h2", "h3", "h4"},
			},
		},
	}
}

func titles(t *testing.T, positions any) []string {
	t.Helper()
	list, ok := positions.([]any)
	require.True(t, ok)
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.(map[string]any)["job_title"].(string))
	}
	return out
}

func TestFilterWorkExperience_TagRule(t *testing.T) {
	allOnly := FilterWorkExperience(companyA(), []string{"all"}, 0)
	assert.Equal(t, []string{"Senior Developer"}, titles(t, allOnly["Company A"]))

	both := FilterWorkExperience(companyA(), []string{"technical", "all"}, 0)
	assert.Equal(t, []string{"Senior Developer", "Developer"}, titles(t, both["Company A"]))
}

func TestFilterWorkExperience_FalsyIncludeInIsUntagged(t *testing.T) {
	work := map[string]any{
		"Company B": []any{
			map[string]any{"job_title": "Blank", "include_in": ""},
			map[string]any{"job_title": "Off", "include_in": false},
			map[string]any{"job_title": "Zero", "include_in": 0},
		},
	}

	allOnly := FilterWorkExperience(work, []string{"all"}, 0)
	assert.Equal(t, []string{"Blank", "Off", "Zero"}, titles(t, allOnly["Company B"]))

	assert.Empty(t, FilterWorkExperience(work, []string{"technical", "false"}, 0))
}

func TestFilterWorkExperience_BulletLimit(t *testing.T) {
	filtered := FilterWorkExperience(companyA(), []string{"technical"}, 3)
	positions := filtered["Company A"].([]any)
	require.Len(t, positions, 2)

	senior := positions[0].(map[string]any)
	assert.Equal(t, []any{"r1", "r2", "r3"}, senior["responsibilities"])
	assert.NotContains(t, senior, "highlights")

	developer := positions[1].(map[string]any)
	assert.Equal(t, []any{"h1", "h2", "h3"}, developer["highlights"])
	assert.NotContains(t, developer, "responsibilities")
}

func TestFilterWorkExperience_BothBulletFields(t *testing.T) {
	work := map[string]any{
		"Company B": []any{
			map[string]any{
				"job_title":        "Lead",
				"responsibilities": []any{"a", "b", "c"},
				"highlights":       []any{"x", "y", "z"},
			},
		},
	}

	filtered := FilterWorkExperience(work, []string{"all"}, 2)
	lead := filtered["Company B"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{"a", "b"}, lead["responsibilities"])
	assert.Equal(t, []any{"x", "y"}, lead["highlights"])
}

func TestFilterWorkExperience_NoLimit(t *testing.T) {
	filtered := FilterWorkExperience(companyA(), []string{"technical"}, 0)
	senior := filtered["Company A"].([]any)[0].(map[string]any)
	assert.Len(t, senior["responsibilities"], 5)
}

func TestFilterWorkExperience_CompanyDrop(t *testing.T) {
	work := companyA()
	work["Company C"] = []any{
		map[string]any{"job_title": "Consultant", "include_in": []any{"consulting"}},
	}

	filtered := FilterWorkExperience(work, []string{"technical"}, 0)
	assert.Contains(t, filtered, "Company A")
	assert.NotContains(t, filtered, "Company C")
}

func TestFilterWorkExperience_MalformedShapes(t *testing.T) {
	assert.Equal(t, map[string]any{}, FilterWorkExperience(nil, []string{"all"}, 0))
	assert.Equal(t, map[string]any{}, FilterWorkExperience([]any{"not", "a", "mapping"}, []string{"all"}, 0))

	work := map[string]any{
		"Broken":  "not a list",
		"Mixed":   []any{"not a record", map[string]any{"job_title": "Real"}},
		"Nothing": []any{},
	}
	filtered := FilterWorkExperience(work, []string{"all"}, 0)
	assert.NotContains(t, filtered, "Broken")
	assert.NotContains(t, filtered, "Nothing")
	assert.Equal(t, []string{"Real"}, titles(t, filtered["Mixed"]))
}

func TestFilterWorkExperience_NonListBulletsKept(t *testing.T) {
	work := map[string]any{
		"Company": []any{map[string]any{"job_title": "Dev", "responsibilities": "one long paragraph"}},
	}

	filtered := FilterWorkExperience(work, []string{"all"}, 1)
	dev := filtered["Company"].([]any)[0].(map[string]any)
	assert.Equal(t, "one long paragraph", dev["responsibilities"])
}

func TestFilterWorkExperience_DoesNotMutateInput(t *testing.T) {
	work := companyA()
	_ = FilterWorkExperience(work, []string{"technical"}, 1)

	assert.Equal(t, companyA(), work)
}

func TestFilterWorkList(t *testing.T) {
	work := []any{
		map[string]any{"name": "Company A", "position": "Engineer", "include_in": []any{"technical"}, "highlights": []any{"a", "b", "c"}},
		map[string]any{"name": "Company B", "position": "Manager", "include_in": []any{"leadership"}},
		map[string]any{"name": "Company C", "position": "Intern"},
		"garbage",
	}

	technical := FilterWorkList(work, []string{"technical"}, 2)
	require.Len(t, technical, 1)
	engineer := technical[0].(map[string]any)
	assert.Equal(t, "Company A", engineer["name"])
	assert.Equal(t, []any{"a", "b"}, engineer["highlights"])

	all := FilterWorkList(work, []string{"all"}, 0)
	require.Len(t, all, 1)
	assert.Equal(t, "Company C", all[0].(map[string]any)["name"])

	assert.Equal(t, []any{}, FilterWorkList(map[string]any{}, []string{"all"}, 0))
}

func TestFilterWorkList_LimitsBothBulletFields(t *testing.T) {
	work := []any{
		map[string]any{
			"name":             "Company A",
			"include_in":       "",
			"responsibilities": []any{"r1", "r2", "r3"},
			"highlights":       []any{"h1", "h2", "h3"},
		},
	}

	filtered := FilterWorkList(work, []string{"all"}, 1)
	require.Len(t, filtered, 1)
	position := filtered[0].(map[string]any)
	assert.Equal(t, []any{"r1"}, position["responsibilities"])
	assert.Equal(t, []any{"h1"}, position["highlights"])
}

func TestFilterProjects(t *testing.T) {
	projects := []any{
		map[string]any{"name": "CLI", "include_in": []any{"technical"}, "highlights": []any{"a", "b", "c", "d"}},
		map[string]any{"name": "Mentoring", "include_in": []any{"leadership"}, "highlights": []any{"x"}},
	}

	filtered := FilterProjects(projects, []string{"technical"}, 2)
	require.Len(t, filtered, 1)
	assert.Equal(t, []any{"a", "b"}, filtered[0].(map[string]any)["highlights"])

	unlimited := FilterProjects(projects, []string{"technical"}, 0)
	assert.Len(t, unlimited[0].(map[string]any)["highlights"], 4)

	assert.Len(t, projects[0].(map[string]any)["highlights"], 4)
}
