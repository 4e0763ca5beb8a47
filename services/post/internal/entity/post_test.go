package entity

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    ReadTime
		wantErr bool
	}{
		{`5`, 5, false},
		{`4.6`, 5, false},
		{`"7"`, 7, false},
		{`"5 min read"`, 5, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`-1`, 0, true},
		{`"about five"`, 0, true},
		{`true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got ReadTime
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEstimateReadTime(t *testing.T) {
	assert.Equal(t, ReadTime(0), EstimateReadTime("  "))
	assert.Equal(t, ReadTime(1), EstimateReadTime("one short line"))
	assert.Equal(t, ReadTime(1), EstimateReadTime(strings.Repeat("w ", 200)))
	assert.Equal(t, ReadTime(2), EstimateReadTime(strings.Repeat("w ", 201)))
}

func TestPost_JSONFlattensVariant(t *testing.T) {
	raw := `{"title":"Oil","type":"market-watch","marketImpact":"bearish","dataPoints":[{"label":"Brent","value":"$82"}],"readTime":"3 min read"}`

	var p Post
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.NotNil(t, p.MarketWatch)
	assert.Equal(t, "bearish", p.MarketImpact)
	assert.Equal(t, ReadTime(3), p.ReadTime)
	assert.Nil(t, p.Opinion)

	out, err := json.Marshal(&p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"marketImpact":"bearish"`)
	assert.NotContains(t, string(out), `"topic"`)
}

func TestPost_Normalize(t *testing.T) {
	p := &Post{
		Title:       "  Padded  ",
		Tags:        []string{" Coffee", "coffee", "", "OIL"},
		FullContent: strings.Repeat("w ", 250),
		MarketWatch: &MarketWatch{MarketImpact: "dropped"},
		Opinion:     &Opinion{Topic: "dropped"},
	}
	p.Normalize()

	assert.Equal(t, PostTypeFeatured, p.Type)
	assert.Equal(t, "Padded", p.Title)
	assert.Equal(t, []string{"coffee", "oil"}, p.Tags)
	assert.Nil(t, p.MarketWatch)
	assert.Nil(t, p.Opinion)
	assert.Equal(t, ReadTime(2), p.ReadTime)

	op := &Post{Type: PostTypeOpinion, ReadTime: 9, MarketWatch: &MarketWatch{}}
	op.Normalize()
	assert.NotNil(t, op.Opinion)
	assert.Nil(t, op.MarketWatch)
	assert.Equal(t, ReadTime(9), op.ReadTime)
	assert.NotNil(t, op.Tags)
}

func TestPost_CloneIsDeep(t *testing.T) {
	p := &Post{
		Tags:        []string{"a"},
		MarketWatch: &MarketWatch{DataPoints: []DataPoint{{Label: "x"}}},
	}
	c := p.Clone()
	c.Tags[0] = "b"
	c.DataPoints[0].Label = "y"
	c.MarketImpact = "changed"

	assert.Equal(t, "a", p.Tags[0])
	assert.Equal(t, "x", p.DataPoints[0].Label)
	assert.Empty(t, p.MarketImpact)
	assert.Nil(t, (*Post)(nil).Clone())
}

func TestViewer(t *testing.T) {
	anon := Viewer{}
	owner := Viewer{ID: "a1", Role: RoleAuthor}
	other := Viewer{ID: "a2", Role: RoleAuthor}
	super := Viewer{ID: "s1", Role: RoleSuperAdmin}

	assert.False(t, anon.CanEdit("a1"))
	assert.True(t, owner.CanEdit("a1"))
	assert.False(t, other.CanEdit("a1"))
	assert.True(t, super.CanEdit("a1"))

	draft := &Post{IsDraft: true, Author: AuthorRef{ID: "a1"}}
	assert.False(t, draft.VisibleTo(anon))
	assert.True(t, draft.VisibleTo(owner))
	assert.False(t, draft.VisibleTo(other))
	assert.True(t, draft.VisibleTo(super))

	vis, id := ForViewer(anon)
	assert.Equal(t, VisiblePublished, vis)
	assert.Empty(t, id)
	vis, id = ForViewer(owner)
	assert.Equal(t, VisibleToViewer, vis)
	assert.Equal(t, "a1", id)
	vis, _ = ForViewer(super)
	assert.Equal(t, VisibleAll, vis)
}

func TestPostPatch_Apply(t *testing.T) {
	p := &Post{Title: "Old", Type: PostTypeFeatured, Views: 12}
	title := "New"
	typ := PostTypeOpinion
	topic := "Rates"
	comments := 3
	date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("EST", -5*3600))

	patch := PostPatch{Title: &title, Type: &typ, Topic: &topic, CommentsCount: &comments, PublishDate: &date}
	patch.Apply(p)

	assert.Equal(t, "New", p.Title)
	assert.Equal(t, PostTypeOpinion, p.Type)
	require.NotNil(t, p.Opinion)
	assert.Equal(t, "Rates", p.Topic)
	assert.Equal(t, 3, p.CommentsCount)
	assert.Equal(t, time.UTC, p.PublishDate.Location())
	assert.Equal(t, int64(12), p.Views)
}

func TestSameContent(t *testing.T) {
	date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	a := &Post{Title: "T", Tags: []string{"x"}, PublishDate: date, UpdatedAt: date}
	b := a.Clone()
	b.PublishDate = date.In(time.FixedZone("CET", 3600))
	b.UpdatedAt = date.Add(time.Hour)
	assert.True(t, SameContent(a, b))

	b.Tags = []string{"y"}
	assert.False(t, SameContent(a, b))
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"title": "title is required", "excerpt": "too long"}}
	assert.Equal(t, "validation failed: excerpt: too long; title: title is required", err.Error())
	assert.Equal(t, map[string]string{"image": "bad"}, NewValidationError("image", "bad").Fields)
}
