package store

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
)

func strValue(s string) *qdrant.Value {
	return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: s}}
}

func listValue(items ...*qdrant.Value) *qdrant.Value {
	return &qdrant.Value{Kind: &qdrant.Value_ListValue{ListValue: &qdrant.ListValue{Values: items}}}
}

func TestMatchFromPoint(t *testing.T) {
	p := &qdrant.ScoredPoint{
		Id:    &qdrant.PointId{PointIdOptions: &qdrant.PointId_Num{Num: 7}},
		Score: 0.875,
		Payload: map[string]*qdrant.Value{
			"text":              strValue("Won Smart India Hackathon 2023."),
			"images":            listValue(strValue("/images/sih.jpg"), &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: 3}}),
			"example_questions": listValue(strValue("What hackathons did you win?")),
		},
	}

	m := matchFromPoint(p)

	assert.Equal(t, "7", m.Entry.ID)
	assert.Equal(t, "Won Smart India Hackathon 2023.", m.Entry.Text)
	assert.Equal(t, []string{"/images/sih.jpg"}, m.Entry.Images)
	assert.Equal(t, []string{"What hackathons did you win?"}, m.Entry.Tags)
	assert.InDelta(t, 0.875, m.Score, 1e-9)
}

func TestMatchFromPoint_MissingPayload(t *testing.T) {
	p := &qdrant.ScoredPoint{
		Id:    &qdrant.PointId{PointIdOptions: &qdrant.PointId_Uuid{Uuid: "6f1c0e1e-0000-4000-8000-000000000001"}},
		Score: 0.5,
	}

	m := matchFromPoint(p)

	assert.Equal(t, "6f1c0e1e-0000-4000-8000-000000000001", m.Entry.ID)
	assert.Empty(t, m.Entry.Text)
	assert.Nil(t, m.Entry.Images)
	assert.False(t, m.HasText())
}

func TestVectorToString(t *testing.T) {
	assert.Equal(t, "[0.5,-1,0.25]", vectorToString([]float32{0.5, -1, 0.25}))
	assert.Equal(t, "[]", vectorToString(nil))
}

func TestSearchQuery_QuotesTable(t *testing.T) {
	q := searchQuery(`facts"; DROP TABLE x; --`)
	assert.Contains(t, q, `FROM "facts""; DROP TABLE x; --"`)
	assert.Contains(t, q, "LIMIT $2")
}
