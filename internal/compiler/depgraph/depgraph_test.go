package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mozaik-cms/mozaik/internal/compiler/ir"
)

// contentType builds an input whose fields reference the given types
func contentType(apiID string, refs ...string) ir.ContentTypeInput {
	fields := []ir.FieldInput{{APIID: "title", Type: ir.TypeTextSingleline}}
	for _, ref := range refs {
		fields = append(fields, ir.FieldInput{APIID: "ref" + ref, Type: ref})
	}
	return ir.ContentTypeInput{APIID: apiID, Name: apiID, Fields: fields}
}

func position(ids []string) map[string]int {
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	return pos
}

func TestGraph_Dependents(t *testing.T) {
	g := New([]ir.ContentTypeInput{
		contentType("Post", "Author", "Author", "Category"),
		contentType("Page", "Author"),
		contentType("Author"),
		contentType("Category"),
	})

	assert.Equal(t, []string{"Post", "Page"}, g.Dependents("Author"))
	assert.Equal(t, []string{"Post"}, g.Dependents("Category"))
	assert.Empty(t, g.Dependents("Post"))
	assert.Empty(t, g.Dependents("Missing"))
}

func TestGraph_UnknownReferenceHasNoEdge(t *testing.T) {
	g := New([]ir.ContentTypeInput{contentType("Post", "Ghost")})
	assert.Empty(t, g.Dependents("Ghost"))
	assert.Equal(t, []string{"Post"}, g.Order().APIIDs())
}

func TestGraph_TransitiveDependents(t *testing.T) {
	// A <- B <- C <- D
	g := New([]ir.ContentTypeInput{
		contentType("A"),
		contentType("B", "A"),
		contentType("C", "B"),
		contentType("D", "C"),
	})

	assert.Equal(t, []string{"B", "C", "D"}, g.TransitiveDependents("A"))
	assert.Empty(t, g.TransitiveDependents("D"))
}

func TestGraph_TransitiveDependentsOnCycle(t *testing.T) {
	g := New([]ir.ContentTypeInput{
		contentType("Author", "Post"),
		contentType("Post", "Author"),
		contentType("Comment", "Post"),
	})

	assert.Equal(t, []string{"Author", "Comment"}, g.TransitiveDependents("Post"))
}

func TestOrder_DependenciesFirst(t *testing.T) {
	inputs := []ir.ContentTypeInput{
		contentType("Post", "Author", "FeaturedImage", "Category"),
		contentType("Homepage", "Post"),
		contentType("Author"),
		contentType("FeaturedImage", "ColorEnum"),
		contentType("Category"),
		contentType("ColorEnum"),
	}

	order := New(inputs).Order()
	ids := order.APIIDs()
	require.Len(t, ids, len(inputs))
	assert.Empty(t, order.Cycles)

	pos := position(ids)
	for _, input := range inputs {
		for _, ref := range input.References() {
			assert.Less(t, pos[ref], pos[input.APIID], "%s must come after %s", input.APIID, ref)
		}
	}

	assert.Equal(t, []string{"Author", "ColorEnum", "FeaturedImage", "Category", "Post", "Homepage"}, ids)
}

func TestOrder_SelfReference(t *testing.T) {
	order := New([]ir.ContentTypeInput{contentType("Category", "Category")}).Order()

	assert.Equal(t, []string{"Category"}, order.APIIDs())
	assert.Equal(t, [][]string{{"Category", "Category"}}, order.Cycles)
}

func TestOrder_MutualReference(t *testing.T) {
	order := New([]ir.ContentTypeInput{
		contentType("Post", "Author"),
		contentType("Author", "Post"),
		contentType("Page", "Post"),
	}).Order()

	ids := order.APIIDs()
	assert.ElementsMatch(t, []string{"Post", "Author", "Page"}, ids)
	assert.Equal(t, []string{"Author", "Post", "Page"}, ids)
	assert.Equal(t, [][]string{{"Post", "Author", "Post"}}, order.Cycles)
}

func TestOrder_EachTypeOnce(t *testing.T) {
	inputs := []ir.ContentTypeInput{
		contentType("A", "B", "C"),
		contentType("B", "C"),
		contentType("C", "A"),
		contentType("A"),
	}

	ids := New(inputs).Order().APIIDs()
	assert.ElementsMatch(t, []string{"A", "B", "C"}, ids)
}

func TestOrder_Deterministic(t *testing.T) {
	inputs := []ir.ContentTypeInput{
		contentType("Post", "Author", "Tag"),
		contentType("Tag"),
		contentType("Author", "Tag"),
	}

	first := New(inputs).Order().APIIDs()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, New(inputs).Order().APIIDs())
	}
}

func TestOrder_Empty(t *testing.T) {
	order := New(nil).Order()
	assert.Empty(t, order.Inputs)
	assert.Empty(t, order.Cycles)
}
