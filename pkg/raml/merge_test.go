package raml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_InPlace(t *testing.T) {
	calls := []*CallRecord{
		call("GET", "https://h.test/users", "200"),
		call("GET", "https://h.test/users/1", "200", "a=1"),
		call("GET", "https://h.test/users/2", "200", "b=true"),
		call("DELETE", "https://h.test/users/2", "204"),
		call("GET", "https://h.test/users/1/posts", "200"),
		call("GET", "https://h.test/users/2/posts", "200"),
		call("GET", "https://h.test/users/2/likes", "200"),
	}
	api := Refine(Build(calls, ""))
	users, ok := api.Resource("/users")
	require.True(t, ok)
	one, _ := users.Resource("/1")
	two, _ := users.Resource("/2")

	composite := Merge(users, users, []*Resource{one, two}, "{x}")

	assert.Equal(t, []string{"/{x}"}, segments(users))
	assert.Equal(t, "/{x}", composite.Segment)
	assert.Equal(t, "https://h.test/users/{x}", composite.URI())
	assert.Equal(t, Composite, composite.Kind)
	assert.Equal(t, []*Resource{one, two}, composite.Parts)

	var verbs []string
	for _, m := range composite.Methods() {
		verbs = append(verbs, m.Verb)
		assert.Equal(t, Composite, m.Kind)
	}
	assert.Equal(t, []string{"GET", "DELETE"}, verbs)

	get, _ := composite.Method("GET")
	require.Len(t, get.Parts, 2)
	calls0 := get.Calls()
	require.Len(t, calls0, 2)
	assert.Equal(t, "https://h.test/users/1", calls0[0].URL)
	assert.Equal(t, "https://h.test/users/2", calls0[1].URL)

	assert.Equal(t, []string{"/posts", "/likes"}, segments(composite))
	posts, _ := composite.Resource("/posts")
	assert.Equal(t, Composite, posts.Kind)
	assert.Len(t, posts.Parts, 2)
	assert.Equal(t, "https://h.test/users/{x}/posts", posts.URI())
	postsGet, _ := posts.Method("GET")
	assert.Len(t, postsGet.Calls(), 2)
	likes, _ := composite.Resource("/likes")
	assert.Len(t, likes.Parts, 1)

	api.Finalize()
	var names []string
	for _, p := range get.QueryParams() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestMerge_IntoOtherParent(t *testing.T) {
	api := Refine(Build([]*CallRecord{
		call("GET", "https://h.test/v1/a", "200"),
		call("GET", "https://h.test/v1/b", "200"),
	}, ""))
	a, _ := api.Resource("/a")
	b, _ := api.Resource("/b")

	target := NewAPI("t", "")
	composite := Merge(nil, target, []*Resource{a, b}, "/ab")

	assert.Equal(t, []string{"/a", "/b"}, segments(api))
	assert.Equal(t, []string{"/ab"}, segments(target))
	assert.Equal(t, "/ab", composite.URI())
}

func TestPlaceholder(t *testing.T) {
	tests := []struct {
		segment  string
		expected string
		ok       bool
	}{
		{"/123", "{id}", true},
		{"/550e8400-e29b-41d4-a716-446655440000", "{uuid}", true},
		{"/550E8400-E29B-41D4-A716-446655440000", "{uuid}", true},
		{"/deadbeefcafe", "{hex}", true},
		{"/abc123", "", false},
		{"/users", "", false},
		{"/", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			ph, ok := Placeholder(tt.segment)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, ph)
		})
	}
}

func TestMergeParameterized(t *testing.T) {
	calls := []*CallRecord{
		call("GET", "https://h.test/users/1", "200"),
		call("GET", "https://h.test/users/2", "200"),
		call("GET", "https://h.test/users/me", "200"),
		call("GET", "https://h.test/users/1/orders/10", "200"),
		call("GET", "https://h.test/users/2/orders/11", "200"),
		call("GET", "https://h.test/teams/7", "200"),
	}
	api := Refine(Build(calls, ""))

	merged := MergeParameterized(api, ParameterizedOptions{})
	assert.Equal(t, 2, merged)

	users, _ := api.Resource("/users")
	assert.Equal(t, []string{"/me", "/{id}"}, segments(users))
	id, _ := users.Resource("/{id}")
	assert.Equal(t, Composite, id.Kind)

	orders, ok := id.Resource("/orders")
	require.True(t, ok)
	assert.Equal(t, []string{"/{id}"}, segments(orders))
	assert.Equal(t, "https://h.test/users/{id}/orders/{id}", orders.Resources()[0].URI())

	teams, _ := api.Resource("/teams")
	assert.Equal(t, []string{"/7"}, segments(teams))
}

func TestMergeParameterized_MinSiblings(t *testing.T) {
	api := Refine(Build([]*CallRecord{
		call("GET", "https://h.test/teams/7", "200"),
		call("GET", "https://h.test/users", "200"),
	}, ""))

	assert.Equal(t, 1, MergeParameterized(api, ParameterizedOptions{MinSiblings: 1}))
	teams, _ := api.Resource("/teams")
	assert.Equal(t, []string{"/{id}"}, segments(teams))

	// already generalized
	assert.Equal(t, 0, MergeParameterized(api, ParameterizedOptions{MinSiblings: 1}))
}

func TestMergeParameterized_JoinsExistingPlaceholder(t *testing.T) {
	api := Refine(Build([]*CallRecord{
		call("GET", "https://h.test/users/1", "200"),
		call("GET", "https://h.test/users/2", "200"),
		call("GET", "https://h.test/items", "200"),
	}, ""))
	require.Equal(t, 1, MergeParameterized(api, ParameterizedOptions{}))

	users, _ := api.Resource("/users")
	require.NoError(t, func() error {
		three := users.child("/3")
		return three.AddCall(call("GET", "https://h.test/users/3", "200"))
	}())

	assert.Equal(t, 1, MergeParameterized(api, ParameterizedOptions{}))
	assert.Equal(t, []string{"/{id}"}, segments(users))
	id, _ := users.Resource("/{id}")
	get, _ := id.Method("GET")
	assert.Len(t, get.Calls(), 3)
}
