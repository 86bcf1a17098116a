package unwrap_test

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/transientx"
	"github.com/comalice/transientx/internal/records"
	"github.com/comalice/transientx/unwrap"
)

func TestUnwrapScalarsAndSlices(t *testing.T) {
	assert.Nil(t, unwrap.Unwrap(nil))
	assert.Equal(t, 3, unwrap.Unwrap(3))
	assert.Equal(t, "s", unwrap.Unwrap("s"))
	assert.Equal(t, []byte("raw"), unwrap.Unwrap([]byte("raw")))
	assert.Nil(t, unwrap.Unwrap([]string(nil)))
	assert.Equal(t, []any{1, 2}, unwrap.Unwrap([]int{1, 2}))
}

func TestUnwrapRecord(t *testing.T) {
	child := records.New("child", transientx.Immutable).Hit()
	r := records.New("parent", transientx.Immutable).Tag("a").WithChild(child)

	want := map[string]any{
		"name":  "parent",
		"tags":  []any{"a"},
		"count": 0,
		"child": map[string]any{
			"name":  "child",
			"tags":  nil,
			"count": 1,
		},
	}
	if diff := cmp.Diff(want, unwrap.Unwrap(r)); diff != "" {
		t.Errorf("Unwrap() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, unwrap.Unwrap(child.Counter()))
}

func TestUnwrapCircular(t *testing.T) {
	r := records.New("loop", transientx.Mutable)
	r.WithChild(r)
	require.Same(t, r, r.Child())

	out, ok := unwrap.Unwrap(r).(map[string]any)
	require.True(t, ok)
	child, ok := out["child"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, reflect.ValueOf(out).Pointer(), reflect.ValueOf(child).Pointer(),
		"a self reference unwraps to the target under construction")
	assert.Equal(t, "loop", child["name"])
}

type account struct {
	mctx    *transientx.Context
	Owner   string
	Balance int
	Secret  string   `unwrap:"-"`
	Labels  []string `unwrap:"labels,omitempty"`
	private int
}

func (a *account) MutationContext() *transientx.Context { return a.mctx }

type plain struct {
	A int
	B string
}

func TestUnwrapFields(t *testing.T) {
	acct := &account{mctx: transientx.Frozen(), Owner: "ada", Balance: 10, Secret: "x", Labels: []string{"vip"}, private: 1}
	want := map[string]any{"Owner": "ada", "Balance": 10, "labels": []any{"vip"}}
	if diff := cmp.Diff(want, unwrap.Unwrap(acct)); diff != "" {
		t.Errorf("Unwrap() mismatch (-want +got):\n%s", diff)
	}

	p := plain{A: 1, B: "b"}
	assert.Equal(t, p, unwrap.Unwrap(p), "plain structs are left alone")
	assert.Equal(t, map[string]any{"A": 1, "B": "b"}, unwrap.UnwrapForce(p))
}

func TestKey(t *testing.T) {
	k, err := unwrap.Key("name")
	require.NoError(t, err)
	assert.Equal(t, "name", k)

	k, err = unwrap.Key(42)
	require.NoError(t, err)
	assert.Equal(t, "42", k)

	k, err = unwrap.Key(records.New("r", transientx.Immutable).Tag("t"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"r","tags":["t"],"count":0}`, k)

	k, err = unwrap.Key(nil)
	require.NoError(t, err)
	assert.Empty(t, k)

	_, err = unwrap.Key([]any{func() {}})
	assert.Error(t, err)
}
