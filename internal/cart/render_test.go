package cart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_NilViewIsNoop(t *testing.T) {
	s := NewStore(NewMemoryStorage())
	require.NoError(t, s.Add(Item{ID: "a", Price: 10}))

	r := NewRenderer(s, nil, nil)
	assert.NotPanics(t, r.Render)
	assert.NotPanics(t, r.LinesChanged)
	assert.NotPanics(t, func() { r.BadgeChanged(1) })
}

func TestRender_HTMLView(t *testing.T) {
	s := NewStore(NewMemoryStorage())
	require.NoError(t, s.AddProduct("raices-fuertes", 2))
	require.NoError(t, s.Add(Item{ID: "gift", Name: "Tarjeta <regalo>", Desc: "con dedicatoria", Price: 17990}))

	view := &HTMLView{}
	NewRenderer(s, view, nil).Render()
	require.NoError(t, view.Err())

	body := view.Body()
	assert.Equal(t, 2, strings.Count(body, "<tr>"))
	assert.Contains(t, body, "Raíces Fuertes, Alas Conscientes")
	assert.Contains(t, body, "$44.990")
	assert.Contains(t, body, "$89.980")
	assert.Contains(t, body, `value="2"`)
	assert.Contains(t, body, `data-cart-remove="raices-fuertes"`)
	assert.Contains(t, body, "Tarjeta &lt;regalo&gt;")
	assert.NotContains(t, body, "<regalo>")
	assert.Equal(t, "$107.970", view.Total())
}

func TestRender_Idempotent(t *testing.T) {
	s := NewStore(NewMemoryStorage())
	require.NoError(t, s.AddProduct("soy-presente", 1))

	view := &HTMLView{}
	r := NewRenderer(s, view, nil)
	r.Render()
	first, firstTotal := view.Body(), view.Total()
	r.Render()
	r.Render()

	assert.Equal(t, first, view.Body())
	assert.Equal(t, firstTotal, view.Total())
}

func TestRender_FollowsStoreMutations(t *testing.T) {
	var badge int
	view := &HTMLView{}
	s := NewStore(NewMemoryStorage())
	r := NewRenderer(s, view, func(n int) { badge = n })
	s.SetNotifier(r)

	require.NoError(t, s.AddProduct("ecos-que-sanan", 1))
	assert.Equal(t, 1, badge)

	require.NoError(t, s.SetQty("ecos-que-sanan", 3))
	assert.Equal(t, 3, badge)
	assert.Contains(t, view.Body(), `value="3"`)
	assert.Equal(t, "$89.970", view.Total())

	require.NoError(t, s.Remove("ecos-que-sanan"))
	assert.Equal(t, 0, badge)
	assert.Empty(t, strings.TrimSpace(view.Body()))
	assert.Equal(t, "$0", view.Total())
}

func TestTextView(t *testing.T) {
	s := NewStore(NewMemoryStorage())
	view := &TextView{}
	r := NewRenderer(s, view, nil)

	r.Render()
	var empty bytes.Buffer
	_, err := view.WriteTo(&empty)
	require.NoError(t, err)
	assert.Contains(t, empty.String(), "vacío")

	require.NoError(t, s.AddProduct("pistas-crianza", 2))
	r.Render()
	var out bytes.Buffer
	_, err = view.WriteTo(&out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "pistas-crianza")
	assert.Contains(t, out.String(), "$69.980")
}
