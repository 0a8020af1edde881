package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCart(t *testing.T, store string, client *http.Client, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(append([]string{"-store", store}, args...), &out, &errOut, client)
	return code, out.String(), errOut.String()
}

func TestCart_AddShowRemove(t *testing.T) {
	store := filepath.Join(t.TempDir(), "cart.json")

	code, out, _ := runCart(t, store, nil, "add", "raices-fuertes", "2")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "2 productos")

	code, _, _ = runCart(t, store, nil, "add", "entre-lineas")
	require.Equal(t, 0, code)

	code, out, _ = runCart(t, store, nil, "show", "-shipping", "3990")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Raíces Fuertes, Alas Conscientes")
	assert.Contains(t, out, "$89.980")
	assert.Contains(t, out, "Subtotal: $107.970")
	assert.Contains(t, out, "Total:    $111.960")

	code, out, _ = runCart(t, store, nil, "qty", "entre-lineas", "0")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "$17.990")

	code, out, _ = runCart(t, store, nil, "remove", "raices-fuertes")
	require.Equal(t, 0, code)
	assert.NotContains(t, out, "Raíces Fuertes")
	assert.Contains(t, out, "Entre Líneas")
}

func TestCart_Errors(t *testing.T) {
	store := filepath.Join(t.TempDir(), "cart.json")

	code, _, errOut := runCart(t, store, nil, "add", "no-existe")
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, errOut)

	code, _, _ = runCart(t, store, nil, "add", "soy-presente", "cero")
	assert.Equal(t, 1, code)

	code, _, _ = runCart(t, store, nil, "fly")
	assert.Equal(t, 1, code)

	code, _, _ = runCart(t, store, nil)
	assert.Equal(t, 2, code)

	code, _, errOut = runCart(t, store, nil, "checkout", "-api", "http://127.0.0.1:1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "vacío")
}

func TestCart_Checkout(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/getnet-create-session", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true,"requestId":77,"processUrl":"https://checkout.test/77"}`))
	}))
	defer srv.Close()

	store := filepath.Join(t.TempDir(), "cart.json")
	code, _, _ := runCart(t, store, nil, "add", "ecos-que-sanan")
	require.Equal(t, 0, code)

	code, out, errOut := runCart(t, store, srv.Client(), "checkout", "-api", srv.URL, "-shipping", "3990")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "https://checkout.test/77")

	assert.Equal(t, 33980.0, got["amount"])
	assert.Regexp(t, regexp.MustCompile(`^EAR-[0-9A-F]{8}$`), got["reference"])
	assert.Contains(t, got["description"], "1 productos")
}

func TestCart_CheckoutRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error":"gateway_rejected","details":{"status":{"status":"FAILED"}}}`))
	}))
	defer srv.Close()

	store := filepath.Join(t.TempDir(), "cart.json")
	runCart(t, store, nil, "add", "ecos-que-sanan")

	code, _, errOut := runCart(t, store, srv.Client(), "checkout", "-api", srv.URL)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "gateway_rejected")
}

func TestNewReference(t *testing.T) {
	a, b := NewReference(), NewReference()
	assert.Regexp(t, `^EAR-[0-9A-F]{8}$`, a)
	assert.NotEqual(t, a, b)
}
