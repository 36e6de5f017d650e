package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/medwire-io/fhir-client/pkg/fhir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Read(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/Patient/123", r.URL.Path)

		_, _ = w.Write([]byte(`{"resourceType":"Patient","id":"123"}`))
	})

	patient, err := c.Read(context.Background(), "Patient", "123", nil)
	require.NoError(t, err)
	assert.Equal(t, "Patient", patient.ResourceType())
	assert.Equal(t, "123", patient.ID())
}

func TestClient_ReadValidation(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be sent for invalid input")
	})

	_, err := c.Read(context.Background(), "", "123", nil)
	require.ErrorIs(t, err, fhir.ErrMissingResourceType)

	_, err = c.Read(context.Background(), "Patient", "", nil)
	require.ErrorIs(t, err, fhir.ErrMissingResourceID)
}

func TestClient_VRead(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Patient/123/_history/2", r.URL.Path)

		_, _ = w.Write([]byte(`{"resourceType":"Patient","id":"123","meta":{"versionId":"2"}}`))
	})

	patient, err := c.VRead(context.Background(), "Patient", "123", "2", nil)
	require.NoError(t, err)
	assert.Equal(t, "123", patient.ID())
}

func TestClient_VReadRequiresVersion(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be sent without a version id")
	})

	_, err := c.VRead(context.Background(), "Patient", "123", "", nil)
	require.ErrorIs(t, err, fhir.ErrMissingResourceID)
}

func TestClient_History(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Patient/123/_history", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"resourceType": "Bundle",
			"type": "history",
			"entry": [
				{"resource": {"resourceType": "Patient", "id": "123", "meta": {"versionId": "2"}}},
				{"resource": {"resourceType": "Patient", "id": "123", "meta": {"versionId": "1"}}}
			]
		}`))
	})

	history, err := c.History(context.Background(), "Patient", "123", nil)
	require.NoError(t, err)
	assert.Equal(t, "history", history.Type)
	assert.Len(t, history.Resources(), 2)
}

func TestClient_Create(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/Patient", r.URL.Path)
		assert.Equal(t, "application/fhir+json; fhirVersion=4.0", r.Header.Get("Content-Type"))

		var resource fhir.Resource
		require.NoError(t, json.NewDecoder(r.Body).Decode(&resource))
		assert.Equal(t, "Patient", resource.ResourceType())

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"resourceType":"Patient","id":"server-assigned"}`))
	})

	created, err := c.Create(context.Background(), "Patient", fhir.Resource{"resourceType": "Patient"})
	require.NoError(t, err)
	assert.Equal(t, "server-assigned", created.ID())
}

func TestClient_CreateValidation(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be sent for invalid input")
	})

	_, err := c.Create(context.Background(), "", fhir.Resource{})
	require.ErrorIs(t, err, fhir.ErrMissingResourceType)

	_, err = c.Create(context.Background(), "Patient", nil)
	require.ErrorIs(t, err, fhir.ErrMissingResource)
}

func TestClient_Update(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/Patient/123", r.URL.Path)

		_, _ = w.Write([]byte(`{"resourceType":"Patient","id":"123","active":false}`))
	})

	updated, err := c.Update(context.Background(), "Patient", "123",
		fhir.Resource{"resourceType": "Patient", "id": "123", "active": false})
	require.NoError(t, err)
	assert.Equal(t, "123", updated.ID())
}

func TestClient_UpdateValidation(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be sent for invalid input")
	})

	_, err := c.Update(context.Background(), "Patient", "", fhir.Resource{})
	require.ErrorIs(t, err, fhir.ErrMissingResourceID)

	_, err = c.Update(context.Background(), "Patient", "123", nil)
	require.ErrorIs(t, err, fhir.ErrMissingResource)
}

func TestClient_Patch(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PATCH", r.Method)
		assert.Equal(t, "/Patient/123", r.URL.Path)

		// The patch document travels as JSON Patch, not as a FHIR body.
		assert.Equal(t, "application/json-patch+json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"op":"replace","path":"/active","value":true}]`, string(body))

		_, _ = w.Write([]byte(`{"resourceType":"Patient","id":"123","active":true}`))
	})

	patched, err := c.Patch(context.Background(), "Patient", "123", []fhir.PatchOperation{
		{Op: "replace", Path: "/active", Value: true},
	})
	require.NoError(t, err)
	assert.Equal(t, true, patched["active"])
}

func TestClient_PatchRequiresOperations(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be sent for an empty patch")
	})

	_, err := c.Patch(context.Background(), "Patient", "123", nil)
	require.ErrorIs(t, err, fhir.ErrEmptyPatch)
}

func TestClient_Delete(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/Patient/123", r.URL.Path)

		w.WriteHeader(http.StatusNoContent)
	})

	err := c.Delete(context.Background(), "Patient", "123")
	require.NoError(t, err)
}

func TestClient_DeleteValidation(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be sent for invalid input")
	})

	err := c.Delete(context.Background(), "Patient", "")
	require.ErrorIs(t, err, fhir.ErrMissingResourceID)
}
