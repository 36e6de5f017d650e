package fhir_test

import (
	"strings"
	"testing"

	"github.com/medwire-io/fhir-client/pkg/fhir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundleBuilder_Transaction(t *testing.T) {
	t.Parallel()

	patient := fhir.Resource{"resourceType": "Patient", "name": []any{map[string]any{"family": "Smith"}}}
	observation := fhir.Resource{"resourceType": "Observation", "id": "obs-1", "status": "final"}

	bundle := fhir.NewTransactionBundle().
		Create(patient).
		Update(observation).
		Delete("Encounter", "enc-9").
		Get("Patient", "123").
		Bundle()

	assert.Equal(t, "Bundle", bundle.ResourceType)
	assert.Equal(t, fhir.BundleTypeTransaction, bundle.Type)
	require.Len(t, bundle.Entry, 4)

	create := bundle.Entry[0]
	assert.Equal(t, "POST", create.Request.Method)
	assert.Equal(t, "Patient", create.Request.URL)
	assert.True(t, strings.HasPrefix(create.FullURL, "urn:uuid:"))
	assert.Equal(t, patient, create.Resource)

	update := bundle.Entry[1]
	assert.Equal(t, "PUT", update.Request.Method)
	assert.Equal(t, "Observation/obs-1", update.Request.URL)

	del := bundle.Entry[2]
	assert.Equal(t, "DELETE", del.Request.Method)
	assert.Equal(t, "Encounter/enc-9", del.Request.URL)
	assert.Nil(t, del.Resource)
	assert.Empty(t, del.FullURL)

	read := bundle.Entry[3]
	assert.Equal(t, "GET", read.Request.Method)
	assert.Equal(t, "Patient/123", read.Request.URL)
}

func TestBundleBuilder_Batch(t *testing.T) {
	t.Parallel()

	bundle := fhir.NewBatchBundle().
		Get("Patient", "1").
		Get("Patient", "2").
		Bundle()

	assert.Equal(t, fhir.BundleTypeBatch, bundle.Type)
	require.Len(t, bundle.Entry, 2)
}

func TestBundleBuilder_UniqueFullURLs(t *testing.T) {
	t.Parallel()

	resource := fhir.Resource{"resourceType": "Patient"}
	bundle := fhir.NewTransactionBundle().
		Create(resource).
		Create(resource).
		Bundle()

	require.Len(t, bundle.Entry, 2)
	assert.NotEqual(t, bundle.Entry[0].FullURL, bundle.Entry[1].FullURL)
}
