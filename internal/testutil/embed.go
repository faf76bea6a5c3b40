// Package testutil gives tests access to shared fixture documents.
package testutil

import (
	"embed"
	"fmt"
	"io/fs"
)

// TestdataFS holds the embedded fixture files.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded fixture.
func ReadTestData(name string) ([]byte, error) {
	path := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Manifests returns a stream of four Kubernetes manifests in the order
// Service, Deployment, Namespace, ConfigMap.
func Manifests() []byte {
	data, err := ReadTestData("manifests.yaml")
	if err != nil {
		panic(err)
	}
	return data
}
