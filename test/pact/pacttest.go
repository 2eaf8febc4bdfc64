//go:build pact
// +build pact

package pacttest

import (
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "petclinic-api"
	ConsumerName = "owner-portal"

	StateOwnersBaseline = "owners baseline"
	StateOwnerExists    = "owner with id 1 exists"
	StateOwnerMissing   = "no owner with id 404"
	StateVetsSeeded     = "vet roster seeded"
)

const (
	ExistingOwnerID int64 = 1
	MissingOwnerID  int64 = 404

	ExistingPetName = "petty"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the owner portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOwnerForm provides stable form fields for registering an owner.
func ExampleOwnerForm() url.Values {
	return url.Values{
		"firstName": {"Joe"},
		"lastName":  {"Bloggs"},
		"address":   {"123 Caramel Street"},
		"city":      {"London"},
		"telephone": {"1316761638"},
	}
}

// DuplicatePetForm provides form fields that collide with the seeded pet name.
func DuplicatePetForm() url.Values {
	return url.Values{
		"name":      {ExistingPetName},
		"type":      {"cat"},
		"birthDate": {"2015-02-12"},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
