package fhir

import "fmt"

// Version is the canonical two-part form of a FHIR version used in wire
// headers ("1.0", "3.0", "4.0").
type Version string

// Canonical versions.
const (
	VersionDSTU2 Version = "1.0"
	VersionSTU3  Version = "3.0"
	VersionR4    Version = "4.0"
)

// versionTokens maps every accepted spelling to its canonical version.
// Matching is exact and case-sensitive.
var versionTokens = map[string]Version{
	"DSTU2": VersionDSTU2,
	"1.0":   VersionDSTU2,
	"1.0.2": VersionDSTU2,
	"STU3":  VersionSTU3,
	"3.0":   VersionSTU3,
	"3.0.1": VersionSTU3,
	"R4":    VersionR4,
	"4.0":   VersionR4,
	"4.0.1": VersionR4,
}

// NormalizeVersion maps a version token to its canonical form. It is
// pure and cheap: it runs once at construction and again on every
// mutating request.
func NormalizeVersion(token string) (Version, error) {
	version, ok := versionTokens[token]
	if !ok {
		return "", &UnsupportedVersionError{Token: token}
	}

	return version, nil
}

// MIMEType returns the versioned FHIR media type used for Accept and
// Content-Type headers.
func (v Version) MIMEType() string {
	return fmt.Sprintf("application/fhir+json; fhirVersion=%s", string(v))
}
