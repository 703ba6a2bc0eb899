package commands

// DecodePage exports decodePage for testing.
var DecodePage = decodePage //nolint:gochecknoglobals // test export

// ValidateRepositoryName exports validateRepositoryName for testing.
var ValidateRepositoryName = validateRepositoryName //nolint:gochecknoglobals // test export

// MaxPages exports maxPages for testing.
const MaxPages = maxPages
