package ports

// Fingerprinter computes a stable digest of the files a configuration was loaded from.
//
//go:generate mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	Fingerprint(paths []string) (string, error)
}
