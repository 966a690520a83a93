package ports

// Opener hands a URI to the surrounding environment (browser, desktop).
//
//go:generate go run go.uber.org/mock/mockgen -source=opener.go -destination=mocks/mock_opener.go -package=mocks
type Opener interface {
	Open(uri string) error
}
