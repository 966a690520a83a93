package ports

import "github.com/chorehq/chore/internal/core/domain"

// ConfigLoader loads a project configuration document.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load parses the document at path, following include directives, and
	// returns the document tree together with its named-value table.
	Load(path string) (*domain.Document, error)
}
