package adapters

import (
	"fmt"
	"os"

	"emberwallet/internal/domain"
)

// PathToSlate writes and reads a slate at a fixed filesystem path, for
// exchange with a counterpart that has access to the same medium.
type PathToSlate struct {
	Path string
}

var (
	_ domain.SlatePutter = PathToSlate{}
	_ domain.SlateGetter = PathToSlate{}
)

// PutTx writes the slate bytes to the path.
func (p PathToSlate) PutTx(slate domain.Slate) error {
	if err := os.WriteFile(p.Path, slate, 0o600); err != nil {
		return fmt.Errorf("%w: writing slate file: %v", domain.ErrIO, err)
	}
	return nil
}

// GetTx reads the slate back. A missing file is an i/o failure; content
// that is not JSON is an encoding failure.
func (p PathToSlate) GetTx() (domain.Slate, error) {
	raw, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading slate file: %v", domain.ErrIO, err)
	}
	slate, err := domain.NewSlate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: slate file %s is not valid JSON", domain.ErrEncoding, p.Path)
	}
	return slate, nil
}
