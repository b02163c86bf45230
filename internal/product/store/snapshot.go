package store

import (
	"fmt"
	"os"

	producterrors "github.com/abgdnv/gocrud/internal/product/errors"
	"github.com/abgdnv/gocrud/pkg/record"
)

// LoadSnapshot reads the seed collection from a JSON array file. Every product must carry an
// integral id; ids are normalized to int64 and must be unique. An empty path yields an empty
// collection.
func LoadSnapshot(path string) ([]Product, error) {
	if path == "" {
		return []Product{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	list, err := record.DecodeList(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", producterrors.ErrInvalidSnapshot, err)
	}
	return normalizeSeed(list)
}

func normalizeSeed(list []record.Record) ([]Product, error) {
	seen := make(map[int64]struct{}, len(list))
	products := make([]Product, 0, len(list))
	for i, rec := range list {
		raw, ok := rec[IDField]
		if !ok {
			return nil, fmt.Errorf("%w: product %d has no id", producterrors.ErrInvalidSnapshot, i)
		}
		id, ok := record.NormalizeID(raw)
		if !ok {
			return nil, fmt.Errorf("%w: product %d has invalid id %v", producterrors.ErrInvalidSnapshot, i, raw)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", producterrors.ErrInvalidSnapshot, id)
		}
		seen[id] = struct{}{}
		p := rec.Clone()
		p[IDField] = id
		products = append(products, p)
	}
	return products, nil
}
