// Package mocks provides centralized mock implementations for testing.
//
// Store and emitter mocks are built on testify/mock and are configured with
// On(...).Return(...). Service mocks use function fields with default return
// values:
//
//	svc := &mocks.MockItemService{
//	    GetFn: func(ctx context.Context, id int64) (domain.Item, error) {
//	        return domain.Item{}, store.ErrItemNotFound
//	    },
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Pick the testify style for collaborators whose calls are asserted,
//     and function fields for those that only need canned results
package mocks
