package finance

import "golang.org/x/exp/slices"

// OptimisticInsert stages an item into a copy of the list before persisting
// it, then confirms the staged entry with the persisted version or drops it
// when persistence fails. The input list is never modified, so callers can
// respond with the staged view immediately and fall back to it on error.
func OptimisticInsert[T any](items []T, staged T, persist func(T) (T, error)) ([]T, error) {
	result := slices.Clone(items)
	result = append(result, staged)

	persisted, err := persist(staged)
	if err != nil {
		return slices.Clone(items), err
	}

	result[len(result)-1] = persisted

	return result, nil
}
