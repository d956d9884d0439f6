package repositories

import "context"

// ReferenceChecker answers whether an entity (a rate or a currency) is still
// referenced by transactional records owned outside this core. Deletions are
// denied while usages exist.
type ReferenceChecker interface {
	HasUsages(ctx context.Context, entityID string) (bool, error)
}

// NoopReferenceChecker reports no usages. It stands in until a transactional
// collaborator (journals, invoices) provides a real implementation.
type NoopReferenceChecker struct{}

func (NoopReferenceChecker) HasUsages(ctx context.Context, entityID string) (bool, error) {
	return false, nil
}
