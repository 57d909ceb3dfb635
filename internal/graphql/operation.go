package graphql

import (
	"context"
	"sort"
	"strings"
	"sync"
)

const (
	otherOperation = "other"

	maxLoggedNameLen = 64
)

type rootFieldsKey struct{}

// rootFields collects the root fields an operation actually executed. The
// set is bounded by the schema, so it is safe as a metrics label where the
// client-chosen operationName is not.
type rootFields struct {
	mu    sync.Mutex
	names map[string]struct{}
}

func withRootFields(ctx context.Context) (context.Context, *rootFields) {
	rf := &rootFields{names: map[string]struct{}{}}
	return context.WithValue(ctx, rootFieldsKey{}, rf), rf
}

// markRoot is called by every Query and Mutation resolver
func markRoot(ctx context.Context, field string) {
	rf, ok := ctx.Value(rootFieldsKey{}).(*rootFields)
	if !ok {
		return
	}
	rf.mu.Lock()
	rf.names[field] = struct{}{}
	rf.mu.Unlock()
}

// label is the sorted root fields, or "other" when none ran
// (validation failures, introspection-only documents).
func (rf *rootFields) label() string {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if len(rf.names) == 0 {
		return otherOperation
	}
	names := make([]string, 0, len(rf.names))
	for n := range rf.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

func truncateName(name string) string {
	if len(name) <= maxLoggedNameLen {
		return name
	}
	return name[:maxLoggedNameLen] + "..."
}
