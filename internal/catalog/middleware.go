package catalog

import (
	"context"
	"fmt"
)

// operation is one catalog call producing the uniform result envelope.
type operation func(ctx context.Context) (map[string]any, error)

const notAuthenticatedMessage = "Not authenticated. Please authenticate first."

// errorEnvelope builds the failure shape every tool returns.
func errorEnvelope(msg string) map[string]any {
	return map[string]any{"error": msg}
}

// requireAuth short-circuits an operation when the session holds no token,
// before any network call is made. It is a pre-condition check only: no
// refresh, no retry.
func requireAuth(api API, op operation) operation {
	return func(ctx context.Context) (map[string]any, error) {
		if !api.Authenticated() {
			return errorEnvelope(notAuthenticatedMessage), nil
		}
		return op(ctx)
	}
}

// normalizeErrors converts any failure from op into the error envelope,
// carrying the operation name. Applied outermost, so an operation either
// returns a well-formed mapping or not at all.
func normalizeErrors(name string, op operation) operation {
	return func(ctx context.Context) (map[string]any, error) {
		result, err := op(ctx)
		if err != nil {
			return errorEnvelope(fmt.Sprintf("Error in %s: %v", name, err)), nil
		}
		return result, nil
	}
}
