package cache

import "context"

// Patch runs the compensating-action pattern for optimistic updates: apply a
// local change, invoke the remote call, and revert the local change if the
// remote call fails. The remote error is returned as-is; apply/revert errors
// never mask it.
func Patch(ctx context.Context, apply func(context.Context) error, remote func(context.Context) error, revert func(context.Context)) error {
	if err := apply(ctx); err != nil {
		return err
	}
	if err := remote(ctx); err != nil {
		revert(ctx)
		return err
	}
	return nil
}
