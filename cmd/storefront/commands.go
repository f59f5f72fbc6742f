package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/entity"
	"storefront/internal/platform/crypto"

	"golang.org/x/sync/errgroup"
)

// whoami prints the stored session. It makes no network call.
func (a *app) whoami(ctx context.Context) error {
	sess, err := a.sf.CurrentSession(ctx)
	if err != nil {
		a.log.Error("load session", slog.Any("err", err))
		return err
	}
	if !sess.Authenticated() {
		fmt.Fprintln(a.stdout, "Not logged in.")
		return nil
	}

	fmt.Fprintf(a.stdout, "role: %s\n", entity.NormalizeRole(sess.Role))
	claims, err := crypto.InspectToken(sess.Token)
	if err != nil {
		fmt.Fprintln(a.stdout, "token: opaque")
		return nil
	}
	if claims.Sub != "" {
		fmt.Fprintf(a.stdout, "subject: %s\n", claims.Sub)
	}

	now := time.Now()
	switch {
	case claims.ExpiresAt == nil:
		fmt.Fprintln(a.stdout, "expires: never")
	case claims.Expired(now):
		fmt.Fprintf(a.stdout, "expires: %s (expired, please login again)\n", claims.ExpiresAt.Time.Format(time.RFC3339))
	default:
		fmt.Fprintf(a.stdout, "expires: %s (in %s)\n",
			claims.ExpiresAt.Time.Format(time.RFC3339), claims.ExpiresIn(now).Round(time.Second))
	}
	return nil
}

// browse fetches the catalog and, when logged in, the cart concurrently. A
// failure in one does not cancel the other.
func (a *app) browse(ctx context.Context) error {
	sess, err := a.sf.CurrentSession(ctx)
	if err != nil {
		a.log.Error("load session", slog.Any("err", err))
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		return a.sf.ListCatalog(ctx)
	})
	if sess.Authenticated() {
		g.Go(func() error {
			return a.sf.ListCart(ctx, sess)
		})
	}
	return g.Wait()
}
