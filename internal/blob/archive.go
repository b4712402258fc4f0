package blob

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Archiver stores rejected generation output for later inspection. A nil
// store turns every call into a no-op.
type Archiver struct {
	store  Store
	prefix string
	now    func() time.Time
}

func NewArchiver(store Store, prefix string) *Archiver {
	return &Archiver{
		store:  store,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// Archive writes raw under <prefix>/<kind>/<yyyy-mm-dd>/<uuid>.txt and
// returns the key. The cause is recorded in a short header.
func (a *Archiver) Archive(ctx context.Context, kind, raw string, cause error) (string, error) {
	if a == nil || a.store == nil {
		return "", nil
	}

	now := a.now().UTC()
	key := path.Join(a.prefix, kind, now.Format("2006-01-02"), uuid.NewString()+".txt")

	reason := "-"
	if cause != nil {
		reason = cause.Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "kind: %s\n", kind)
	fmt.Fprintf(&b, "archived_at: %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&b, "reason: %s\n\n", reason)
	b.WriteString(raw)

	if _, err := a.store.PutObject(ctx, key, []byte(b.String()), "text/plain; charset=utf-8"); err != nil {
		return "", fmt.Errorf("archive %s output: %w", kind, err)
	}
	return key, nil
}
