// Package pdf renders binder-ready invoice documents.
//
// Renderers are one-way consumers of a finalized invoice snapshot:
// they never feed back into invoice state, and a rendering failure
// must not affect the persisted invoice.
package pdf

import (
	"context"
	"io"

	invoicedomain "github.com/wasteworks/hazbill/internal/invoice/domain"
	"go.uber.org/fx"
)

type Provider interface {
	RenderInvoice(ctx context.Context, snapshot invoicedomain.Snapshot) (io.Reader, error)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)
