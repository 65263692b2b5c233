package appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/SabrinAmbar14/clinica-estetica-api/internal/domain/appointment"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/domain/pricing"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

type QuoteInput struct {
	ClientID  uint
	ServiceID uint
	// ReferenceDate por defecto es hoy.
	ReferenceDate *time.Time
	// ProductIDs son productos a incluir en el total (una unidad cada uno),
	// a precio de venta vigente. No consume stock: es solo una cotización.
	ProductIDs []uint
}

type QuoteResult struct {
	Total    decimal.Decimal `json:"total"`
	Discount decimal.Decimal `json:"discount"`
	Birthday bool            `json:"birthday"`
	Products decimal.Decimal `json:"products_total"`
}

// Quote calcula por adelantado lo que costaría un servicio para un
// cliente en una fecha dada, sin persistir nada.
type Quote struct {
	repo domain.Repository
	now  func() time.Time
}

func NewQuote(repo domain.Repository, now func() time.Time) *Quote {
	return &Quote{repo: repo, now: now}
}

func (uc *Quote) Execute(ctx context.Context, in QuoteInput) (*QuoteResult, error) {

	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if svc.Status != models.StatusActive {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	ref := uc.now()
	if in.ReferenceDate != nil {
		ref = *in.ReferenceDate
	}

	q := pricing.ForService(client.BirthDate, svc.BasePrice, ref)

	products := decimal.Zero
	for _, id := range in.ProductIDs {
		p, err := uc.repo.GetProduct(ctx, id)
		if err != nil {
			return nil, httperr.ErrBusiness("product_not_found")
		}
		if p.Status != models.StatusActive {
			return nil, httperr.ErrBusiness("product_inactive")
		}
		products = products.Add(p.SalePrice)
	}

	return &QuoteResult{
		Total:    q.Final.Add(products),
		Discount: q.Discount,
		Birthday: q.Birthday,
		Products: products,
	}, nil
}
