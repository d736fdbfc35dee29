// Package pdf renders the salary deduction form as a printable PDF using a
// headless Chrome instance.
package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/te-mata-wananga/apparel-order-api/internal/models"
	"github.com/te-mata-wananga/apparel-order-api/internal/payment"
)

// A4 paper size and print margins, in inches (20mm top/bottom, 15mm sides)
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginTopBottom   = 0.79
	marginLeftRight   = 0.59
)

// Renderer converts the deduction form markup into PDF bytes. Each call
// launches its own browser context and always releases it, so a failed or
// timed-out render never leaks the browser.
type Renderer struct {
	timeout time.Duration
	log     *slog.Logger
}

// NewRenderer creates a renderer with the given per-call timeout
func NewRenderer(timeout time.Duration, log *slog.Logger) *Renderer {
	return &Renderer{
		timeout: timeout,
		log:     log,
	}
}

// RenderOrderForm renders the salary deduction form for an order
func (r *Renderer) RenderOrderForm(ctx context.Context, order *models.Order, schedule payment.Schedule) ([]byte, error) {
	html, err := BuildHTML(order, schedule)
	if err != nil {
		return nil, fmt.Errorf("build form markup: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	start := time.Now()

	var buf []byte
	err = chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithMarginTop(marginTopBottom).
				WithMarginBottom(marginTopBottom).
				WithMarginLeft(marginLeftRight).
				WithMarginRight(marginLeftRight).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	r.log.Debug("pdf rendered",
		"order_number", order.OrderNumber,
		"size_bytes", len(buf),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return buf, nil
}
