// Package raster renders HTML documents to PNG through a headless Chrome
// driven by go-rod.
package raster

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// alturaInicial is the viewport height before the full-page capture expands it
const alturaInicial = 800

// Rod rasterises documents in a shared browser. When ControlURL is empty a
// local headless Chrome is launched on first use.
type Rod struct {
	ControlURL string
	Escala     float64

	mu      sync.Mutex
	browser *rod.Browser
}

// New returns a rasteriser connecting to controlURL at the given device scale
func New(controlURL string, escala float64) *Rod {
	if escala <= 0 {
		escala = 2
	}
	return &Rod{ControlURL: controlURL, Escala: escala}
}

func (r *Rod) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		return r.browser, nil
	}

	controlURL := r.ControlURL
	if controlURL == "" {
		url, err := launcher.New().Headless(true).Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = url
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	zap.S().Infow("chrome conectado", "control_url", controlURL)
	r.browser = browser
	return browser, nil
}

// Rasterize loads html in a fresh tab of the given CSS width and captures the
// whole page as PNG
func (r *Rod) Rasterize(ctx context.Context, html string, largura int) ([]byte, error) {
	browser, err := r.connect()
	if err != nil {
		return nil, err
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			zap.S().Warnw("erro ao fechar aba", "error", err)
		}
	}()

	p := page.Context(ctx)
	err = p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             largura,
		Height:            alturaInicial,
		DeviceScaleFactor: r.Escala,
	})
	if err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	if err := p.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("set content: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}
	img, err := p.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return img, nil
}

// Close disconnects from the browser
func (r *Rod) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}
