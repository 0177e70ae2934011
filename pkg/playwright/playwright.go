// Package playwright wraps playwright-go with the small surface the
// browser-based Google login needs: launching a persistent browser profile
// and capturing its storage state.
package playwright

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Options configures a persistent context launch.
type Options struct {
	Headless    bool
	BrowserType string // chromium, firefox, webkit
	SlowMo      float64
}

// Option is a functional option for configuring a launch.
type Option func(*Options)

// WithHeadless sets headless mode. Google login needs a visible window.
func WithHeadless(headless bool) Option {
	return func(o *Options) { o.Headless = headless }
}

// WithBrowserType selects the browser engine (default chromium).
func WithBrowserType(browserType string) Option {
	return func(o *Options) { o.BrowserType = browserType }
}

// WithSlowMo slows each operation by the given milliseconds, for debugging.
func WithSlowMo(ms float64) Option {
	return func(o *Options) { o.SlowMo = ms }
}

// PersistentContext is a browser context backed by an on-disk user profile,
// so a completed Google login survives restarts.
type PersistentContext struct {
	pw  *playwright.Playwright
	ctx playwright.BrowserContext
}

// LaunchPersistentContext launches a browser over the given user data
// directory. The automation-control flags are stripped; Google blocks
// logins from browsers that advertise automation.
func LaunchPersistentContext(userDataDir string, opts ...Option) (*PersistentContext, error) {
	o := &Options{Headless: true, BrowserType: "chromium"}
	for _, opt := range opts {
		opt(o)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(o.Headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--password-store=basic",
		},
		IgnoreDefaultArgs: []string{"--enable-automation"},
	}
	if o.SlowMo > 0 {
		launchOpts.SlowMo = playwright.Float(o.SlowMo)
	}

	var ctx playwright.BrowserContext
	var launchErr error

	switch o.BrowserType {
	case "firefox":
		ctx, launchErr = pw.Firefox.LaunchPersistentContext(userDataDir, launchOpts)
	case "webkit":
		ctx, launchErr = pw.WebKit.LaunchPersistentContext(userDataDir, launchOpts)
	default:
		ctx, launchErr = pw.Chromium.LaunchPersistentContext(userDataDir, launchOpts)
	}

	if launchErr != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch persistent context: %w", launchErr)
	}

	return &PersistentContext{pw: pw, ctx: ctx}, nil
}

// Close closes the context and stops playwright
func (p *PersistentContext) Close() {
	if p.ctx != nil {
		p.ctx.Close()
	}
	if p.pw != nil {
		p.pw.Stop()
	}
}

// Pages returns all open pages in the context
func (p *PersistentContext) Pages() []playwright.Page {
	return p.ctx.Pages()
}

// NewPage opens a new page in the context
func (p *PersistentContext) NewPage() (playwright.Page, error) {
	return p.ctx.NewPage()
}

// StorageState writes the context's cookies and storage to path in
// Playwright's storage state format.
func (p *PersistentContext) StorageState(path string) error {
	_, err := p.ctx.StorageState(path)
	return err
}
