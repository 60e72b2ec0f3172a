package credential

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const DefaultWarmupURL = "https://www.aviasales.kz/search/NQZ0907ALA17071"

// BrowserFetcher opens the market site in headless Chrome and collects the
// cookies the anti-bot layer sets while the page settles.
type BrowserFetcher struct {
	URL       string
	UserAgent string
	Settle    time.Duration
	Timeout   time.Duration
	Headless  bool
}

func NewBrowserFetcher(url, userAgent string, settle, timeout time.Duration) *BrowserFetcher {
	if url == "" {
		url = DefaultWarmupURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &BrowserFetcher{
		URL:       url,
		UserAgent: userAgent,
		Settle:    settle,
		Timeout:   timeout,
		Headless:  true,
	}
}

func (f *BrowserFetcher) Fetch(ctx context.Context) ([]Cookie, error) {
	if strings.TrimSpace(f.URL) == "" {
		return nil, errors.New("credential: empty warm-up url")
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.Headless),
	)
	if f.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(f.UserAgent))
	}
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var jar []*network.Cookie
	err := chromedp.Run(bctx,
		chromedp.Navigate(f.URL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(f.Settle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			jar, err = network.GetCookies().Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	cookies := make([]Cookie, 0, len(jar))
	for _, c := range jar {
		cookies = append(cookies, Cookie{Name: c.Name, Value: c.Value})
	}
	return cookies, nil
}
