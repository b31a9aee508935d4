package volby

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
	"volby-harvest/internal/components/telemetry"
	"volby-harvest/lib/htmlutil"
	"volby-harvest/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

var ErrTransport = errors.New("transport failure")

const report_client_fetch = "client.fetch"

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Page is a fetched and parsed HTML page.
type Page struct {
	URL *url.URL
	Doc *goquery.Document
}

// Fetcher is the capability the crawler needs from the transport.
type Fetcher interface {
	// Fetch retrieves and parses the page at link, which is resolved
	// against the site base url when relative.
	Fetch(ctx context.Context, link string) (Page, error)
}

type ClientOptions struct {
	BaseUrl string
	Timeout time.Duration
	// UserAgent defaults to a desktop browser when empty.
	UserAgent string
	// RequestsPerSecond <= 0 disables client side rate limiting.
	RequestsPerSecond float64
	CloudflareBypass  bool
	// DumpOutput receives every http exchange when not nil.
	DumpOutput restyutil.InstrumentOutput
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	tel telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	tel = telemetry.NewScopedAPI("volby_client", tel)

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if !baseUrl.IsAbs() {
		return nil, fmt.Errorf("base url must be absolute: %q", opts.BaseUrl)
	}

	httpClient := resty.New()
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	httpClient.SetHeader("user-agent", userAgent)
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}

	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel)
	restyutil.InstrumentClient(httpClient, tracer, opts.DumpOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    httpClient,
		tel:     tel,
	}, nil
}

// Resolve turns a link found on the site into an absolute url.
func (c *Client) Resolve(link string) (string, error) {
	return htmlutil.ResolveLink(c.BaseUrl, link)
}

func (c *Client) Fetch(ctx context.Context, link string) (Page, error) {
	target, err := c.Resolve(link)
	if err != nil {
		return Page{}, fmt.Errorf("%w: resolve %q: %v", ErrTransport, link, err)
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		return Page{}, fmt.Errorf("%w: fetch %s: %v", ErrTransport, target, err)
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return Page{}, fmt.Errorf("%w: fetch %s: status %s", ErrTransport, target, res.Status())
	}

	reader, err := charset.NewReader(bytes.NewReader(res.Body()), res.Header().Get("Content-Type"))
	if err != nil {
		c.tel.ReportBroken(report_client_fetch, fmt.Errorf("decode charset: %w", err), target)
		return Page{}, err
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch, fmt.Errorf("parse html: %w", err), target)
		return Page{}, err
	}

	pageUrl := res.RawResponse.Request.URL
	if pageUrl == nil {
		pageUrl, err = url.Parse(target)
		if err != nil {
			return Page{}, err
		}
	}
	return Page{URL: pageUrl, Doc: doc}, nil
}
